package notifier

import (
	"context"
	"fmt"

	"github.com/NordCoder/tsreturn/internal/domain/returns"
)

const (
	tplNewPositionAdded      = "NewPositionAdded"
	tplPositionStatusChanged = "PositionStatusHasChanged"

	tplEmployeeSubject = "complaintEmployeeEmailSubject"
	tplEmployeeBody    = "complaintEmployeeEmailBody"
	tplClientSubject   = "complaintClientEmailSubject"
	tplClientBody      = "complaintClientEmailBody"
)

func (h *Handler) buildMessageContext(ctx context.Context, req *returns.Request, ps *parties) (returns.MessageContext, error) {
	differences, err := h.buildDifferences(ctx, req)
	if err != nil {
		return nil, err
	}

	return returns.MessageContext{
		returns.KeyComplaintID:       req.ComplaintID(),
		returns.KeyComplaintNumber:   req.ComplaintNumber(),
		returns.KeyCreatorID:         ps.creator.ID,
		returns.KeyCreatorName:       ps.creator.FullName,
		returns.KeyExpertID:          ps.expert.ID,
		returns.KeyExpertName:        ps.expert.FullName,
		returns.KeyClientID:          ps.client.ID,
		returns.KeyClientName:        ps.client.DisplayName(),
		returns.KeyConsumptionID:     req.ConsumptionID(),
		returns.KeyConsumptionNumber: req.ConsumptionNumber(),
		returns.KeyAgreementNumber:   req.AgreementNumber(),
		returns.KeyDate:              req.Date(),
		returns.KeyDifferences:       differences,
	}, nil
}

func (h *Handler) buildDifferences(ctx context.Context, req *returns.Request) (string, error) {
	var (
		name string
		data map[string]any
	)

	d, hasDiff := req.Differences()
	switch {
	case req.IsNew():
		name = tplNewPositionAdded
	case req.IsChange() && hasDiff:
		name = tplPositionStatusChanged
		data = map[string]any{
			"FROM": h.Statuses.StatusName(d.From),
			"TO":   h.Statuses.StatusName(d.To),
		}
	default:
		return "", returns.NewDomainError("build differences", returns.ErrInvalidDifferences,
			fmt.Sprintf("unsupported notification type %d", req.NotificationType()))
	}

	s, err := h.Texts.Render(ctx, name, data, req.ResellerID())
	if err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return s, nil
}
