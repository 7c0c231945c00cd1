package notifier

import (
	"context"
	"fmt"

	"github.com/NordCoder/tsreturn/internal/domain/returns"
	"github.com/NordCoder/tsreturn/internal/obs"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

type Handler struct {
	Parties  returns.PartyReader
	Permits  returns.PermitReader
	Statuses returns.StatusNamer
	Texts    returns.Translator
	Mail     returns.MessageSender
	SMS      returns.SmsNotifier
	Settings returns.Settings
	Log      *zap.Logger
}

type parties struct {
	reseller *returns.Party
	client   *returns.Party
	creator  *returns.Party
	expert   *returns.Party
}

// ProcessReturnNotification validates raw input, resolves the parties and sends
// employee and client notifications. Errors are returned only for failures that
// happen before the first message is dispatched.
func (h *Handler) ProcessReturnNotification(ctx context.Context, raw map[string]any) (*returns.Outcome, error) {
	ctx, span := otel.Tracer("return-notifier").Start(ctx, "returns.process")
	defer span.End()

	out := &returns.Outcome{}

	req, err := returns.BuildRequest(raw)
	if err != nil {
		mRequests.WithLabelValues(resultRejected).Inc()
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(
		attribute.Int64("reseller_id", req.ResellerID()),
		attribute.Int64("client_id", req.ClientID()),
		attribute.Int("notification_type", int(req.NotificationType())),
	)

	log := obs.WithTrace(ctx, h.logger()).With(
		zap.Int64("reseller_id", req.ResellerID()),
		zap.Int64("complaint_id", req.ComplaintID()),
	)

	ps, err := h.resolveParties(ctx, req)
	if err != nil {
		mRequests.WithLabelValues(resultFailed).Inc()
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	mc, err := h.buildMessageContext(ctx, req, ps)
	if err != nil {
		mRequests.WithLabelValues(resultFailed).Inc()
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	from := h.Settings.ResellerEmailFrom()

	out.EmployeeNotified = h.sendEmployeeMails(ctx, log, req, from, mc)

	if d, ok := req.Differences(); ok && req.IsChange() && d.To != 0 {
		out.ClientNotifiedByEmail = h.sendClientMail(ctx, log, req, d.To, from, ps.client, mc)
		out.ClientNotifiedBySms = h.sendClientSms(ctx, log, req, d.To, ps.client, mc)
	}

	mRequests.WithLabelValues(resultProcessed).Inc()
	log.Info("return notification processed",
		zap.Bool("employee_notified", out.EmployeeNotified),
		zap.Bool("client_email", out.ClientNotifiedByEmail),
		zap.Bool("client_sms", out.ClientNotifiedBySms.Sent),
	)
	return out, nil
}

func (h *Handler) resolveParties(ctx context.Context, req *returns.Request) (*parties, error) {
	reseller, err := h.Parties.FindSellerByID(ctx, req.ResellerID())
	if err != nil {
		return nil, fmt.Errorf("get seller: %w", err)
	}

	client, err := h.Parties.FindContractorByID(ctx, req.ClientID())
	if err != nil {
		return nil, fmt.Errorf("get contractor: %w", err)
	}
	if client.Role != returns.RoleCustomer {
		return nil, returns.NewDomainError("get customer", returns.ErrNotCustomer,
			fmt.Sprintf("contractor %d has role %q", client.ID, client.Role))
	}

	creator, err := h.Parties.FindEmployeeByID(ctx, req.CreatorID())
	if err != nil {
		return nil, fmt.Errorf("get creator: %w", err)
	}

	expert, err := h.Parties.FindEmployeeByID(ctx, req.ExpertID())
	if err != nil {
		return nil, fmt.Errorf("get expert: %w", err)
	}

	return &parties{reseller: reseller, client: client, creator: creator, expert: expert}, nil
}

func (h *Handler) logger() *zap.Logger {
	return obs.Component(h.Log, "return-notifier.handler")
}
