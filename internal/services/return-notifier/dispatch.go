package notifier

import (
	"context"

	"github.com/NordCoder/tsreturn/internal/domain/returns"
	"go.uber.org/zap"
)

// sendEmployeeMails reports true once a send was attempted for any recipient.
// Transport errors are logged and do not change the result.
func (h *Handler) sendEmployeeMails(ctx context.Context, log *zap.Logger, req *returns.Request, from string, mc returns.MessageContext) bool {
	resellerID := req.ResellerID()

	emails, err := h.Permits.ListNotifiableEmails(ctx, resellerID, returns.EventGoodsReturn)
	if err != nil {
		mDispatchErrors.WithLabelValues(channelEmployeeEmail).Inc()
		log.Warn("list notifiable emails", zap.Error(err))
		return false
	}
	if len(emails) == 0 {
		log.Debug("no employees to notify")
		return false
	}

	subject, body, err := h.renderMail(ctx, tplEmployeeSubject, tplEmployeeBody, mc, resellerID)
	if err != nil {
		mDispatchErrors.WithLabelValues(channelEmployeeEmail).Inc()
		log.Warn("render employee email", zap.Error(err))
		return false
	}

	notified := false
	for _, to := range emails {
		msg := returns.EmailMessage{From: from, To: to, Subject: subject, Body: body}
		if err := h.Mail.SendEmail(ctx, msg, resellerID, nil, returns.EventChangeReturnStatus, nil); err != nil {
			mDispatchErrors.WithLabelValues(channelEmployeeEmail).Inc()
			log.Warn("employee email failed", zap.String("to", to), zap.Error(err))
		} else {
			mDispatched.WithLabelValues(channelEmployeeEmail).Inc()
		}
		notified = true
	}
	return notified
}

// sendClientMail reports true whenever a send was attempted, even if the transport failed.
func (h *Handler) sendClientMail(
	ctx context.Context,
	log *zap.Logger,
	req *returns.Request,
	status returns.Status,
	from string,
	client *returns.Party,
	mc returns.MessageContext,
) bool {
	if from == "" || client.Email == "" {
		log.Debug("client email skipped", zap.Bool("has_from", from != ""), zap.Bool("has_email", client.Email != ""))
		return false
	}

	resellerID := req.ResellerID()
	subject, body, err := h.renderMail(ctx, tplClientSubject, tplClientBody, mc, resellerID)
	if err != nil {
		mDispatchErrors.WithLabelValues(channelClientEmail).Inc()
		log.Warn("render client email", zap.Error(err))
		return false
	}

	clientID := client.ID
	msg := returns.EmailMessage{From: from, To: client.Email, Subject: subject, Body: body}
	if err := h.Mail.SendEmail(ctx, msg, resellerID, &clientID, returns.EventChangeReturnStatus, &status); err != nil {
		mDispatchErrors.WithLabelValues(channelClientEmail).Inc()
		log.Warn("client email failed", zap.Int64("client_id", clientID), zap.Error(err))
	} else {
		mDispatched.WithLabelValues(channelClientEmail).Inc()
	}
	return true
}

func (h *Handler) sendClientSms(
	ctx context.Context,
	log *zap.Logger,
	req *returns.Request,
	status returns.Status,
	client *returns.Party,
	mc returns.MessageContext,
) returns.SmsOutcome {
	if client.Mobile == "" {
		return returns.SmsOutcome{}
	}

	ok, msg := h.SMS.SendSms(ctx, req.ResellerID(), client.ID, returns.EventChangeReturnStatus, status, mc)
	if ok {
		mDispatched.WithLabelValues(channelClientSms).Inc()
		return returns.SmsOutcome{Sent: true}
	}

	mDispatchErrors.WithLabelValues(channelClientSms).Inc()
	log.Warn("client sms failed", zap.Int64("client_id", client.ID), zap.String("error", msg))
	return returns.SmsOutcome{Message: msg}
}

func (h *Handler) renderMail(ctx context.Context, subjectTpl, bodyTpl string, mc returns.MessageContext, resellerID int64) (string, string, error) {
	subject, err := h.Texts.Render(ctx, subjectTpl, mc, resellerID)
	if err != nil {
		return "", "", err
	}
	body, err := h.Texts.Render(ctx, bodyTpl, mc, resellerID)
	if err != nil {
		return "", "", err
	}
	return subject, body, nil
}
