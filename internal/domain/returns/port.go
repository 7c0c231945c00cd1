package returns

import "context"

type PartyReader interface {
	FindSellerByID(ctx context.Context, id int64) (*Party, error)
	FindContractorByID(ctx context.Context, id int64) (*Party, error)
	FindEmployeeByID(ctx context.Context, id int64) (*Party, error)
}

type PermitReader interface {
	ListNotifiableEmails(ctx context.Context, resellerID int64, event string) ([]string, error)
}

type StatusNamer interface {
	StatusName(s Status) string
}

// Translator renders a localized template; data is nil when there is nothing to substitute.
type Translator interface {
	Render(ctx context.Context, name string, data map[string]any, resellerID int64) (string, error)
}

type MessageSender interface {
	SendEmail(ctx context.Context, msg EmailMessage, resellerID int64, clientID *int64, event string, status *Status) error
}

// SmsNotifier reports delivery as a flag plus an optional error message.
type SmsNotifier interface {
	SendSms(ctx context.Context, resellerID, clientID int64, event string, status Status, mc MessageContext) (bool, string)
}

type Settings interface {
	ResellerEmailFrom() string
}
