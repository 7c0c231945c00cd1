package returns

const (
	// EventGoodsReturn selects employees entitled to goods-return mail.
	EventGoodsReturn = "tsGoodsReturn"
	// EventChangeReturnStatus classifies messages handed to transports.
	EventChangeReturnStatus = "changeReturnStatus"
)

type Role string

const (
	RoleSeller   Role = "seller"
	RoleCustomer Role = "customer"
	RoleEmployee Role = "employee"
)

type Party struct {
	ID       int64  `json:"id"`
	Role     Role   `json:"role"`
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
}

// DisplayName prefers the full name and falls back to the raw name.
func (p *Party) DisplayName() string {
	if p.FullName != "" {
		return p.FullName
	}
	return p.Name
}

type EmailMessage struct {
	From    string `json:"emailFrom"`
	To      string `json:"emailTo"`
	Subject string `json:"subject"`
	Body    string `json:"message"`
}

// MessageContext feeds template rendering and the SMS transport.
type MessageContext map[string]any

const (
	KeyComplaintID       = "COMPLAINT_ID"
	KeyComplaintNumber   = "COMPLAINT_NUMBER"
	KeyCreatorID         = "CREATOR_ID"
	KeyCreatorName       = "CREATOR_NAME"
	KeyExpertID          = "EXPERT_ID"
	KeyExpertName        = "EXPERT_NAME"
	KeyClientID          = "CLIENT_ID"
	KeyClientName        = "CLIENT_NAME"
	KeyConsumptionID     = "CONSUMPTION_ID"
	KeyConsumptionNumber = "CONSUMPTION_NUMBER"
	KeyAgreementNumber   = "AGREEMENT_NUMBER"
	KeyDate              = "DATE"
	KeyDifferences       = "DIFFERENCES"
)

type SmsOutcome struct {
	Sent    bool   `json:"isSent"`
	Message string `json:"message"`
}

type Outcome struct {
	EmployeeNotified      bool       `json:"notificationEmployeeByEmail"`
	ClientNotifiedByEmail bool       `json:"notificationClientByEmail"`
	ClientNotifiedBySms   SmsOutcome `json:"notificationClientBySms"`
}

var statusNames = map[Status]string{
	StatusCompleted: "Completed",
	StatusPending:   "Pending",
	StatusRejected:  "Rejected",
}

// StatusNames is the built-in StatusNamer.
type StatusNames struct{}

func (StatusNames) StatusName(s Status) string { return statusNames[s] }
