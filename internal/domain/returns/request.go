package returns

import (
	"encoding/json"
	"math"
	"strconv"
)

type NotificationType int

const (
	TypeNew    NotificationType = 1
	TypeChange NotificationType = 2
)

type Status int

const (
	StatusCompleted Status = 0
	StatusPending   Status = 1
	StatusRejected  Status = 2
)

func (s Status) Valid() bool {
	switch s {
	case StatusCompleted, StatusPending, StatusRejected:
		return true
	}
	return false
}

// Differences is the before/after status pair of a CHANGE notification.
type Differences struct {
	From Status
	To   Status
}

// Request is a validated goods-return notification request.
// It can only be obtained from BuildRequest and exposes no setters.
type Request struct {
	resellerID        int64
	notificationType  NotificationType
	clientID          int64
	creatorID         int64
	expertID          int64
	differences       *Differences
	complaintID       int64
	complaintNumber   string
	consumptionID     int64
	consumptionNumber string
	agreementNumber   string
	date              string
}

var numericFields = []string{
	"resellerId",
	"notificationType",
	"clientId",
	"creatorId",
	"expertId",
	"complaintId",
	"consumptionId",
	"agreementId",
}

var stringFields = []string{
	"complaintNumber",
	"consumptionNumber",
}

// BuildRequest validates loosely typed input (decoded JSON or a hand-built map)
// and returns a fully populated Request.
//
// Numbers must carry an integer type: Go integer kinds or a json.Number holding
// an integer literal. Decoders feeding this function must use UseNumber.
func BuildRequest(data map[string]any) (*Request, error) {
	ints := make(map[string]int64, len(numericFields))
	for _, f := range numericFields {
		v, ok := data[f]
		if !ok || v == nil {
			return nil, fieldRequired(f)
		}
		n, ok := asInt(v)
		if !ok || n < 0 {
			return nil, notPositiveInt(f)
		}
		ints[f] = n
	}

	strs := make(map[string]string, len(stringFields)+1)
	for _, f := range stringFields {
		v, ok := data[f]
		if !ok || v == nil {
			return nil, fieldRequired(f)
		}
		s, ok := v.(string)
		if !ok {
			return nil, notString(f)
		}
		strs[f] = s
	}
	if v, ok := data["date"]; ok && v != nil {
		s, ok := v.(string)
		if !ok {
			return nil, notString("date")
		}
		strs["date"] = s
	}

	nt := NotificationType(ints["notificationType"])
	if nt != TypeNew && nt != TypeChange {
		return nil, &ValidationError{Field: "notificationType", Message: "invalid notification type"}
	}

	r := &Request{
		resellerID:        ints["resellerId"],
		notificationType:  nt,
		clientID:          ints["clientId"],
		creatorID:         ints["creatorId"],
		expertID:          ints["expertId"],
		complaintID:       ints["complaintId"],
		complaintNumber:   strs["complaintNumber"],
		consumptionID:     ints["consumptionId"],
		consumptionNumber: strs["consumptionNumber"],
		agreementNumber:   strconv.FormatInt(ints["agreementId"], 10),
		date:              strs["date"],
	}

	if nt == TypeChange {
		diff, _ := data["differences"].(map[string]any)
		from, okFrom := statusOf(diff["from"])
		to, okTo := statusOf(diff["to"])
		if !okFrom || !okTo {
			return nil, &ValidationError{Field: "differences", Message: "invalid status"}
		}
		r.differences = &Differences{From: from, To: to}
	}

	return r, nil
}

func statusOf(v any) (Status, bool) {
	if v == nil {
		return 0, false
	}
	n, ok := asInt(v)
	if !ok || n < math.MinInt32 || n > math.MaxInt32 {
		return 0, false
	}
	s := Status(n)
	return s, s.Valid()
}

func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return uintToInt(uint64(n))
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return uintToInt(n)
	case json.Number:
		i, err := strconv.ParseInt(string(n), 10, 64)
		return i, err == nil
	}
	return 0, false
}

func uintToInt(u uint64) (int64, bool) {
	if u > math.MaxInt64 {
		return 0, false
	}
	return int64(u), true
}

func (r *Request) ResellerID() int64                  { return r.resellerID }
func (r *Request) NotificationType() NotificationType { return r.notificationType }
func (r *Request) ClientID() int64                    { return r.clientID }
func (r *Request) CreatorID() int64                   { return r.creatorID }
func (r *Request) ExpertID() int64                    { return r.expertID }
func (r *Request) ComplaintID() int64                 { return r.complaintID }
func (r *Request) ComplaintNumber() string            { return r.complaintNumber }
func (r *Request) ConsumptionID() int64               { return r.consumptionID }
func (r *Request) ConsumptionNumber() string          { return r.consumptionNumber }
func (r *Request) AgreementNumber() string            { return r.agreementNumber }
func (r *Request) Date() string                       { return r.date }

func (r *Request) IsNew() bool    { return r.notificationType == TypeNew }
func (r *Request) IsChange() bool { return r.notificationType == TypeChange }

// Differences reports the status pair; ok is false for NEW requests.
func (r *Request) Differences() (d Differences, ok bool) {
	if r.differences == nil {
		return Differences{}, false
	}
	return *r.differences, true
}
