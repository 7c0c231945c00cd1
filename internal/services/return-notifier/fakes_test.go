package notifier

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/NordCoder/tsreturn/internal/domain/returns"
)

type fakeParties struct {
	sellers     map[int64]*returns.Party
	contractors map[int64]*returns.Party
	employees   map[int64]*returns.Party
	calls       []string
}

func lookup(m map[int64]*returns.Party, kind string, id int64) (*returns.Party, error) {
	p, ok := m[id]
	if !ok {
		return nil, fmt.Errorf("%s %d: %w", kind, id, returns.ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

func (f *fakeParties) FindSellerByID(_ context.Context, id int64) (*returns.Party, error) {
	f.calls = append(f.calls, fmt.Sprintf("seller:%d", id))
	return lookup(f.sellers, "seller", id)
}

func (f *fakeParties) FindContractorByID(_ context.Context, id int64) (*returns.Party, error) {
	f.calls = append(f.calls, fmt.Sprintf("contractor:%d", id))
	return lookup(f.contractors, "contractor", id)
}

func (f *fakeParties) FindEmployeeByID(_ context.Context, id int64) (*returns.Party, error) {
	f.calls = append(f.calls, fmt.Sprintf("employee:%d", id))
	return lookup(f.employees, "employee", id)
}

type fakePermits struct {
	emails []string
	err    error
	calls  []string
}

func (f *fakePermits) ListNotifiableEmails(_ context.Context, resellerID int64, event string) ([]string, error) {
	f.calls = append(f.calls, fmt.Sprintf("%d:%s", resellerID, event))
	return f.emails, f.err
}

type renderCall struct {
	name       string
	data       map[string]any
	resellerID int64
}

// fakeTexts renders "<name>" or "<name>|K=V,..." with sorted keys.
type fakeTexts struct {
	failOn map[string]bool
	calls  []renderCall
}

func (f *fakeTexts) Render(_ context.Context, name string, data map[string]any, resellerID int64) (string, error) {
	f.calls = append(f.calls, renderCall{name: name, data: data, resellerID: resellerID})
	if f.failOn[name] {
		return "", errors.New("no translation for " + name)
	}
	if data == nil {
		return name, nil
	}
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, data[k]))
	}
	return name + "|" + strings.Join(parts, ","), nil
}

type sentMail struct {
	msg        returns.EmailMessage
	resellerID int64
	clientID   *int64
	event      string
	status     *returns.Status
}

type fakeMail struct {
	err  error
	sent []sentMail
}

func (f *fakeMail) SendEmail(_ context.Context, msg returns.EmailMessage, resellerID int64, clientID *int64, event string, status *returns.Status) error {
	f.sent = append(f.sent, sentMail{msg: msg, resellerID: resellerID, clientID: clientID, event: event, status: status})
	return f.err
}

type smsCall struct {
	resellerID int64
	clientID   int64
	event      string
	status     returns.Status
	mc         returns.MessageContext
}

type fakeSMS struct {
	ok    bool
	msg   string
	calls []smsCall
}

func (f *fakeSMS) SendSms(_ context.Context, resellerID, clientID int64, event string, status returns.Status, mc returns.MessageContext) (bool, string) {
	f.calls = append(f.calls, smsCall{resellerID: resellerID, clientID: clientID, event: event, status: status, mc: mc})
	return f.ok, f.msg
}

type staticSettings string

func (s staticSettings) ResellerEmailFrom() string { return string(s) }
