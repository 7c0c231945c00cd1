package notifier

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/NordCoder/tsreturn/internal/domain/returns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHTTPHandler_OK(t *testing.T) {
	uc := &stubProcessor{out: &returns.Outcome{
		EmployeeNotified:      true,
		ClientNotifiedByEmail: true,
		ClientNotifiedBySms:   returns.SmsOutcome{Message: "network down"},
	}}
	h := NewHTTPHandler(uc, zap.NewNop())

	body := `{"resellerId": 1, "differences": {"from": 0, "to": 1}}`
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/returns/notify", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"notificationEmployeeByEmail": true,
		"notificationClientByEmail": true,
		"notificationClientBySms": {"isSent": false, "message": "network down"}
	}`, rec.Body.String())

	assert.Equal(t, json.Number("1"), uc.got["resellerId"], "numbers are kept exact")
}

func TestHTTPHandler_Errors(t *testing.T) {
	cases := []struct {
		name   string
		method string
		body   string
		err    error
		code   int
	}{
		{"method", http.MethodGet, "", nil, http.StatusMethodNotAllowed},
		{"bad json", http.MethodPost, `{"a":`, nil, http.StatusBadRequest},
		{"not an object", http.MethodPost, `[1,2]`, nil, http.StatusBadRequest},
		{"validation", http.MethodPost, `{}`, &returns.ValidationError{Field: "resellerId", Message: "resellerId field is required"}, http.StatusBadRequest},
		{"not found", http.MethodPost, `{}`, errors.Join(errors.New("get seller"), returns.ErrNotFound), http.StatusNotFound},
		{"not customer", http.MethodPost, `{}`, returns.NewDomainError("get customer", returns.ErrNotCustomer, "x"), http.StatusUnprocessableEntity},
		{"infra", http.MethodPost, `{}`, errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewHTTPHandler(&stubProcessor{err: tc.err, out: &returns.Outcome{}}, zap.NewNop())
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tc.method, "/v1/returns/notify", strings.NewReader(tc.body)))
			assert.Equal(t, tc.code, rec.Code)
		})
	}
}
