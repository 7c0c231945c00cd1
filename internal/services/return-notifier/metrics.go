package notifier

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultProcessed = "processed"
	resultRejected  = "rejected"
	resultFailed    = "failed"

	channelEmployeeEmail = "employee_email"
	channelClientEmail   = "client_email"
	channelClientSms     = "client_sms"
)

var (
	mRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "return_notifier_requests_total",
		Help: "Return notification requests by result.",
	}, []string{"result"})
	mDispatched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "return_notifier_dispatched_total",
		Help: "Messages accepted by a transport, by channel.",
	}, []string{"channel"})
	mDispatchErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "return_notifier_dispatch_errors_total",
		Help: "Dispatch failures, by channel.",
	}, []string{"channel"})
)
