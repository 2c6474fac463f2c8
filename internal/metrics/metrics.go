package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mailerbot_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"path", "method", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mailerbot_http_request_duration_seconds",
			Help:    "Histogram of response durations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)

	// CampaignsProcessed counts campaigns marked processed after a
	// successful send pass.
	CampaignsProcessed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mailerbot_campaigns_processed_total",
			Help: "Number of campaigns dispatched and marked processed",
		},
	)

	MailsSent = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mailerbot_mails_sent_total",
			Help: "Number of outbound mails accepted by the provider",
		},
	)

	DispatchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mailerbot_dispatch_pass_duration_seconds",
			Help:    "Duration of full dispatch passes",
			Buckets: prometheus.ExponentialBuckets(0.1, 4, 8),
		},
	)
)

func Init() {
	prometheus.MustRegister(HTTPRequests, RequestDuration, CampaignsProcessed, MailsSent, DispatchDuration)
}
