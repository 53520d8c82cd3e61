package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Chat metrics
	ChatTurns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lfg_chat_turns_total",
		Help: "Chat turns answered, by profile and outcome",
	}, []string{"profile", "outcome"})

	ChatSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "lfg_chat_sessions",
		Help: "Currently mounted chat widgets",
	})

	// Contact metrics
	ContactSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lfg_contact_submissions_total",
		Help: "Contact form submissions, by outcome",
	}, []string{"outcome"})

	LeadNotifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lfg_lead_notifications_total",
		Help: "Lead notification jobs, by outcome",
	}, []string{"outcome"})

	// HTTP metrics
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lfg_http_request_duration_seconds",
		Help:    "HTTP request latency by route pattern",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

// ObserveTurn has the shape of the chat registry's turn hook.
func ObserveTurn(profile string, outcome string) {
	ChatTurns.WithLabelValues(profile, outcome).Inc()
}

func SetSessions(n int) {
	ChatSessions.Set(float64(n))
}

func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records request latency labelled by chi route pattern, so path
// parameters do not explode the label set.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		RequestDuration.WithLabelValues(r.Method, route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
	})
}
