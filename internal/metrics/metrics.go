package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// JobName groups pushed series in the Pushgateway.
const JobName = "parlvotes"

// Run holds the counters of one pipeline run. A nil *Run is valid and
// records nothing.
type Run struct {
	Registry      *prometheus.Registry
	VotesStreamed prometheus.Counter
	Notifications *prometheus.CounterVec
	ScrapeMisses  prometheus.Counter
}

// NewRun registers the run counters on a private registry.
func NewRun() *Run {
	r := &Run{Registry: prometheus.NewRegistry()}
	r.VotesStreamed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "parlvotes",
		Name:      "votes_streamed_total",
		Help:      "Vote records produced by the extraction pipeline",
	})
	r.Notifications = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "parlvotes",
		Name:      "notifications_total",
		Help:      "Notification attempts by status",
	}, []string{"status"})
	r.ScrapeMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "parlvotes",
		Name:      "scrape_misses_total",
		Help:      "Detail pages that could not be scraped",
	})
	r.Registry.MustRegister(r.VotesStreamed, r.Notifications, r.ScrapeMisses)
	return r
}

func (r *Run) VoteStreamed() {
	if r != nil {
		r.VotesStreamed.Inc()
	}
}

func (r *Run) ScrapeMiss() {
	if r != nil {
		r.ScrapeMisses.Inc()
	}
}

func (r *Run) Notified(ok bool) {
	if r == nil {
		return
	}
	status := "ok"
	if !ok {
		status = "failed"
	}
	r.Notifications.WithLabelValues(status).Inc()
}

// Push sends the current counter values to a Pushgateway.
func (r *Run) Push(ctx context.Context, gatewayURL string) error {
	if r == nil {
		return nil
	}
	if err := push.New(gatewayURL, JobName).Gatherer(r.Registry).PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics: %w", err)
	}
	return nil
}
