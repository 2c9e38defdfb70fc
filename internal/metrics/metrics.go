// Package metrics exposes Prometheus counters for store and theme activity.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what the stores and the theme service report to.
type Recorder interface {
	RecordLike(postID string)
	RecordFunding(target string, amount float64)
	RecordThemeChange(preference string)
	RecordRefresh(store string, duration time.Duration, err error)
}

// Collector is the Prometheus implementation of Recorder.
type Collector struct {
	likes        prometheus.Counter
	fundings     *prometheus.CounterVec
	fundedAmount *prometheus.CounterVec
	themeChanges *prometheus.CounterVec
	refreshes    *prometheus.CounterVec
	refreshTime  *prometheus.HistogramVec
}

// NewCollector creates a Collector and registers it on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		likes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dsfs_post_likes_total",
			Help: "Total likes applied to feed posts.",
		}),
		fundings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dsfs_fundings_total",
			Help: "Funding contributions by target kind.",
		}, []string{"target"}),
		fundedAmount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dsfs_funded_amount_total",
			Help: "Sum of funded amounts by target kind.",
		}, []string{"target"}),
		themeChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dsfs_theme_changes_total",
			Help: "Theme preference changes by resulting preference.",
		}, []string{"preference"}),
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dsfs_store_refreshes_total",
			Help: "Store refreshes by store and outcome.",
		}, []string{"store", "outcome"}),
		refreshTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dsfs_store_refresh_seconds",
			Help:    "Store refresh duration including simulated latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"store"}),
	}

	reg.MustRegister(
		c.likes,
		c.fundings,
		c.fundedAmount,
		c.themeChanges,
		c.refreshes,
		c.refreshTime,
	)

	return c
}

func (c *Collector) RecordLike(string) {
	c.likes.Inc()
}

func (c *Collector) RecordFunding(target string, amount float64) {
	c.fundings.WithLabelValues(target).Inc()
	c.fundedAmount.WithLabelValues(target).Add(amount)
}

func (c *Collector) RecordThemeChange(preference string) {
	c.themeChanges.WithLabelValues(preference).Inc()
}

func (c *Collector) RecordRefresh(store string, duration time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	c.refreshes.WithLabelValues(store, outcome).Inc()
	c.refreshTime.WithLabelValues(store).Observe(duration.Seconds())
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordLike(string) {}
func (Nop) RecordFunding(string, float64) {}
func (Nop) RecordThemeChange(string) {}
func (Nop) RecordRefresh(string, time.Duration, error) {}

// Handler serves the registry in the Prometheus text format.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
