// Package metrics exposes frequency limits, turbo state and per-core
// frequencies in the Prometheus exposition format.
package metrics

import (
	"context"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/custodia-labs/cpufreqctl/internal/core/ports/driving"
	"github.com/custodia-labs/cpufreqctl/internal/logger"
)

const namespace = "cpufreqctl"

// Collector reads the control surface on every scrape.
type Collector struct {
	ctx      context.Context
	control  driving.ControlService
	backends driving.BackendService

	supported    *prometheus.Desc
	active       *prometheus.Desc
	turbo        *prometheus.Desc
	minLimit     *prometheus.Desc
	maxLimit     *prometheus.Desc
	coreFreq     *prometheus.Desc
	scrapeErrors *prometheus.Desc
}

// Ensure Collector implements prometheus.Collector.
var _ prometheus.Collector = (*Collector)(nil)

// NewCollector creates a collector. ctx bounds every read made during
// a scrape.
func NewCollector(ctx context.Context, control driving.ControlService, backends driving.BackendService) *Collector {
	return &Collector{
		ctx:      ctx,
		control:  control,
		backends: backends,
		supported: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "backend", "supported"),
			"Whether the scaling driver is available on this system.",
			[]string{"backend"}, nil,
		),
		active: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "backend", "active"),
			"The scaling driver in use, always 1.",
			[]string{"backend"}, nil,
		),
		turbo: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "turbo_enabled"),
			"Whether turbo boost is enabled.",
			nil, nil,
		),
		minLimit: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "limit", "min_percent"),
			"Minimum frequency limit as a percentage of the reference maximum.",
			nil, nil,
		),
		maxLimit: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "limit", "max_percent"),
			"Maximum frequency limit as a percentage of the reference maximum.",
			nil, nil,
		),
		coreFreq: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "core", "frequency_khz"),
			"Current frequency of a logical core in kHz.",
			[]string{"cpu"}, nil,
		),
		scrapeErrors: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "scrape", "errors"),
			"Number of reads that failed during this scrape.",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.supported
	ch <- c.active
	ch <- c.turbo
	ch <- c.minLimit
	ch <- c.maxLimit
	ch <- c.coreFreq
	ch <- c.scrapeErrors
}

// Collect implements prometheus.Collector. Failed reads are logged and
// counted; the remaining metrics are still reported.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	failed := 0
	fail := func(what string, err error) {
		failed++
		logger.Warn("metrics: reading %s: %v", what, err)
	}

	for _, s := range c.backends.List() {
		ch <- prometheus.MustNewConstMetric(c.supported, prometheus.GaugeValue, boolValue(s.Supported), s.Name.String())
	}
	name, err := c.backends.Current()
	if err != nil {
		// Nothing else can be read without a backend.
		fail("backend", err)
		ch <- prometheus.MustNewConstMetric(c.scrapeErrors, prometheus.GaugeValue, float64(failed))
		return
	}
	ch <- prometheus.MustNewConstMetric(c.active, prometheus.GaugeValue, 1, name.String())

	if turbo, err := c.control.Turbo(c.ctx); err != nil {
		fail("turbo", err)
	} else {
		ch <- prometheus.MustNewConstMetric(c.turbo, prometheus.GaugeValue, boolValue(turbo.Enabled()))
	}

	if lo, err := c.control.Min(c.ctx); err != nil {
		fail("min", err)
	} else {
		ch <- prometheus.MustNewConstMetric(c.minLimit, prometheus.GaugeValue, float64(lo))
	}

	if hi, err := c.control.Max(c.ctx); err != nil {
		fail("max", err)
	} else {
		ch <- prometheus.MustNewConstMetric(c.maxLimit, prometheus.GaugeValue, float64(hi))
	}

	if freqs, err := c.control.CoreFrequencies(c.ctx); err != nil {
		fail("core frequencies", err)
	} else {
		for i, f := range freqs {
			ch <- prometheus.MustNewConstMetric(c.coreFreq, prometheus.GaugeValue, float64(f), strconv.Itoa(i))
		}
	}

	ch <- prometheus.MustNewConstMetric(c.scrapeErrors, prometheus.GaugeValue, float64(failed))
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
