// Copyright © 2025 jackelyj <dreamerlyj@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
//

package metrics

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
	"go.uber.org/zap"

	"github.com/innovationmech/hello/pkg/logger"
)

// Config holds configuration for the Prometheus collector.
type Config struct {
	Enabled   bool      `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	Endpoint  string    `mapstructure:"endpoint" yaml:"endpoint" json:"endpoint" validate:"omitempty,startswith=/"`
	Namespace string    `mapstructure:"namespace" yaml:"namespace" json:"namespace"`
	Subsystem string    `mapstructure:"subsystem" yaml:"subsystem" json:"subsystem"`
	Buckets   []float64 `mapstructure:"buckets" yaml:"buckets" json:"buckets"`
}

// DefaultConfig returns the collector defaults.
func DefaultConfig() *Config {
	return &Config{
		Enabled:   true,
		Endpoint:  "/metrics",
		Namespace: "hello",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
	}
}

// Collector creates labeled Prometheus vectors on first use and registers them
// in its own registry. Label names are fixed by the first call for a metric.
type Collector struct {
	config     *Config
	registry   *prometheus.Registry
	counters   map[string]*prometheus.CounterVec
	gauges     map[string]*prometheus.GaugeVec
	histograms map[string]*prometheus.HistogramVec
	mu         sync.RWMutex
}

// NewCollector creates a collector with a fresh registry that also exports Go
// runtime and process metrics.
func NewCollector(config *Config) *Collector {
	if config == nil {
		config = DefaultConfig()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Collector{
		config:     config,
		registry:   registry,
		counters:   make(map[string]*prometheus.CounterVec),
		gauges:     make(map[string]*prometheus.GaugeVec),
		histograms: make(map[string]*prometheus.HistogramVec),
	}
}

// IncrementCounter increments a counter metric by 1.
func (c *Collector) IncrementCounter(name string, labels map[string]string) {
	c.safe(name, func() error {
		counter, err := c.counter(name, labels)
		if err != nil {
			return err
		}
		counter.With(labels).Inc()
		return nil
	})
}

// AddGauge adds delta to a gauge metric.
func (c *Collector) AddGauge(name string, delta float64, labels map[string]string) {
	c.safe(name, func() error {
		gauge, err := c.gauge(name, labels)
		if err != nil {
			return err
		}
		gauge.With(labels).Add(delta)
		return nil
	})
}

// SetGauge sets a gauge metric to value.
func (c *Collector) SetGauge(name string, value float64, labels map[string]string) {
	c.safe(name, func() error {
		gauge, err := c.gauge(name, labels)
		if err != nil {
			return err
		}
		gauge.With(labels).Set(value)
		return nil
	})
}

// ObserveHistogram adds an observation to a histogram metric.
func (c *Collector) ObserveHistogram(name string, value float64, labels map[string]string) {
	c.safe(name, func() error {
		histogram, err := c.histogram(name, labels)
		if err != nil {
			return err
		}
		histogram.With(labels).Observe(value)
		return nil
	})
}

// Handler returns the HTTP handler exposing the registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// CounterValue returns the current value of a counter series, gathered from the registry.
func (c *Collector) CounterValue(name string, labels map[string]string) (float64, bool) {
	m, ok := c.find(name, dto.MetricType_COUNTER, labels)
	if !ok {
		return 0, false
	}
	return m.GetCounter().GetValue(), true
}

// GaugeValue returns the current value of a gauge series.
func (c *Collector) GaugeValue(name string, labels map[string]string) (float64, bool) {
	m, ok := c.find(name, dto.MetricType_GAUGE, labels)
	if !ok {
		return 0, false
	}
	return m.GetGauge().GetValue(), true
}

// HistogramCount returns the sample count of a histogram series.
func (c *Collector) HistogramCount(name string, labels map[string]string) (uint64, bool) {
	m, ok := c.find(name, dto.MetricType_HISTOGRAM, labels)
	if !ok {
		return 0, false
	}
	return m.GetHistogram().GetSampleCount(), true
}

func (c *Collector) find(name string, typ dto.MetricType, labels map[string]string) (*dto.Metric, bool) {
	families, err := c.registry.Gather()
	if err != nil {
		logger.GetLogger().Warn("Failed to gather metrics", zap.Error(err))
		return nil, false
	}
	fqName := c.fqName(name)
	for _, mf := range families {
		if mf.GetName() != fqName || mf.GetType() != typ {
			continue
		}
		for _, m := range mf.GetMetric() {
			if labelsMatch(m.GetLabel(), labels) {
				return m, true
			}
		}
	}
	return nil, false
}

func labelsMatch(pairs []*dto.LabelPair, labels map[string]string) bool {
	if len(pairs) != len(labels) {
		return false
	}
	for _, lp := range pairs {
		if v, ok := labels[lp.GetName()]; !ok || v != lp.GetValue() {
			return false
		}
	}
	return true
}

func (c *Collector) counter(name string, labels map[string]string) (*prometheus.CounterVec, error) {
	c.mu.RLock()
	counter, ok := c.counters[name]
	c.mu.RUnlock()
	if ok {
		return counter, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if counter, ok := c.counters[name]; ok {
		return counter, nil
	}

	counter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: c.config.Namespace,
		Subsystem: c.config.Subsystem,
		Name:      sanitize(name),
		Help:      fmt.Sprintf("Counter metric %s", name),
	}, labelNames(labels))
	if err := c.registry.Register(counter); err != nil {
		return nil, fmt.Errorf("failed to register counter %s: %w", name, err)
	}
	c.counters[name] = counter
	return counter, nil
}

func (c *Collector) gauge(name string, labels map[string]string) (*prometheus.GaugeVec, error) {
	c.mu.RLock()
	gauge, ok := c.gauges[name]
	c.mu.RUnlock()
	if ok {
		return gauge, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gauge, ok := c.gauges[name]; ok {
		return gauge, nil
	}

	gauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: c.config.Namespace,
		Subsystem: c.config.Subsystem,
		Name:      sanitize(name),
		Help:      fmt.Sprintf("Gauge metric %s", name),
	}, labelNames(labels))
	if err := c.registry.Register(gauge); err != nil {
		return nil, fmt.Errorf("failed to register gauge %s: %w", name, err)
	}
	c.gauges[name] = gauge
	return gauge, nil
}

func (c *Collector) histogram(name string, labels map[string]string) (*prometheus.HistogramVec, error) {
	c.mu.RLock()
	histogram, ok := c.histograms[name]
	c.mu.RUnlock()
	if ok {
		return histogram, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if histogram, ok := c.histograms[name]; ok {
		return histogram, nil
	}

	buckets := c.config.Buckets
	if len(buckets) == 0 {
		buckets = prometheus.DefBuckets
	}
	histogram = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: c.config.Namespace,
		Subsystem: c.config.Subsystem,
		Name:      sanitize(name),
		Help:      fmt.Sprintf("Histogram metric %s", name),
		Buckets:   buckets,
	}, labelNames(labels))
	if err := c.registry.Register(histogram); err != nil {
		return nil, fmt.Errorf("failed to register histogram %s: %w", name, err)
	}
	c.histograms[name] = histogram
	return histogram, nil
}

// safe keeps metric failures (label mismatch, registration conflicts) away from request handling.
func (c *Collector) safe(name string, op func() error) {
	defer func() {
		if r := recover(); r != nil {
			logger.GetLogger().Error("Metric operation panicked",
				zap.String("metric", name),
				zap.Any("panic", r))
		}
	}()
	if err := op(); err != nil {
		logger.GetLogger().Warn("Metric operation failed",
			zap.String("metric", name),
			zap.Error(err))
	}
}

func (c *Collector) fqName(name string) string {
	return prometheus.BuildFQName(c.config.Namespace, c.config.Subsystem, sanitize(name))
}

func labelNames(labels map[string]string) []string {
	if len(labels) == 0 {
		return nil
	}
	names := make([]string, 0, len(labels))
	for name := range labels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == ':':
			return r
		default:
			return '_'
		}
	}, name)
}
