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

package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/innovationmech/hello/pkg/metrics"
)

// Metric names recorded by the HTTP metrics middleware.
const (
	MetricRequestsTotal   = "http_requests_total"
	MetricRequestDuration = "http_request_duration_seconds"
	MetricActiveRequests  = "http_active_requests"
)

// HTTPMetricsConfig configures the HTTP middleware for Prometheus metrics
type HTTPMetricsConfig struct {
	// ExcludePaths contains path prefixes to exclude from metrics
	ExcludePaths []string `mapstructure:"exclude_paths" yaml:"exclude_paths" json:"exclude_paths"`
}

// DefaultHTTPMetricsConfig keeps the scrape and health endpoints out of the request metrics.
func DefaultHTTPMetricsConfig() *HTTPMetricsConfig {
	return &HTTPMetricsConfig{
		ExcludePaths: []string{"/health", "/metrics"},
	}
}

// HTTPMetrics records request count, latency and in-flight requests into collector.
func HTTPMetrics(collector *metrics.Collector, config *HTTPMetricsConfig) gin.HandlerFunc {
	if config == nil {
		config = DefaultHTTPMetricsConfig()
	}

	return func(c *gin.Context) {
		if collector == nil || shouldExcludePath(config.ExcludePaths, c.Request.URL.Path) {
			c.Next()
			return
		}

		start := time.Now()
		collector.AddGauge(MetricActiveRequests, 1, nil)
		defer collector.AddGauge(MetricActiveRequests, -1, nil)

		c.Next()

		endpoint := normalizedPath(c)
		collector.IncrementCounter(MetricRequestsTotal, map[string]string{
			"method":   c.Request.Method,
			"endpoint": endpoint,
			"status":   strconv.Itoa(c.Writer.Status()),
		})
		collector.ObserveHistogram(MetricRequestDuration, time.Since(start).Seconds(), map[string]string{
			"method":   c.Request.Method,
			"endpoint": endpoint,
		})
	}
}

func shouldExcludePath(excludePaths []string, path string) bool {
	for _, excludePath := range excludePaths {
		if strings.HasPrefix(path, excludePath) {
			return true
		}
	}
	return false
}

// normalizedPath prefers the route pattern so /languages/fr and /languages/de
// share one series. Unmatched requests collapse into a single label value.
func normalizedPath(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return "unmatched"
}
