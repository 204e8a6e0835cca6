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
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCollectorDefaults(t *testing.T) {
	c := NewCollector(nil)

	require.NotNil(t, c)
	assert.Equal(t, "hello", c.config.Namespace)
	assert.Equal(t, "/metrics", c.config.Endpoint)
	assert.NotNil(t, c.Registry())
}

func TestCollector_Counter(t *testing.T) {
	c := NewCollector(DefaultConfig())
	labels := map[string]string{"method": "GET", "status": "200"}

	c.IncrementCounter("requests_total", labels)
	c.IncrementCounter("requests_total", labels)
	c.IncrementCounter("requests_total", map[string]string{"method": "GET", "status": "404"})

	v, ok := c.CounterValue("requests_total", labels)
	require.True(t, ok)
	assert.Equal(t, float64(2), v)

	_, ok = c.CounterValue("requests_total", map[string]string{"method": "POST", "status": "200"})
	assert.False(t, ok)
}

func TestCollector_LabelMismatchDoesNotPanic(t *testing.T) {
	c := NewCollector(DefaultConfig())
	c.IncrementCounter("mismatch_total", map[string]string{"a": "1"})

	assert.NotPanics(t, func() {
		c.IncrementCounter("mismatch_total", map[string]string{"b": "2"})
	})
}

func TestCollector_Histogram(t *testing.T) {
	c := NewCollector(&Config{Namespace: "test", Subsystem: "unit"})
	labels := map[string]string{"endpoint": "/greet"}

	c.ObserveHistogram("duration_seconds", 0.02, labels)
	c.ObserveHistogram("duration_seconds", 0.5, labels)

	n, ok := c.HistogramCount("duration_seconds", labels)
	require.True(t, ok)
	assert.Equal(t, uint64(2), n)
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector(DefaultConfig())
	c.IncrementCounter("greetings_total", map[string]string{"language": "en"})
	c.AddGauge("in_flight", 1, nil)

	w := httptest.NewRecorder()
	c.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `hello_greetings_total{language="en"} 1`)
	assert.Contains(t, w.Body.String(), "hello_in_flight 1")
}

func TestCollector_Gauge(t *testing.T) {
	c := NewCollector(nil)

	c.AddGauge("active_requests", 2, nil)
	c.AddGauge("active_requests", -1, nil)
	v, ok := c.GaugeValue("active_requests", nil)
	require.True(t, ok)
	assert.Equal(t, float64(1), v)

	c.SetGauge("last_reload_timestamp_seconds", 1700000000, nil)
	v, ok = c.GaugeValue("last_reload_timestamp_seconds", nil)
	require.True(t, ok)
	assert.Equal(t, float64(1700000000), v)
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "http_requests_total", sanitize("http.requests-total"))
	assert.Equal(t, "ok_name", sanitize("ok_name"))
}
