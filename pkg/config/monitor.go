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

package config

import (
	"reflect"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/innovationmech/hello/pkg/logger"
)

// Metric names reported by ReloadMonitor.
const (
	MetricConfigReloadsTotal      = "config_reloads_total"
	MetricConfigReloadErrorsTotal = "config_reload_errors_total"
	MetricConfigChangedItems      = "config_changed_items"
	MetricConfigLastReload        = "config_last_reload_timestamp_seconds"
)

// MetricsRecorder is the subset of a metrics collector used by ReloadMonitor.
type MetricsRecorder interface {
	IncrementCounter(name string, labels map[string]string)
	SetGauge(name string, value float64, labels map[string]string)
}

// ReloadMonitor records hot-reload activity as metrics: which layer changed,
// how many settings differ from the previous load, and reload failures.
type ReloadMonitor struct {
	manager  *Manager
	recorder MetricsRecorder
	now      func() time.Time

	mu       sync.Mutex
	previous map[string]interface{}
}

// NewReloadMonitor creates a monitor whose baseline is the manager's current settings.
func NewReloadMonitor(manager *Manager, recorder MetricsRecorder) *ReloadMonitor {
	return &ReloadMonitor{
		manager:  manager,
		recorder: recorder,
		now:      time.Now,
		previous: cloneSettings(manager.AllSettings()),
	}
}

// HandleChange records a reload result. The caller owns the reloader's event loop.
func (rm *ReloadMonitor) HandleChange(change Change) {
	if change.Err != nil {
		rm.recorder.IncrementCounter(MetricConfigReloadErrorsTotal, nil)
		return
	}

	layer := rm.classifyLayer(change.Path)
	rm.recorder.IncrementCounter(MetricConfigReloadsTotal, map[string]string{"layer": layer})
	rm.recorder.SetGauge(MetricConfigLastReload, float64(rm.now().Unix()), nil)

	rm.mu.Lock()
	changed := diffCount(rm.previous, change.Settings)
	rm.previous = cloneSettings(change.Settings)
	rm.mu.Unlock()

	rm.recorder.SetGauge(MetricConfigChangedItems, float64(changed), nil)
	logger.GetLogger().Info("Configuration reloaded",
		zap.String("path", change.Path),
		zap.String("layer", layer),
		zap.Int("changed_items", changed))
}

// classifyLayer maps the changed file to its configuration layer label.
func (rm *ReloadMonitor) classifyLayer(path string) string {
	if path == "" {
		return "unknown"
	}
	abs := absPath(path)
	switch {
	case abs == absPath(rm.manager.filePathFor(BaseLayer)):
		return "base"
	case rm.manager.options.EnvironmentName != "" && abs == absPath(rm.manager.filePathFor(EnvironmentFileLayer)):
		return "env"
	case abs == absPath(rm.manager.filePathFor(OverrideFileLayer)):
		return "override"
	default:
		return "other"
	}
}

func cloneSettings(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return nil
	}
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = deepClone(v)
	}
	return out
}

func deepClone(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, vv := range val {
			out[k] = deepClone(vv)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i := range val {
			out[i] = deepClone(val[i])
		}
		return out
	default:
		return val
	}
}

// diffCount returns number of differing leaf nodes between two settings maps.
func diffCount(a, b map[string]interface{}) int {
	return countDiffRecursive(a, b)
}

func countDiffRecursive(a, b interface{}) int {
	if a == nil && b == nil {
		return 0
	}
	if a == nil || b == nil {
		return 1
	}

	switch av := a.(type) {
	case map[string]interface{}:
		bv, ok := b.(map[string]interface{})
		if !ok {
			return 1
		}
		keys := make(map[string]struct{})
		for k := range av {
			keys[k] = struct{}{}
		}
		for k := range bv {
			keys[k] = struct{}{}
		}
		count := 0
		for k := range keys {
			count += countDiffRecursive(av[k], bv[k])
		}
		return count
	case []interface{}:
		bv, ok := b.([]interface{})
		if !ok || len(av) != len(bv) {
			return 1
		}
		for i := range av {
			if countDiffRecursive(av[i], bv[i]) != 0 {
				return 1
			}
		}
		return 0
	default:
		if reflect.DeepEqual(a, b) {
			return 0
		}
		return 1
	}
}
