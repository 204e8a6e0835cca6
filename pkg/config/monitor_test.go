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
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) IncrementCounter(name string, labels map[string]string) {
	m.Called(name, labels)
}

func (m *mockRecorder) SetGauge(name string, value float64, labels map[string]string) {
	m.Called(name, value, labels)
}

func newTestMonitor(t *testing.T, recorder MetricsRecorder) (*ReloadMonitor, string) {
	t.Helper()
	dir := t.TempDir()
	m := NewManager(Options{WorkDir: dir, ConfigBaseName: "hello", ConfigType: "yaml", EnvironmentName: "dev"})
	m.SetDefault("logging.level", "info")
	m.SetDefault("server.port", 8000)

	monitor := NewReloadMonitor(m, recorder)
	monitor.now = func() time.Time { return time.Unix(1700000000, 0) }
	return monitor, dir
}

func TestReloadMonitor_HandleChange(t *testing.T) {
	recorder := &mockRecorder{}
	monitor, dir := newTestMonitor(t, recorder)

	recorder.On("IncrementCounter", MetricConfigReloadsTotal, map[string]string{"layer": "env"}).Once()
	recorder.On("SetGauge", MetricConfigLastReload, float64(1700000000), map[string]string(nil)).Once()
	recorder.On("SetGauge", MetricConfigChangedItems, float64(1), map[string]string(nil)).Once()

	monitor.HandleChange(Change{
		Path: filepath.Join(dir, "hello.dev.yaml"),
		Settings: map[string]interface{}{
			"logging": map[string]interface{}{"level": "debug"},
			"server":  map[string]interface{}{"port": 8000},
		},
	})

	recorder.AssertExpectations(t)
}

func TestReloadMonitor_HandleError(t *testing.T) {
	recorder := &mockRecorder{}
	monitor, _ := newTestMonitor(t, recorder)

	recorder.On("IncrementCounter", MetricConfigReloadErrorsTotal, map[string]string(nil)).Once()

	monitor.HandleChange(Change{Err: errors.New("bad yaml")})

	recorder.AssertExpectations(t)
	recorder.AssertNotCalled(t, "SetGauge", mock.Anything, mock.Anything, mock.Anything)
}

func TestReloadMonitor_ClassifyLayer(t *testing.T) {
	monitor, dir := newTestMonitor(t, &mockRecorder{})

	tests := map[string]string{
		"":                                        "unknown",
		filepath.Join(dir, "hello.yaml"):          "base",
		filepath.Join(dir, "hello.dev.yaml"):      "env",
		filepath.Join(dir, "hello.override.yaml"): "override",
		filepath.Join(dir, "other.yaml"):          "other",
	}
	for path, want := range tests {
		assert.Equal(t, want, monitor.classifyLayer(path), path)
	}
}

func TestDiffCount(t *testing.T) {
	a := map[string]interface{}{
		"server":  map[string]interface{}{"port": 8000, "host": "0.0.0.0"},
		"origins": []interface{}{"*"},
	}
	b := map[string]interface{}{
		"server":  map[string]interface{}{"port": 9000, "host": "0.0.0.0"},
		"origins": []interface{}{"*", "http://localhost"},
		"extra":   true,
	}

	assert.Equal(t, 0, diffCount(a, cloneSettings(a)))
	assert.Equal(t, 3, diffCount(a, b))
	assert.Equal(t, 0, diffCount(nil, nil))
}
