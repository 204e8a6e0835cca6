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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgconfig "github.com/innovationmech/hello/pkg/config"
	"github.com/innovationmech/hello/pkg/config/testutil"
)

func managerFor(sandbox *testutil.Sandbox) *pkgconfig.Manager {
	opts := pkgconfig.DefaultOptions()
	opts.WorkDir = sandbox.Dir
	return pkgconfig.NewManager(opts)
}

func newManager(t *testing.T, files map[string]string) *pkgconfig.Manager {
	t.Helper()
	sandbox := testutil.NewSandbox(t)
	for name, content := range files {
		sandbox.WriteFile(name, content)
	}
	return managerFor(sandbox)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(newManager(t, nil))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8000", cfg.Server.Address())
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "Python/FastAPI", cfg.Greeter.ServerTag)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Endpoint)
	assert.False(t, cfg.Tracing.Enabled)
	assert.Equal(t, "hello-serve", cfg.Tracing.ServiceName)
	assert.False(t, cfg.Sentry.Enabled)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowOrigins)
	assert.Equal(t, 12*time.Hour, cfg.CORS.MaxAge)
	assert.Equal(t, []string{"/health", "/metrics", "/api-docs"}, cfg.Logging.Request.SkipPaths)
	assert.True(t, cfg.Logging.Request.IncludeQuery)
	assert.False(t, cfg.Logging.Request.LogResponseBody)
	assert.Equal(t, 1024, cfg.Logging.Request.MaxBodySize)
}

func TestLoad_FileAndEnvLayers(t *testing.T) {
	sandbox := testutil.NewSandbox(t)
	sandbox.SetEnv("HELLO_SERVER_PORT", "9090")
	sandbox.SetEnv("HELLO_LOGGING_REQUEST_INCLUDE_QUERY", "false")
	sandbox.WriteFile("hello.yaml", `
server:
  host: 0.0.0.0
  port: 8080
  shutdown_timeout: 2s
logging:
  level: debug
greeter:
  server_tag: Go/Gin
cors:
  allow_origins:
    - http://localhost:3000
`)
	sandbox.WriteFile("hello.override.yaml", `
logging:
  request:
    skip_paths: [/health]
    log_response_body: true
`)

	cfg, err := Load(managerFor(sandbox))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.Server.Address())
	assert.Equal(t, 2*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "Go/Gin", cfg.Greeter.ServerTag)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowOrigins)
	assert.Equal(t, []string{"/health"}, cfg.Logging.Request.SkipPaths)
	assert.True(t, cfg.Logging.Request.LogResponseBody)
	assert.False(t, cfg.Logging.Request.IncludeQuery)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "bad_log_level", content: "logging: { level: loud }"},
		{name: "port_out_of_range", content: "server: { port: 70000 }"},
		{name: "empty_server_tag", content: "greeter: { server_tag: \"\" }"},
		{name: "sentry_without_dsn", content: "sentry: { enabled: true }"},
		{name: "sample_rate_too_high", content: "sentry: { sample_rate: 2 }"},
		{name: "bad_metrics_endpoint", content: "metrics: { endpoint: metrics }"},
		{name: "otlp_without_endpoint", content: "tracing: { enabled: true, exporter: { type: otlp } }"},
		{name: "negative_body_size", content: "logging: { request: { max_body_size: -1 } }"},
		{name: "malformed_yaml", content: "server: [unterminated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(newManager(t, map[string]string{"hello.yaml": tt.content}))
			assert.Error(t, err)
		})
	}
}

func TestValidate_SentryWithDSN(t *testing.T) {
	cfg, err := Load(newManager(t, map[string]string{
		"hello.yaml": "sentry: { enabled: true, dsn: \"https://public@sentry.example.com/1\" }",
	}))
	require.NoError(t, err)
	assert.True(t, cfg.Sentry.Enabled)
}
