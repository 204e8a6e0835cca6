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
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/innovationmech/hello/pkg/config"
	"github.com/innovationmech/hello/pkg/metrics"
	"github.com/innovationmech/hello/pkg/middleware"
	"github.com/innovationmech/hello/pkg/tracing"
)

// ServeConfig is the typed configuration of hello-serve.
type ServeConfig struct {
	Server  ServerConfig          `mapstructure:"server"`
	Logging LoggingConfig         `mapstructure:"logging"`
	Greeter GreeterConfig         `mapstructure:"greeter"`
	Metrics metrics.Config        `mapstructure:"metrics"`
	Tracing tracing.Config        `mapstructure:"tracing"`
	Sentry  SentryConfig          `mapstructure:"sentry"`
	CORS    middleware.CORSConfig `mapstructure:"cors"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host            string        `mapstructure:"host" validate:"omitempty,hostname|ip"`
	Port            int           `mapstructure:"port" validate:"min=0,max=65535"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gte=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gte=0"`
}

// LoggingConfig configures the global logger.
type LoggingConfig struct {
	Level   string                         `mapstructure:"level" validate:"oneof=debug info warn error dpanic panic fatal"`
	Request middleware.RequestLoggerConfig `mapstructure:"request"`
}

// GreeterConfig configures the greeting service.
type GreeterConfig struct {
	ServerTag string `mapstructure:"server_tag" validate:"required"`
}

// SentryConfig configures error reporting for recovered panics.
type SentryConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	DSN         string  `mapstructure:"dsn" validate:"required_if=Enabled true"`
	Environment string  `mapstructure:"environment"`
	SampleRate  float64 `mapstructure:"sample_rate" validate:"min=0,max=1"`
	Debug       bool    `mapstructure:"debug"`
}

// Address returns the listen address.
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SetDefaults registers every ServeConfig key with its default value. Keys must be
// known to viper so that HELLO_* environment variables can override them.
func SetDefaults(m *config.Manager) {
	metricsDefaults := metrics.DefaultConfig()
	tracingDefaults := tracing.DefaultConfig()
	corsDefaults := middleware.DefaultCORSConfig()
	accessLogDefaults := middleware.DefaultRequestLoggerConfig()

	m.SetDefault("server.host", "127.0.0.1")
	m.SetDefault("server.port", 8000)
	m.SetDefault("server.shutdown_timeout", 5*time.Second)
	m.SetDefault("server.read_timeout", 10*time.Second)
	m.SetDefault("server.write_timeout", 10*time.Second)

	m.SetDefault("logging.level", "info")
	m.SetDefault("logging.request.skip_paths", accessLogDefaults.SkipPaths)
	m.SetDefault("logging.request.include_query", accessLogDefaults.IncludeQuery)
	m.SetDefault("logging.request.log_response_body", accessLogDefaults.LogResponseBody)
	m.SetDefault("logging.request.max_body_size", accessLogDefaults.MaxBodySize)

	m.SetDefault("greeter.server_tag", "Python/FastAPI")

	m.SetDefault("metrics.enabled", metricsDefaults.Enabled)
	m.SetDefault("metrics.endpoint", metricsDefaults.Endpoint)
	m.SetDefault("metrics.namespace", metricsDefaults.Namespace)
	m.SetDefault("metrics.subsystem", metricsDefaults.Subsystem)
	m.SetDefault("metrics.buckets", metricsDefaults.Buckets)

	m.SetDefault("tracing.enabled", tracingDefaults.Enabled)
	m.SetDefault("tracing.service_name", tracingDefaults.ServiceName)
	m.SetDefault("tracing.sampling.type", tracingDefaults.Sampling.Type)
	m.SetDefault("tracing.sampling.rate", tracingDefaults.Sampling.Rate)
	m.SetDefault("tracing.exporter.type", tracingDefaults.Exporter.Type)
	m.SetDefault("tracing.exporter.protocol", tracingDefaults.Exporter.Protocol)
	m.SetDefault("tracing.exporter.endpoint", tracingDefaults.Exporter.Endpoint)
	m.SetDefault("tracing.exporter.insecure", tracingDefaults.Exporter.Insecure)
	m.SetDefault("tracing.exporter.timeout", tracingDefaults.Exporter.Timeout)

	m.SetDefault("sentry.enabled", false)
	m.SetDefault("sentry.dsn", "")
	m.SetDefault("sentry.environment", "development")
	m.SetDefault("sentry.sample_rate", 1.0)
	m.SetDefault("sentry.debug", false)

	m.SetDefault("cors.allow_origins", corsDefaults.AllowOrigins)
	m.SetDefault("cors.allow_methods", corsDefaults.AllowMethods)
	m.SetDefault("cors.allow_headers", corsDefaults.AllowHeaders)
	m.SetDefault("cors.expose_headers", corsDefaults.ExposeHeaders)
	m.SetDefault("cors.allow_credentials", corsDefaults.AllowCredentials)
	m.SetDefault("cors.max_age", corsDefaults.MaxAge)
}

// Load reads every configuration layer of m into a validated ServeConfig.
func Load(m *config.Manager) (*ServeConfig, error) {
	SetDefaults(m)
	if err := m.Load(); err != nil {
		return nil, err
	}

	cfg := &ServeConfig{}
	if err := m.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints and the nested tracing configuration.
func (c *ServeConfig) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		return err
	}
	if err := c.Tracing.Validate(); err != nil {
		return fmt.Errorf("invalid tracing config: %w", err)
	}
	return nil
}
