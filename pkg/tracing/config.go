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

package tracing

import (
	"fmt"
	"time"
)

// Config represents the tracing configuration.
type Config struct {
	Enabled     bool           `mapstructure:"enabled" yaml:"enabled"`
	ServiceName string         `mapstructure:"service_name" yaml:"service_name"`
	Sampling    SamplingConfig `mapstructure:"sampling" yaml:"sampling"`
	Exporter    ExporterConfig `mapstructure:"exporter" yaml:"exporter"`
}

// SamplingConfig represents sampling strategy configuration
type SamplingConfig struct {
	Type string  `mapstructure:"type" yaml:"type"` // always_on, always_off, traceidratio
	Rate float64 `mapstructure:"rate" yaml:"rate"` // 0.0-1.0 for traceidratio
}

// ExporterConfig represents the exporter configuration
type ExporterConfig struct {
	Type     string            `mapstructure:"type" yaml:"type"`         // console, otlp
	Protocol string            `mapstructure:"protocol" yaml:"protocol"` // grpc, http (otlp only)
	Endpoint string            `mapstructure:"endpoint" yaml:"endpoint"`
	Insecure bool              `mapstructure:"insecure" yaml:"insecure"`
	Headers  map[string]string `mapstructure:"headers" yaml:"headers"`
	Timeout  string            `mapstructure:"timeout" yaml:"timeout"`
}

// DefaultConfig returns a default tracing configuration
func DefaultConfig() *Config {
	return &Config{
		Enabled:     false,
		ServiceName: "hello-serve",
		Sampling: SamplingConfig{
			Type: "always_on",
			Rate: 1.0,
		},
		Exporter: ExporterConfig{
			Type:     "console",
			Protocol: "grpc",
			Timeout:  "10s",
		},
	}
}

// Validate validates the tracing configuration
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}

	if c.ServiceName == "" {
		return fmt.Errorf("service_name is required when tracing is enabled")
	}

	if err := c.Sampling.Validate(); err != nil {
		return fmt.Errorf("sampling configuration invalid: %w", err)
	}

	if err := c.Exporter.Validate(); err != nil {
		return fmt.Errorf("exporter configuration invalid: %w", err)
	}

	return nil
}

// Validate validates the sampling configuration
func (s *SamplingConfig) Validate() error {
	switch s.Type {
	case "always_on", "always_off":
	case "traceidratio":
		if s.Rate < 0.0 || s.Rate > 1.0 {
			return fmt.Errorf("sampling rate must be between 0.0 and 1.0, got %f", s.Rate)
		}
	case "":
		return fmt.Errorf("sampling type is required")
	default:
		return fmt.Errorf("unsupported sampling type: %s", s.Type)
	}
	return nil
}

// Validate validates the exporter configuration
func (e *ExporterConfig) Validate() error {
	switch e.Type {
	case "console":
	case "otlp":
		if e.Endpoint == "" {
			return fmt.Errorf("otlp exporter requires endpoint")
		}
		switch e.Protocol {
		case "", "grpc", "http":
		default:
			return fmt.Errorf("unsupported otlp protocol: %s", e.Protocol)
		}
	case "":
		return fmt.Errorf("exporter type is required")
	default:
		return fmt.Errorf("unsupported exporter type: %s", e.Type)
	}

	if e.Timeout != "" {
		if _, err := time.ParseDuration(e.Timeout); err != nil {
			return fmt.Errorf("invalid timeout format: %w", err)
		}
	}

	return nil
}

// GetTimeout returns the parsed timeout duration or a default value
func (e *ExporterConfig) GetTimeout() time.Duration {
	if e.Timeout == "" {
		return 10 * time.Second
	}

	duration, err := time.ParseDuration(e.Timeout)
	if err != nil {
		return 10 * time.Second
	}

	return duration
}
