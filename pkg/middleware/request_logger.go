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
	"bytes"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/innovationmech/hello/pkg/logger"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// RequestLoggerConfig controls the access log.
type RequestLoggerConfig struct {
	// SkipPaths are served with a request id but without an access log line.
	SkipPaths       []string `mapstructure:"skip_paths" yaml:"skip_paths" json:"skip_paths"`
	IncludeQuery    bool     `mapstructure:"include_query" yaml:"include_query" json:"include_query"`
	LogResponseBody bool     `mapstructure:"log_response_body" yaml:"log_response_body" json:"log_response_body"`
	MaxBodySize     int      `mapstructure:"max_body_size" yaml:"max_body_size" json:"max_body_size" validate:"gte=0"`
}

// DefaultRequestLoggerConfig skips the probe and scrape endpoints.
func DefaultRequestLoggerConfig() *RequestLoggerConfig {
	return &RequestLoggerConfig{
		SkipPaths:    []string{"/health", "/metrics", "/api-docs"},
		IncludeQuery: true,
		MaxBodySize:  1024,
	}
}

// RequestLogger logs every request with the default configuration.
func RequestLogger() gin.HandlerFunc {
	return RequestLoggerWithConfig(DefaultRequestLoggerConfig())
}

// RequestLoggerWithConfig assigns a request id to every request, stores it in the
// request context and logs the outcome once the handlers are done.
func RequestLoggerWithConfig(config *RequestLoggerConfig) gin.HandlerFunc {
	if config == nil {
		config = DefaultRequestLoggerConfig()
	}

	skip := make(map[string]bool, len(config.SkipPaths))
	for _, path := range config.SkipPaths {
		skip[path] = true
	}

	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
			c.Header(RequestIDHeader, requestID)
		}
		c.Set(string(logger.ContextKeyRequestID), requestID)
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), requestID))

		if skip[c.Request.URL.Path] {
			c.Next()
			return
		}

		var body *bodyRecorder
		if config.LogResponseBody && config.MaxBodySize > 0 {
			body = &bodyRecorder{ResponseWriter: c.Writer, limit: config.MaxBodySize}
			c.Writer = body
		}

		start := time.Now()
		c.Next()

		path := c.Request.URL.Path
		if config.IncludeQuery && c.Request.URL.RawQuery != "" {
			path += "?" + c.Request.URL.RawQuery
		}
		status := c.Writer.Status()

		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("route", c.FullPath()),
			zap.Int("status", status),
			zap.Float64("latency_ms", float64(time.Since(start).Microseconds())/1e3),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
			zap.Int("response_size", c.Writer.Size()),
		}
		if body != nil {
			fields = append(fields, zap.ByteString("response_body", body.buf.Bytes()))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.Strings("errors", c.Errors.Errors()))
		}

		log := logger.GetLogger()
		switch {
		case status >= 500:
			log.Error("HTTP request failed", fields...)
		case status >= 400:
			log.Warn("HTTP request client error", fields...)
		default:
			log.Info("HTTP request completed", fields...)
		}
	}
}

// bodyRecorder keeps the first limit bytes of the response for the access log.
type bodyRecorder struct {
	gin.ResponseWriter
	buf   bytes.Buffer
	limit int
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	if room := w.limit - w.buf.Len(); room > 0 {
		if len(b) < room {
			room = len(b)
		}
		w.buf.Write(b[:room])
	}
	return w.ResponseWriter.Write(b)
}
