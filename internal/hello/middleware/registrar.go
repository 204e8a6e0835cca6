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
	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"

	"github.com/innovationmech/hello/pkg/metrics"
	"github.com/innovationmech/hello/pkg/middleware"
	"github.com/innovationmech/hello/pkg/tracing"
)

// GlobalMiddlewareRegistrar installs the middleware chain shared by every route.
type GlobalMiddlewareRegistrar struct {
	hub       *sentry.Hub
	collector *metrics.Collector
	tracer    *tracing.Manager
	cors      *middleware.CORSConfig
	accessLog *middleware.RequestLoggerConfig
}

// NewGlobalMiddlewareRegistrar creates the global middleware registrar. A nil
// collector disables request metrics; nil cors or accessLog use the defaults.
func NewGlobalMiddlewareRegistrar(hub *sentry.Hub, collector *metrics.Collector, tracer *tracing.Manager, cors *middleware.CORSConfig, accessLog *middleware.RequestLoggerConfig) *GlobalMiddlewareRegistrar {
	return &GlobalMiddlewareRegistrar{
		hub:       hub,
		collector: collector,
		tracer:    tracer,
		cors:      cors,
		accessLog: accessLog,
	}
}

// RegisterMiddleware implements MiddlewareRegistrar
func (gmr *GlobalMiddlewareRegistrar) RegisterMiddleware(router *gin.Engine) error {
	// Recovery wraps everything else so a panic anywhere still yields a JSON 500.
	router.Use(
		middleware.Recovery(gmr.hub),
		middleware.RequestLoggerWithConfig(gmr.accessLog),
		middleware.CORS(gmr.cors),
		middleware.Tracing(gmr.tracer),
	)
	if gmr.collector != nil {
		router.Use(middleware.HTTPMetrics(gmr.collector, nil))
	}
	return nil
}

// GetName implements MiddlewareRegistrar
func (gmr *GlobalMiddlewareRegistrar) GetName() string {
	return "global-middleware"
}

// GetPriority implements MiddlewareRegistrar
func (gmr *GlobalMiddlewareRegistrar) GetPriority() int {
	return 1
}
