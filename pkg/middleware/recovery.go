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
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/innovationmech/hello/pkg/logger"
)

// Recovery turns handler panics into a 500 JSON response. The panic is logged and,
// when hub has a Sentry client bound, reported to Sentry. A nil hub uses the
// process-wide hub.
func Recovery(hub *sentry.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		base := hub
		if base == nil {
			base = sentry.CurrentHub()
		}
		requestHub := base.Clone()
		requestHub.Scope().SetRequest(c.Request)
		c.Request = c.Request.WithContext(sentry.SetHubOnContext(c.Request.Context(), requestHub))

		defer func() {
			rval := recover()
			if rval == nil {
				return
			}

			err := panicError(rval)
			logger.FromContext(c.Request.Context()).Error("Recovered from panic",
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
				zap.ByteString("stack", debug.Stack()))

			if requestHub.Client() != nil {
				requestHub.WithScope(func(scope *sentry.Scope) {
					scope.SetLevel(sentry.LevelFatal)
					scope.SetTag("component", "http")
					scope.SetTag("http.route", c.FullPath())
					scope.SetTag("panic", "true")
					requestHub.CaptureException(err)
				})
				requestHub.Flush(2 * time.Second)
			}

			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "Internal Server Error",
			})
		}()

		c.Next()
	}
}

func panicError(rval interface{}) error {
	switch x := rval.(type) {
	case string:
		return fmt.Errorf("panic: %s", x)
	case error:
		return fmt.Errorf("panic: %w", x)
	default:
		return fmt.Errorf("panic: %v", x)
	}
}
