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

package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/innovationmech/hello/internal/hello/types"
)

// Version reported by the health endpoint.
const Version = "1.0.0"

// Handler serves the liveness endpoint. It has no dependency on the greeter.
type Handler struct {
	startTime time.Time
	now       func() time.Time
}

// NewHandler creates a new health HTTP handler
func NewHandler() *Handler {
	return &Handler{
		startTime: time.Now(),
		now:       time.Now,
	}
}

// HealthCheck reports that the service is up
//
//	@Summary	Health check
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	types.HealthStatus
//	@Router		/health [get]
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, types.NewHealthStatus(
		types.HealthStatusHealthy,
		Version,
		h.now().Sub(h.startTime),
	))
}

// RegisterRoutes implements RouteRegistrar
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) error {
	rg.GET("/health", h.HealthCheck)
	return nil
}

// GetName implements RouteRegistrar
func (h *Handler) GetName() string {
	return "health"
}

// GetVersion implements RouteRegistrar
func (h *Handler) GetVersion() string {
	return "root"
}

// GetPrefix implements RouteRegistrar
func (h *Handler) GetPrefix() string {
	return ""
}
