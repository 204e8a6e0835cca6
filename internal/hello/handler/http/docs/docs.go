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

package docs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/swaggo/swag"
	"go.uber.org/zap"

	apidocs "github.com/innovationmech/hello/internal/hello/docs"
	"github.com/innovationmech/hello/pkg/logger"
)

// Handler serves the registered OpenAPI document.
type Handler struct {
	instanceName string
}

// NewHandler creates a docs handler for the default swag instance.
func NewHandler() *Handler {
	return &Handler{instanceName: apidocs.SwaggerInfo.InfoInstanceName}
}

// APIDocs writes the OpenAPI document as JSON.
func (h *Handler) APIDocs(c *gin.Context) {
	doc, err := swag.ReadDoc(h.instanceName)
	if err != nil {
		logger.FromContext(c.Request.Context()).Error("Failed to read API docs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
}

// RegisterRoutes implements RouteRegistrar
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) error {
	rg.GET("/api-docs", h.APIDocs)
	return nil
}

// GetName implements RouteRegistrar
func (h *Handler) GetName() string {
	return "docs"
}

// GetVersion implements RouteRegistrar
func (h *Handler) GetVersion() string {
	return "root"
}

// GetPrefix implements RouteRegistrar
func (h *Handler) GetPrefix() string {
	return ""
}
