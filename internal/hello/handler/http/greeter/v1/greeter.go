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

package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/innovationmech/hello/internal/hello/interfaces"
	"github.com/innovationmech/hello/internal/hello/types"
	"github.com/innovationmech/hello/pkg/logger"
)

// Query defaults shared by the greeting routes.
const (
	DefaultName     = "World"
	DefaultLanguage = "en"
)

// Handler handles HTTP requests for the greeter service and implements RouteRegistrar.
type Handler struct {
	service interfaces.GreeterService
}

// NewHandler creates a new greeter HTTP handler
func NewHandler(service interfaces.GreeterService) *Handler {
	return &Handler{
		service: service,
	}
}

// Greet renders a greeting record from the query string
//
//	@Summary		Greet someone
//	@Description	Render a greeting. Unknown languages fall back to English but are echoed back as requested.
//	@Tags			greeter
//	@Produce		json
//	@Param			name		query		string	false	"Name to greet"		default(World)
//	@Param			language	query		string	false	"Language code"		default(en)
//	@Success		200			{object}	types.GreetingRecord
//	@Router			/greet [get]
func (h *Handler) Greet(c *gin.Context) {
	name := c.DefaultQuery("name", DefaultName)
	language := c.DefaultQuery("language", DefaultLanguage)

	record := h.service.BuildRecord(name, language)
	logger.FromContext(c.Request.Context()).Debug("Greeting served",
		zap.String("language", language),
		zap.String("path", c.Request.URL.Path))

	c.JSON(http.StatusOK, record)
}

// ListLanguages returns the supported language codes
//
//	@Summary		List languages
//	@Tags			greeter
//	@Produce		json
//	@Success		200	{array}	string
//	@Router			/languages [get]
func (h *Handler) ListLanguages(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Languages())
}

// GetLanguage describes one language. Unsupported codes get an inline error object with status 200.
//
//	@Summary		Describe a language
//	@Tags			greeter
//	@Produce		json
//	@Param			language	path		string	true	"Language code"
//	@Success		200			{object}	types.LanguageInfo
//	@Router			/languages/{language} [get]
func (h *Handler) GetLanguage(c *gin.Context) {
	language := c.Param("language")

	template, ok := h.service.Template(language)
	if !ok {
		c.JSON(http.StatusOK, types.ErrorResponse{
			Error: fmt.Sprintf("Language '%s' not supported", language),
		})
		return
	}

	c.JSON(http.StatusOK, types.LanguageInfo{
		Language: language,
		Template: template,
		Example:  h.service.Greet(DefaultName, language),
	})
}

// RegisterRoutes implements RouteRegistrar
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) error {
	rg.GET("/", h.Greet)
	rg.GET("/greet", h.Greet)
	rg.GET("/languages", h.ListLanguages)
	rg.GET("/languages/:language", h.GetLanguage)
	return nil
}

// GetName implements RouteRegistrar
func (h *Handler) GetName() string {
	return "greeter"
}

// GetVersion implements RouteRegistrar
func (h *Handler) GetVersion() string {
	return "root"
}

// GetPrefix implements RouteRegistrar
func (h *Handler) GetPrefix() string {
	return ""
}
