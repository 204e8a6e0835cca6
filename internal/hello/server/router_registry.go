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

package server

import (
	"sort"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/innovationmech/hello/pkg/logger"
)

// RootVersion registers a RouteRegistrar directly on the engine without a version prefix.
const RootVersion = "root"

// RouteRegistrar registers a group of routes.
type RouteRegistrar interface {
	// RegisterRoutes registers routes on the given group
	RegisterRoutes(rg *gin.RouterGroup) error
	// GetName returns the registrar name used in logs
	GetName() string
	// GetVersion returns the API version, or RootVersion
	GetVersion() string
	// GetPrefix returns the path prefix below the version group
	GetPrefix() string
}

// MiddlewareRegistrar registers engine-wide middleware.
type MiddlewareRegistrar interface {
	// RegisterMiddleware installs middleware on the router
	RegisterMiddleware(router *gin.Engine) error
	// GetName returns the middleware name
	GetName() string
	// GetPriority orders registrars; lower numbers run first
	GetPriority() int
}

// RouteRegistry collects route and middleware registrars and applies them to an engine.
type RouteRegistry struct {
	routeRegistrars      []RouteRegistrar
	middlewareRegistrars []MiddlewareRegistrar
}

// NewRouteRegistry creates an empty registry
func NewRouteRegistry() *RouteRegistry {
	return &RouteRegistry{
		routeRegistrars:      make([]RouteRegistrar, 0),
		middlewareRegistrars: make([]MiddlewareRegistrar, 0),
	}
}

// RegisterRoute adds a route registrar
func (rr *RouteRegistry) RegisterRoute(registrar RouteRegistrar) {
	logger.GetLogger().Debug("Registering route",
		zap.String("name", registrar.GetName()),
		zap.String("version", registrar.GetVersion()),
		zap.String("prefix", registrar.GetPrefix()))
	rr.routeRegistrars = append(rr.routeRegistrars, registrar)
}

// RegisterMiddleware adds a middleware registrar
func (rr *RouteRegistry) RegisterMiddleware(registrar MiddlewareRegistrar) {
	logger.GetLogger().Debug("Registering middleware",
		zap.String("name", registrar.GetName()),
		zap.Int("priority", registrar.GetPriority()))
	rr.middlewareRegistrars = append(rr.middlewareRegistrars, registrar)
}

// Setup installs all middleware, then all routes.
func (rr *RouteRegistry) Setup(router *gin.Engine) error {
	if err := rr.setupMiddlewares(router); err != nil {
		return err
	}

	if err := rr.setupRoutes(router); err != nil {
		return err
	}

	logger.GetLogger().Info("All routes and middlewares registered successfully",
		zap.Int("route_count", len(rr.routeRegistrars)),
		zap.Int("middleware_count", len(rr.middlewareRegistrars)))

	return nil
}

func (rr *RouteRegistry) setupMiddlewares(router *gin.Engine) error {
	sort.SliceStable(rr.middlewareRegistrars, func(i, j int) bool {
		return rr.middlewareRegistrars[i].GetPriority() < rr.middlewareRegistrars[j].GetPriority()
	})

	for _, registrar := range rr.middlewareRegistrars {
		if err := registrar.RegisterMiddleware(router); err != nil {
			logger.GetLogger().Error("Failed to register middleware",
				zap.String("name", registrar.GetName()),
				zap.Error(err))
			return err
		}
	}
	return nil
}

func (rr *RouteRegistry) setupRoutes(router *gin.Engine) error {
	versionGroups := make(map[string]*gin.RouterGroup)

	for _, registrar := range rr.routeRegistrars {
		version := registrar.GetVersion()
		if version == "" {
			logger.GetLogger().Warn("Version is missing, defaulting to 'v1'",
				zap.String("name", registrar.GetName()))
			version = "v1"
		}

		if _, exists := versionGroups[version]; !exists {
			if version == RootVersion {
				versionGroups[version] = router.Group("")
			} else {
				versionGroups[version] = router.Group("/" + version)
			}
		}

		routeGroup := versionGroups[version]
		prefix := registrar.GetPrefix()
		if prefix != "" {
			routeGroup = routeGroup.Group("/" + prefix)
		}

		if err := registrar.RegisterRoutes(routeGroup); err != nil {
			logger.GetLogger().Error("Failed to register routes",
				zap.String("name", registrar.GetName()),
				zap.String("version", version),
				zap.String("prefix", prefix),
				zap.Error(err))
			return err
		}

		logger.GetLogger().Debug("Routes registered successfully",
			zap.String("name", registrar.GetName()),
			zap.String("version", version),
			zap.String("prefix", prefix))
	}

	return nil
}

// GetRegisteredRoutes lists the route registrars for debugging.
func (rr *RouteRegistry) GetRegisteredRoutes() []map[string]interface{} {
	routes := make([]map[string]interface{}, 0, len(rr.routeRegistrars))
	for _, registrar := range rr.routeRegistrars {
		routes = append(routes, map[string]interface{}{
			"name":    registrar.GetName(),
			"version": registrar.GetVersion(),
			"prefix":  registrar.GetPrefix(),
		})
	}
	return routes
}

// GetRegisteredMiddlewares lists the middleware registrars in registration order.
func (rr *RouteRegistry) GetRegisteredMiddlewares() []map[string]interface{} {
	middlewares := make([]map[string]interface{}, 0, len(rr.middlewareRegistrars))
	for _, registrar := range rr.middlewareRegistrars {
		middlewares = append(middlewares, map[string]interface{}{
			"name":     registrar.GetName(),
			"priority": registrar.GetPriority(),
		})
	}
	return middlewares
}
