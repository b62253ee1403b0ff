package router

import (
	"github.com/gin-gonic/gin"
)

// RouteRegistrar registers routes on a router group
type RouteRegistrar interface {
	RegisterRoutes(r *gin.RouterGroup)
}

// Router assembles the API route tree
type Router struct {
	engine     *gin.Engine
	version    string
	registrars []RouteRegistrar
}

// NewRouter creates a new Router
func NewRouter(engine *gin.Engine, version string) *Router {
	return &Router{engine: engine, version: version}
}

// Register adds route registrars
func (r *Router) Register(registrars ...RouteRegistrar) {
	r.registrars = append(r.registrars, registrars...)
}

// Setup mounts every registrar under the versioned API group
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.version)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}
