package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// DefaultBasePath is the prefix the bridge API is served under.
const DefaultBasePath = "/api"

// Route is one endpoint as it was mounted on the engine.
type Route struct {
	Method string
	Path   string
}

type endpoint struct {
	methods []string
	path    string
	handler gin.HandlerFunc
}

// Section is a prefix-scoped block of endpoints, e.g. /odoo or /prestashop.
type Section struct {
	prefix     string
	middleware []gin.HandlerFunc
	endpoints  []endpoint
	children   []*Section
}

// NewSection starts a section mounted at prefix.
func NewSection(prefix string) *Section {
	return &Section{prefix: prefix}
}

// Prefix returns the section prefix.
func (s *Section) Prefix() string {
	return s.prefix
}

// Use attaches middleware that runs only for this section and its children.
func (s *Section) Use(mw ...gin.HandlerFunc) *Section {
	s.middleware = append(s.middleware, mw...)
	return s
}

// GET adds a read endpoint.
func (s *Section) GET(path string, h gin.HandlerFunc) *Section {
	return s.Handle(path, h, http.MethodGet)
}

// GETOrPOST adds an endpoint that accepts either method. Sync triggers are
// reachable both ways so they can be hit from a browser or a webhook.
func (s *Section) GETOrPOST(path string, h gin.HandlerFunc) *Section {
	return s.Handle(path, h, http.MethodGet, http.MethodPost)
}

// Handle adds h under path for each method.
func (s *Section) Handle(path string, h gin.HandlerFunc, methods ...string) *Section {
	s.endpoints = append(s.endpoints, endpoint{methods: methods, path: path, handler: h})
	return s
}

// Sub nests a section below this one.
func (s *Section) Sub(prefix string) *Section {
	child := NewSection(prefix)
	s.children = append(s.children, child)
	return child
}

func (s *Section) mount(parent *gin.RouterGroup, out []Route) []Route {
	group := parent.Group(s.prefix)
	if len(s.middleware) > 0 {
		group.Use(s.middleware...)
	}
	for _, e := range s.endpoints {
		for _, method := range e.methods {
			group.Handle(method, e.path, e.handler)
			out = append(out, Route{Method: method, Path: joinPath(group.BasePath(), e.path)})
		}
	}
	for _, child := range s.children {
		out = child.mount(group, out)
	}
	return out
}

// API mounts sections on a gin engine below a common base path.
type API struct {
	engine   *gin.Engine
	basePath string
	sections []*Section
}

// Option configures an API.
type Option func(*API)

// WithBasePath overrides DefaultBasePath.
func WithBasePath(path string) Option {
	return func(a *API) {
		a.basePath = "/" + strings.Trim(path, "/")
	}
}

// New creates an API bound to engine.
func New(engine *gin.Engine, opts ...Option) *API {
	a := &API{engine: engine, basePath: DefaultBasePath}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Add queues sections for Mount.
func (a *API) Add(sections ...*Section) *API {
	a.sections = append(a.sections, sections...)
	return a
}

// Mount registers every queued section and returns the resulting route table.
func (a *API) Mount() []Route {
	base := a.engine.Group(a.basePath)
	var routes []Route
	for _, s := range a.sections {
		routes = s.mount(base, routes)
	}
	return routes
}

func joinPath(base, rel string) string {
	if rel == "" {
		return base
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(rel, "/")
}
