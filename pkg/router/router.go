// Package router wraps chi with validated route registration. Every route is
// described by a RouteSpec so that operation IDs stay unique and path
// parameters stay documented across the whole API surface.
package router

import (
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"

	"telemetry-api/pkg/utils"
)

// ParameterIn describes where a request parameter lives.
type ParameterIn string

const (
	ParameterInPath   ParameterIn = "path"
	ParameterInQuery  ParameterIn = "query"
	ParameterInHeader ParameterIn = "header"
)

// ParameterSpec describes a single request parameter.
type ParameterSpec struct {
	In          ParameterIn // In is the parameter location (path, query, header).
	Description string      // Description explains what this parameter represents.
	Required    bool        // Required indicates whether the parameter must be present.
	Type        any         // Type is the Go type of the parameter (e.g., new(string)).
}

// RouteSpec describes an HTTP operation.
type RouteSpec struct {
	OperationID string                   // OperationID is a unique identifier for this operation (e.g., "listReadings").
	Summary     string                   // Summary is a short description of the operation.
	Description string                   // Description provides detailed information about the operation.
	Group       string                   // Group is a logical grouping for the operation (e.g., "Readings").
	Parameters  map[string]ParameterSpec // Parameters documents path/query/header parameters.
	Handler     http.HandlerFunc         // Handler serves the request.

	method   string
	fullPath string
}

// RouteBuilder registers validated routes on a shared chi router.
type RouteBuilder struct {
	l            *slog.Logger
	router       chi.Router
	prefix       string
	operationIDs map[string]struct{}
}

// NewRouteBuilder creates a route builder with a fresh chi router.
func NewRouteBuilder(l *slog.Logger) *RouteBuilder {
	return &RouteBuilder{
		l:            l.With(slog.String("component", "route-builder")),
		router:       chi.NewRouter(),
		operationIDs: make(map[string]struct{}),
	}
}

// Router returns the underlying chi router.
//
//nolint:ireturn // chi.Router is itself an interface
func (rb *RouteBuilder) Router() chi.Router {
	return rb.router
}

// Use appends a middleware to the current routing scope.
func (rb *RouteBuilder) Use(mw func(http.Handler) http.Handler) {
	rb.router.Use(mw)
}

// Route mounts a sub-router under pattern. The sub-builder shares the
// operation ID registry so duplicates are caught across scopes.
func (rb *RouteBuilder) Route(pattern string, fn func(rb *RouteBuilder)) {
	rb.router.Route(pattern, func(r chi.Router) {
		fn(&RouteBuilder{
			l:            rb.l,
			router:       r,
			prefix:       rb.prefix + strings.TrimSuffix(pattern, "/"),
			operationIDs: rb.operationIDs,
		})
	})
}

// Get registers a GET route.
func (rb *RouteBuilder) Get(path string, spec RouteSpec) error {
	return rb.handle(http.MethodGet, path, spec)
}

// Post registers a POST route.
func (rb *RouteBuilder) Post(path string, spec RouteSpec) error {
	return rb.handle(http.MethodPost, path, spec)
}

// Put registers a PUT route.
func (rb *RouteBuilder) Put(path string, spec RouteSpec) error {
	return rb.handle(http.MethodPut, path, spec)
}

// Delete registers a DELETE route.
func (rb *RouteBuilder) Delete(path string, spec RouteSpec) error {
	return rb.handle(http.MethodDelete, path, spec)
}

// MustGet registers a GET route and terminates the program if an error occurs.
func (rb *RouteBuilder) MustGet(path string, spec RouteSpec) {
	rb.must(rb.Get(path, spec), spec)
}

// MustPost registers a POST route and terminates the program if an error occurs.
func (rb *RouteBuilder) MustPost(path string, spec RouteSpec) {
	rb.must(rb.Post(path, spec), spec)
}

// MustPut registers a PUT route and terminates the program if an error occurs.
func (rb *RouteBuilder) MustPut(path string, spec RouteSpec) {
	rb.must(rb.Put(path, spec), spec)
}

// MustDelete registers a DELETE route and terminates the program if an error occurs.
func (rb *RouteBuilder) MustDelete(path string, spec RouteSpec) {
	rb.must(rb.Delete(path, spec), spec)
}

func (rb *RouteBuilder) must(err error, spec RouteSpec) {
	if err == nil {
		return
	}

	rb.l.Error("Failed to register route", slog.String("operationID", spec.OperationID), utils.ErrAttr(err))
	os.Exit(1)
}

func (rb *RouteBuilder) handle(method, path string, spec RouteSpec) error {
	spec.method = method
	spec.fullPath = rb.prefix + path

	if err := validateRouteSpec(spec); err != nil {
		return err
	}

	if err := validateParameters(spec); err != nil {
		return err
	}

	if _, exists := rb.operationIDs[spec.OperationID]; exists {
		return &duplicateOperationIDError{operationID: spec.OperationID}
	}

	rb.operationIDs[spec.OperationID] = struct{}{}
	rb.router.MethodFunc(method, path, spec.Handler)

	rb.l.Info("Registered route",
		slog.String("operationID", spec.OperationID),
		slog.String("method", method),
		slog.String("path", spec.fullPath),
		slog.String("group", spec.Group),
	)

	return nil
}

type duplicateOperationIDError struct {
	operationID string
}

func (e *duplicateOperationIDError) Error() string {
	return "duplicate operationID: " + e.operationID
}
