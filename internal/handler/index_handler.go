package handler

import (
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"
)

// RouteDescriptor lists the methods served on one path
type RouteDescriptor struct {
	Path    string   `json:"path"`
	Methods []string `json:"methods"`
}

// Index answers with the public routes of routes, sorted by path.
// Paths starting with one of hidden are left out.
func Index(routes chi.Routes, hidden ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		descriptors, err := DescribeRoutes(routes, hidden...)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{Name: "InternalError", Message: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, descriptors)
	}
}

// DescribeRoutes walks routes and groups the registered methods by path
func DescribeRoutes(routes chi.Routes, hidden ...string) ([]RouteDescriptor, error) {
	methods := make(map[string][]string)

	err := chi.Walk(routes, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		if lo.SomeBy(hidden, func(prefix string) bool { return strings.HasPrefix(route, prefix) }) {
			return nil
		}
		if !slices.Contains(methods[route], method) {
			methods[route] = append(methods[route], method)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	paths := lo.Keys(methods)
	slices.Sort(paths)

	return lo.Map(paths, func(path string, _ int) RouteDescriptor {
		m := methods[path]
		slices.Sort(m)
		return RouteDescriptor{Path: path, Methods: m}
	}), nil
}
