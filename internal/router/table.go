package router

import (
	"fmt"
	"strings"
)

// Well-known navigation targets the guard redirects to.
const (
	LoginPath     = "/auth/login"
	DashboardPath = "/dashboard"
)

// Requirements are the access-control flags a route can carry. A route with
// no requirements is open to everyone.
type Requirements struct {
	RequiresGuest    bool
	RequiresAuth     bool
	RequiresCustomer bool
	RequiresVendor   bool
}

// Table maps normalized paths to their access requirements. Built once at
// startup, never mutated afterwards.
type Table map[string]Requirements

// NewTable matches the requirement map against the registered paths and
// returns the resolved table. A requirement keyed on a path that is not
// registered is a configuration error and fails startup, rather than being
// silently skipped.
func NewTable(registered []string, requirements map[string]Requirements) (Table, error) {
	known := make(map[string]bool, len(registered))
	for _, path := range registered {
		known[Normalize(path)] = true
	}

	table := make(Table, len(requirements))
	for path, req := range requirements {
		normalized := Normalize(path)
		if !known[normalized] {
			return nil, fmt.Errorf("route requirement refers to unregistered path %s", path)
		}
		table[normalized] = req
	}
	return table, nil
}

// Normalize strips the trailing slash so table keys and navigation targets
// compare consistently. The root path stays "/".
func Normalize(path string) string {
	if path == "/" {
		return path
	}
	return strings.TrimSuffix(path, "/")
}

// DefaultRequirements is the storefront's static route requirement map. The
// cart deliberately has no entry: browsing it stays open, and checkout
// authorization is the view's concern.
func DefaultRequirements() map[string]Requirements {
	return map[string]Requirements{
		"/auth/login":             {RequiresGuest: true},
		"/auth/signup":            {RequiresGuest: true},
		"/dashboard":              {RequiresAuth: true},
		"/dashboard/customer":     {RequiresAuth: true, RequiresCustomer: true},
		"/dashboard/vendor":       {RequiresAuth: true, RequiresVendor: true},
		"/dashboard/product-form": {RequiresAuth: true, RequiresVendor: true},
		"/dashboard/profile":      {RequiresAuth: true},
		"/orders/customer":        {RequiresAuth: true, RequiresCustomer: true},
		"/orders/vendor":          {RequiresAuth: true, RequiresVendor: true},
	}
}

// DefaultPaths is the set of navigable paths the storefront registers.
func DefaultPaths() []string {
	return []string{
		"/",
		"/auth/login",
		"/auth/signup",
		"/dashboard",
		"/dashboard/customer",
		"/dashboard/vendor",
		"/dashboard/product-form",
		"/dashboard/profile",
		"/orders/customer",
		"/orders/vendor",
		"/cart",
		"/products",
	}
}
