// Package permission declares the route permission table consulted by the access guard.
package permission

import (
	"sort"
	"strings"

	"labmanager/internal/shared/constants"
)

const (
	MethodGet    = "GET"
	MethodPost   = "POST"
	MethodPut    = "PUT"
	MethodDelete = "DELETE"
)

// ReadOnly and ReadWrite are the method sets grants are written with.
var (
	ReadOnly  = []string{MethodGet}
	ReadWrite = []string{MethodGet, MethodPost, MethodPut, MethodDelete}
)

// Grant allows roles to call methods on route prefixes and exact paths. A
// prefix "/x" covers both "/x" and everything below it; a path covers itself.
type Grant struct {
	Roles    []string
	Prefixes []string
	Paths    []string
	Methods  []string
}

// Rule is one expanded (role, path pattern, method pattern) triple.
type Rule struct {
	Role   string
	Path   string
	Method string
}

// Policy is the full permission table.
type Policy []Grant

// Prefixes turns resource route names into route prefixes.
func Prefixes(names ...string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = "/" + strings.Trim(n, "/")
	}
	return out
}

// Under returns the prefixes of names nested below parent, e.g. "/export/team".
func Under(parent string, names ...string) []string {
	out := Prefixes(names...)
	base := Prefixes(parent)[0]
	for i := range out {
		out[i] = base + out[i]
	}
	return out
}

// DefaultPolicy builds the shipped matrix. domain lists the research-entity
// routes; admin-only routes are everything else.
//
//	path                    admin  rector  lab_manager  researcher
//	/user*, /role*          all    -       -            -
//	domain resources        all    all     all          GET
//	/export/<domain>*       GET    GET     GET          -
//	/meta, /meta/<domain>*  GET    GET     GET          GET
//
// Export and metadata grants are per domain entity; account tables stay admin-only.
func DefaultPolicy(domain []string) Policy {
	managers := []string{constants.RoleRector, constants.RoleLabManager}
	everyone := []string{constants.RoleRector, constants.RoleLabManager, constants.RoleResearcher}
	return Policy{
		{Roles: []string{constants.RoleAdmin}, Prefixes: []string{""}, Methods: ReadWrite},
		{Roles: managers, Prefixes: Prefixes(domain...), Methods: ReadWrite},
		{Roles: managers, Prefixes: Under("export", domain...), Methods: ReadOnly},
		{Roles: []string{constants.RoleResearcher}, Prefixes: Prefixes(domain...), Methods: ReadOnly},
		{Roles: everyone, Prefixes: Under("meta", domain...), Paths: Prefixes("meta"), Methods: ReadOnly},
	}
}

// Rules expands the policy into deduplicated, sorted casbin-style rules.
// Path patterns use keyMatch2 syntax; method patterns are anchored regexes.
func (p Policy) Rules() []Rule {
	seen := make(map[Rule]struct{})
	var out []Rule
	add := func(r Rule) {
		if _, ok := seen[r]; ok {
			return
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}

	for _, g := range p {
		methods := methodPattern(g.Methods)
		for _, role := range g.Roles {
			for _, prefix := range g.Prefixes {
				if prefix != "" {
					add(Rule{Role: role, Path: prefix, Method: methods})
				}
				add(Rule{Role: role, Path: prefix + "/*", Method: methods})
			}
			for _, path := range g.Paths {
				add(Rule{Role: role, Path: path, Method: methods})
			}
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Role != out[j].Role {
			return out[i].Role < out[j].Role
		}
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Method < out[j].Method
	})
	return out
}

func methodPattern(methods []string) string {
	sorted := append([]string(nil), methods...)
	sort.Strings(sorted)
	return "^(" + strings.Join(sorted, "|") + ")$"
}
