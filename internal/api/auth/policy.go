package auth

import (
	"strings"

	"github.com/dellmdq/OT109-Server/internal/types"
)

// MatchMode selects how a Requirement's authorities combine.
type MatchMode int

const (
	// MatchAny grants access when at least one required authority is held.
	MatchAny MatchMode = iota
	// MatchAll grants access only when every required authority is held.
	MatchAll
)

// Decision is the outcome of a policy evaluation.
type Decision int

const (
	Deny Decision = iota
	Allow
)

// AnyAuthority in a Requirement's authority list admits any authenticated
// principal regardless of which authorities it holds.
const AnyAuthority = "*"

// Requirement binds an HTTP method and path pattern to the authorities a
// request must hold. An empty Method matches every method; an empty
// Authorities list marks a public (unauthenticated-allowed) entry.
//
// Pattern syntax: literal segments, "{param}" or "*" for a single segment,
// and a trailing "**" matching any remainder of the path. "/news**" matches
// "/news", "/news/42" and "/newsletter" alike.
type Requirement struct {
	Method      string
	Pattern     string
	Authorities []string
	Mode        MatchMode
}

// Public reports whether the entry allows unauthenticated access.
func (req Requirement) Public() bool { return len(req.Authorities) == 0 }

func (req Requirement) matches(method, path string) bool {
	if req.Method != "" && req.Method != method {
		return false
	}
	return matchPattern(req.Pattern, path)
}

func matchPattern(pattern, path string) bool {
	if rest, ok := strings.CutSuffix(pattern, "**"); ok {
		return strings.HasPrefix(path, rest)
	}

	patSegs := strings.Split(strings.Trim(pattern, "/"), "/")
	pathSegs := strings.Split(strings.Trim(path, "/"), "/")
	if len(patSegs) != len(pathSegs) {
		return false
	}
	for i, seg := range patSegs {
		if seg == "*" || (strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}")) {
			if pathSegs[i] == "" {
				return false
			}
			continue
		}
		if seg != pathSegs[i] {
			return false
		}
	}
	return true
}

// Policy is an ordered authorization table. Declaration order is the
// contract: the first matching entry governs, so narrower patterns must be
// declared before broader ones (the trailing catch-all in particular).
// The table is built once at startup and read-only afterwards.
type Policy struct {
	entries []Requirement
}

func NewPolicy(entries ...Requirement) *Policy {
	return &Policy{entries: entries}
}

func (p *Policy) match(method, path string) (Requirement, bool) {
	for _, e := range p.entries {
		if e.matches(method, path) {
			return e, true
		}
	}
	return Requirement{}, false
}

// PublicMatch reports whether the first entry matching the request allows
// unauthenticated access. No match at all means not public.
func (p *Policy) PublicMatch(method, path string) bool {
	e, ok := p.match(method, path)
	return ok && e.Public()
}

// Authorize evaluates the request against the table in declaration order.
// No matching entry means Deny.
func (p *Policy) Authorize(method, path string, granted []string) Decision {
	e, ok := p.match(method, path)
	if !ok {
		return Deny
	}
	if e.Public() {
		return Allow
	}

	switch e.Mode {
	case MatchAll:
		for _, required := range e.Authorities {
			if !holds(granted, required) {
				return Deny
			}
		}
		return Allow
	default: // MatchAny
		for _, required := range e.Authorities {
			if holds(granted, required) {
				return Allow
			}
		}
		return Deny
	}
}

func holds(granted []string, required string) bool {
	if required == AnyAuthority {
		return len(granted) > 0
	}
	for _, g := range granted {
		if g == required {
			return true
		}
	}
	return false
}

// Authorities maps a role name to the authority set used by the policy.
// The mapping is 1:1 today; unknown roles grant nothing.
func Authorities(roleName string) []string {
	switch roleName {
	case types.RoleAdmin:
		return []string{types.RoleAdmin}
	case types.RoleUser:
		return []string{types.RoleUser}
	default:
		return nil
	}
}

// DefaultPolicy is the platform's authorization table. Entry order is
// deliberate and load-bearing; tests pin it.
func DefaultPolicy() *Policy {
	admin := []string{types.RoleAdmin}
	adminOrUser := []string{types.RoleAdmin, types.RoleUser}
	userOnly := []string{types.RoleUser}

	return NewPolicy(
		// Public allow-list.
		Requirement{Pattern: "/auth/**"},
		Requirement{Pattern: "/register"},
		Requirement{Pattern: "/login"},
		Requirement{Pattern: "/v3/api-docs/swagger-config"},
		Requirement{Pattern: "/api/swagger-ui/**"},
		Requirement{Pattern: "/v3/api-docs"},
		Requirement{Pattern: "/api/docs"},
		Requirement{Pattern: "/api/docs/**"},
		Requirement{Pattern: "/contacts"},
		Requirement{Pattern: "/ping"},

		// Read access shared by both roles.
		Requirement{Method: "GET", Pattern: "/categories/{id}", Authorities: adminOrUser},
		Requirement{Method: "GET", Pattern: "/categories", Authorities: adminOrUser},
		Requirement{Method: "GET", Pattern: "/s3/images", Authorities: adminOrUser},
		Requirement{Method: "GET", Pattern: "/organization/public", Authorities: adminOrUser},
		Requirement{Method: "GET", Pattern: "/organization/public/{id}", Authorities: adminOrUser},
		Requirement{Method: "GET", Pattern: "/contacts", Authorities: adminOrUser},
		Requirement{Method: "GET", Pattern: "/users", Authorities: adminOrUser},
		Requirement{Method: "GET", Pattern: "/testimonials", Authorities: adminOrUser},

		Requirement{Method: "GET", Pattern: "/news**", Authorities: userOnly},

		Requirement{Method: "GET", Pattern: "/members", Authorities: admin},
		Requirement{Method: "GET", Pattern: "/comments", Authorities: admin},

		// Mutations.
		Requirement{Method: "POST", Pattern: "/testimonials", Authorities: admin},
		Requirement{Method: "POST", Pattern: "/members", Authorities: admin},
		Requirement{Method: "POST", Pattern: "/categories", Authorities: admin},
		Requirement{Method: "POST", Pattern: "/s3/images", Authorities: admin},
		Requirement{Method: "POST", Pattern: "/organization/public", Authorities: admin},
		Requirement{Method: "POST", Pattern: "/contacts", Authorities: admin},

		Requirement{Method: "PUT", Pattern: "/testimonials", Authorities: admin},
		Requirement{Method: "PUT", Pattern: "/members/{id}", Authorities: admin},
		Requirement{Method: "PUT", Pattern: "/categories/{id}", Authorities: admin},
		Requirement{Method: "PUT", Pattern: "/comments/{id}", Authorities: adminOrUser},

		Requirement{Method: "PATCH", Pattern: "/organization/public/{id}", Authorities: admin},
		Requirement{Method: "PATCH", Pattern: "/users/{id}", Authorities: admin},

		Requirement{Method: "DELETE", Pattern: "/testimonials/{id}", Authorities: admin},
		Requirement{Method: "DELETE", Pattern: "/members/{id}", Authorities: admin},
		Requirement{Method: "DELETE", Pattern: "/categories/{id}", Authorities: admin},
		Requirement{Method: "DELETE", Pattern: "/users/{id}", Authorities: admin},
		Requirement{Method: "DELETE", Pattern: "/comments/{id}", Authorities: adminOrUser},

		// Anything else needs an authenticated principal.
		Requirement{Pattern: "/**", Authorities: []string{AnyAuthority}},
	)
}
