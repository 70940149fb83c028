package auth

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dellmdq/OT109-Server/internal/types"
)

func TestMatchPattern(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"/categories", "/categories", true},
		{"/categories", "/categories/42", false},
		{"/categories/{id}", "/categories/42", true},
		{"/categories/{id}", "/categories", false},
		{"/categories/{id}", "/categories/42/extra", false},
		{"/organization/public/{id}", "/organization/public/abc", true},
		{"/organization/public", "/organization/public", true},
		{"/auth/**", "/auth/login", true},
		{"/auth/**", "/auth/me", true},
		{"/auth/**", "/authority", false},
		{"/news**", "/news", true},
		{"/news**", "/news/42", true},
		{"/news**", "/newsletter", true},
		{"/news**", "/new", false},
		{"/**", "/anything/at/all", true},
		{"/s3/images", "/s3/images", true},
		{"/users/*", "/users/42", true},
		{"/users/*", "/users", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, matchPattern(tt.pattern, tt.path),
			"pattern %q path %q", tt.pattern, tt.path)
	}
}

func TestPolicy_FirstMatchWins(t *testing.T) {
	p := NewPolicy(
		Requirement{Method: http.MethodGet, Pattern: "/things", Authorities: []string{types.RoleAdmin}},
		Requirement{Pattern: "/things"}, // shadowed by the entry above for GET
	)

	// GET hits the admin entry first even though a public entry follows.
	assert.Equal(t, Deny, p.Authorize(http.MethodGet, "/things", []string{types.RoleUser}))
	assert.Equal(t, Allow, p.Authorize(http.MethodGet, "/things", []string{types.RoleAdmin}))

	// Other methods fall through to the public entry.
	assert.True(t, p.PublicMatch(http.MethodPost, "/things"))
	assert.False(t, p.PublicMatch(http.MethodGet, "/things"))
}

func TestPolicy_NoMatchDenies(t *testing.T) {
	p := NewPolicy(
		Requirement{Method: http.MethodGet, Pattern: "/only"},
	)
	assert.Equal(t, Deny, p.Authorize(http.MethodGet, "/other", []string{types.RoleAdmin}))
	assert.False(t, p.PublicMatch(http.MethodGet, "/other"))
}

func TestPolicy_MatchAll(t *testing.T) {
	p := NewPolicy(
		Requirement{Pattern: "/both", Authorities: []string{"A", "B"}, Mode: MatchAll},
	)
	assert.Equal(t, Allow, p.Authorize(http.MethodGet, "/both", []string{"A", "B"}))
	assert.Equal(t, Deny, p.Authorize(http.MethodGet, "/both", []string{"A"}))
}

func TestPolicy_AnyAuthority(t *testing.T) {
	p := NewPolicy(
		Requirement{Pattern: "/**", Authorities: []string{AnyAuthority}},
	)
	assert.Equal(t, Allow, p.Authorize(http.MethodGet, "/whatever", []string{types.RoleUser}))
	assert.Equal(t, Allow, p.Authorize(http.MethodGet, "/whatever", []string{types.RoleAdmin}))
	assert.Equal(t, Deny, p.Authorize(http.MethodGet, "/whatever", nil))
}

func TestDefaultPolicy_PublicPaths(t *testing.T) {
	p := DefaultPolicy()

	public := []struct{ method, path string }{
		{http.MethodPost, "/register"},
		{http.MethodPost, "/login"},
		{http.MethodPost, "/auth/register"},
		{http.MethodPost, "/auth/login"},
		{http.MethodGet, "/auth/me"},
		{http.MethodGet, "/ping"},
		{http.MethodGet, "/api/docs/index.html"},
		// /contacts is declared public before the method-specific entries,
		// so the first match keeps it open for every method.
		{http.MethodPost, "/contacts"},
		{http.MethodGet, "/contacts"},
	}
	for _, tt := range public {
		assert.True(t, p.PublicMatch(tt.method, tt.path), "%s %s should be public", tt.method, tt.path)
	}
}

func TestDefaultPolicy_RoleMatrix(t *testing.T) {
	p := DefaultPolicy()
	admin := Authorities(types.RoleAdmin)
	user := Authorities(types.RoleUser)

	tests := []struct {
		method string
		path   string
		admin  Decision
		user   Decision
	}{
		{http.MethodGet, "/categories", Allow, Allow},
		{http.MethodGet, "/categories/42", Allow, Allow},
		{http.MethodGet, "/testimonials", Allow, Allow},
		{http.MethodGet, "/users", Allow, Allow},
		{http.MethodGet, "/s3/images", Allow, Allow},
		{http.MethodGet, "/organization/public", Allow, Allow},

		// The news read entry is USER-only: ADMIN holds only its own
		// authority and the entry precedes the catch-all.
		{http.MethodGet, "/news", Deny, Allow},
		{http.MethodGet, "/news/42", Deny, Allow},

		{http.MethodGet, "/members", Allow, Deny},
		{http.MethodGet, "/comments", Allow, Deny},

		{http.MethodPost, "/categories", Allow, Deny},
		{http.MethodPost, "/members", Allow, Deny},
		{http.MethodPost, "/testimonials", Allow, Deny},
		{http.MethodPost, "/s3/images", Allow, Deny},
		{http.MethodPut, "/members/42", Allow, Deny},
		{http.MethodPut, "/categories/42", Allow, Deny},
		{http.MethodPatch, "/users/42", Allow, Deny},
		{http.MethodPatch, "/organization/public/42", Allow, Deny},
		{http.MethodDelete, "/users/42", Allow, Deny},
		{http.MethodDelete, "/categories/42", Allow, Deny},

		// Comment mutations stay open to both roles; ownership is enforced
		// by the service layer.
		{http.MethodPut, "/comments/42", Allow, Allow},
		{http.MethodDelete, "/comments/42", Allow, Allow},

		// Catch-all admits any authenticated principal.
		{http.MethodGet, "/me", Allow, Allow},
		{http.MethodPost, "/news", Allow, Allow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.admin, p.Authorize(tt.method, tt.path, admin),
			"ADMIN %s %s", tt.method, tt.path)
		assert.Equal(t, tt.user, p.Authorize(tt.method, tt.path, user),
			"USER %s %s", tt.method, tt.path)
	}
}

func TestDefaultPolicy_UnknownRoleDenied(t *testing.T) {
	p := DefaultPolicy()
	granted := Authorities("AUDITOR")
	assert.Nil(t, granted)
	assert.Equal(t, Deny, p.Authorize(http.MethodGet, "/categories", granted))
	assert.Equal(t, Deny, p.Authorize(http.MethodGet, "/me", granted))
}
