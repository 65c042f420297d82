// Package gate classifies navigation paths and decides whether a request
// passes through, is sent to the login page, or is bounced away from the
// auth pages. It is stateless and never touches the credential store:
// authentication is derived from the session token signature alone.
package gate

import (
	"context"
	"net/url"
	"strings"
)

// Action is the outcome of a gate decision.
type Action int

const (
	// Allow lets the navigation continue.
	Allow Action = iota
	// RedirectToLogin sends an unauthenticated caller to the login page,
	// carrying the original path as a return URL.
	RedirectToLogin
	// RedirectAway sends an authenticated caller off an auth page.
	RedirectAway
)

// Decision is what the gate tells the transport layer to do. ClearToken
// instructs the caller to drop its stored session token; it is set only
// when a token was presented but failed verification.
type Decision struct {
	Action     Action
	Location   string
	ClearToken bool
}

// TokenValidator checks a session token without a store lookup.
type TokenValidator interface {
	Validate(ctx context.Context, tokenString string) error
}

// Default route sets mirroring the canvas app's page layout.
var (
	DefaultPublicPaths       = []string{"/login", "/register", "/forgot-password", "/reset-password"}
	DefaultAuthRedirectPaths = []string{"/login", "/register"}
	DefaultProtectedPaths    = []string{"/dashboard", "/profile", "/demo-auth"}
)

// DefaultLandingPath is where authenticated callers land when no return
// URL is given.
const DefaultLandingPath = "/dashboard"

// LoginPath is the page unauthenticated callers are redirected to.
const LoginPath = "/login"

// Gate decides, per navigation, between Allow, RedirectToLogin and
// RedirectAway.
type Gate struct {
	validator     TokenValidator
	publicPaths   []string
	authRedirects []string
	protected     []string
	landing       string
}

// Option configures a Gate.
type Option func(*Gate)

// WithProtectedPaths replaces the protected path prefixes.
func WithProtectedPaths(paths []string) Option {
	return func(g *Gate) { g.protected = paths }
}

// WithLandingPath replaces the default landing destination.
func WithLandingPath(path string) Option {
	return func(g *Gate) { g.landing = path }
}

// New creates a Gate using the given token validator.
func New(validator TokenValidator, opts ...Option) *Gate {
	g := &Gate{
		validator:     validator,
		publicPaths:   DefaultPublicPaths,
		authRedirects: DefaultAuthRedirectPaths,
		protected:     DefaultProtectedPaths,
		landing:       DefaultLandingPath,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Decide classifies the path and returns the routing decision. token may
// be empty (no session); returnURL is the raw returnUrl query parameter,
// honored only when it is a same-origin relative path.
func (g *Gate) Decide(ctx context.Context, path, token, returnURL string) Decision {
	// Public classification first: it takes precedence over protected.
	isPublic := matchesAny(path, g.publicPaths, true)
	isAuthRedirect := matchesAny(path, g.authRedirects, false)
	isProtected := !isPublic && (path == "/" || matchesAny(path, g.protected, true))

	authenticated := token != "" && g.validator.Validate(ctx, token) == nil

	if isProtected && !authenticated {
		return Decision{
			Action:     RedirectToLogin,
			Location:   LoginPath + "?returnUrl=" + url.QueryEscape(path),
			ClearToken: token != "",
		}
	}

	if isAuthRedirect && authenticated {
		dest := g.landing
		if returnURL != "" && strings.HasPrefix(returnURL, "/") {
			dest = returnURL
		}
		return Decision{Action: RedirectAway, Location: dest}
	}

	return Decision{Action: Allow}
}

// matchesAny reports whether path equals one of the routes, or, when
// prefix matching is on, starts with one of them.
func matchesAny(path string, routes []string, prefix bool) bool {
	for _, route := range routes {
		if path == route {
			return true
		}
		if prefix && strings.HasPrefix(path, route) {
			return true
		}
	}
	return false
}
