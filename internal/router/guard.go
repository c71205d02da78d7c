package router

import (
	"context"
	"log"
	"strings"

	"artizon/internal/storage"
)

// reloadFlagKey is the one-shot flag recording that a full reload was already
// attempted to recover from a failed view-chunk load.
const reloadFlagKey = "chunk_reload"

// Session is what the guard needs from the session layer to make decisions.
type Session interface {
	Initialize(ctx context.Context) error
	IsAuthenticated() bool
	IsCustomer() bool
	IsVendor() bool
}

// Decision is the outcome of evaluating one navigation attempt.
type Decision struct {
	Allowed    bool
	RedirectTo string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func redirect(to string) Decision {
	return Decision{RedirectTo: to}
}

// Guard intercepts navigation and redirects based on the route requirement
// table and the current session state.
type Guard struct {
	session Session
	table   Table
	store   storage.Store
}

// NewGuard creates a new Guard.
func NewGuard(session Session, table Table, store storage.Store) *Guard {
	return &Guard{
		session: session,
		table:   table,
		store:   store,
	}
}

// Authorize evaluates one navigation attempt against the requirement table.
// Flags are checked in fixed precedence order; the first match wins.
func (g *Guard) Authorize(ctx context.Context, target string) Decision {
	// Resolve the profile lazily before evaluating role flags. Initialize is
	// a no-op unless a token is present with no profile yet; on failure it
	// has already logged out, so the flags below see an anonymous session.
	if err := g.session.Initialize(ctx); err != nil {
		log.Printf("Profile resolution failed during navigation to %s: %v", target, err)
	}

	req, ok := g.table[Normalize(target)]
	if !ok {
		// No entry means the route is open; any finer-grained checks belong
		// to the view itself.
		return allow()
	}

	switch {
	case req.RequiresGuest && g.session.IsAuthenticated():
		return redirect(DashboardPath)
	case req.RequiresAuth && !g.session.IsAuthenticated():
		return redirect(LoginPath)
	case req.RequiresCustomer && !g.session.IsCustomer():
		return redirect(DashboardPath)
	case req.RequiresVendor && !g.session.IsVendor():
		return redirect(DashboardPath)
	}
	return allow()
}

// RecoverLoadFailure decides whether a failed navigation should trigger a
// full page reload. A stale deployment can leave the UI referencing view
// chunks that no longer exist; one reload picks up the fresh assets. The
// budget is exactly one: a second consecutive failure is logged, not retried,
// so a broken deploy cannot cause a reload loop.
func (g *Guard) RecoverLoadFailure(err error, target string) bool {
	if err == nil || !isChunkLoadError(err) {
		if err != nil {
			log.Printf("Navigation to %s failed: %v", target, err)
		}
		return false
	}

	_, attempted, readErr := g.store.Get(reloadFlagKey)
	if readErr != nil {
		log.Printf("Failed to read reload flag: %v", readErr)
		return false
	}
	if attempted {
		log.Printf("View chunk load error, reloading the page did not fix it: %v", err)
		return false
	}

	if setErr := g.store.Set(reloadFlagKey, "true"); setErr != nil {
		log.Printf("Failed to persist reload flag: %v", setErr)
		return false
	}
	log.Printf("Reloading page to fix view chunk load error for %s", target)
	return true
}

// Ready clears the one-shot reload flag once the UI has come up cleanly.
func (g *Guard) Ready() {
	if err := g.store.Delete(reloadFlagKey); err != nil {
		log.Printf("Failed to clear reload flag: %v", err)
	}
}

// isChunkLoadError reports whether the failure looks like a missing
// dynamically loaded view chunk. Message matching is a heuristic, not a
// contract.
func isChunkLoadError(err error) bool {
	return strings.Contains(err.Error(), "dynamically imported module")
}
