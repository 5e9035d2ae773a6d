// Package requestctx carries authenticated request identity through context.
package requestctx

import "context"

// Actor kinds distinguish platform admins from branch managers.
const (
	ActorKindAdmin   = "admin"
	ActorKindManager = "manager"
)

// Actor identifies the authenticated operator for a request.
type Actor struct {
	Kind      string // ActorKindAdmin or ActorKindManager
	ID        string
	CompanyID string
	BranchID  string // empty for company admins
}

// actorContextKey is the context key for the authenticated actor.
type actorContextKey struct{}

// WithActor stores the authenticated actor in context.
func WithActor(ctx context.Context, actor Actor) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, actorContextKey{}, actor)
}

// ActorFromContext returns the actor stored in context, if any.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	if ctx == nil {
		return Actor{}, false
	}
	actor, ok := ctx.Value(actorContextKey{}).(Actor)
	return actor, ok
}
