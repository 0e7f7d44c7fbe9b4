package trace

import "context"

// ctxKey is the key type for storing a Tracer in context.
type ctxKey struct{}

// FromContext extracts the Tracer from context.
// If not found, returns Default().
func FromContext(ctx context.Context) *Tracer {
	if ctx == nil {
		return Default()
	}
	if t, ok := ctx.Value(ctxKey{}).(*Tracer); ok && t != nil {
		return t
	}
	return Default()
}

// WithTracer attaches a Tracer to context.
func WithTracer(ctx context.Context, t *Tracer) context.Context {
	if t == nil {
		t = Default()
	}
	return context.WithValue(ctx, ctxKey{}, t)
}
