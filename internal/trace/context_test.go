package trace

import (
	"context"
	"testing"
)

func TestFromContext(t *testing.T) {
	if got := FromContext(context.Background()); got != Default() {
		t.Fatalf("empty context should yield the default tracer")
	}

	tr := New(Config{Sink: Nop})
	ctx := WithTracer(context.Background(), tr)
	if got := FromContext(ctx); got != tr {
		t.Fatalf("FromContext returned %p, want %p", got, tr)
	}

	ctx = WithTracer(context.Background(), nil)
	if got := FromContext(ctx); got != Default() {
		t.Fatalf("nil tracer should fall back to default")
	}
}
