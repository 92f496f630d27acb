package ctxval

import (
	"context"
	"sync"
)

// Wrap attaches a mutable log-field store to ctx. Fields added through the
// returned context, or any context derived from it, are visible to every holder.
func Wrap(ctx context.Context) context.Context {
	if _, ok := getClient(ctx); ok {
		// already wrapped
		return ctx
	}
	c := newClient(ctx)
	return context.WithValue(ctx, defKey, c)
}

func get[K comparable, V any](ctx context.Context, k K) (V, bool) {
	c, ok := getClient(ctx)
	if !ok {
		return *new(V), false
	}
	v, ok := c.get(k).(V)
	return v, ok
}

type logFieldsKey struct{}

// AddLogFields appends key/value pairs to the request's access log line.
// It is a no-op when ctx was not wrapped.
func AddLogFields(ctx context.Context, keysAndValues ...any) {
	c, ok := getClient(ctx)
	if !ok || len(keysAndValues) == 0 {
		return
	}
	c.update(logFieldsKey{}, func(old any) any {
		prev, _ := old.([]any)
		next := make([]any, 0, len(prev)+len(keysAndValues))
		next = append(next, prev...)
		return append(next, keysAndValues...)
	})
}

// LogFields returns the pairs collected by AddLogFields.
func LogFields(ctx context.Context) []any {
	fields, _ := get[logFieldsKey, []any](ctx, logFieldsKey{})
	return fields
}

type ctxKey struct{}

var defKey = ctxKey{}

type client struct {
	// few values per request, a context chain is enough
	storage context.Context
	m       sync.Mutex
}

func (c *client) get(key any) any {
	c.m.Lock()
	defer c.m.Unlock()
	return c.storage.Value(key)
}

func (c *client) update(key any, fn func(old any) any) {
	c.m.Lock()
	defer c.m.Unlock()
	c.storage = context.WithValue(c.storage, key, fn(c.storage.Value(key)))
}

func getClient(ctx context.Context) (*client, bool) {
	c, ok := ctx.Value(defKey).(*client)
	return c, ok
}

func newClient(ctx context.Context) *client {
	return &client{storage: ctx}
}
