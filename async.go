package gopinotdb

import (
	"context"
)

const asyncMode contextKey = "ASYNC_MODE_QUERY"

// WithAsyncMode returns a context that makes database/sql queries return
// immediately. The rows wait for the broker response on first use.
func WithAsyncMode(ctx context.Context) context.Context {
	return context.WithValue(ctx, asyncMode, true)
}

func isAsyncMode(ctx context.Context) bool {
	flag, ok := ctx.Value(asyncMode).(bool)
	return ok && flag
}

// ExecuteAsync runs the query in a new goroutine. The returned channel
// receives the result of Execute and is then closed. The cursor must not be
// used until the channel delivered.
func (cur *Cursor) ExecuteAsync(ctx context.Context, query string, params map[string]any) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		errCh <- cur.Execute(ctx, query, params)
	}()
	return errCh
}

func (cur *Cursor) executeAsync(ctx context.Context, sqlText string) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		errCh <- cur.execute(ctx, sqlText)
	}()
	return errCh
}
