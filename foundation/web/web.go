// Package web is a small framework on top of gin that the controllers are
// written against. Handlers receive a *Context and return an error; the
// framework owns the response envelope and the error-to-status mapping.
package web

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler is the signature every controller method implements.
type Handler func(c *Context) error

// Middleware wraps a Handler with pre/post behaviour.
type Middleware func(Handler) Handler

type App struct {
	*gin.Engine
}

func NewApp() *App {
	return &App{gin.New()}
}

func wrapMiddleware(handler Handler, mw []Middleware) Handler {
	// Wrap right to left so the first listed middleware runs first.
	for i := len(mw) - 1; i >= 0; i-- {
		h := mw[i]
		if h != nil {
			handler = h(handler)
		}
	}

	return handler
}

func (a *App) handle(method, path string, handler Handler, mw ...Middleware) {
	handler = wrapMiddleware(handler, mw)

	a.Handle(method, path, func(c *gin.Context) {
		ctx := &Context{
			Context: c,
			Ctx:     c.Request.Context(),
		}

		if err := handler(ctx); err != nil {
			_ = ctx.RespondError(err)
		}
	})
}

func (a *App) Get(path string, handler Handler, mw ...Middleware) {
	a.handle(http.MethodGet, path, handler, mw...)
}

func (a *App) Post(path string, handler Handler, mw ...Middleware) {
	a.handle(http.MethodPost, path, handler, mw...)
}

func (a *App) Put(path string, handler Handler, mw ...Middleware) {
	a.handle(http.MethodPut, path, handler, mw...)
}

func (a *App) Patch(path string, handler Handler, mw ...Middleware) {
	a.handle(http.MethodPatch, path, handler, mw...)
}

func (a *App) Delete(path string, handler Handler, mw ...Middleware) {
	a.handle(http.MethodDelete, path, handler, mw...)
}

// Context carries the gin context plus a request-scoped context.Context that
// middleware may replace (auth claims are attached here).
type Context struct {
	*gin.Context
	Ctx context.Context

	paramErr error
	queryErr error
}
