package middleware

import (
	"errors"
	"net"
	"net/http"

	"workforce/backend/foundation/web"
)

// InternalOnly restricts maintenance endpoints to loopback callers; the
// sweep scheduler runs next to the service.
func InternalOnly() web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(c *web.Context) error {
			host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
			if err != nil {
				host = c.Request.RemoteAddr
			}

			ip := net.ParseIP(host)
			if ip == nil || !ip.IsLoopback() {
				return c.RespondError(web.NewRequestError(errors.New("internal endpoint"), http.StatusForbidden))
			}

			return handler(c)
		}

		return h
	}

	return m
}
