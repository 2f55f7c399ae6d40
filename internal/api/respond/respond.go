// Package respond is the single exit point for handler responses. Every
// handler and the error translator render through Write, so the JSON
// envelope, cookie flags, and content handling stay uniform.
package respond

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Cookie is a directive to set one response cookie. Name and Value are
// required; the remaining flags default to http-only, lax same-site,
// path "/", non-secure. The non-secure default is for development only and
// must be overridden in production.
type Cookie struct {
	Name     string
	Value    string
	HTTPOnly *bool
	SameSite http.SameSite
	Path     string
	Expires  time.Time
	Secure   bool
}

// Options describes one response. Exactly one of Content or the JSON
// envelope {message, data} is sent.
type Options struct {
	// Message defaults to "Success".
	Message string
	// Data is the optional JSON payload.
	Data any
	// Status defaults to 200.
	Status int
	// Cookies are set before the body is written.
	Cookies []Cookie
	// Headers are extra response headers.
	Headers map[string]string
	// Content, when set, must be a []byte or string and is sent raw with
	// ContentType instead of the JSON envelope.
	Content any
	// ContentType defaults to application/json.
	ContentType string
}

type envelope struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// Write renders opts onto the response. Invalid content or cookie
// directives degrade to a 500 JSON error instead of propagating.
func Write(c echo.Context, opts Options) error {
	if opts.Message == "" {
		opts.Message = "Success"
	}
	if opts.Status == 0 {
		opts.Status = http.StatusOK
	}
	if opts.ContentType == "" {
		opts.ContentType = echo.MIMEApplicationJSON
	}

	for _, ck := range opts.Cookies {
		if ck.Name == "" || ck.Value == "" {
			return degrade(c)
		}
		c.SetCookie(buildCookie(ck))
	}

	for k, v := range opts.Headers {
		c.Response().Header().Set(k, v)
	}

	if opts.Content != nil {
		switch content := opts.Content.(type) {
		case []byte:
			return c.Blob(opts.Status, opts.ContentType, content)
		case string:
			return c.Blob(opts.Status, opts.ContentType, []byte(content))
		default:
			return degrade(c)
		}
	}

	return c.JSON(opts.Status, envelope{Message: opts.Message, Data: opts.Data})
}

func buildCookie(ck Cookie) *http.Cookie {
	httpOnly := true
	if ck.HTTPOnly != nil {
		httpOnly = *ck.HTTPOnly
	}
	sameSite := ck.SameSite
	if sameSite == 0 {
		sameSite = http.SameSiteLaxMode
	}
	path := ck.Path
	if path == "" {
		path = "/"
	}

	return &http.Cookie{
		Name:     ck.Name,
		Value:    ck.Value,
		HttpOnly: httpOnly,
		Secure:   ck.Secure,
		SameSite: sameSite,
		Path:     path,
		Expires:  ck.Expires,
	}
}

func degrade(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, envelope{Message: "Internal Server Error"})
}
