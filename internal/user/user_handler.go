package user

import (
	"net/url"

	"github.com/RXAliman/scrunch/internal/svc"
)

type UserHandler struct {
	svc *svc.ServiceContext
}

func NewUserHandler(svc *svc.ServiceContext) *UserHandler {
	return &UserHandler{svc: svc}
}

// safeRedirect keeps post-auth redirects on this site: only relative
// paths pass through, anything else falls back to the home page.
func safeRedirect(raw string) string {
	if raw == "" {
		return "/"
	}
	u, err := url.Parse(raw)
	if err != nil || u.IsAbs() || u.Host != "" || raw[0] != '/' {
		return "/"
	}
	return raw
}
