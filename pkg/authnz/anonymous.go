package authnz

import (
	"net/http"
)

type anonymous struct {
	user string
}

// NewAnonymousAuthenticator lets every request through as the same user. It is only meant
// for local development when no OIDC providers are configured.
func NewAnonymousAuthenticator(user string) Authenticator {
	return &anonymous{user: user}
}

func (a *anonymous) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), a.user)))
	})
}
