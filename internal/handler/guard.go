package handler

import (
	"net/http"
	"net/url"

	"github.com/mudancafacil/mf-webclient-go/internal/domain"
	"github.com/mudancafacil/mf-webclient-go/internal/session"
)

// RequireSession bounces unauthenticated requests to the login page,
// keeping the requested path in the from parameter so a successful login
// lands back where the user was headed.
func RequireSession(sess *session.Store) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !sess.IsAuthenticated() {
				target := r.URL.Path
				if r.URL.RawQuery != "" {
					target += "?" + r.URL.RawQuery
				}
				redirect(w, r, "/login?from="+url.QueryEscape(target))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireCompany limits a route to company sessions. Other signed-in
// accounts go back home instead of hitting pages that cannot serve them.
func RequireCompany(sess *session.Store) func(next http.Handler) http.Handler {
	return requireKind(sess, domain.KindCompany)
}

// RequireCustomer limits a route to customer sessions.
func RequireCustomer(sess *session.Store) func(next http.Handler) http.Handler {
	return requireKind(sess, domain.KindCustomer)
}

func requireKind(sess *session.Store, kind domain.AccountKind) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sess.Kind() != kind {
				redirect(w, r, "/home")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// loginTarget resolves where a fresh login should land. Only local paths are
// honored so the from parameter cannot bounce the user off-site.
func loginTarget(from string) string {
	if from == "" {
		return "/home"
	}
	u, err := url.Parse(from)
	if err != nil || u.IsAbs() || u.Host != "" || !isLocalPath(u.Path) {
		return "/home"
	}
	target := u.Path
	if u.RawQuery != "" {
		target += "?" + u.RawQuery
	}
	return target
}

func isLocalPath(p string) bool {
	return len(p) > 0 && p[0] == '/' && (len(p) == 1 || p[1] != '/')
}
