package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/mudancafacil/mf-webclient-go/internal/domain"
)

// userMessage maps a flow error to the Portuguese text shown on the page.
// Typed errors carry their own wording; anything unexpected gets a generic
// message so internals never leak into the page.
func userMessage(err error) string {
	var (
		validation *domain.ErrValidation
		unauth     *domain.ErrUnauthorized
		conflict   *domain.ErrConflict
		remote     *domain.ErrRemote
		circuit    *domain.ErrCircuitOpen
		external   *domain.ErrExternalService
		notFound   *domain.ErrNotFound
	)
	switch {
	case errors.As(err, &validation):
		return validation.Message
	case errors.As(err, &unauth):
		return unauth.Error()
	case errors.As(err, &conflict):
		return conflict.Message
	case errors.As(err, &remote):
		if remote.Detail != "" {
			return remote.Detail
		}
		return fmt.Sprintf("O servidor retornou um erro (%d). Tente novamente.", remote.Status)
	case errors.As(err, &circuit):
		return "Serviço temporariamente indisponível. Aguarde alguns instantes e tente novamente."
	case errors.As(err, &external):
		return "Não foi possível conectar ao servidor. Verifique sua conexão e tente novamente."
	case errors.As(err, &notFound):
		return "Registro não encontrado."
	default:
		return "Não foi possível completar a operação. Tente novamente."
	}
}

// errorStatus picks the HTTP status for a rendered error page.
func errorStatus(err error) int {
	var (
		validation *domain.ErrValidation
		unauth     *domain.ErrUnauthorized
		conflict   *domain.ErrConflict
		notFound   *domain.ErrNotFound
		circuit    *domain.ErrCircuitOpen
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusUnprocessableEntity
	case errors.As(err, &unauth):
		return http.StatusUnauthorized
	case errors.As(err, &conflict):
		return http.StatusConflict
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &circuit):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

// formValues echoes the named fields of a submitted form so a rejected page
// can be re-rendered with the user's input intact. Passwords are never
// echoed.
func formValues(r *http.Request, names ...string) map[string]string {
	values := make(map[string]string, len(names))
	for _, name := range names {
		values[name] = r.PostFormValue(name)
	}
	return values
}

// redirect issues a 303 so the browser re-requests with GET.
func redirect(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusSeeOther)
}
