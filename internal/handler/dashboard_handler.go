package handler

import (
	"net/http"

	"github.com/mudancafacil/mf-webclient-go/internal/domain"
	"github.com/mudancafacil/mf-webclient-go/internal/service"
	"github.com/mudancafacil/mf-webclient-go/internal/view"
)

// rootHandler sends the visitor to their dashboard or to the login page.
func rootHandler(svc *service.AccountService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc.Session().IsAuthenticated() {
			redirect(w, r, "/home")
			return
		}
		redirect(w, r, "/login")
	}
}

// homeHandler renders the dashboard for whichever account kind is signed
// in. A typeless session gets a fallback page instead of an error.
func homeHandler(svc *service.AccountService, renderer *view.Renderer, flashes *Flashes) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flash := flashes.Take(w, r)

		switch svc.Session().Kind() {
		case domain.KindCompany:
			company := svc.Session().Company()
			status := domain.NormalizeCompanyStatus(company.Status)
			renderer.Render(w, http.StatusOK, "home_company.html", &view.Data{
				Title:       "Início",
				Flash:       flash,
				Authed:      true,
				Tipo:        domain.KindCompany,
				Company:     company,
				StatusLabel: status.Label(),
				StatusHint:  status.Hint(),
			})
		case domain.KindCustomer:
			renderer.Render(w, http.StatusOK, "home_customer.html", &view.Data{
				Title:    "Início",
				Flash:    flash,
				Authed:   true,
				Tipo:     domain.KindCustomer,
				Customer: svc.Session().Customer(),
			})
		default:
			renderer.Render(w, http.StatusOK, "home_none.html", &view.Data{
				Title:  "Início",
				Flash:  flash,
				Authed: true,
			})
		}
	}
}
