package handler

import (
	"net/http"

	"github.com/mudancafacil/mf-webclient-go/internal/domain"
	"github.com/mudancafacil/mf-webclient-go/internal/forms"
	"github.com/mudancafacil/mf-webclient-go/internal/infra/resilience"
	"github.com/mudancafacil/mf-webclient-go/internal/service"
	"github.com/mudancafacil/mf-webclient-go/internal/view"

	"go.uber.org/zap"
)

var customerEditFields = []string{
	"nome", "email", "telefone",
	"cep", "logradouro", "numero", "complemento", "bairro", "cidade", "uf",
}

func customerEditPageHandler(svc *service.AccountService, renderer *view.Renderer, flashes *Flashes) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customer := svc.Session().Customer()
		form := map[string]string{
			"nome":     customer.Nome,
			"email":    customer.Email,
			"telefone": forms.MaskPhoneBR(customer.Telefone),
		}
		if e := customer.Endereco; e != nil {
			form["cep"] = forms.MaskCEP(e.CEP)
			form["logradouro"] = e.Logradouro
			form["numero"] = e.Numero
			form["complemento"] = e.Complemento
			form["bairro"] = e.Bairro
			form["cidade"] = e.Cidade
			form["uf"] = e.UF
		}
		renderer.Render(w, http.StatusOK, "customer_edit.html", &view.Data{
			Title:    "Editar dados",
			Flash:    flashes.Take(w, r),
			Authed:   true,
			Tipo:     domain.KindCustomer,
			Customer: customer,
			Form:     form,
		})
	}
}

func customerEditSubmitHandler(svc *service.AccountService, renderer *view.Renderer, flashes *Flashes, busy *resilience.Bulkhead, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !busy.TryAcquire() {
			renderer.Render(w, http.StatusConflict, "customer_edit.html", &view.Data{
				Title:    "Editar dados",
				Error:    "Já existe um envio em andamento. Aguarde.",
				Authed:   true,
				Customer: svc.Session().Customer(),
				Form:     formValues(r, customerEditFields...),
				Busy:     true,
			})
			return
		}
		defer busy.Release()

		form := &forms.CustomerEditForm{
			Nome:        r.PostFormValue("nome"),
			Email:       r.PostFormValue("email"),
			Telefone:    r.PostFormValue("telefone"),
			CEP:         r.PostFormValue("cep"),
			Logradouro:  r.PostFormValue("logradouro"),
			Numero:      r.PostFormValue("numero"),
			Complemento: r.PostFormValue("complemento"),
			Bairro:      r.PostFormValue("bairro"),
			Cidade:      r.PostFormValue("cidade"),
			UF:          r.PostFormValue("uf"),
		}

		if _, err := svc.UpdateCustomer(r.Context(), form); err != nil {
			logger.Warn("customer edit rejected", zap.Error(err))
			renderer.Render(w, errorStatus(err), "customer_edit.html", &view.Data{
				Title:    "Editar dados",
				Error:    userMessage(err),
				Authed:   true,
				Customer: svc.Session().Customer(),
				Form:     formValues(r, customerEditFields...),
			})
			return
		}

		flashes.Set(w, "Dados atualizados.")
		redirect(w, r, "/home")
	}
}

func customerDeletePageHandler(svc *service.AccountService, renderer *view.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderer.Render(w, http.StatusOK, "customer_delete.html", &view.Data{
			Title:    "Excluir conta",
			Authed:   true,
			Customer: svc.Session().Customer(),
		})
	}
}

func customerDeleteSubmitHandler(svc *service.AccountService, renderer *view.Renderer, flashes *Flashes, busy *resilience.Bulkhead, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !busy.TryAcquire() {
			renderer.Render(w, http.StatusConflict, "customer_delete.html", &view.Data{
				Title:    "Excluir conta",
				Error:    "Já existe um envio em andamento. Aguarde.",
				Authed:   true,
				Customer: svc.Session().Customer(),
				Busy:     true,
			})
			return
		}
		defer busy.Release()

		form := &forms.DeleteForm{Confirmacao: r.PostFormValue("confirmacao")}

		if err := svc.DeleteCustomer(r.Context(), form); err != nil {
			logger.Warn("customer deletion rejected", zap.Error(err))
			renderer.Render(w, errorStatus(err), "customer_delete.html", &view.Data{
				Title:    "Excluir conta",
				Error:    userMessage(err),
				Authed:   true,
				Customer: svc.Session().Customer(),
			})
			return
		}

		flashes.Set(w, "Conta excluída.")
		redirect(w, r, "/login")
	}
}
