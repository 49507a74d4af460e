package handler

import (
	"net/http"

	"github.com/mudancafacil/mf-webclient-go/internal/forms"
	"github.com/mudancafacil/mf-webclient-go/internal/infra/resilience"
	"github.com/mudancafacil/mf-webclient-go/internal/service"
	"github.com/mudancafacil/mf-webclient-go/internal/view"

	"go.uber.org/zap"
)

var companyEditFields = []string{"razaoSocial", "nomeResponsavel", "email", "telefone"}

func companyEditPageHandler(svc *service.AccountService, renderer *view.Renderer, flashes *Flashes) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		company := svc.Session().Company()
		renderer.Render(w, http.StatusOK, "company_edit.html", &view.Data{
			Title:   "Editar empresa",
			Flash:   flashes.Take(w, r),
			Authed:  true,
			Company: company,
			Form: map[string]string{
				"razaoSocial":     company.RazaoSocial,
				"nomeResponsavel": company.NomeResponsavel,
				"email":           company.Email,
				"telefone":        forms.MaskPhoneBR(company.Telefone),
			},
		})
	}
}

func companyEditSubmitHandler(svc *service.AccountService, renderer *view.Renderer, flashes *Flashes, busy *resilience.Bulkhead, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !busy.TryAcquire() {
			renderer.Render(w, http.StatusConflict, "company_edit.html", &view.Data{
				Title:   "Editar empresa",
				Error:   "Já existe um envio em andamento. Aguarde.",
				Authed:  true,
				Company: svc.Session().Company(),
				Form:    formValues(r, companyEditFields...),
				Busy:    true,
			})
			return
		}
		defer busy.Release()

		form := &forms.CompanyEditForm{
			RazaoSocial:     r.PostFormValue("razaoSocial"),
			NomeResponsavel: r.PostFormValue("nomeResponsavel"),
			Email:           r.PostFormValue("email"),
			Telefone:        r.PostFormValue("telefone"),
		}

		if _, err := svc.UpdateCompany(r.Context(), form); err != nil {
			logger.Warn("company edit rejected", zap.Error(err))
			renderer.Render(w, errorStatus(err), "company_edit.html", &view.Data{
				Title:   "Editar empresa",
				Error:   userMessage(err),
				Authed:  true,
				Company: svc.Session().Company(),
				Form:    formValues(r, companyEditFields...),
			})
			return
		}

		flashes.Set(w, "Dados da empresa atualizados.")
		redirect(w, r, "/home")
	}
}

var companyComplementFields = []string{
	"endereco", "coberturaRaioKm", "cidadesAtendidas", "tiposServico",
	"precoBase", "precoPorKm", "adicionais", "descricao",
}

func companyComplementPageHandler(svc *service.AccountService, renderer *view.Renderer, flashes *Flashes) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderer.Render(w, http.StatusOK, "company_complement.html", &view.Data{
			Title:   "Complementar cadastro",
			Flash:   flashes.Take(w, r),
			Authed:  true,
			Company: svc.Session().Company(),
			Form:    map[string]string{},
		})
	}
}

func companyComplementSubmitHandler(svc *service.AccountService, renderer *view.Renderer, flashes *Flashes, busy *resilience.Bulkhead, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !busy.TryAcquire() {
			renderer.Render(w, http.StatusConflict, "company_complement.html", &view.Data{
				Title:   "Complementar cadastro",
				Error:   "Já existe um envio em andamento. Aguarde.",
				Authed:  true,
				Company: svc.Session().Company(),
				Form:    formValues(r, companyComplementFields...),
				Busy:    true,
			})
			return
		}
		defer busy.Release()

		form := &forms.CompanyComplementForm{
			Endereco:         r.PostFormValue("endereco"),
			CoberturaRaioKm:  r.PostFormValue("coberturaRaioKm"),
			CidadesAtendidas: r.PostFormValue("cidadesAtendidas"),
			TiposServico:     r.PostFormValue("tiposServico"),
			PrecoBase:        r.PostFormValue("precoBase"),
			PrecoPorKm:       r.PostFormValue("precoPorKm"),
			Adicionais:       r.PostFormValue("adicionais"),
			Descricao:        r.PostFormValue("descricao"),
		}

		if _, err := svc.ComplementCompany(r.Context(), form); err != nil {
			logger.Warn("company complement rejected", zap.Error(err))
			renderer.Render(w, errorStatus(err), "company_complement.html", &view.Data{
				Title:   "Complementar cadastro",
				Error:   userMessage(err),
				Authed:  true,
				Company: svc.Session().Company(),
				Form:    formValues(r, companyComplementFields...),
			})
			return
		}

		flashes.Set(w, "Cadastro complementado com sucesso.")
		redirect(w, r, "/home")
	}
}

func companyDeletePageHandler(svc *service.AccountService, renderer *view.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderer.Render(w, http.StatusOK, "company_delete.html", &view.Data{
			Title:   "Excluir conta",
			Authed:  true,
			Company: svc.Session().Company(),
		})
	}
}

func companyDeleteSubmitHandler(svc *service.AccountService, renderer *view.Renderer, flashes *Flashes, busy *resilience.Bulkhead, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !busy.TryAcquire() {
			renderer.Render(w, http.StatusConflict, "company_delete.html", &view.Data{
				Title:   "Excluir conta",
				Error:   "Já existe um envio em andamento. Aguarde.",
				Authed:  true,
				Company: svc.Session().Company(),
				Busy:    true,
			})
			return
		}
		defer busy.Release()

		form := &forms.DeleteForm{Confirmacao: r.PostFormValue("confirmacao")}

		if err := svc.DeleteCompany(r.Context(), form); err != nil {
			logger.Warn("company deletion rejected", zap.Error(err))
			renderer.Render(w, errorStatus(err), "company_delete.html", &view.Data{
				Title:   "Excluir conta",
				Error:   userMessage(err),
				Authed:  true,
				Company: svc.Session().Company(),
			})
			return
		}

		flashes.Set(w, "Conta excluída.")
		redirect(w, r, "/login")
	}
}
