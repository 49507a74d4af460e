package handler

import (
	"net/http"

	"github.com/mudancafacil/mf-webclient-go/internal/forms"
	"github.com/mudancafacil/mf-webclient-go/internal/infra/resilience"
	"github.com/mudancafacil/mf-webclient-go/internal/service"
	"github.com/mudancafacil/mf-webclient-go/internal/view"

	"go.uber.org/zap"
)

// loginPageHandler renders the login form. Signed-in users are sent home;
// there is nothing for them to do here.
func loginPageHandler(svc *service.AccountService, renderer *view.Renderer, flashes *Flashes) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc.Session().IsAuthenticated() {
			redirect(w, r, "/home")
			return
		}
		renderer.Render(w, http.StatusOK, "login.html", &view.Data{
			Title: "Entrar",
			Flash: flashes.Take(w, r),
			From:  r.URL.Query().Get("from"),
			Form:  map[string]string{},
		})
	}
}

func loginSubmitHandler(svc *service.AccountService, renderer *view.Renderer, busy *resilience.Bulkhead, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from := r.URL.Query().Get("from")
		echo := func() map[string]string { return formValues(r, "email") }

		if !busy.TryAcquire() {
			renderer.Render(w, http.StatusConflict, "login.html", &view.Data{
				Title: "Entrar",
				Error: "Já existe um envio em andamento. Aguarde.",
				From:  from,
				Form:  echo(),
				Busy:  true,
			})
			return
		}
		defer busy.Release()

		form := &forms.LoginForm{
			Email: r.PostFormValue("email"),
			Senha: r.PostFormValue("senha"),
		}

		if _, err := svc.Login(r.Context(), form); err != nil {
			logger.Warn("login rejected", zap.Error(err))
			renderer.Render(w, errorStatus(err), "login.html", &view.Data{
				Title: "Entrar",
				Error: userMessage(err),
				From:  from,
				Form:  echo(),
			})
			return
		}

		redirect(w, r, loginTarget(from))
	}
}

func logoutHandler(svc *service.AccountService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.Logout(r.Context())
		redirect(w, r, "/login")
	}
}

// ============================================================
// Registration
// ============================================================

var companyRegisterFields = []string{"cnpj", "razaoSocial", "nomeResponsavel", "email", "telefone"}

func registerCompanyPageHandler(renderer *view.Renderer, flashes *Flashes) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderer.Render(w, http.StatusOK, "register_company.html", &view.Data{
			Title: "Cadastro de empresa",
			Flash: flashes.Take(w, r),
			Form:  map[string]string{},
		})
	}
}

func registerCompanySubmitHandler(svc *service.AccountService, renderer *view.Renderer, flashes *Flashes, busy *resilience.Bulkhead, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !busy.TryAcquire() {
			renderer.Render(w, http.StatusConflict, "register_company.html", &view.Data{
				Title: "Cadastro de empresa",
				Error: "Já existe um envio em andamento. Aguarde.",
				Form:  formValues(r, companyRegisterFields...),
				Busy:  true,
			})
			return
		}
		defer busy.Release()

		form := &forms.CompanyRegisterForm{
			CNPJ:            r.PostFormValue("cnpj"),
			RazaoSocial:     r.PostFormValue("razaoSocial"),
			NomeResponsavel: r.PostFormValue("nomeResponsavel"),
			Email:           r.PostFormValue("email"),
			Senha:           r.PostFormValue("senha"),
			ConfirmaSenha:   r.PostFormValue("confirmaSenha"),
			Telefone:        r.PostFormValue("telefone"),
		}

		if err := svc.RegisterCompany(r.Context(), form); err != nil {
			logger.Warn("company registration rejected", zap.Error(err))
			renderer.Render(w, errorStatus(err), "register_company.html", &view.Data{
				Title: "Cadastro de empresa",
				Error: userMessage(err),
				Form:  formValues(r, companyRegisterFields...),
			})
			return
		}

		flashes.Set(w, "Cadastro realizado com sucesso. Entre com seu email e senha.")
		redirect(w, r, "/login")
	}
}

var customerRegisterFields = []string{
	"nome", "cpf", "email", "telefone",
	"cep", "logradouro", "numero", "complemento", "bairro", "cidade", "uf",
}

func registerCustomerPageHandler(renderer *view.Renderer, flashes *Flashes) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderer.Render(w, http.StatusOK, "register_customer.html", &view.Data{
			Title: "Cadastro de cliente",
			Flash: flashes.Take(w, r),
			Form:  map[string]string{},
		})
	}
}

func registerCustomerSubmitHandler(svc *service.AccountService, renderer *view.Renderer, flashes *Flashes, busy *resilience.Bulkhead, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !busy.TryAcquire() {
			renderer.Render(w, http.StatusConflict, "register_customer.html", &view.Data{
				Title: "Cadastro de cliente",
				Error: "Já existe um envio em andamento. Aguarde.",
				Form:  formValues(r, customerRegisterFields...),
				Busy:  true,
			})
			return
		}
		defer busy.Release()

		form := &forms.CustomerRegisterForm{
			Nome:          r.PostFormValue("nome"),
			CPF:           r.PostFormValue("cpf"),
			Email:         r.PostFormValue("email"),
			Senha:         r.PostFormValue("senha"),
			ConfirmaSenha: r.PostFormValue("confirmaSenha"),
			Telefone:      r.PostFormValue("telefone"),
			CEP:           r.PostFormValue("cep"),
			Logradouro:    r.PostFormValue("logradouro"),
			Numero:        r.PostFormValue("numero"),
			Complemento:   r.PostFormValue("complemento"),
			Bairro:        r.PostFormValue("bairro"),
			Cidade:        r.PostFormValue("cidade"),
			UF:            r.PostFormValue("uf"),
		}

		if err := svc.RegisterCustomer(r.Context(), form); err != nil {
			logger.Warn("customer registration rejected", zap.Error(err))
			renderer.Render(w, errorStatus(err), "register_customer.html", &view.Data{
				Title: "Cadastro de cliente",
				Error: userMessage(err),
				Form:  formValues(r, customerRegisterFields...),
			})
			return
		}

		flashes.Set(w, "Cadastro realizado com sucesso. Entre com seu email e senha.")
		redirect(w, r, "/login")
	}
}
