package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/mudancafacil/mf-webclient-go/internal/domain"
	"github.com/mudancafacil/mf-webclient-go/internal/infra/observability"
	"github.com/mudancafacil/mf-webclient-go/internal/service"
	"github.com/mudancafacil/mf-webclient-go/internal/session"
	"github.com/mudancafacil/mf-webclient-go/internal/view"

	"go.uber.org/zap"
)

// fakeAPI serves canned accounts for router-level tests.
type fakeAPI struct {
	company  *domain.CompanyProfile
	customer *domain.CustomerProfile
	deleted  bool
}

func (f *fakeAPI) Login(_ context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	if req.Senha != "Segredo1" {
		return nil, &domain.ErrUnauthorized{Message: "Email ou senha incorretos"}
	}
	return &domain.LoginResponse{AccessToken: "tok-1"}, nil
}

func (f *fakeAPI) CompanyMe(context.Context, string) (*domain.CompanyProfile, error) {
	if f.company == nil {
		return nil, &domain.ErrNotFound{Resource: "empresa", ID: "me"}
	}
	return f.company, nil
}

func (f *fakeAPI) RegisterCompany(_ context.Context, req *domain.CompanyRegistration) (*domain.CompanyProfile, error) {
	return &domain.CompanyProfile{ID: "emp-new", RazaoSocial: req.RazaoSocial, Status: "PENDING"}, nil
}

func (f *fakeAPI) UpdateCompany(_ context.Context, _, id string, req *domain.CompanyUpdate) (*domain.CompanyProfile, error) {
	updated := *f.company
	if req.RazaoSocial != "" {
		updated.RazaoSocial = req.RazaoSocial
	}
	f.company = &updated
	return &updated, nil
}

func (f *fakeAPI) ComplementCompany(_ context.Context, _, id string, _ *domain.CompanyComplement) (*domain.CompanyProfile, error) {
	updated := *f.company
	updated.Status = "READY_FOR_LEADS"
	f.company = &updated
	return &updated, nil
}

func (f *fakeAPI) DeleteCompany(context.Context, string, string) error {
	f.deleted = true
	return nil
}

func (f *fakeAPI) CustomerMe(context.Context, string) (*domain.CustomerProfile, error) {
	if f.customer == nil {
		return nil, &domain.ErrNotFound{Resource: "cliente", ID: "me"}
	}
	return f.customer, nil
}

func (f *fakeAPI) RegisterCustomer(_ context.Context, req *domain.CustomerRegistration) (*domain.CustomerProfile, error) {
	return &domain.CustomerProfile{ID: "cli-new", Nome: req.Nome}, nil
}

func (f *fakeAPI) UpdateCustomer(_ context.Context, _, id string, req *domain.CustomerUpdate) (*domain.CustomerProfile, error) {
	updated := *f.customer
	if req.Nome != "" {
		updated.Nome = req.Nome
	}
	f.customer = &updated
	return &updated, nil
}

func (f *fakeAPI) DeleteCustomer(context.Context, string, string) error {
	f.deleted = true
	return nil
}

func newTestRouter(t *testing.T, api *fakeAPI) (http.Handler, *session.Store) {
	t.Helper()
	logger := zap.NewNop()
	sess := session.New(memState{}, logger)
	svc := service.NewAccountService(api, sess, observability.NewMetrics(), logger)
	renderer, err := view.New(logger)
	if err != nil {
		t.Fatalf("view.New: %v", err)
	}
	return NewRouter(svc, renderer, observability.NewMetrics(), time.Minute, logger), sess
}

func postForm(t *testing.T, router http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestLoginPageRenders(t *testing.T) {
	router, _ := newTestRouter(t, &fakeAPI{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "Entrar") {
		t.Error("login page missing form")
	}
}

func TestLoginFlowCompany(t *testing.T) {
	api := &fakeAPI{company: &domain.CompanyProfile{ID: "emp-1", RazaoSocial: "Mudanças Rápidas LTDA", Status: "PENDING"}}
	router, sess := newTestRouter(t, api)

	rec := postForm(t, router, "/login", url.Values{
		"email": {"dono@empresa.com.br"},
		"senha": {"Segredo1"},
	})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/home" {
		t.Errorf("Location = %q", loc)
	}
	if sess.Kind() != domain.KindCompany {
		t.Errorf("session kind = %s", sess.Kind())
	}
}

func TestLoginFlowHonorsFrom(t *testing.T) {
	api := &fakeAPI{company: &domain.CompanyProfile{ID: "emp-1", Status: "PENDING"}}
	router, _ := newTestRouter(t, api)

	rec := postForm(t, router, "/login?from=%2Fempresa%2Feditar", url.Values{
		"email": {"dono@empresa.com.br"},
		"senha": {"Segredo1"},
	})

	if loc := rec.Header().Get("Location"); loc != "/empresa/editar" {
		t.Errorf("Location = %q, want /empresa/editar", loc)
	}
}

func TestLoginBadPasswordShowsError(t *testing.T) {
	router, sess := newTestRouter(t, &fakeAPI{})

	rec := postForm(t, router, "/login", url.Values{
		"email": {"dono@empresa.com.br"},
		"senha": {"errada"},
	})

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "Email ou senha incorretos") {
		t.Error("server message not shown")
	}
	if sess.IsAuthenticated() {
		t.Error("session opened on failed login")
	}
}

func TestHomeRequiresSession(t *testing.T) {
	router, _ := newTestRouter(t, &fakeAPI{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/home", nil))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); !strings.HasPrefix(loc, "/login?from=") {
		t.Errorf("Location = %q", loc)
	}
}

func TestHomeShowsCompanyStatus(t *testing.T) {
	api := &fakeAPI{company: &domain.CompanyProfile{ID: "emp-1", RazaoSocial: "Mudanças Rápidas LTDA", Status: "READY-FOR-LEADS"}}
	router, sess := newTestRouter(t, api)
	sess.Login("tok-1", session.CompanyLogin(api.company))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/home", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "Cadastro completo efetuado") {
		t.Error("status label missing from dashboard")
	}
}

func TestRegisterCompanyRedirectsToLogin(t *testing.T) {
	router, sess := newTestRouter(t, &fakeAPI{})

	rec := postForm(t, router, "/cadastro", url.Values{
		"cnpj":            {"11.222.333/0001-81"},
		"razaoSocial":     {"Mudanças Rápidas LTDA"},
		"nomeResponsavel": {"Maria Silva"},
		"email":           {"contato@mudancasrapidas.com.br"},
		"telefone":        {"(61) 9 9999-9999"},
		"senha":           {"Segredo1"},
		"confirmaSenha":   {"Segredo1"},
	})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location = %q", loc)
	}
	if sess.IsAuthenticated() {
		t.Error("registration must not open a session")
	}
}

func TestRegisterCompanyValidationEchoesInput(t *testing.T) {
	router, _ := newTestRouter(t, &fakeAPI{})

	rec := postForm(t, router, "/cadastro", url.Values{
		"cnpj":            {"112"},
		"razaoSocial":     {"Mudanças Rápidas LTDA"},
		"nomeResponsavel": {"Maria Silva"},
		"email":           {"contato@mudancasrapidas.com.br"},
		"telefone":        {"(61) 9 9999-9999"},
		"senha":           {"Segredo1"},
		"confirmaSenha":   {"Segredo1"},
	})

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "Mudanças Rápidas LTDA") {
		t.Error("rejected form lost the user's input")
	}
	if strings.Contains(string(body), "Segredo1") {
		t.Error("password echoed back to the page")
	}
}

func TestCompanyRoutesBounceCustomer(t *testing.T) {
	api := &fakeAPI{customer: &domain.CustomerProfile{ID: "cli-1", Nome: "João"}}
	router, sess := newTestRouter(t, api)
	sess.Login("tok-1", session.CustomerLogin(api.customer))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/empresa/editar", nil))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/home" {
		t.Errorf("Location = %q", loc)
	}
}

func TestDeleteCompanyEndsSessionAndRedirects(t *testing.T) {
	api := &fakeAPI{company: &domain.CompanyProfile{ID: "emp-1", RazaoSocial: "Mudanças Rápidas LTDA"}}
	router, sess := newTestRouter(t, api)
	sess.Login("tok-1", session.CompanyLogin(api.company))

	rec := postForm(t, router, "/empresa/excluir", url.Values{"confirmacao": {"EXCLUIR"}})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location = %q", loc)
	}
	if !api.deleted {
		t.Error("remote delete never happened")
	}
	if sess.IsAuthenticated() {
		t.Error("session survived account deletion")
	}
}

func TestLogout(t *testing.T) {
	api := &fakeAPI{company: &domain.CompanyProfile{ID: "emp-1"}}
	router, sess := newTestRouter(t, api)
	sess.Login("tok-1", session.CompanyLogin(api.company))

	rec := postForm(t, router, "/logout", url.Values{})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if sess.IsAuthenticated() {
		t.Error("session survived logout")
	}
}

func TestLoginPageRedirectsAuthenticated(t *testing.T) {
	api := &fakeAPI{company: &domain.CompanyProfile{ID: "emp-1"}}
	router, sess := newTestRouter(t, api)
	sess.Login("tok-1", session.CompanyLogin(api.company))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/home" {
		t.Errorf("Location = %q", loc)
	}
}

func TestRootRedirects(t *testing.T) {
	router, sess := newTestRouter(t, &fakeAPI{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location = %q, want /login", loc)
	}

	sess.Login("tok-1", session.TokenOnly())
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if loc := rec.Header().Get("Location"); loc != "/home" {
		t.Errorf("Location = %q, want /home", loc)
	}
}

func TestHealthEndpoints(t *testing.T) {
	router, _ := newTestRouter(t, &fakeAPI{})

	for _, path := range []string{"/healthz", "/readyz", "/metrics", "/ping"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("%s status = %d", path, rec.Code)
		}
	}
}

func TestHomeServesTypelessSessionAfterCorruptProfile(t *testing.T) {
	state := memState{
		session.KeyToken:   "opaque-token",
		session.KeyTipo:    "empresa",
		session.KeyCompany: "{not json",
	}
	logger := zap.NewNop()
	sess := session.New(state, logger)
	svc := service.NewAccountService(&fakeAPI{}, sess, observability.NewMetrics(), logger)
	renderer, err := view.New(logger)
	if err != nil {
		t.Fatalf("view.New: %v", err)
	}
	router := NewRouter(svc, renderer, observability.NewMetrics(), time.Minute, logger)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/home", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("/home status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/empresa/editar", nil))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("/empresa/editar status = %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/home" {
		t.Errorf("Location = %q, want /home", loc)
	}
}
