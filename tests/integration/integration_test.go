package integration

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/mudancafacil/mf-webclient-go/internal/domain"
	"github.com/mudancafacil/mf-webclient-go/internal/handler"
	"github.com/mudancafacil/mf-webclient-go/internal/infra/client"
	"github.com/mudancafacil/mf-webclient-go/internal/infra/observability"
	"github.com/mudancafacil/mf-webclient-go/internal/infra/resilience"
	"github.com/mudancafacil/mf-webclient-go/internal/infra/state"
	"github.com/mudancafacil/mf-webclient-go/internal/service"
	"github.com/mudancafacil/mf-webclient-go/internal/session"
	"github.com/mudancafacil/mf-webclient-go/internal/view"

	"go.uber.org/zap"
)

// marketplace is an in-memory stand-in for the remote API.
type marketplace struct {
	company *domain.CompanyProfile
	deleted bool
}

func (m *marketplace) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req domain.LoginRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Email != "contato@mudancasrapidas.com.br" || req.Senha != "Segredo1" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "Email ou senha incorretos"})
			return
		}
		json.NewEncoder(w).Encode(domain.LoginResponse{AccessToken: "tok-integ"})
	})

	mux.HandleFunc("GET /empresas/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-integ" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if m.company == nil || m.deleted {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(m.company)
	})

	mux.HandleFunc("POST /empresas", func(w http.ResponseWriter, r *http.Request) {
		var req domain.CompanyRegistration
		json.NewDecoder(r.Body).Decode(&req)
		if len(req.CNPJ) != 14 {
			t.Errorf("registration carried a masked cnpj: %q", req.CNPJ)
		}
		m.company = &domain.CompanyProfile{
			ID:              "emp-integ",
			RazaoSocial:     req.RazaoSocial,
			NomeResponsavel: req.NomeResponsavel,
			Email:           req.Email,
			Telefone:        req.Telefone,
			Status:          "PENDING",
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(m.company)
	})

	mux.HandleFunc("PATCH /empresas/{id}", func(w http.ResponseWriter, r *http.Request) {
		var patch map[string]any
		json.NewDecoder(r.Body).Decode(&patch)
		updated := *m.company
		if v, ok := patch["razaoSocial"].(string); ok && v != "" {
			updated.RazaoSocial = v
		}
		if _, ok := patch["coberturaRaioKm"]; ok {
			updated.Status = "READY_FOR_LEADS"
		}
		m.company = &updated
		json.NewEncoder(w).Encode(m.company)
	})

	mux.HandleFunc("DELETE /empresas/{id}", func(w http.ResponseWriter, r *http.Request) {
		m.deleted = true
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("GET /clientes/me", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	return mux
}

type stack struct {
	router http.Handler
	sess   *session.Store
	store  *state.FileStore
}

func newStack(t *testing.T, remoteURL, stateDir string) *stack {
	t.Helper()
	logger := zap.NewNop()

	store, err := state.NewFileStore(stateDir)
	if err != nil {
		t.Fatalf("state.NewFileStore: %v", err)
	}
	sess := session.New(store, logger)

	metrics := observability.NewMetrics()
	api := client.NewAPI(
		&http.Client{Timeout: 2 * time.Second},
		remoteURL,
		resilience.NewCircuitBreaker("integration"),
		metrics,
	)
	svc := service.NewAccountService(api, sess, metrics, logger)

	renderer, err := view.New(logger)
	if err != nil {
		t.Fatalf("view.New: %v", err)
	}

	return &stack{
		router: handler.NewRouter(svc, renderer, metrics, time.Minute, logger),
		sess:   sess,
		store:  store,
	}
}

func post(t *testing.T, router http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func get(t *testing.T, router http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestCompanyLifecycle(t *testing.T) {
	remote := &marketplace{}
	srv := httptest.NewServer(remote.handler(t))
	defer srv.Close()

	s := newStack(t, srv.URL, t.TempDir())

	// Register
	rec := post(t, s.router, "/cadastro", url.Values{
		"cnpj":            {"11.222.333/0001-81"},
		"razaoSocial":     {"Mudanças Rápidas LTDA"},
		"nomeResponsavel": {"Maria Silva"},
		"email":           {"contato@mudancasrapidas.com.br"},
		"telefone":        {"(61) 9 9999-9999"},
		"senha":           {"Segredo1"},
		"confirmaSenha":   {"Segredo1"},
	})
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/login" {
		t.Fatalf("register: status %d location %q", rec.Code, rec.Header().Get("Location"))
	}
	if s.sess.IsAuthenticated() {
		t.Fatal("register opened a session")
	}

	// Login
	rec = post(t, s.router, "/login", url.Values{
		"email": {"contato@mudancasrapidas.com.br"},
		"senha": {"Segredo1"},
	})
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/home" {
		t.Fatalf("login: status %d location %q", rec.Code, rec.Header().Get("Location"))
	}
	if s.sess.Kind() != domain.KindCompany {
		t.Fatalf("session kind = %s", s.sess.Kind())
	}

	// Dashboard shows pending status
	rec = get(t, s.router, "/home")
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "Pendente") {
		t.Error("dashboard missing pending status")
	}

	// Edit
	rec = post(t, s.router, "/empresa/editar", url.Values{
		"razaoSocial": {"Mudanças Rápidas e Seguras LTDA"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("edit: status %d", rec.Code)
	}
	if s.sess.Company().RazaoSocial != "Mudanças Rápidas e Seguras LTDA" {
		t.Errorf("session profile not refreshed: %+v", s.sess.Company())
	}

	// Complement moves status forward
	rec = post(t, s.router, "/empresa/complementar", url.Values{
		"endereco":        {"STN Qd 5, Brasília"},
		"coberturaRaioKm": {"50"},
		"tiposServico":    {"residencial"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("complement: status %d", rec.Code)
	}
	rec = get(t, s.router, "/home")
	body, _ = io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "Cadastro completo efetuado") {
		t.Error("dashboard missing ready-for-leads status")
	}

	// Delete
	rec = post(t, s.router, "/empresa/excluir", url.Values{"confirmacao": {"EXCLUIR"}})
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/login" {
		t.Fatalf("delete: status %d location %q", rec.Code, rec.Header().Get("Location"))
	}
	if !remote.deleted {
		t.Error("remote account not deleted")
	}
	if s.sess.IsAuthenticated() {
		t.Error("session survived deletion")
	}
	if _, ok := s.store.Get(session.KeyToken); ok {
		t.Error("token key survived deletion")
	}
}

func TestSessionSurvivesRestart(t *testing.T) {
	remote := &marketplace{company: &domain.CompanyProfile{
		ID:          "emp-integ",
		RazaoSocial: "Mudanças Rápidas LTDA",
		Status:      "ACTIVE",
	}}
	srv := httptest.NewServer(remote.handler(t))
	defer srv.Close()

	dir := t.TempDir()

	first := newStack(t, srv.URL, dir)
	rec := post(t, first.router, "/login", url.Values{
		"email": {"contato@mudancasrapidas.com.br"},
		"senha": {"Segredo1"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("login: status %d", rec.Code)
	}

	// A fresh stack over the same state dir comes up signed in.
	second := newStack(t, srv.URL, dir)
	if second.sess.Kind() != domain.KindCompany {
		t.Fatalf("restored kind = %s", second.sess.Kind())
	}

	rec = get(t, second.router, "/home")
	if rec.Code != http.StatusOK {
		t.Fatalf("home after restore: status %d", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "Ativo") {
		t.Error("restored dashboard missing status")
	}
}

func TestLoginFailureShowsServerMessage(t *testing.T) {
	remote := &marketplace{}
	srv := httptest.NewServer(remote.handler(t))
	defer srv.Close()

	s := newStack(t, srv.URL, t.TempDir())

	rec := post(t, s.router, "/login", url.Values{
		"email": {"contato@mudancasrapidas.com.br"},
		"senha": {"senhaErrada1"},
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "Email ou senha incorretos") {
		t.Error("server error message not surfaced")
	}
}
