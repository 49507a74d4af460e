// Package service orchestrates login, registration and profile maintenance
// against the marketplace API, keeping the local session in sync with every
// successful mutation.
package service

import (
	"context"
	"errors"

	"github.com/mudancafacil/mf-webclient-go/internal/domain"
	"github.com/mudancafacil/mf-webclient-go/internal/forms"
	"github.com/mudancafacil/mf-webclient-go/internal/infra/observability"
	"github.com/mudancafacil/mf-webclient-go/internal/port"
	"github.com/mudancafacil/mf-webclient-go/internal/session"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var accountTracer = otel.Tracer("service/accounts")

// AccountService drives the account flows.
type AccountService struct {
	api     port.MarketplaceAPI
	session *session.Store
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewAccountService creates a new account service.
func NewAccountService(api port.MarketplaceAPI, sess *session.Store, metrics *observability.Metrics, logger *zap.Logger) *AccountService {
	return &AccountService{
		api:     api,
		session: sess,
		metrics: metrics,
		logger:  logger,
	}
}

// Session exposes the session store for guards and views.
func (s *AccountService) Session() *session.Store {
	return s.session
}

// ============================================================
// Login
// ============================================================

// Login exchanges credentials for a token, then resolves which account the
// token belongs to by probing the company profile first and the customer
// profile second. A token whose profile cannot be resolved still opens a
// session; the account type stays undetermined until a later fetch succeeds.
func (s *AccountService) Login(ctx context.Context, form *forms.LoginForm) (domain.AccountKind, error) {
	ctx, span := accountTracer.Start(ctx, "AccountService.Login")
	defer span.End()

	if err := form.Validate(); err != nil {
		s.metrics.IncrFormRejection("login")
		return domain.KindNone, err
	}

	resp, err := s.api.Login(ctx, form.Payload())
	if err != nil {
		s.metrics.IncrLogin("failure")
		return domain.KindNone, err
	}
	token := resp.AccessToken

	if company, err := s.api.CompanyMe(ctx, token); err == nil {
		s.session.Login(token, session.CompanyLogin(company))
		s.metrics.IncrLogin("success")
		s.logger.Info("company logged in", zap.String("company_id", company.ID))
		return domain.KindCompany, nil
	} else if !isProfileMismatch(err) {
		s.logger.Warn("company profile fetch failed after login", zap.Error(err))
	}

	if customer, err := s.api.CustomerMe(ctx, token); err == nil {
		s.session.Login(token, session.CustomerLogin(customer))
		s.metrics.IncrLogin("success")
		s.logger.Info("customer logged in", zap.String("customer_id", customer.ID))
		return domain.KindCustomer, nil
	} else if !isProfileMismatch(err) {
		s.logger.Warn("customer profile fetch failed after login", zap.Error(err))
	}

	// Token is valid but neither profile resolved. Keep the session open
	// without a type so the user is not bounced back to the login form.
	s.session.Login(token, session.TokenOnly())
	s.metrics.IncrLogin("success")
	s.logger.Warn("logged in without resolvable profile")
	return domain.KindNone, nil
}

// isProfileMismatch reports errors that just mean "this token belongs to the
// other account type", which the login probe expects.
func isProfileMismatch(err error) bool {
	var (
		notFound *domain.ErrNotFound
		unauth   *domain.ErrUnauthorized
	)
	return errors.As(err, &notFound) || errors.As(err, &unauth)
}

// ============================================================
// Logout
// ============================================================

// Logout drops the local session. The API holds no server-side session to
// revoke; discarding the token is the whole operation.
func (s *AccountService) Logout(ctx context.Context) {
	_, span := accountTracer.Start(ctx, "AccountService.Logout")
	defer span.End()

	kind := s.session.Kind()
	s.session.Logout()
	s.logger.Info("logged out", zap.String("tipo", kind.String()))
}
