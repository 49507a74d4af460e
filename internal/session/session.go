package session

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/mudancafacil/mf-webclient-go/internal/domain"
	"github.com/mudancafacil/mf-webclient-go/internal/port"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Storage keys shared with earlier clients so a stored session survives the
// migration.
const (
	KeyToken    = "mf_token"
	KeyTipo     = "mf_tipo"
	KeyCompany  = "mf_empresa"
	KeyCustomer = "mf_cliente"
)

// LoginResult tags which profile (if any) accompanied a fresh token. The tag
// makes the three login shapes explicit instead of overloading nil arguments.
type LoginResult struct {
	kind     domain.AccountKind
	company  *domain.CompanyProfile
	customer *domain.CustomerProfile
}

// CompanyLogin is a login that resolved a company profile.
func CompanyLogin(p *domain.CompanyProfile) LoginResult {
	return LoginResult{kind: domain.KindCompany, company: p}
}

// CustomerLogin is a login that resolved a customer profile.
func CustomerLogin(p *domain.CustomerProfile) LoginResult {
	return LoginResult{kind: domain.KindCustomer, customer: p}
}

// TokenOnly is a login whose profile lookup failed. The token is kept so the
// account can still be resolved later, but the session stays typeless.
func TokenOnly() LoginResult {
	return LoginResult{kind: domain.KindNone}
}

// Store holds the in-memory session and mirrors every change to persistent
// state. Memory is the source of truth; persistence is best effort and a
// write failure is logged, never propagated.
type Store struct {
	mu       sync.RWMutex
	token    string
	kind     domain.AccountKind
	company  *domain.CompanyProfile
	customer *domain.CustomerProfile

	state  port.StateStore
	logger *zap.Logger
}

// New builds a Store and synchronously restores any persisted session before
// returning, so callers never observe a half-restored state.
func New(state port.StateStore, logger *zap.Logger) *Store {
	s := &Store{state: state, logger: logger}
	s.restore()
	return s
}

// restore rebuilds the session from persisted keys. Malformed or stale
// entries are tolerated: each key degrades independently and the worst case
// is an unauthenticated session.
func (s *Store) restore() {
	token, ok := s.state.Get(KeyToken)
	if !ok || token == "" {
		return
	}
	if expired(token) {
		s.logger.Info("stored token expired, discarding session")
		s.clearState()
		return
	}
	s.token = token
	s.kind = domain.ParseAccountKind(s.stateValue(KeyTipo))

	if raw, ok := s.state.Get(KeyCompany); ok && raw != "" {
		var p domain.CompanyProfile
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			s.logger.Warn("discarding malformed stored company profile", zap.Error(err))
		} else {
			s.company = &p
			if s.kind == domain.KindNone {
				s.kind = domain.KindCompany
			}
		}
	}
	if raw, ok := s.state.Get(KeyCustomer); ok && raw != "" {
		var p domain.CustomerProfile
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			s.logger.Warn("discarding malformed stored customer profile", zap.Error(err))
		} else {
			s.customer = &p
			if s.kind == domain.KindNone {
				s.kind = domain.KindCustomer
			}
		}
	}

	// A session is never both kinds at once. Kind wins over leftovers.
	switch s.kind {
	case domain.KindCompany:
		s.customer = nil
		if s.company == nil {
			s.logger.Warn("stored kind has no matching company profile, degrading to token-only")
			s.kind = domain.KindNone
		}
	case domain.KindCustomer:
		s.company = nil
		if s.customer == nil {
			s.logger.Warn("stored kind has no matching customer profile, degrading to token-only")
			s.kind = domain.KindNone
		}
	}

	s.logger.Info("session restored",
		zap.String("tipo", s.kind.String()),
	)
}

func (s *Store) stateValue(key string) string {
	v, _ := s.state.Get(key)
	return v
}

// expired reports whether the token carries an exp claim in the past. The
// claim is read without signature verification. Verification belongs to the
// API; this check only avoids restoring a session the server will reject.
func expired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		// Opaque tokens pass through and get rejected remotely if stale.
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

// Login installs a fresh token plus whatever the result carries, replacing
// any previous session.
func (s *Store) Login(token string, res LoginResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	s.kind = res.kind
	s.company = res.company
	s.customer = res.customer

	s.persist(KeyToken, token)
	switch res.kind {
	case domain.KindCompany:
		s.persist(KeyTipo, string(domain.KindCompany))
		s.persistJSON(KeyCompany, res.company)
		s.remove(KeyCustomer)
	case domain.KindCustomer:
		s.persist(KeyTipo, string(domain.KindCustomer))
		s.persistJSON(KeyCustomer, res.customer)
		s.remove(KeyCompany)
	default:
		s.remove(KeyTipo)
		s.remove(KeyCompany)
		s.remove(KeyCustomer)
	}
}

// SetCompanyProfile replaces the company profile after an update. It only
// applies to a company session.
func (s *Store) SetCompanyProfile(p *domain.CompanyProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.kind != domain.KindCompany {
		s.logger.Warn("ignoring company profile update on non-company session",
			zap.String("tipo", s.kind.String()),
		)
		return
	}
	s.company = p
	s.persistJSON(KeyCompany, p)
}

// SetCustomerProfile replaces the customer profile after an update.
func (s *Store) SetCustomerProfile(p *domain.CustomerProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.kind != domain.KindCustomer {
		s.logger.Warn("ignoring customer profile update on non-customer session",
			zap.String("tipo", s.kind.String()),
		)
		return
	}
	s.customer = p
	s.persistJSON(KeyCustomer, p)
}

// Logout drops the session from memory and storage.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.kind = domain.KindNone
	s.company = nil
	s.customer = nil
	s.clearState()
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

func (s *Store) Kind() domain.AccountKind {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.kind
}

// IsCompany reports whether the current session belongs to a company.
func (s *Store) IsCompany() bool {
	return s.Kind() == domain.KindCompany
}

// IsCustomer reports whether the current session belongs to a customer.
func (s *Store) IsCustomer() bool {
	return s.Kind() == domain.KindCustomer
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Company returns the company profile or nil for other session kinds.
func (s *Store) Company() *domain.CompanyProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.company
}

// Customer returns the customer profile or nil for other session kinds.
func (s *Store) Customer() *domain.CustomerProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.customer
}

func (s *Store) persist(key, value string) {
	if err := s.state.Set(key, value); err != nil {
		s.logger.Warn("session persist failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *Store) persistJSON(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Warn("session marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	s.persist(key, string(data))
}

func (s *Store) remove(key string) {
	if err := s.state.Delete(key); err != nil {
		s.logger.Warn("session delete failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *Store) clearState() {
	s.remove(KeyToken)
	s.remove(KeyTipo)
	s.remove(KeyCompany)
	s.remove(KeyCustomer)
}
