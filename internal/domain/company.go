package domain

import "strings"

// ============================================================
// Company (empresa)
// ============================================================

// CompanyStatus is the lifecycle status of a company account.
type CompanyStatus string

const (
	StatusPending       CompanyStatus = "pending"
	StatusReadyForLeads CompanyStatus = "ready_for_leads"
	StatusActive        CompanyStatus = "active"
	StatusInactive      CompanyStatus = "inactive"
)

// NormalizeCompanyStatus canonicalizes status strings coming from the API,
// which historically used spaces, dashes and mixed case ("READY FOR LEADS",
// "ready-for-leads").
func NormalizeCompanyStatus(s string) CompanyStatus {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_'
	}), "_")
	switch CompanyStatus(s) {
	case StatusPending, StatusReadyForLeads, StatusActive, StatusInactive:
		return CompanyStatus(s)
	default:
		return StatusPending
	}
}

// Label returns the Portuguese display label for the status.
func (s CompanyStatus) Label() string {
	switch s {
	case StatusReadyForLeads:
		return "Cadastro completo efetuado"
	case StatusActive:
		return "Ativo"
	case StatusInactive:
		return "Inativo"
	default:
		return "Pendente"
	}
}

// Hint returns the guidance text shown next to the status on the dashboard.
func (s CompanyStatus) Hint() string {
	switch s {
	case StatusReadyForLeads:
		return "Mude sua disponibilidade para receber solicitações de mudança"
	case StatusActive:
		return "Você está recebendo solicitações de mudança"
	case StatusInactive:
		return "Não receber solicitações de mudança"
	default:
		return "Complete o cadastro da empresa"
	}
}

// CompanyProfile is the company record as served by the marketplace API.
type CompanyProfile struct {
	ID              string `json:"id"`
	RazaoSocial     string `json:"razaoSocial"`
	NomeResponsavel string `json:"nomeResponsavel"`
	Email           string `json:"email"`
	Telefone        string `json:"telefone"`
	Status          string `json:"status"`
	DataCriacao     string `json:"dataCriacao,omitempty"`
	DataAtualizacao string `json:"dataAtualizacao,omitempty"`
}

// CompanyRegistration is the body for POST /empresas.
type CompanyRegistration struct {
	CNPJ            string `json:"cnpj"`
	RazaoSocial     string `json:"razaoSocial"`
	NomeResponsavel string `json:"nomeResponsavel"`
	Email           string `json:"email"`
	Senha           string `json:"senha"`
	Telefone        string `json:"telefone"`
}

// CompanyUpdate is the body for PATCH /empresas/{id}. Zero fields are omitted
// so the API applies a partial update.
type CompanyUpdate struct {
	RazaoSocial     string `json:"razaoSocial,omitempty"`
	NomeResponsavel string `json:"nomeResponsavel,omitempty"`
	Email           string `json:"email,omitempty"`
	Telefone        string `json:"telefone,omitempty"`
}

// CompanyComplement carries the coverage/pricing data of the "complementar
// cadastro" step, also applied as a partial update to the company.
type CompanyComplement struct {
	Endereco         string `json:"endereco,omitempty"`
	CoberturaRaioKm  int    `json:"coberturaRaioKm,omitempty"`
	CidadesAtendidas string `json:"cidadesAtendidas,omitempty"`
	TiposServico     string `json:"tiposServico,omitempty"`
	PrecoBase        string `json:"precoBase,omitempty"`
	PrecoPorKm       string `json:"precoPorKm,omitempty"`
	Adicionais       string `json:"adicionais,omitempty"`
	Descricao        string `json:"descricao,omitempty"`
}
