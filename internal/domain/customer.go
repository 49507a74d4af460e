package domain

// Endereco is the customer address block.
type Endereco struct {
	CEP         string `json:"cep,omitempty"`
	Logradouro  string `json:"logradouro,omitempty"`
	Numero      string `json:"numero,omitempty"`
	Complemento string `json:"complemento,omitempty"`
	Bairro      string `json:"bairro,omitempty"`
	Cidade      string `json:"cidade,omitempty"`
	UF          string `json:"uf,omitempty"`
}

// CustomerProfile is the customer record as served by the marketplace API.
// CPF comes back masked and is never editable after registration.
type CustomerProfile struct {
	ID              string    `json:"id"`
	Nome            string    `json:"nome"`
	CPF             string    `json:"cpf,omitempty"`
	Email           string    `json:"email"`
	Telefone        string    `json:"telefone"`
	Endereco        *Endereco `json:"endereco,omitempty"`
	DataCriacao     string    `json:"dataCriacao,omitempty"`
	DataAtualizacao string    `json:"dataAtualizacao,omitempty"`
}

// CustomerRegistration is the body for POST /clientes.
type CustomerRegistration struct {
	Nome     string    `json:"nome"`
	CPF      string    `json:"cpf"`
	Email    string    `json:"email"`
	Senha    string    `json:"senha"`
	Telefone string    `json:"telefone"`
	Endereco *Endereco `json:"endereco,omitempty"`
}

// CustomerUpdate is the body for PATCH /clientes/{id}.
type CustomerUpdate struct {
	Nome     string    `json:"nome,omitempty"`
	Email    string    `json:"email,omitempty"`
	Telefone string    `json:"telefone,omitempty"`
	Endereco *Endereco `json:"endereco,omitempty"`
}
