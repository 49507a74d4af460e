package forms

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mudancafacil/mf-webclient-go/internal/domain"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func validEmail(s string) bool {
	return len(s) <= 254 && emailRe.MatchString(s)
}

// tooLong measures runes, not bytes, so accented names count fairly.
func tooLong(s string, max int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) > max
}

// validPhone accepts a DDD plus an 8 or 9 digit number after mask stripping.
func validPhone(s string) bool {
	n := len(Digits(MaskPhoneBR(s)))
	return n == 10 || n == 11
}

func validPassword(s string) *domain.ErrValidation {
	if len(s) < 8 {
		return &domain.ErrValidation{Field: "senha", Message: "Senha deve ter no mínimo 8 caracteres"}
	}
	var upper, lower, digit bool
	for _, c := range s {
		switch {
		case c >= 'A' && c <= 'Z':
			upper = true
		case c >= 'a' && c <= 'z':
			lower = true
		case c >= '0' && c <= '9':
			digit = true
		}
	}
	if !upper || !lower || !digit {
		return &domain.ErrValidation{Field: "senha", Message: "Senha deve conter letra maiúscula, minúscula e número"}
	}
	return nil
}

// ============================================================
// Login
// ============================================================

type LoginForm struct {
	Email string
	Senha string
}

func (f *LoginForm) Validate() error {
	if !validEmail(strings.TrimSpace(f.Email)) {
		return &domain.ErrValidation{Field: "email", Message: "Email inválido"}
	}
	if f.Senha == "" {
		return &domain.ErrValidation{Field: "senha", Message: "Informe a senha"}
	}
	return nil
}

func (f *LoginForm) Payload() *domain.LoginRequest {
	return &domain.LoginRequest{
		Email: strings.TrimSpace(f.Email),
		Senha: f.Senha,
	}
}

// ============================================================
// Company registration
// ============================================================

type CompanyRegisterForm struct {
	CNPJ            string
	RazaoSocial     string
	NomeResponsavel string
	Email           string
	Senha           string
	ConfirmaSenha   string
	Telefone        string
}

func (f *CompanyRegisterForm) Validate() error {
	if len(Digits(f.CNPJ)) != 14 {
		return &domain.ErrValidation{Field: "cnpj", Message: "CNPJ deve ter 14 dígitos"}
	}
	if strings.TrimSpace(f.RazaoSocial) == "" {
		return &domain.ErrValidation{Field: "razaoSocial", Message: "Informe a razão social"}
	}
	if tooLong(f.RazaoSocial, 150) {
		return &domain.ErrValidation{Field: "razaoSocial", Message: "Razão social deve ter no máximo 150 caracteres"}
	}
	if strings.TrimSpace(f.NomeResponsavel) == "" {
		return &domain.ErrValidation{Field: "nomeResponsavel", Message: "Informe o nome do responsável"}
	}
	if tooLong(f.NomeResponsavel, 100) {
		return &domain.ErrValidation{Field: "nomeResponsavel", Message: "Nome do responsável deve ter no máximo 100 caracteres"}
	}
	if !validEmail(strings.TrimSpace(f.Email)) {
		return &domain.ErrValidation{Field: "email", Message: "Email inválido"}
	}
	if err := validPassword(f.Senha); err != nil {
		return err
	}
	if f.Senha != f.ConfirmaSenha {
		return &domain.ErrValidation{Field: "confirmaSenha", Message: "As senhas não coincidem"}
	}
	if !validPhone(f.Telefone) {
		return &domain.ErrValidation{Field: "telefone", Message: "Telefone deve ter DDD e 8 ou 9 dígitos"}
	}
	return nil
}

// Payload strips masks so the wire carries digits only.
func (f *CompanyRegisterForm) Payload() *domain.CompanyRegistration {
	return &domain.CompanyRegistration{
		CNPJ:            Digits(f.CNPJ),
		RazaoSocial:     strings.TrimSpace(f.RazaoSocial),
		NomeResponsavel: strings.TrimSpace(f.NomeResponsavel),
		Email:           strings.TrimSpace(f.Email),
		Senha:           f.Senha,
		Telefone:        Digits(MaskPhoneBR(f.Telefone)),
	}
}

// ============================================================
// Customer registration
// ============================================================

type CustomerRegisterForm struct {
	Nome          string
	CPF           string
	Email         string
	Senha         string
	ConfirmaSenha string
	Telefone      string
	CEP           string
	Logradouro    string
	Numero        string
	Complemento   string
	Bairro        string
	Cidade        string
	UF            string
}

func (f *CustomerRegisterForm) Validate() error {
	if strings.TrimSpace(f.Nome) == "" {
		return &domain.ErrValidation{Field: "nome", Message: "Informe o nome"}
	}
	if tooLong(f.Nome, 100) {
		return &domain.ErrValidation{Field: "nome", Message: "Nome deve ter no máximo 100 caracteres"}
	}
	if len(Digits(f.CPF)) != 11 {
		return &domain.ErrValidation{Field: "cpf", Message: "CPF deve ter 11 dígitos"}
	}
	if !validEmail(strings.TrimSpace(f.Email)) {
		return &domain.ErrValidation{Field: "email", Message: "Email inválido"}
	}
	if err := validPassword(f.Senha); err != nil {
		return err
	}
	if f.Senha != f.ConfirmaSenha {
		return &domain.ErrValidation{Field: "confirmaSenha", Message: "As senhas não coincidem"}
	}
	if !validPhone(f.Telefone) {
		return &domain.ErrValidation{Field: "telefone", Message: "Telefone deve ter DDD e 8 ou 9 dígitos"}
	}
	return validateEndereco(f.CEP, f.Logradouro, f.Numero, f.Complemento, f.Bairro, f.Cidade, f.UF)
}

// validateEndereco checks the customer address. Complemento is the only
// optional field.
func validateEndereco(cep, logradouro, numero, complemento, bairro, cidade, uf string) error {
	if len(Digits(cep)) != 8 {
		return &domain.ErrValidation{Field: "cep", Message: "CEP deve ter 8 dígitos"}
	}
	if strings.TrimSpace(logradouro) == "" {
		return &domain.ErrValidation{Field: "logradouro", Message: "Informe o logradouro"}
	}
	if tooLong(logradouro, 150) {
		return &domain.ErrValidation{Field: "logradouro", Message: "Logradouro deve ter no máximo 150 caracteres"}
	}
	if strings.TrimSpace(numero) == "" {
		return &domain.ErrValidation{Field: "numero", Message: "Informe o número"}
	}
	if tooLong(numero, 20) {
		return &domain.ErrValidation{Field: "numero", Message: "Número deve ter no máximo 20 caracteres"}
	}
	if tooLong(complemento, 100) {
		return &domain.ErrValidation{Field: "complemento", Message: "Complemento deve ter no máximo 100 caracteres"}
	}
	if strings.TrimSpace(bairro) == "" {
		return &domain.ErrValidation{Field: "bairro", Message: "Informe o bairro"}
	}
	if tooLong(bairro, 100) {
		return &domain.ErrValidation{Field: "bairro", Message: "Bairro deve ter no máximo 100 caracteres"}
	}
	if strings.TrimSpace(cidade) == "" {
		return &domain.ErrValidation{Field: "cidade", Message: "Informe a cidade"}
	}
	if tooLong(cidade, 100) {
		return &domain.ErrValidation{Field: "cidade", Message: "Cidade deve ter no máximo 100 caracteres"}
	}
	if len(MaskUF(uf)) != 2 {
		return &domain.ErrValidation{Field: "uf", Message: "UF deve ter 2 letras"}
	}
	return nil
}

func (f *CustomerRegisterForm) Payload() *domain.CustomerRegistration {
	return &domain.CustomerRegistration{
		Nome:     strings.TrimSpace(f.Nome),
		CPF:      Digits(f.CPF),
		Email:    strings.TrimSpace(f.Email),
		Senha:    f.Senha,
		Telefone: Digits(MaskPhoneBR(f.Telefone)),
		Endereco: f.endereco(),
	}
}

func (f *CustomerRegisterForm) endereco() *domain.Endereco {
	e := &domain.Endereco{
		CEP:         Digits(f.CEP),
		Logradouro:  strings.TrimSpace(f.Logradouro),
		Numero:      strings.TrimSpace(f.Numero),
		Complemento: strings.TrimSpace(f.Complemento),
		Bairro:      strings.TrimSpace(f.Bairro),
		Cidade:      strings.TrimSpace(f.Cidade),
		UF:          MaskUF(f.UF),
	}
	if *e == (domain.Endereco{}) {
		return nil
	}
	return e
}

// ============================================================
// Company edit
// ============================================================

type CompanyEditForm struct {
	RazaoSocial     string
	NomeResponsavel string
	Email           string
	Telefone        string
}

func (f *CompanyEditForm) Validate() error {
	if tooLong(f.RazaoSocial, 150) {
		return &domain.ErrValidation{Field: "razaoSocial", Message: "Razão social deve ter no máximo 150 caracteres"}
	}
	if tooLong(f.NomeResponsavel, 100) {
		return &domain.ErrValidation{Field: "nomeResponsavel", Message: "Nome do responsável deve ter no máximo 100 caracteres"}
	}
	if f.Email != "" && !validEmail(strings.TrimSpace(f.Email)) {
		return &domain.ErrValidation{Field: "email", Message: "Email inválido"}
	}
	if f.Telefone != "" && !validPhone(f.Telefone) {
		return &domain.ErrValidation{Field: "telefone", Message: "Telefone deve ter DDD e 8 ou 9 dígitos"}
	}
	return nil
}

func (f *CompanyEditForm) Payload() *domain.CompanyUpdate {
	return &domain.CompanyUpdate{
		RazaoSocial:     strings.TrimSpace(f.RazaoSocial),
		NomeResponsavel: strings.TrimSpace(f.NomeResponsavel),
		Email:           strings.TrimSpace(f.Email),
		Telefone:        Digits(MaskPhoneBR(f.Telefone)),
	}
}

// ============================================================
// Company complement
// ============================================================

type CompanyComplementForm struct {
	Endereco         string
	CoberturaRaioKm  string
	CidadesAtendidas string
	TiposServico     string
	PrecoBase        string
	PrecoPorKm       string
	Adicionais       string
	Descricao        string
}

func (f *CompanyComplementForm) Validate() error {
	if strings.TrimSpace(f.Endereco) == "" {
		return &domain.ErrValidation{Field: "endereco", Message: "Informe o endereço"}
	}
	if tooLong(f.Endereco, 300) {
		return &domain.ErrValidation{Field: "endereco", Message: "Endereço deve ter no máximo 300 caracteres"}
	}
	raio, err := strconv.Atoi(strings.TrimSpace(f.CoberturaRaioKm))
	if err != nil || raio <= 0 {
		return &domain.ErrValidation{Field: "coberturaRaioKm", Message: "Raio de cobertura deve ser um número maior que zero"}
	}
	if strings.TrimSpace(f.TiposServico) == "" {
		return &domain.ErrValidation{Field: "tiposServico", Message: "Informe os tipos de serviço"}
	}
	if tooLong(f.TiposServico, 300) {
		return &domain.ErrValidation{Field: "tiposServico", Message: "Tipos de serviço deve ter no máximo 300 caracteres"}
	}
	if tooLong(f.CidadesAtendidas, 500) {
		return &domain.ErrValidation{Field: "cidadesAtendidas", Message: "Cidades atendidas deve ter no máximo 500 caracteres"}
	}
	if tooLong(f.Adicionais, 500) {
		return &domain.ErrValidation{Field: "adicionais", Message: "Adicionais deve ter no máximo 500 caracteres"}
	}
	if tooLong(f.Descricao, 1000) {
		return &domain.ErrValidation{Field: "descricao", Message: "Descrição deve ter no máximo 1000 caracteres"}
	}
	return nil
}

func (f *CompanyComplementForm) Payload() *domain.CompanyComplement {
	raio, _ := strconv.Atoi(strings.TrimSpace(f.CoberturaRaioKm))
	return &domain.CompanyComplement{
		Endereco:         strings.TrimSpace(f.Endereco),
		CoberturaRaioKm:  raio,
		CidadesAtendidas: strings.TrimSpace(f.CidadesAtendidas),
		TiposServico:     strings.TrimSpace(f.TiposServico),
		PrecoBase:        strings.TrimSpace(f.PrecoBase),
		PrecoPorKm:       strings.TrimSpace(f.PrecoPorKm),
		Adicionais:       strings.TrimSpace(f.Adicionais),
		Descricao:        strings.TrimSpace(f.Descricao),
	}
}

// ============================================================
// Customer edit
// ============================================================

type CustomerEditForm struct {
	Nome        string
	Email       string
	Telefone    string
	CEP         string
	Logradouro  string
	Numero      string
	Complemento string
	Bairro      string
	Cidade      string
	UF          string
}

func (f *CustomerEditForm) Validate() error {
	if tooLong(f.Nome, 100) {
		return &domain.ErrValidation{Field: "nome", Message: "Nome deve ter no máximo 100 caracteres"}
	}
	if f.Email != "" && !validEmail(strings.TrimSpace(f.Email)) {
		return &domain.ErrValidation{Field: "email", Message: "Email inválido"}
	}
	if f.Telefone != "" && !validPhone(f.Telefone) {
		return &domain.ErrValidation{Field: "telefone", Message: "Telefone deve ter DDD e 8 ou 9 dígitos"}
	}
	if f.hasAddress() {
		return validateEndereco(f.CEP, f.Logradouro, f.Numero, f.Complemento, f.Bairro, f.Cidade, f.UF)
	}
	return nil
}

// hasAddress reports whether the edit touches any address field. An edit
// that leaves the whole block blank keeps the stored address untouched.
func (f *CustomerEditForm) hasAddress() bool {
	for _, v := range []string{f.CEP, f.Logradouro, f.Numero, f.Complemento, f.Bairro, f.Cidade, f.UF} {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

func (f *CustomerEditForm) Payload() *domain.CustomerUpdate {
	e := &domain.Endereco{
		CEP:         Digits(f.CEP),
		Logradouro:  strings.TrimSpace(f.Logradouro),
		Numero:      strings.TrimSpace(f.Numero),
		Complemento: strings.TrimSpace(f.Complemento),
		Bairro:      strings.TrimSpace(f.Bairro),
		Cidade:      strings.TrimSpace(f.Cidade),
		UF:          MaskUF(f.UF),
	}
	if *e == (domain.Endereco{}) {
		e = nil
	}
	return &domain.CustomerUpdate{
		Nome:     strings.TrimSpace(f.Nome),
		Email:    strings.TrimSpace(f.Email),
		Telefone: Digits(MaskPhoneBR(f.Telefone)),
		Endereco: e,
	}
}

// ============================================================
// Account deletion
// ============================================================

// DeleteForm guards account removal behind a typed confirmation word.
type DeleteForm struct {
	Confirmacao string
}

func (f *DeleteForm) Validate() error {
	if strings.ToUpper(strings.TrimSpace(f.Confirmacao)) != "EXCLUIR" {
		return &domain.ErrValidation{Field: "confirmacao", Message: "Digite EXCLUIR para confirmar"}
	}
	return nil
}
