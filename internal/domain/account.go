package domain

// AccountKind discriminates between the two kinds of marketplace actors.
// An empty kind means nobody is logged in (or the role is not yet known).
type AccountKind string

const (
	KindNone     AccountKind = ""
	KindCompany  AccountKind = "empresa"
	KindCustomer AccountKind = "cliente"
)

// ParseAccountKind maps a stored/raw value to a known kind.
// Anything unrecognized collapses to KindNone.
func ParseAccountKind(s string) AccountKind {
	switch AccountKind(s) {
	case KindCompany:
		return KindCompany
	case KindCustomer:
		return KindCustomer
	default:
		return KindNone
	}
}

func (k AccountKind) String() string {
	return string(k)
}
