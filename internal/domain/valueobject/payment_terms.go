package valueobject

import "fmt"

// PaymentTerms is an immutable value object for how an order is settled.
// Net terms extend credit to the buyer and tighten the approval rules.
type PaymentTerms struct {
	value string
}

var (
	TermsCreditCard   = PaymentTerms{value: "credit_card"}
	TermsWireTransfer = PaymentTerms{value: "wire_transfer"}
	TermsNet30        = PaymentTerms{value: "net_30"}
	TermsNet60        = PaymentTerms{value: "net_60"}
)

// PaymentTermsFromString reconstructs PaymentTerms from its string representation.
func PaymentTermsFromString(s string) (PaymentTerms, error) {
	switch s {
	case "credit_card":
		return TermsCreditCard, nil
	case "wire_transfer":
		return TermsWireTransfer, nil
	case "net_30":
		return TermsNet30, nil
	case "net_60":
		return TermsNet60, nil
	default:
		return PaymentTerms{}, fmt.Errorf("invalid payment terms: %s", s)
	}
}

// String returns the string representation.
func (p PaymentTerms) String() string {
	return p.value
}

// IsZero returns true if the payment terms have not been set.
func (p PaymentTerms) IsZero() bool {
	return p.value == ""
}

// Equal checks equality with other PaymentTerms.
func (p PaymentTerms) Equal(other PaymentTerms) bool {
	return p.value == other.value
}

// IsNetTerms returns true for net_30 and net_60 settlement.
func (p PaymentTerms) IsNetTerms() bool {
	return p.value == "net_30" || p.value == "net_60"
}
