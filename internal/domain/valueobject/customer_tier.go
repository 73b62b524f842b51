package valueobject

import "fmt"

// CustomerTier is an immutable value object for the commercial tier of a customer.
type CustomerTier struct {
	value string
}

var (
	TierBasic      = CustomerTier{value: "basic"}
	TierPremium    = CustomerTier{value: "premium"}
	TierVIP        = CustomerTier{value: "vip"}
	TierEnterprise = CustomerTier{value: "enterprise"}
)

// CustomerTierFromString reconstructs a CustomerTier from its string representation.
func CustomerTierFromString(s string) (CustomerTier, error) {
	switch s {
	case "basic":
		return TierBasic, nil
	case "premium":
		return TierPremium, nil
	case "vip":
		return TierVIP, nil
	case "enterprise":
		return TierEnterprise, nil
	default:
		return CustomerTier{}, fmt.Errorf("invalid customer tier: %s", s)
	}
}

// String returns the string representation.
func (t CustomerTier) String() string {
	return t.value
}

// IsZero returns true if the tier has not been set.
func (t CustomerTier) IsZero() bool {
	return t.value == ""
}

// Equal checks equality with another CustomerTier.
func (t CustomerTier) Equal(other CustomerTier) bool {
	return t.value == other.value
}
