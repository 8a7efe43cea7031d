package valueobject

import "fmt"

// ProductType identifies the kind of debt instrument an account represents.
type ProductType string

const (
	ProductTypeCard ProductType = "card"
	ProductTypeLoan ProductType = "loan"
)

// ParseProductType converts a raw string into a ProductType.
func ParseProductType(raw string) (ProductType, error) {
	switch ProductType(raw) {
	case ProductTypeCard:
		return ProductTypeCard, nil
	case ProductTypeLoan:
		return ProductTypeLoan, nil
	default:
		return "", fmt.Errorf("unknown product type %q", raw)
	}
}

// Valid reports whether the product type is one of the known kinds.
func (p ProductType) Valid() bool {
	return p == ProductTypeCard || p == ProductTypeLoan
}

// String returns the wire representation.
func (p ProductType) String() string {
	return string(p)
}
