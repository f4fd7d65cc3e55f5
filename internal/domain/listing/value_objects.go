package listing

import "github.com/shopspring/decimal"

var maxPrice = decimal.NewFromInt(10000)

// Price is a marketplace listing price: strictly positive, at most 10000,
// at most 2 decimal places.
type Price struct {
	value decimal.Decimal
}

func NewPrice(v decimal.Decimal) (Price, error) {
	if !v.IsPositive() || v.GreaterThan(maxPrice) {
		return Price{}, ErrPriceOutOfRange
	}
	if v.Exponent() < -2 {
		// Exponent is negative scale; -3 or lower means >2 decimal places.
		if !v.Equal(v.Round(2)) {
			return Price{}, ErrPriceTooPrecise
		}
	}
	return Price{value: v}, nil
}

func ParsePrice(s string) (Price, error) {
	v, err := decimal.NewFromString(s)
	if err != nil {
		return Price{}, ErrInvalidPrice
	}
	return NewPrice(v)
}

func (p Price) Decimal() decimal.Decimal { return p.value }
func (p Price) String() string           { return p.value.StringFixed(2) }
