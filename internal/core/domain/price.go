package domain

import (
	"math"
	"strconv"
	"strings"
)

// Price is a fare amount in fen (1/100 yuan).
type Price int64

// PriceFromTenths converts the upstream wire amount, expressed in tenths of a yuan.
func PriceFromTenths(tenths int64) Price {
	return Price(tenths * 10)
}

// ParsePrice parses a decimal yuan string such as "45.5" or "45.00".
func ParsePrice(s string) (Price, error) {
	s = strings.TrimSpace(s)
	whole, frac, _ := strings.Cut(s, ".")
	if len(frac) > 2 {
		return 0, Annotate(ErrDecodePrice, "price", s)
	}
	for len(frac) < 2 {
		frac += "0"
	}
	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || w < 0 || strings.HasPrefix(whole, "-") {
		return 0, Annotate(ErrDecodePrice, "price", s)
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil || f < 0 {
		return 0, Annotate(ErrDecodePrice, "price", s)
	}
	return Price(w*100 + f), nil
}

// String formats the amount with two fractional digits.
func (p Price) String() string {
	sign := ""
	v := int64(p)
	if v < 0 {
		sign = "-"
		v = -v
	}
	frac := strconv.FormatInt(v%100, 10)
	if len(frac) == 1 {
		frac = "0" + frac
	}
	return sign + strconv.FormatInt(v/100, 10) + "." + frac
}

// MarshalJSON encodes the price as a decimal number of yuan.
func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalJSON accepts a decimal number of yuan.
func (p *Price) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		*p = 0
		return nil
	}
	if strings.ContainsAny(s, "eE") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Annotate(ErrDecodePrice, "price", s)
		}
		*p = Price(math.Round(f * 100))
		return nil
	}
	v, err := ParsePrice(s)
	if err != nil {
		return err
	}
	*p = v
	return nil
}
