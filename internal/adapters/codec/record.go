// Package codec decodes the packed formats returned by the upstream ticketing service.
package codec

import (
	"strings"

	"go.trai.ch/railfare/internal/core/domain"
)

// Placeholder is the token used for a seat class that the offering does not carry.
const Placeholder = "--"

// recordFields is the minimum number of pipe-separated fields of a ticket record.
const recordFields = 56

// availabilityStart is the ordinal of the first seat availability token.
const availabilityStart = 20

// seatClasses lists the seat availability tokens in wire order.
var seatClasses = []string{
	"gg", "gr", "qt", "rw", "rz", "tz", "wz", "yb", "yw", "yz", "ze", "zy", "swz", "srrb",
}

// Availability is the stock token of one seat class.
type Availability struct {
	Class string
	Stock string
}

// Prefix returns the price table prefix of the seat class, e.g. "SWZ_".
func (a Availability) Prefix() string {
	return strings.ToUpper(a.Class) + "_"
}

// Record is one decoded ticket record. Field i of the wire record always maps to
// the same struct field.
type Record struct {
	Secret         string
	ButtonText     string
	RunNumber      string
	RunCode        string
	StartCode      string
	EndCode        string
	FromCode       string
	ToCode         string
	DepartTime     string
	ArriveTime     string
	Duration       string
	CanWebBuy      string
	PriceInfo      string
	StartTrainDate string
	SeatFeature    string
	LocationCode   string
	FromStationNo  string
	ToStationNo    string
	SupportCard    string
	ControlledFlag string
	Availability   []Availability
	PriceExtra     string
	SeatTypes      string
	ExchangeFlag   string
	WaitlistFlag   string
	WaitlistLimit  string
	PriceBlob      string
	DWFlag         string
	StopCheckTime  string
	CountryFlag    string
	LocalArrive    string
	LocalDepart    string
	BedLevelInfo   string
	SeatDiscount   string
	SaleTime       string
	FromStation    string
	ToStation      string
}

// DecodeRecord splits a pipe-delimited ticket record into its fields and resolves
// the from/to station names through stations. Unmapped codes resolve to "".
func DecodeRecord(raw string, stations map[string]string) (Record, error) {
	f := strings.Split(raw, "|")
	if len(f) < recordFields {
		return Record{}, domain.Annotate(domain.ErrDecodeRecord, "fields", len(f))
	}

	rec := Record{
		Secret:         f[0],
		ButtonText:     f[1],
		RunNumber:      f[2],
		RunCode:        f[3],
		StartCode:      f[4],
		EndCode:        f[5],
		FromCode:       f[6],
		ToCode:         f[7],
		DepartTime:     f[8],
		ArriveTime:     f[9],
		Duration:       f[10],
		CanWebBuy:      f[11],
		PriceInfo:      f[12],
		StartTrainDate: f[13],
		SeatFeature:    f[14],
		LocationCode:   f[15],
		FromStationNo:  f[16],
		ToStationNo:    f[17],
		SupportCard:    f[18],
		ControlledFlag: f[19],
		PriceExtra:     f[34],
		SeatTypes:      f[35],
		ExchangeFlag:   f[36],
		WaitlistFlag:   f[37],
		WaitlistLimit:  f[38],
		PriceBlob:      f[39],
		DWFlag:         f[46],
		StopCheckTime:  f[48],
		CountryFlag:    f[49],
		LocalArrive:    f[50],
		LocalDepart:    f[51],
		BedLevelInfo:   f[53],
		SeatDiscount:   f[54],
		SaleTime:       f[55],
		FromStation:    stations[f[6]],
		ToStation:      stations[f[7]],
	}

	rec.Availability = make([]Availability, len(seatClasses))
	for i, class := range seatClasses {
		stock := f[availabilityStart+i]
		if stock == "" {
			stock = Placeholder
		}
		rec.Availability[i] = Availability{Class: class, Stock: stock}
	}

	if rec.RunNumber == "" || rec.RunCode == "" {
		return Record{}, domain.Annotate(domain.ErrDecodeRecord, "reason", "missing run identifiers")
	}
	return rec, nil
}

// Offered returns the seat classes whose stock token is not the placeholder.
func (r *Record) Offered() []Availability {
	out := make([]Availability, 0, len(r.Availability))
	for _, a := range r.Availability {
		if a.Stock != Placeholder {
			out = append(out, a)
		}
	}
	return out
}
