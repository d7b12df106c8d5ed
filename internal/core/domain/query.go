package domain

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// TicketQuery asks for the offerings between two stations on a date.
type TicketQuery struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
	From string `json:"from" validate:"required"`
	To   string `json:"to" validate:"required"`

	// Trains filters by run code. "G*" matches any G train, "_1" matches a
	// letter-prefixed code whose digit part is 1, anything else matches exactly.
	Trains []string `json:"trains,omitempty"`
	// Stations keeps offerings touching these stations; two or more require both ends.
	Stations []string `json:"stations,omitempty"`
	// Exact switches station filtering from substring to exact name matching.
	Exact bool `json:"exact,omitempty"`
	// DepartAfter and DepartBefore bound the departure clock, "HH:MM".
	DepartAfter  string `json:"depart_after,omitempty" validate:"omitempty,datetime=15:04"`
	DepartBefore string `json:"depart_before,omitempty" validate:"omitempty,datetime=15:04"`
	// Force bypasses the result cache.
	Force bool `json:"force,omitempty"`
}

// Validate checks the query fields.
func (q *TicketQuery) Validate() error {
	return validationError(validate.Struct(q))
}

// ScheduleQuery asks for the stop list of a run.
type ScheduleQuery struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	RunCode   string `json:"run_code,omitempty" validate:"required_without=RunNumber"`
	RunNumber string `json:"run_number,omitempty"`
}

// Validate checks the query fields.
func (q *ScheduleQuery) Validate() error {
	return validationError(validate.Struct(q))
}

// FareQuery asks for the fare of one run between two of its stops.
type FareQuery struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	RunCode   string `json:"run_code,omitempty" validate:"required_without=RunNumber"`
	RunNumber string `json:"run_number,omitempty"`
	From      string `json:"from" validate:"required"`
	To        string `json:"to" validate:"required,nefield=From"`

	// Waypoints are explicit intermediate stations, kept in the given order.
	Waypoints []string `json:"waypoints,omitempty" validate:"dive,required"`
	// Partitions derives waypoints by splitting the route into this many legs.
	// Values below 2 disable partitioning.
	Partitions int `json:"partitions,omitempty" validate:"gte=0,lte=64"`
}

// Validate checks the query fields.
func (q *FareQuery) Validate() error {
	return validationError(validate.Struct(q))
}

func validationError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Annotate(ErrInvalidQuery, "cause", err.Error())
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field()+":"+fe.Tag())
	}
	return Annotate(ErrInvalidQuery, "fields", strings.Join(fields, ","))
}
