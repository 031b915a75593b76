package domain

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	phonePattern = regexp.MustCompile(`^\d{10}$`)
	emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@(.+)$`)
)

type PassengerDetails struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
	City  string `json:"city"`
	Age   int    `json:"age"`
}

// Validate applies the registration rules. Records loaded from storage are not
// re-validated.
func (d PassengerDetails) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ValidationError{Field: "name", Msg: "name cannot be empty"}
	}

	if !phonePattern.MatchString(d.Phone) {
		return ValidationError{Field: "phone", Msg: "must be 10 digits"}
	}

	if !emailPattern.MatchString(d.Email) {
		return ValidationError{Field: "email", Msg: "invalid email format"}
	}

	if strings.TrimSpace(d.City) == "" {
		return ValidationError{Field: "city", Msg: "city cannot be empty"}
	}

	if d.Age <= 0 || d.Age > 120 {
		return ValidationError{Field: "age", Msg: "must be between 1 and 120"}
	}

	return nil
}

type Passenger struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
	City  string `json:"city"`
	Age   int    `json:"age"`
}

func NewPassenger(id string, d PassengerDetails) (*Passenger, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ValidationError{Field: "passenger_id", Msg: "passenger id cannot be empty"}
	}

	if strings.TrimSpace(d.Name) == "" {
		return nil, ValidationError{Field: "name", Msg: "name cannot be empty"}
	}

	return &Passenger{
		ID:    id,
		Name:  d.Name,
		Phone: d.Phone,
		Email: d.Email,
		City:  d.City,
		Age:   d.Age,
	}, nil
}

// SameAs compares passenger ids case-insensitively.
func (p *Passenger) SameAs(other *Passenger) bool {
	if p == nil || other == nil {
		return false
	}
	return strings.EqualFold(p.ID, other.ID)
}

func (p *Passenger) String() string {
	return fmt.Sprintf("%s (ID: %s)", p.Name, p.ID)
}

func (p *Passenger) Record() PassengerRecord {
	return PassengerRecord{
		ID:    p.ID,
		Name:  p.Name,
		Phone: p.Phone,
		Email: p.Email,
		City:  p.City,
		Age:   p.Age,
	}
}
