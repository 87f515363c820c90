package profile

import (
	"context"
	"time"

	"github.com/careerone/portfolio/internal/domain/panel"
)

const Kind = "profile"

type Profile struct {
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	DOB          string    `json:"dob"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	Province     string    `json:"province"`
	PostalCode   string    `json:"postalCode"`
	Summary      string    `json:"summary"`
	ProfileImage *string   `json:"profileImage"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (p *Profile) Validate() error {
	return panel.CheckRequired(
		panel.Require("firstName", p.FirstName),
		panel.Require("lastName", p.LastName),
		panel.Require("email", p.Email),
	)
}

func (p *Profile) IsBlank() bool {
	return p.FirstName == "" && p.LastName == "" && p.Email == ""
}

func (p *Profile) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// Location joins city and province the way the CV header shows it.
func (p *Profile) Location() string {
	switch {
	case p.City == "":
		return p.Province
	case p.Province == "":
		return p.City
	}
	return p.City + ", " + p.Province
}

// Repository holds the single profile. Get returns an empty profile, not an
// error, before the first Upsert.
type Repository interface {
	Get(ctx context.Context) (*Profile, error)
	Upsert(ctx context.Context, p *Profile) error
}
