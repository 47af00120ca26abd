package models

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Country is a top-level entry in the geographic hierarchy.
type Country struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// State belongs to exactly one Country.
type State struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CountryID uuid.UUID `json:"countryId"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// StateDetail is a State read enriched with its country's name.
type StateDetail struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	CountryID   uuid.UUID `json:"countryId"`
	CountryName string    `json:"countryname"`
}

// City is the leaf of the hierarchy and belongs to exactly one State.
type City struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	StateID   uuid.UUID `json:"stateId"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// CityDetail is a City read enriched with its state's name.
type CityDetail struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	StateID   uuid.UUID `json:"stateId"`
	StateName string    `json:"statename"`
}

// User is an account row. Password holds the encoded hash, never plaintext.
// The otp_* columns carry the short-lived verification code lifecycle.
type User struct {
	ID            uuid.UUID
	Name          string
	UserName      string
	Email         string
	Password      string
	Mobile        string
	CountryCode   string
	CountryID     uuid.UUID
	StateID       uuid.UUID
	CityID        uuid.UUID
	Verify        bool
	OTP           string
	OTPCreatedAt  *time.Time
	OTPExpiresAt  *time.Time
	OTPVerifiedAt *time.Time
	OTPCount      int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// UserProfile is the client-visible projection of a User, enriched with the
// names of the referenced country, state and city.
type UserProfile struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	UserName    string    `json:"userName"`
	Email       string    `json:"email"`
	Mobile      string    `json:"mobile"`
	CountryCode string    `json:"countryCode"`
	CountryName string    `json:"countryName"`
	StateName   string    `json:"stateName"`
	CityName    string    `json:"cityName"`
}

// Pagination describes one page of a list response.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPagination computes totalPages as ceil(total/limit).
func NewPagination(page, limit, total int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}

// ListParams are the common inputs of every list operation. Page and Limit
// fall back to 1 and 10 when unset.
type ListParams struct {
	Search string `json:"search"`
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
}

// Normalize applies the defaults and returns the SQL offset.
func (p *ListParams) Normalize() int {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
	return (p.Page - 1) * p.Limit
}
