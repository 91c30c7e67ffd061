package models

import "time"

// Customer represents a registered customer
type Customer struct {
	ID             int64     `json:"id" db:"id"`
	FirstName      string    `json:"first_name" db:"first_name"`
	LastName       string    `json:"last_name" db:"last_name"`
	Email          string    `json:"email" db:"email"`
	Phone          string    `json:"phone" db:"phone"`
	PassportNumber string    `json:"passport_number" db:"passport_number"`
	Gender         string    `json:"gender" db:"gender"`
	Nationality    string    `json:"nationality" db:"nationality"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// CreateCustomerRequest represents the request to register a customer
type CreateCustomerRequest struct {
	FirstName      string `json:"first_name" binding:"required"`
	LastName       string `json:"last_name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Phone          string `json:"phone" binding:"required"`
	PassportNumber string `json:"passport_number" binding:"required"`
	Gender         string `json:"gender" binding:"required"`
	Nationality    string `json:"nationality" binding:"required"`
}

// UpdateCustomerRequest represents a field-level patch of a customer.
// Nil fields are left unchanged.
type UpdateCustomerRequest struct {
	FirstName      *string `json:"first_name,omitempty"`
	LastName       *string `json:"last_name,omitempty"`
	Email          *string `json:"email,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	PassportNumber *string `json:"passport_number,omitempty"`
	Gender         *string `json:"gender,omitempty"`
	Nationality    *string `json:"nationality,omitempty"`
}

// IsEmpty reports whether the patch contains no fields
func (r *UpdateCustomerRequest) IsEmpty() bool {
	return r.FirstName == nil && r.LastName == nil && r.Email == nil &&
		r.Phone == nil && r.PassportNumber == nil && r.Gender == nil &&
		r.Nationality == nil
}
