package database

import (
	"database/sql"
	"fmt"

	"github.com/skyreserve/airline-backend/internal/models"
)

// CustomerRepository handles database operations for the customers table
type CustomerRepository struct {
	db DB
}

// NewCustomerRepository creates a new CustomerRepository
func NewCustomerRepository(db DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// Create creates a new customer
func (r *CustomerRepository) Create(customer *models.Customer) error {
	query := `
		INSERT INTO customers (
			first_name, last_name, email, phone,
			passport_number, gender, nationality
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		query,
		customer.FirstName, customer.LastName, customer.Email, customer.Phone,
		customer.PassportNumber, customer.Gender, customer.Nationality,
	).Scan(&customer.ID, &customer.CreatedAt, &customer.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}

	return nil
}

// GetByID retrieves a customer by ID
func (r *CustomerRepository) GetByID(customerID int64) (*models.Customer, error) {
	customer := &models.Customer{}
	query := `
		SELECT id, first_name, last_name, email, phone,
		       passport_number, gender, nationality, created_at, updated_at
		FROM customers
		WHERE id = $1
	`

	err := r.db.Get(customer, query, customerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	return customer, nil
}

// List retrieves all customers
func (r *CustomerRepository) List() ([]models.Customer, error) {
	customers := []models.Customer{}
	query := `
		SELECT id, first_name, last_name, email, phone,
		       passport_number, gender, nationality, created_at, updated_at
		FROM customers
		ORDER BY id
	`

	if err := r.db.Select(&customers, query); err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	return customers, nil
}

// Update applies a field-level patch to a customer. Nil fields keep
// their stored value.
func (r *CustomerRepository) Update(customerID int64, patch *models.UpdateCustomerRequest) (*models.Customer, error) {
	customer := &models.Customer{}
	query := `
		UPDATE customers SET
			first_name = COALESCE($2, first_name),
			last_name = COALESCE($3, last_name),
			email = COALESCE($4, email),
			phone = COALESCE($5, phone),
			passport_number = COALESCE($6, passport_number),
			gender = COALESCE($7, gender),
			nationality = COALESCE($8, nationality),
			updated_at = now()
		WHERE id = $1
		RETURNING id, first_name, last_name, email, phone,
		          passport_number, gender, nationality, created_at, updated_at
	`

	err := r.db.QueryRow(
		query,
		customerID,
		patch.FirstName, patch.LastName, patch.Email, patch.Phone,
		patch.PassportNumber, patch.Gender, patch.Nationality,
	).Scan(
		&customer.ID, &customer.FirstName, &customer.LastName, &customer.Email,
		&customer.Phone, &customer.PassportNumber, &customer.Gender,
		&customer.Nationality, &customer.CreatedAt, &customer.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	return customer, nil
}
