package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/skyreserve/airline-backend/internal/database"
	"github.com/skyreserve/airline-backend/internal/models"
)

// CustomerHandler handles customer registration and profile operations
type CustomerHandler struct {
	customers *database.CustomerRepository
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customers *database.CustomerRepository) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

// Create registers a new customer
func (h *CustomerHandler) Create(c *gin.Context) {
	var req models.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	customer := &models.Customer{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		PassportNumber: req.PassportNumber,
		Gender:         req.Gender,
		Nationality:    req.Nationality,
	}

	if err := h.customers.Create(customer); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// Get returns one customer by ID
func (h *CustomerHandler) Get(c *gin.Context) {
	customerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer ID"})
		return
	}

	customer, err := h.customers.GetByID(customerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, customer)
}

// List returns all customers
func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.customers.List()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, customers)
}

// Update applies a field-level patch to a customer
func (h *CustomerHandler) Update(c *gin.Context) {
	customerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer ID"})
		return
	}

	var req models.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if req.IsEmpty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	customer, err := h.customers.Update(customerID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, customer)
}
