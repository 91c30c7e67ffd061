package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skyreserve/airline-backend/internal/database"
	"github.com/skyreserve/airline-backend/internal/models"
	"github.com/skyreserve/airline-backend/pkg/validator"
)

// FlightHandler handles flight reference data operations
type FlightHandler struct {
	flights   *database.FlightRepository
	validator *validator.FlightNoValidator
}

// NewFlightHandler creates a new FlightHandler
func NewFlightHandler(flights *database.FlightRepository) *FlightHandler {
	return &FlightHandler{
		flights:   flights,
		validator: validator.NewFlightNoValidator(),
	}
}

// Create registers a new flight
func (h *FlightHandler) Create(c *gin.Context) {
	var req models.CreateFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := h.validator.Validate(req.FlightNo); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flightNo := h.validator.Normalize(req.FlightNo)
	if _, err := h.flights.GetByFlightNo(flightNo); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "flight number already registered"})
		return
	} else if err != models.ErrNotFound {
		respondError(c, err)
		return
	}

	flight := &models.Flight{
		FlightNo:    flightNo,
		AirlineName: req.AirlineName,
		Source:      req.Source,
		Destination: req.Destination,
	}

	if err := h.flights.Create(flight); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, flight)
}

// List returns all flights
func (h *FlightHandler) List(c *gin.Context) {
	flights, err := h.flights.List()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, flights)
}
