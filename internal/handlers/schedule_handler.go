package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/skyreserve/airline-backend/internal/database"
	"github.com/skyreserve/airline-backend/internal/models"
	"github.com/skyreserve/airline-backend/internal/services"
)

// ScheduleHandler handles scheduled departure operations
type ScheduleHandler struct {
	schedules *services.ScheduleService
	seats     *database.SeatRepository
}

// NewScheduleHandler creates a new ScheduleHandler
func NewScheduleHandler(schedules *services.ScheduleService, seats *database.SeatRepository) *ScheduleHandler {
	return &ScheduleHandler{schedules: schedules, seats: seats}
}

// Create creates a scheduled departure and its seat inventory
func (h *ScheduleHandler) Create(c *gin.Context) {
	var req models.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	schedule, err := h.schedules.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, schedule)
}

// Get returns one schedule
func (h *ScheduleHandler) Get(c *gin.Context) {
	scheduleID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid schedule ID"})
		return
	}

	schedule, err := h.schedules.GetByID(scheduleID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, schedule)
}

// List returns all schedules, or the schedules of one flight when a
// flight_id query parameter is present
func (h *ScheduleHandler) List(c *gin.Context) {
	if raw := c.Query("flight_id"); raw != "" {
		flightID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || flightID <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid flight_id"})
			return
		}

		schedules, err := h.schedules.ListByFlight(flightID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, schedules)
		return
	}

	schedules, err := h.schedules.List()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, schedules)
}

// UpdateTimes records observed departure/arrival actuals and returns
// the schedule with its freshly derived status
func (h *ScheduleHandler) UpdateTimes(c *gin.Context) {
	scheduleID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid schedule ID"})
		return
	}

	var req models.UpdateScheduleTimesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	schedule, err := h.schedules.UpdateTimes(c.Request.Context(), scheduleID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, schedule)
}

// Cancel forces a schedule into the terminal Cancelled state
func (h *ScheduleHandler) Cancel(c *gin.Context) {
	scheduleID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid schedule ID"})
		return
	}

	schedule, err := h.schedules.Cancel(c.Request.Context(), scheduleID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, schedule)
}

// Seats returns the seat inventory of a schedule. With ?available=true
// only unallocated seats are returned.
func (h *ScheduleHandler) Seats(c *gin.Context) {
	scheduleID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid schedule ID"})
		return
	}

	if _, err := h.schedules.GetByID(scheduleID); err != nil {
		respondError(c, err)
		return
	}

	onlyAvailable := c.Query("available") == "true"
	seats, err := h.seats.ListBySchedule(scheduleID, onlyAvailable)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, seats)
}
