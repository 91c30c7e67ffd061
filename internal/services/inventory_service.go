package services

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/skyreserve/airline-backend/internal/models"
)

// SeatStore is the seat persistence surface the inventory generator needs
type SeatStore interface {
	CountBySchedule(scheduleID int64) (int, error)
	InsertBatch(slots []models.SeatSlot) error
	ListBySchedule(scheduleID int64, onlyAvailable bool) ([]models.SeatSlot, error)
	GetByPosition(scheduleID int64, row int, column string) (*models.SeatSlot, error)
}

// DefaultLayout is the cabin layout used for every schedule: rows 1-2
// First, rows 3-5 Business, rows 6-10 Economy, columns A-F.
var DefaultLayout = []models.LayoutSection{
	{Rows: []int{1, 2}, Class: models.SeatClassFirst, Price: 20000},
	{Rows: []int{3, 4, 5}, Class: models.SeatClassBusiness, Price: 10000},
	{Rows: []int{6, 7, 8, 9, 10}, Class: models.SeatClassEconomy, Price: 5000},
}

// DefaultColumns are the seat columns of every row
var DefaultColumns = []string{"A", "B", "C", "D", "E", "F"}

// InventoryService materializes the seat inventory for a schedule
type InventoryService struct {
	seats   SeatStore
	layout  []models.LayoutSection
	columns []string
	logger  logrus.FieldLogger
}

// NewInventoryService creates a new InventoryService using the default layout
func NewInventoryService(seats SeatStore, logger logrus.FieldLogger) *InventoryService {
	return &InventoryService{
		seats:   seats,
		layout:  DefaultLayout,
		columns: DefaultColumns,
		logger:  logger,
	}
}

// GenerateForSchedule builds one SeatSlot per (row, column) pair across
// all layout sections and bulk-inserts them in a single transaction.
// Generation happens exactly once per schedule: if any slot already
// exists the call fails with ErrInventoryExists instead of duplicating
// inventory.
func (s *InventoryService) GenerateForSchedule(scheduleID int64) ([]models.SeatSlot, error) {
	existing, err := s.seats.CountBySchedule(scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing inventory: %w", err)
	}
	if existing > 0 {
		return nil, models.ErrInventoryExists
	}

	slots := s.buildSlots(scheduleID)

	if err := s.seats.InsertBatch(slots); err != nil {
		return nil, fmt.Errorf("failed to insert seat inventory: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"schedule_id": scheduleID,
		"seats":       len(slots),
	}).Info("Generated seat inventory for schedule")

	return slots, nil
}

func (s *InventoryService) buildSlots(scheduleID int64) []models.SeatSlot {
	var slots []models.SeatSlot
	for _, section := range s.layout {
		for _, row := range section.Rows {
			for _, col := range s.columns {
				slots = append(slots, models.SeatSlot{
					ScheduleID:   scheduleID,
					RowNumber:    row,
					ColumnLetter: col,
					Class:        section.Class,
					Price:        section.Price,
					IsBooked:     false,
				})
			}
		}
	}
	return slots
}
