package services

import (
	"context"
	"fmt"
	"time"

	"github.com/skyreserve/airline-backend/internal/models"
)

// In-memory store fakes shared by the service tests.

type fakeScheduleStore struct {
	schedules map[int64]*models.Schedule
	nextID    int64

	statusWrites []models.ScheduleStatus
	mergeErr     error
}

func newFakeScheduleStore() *fakeScheduleStore {
	return &fakeScheduleStore{schedules: make(map[int64]*models.Schedule), nextID: 1}
}

func (f *fakeScheduleStore) add(s *models.Schedule) *models.Schedule {
	if s.ID == 0 {
		s.ID = f.nextID
		f.nextID++
	}
	f.schedules[s.ID] = s
	return s
}

func (f *fakeScheduleStore) Create(s *models.Schedule) error {
	f.add(s)
	return nil
}

func (f *fakeScheduleStore) GetByID(id int64) (*models.Schedule, error) {
	s, ok := f.schedules[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeScheduleStore) GetByFlightID(flightID int64) ([]models.Schedule, error) {
	var out []models.Schedule
	for _, s := range f.schedules {
		if s.FlightID == flightID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeScheduleStore) List() ([]models.Schedule, error) {
	out := make([]models.Schedule, 0, len(f.schedules))
	for _, s := range f.schedules {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeScheduleStore) MergeActuals(id int64, dep, arr *time.Time, resolve func(*models.Schedule) models.ScheduleStatus) (*models.Schedule, error) {
	if f.mergeErr != nil {
		return nil, f.mergeErr
	}
	s, ok := f.schedules[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if dep != nil {
		s.CurrentDeparture = dep
	}
	if arr != nil {
		s.CurrentArrival = arr
	}
	if s.Status != models.ScheduleStatusCancelled && resolve != nil {
		s.Status = resolve(s)
		f.statusWrites = append(f.statusWrites, s.Status)
	}
	copied := *s
	return &copied, nil
}

func (f *fakeScheduleStore) Cancel(id int64) (*models.Schedule, error) {
	s, ok := f.schedules[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	s.Status = models.ScheduleStatusCancelled
	copied := *s
	return &copied, nil
}

type fakeFlightStore struct {
	flights map[int64]*models.Flight
	listErr error
	lists   int
}

func newFakeFlightStore() *fakeFlightStore {
	return &fakeFlightStore{flights: make(map[int64]*models.Flight)}
}

func (f *fakeFlightStore) GetByID(id int64) (*models.Flight, error) {
	fl, ok := f.flights[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return fl, nil
}

func (f *fakeFlightStore) List() ([]models.Flight, error) {
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Flight, 0, len(f.flights))
	for _, fl := range f.flights {
		out = append(out, *fl)
	}
	return out, nil
}

type fakeSeatStore struct {
	slots     []models.SeatSlot
	nextID    int64
	insertErr error
	countErr  error
}

func (f *fakeSeatStore) CountBySchedule(scheduleID int64) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	count := 0
	for _, s := range f.slots {
		if s.ScheduleID == scheduleID {
			count++
		}
	}
	return count, nil
}

func (f *fakeSeatStore) InsertBatch(slots []models.SeatSlot) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	for _, s := range slots {
		f.nextID++
		s.ID = f.nextID
		f.slots = append(f.slots, s)
	}
	return nil
}

func (f *fakeSeatStore) ListBySchedule(scheduleID int64, onlyAvailable bool) ([]models.SeatSlot, error) {
	var out []models.SeatSlot
	for _, s := range f.slots {
		if s.ScheduleID != scheduleID {
			continue
		}
		if onlyAvailable && s.IsBooked {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSeatStore) GetByPosition(scheduleID int64, row int, column string) (*models.SeatSlot, error) {
	for i := range f.slots {
		s := &f.slots[i]
		if s.ScheduleID == scheduleID && s.RowNumber == row && s.ColumnLetter == column {
			copied := *s
			return &copied, nil
		}
	}
	return nil, models.ErrNotFound
}

type fakeCustomerStore struct {
	customers map[int64]*models.Customer
}

func (f *fakeCustomerStore) GetByID(id int64) (*models.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return c, nil
}

type fakeBookingStore struct {
	bookings    map[int64]*models.Booking
	allocations map[int64][]models.Allocation
	nextID      int64

	createErr     error
	createdWith   []models.PassengerInput
	transitioned  []int64
	listErr       error
	transitionErr error
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{
		bookings:    make(map[int64]*models.Booking),
		allocations: make(map[int64][]models.Allocation),
		nextID:      1,
	}
}

func (f *fakeBookingStore) CreateWithAllocations(booking *models.Booking, passengers []models.PassengerInput) (*models.BookingResponse, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	booking.ID = f.nextID
	f.nextID++
	booking.BookingReference = fmt.Sprintf("ref-%d", booking.ID)
	f.bookings[booking.ID] = booking
	f.createdWith = passengers

	allocations := make([]models.Allocation, 0, len(passengers))
	for _, p := range passengers {
		allocations = append(allocations, models.Allocation{
			BookingID:    booking.ID,
			ScheduleID:   booking.ScheduleID,
			FirstName:    p.FirstName,
			LastName:     p.LastName,
			RowNumber:    p.RowNumber,
			ColumnLetter: p.ColumnLetter,
			Class:        p.Class,
			Price:        p.Price,
		})
	}
	f.allocations[booking.ID] = allocations
	return &models.BookingResponse{Booking: booking, Allocations: allocations}, nil
}

func (f *fakeBookingStore) GetByID(id int64) (*models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingStore) GetByCustomerID(customerID int64) ([]models.Booking, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.Booking
	for _, b := range f.bookings {
		if b.CustomerID == customerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingStore) GetAllocations(id int64) ([]models.Allocation, error) {
	return f.allocations[id], nil
}

func (f *fakeBookingStore) TransitionPaymentStatus(id int64, from, to models.PaymentStatus) (bool, error) {
	if f.transitionErr != nil {
		return false, f.transitionErr
	}
	b, ok := f.bookings[id]
	if !ok || b.PaymentStatus != from {
		return false, nil
	}
	b.PaymentStatus = to
	f.transitioned = append(f.transitioned, id)
	return true, nil
}

type fakeSeatLocker struct {
	held     map[string]bool
	denied   map[string]bool
	acquired []string
	released []string
	err      error
}

func newFakeSeatLocker() *fakeSeatLocker {
	return &fakeSeatLocker{held: make(map[string]bool), denied: make(map[string]bool)}
}

func lockKey(scheduleID int64, row int, column string) string {
	return fmt.Sprintf("%d:%d%s", scheduleID, row, column)
}

func (f *fakeSeatLocker) AcquireSeatLock(_ context.Context, scheduleID int64, row int, column string, _ time.Duration) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	key := lockKey(scheduleID, row, column)
	if f.denied[key] || f.held[key] {
		return false, nil
	}
	f.held[key] = true
	f.acquired = append(f.acquired, key)
	return true, nil
}

func (f *fakeSeatLocker) ReleaseSeatLock(_ context.Context, scheduleID int64, row int, column string) error {
	key := lockKey(scheduleID, row, column)
	delete(f.held, key)
	f.released = append(f.released, key)
	return nil
}

type publishedEvent struct {
	Topic     string
	Key       string
	EventType string
	Payload   interface{}
}

type fakePublisher struct {
	events []publishedEvent
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, topic, key, eventType string, payload interface{}) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, publishedEvent{Topic: topic, Key: key, EventType: eventType, Payload: payload})
	return nil
}

type fakeFlightCache struct {
	flights []models.Flight
	getErr  error
	setErr  error
	sets    int
}

func (f *fakeFlightCache) GetFlights(_ context.Context) ([]models.Flight, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.flights, nil
}

func (f *fakeFlightCache) SetFlights(_ context.Context, flights []models.Flight) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.flights = flights
	f.sets++
	return nil
}
