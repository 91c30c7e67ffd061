package services

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/skyreserve/airline-backend/internal/models"
	"github.com/skyreserve/airline-backend/pkg/intent"
)

// ChatService routes free-text messages to backend operations. Each
// request goes through exactly two states: the message is classified
// into an intent, then the ordered task list bound to that intent is
// dispatched and the results collected.
type ChatService struct {
	tasks  map[intent.Label][]Task
	logger logrus.FieldLogger
}

// NewChatService creates a ChatService with the static intent/task table
func NewChatService(
	flights FlightStore,
	schedules ScheduleStore,
	bookings BookingStore,
	cache FlightCache,
	logger logrus.FieldLogger,
) *ChatService {
	listFlights := &listFlightsTask{flights: flights, cache: cache, logger: logger}
	listSchedules := &listSchedulesTask{schedules: schedules}
	myBookings := &customerBookingsTask{bookings: bookings}
	bookingForm := &bookingFormTask{}
	policy := &cancellationPolicyTask{}

	return &ChatService{
		tasks: map[intent.Label][]Task{
			intent.CancelTrip:         {listFlights, listSchedules},
			intent.FlightStatus:       {listFlights, listSchedules},
			intent.SeatAvailability:   {listFlights},
			intent.BookTicketForm:     {bookingForm},
			intent.GetBookings:        {myBookings},
			intent.CancellationPolicy: {policy},
		},
		logger: logger,
	}
}

// Handle classifies a message and executes every task bound to the
// detected intent, in order. A failing task aborts the dispatch with a
// TaskExecutionError naming it; task errors are never swallowed.
func (s *ChatService) Handle(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, error) {
	label := intent.Classify(req.Message)
	if label == intent.Unknown {
		return &models.ChatResponse{
			Intent: string(intent.Unknown),
			Responses: []models.TaskResult{
				{Task: "none", Result: map[string]string{"message": "Sorry, I didn't understand that."}},
			},
		}, nil
	}

	tasks := s.tasks[label]
	in := TaskInput{Message: req.Message, CustomerID: req.CustomerID}
	responses := make([]models.TaskResult, 0, len(tasks))
	for _, task := range tasks {
		result, err := task.Run(ctx, in)
		if err != nil {
			s.logger.WithError(err).WithFields(logrus.Fields{
				"intent": label,
				"task":   task.Name(),
			}).Error("Chat task failed")
			return nil, &models.TaskExecutionError{Task: task.Name(), Err: err}
		}
		responses = append(responses, models.TaskResult{Task: task.Name(), Result: result})
	}

	return &models.ChatResponse{Intent: string(label), Responses: responses}, nil
}
