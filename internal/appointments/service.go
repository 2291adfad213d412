package appointments

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/nivmalka/barbershop-booking/internal/availability"
	"github.com/nivmalka/barbershop-booking/internal/observability/metrics"
	"github.com/nivmalka/barbershop-booking/pkg/logging"
)

var tracer = otel.Tracer("booking.internal.appointments")

// Service implements the two booking use-cases: list free slots for a date
// and create an appointment if the slot is still free. It holds no state
// between requests; everything lives in the repository.
type Service struct {
	repo    Repository
	slots   []string
	cache   SlotCache
	metrics *metrics.BookingMetrics
	logger  *logging.Logger
}

// NewService constructs a booking service over the given repository and
// candidate slot list.
func NewService(repo Repository, slots []string, logger *logging.Logger) *Service {
	if repo == nil {
		panic("appointments: repository required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{repo: repo, slots: slots, logger: logger}
}

// WithCache enables the advisory free-slot cache.
func (s *Service) WithCache(cache SlotCache) *Service {
	s.cache = cache
	return s
}

// WithMetrics enables prometheus counters for both use-cases.
func (s *Service) WithMetrics(m *metrics.BookingMetrics) *Service {
	s.metrics = m
	return s
}

// AvailableSlots returns the candidate slots not yet booked on date, in
// candidate order. Reads are side-effect free and safe to retry.
func (s *Service) AvailableSlots(ctx context.Context, date string) ([]string, error) {
	ctx, span := tracer.Start(ctx, "appointments.available_slots")
	defer span.End()
	span.SetAttributes(attribute.String("booking.date", date))

	if date == "" {
		return nil, ErrMissingDate
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, date)
		if err != nil {
			s.logger.Warn("slot cache read failed", "date", date, "error", err)
		} else if cached != nil {
			s.metrics.ObserveAvailability("ok")
			return cached, nil
		}
	}

	booked, err := s.repo.BookedTimes(ctx, date)
	if err != nil {
		span.RecordError(err)
		s.metrics.ObserveAvailability("error")
		return nil, err
	}

	free := availability.Available(s.slots, booked)

	if s.cache != nil {
		if err := s.cache.Set(ctx, date, free); err != nil {
			s.logger.Warn("slot cache write failed", "date", date, "error", err)
		}
	}

	s.metrics.ObserveAvailability("ok")
	return free, nil
}

// Create validates the request and books the slot. The repository insert is
// conditional on the slot being free, so the availability check the client
// did earlier is never trusted.
func (s *Service) Create(ctx context.Context, req *CreateAppointmentRequest) (*Appointment, error) {
	ctx, span := tracer.Start(ctx, "appointments.create")
	defer span.End()
	span.SetAttributes(
		attribute.String("booking.date", req.Date),
		attribute.String("booking.time", req.Time),
	)
	start := time.Now()
	defer func() {
		s.metrics.ObserveBookingLatency(time.Since(start).Seconds())
	}()

	req.Normalize()
	if err := req.Validate(); err != nil {
		s.metrics.ObserveBooking("invalid")
		return nil, err
	}
	if !availability.Contains(s.slots, req.Time) {
		s.metrics.ObserveBooking("invalid")
		return nil, ErrInvalidTime
	}

	appt, err := s.repo.Create(ctx, req)
	if errors.Is(err, ErrSlotTaken) {
		s.metrics.ObserveBooking("conflict")
		s.logger.Info("slot already booked", "date", req.Date, "time", req.Time)
		return nil, ErrSlotTaken
	}
	if err != nil {
		span.RecordError(err)
		s.metrics.ObserveBooking("error")
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, appt.Date); err != nil {
			s.logger.Warn("slot cache invalidation failed", "date", appt.Date, "error", err)
		}
	}

	s.metrics.ObserveBooking("created")
	s.logger.Info("appointment created", "id", appt.ID, "date", appt.Date, "time", appt.Time)
	return appt, nil
}
