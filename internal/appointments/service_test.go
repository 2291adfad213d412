package appointments

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/nivmalka/barbershop-booking/internal/availability"
	"github.com/nivmalka/barbershop-booking/pkg/logging"
)

type failingRepository struct{}

func (failingRepository) Create(context.Context, *CreateAppointmentRequest) (*Appointment, error) {
	return nil, errors.New("db down")
}

func (failingRepository) BookedTimes(context.Context, string) ([]string, error) {
	return nil, errors.New("db down")
}

func newTestService() *Service {
	return NewService(NewInMemoryRepository(), availability.DefaultSlots, logging.Default())
}

func validRequest() *CreateAppointmentRequest {
	return &CreateAppointmentRequest{Name: "Dana", Phone: "0501234567", Date: "2025-03-10", Time: "16:00"}
}

func TestAvailableSlotsFullWhenNothingBooked(t *testing.T) {
	svc := newTestService()

	slots, err := svc.AvailableSlots(context.Background(), "2025-03-10")
	if err != nil {
		t.Fatalf("available slots failed: %v", err)
	}
	if !reflect.DeepEqual(slots, availability.DefaultSlots) {
		t.Fatalf("expected full candidate list, got %v", slots)
	}
}

func TestAvailableSlotsRequiresDate(t *testing.T) {
	svc := newTestService()

	_, err := svc.AvailableSlots(context.Background(), "")
	if !errors.Is(err, ErrMissingDate) {
		t.Fatalf("expected ErrMissingDate, got %v", err)
	}
}

func TestAvailableSlotsIdempotentRead(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	first, err := svc.AvailableSlots(ctx, "2025-03-10")
	if err != nil {
		t.Fatalf("first read failed: %v", err)
	}
	second, err := svc.AvailableSlots(ctx, "2025-03-10")
	if err != nil {
		t.Fatalf("second read failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("reads differ: %v vs %v", first, second)
	}
}

func TestCreateRemovesSlotFromAvailability(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, validRequest()); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	slots, err := svc.AvailableSlots(ctx, "2025-03-10")
	if err != nil {
		t.Fatalf("available slots failed: %v", err)
	}
	want := []string{"15:00", "15:30", "16:30", "17:00", "17:30"}
	if !reflect.DeepEqual(slots, want) {
		t.Fatalf("expected %v, got %v", want, slots)
	}
}

func TestCreateConflictOnSecondBooking(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	appt, err := svc.Create(ctx, validRequest())
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if appt.ID == "" {
		t.Error("expected generated id")
	}

	_, err = svc.Create(ctx, validRequest())
	if !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}
}

func TestCreateRejectsNonCandidateTime(t *testing.T) {
	svc := newTestService()

	req := validRequest()
	req.Time = "16:15"
	_, err := svc.Create(context.Background(), req)
	if !errors.Is(err, ErrInvalidTime) {
		t.Fatalf("expected ErrInvalidTime, got %v", err)
	}
}

func TestCreateNormalizesBeforePersisting(t *testing.T) {
	svc := newTestService()

	req := validRequest()
	req.Name = "  Dana  "
	req.Phone = "050-123-4567"
	appt, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if appt.Name != "Dana" {
		t.Errorf("expected trimmed name, got %q", appt.Name)
	}
	if appt.Phone != "0501234567" {
		t.Errorf("expected digits-only phone, got %q", appt.Phone)
	}
}

func TestCreatePropagatesDependencyErrors(t *testing.T) {
	svc := NewService(failingRepository{}, availability.DefaultSlots, logging.Default())

	_, err := svc.Create(context.Background(), validRequest())
	if err == nil || IsValidationError(err) || errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestAvailableSlotsServedFromCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	cache := NewRedisSlotCache(client, time.Minute)

	// Prime the cache through a healthy service, then swap in a failing
	// repository: the cached read must still succeed.
	repo := NewInMemoryRepository()
	svc := NewService(repo, availability.DefaultSlots, logging.Default()).WithCache(cache)
	ctx := context.Background()

	want, err := svc.AvailableSlots(ctx, "2025-03-10")
	if err != nil {
		t.Fatalf("priming read failed: %v", err)
	}

	broken := NewService(failingRepository{}, availability.DefaultSlots, logging.Default()).WithCache(cache)
	got, err := broken.AvailableSlots(ctx, "2025-03-10")
	if err != nil {
		t.Fatalf("cached read failed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected cached %v, got %v", want, got)
	}
}

func TestCreateInvalidatesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	cache := NewRedisSlotCache(client, time.Minute)

	svc := newTestService().WithCache(cache)
	ctx := context.Background()

	if _, err := svc.AvailableSlots(ctx, "2025-03-10"); err != nil {
		t.Fatalf("priming read failed: %v", err)
	}
	if _, err := svc.Create(ctx, validRequest()); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	slots, err := svc.AvailableSlots(ctx, "2025-03-10")
	if err != nil {
		t.Fatalf("post-booking read failed: %v", err)
	}
	for _, s := range slots {
		if s == "16:00" {
			t.Fatal("cache still serving the booked slot")
		}
	}
}
