package booking

import (
	"context"
	"time"

	"roomscheduler/internal/domain"
)

// RoomLookup resolves a room id; repository.ErrNotFound when absent.
type RoomLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

// BookingStore is the durable booking set.
//
// Insert must re-check overlap and write atomically per room, returning
// repository.ErrOverlap when it loses. Delete must remove only the booking
// it was given and return repository.ErrNotFound when the row is already gone.
type BookingStore interface {
	ExistsOverlapping(ctx context.Context, roomID int64, start, end time.Time) (bool, error)
	Insert(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Delete(ctx context.Context, b *domain.Booking) error
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.BookingDetails, error)
	ListAll(ctx context.Context) ([]domain.BookingDetails, error)
}

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }
