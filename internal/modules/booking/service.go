package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"roomscheduler/internal/domain"
	"roomscheduler/internal/repository"
)

// Service owns the booking rules. It keeps no state between calls: every
// decision is made against what the store returns right now.
type Service struct {
	bookings BookingStore
	rooms    RoomLookup
	clock    Clock
}

func NewService(bookings BookingStore, rooms RoomLookup, clock Clock) *Service {
	if clock == nil {
		clock = systemClock{}
	}
	return &Service{
		bookings: bookings,
		rooms:    rooms,
		clock:    clock,
	}
}

// ProposeBooking validates and stores a booking of roomID over [startAt, endAt)
// owned by requester. Checks run in order and stop at the first failure:
// duration, room existence, overlap. The duration is checked on the instants
// as given; the stored interval is widened to whole seconds.
func (s *Service) ProposeBooking(ctx context.Context, roomID int64, startAt, endAt time.Time, requester domain.Identity) (*domain.Booking, error) {
	if !ValidDuration(startAt, endAt) {
		return nil, ErrInvalidDuration
	}
	start, end := widen(startAt, endAt)

	if _, err := s.rooms.GetByID(ctx, roomID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("lookup room %d: %w", roomID, err)
	}

	taken, err := s.bookings.ExistsOverlapping(ctx, roomID, start, end)
	if err != nil {
		return nil, fmt.Errorf("check overlap: %w", err)
	}
	if taken {
		return nil, ErrConflictingBooking
	}

	b := &domain.Booking{
		RoomID:  roomID,
		OwnerID: requester.UserID,
		StartAt: start,
		EndAt:   end,
	}
	if err := s.bookings.Insert(ctx, b); err != nil {
		switch {
		case errors.Is(err, repository.ErrOverlap):
			return nil, ErrConflictingBooking
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("insert booking: %w", err)
	}
	return b, nil
}

// CancelBooking deletes the booking when requester is its owner (outside the
// cancellation window) or an admin (any time).
func (s *Service) CancelBooking(ctx context.Context, bookingID int64, requester domain.Identity) error {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("get booking %d: %w", bookingID, err)
	}

	if err := CheckCancel(b, requester, s.clock.Now()); err != nil {
		return err
	}

	if err := s.bookings.Delete(ctx, b); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("delete booking %d: %w", bookingID, err)
	}
	return nil
}

func (s *Service) ListAll(ctx context.Context) ([]BookingResponse, error) {
	rows, err := s.bookings.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return toResponses(rows), nil
}

// ListMine returns the requester's bookings, latest start first.
func (s *Service) ListMine(ctx context.Context, requester domain.Identity) ([]BookingResponse, error) {
	rows, err := s.bookings.ListByOwner(ctx, requester.UserID)
	if err != nil {
		return nil, fmt.Errorf("list bookings of user %d: %w", requester.UserID, err)
	}
	return toResponses(rows), nil
}

func toResponses(rows []domain.BookingDetails) []BookingResponse {
	out := make([]BookingResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, BookingResponse{
			ID:        r.ID,
			RoomID:    r.RoomID,
			RoomName:  r.RoomName,
			UserName:  r.OwnerName,
			UserEmail: r.OwnerEmail,
			StartAt:   r.StartAt,
			EndAt:     r.EndAt,
		})
	}
	return out
}
