package domain

import "time"

// MinBookingDuration is the floor a booking has to exceed (strictly).
const MinBookingDuration = 15 * time.Minute

// CancellationWindow is how long before the start a non-admin loses the right to cancel.
const CancellationWindow = 24 * time.Hour

type Booking struct {
	ID        int64     `json:"id"`
	RoomID    int64     `json:"room_id"`
	OwnerID   int64     `json:"owner_id"`
	StartAt   time.Time `json:"start_at"`
	EndAt     time.Time `json:"end_at"`
	CreatedAt time.Time `json:"created_at"`
}

// BookingDetails is a booking joined with the names the listing views show.
type BookingDetails struct {
	Booking
	RoomName   string
	OwnerName  string
	OwnerEmail string
}
