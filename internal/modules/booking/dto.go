package booking

import "time"

type CreateBookingRequest struct {
	RoomID  int64     `json:"room_id" binding:"required,gt=0"`
	StartAt time.Time `json:"start_at" binding:"required"`
	EndAt   time.Time `json:"end_at" binding:"required"`
}

// BookingResponse is the flattened view shared by both listings. It carries
// the owner's name and email only, never credential material.
type BookingResponse struct {
	ID        int64     `json:"id"`
	RoomID    int64     `json:"room_id"`
	RoomName  string    `json:"room_name"`
	UserName  string    `json:"user_name"`
	UserEmail string    `json:"user_email"`
	StartAt   time.Time `json:"start_at"`
	EndAt     time.Time `json:"end_at"`
}

type CreatedBookingResponse struct {
	ID      int64     `json:"id"`
	RoomID  int64     `json:"room_id"`
	OwnerID int64     `json:"owner_id"`
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
}
