package booking

import (
	"errors"
	"net/http"
	"strconv"

	"roomscheduler/internal/middleware"
	"roomscheduler/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
	clock   Clock
}

// NewHandler uses clock for the future-time check; nil means wall time.
func NewHandler(service *Service, clock Clock) *Handler {
	if clock == nil {
		clock = systemClock{}
	}
	return &Handler{service: service, clock: clock}
}

// CreateBooking reserves a room for the caller.
// @Summary	Create booking
// @Tags		Bookings
// @Param		request	body	CreateBookingRequest	true	"room_id, start_at, end_at (RFC 3339)"
// @Success	201	{object}	map[string]interface{}
// @Failure	400	{object}	map[string]interface{}	"VALIDATION_ERROR / INVALID_DURATION"
// @Failure	404	{object}	map[string]interface{}	"ROOM_NOT_FOUND"
// @Failure	409	{object}	map[string]interface{}	"BOOKING_CONFLICT"
// @Router		/bookings [POST]
func (h *Handler) CreateBooking(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	now := h.clock.Now()
	if !req.StartAt.After(now) || !req.EndAt.After(now) {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "start_at and end_at must be in the future")
		return
	}

	b, err := h.service.ProposeBooking(c.Request.Context(), req.RoomID, req.StartAt, req.EndAt, identity)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"booking": CreatedBookingResponse{
			ID:      b.ID,
			RoomID:  b.RoomID,
			OwnerID: b.OwnerID,
			StartAt: b.StartAt,
			EndAt:   b.EndAt,
		},
	})
}

func (h *Handler) ListAll(c *gin.Context) {
	items, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": items})
}

func (h *Handler) ListMine(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	items, err := h.service.ListMine(c.Request.Context(), identity)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": items})
}

func (h *Handler) CancelBooking(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	if err := h.service.CancelBooking(c.Request.Context(), id, identity); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidDuration):
		response.Error(c, http.StatusBadRequest, "INVALID_DURATION", err.Error())
	case errors.Is(err, ErrRoomNotFound):
		response.Error(c, http.StatusNotFound, "ROOM_NOT_FOUND", err.Error())
	case errors.Is(err, ErrConflictingBooking):
		response.Error(c, http.StatusConflict, "BOOKING_CONFLICT", err.Error())
	case errors.Is(err, ErrBookingNotFound):
		response.Error(c, http.StatusNotFound, "BOOKING_NOT_FOUND", err.Error())
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, ErrCancellationWindowClosed):
		response.Error(c, http.StatusBadRequest, "CANCELLATION_WINDOW_CLOSED", err.Error())
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
