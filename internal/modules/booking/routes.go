package booking

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the booking endpoints on an authenticated group.
// adminOnly guards the unfiltered listing.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, adminOnly gin.HandlerFunc) {
	bookings := rg.Group("/bookings")
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("", adminOnly, h.ListAll)
		bookings.GET("/my", h.ListMine)
		bookings.DELETE("/:id", h.CancelBooking)
	}
}
