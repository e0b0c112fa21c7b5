package handlers

import (
	"net/http"

	"nestview/middleware"
	"nestview/models"
	"nestview/services/booking"
	"nestview/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler exposes the slot lifecycle endpoints.
type BookingHandler struct {
	Service booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// CreateSlotHandler handles POST /api/bookings (owning agent).
func (h *BookingHandler) CreateSlotHandler(c *gin.Context) {
	caller, ok := middleware.CallerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req models.CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.ValidationError("propertyId, startTime and endTime are required"))
		return
	}

	slot, err := h.Service.CreateSlot(c.Request.Context(), caller, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, slot)
}

// PropertySlotsHandler handles GET /api/bookings/property/:propertyId
// (public), sorted by start time.
func (h *BookingHandler) PropertySlotsHandler(c *gin.Context) {
	slots, err := h.Service.PropertySlots(c.Request.Context(), c.Param("propertyId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, slots)
}

// BookSlotHandler handles PUT /api/bookings/:id/book (buyer).
func (h *BookingHandler) BookSlotHandler(c *gin.Context) {
	caller, ok := middleware.CallerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	slot, err := h.Service.BookSlot(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, slot)
}

// UpdateStatusHandler handles PUT /api/bookings/:id/status (owning agent).
func (h *BookingHandler) UpdateStatusHandler(c *gin.Context) {
	caller, ok := middleware.CallerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req models.UpdateSlotStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.ValidationError("status is required"))
		return
	}

	slot, err := h.Service.UpdateStatus(c.Request.Context(), caller, c.Param("id"), req.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, slot)
}

// MyBookingsHandler handles GET /api/bookings/my-bookings (buyer).
func (h *BookingHandler) MyBookingsHandler(c *gin.Context) {
	caller, ok := middleware.CallerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	details, err := h.Service.MyBookings(c.Request.Context(), caller)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

// AgentScheduleHandler handles GET /api/bookings/agent-schedule (agent).
func (h *BookingHandler) AgentScheduleHandler(c *gin.Context) {
	caller, ok := middleware.CallerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	details, err := h.Service.MySchedule(c.Request.Context(), caller)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}
