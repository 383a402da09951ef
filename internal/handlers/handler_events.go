package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/hawwa-platform/ledgercore/internal/core/ports/services"
	"github.com/hawwa-platform/ledgercore/internal/core/services"
	"github.com/hawwa-platform/ledgercore/internal/dto"
	"github.com/hawwa-platform/ledgercore/internal/events"
)

// eventHandler receives domain events from the booking/payments subsystem.
// Events are acknowledged with 202 even when posting fails: the ledger is a
// follower of those state machines, and a missed entry is recovered by
// re-delivering the event.
type eventHandler struct {
	dispatcher *services.EventDispatcher
}

func newEventHandler(posting portssvc.PostingSvcFacade) *eventHandler {
	return &eventHandler{dispatcher: services.NewEventDispatcher(posting)}
}

// registerEventRoutes registers the inbound event endpoints.
func registerEventRoutes(rg *gin.RouterGroup, postingService portssvc.PostingSvcFacade) {
	h := newEventHandler(postingService)

	eventsGroup := rg.Group("/events")
	{
		eventsGroup.POST("/payment-completed", h.paymentCompleted)
		eventsGroup.POST("/expense-paid", h.expensePaid)
	}
}

func (h *eventHandler) paymentCompleted(c *gin.Context) {
	var ev events.PaymentCompleted
	if err := c.ShouldBindJSON(&ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if ev.ActorID == "" {
		ev.ActorID = actorID(c)
	}

	entry := h.dispatcher.DispatchPaymentCompleted(c.Request.Context(), ev)
	if entry == nil {
		c.JSON(http.StatusAccepted, gin.H{"posted": false})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"posted": true, "entry": dto.ToJournalEntryResponse(entry, nil)})
}

func (h *eventHandler) expensePaid(c *gin.Context) {
	var ev events.ExpensePaid
	if err := c.ShouldBindJSON(&ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if ev.ActorID == "" {
		ev.ActorID = actorID(c)
	}

	entry := h.dispatcher.DispatchExpensePaid(c.Request.Context(), ev)
	if entry == nil {
		c.JSON(http.StatusAccepted, gin.H{"posted": false})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"posted": true, "entry": dto.ToJournalEntryResponse(entry, nil)})
}
