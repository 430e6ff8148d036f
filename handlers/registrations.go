package handlers

import (
	"net/http"

	"github.com/aaauuugggghhhh/unihub-event-management/models"
	"github.com/aaauuugggghhhh/unihub-event-management/repository"
	"github.com/aaauuugggghhhh/unihub-event-management/service"
	"github.com/aaauuugggghhhh/unihub-event-management/types"

	"github.com/gin-gonic/gin"
)

type RegistrationsHandler struct {
	coordinator       *service.Coordinator
	registrationsRepo *repository.RegistrationsRepository
}

func NewRegistrationsHandler(coordinator *service.Coordinator, registrationsRepo *repository.RegistrationsRepository) *RegistrationsHandler {
	return &RegistrationsHandler{coordinator: coordinator, registrationsRepo: registrationsRepo}
}

// Register puts the caller on the event's ledger, subject to the
// coordinator's capacity and timing rules.
func (h *RegistrationsHandler) Register(c *gin.Context) {
	userID := c.GetString("userId")
	if err := h.coordinator.Register(c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, types.NewSuccessResponse(gin.H{"message": "Registered for event"}))
}

func (h *RegistrationsHandler) Unregister(c *gin.Context) {
	userID := c.GetString("userId")
	if err := h.coordinator.Unregister(c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(gin.H{"message": "Unregistered from event"}))
}

// GetMyEvents returns the events the caller is registered for.
func (h *RegistrationsHandler) GetMyEvents(c *gin.Context) {
	userID := c.GetString("userId")
	events, err := h.registrationsRepo.GetEventsForUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(events))
}

// GetEventRegistrations is the administrator roster view: every registrant of
// an event with email and display name resolved.
func (h *RegistrationsHandler) GetEventRegistrations(c *gin.Context) {
	registrants, err := h.registrationsRepo.GetRegistrantsForEvent(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if registrants == nil {
		registrants = []models.Registrant{}
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(registrants))
}
