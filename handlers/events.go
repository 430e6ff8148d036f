package handlers

import (
	"net/http"

	"github.com/aaauuugggghhhh/unihub-event-management/repository"
	"github.com/aaauuugggghhhh/unihub-event-management/service"
	"github.com/aaauuugggghhhh/unihub-event-management/types"

	"github.com/gin-gonic/gin"
)

type EventsHandler struct {
	eventsRepo  *repository.EventsRepository
	coordinator *service.Coordinator
}

func NewEventsHandler(eventsRepo *repository.EventsRepository, coordinator *service.Coordinator) *EventsHandler {
	return &EventsHandler{eventsRepo: eventsRepo, coordinator: coordinator}
}

// GetEvents lists events ordered by date, optionally narrowed by ?category=
// and a ?search= over title and location.
func (h *EventsHandler) GetEvents(c *gin.Context) {
	filter := repository.EventFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}
	if filter.Category != "" && !types.IsValidCategory(filter.Category) {
		respondError(c, types.ErrInvalidCategory)
		return
	}

	p := types.ParsePaginationParams(c)
	events, total, err := h.eventsRepo.GetEvents(filter, p.Offset, p.PageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(p.BuildResponse(events, total)))
}

func (h *EventsHandler) GetEvent(c *gin.Context) {
	event, err := h.eventsRepo.GetEventByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if event == nil {
		respondError(c, types.ErrEventNotFound)
		return
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(event))
}

func (h *EventsHandler) CreateEvent(c *gin.Context) {
	var in repository.EventInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, err.Error()))
		return
	}
	event, err := h.coordinator.CreateEvent(in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, types.NewSuccessResponse(event))
}

// UpdateEvent rewrites an event's fields and notifies every registrant.
func (h *EventsHandler) UpdateEvent(c *gin.Context) {
	var in repository.EventInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, err.Error()))
		return
	}
	event, err := h.coordinator.UpdateEvent(c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(event))
}

func (h *EventsHandler) DeleteEvent(c *gin.Context) {
	if err := h.coordinator.DeleteEvent(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(gin.H{"message": "Event deleted"}))
}
