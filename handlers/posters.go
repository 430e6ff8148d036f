package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/aaauuugggghhhh/unihub-event-management/initializers"
	"github.com/aaauuugggghhhh/unihub-event-management/repository"
	"github.com/aaauuugggghhhh/unihub-event-management/types"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

type PostersHandler struct {
	eventsRepo *repository.EventsRepository
}

func NewPostersHandler(eventsRepo *repository.EventsRepository) *PostersHandler {
	return &PostersHandler{eventsRepo: eventsRepo}
}

// Upload stores a poster image for an event and points the event's imageUrl
// at the serving route. Administrator only.
func (h *PostersHandler) Upload(c *gin.Context) {
	eventID := c.Param("id")
	event, err := h.eventsRepo.GetEventByID(eventID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if event == nil {
		respondError(c, types.ErrEventNotFound)
		return
	}

	// Limit request body size before reading multipart data
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, initializers.Conf.MaxSize)

	file, err := c.FormFile("file")
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "request body too large") {
			c.JSON(http.StatusRequestEntityTooLarge, types.NewErrorResponse(types.ErrorCodeValidation, "file size exceeds the limit"))
			return
		}
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "file is required"))
		return
	}

	// Detect the real MIME type from content, not from the client header
	sniff, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "cannot open uploaded file"))
		return
	}
	mt, err := mimetype.DetectReader(sniff)
	_ = sniff.Close()
	if err != nil || mt == nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "failed to detect file type"))
		return
	}
	detectedCT := strings.Split(mt.String(), ";")[0]

	if err := initializers.CheckFileAllowed(file.Size, detectedCT); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, err.Error()))
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "cannot open uploaded file"))
		return
	}
	defer src.Close()

	objectID := uuid.NewString()
	_, err = initializers.MinioClient.PutObject(
		context.Background(),
		initializers.Conf.Bucket,
		objectID,
		src,
		file.Size,
		minio.PutObjectOptions{ContentType: detectedCT},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}

	imageURL := "/images/" + objectID
	if err := h.eventsRepo.SetEventImageURL(eventID, imageURL); err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, types.NewSuccessResponse(gin.H{
		"imageUrl": imageURL,
		"size":     file.Size,
		"type":     detectedCT,
	}))
}

// Serve redirects to a short-lived presigned URL for the stored poster.
func (h *PostersHandler) Serve(c *gin.Context) {
	objectID := c.Param("id")
	if _, err := uuid.Parse(objectID); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "invalid image id"))
		return
	}
	presigned, err := initializers.GeneratePosterURL(objectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, presigned)
}
