package handler

import (
	"context"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gentlemens13/booking-api/internal/models"
	appErrors "github.com/gentlemens13/booking-api/pkg/errors"
	"github.com/gentlemens13/booking-api/pkg/response"
	"github.com/gentlemens13/booking-api/pkg/storage"
)

const maxPhotoSize = 10 << 20 // 10 MiB

type photoBookingService interface {
	AttachPhoto(ctx context.Context, id, photoKey string) (*models.Booking, error)
}

// PhotoHandler manages booking photo uploads and signed downloads.
type PhotoHandler struct {
	service photoBookingService
	store   *storage.FileStore
	signer  *storage.URLSigner
}

// NewPhotoHandler builds a new handler.
func NewPhotoHandler(service photoBookingService, store *storage.FileStore, signer *storage.URLSigner) *PhotoHandler {
	return &PhotoHandler{service: service, store: store, signer: signer}
}

// Upload godoc
// @Summary Attach a reference photo to a booking
// @Tags Bookings
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Booking ID"
// @Param photo formData file true "Photo file"
// @Success 200 {object} response.Envelope
// @Router /admin/bookings/{id}/photo [post]
func (h *PhotoHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "photo file is required"))
		return
	}
	if fileHeader.Size > maxPhotoSize {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "photo exceeds the 10MB limit"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read upload"))
		return
	}
	defer file.Close()

	key, err := h.store.Save(file, fileHeader.Filename)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store photo"))
		return
	}

	booking, err := h.service.AttachPhoto(c.Request.Context(), c.Param("id"), key)
	if err != nil {
		_ = h.store.Delete(key)
		response.Error(c, err)
		return
	}

	expires, sig := h.signer.Sign(key, time.Now())
	response.JSON(c, http.StatusOK, booking, nil, map[string]interface{}{
		"photo_url": signedPath(key, expires, sig),
	})
}

// Serve streams a stored photo after verifying its signature.
func (h *PhotoHandler) Serve(c *gin.Context) {
	key := c.Param("key")
	expires, err := strconv.ParseInt(c.Query("expires"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid expires parameter"))
		return
	}
	if err := h.signer.Verify(key, expires, c.Query("sig"), time.Now()); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "link is invalid or expired"))
		return
	}

	reader, err := h.store.Open(key)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "file not found"))
		return
	}
	defer reader.Close()

	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, reader)
}

func signedPath(key string, expires int64, sig string) string {
	return "/files/" + key + "?expires=" + strconv.FormatInt(expires, 10) + "&sig=" + sig
}
