package handlers

import (
	"errors"
	"net/http"

	"scarlett-api/models"
	"scarlett-api/pkg/events"
	"scarlett-api/pkg/notify"
	"scarlett-api/pkg/scanner"
	"scarlett-api/repository"
	"scarlett-api/types"

	"github.com/gin-gonic/gin"
)

type ScanHandler struct {
	scanner  *scanner.Scanner
	photos   *repository.PhotosRepository
	notifier notify.Notifier
}

func NewScanHandler(sc *scanner.Scanner, photos *repository.PhotosRepository, notifier notify.Notifier) *ScanHandler {
	return &ScanHandler{scanner: sc, photos: photos, notifier: notifier}
}

// Scan walks the photo library (or the folder query parameter's subtree),
// persists newly discovered files and reports the new/updated/deleted
// counts. Connected clients get a scan.completed event.
func (h *ScanHandler) Scan(c *gin.Context) {
	folder := c.Query("folder")

	index, err := h.photos.FileIndex()
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}

	result, err := h.scanner.Scan(folder, index)
	if err != nil {
		if errors.Is(err, scanner.ErrOutsideRoot) {
			c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}

	inserted, err := h.photos.BulkInsert(result.NewFiles)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}

	scan := models.NewScanResult(inserted, result.Updated, result.Deleted)
	if h.notifier != nil {
		h.notifier.Broadcast(events.NewScanCompleted(scan.NewPhotos, scan.UpdatedPhotos, scan.DeletedPhotos))
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(scan))
}
