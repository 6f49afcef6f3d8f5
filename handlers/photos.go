package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"scarlett-api/models"
	"scarlett-api/pkg/events"
	"scarlett-api/pkg/notify"
	"scarlett-api/repository"
	"scarlett-api/types"

	"github.com/gin-gonic/gin"
)

type PhotosHandler struct {
	photos      *repository.PhotosRepository
	collections *repository.CollectionsRepository
	links       *types.LinkBuilder
	notifier    notify.Notifier
}

func NewPhotosHandler(photos *repository.PhotosRepository, collections *repository.CollectionsRepository, links *types.LinkBuilder) *PhotosHandler {
	return &PhotosHandler{photos: photos, collections: collections, links: links}
}

func (h *PhotosHandler) WithNotifier(n notify.Notifier) *PhotosHandler {
	h.notifier = n
	return h
}

// GetPhotos serves the paginated photo listing. The collection, when one
// is named, is resolved before any query runs so an unknown id fails fast
// with 404; sort and predicate problems are client errors, store problems
// are server errors.
func (h *PhotosHandler) GetPhotos(c *gin.Context) {
	req, err := types.ParseGetPhotosRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Invalid collection_id"))
		return
	}

	var collection *models.Collection
	if req.CollectionID != nil {
		collection, err = h.collections.GetByID(*req.CollectionID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
			return
		}
		if collection == nil {
			c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "Collection not found"))
			return
		}
	}

	photos, total, err := h.photos.GetPage(req, collection)
	if err != nil {
		if errors.Is(err, types.ErrUnknownSortField) || errors.Is(err, repository.ErrInvalidPredicate) {
			c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}

	page := types.NewPage(h.links, req.Params(), photos, total)
	c.JSON(http.StatusOK, types.NewSuccessResponse(page))
}

func (h *PhotosHandler) GetPhoto(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Invalid ID"))
		return
	}
	photo, err := h.photos.GetByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if photo == nil {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "Photo not found"))
		return
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(photo))
}

func (h *PhotosHandler) UpdateRating(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Invalid ID"))
		return
	}
	rating, err := strconv.Atoi(c.Param("rating"))
	if err != nil || rating < 0 || rating > 5 {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Rating must be between 0 and 5"))
		return
	}
	photo, err := h.photos.UpdateRating(id, rating)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if photo == nil {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "Photo not found"))
		return
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(photo))
}

func (h *PhotosHandler) UpdateLastViewed(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Invalid ID"))
		return
	}
	photo, err := h.photos.UpdateLastViewed(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if photo == nil {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "Photo not found"))
		return
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(photo))
}

func (h *PhotosHandler) DeletePhoto(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Invalid ID"))
		return
	}
	photo, err := h.photos.GetByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if photo == nil {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "Photo not found"))
		return
	}
	if err := h.photos.Delete(photo); err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(gin.H{"message": "Photo deleted successfully"}))
}

// photoChildLink factors the shared shape of the tag/entity link and
// unlink endpoints: parse both ids, check the photo exists, run op.
func (h *PhotosHandler) photoChildLink(c *gin.Context, childParam string, op func(photoID, childID int) error, message string) {
	photoID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Invalid photo ID"))
		return
	}
	childID, err := strconv.Atoi(c.Param(childParam))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Invalid "+childParam))
		return
	}
	photo, err := h.photos.GetByID(photoID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if photo == nil {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "Photo not found"))
		return
	}
	if err := op(photoID, childID); err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(gin.H{"message": message}))
}

func (h *PhotosHandler) AddTag(c *gin.Context) {
	h.photoChildLink(c, "tagId", h.photos.AddTag, "Tag added to photo")
}

func (h *PhotosHandler) RemoveTag(c *gin.Context) {
	h.photoChildLink(c, "tagId", h.photos.RemoveTag, "Tag removed from photo")
}

func (h *PhotosHandler) AddEntity(c *gin.Context) {
	h.photoChildLink(c, "entityId", h.photos.AddEntity, "Entity added to photo")
}

func (h *PhotosHandler) RemoveEntity(c *gin.Context) {
	h.photoChildLink(c, "entityId", h.photos.RemoveEntity, "Entity removed from photo")
}

func (h *PhotosHandler) AddWallpaper(c *gin.Context) {
	var req struct {
		FilePath string `json:"filePath" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, err.Error()))
		return
	}
	h.photoChildLink(c, "sizeId", func(photoID, sizeID int) error {
		return h.photos.AddWallpaper(photoID, sizeID, req.FilePath)
	}, "Wallpaper added to photo")
}

func (h *PhotosHandler) RemoveWallpaper(c *gin.Context) {
	h.photoChildLink(c, "sizeId", h.photos.RemoveWallpaper, "Wallpaper removed from photo")
}

// ResetOrdering rebuilds the shuffle ordering. Administrative and
// infrequent; listings running during the rebuild see the old or the new
// ordering, never a mix.
func (h *PhotosHandler) ResetOrdering(c *gin.Context) {
	if err := h.photos.ResetOrdering(); err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if h.notifier != nil {
		h.notifier.Broadcast(events.NewOrderingReset())
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(gin.H{"message": "Photo ordering was rebuilt successfully"}))
}
