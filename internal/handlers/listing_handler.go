package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
	"storefront/internal/usecase"
)

type ListingHandler struct {
	callTimeout time.Duration
	log         *logrus.Logger
}

func NewListingHandler(callTimeout time.Duration, logger *logrus.Logger) *ListingHandler {
	return &ListingHandler{
		callTimeout: callTimeout,
		log:         logger,
	}
}

func (h *ListingHandler) RegisterRoutes(router gin.IRouter) {
	listing := router.Group("/listing")
	{
		listing.GET("", h.GetListing)
		listing.PATCH("", h.PatchListing)
		listing.PUT("/fields/:field", h.UpdateField)
		listing.PUT("/category", h.SelectCategory)
		listing.POST("/submit", h.Submit)
	}
}

type UpdateFieldRequest struct {
	Value string `json:"value"`
}

type SelectCategoryRequest struct {
	Category string `json:"category" binding:"required"`
}

// @Summary Current listing form
// @Tags listing
// @Produce json
// @Success 200 {object} Response{Data=usecase.ListingFormView}
// @Router /listing [get]
func (h *ListingHandler) GetListing(c *gin.Context) {
	SuccessResponse(c, http.StatusOK, "Listing form", sessionFrom(c).Listing.View())
}

// @Summary Change several draft fields at once
// @Tags listing
// @Accept json
// @Produce json
// @Param input body domain.ListingPatch true "Changed fields"
// @Success 200 {object} Response{Data=usecase.ListingFormView}
// @Failure 400 {object} Response
// @Router /listing [patch]
func (h *ListingHandler) PatchListing(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "PatchListing")
	form := sessionFrom(c).Listing

	var patch domain.ListingPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		handlerLogger.Warnf("Failed to bind request: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), form.View())
		return
	}
	if err := form.Apply(patch); err != nil {
		respondWithError(c, handlerLogger, err, form.View())
		return
	}
	SuccessResponse(c, http.StatusOK, "Listing updated", form.View())
}

// @Summary Set one draft field
// @Tags listing
// @Accept json
// @Produce json
// @Param field path string true "title, description, price, imageUrl or category"
// @Param input body UpdateFieldRequest true "New value"
// @Success 200 {object} Response{Data=usecase.ListingFormView}
// @Failure 400 {object} Response
// @Router /listing/fields/{field} [put]
func (h *ListingHandler) UpdateField(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "UpdateField")
	form := sessionFrom(c).Listing

	var req UpdateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlerLogger.Warnf("Failed to bind request: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), form.View())
		return
	}
	if err := form.UpdateField(domain.ListingField(c.Param("field")), req.Value); err != nil {
		respondWithError(c, handlerLogger, err, form.View())
		return
	}
	SuccessResponse(c, http.StatusOK, "Listing updated", form.View())
}

// @Summary Pick the listing category
// @Tags listing
// @Accept json
// @Produce json
// @Param input body SelectCategoryRequest true "Category"
// @Success 200 {object} Response{Data=usecase.ListingFormView}
// @Failure 400 {object} Response
// @Router /listing/category [put]
func (h *ListingHandler) SelectCategory(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "SelectCategory")
	form := sessionFrom(c).Listing

	var req SelectCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlerLogger.Warnf("Failed to bind request: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), form.View())
		return
	}
	category, err := domain.ParseCategory(req.Category)
	if err == nil {
		err = form.SelectCategory(category)
	}
	if err != nil {
		respondWithError(c, handlerLogger, err, form.View())
		return
	}
	SuccessResponse(c, http.StatusOK, "Category selected", form.View())
}

// @Summary Submit the draft to the marketplace
// @Tags listing
// @Produce json
// @Success 202 {object} Response{Data=usecase.ListingFormView}
// @Failure 409 {object} Response
// @Failure 422 {object} Response
// @Failure 502 {object} Response
// @Failure 503 {object} Response
// @Router /listing/submit [post]
func (h *ListingHandler) Submit(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "SubmitListing")
	form := sessionFrom(c).Listing

	callCtx, cancel := context.WithTimeout(c.Request.Context(), h.callTimeout)
	defer cancel()

	if err := form.Submit(callCtx); err != nil {
		respondWithError(c, handlerLogger, err, form.View())
		return
	}
	SuccessResponse(c, http.StatusAccepted, usecase.MsgListed, form.View())
}
