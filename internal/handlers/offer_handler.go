package handlers

import (
	"net/http"

	"whatyaneed_backend/internal/auth"
	"whatyaneed_backend/internal/middleware"
	"whatyaneed_backend/internal/services"
	"whatyaneed_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type OfferHandler struct {
	*BaseHandler
	offerService services.OfferService
}

func NewOfferHandler(base *BaseHandler, offerService services.OfferService) *OfferHandler {
	return &OfferHandler{
		BaseHandler:  base,
		offerService: offerService,
	}
}

func (h *OfferHandler) RegisterRoutes(rg *gin.RouterGroup) {
	volunteerOnly := []gin.HandlerFunc{middleware.Authenticate(), middleware.Authorize(auth.Volunteers)}

	rg.POST("/offers", append(volunteerOnly, h.Create)...)
	rg.GET("/volunteer/offers", append(volunteerOnly, h.ListOwn)...)
}

func (h *OfferHandler) Create(c *gin.Context) {
	user, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	var req dto.CreateOfferRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	volunteer := services.Volunteer{ID: user.ID, Name: user.Name}
	offer, err := h.offerService.Create(h.GetDB(c), volunteer, *req.RequestID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Offer submitted successfully",
		"offer_id": offer.ID,
	})
}

func (h *OfferHandler) ListOwn(c *gin.Context) {
	user, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	offers, err := h.offerService.ListOwn(h.GetDB(c), user.ID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"offers": offers})
}
