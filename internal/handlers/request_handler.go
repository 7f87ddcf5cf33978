package handlers

import (
	"net/http"

	"whatyaneed_backend/internal/auth"
	"whatyaneed_backend/internal/middleware"
	"whatyaneed_backend/internal/services"
	"whatyaneed_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type RequestHandler struct {
	*BaseHandler
	requestService services.RequestService
}

func NewRequestHandler(base *BaseHandler, requestService services.RequestService) *RequestHandler {
	return &RequestHandler{
		BaseHandler:    base,
		requestService: requestService,
	}
}

func (h *RequestHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/requests", h.ListOpen)
	rg.POST("/requests", middleware.Authenticate(), middleware.Authorize(auth.Requesters), h.Create)

	requester := rg.Group("/requester")
	requester.Use(middleware.Authenticate(), middleware.Authorize(auth.Requesters))
	{
		requester.GET("/requests", h.ListOwn)
	}
}

// ListOpen - открытая лента, доступна без входа
func (h *RequestHandler) ListOpen(c *gin.Context) {
	var query dto.RequestListQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	requests, err := h.requestService.ListOpen(h.GetDB(c), query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

func (h *RequestHandler) Create(c *gin.Context) {
	user, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	var req dto.CreateRequestRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	request, err := h.requestService.Create(h.GetDB(c), user.ID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Request created successfully",
		"request_id": request.ID,
	})
}

func (h *RequestHandler) ListOwn(c *gin.Context) {
	user, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	requests, err := h.requestService.ListOwn(h.GetDB(c), user.ID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}
