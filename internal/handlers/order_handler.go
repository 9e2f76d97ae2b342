package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
	"storefront/internal/usecase"
)

type OrderHandler struct {
	callTimeout time.Duration
	log         *logrus.Logger
}

func NewOrderHandler(callTimeout time.Duration, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{
		callTimeout: callTimeout,
		log:         logger,
	}
}

func (h *OrderHandler) RegisterRoutes(router gin.IRouter) {
	orders := router.Group("/orders")
	{
		orders.GET("", h.GetOrders)
		orders.POST("/reload", h.ReloadOrders)
		orders.PUT("/filter", h.SetFilter)
		orders.PUT("/:id/message", h.SetMessage)
		orders.POST("/:id/received", h.MarkReceived)
		orders.POST("/:id/cancel", h.CancelOrder)
	}
}

type SetFilterRequest struct {
	Status string `json:"status"`
}

type SetMessageRequest struct {
	Message string `json:"message"`
}

// @Summary Orders view; loads the orders on first visit
// @Tags orders
// @Produce json
// @Success 200 {object} Response{Data=usecase.OrdersView}
// @Failure 503 {object} Response
// @Router /orders [get]
func (h *OrderHandler) GetOrders(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "GetOrders")
	orders := sessionFrom(c).Orders

	callCtx, cancel := context.WithTimeout(c.Request.Context(), h.callTimeout)
	defer cancel()

	if err := orders.Mount(callCtx); err != nil {
		respondWithError(c, handlerLogger, err, orders.View())
		return
	}
	SuccessResponse(c, http.StatusOK, "Orders", orders.View())
}

// @Summary Fetch the orders again
// @Tags orders
// @Produce json
// @Success 200 {object} Response{Data=usecase.OrdersView}
// @Failure 503 {object} Response
// @Router /orders/reload [post]
func (h *OrderHandler) ReloadOrders(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "ReloadOrders")
	orders := sessionFrom(c).Orders

	callCtx, cancel := context.WithTimeout(c.Request.Context(), h.callTimeout)
	defer cancel()

	if err := orders.LoadOrders(callCtx); err != nil {
		respondWithError(c, handlerLogger, err, orders.View())
		return
	}
	SuccessResponse(c, http.StatusOK, "Orders reloaded", orders.View())
}

// @Summary Filter orders by status
// @Tags orders
// @Accept json
// @Produce json
// @Param input body SetFilterRequest true "Status, or empty for all"
// @Success 200 {object} Response{Data=usecase.OrdersView}
// @Failure 400 {object} Response
// @Router /orders/filter [put]
func (h *OrderHandler) SetFilter(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "SetFilter")
	orders := sessionFrom(c).Orders

	var req SetFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlerLogger.Warnf("Failed to bind request: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), orders.View())
		return
	}
	status, err := domain.ParseStatusFilter(req.Status)
	if err == nil {
		err = orders.SetFilter(status)
	}
	if err != nil {
		respondWithError(c, handlerLogger, err, orders.View())
		return
	}
	SuccessResponse(c, http.StatusOK, "Filter applied", orders.View())
}

// @Summary Store the note sent with the next action on an order
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param input body SetMessageRequest true "Message"
// @Success 200 {object} Response{Data=usecase.OrdersView}
// @Failure 400 {object} Response
// @Router /orders/{id}/message [put]
func (h *OrderHandler) SetMessage(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "SetMessage")
	orders := sessionFrom(c).Orders

	orderID, ok := orderIDParam(c, handlerLogger, orders)
	if !ok {
		return
	}
	var req SetMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlerLogger.Warnf("Failed to bind request: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error(), orders.View())
		return
	}
	orders.SetMessage(orderID, req.Message)
	SuccessResponse(c, http.StatusOK, "Message saved", orders.View())
}

// @Summary Mark an order as received
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} Response{Data=usecase.OrdersView}
// @Failure 502 {object} Response
// @Failure 503 {object} Response
// @Router /orders/{id}/received [post]
func (h *OrderHandler) MarkReceived(c *gin.Context) {
	h.runAction(c, "MarkReceived", usecase.MsgReceived, (*usecase.OrderFilterController).MarkReceived)
}

// @Summary Cancel an order
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} Response{Data=usecase.OrdersView}
// @Failure 502 {object} Response
// @Failure 503 {object} Response
// @Router /orders/{id}/cancel [post]
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	h.runAction(c, "CancelOrder", usecase.MsgCancelled, (*usecase.OrderFilterController).CancelOrder)
}

func (h *OrderHandler) runAction(
	c *gin.Context,
	name, successMessage string,
	action func(*usecase.OrderFilterController, context.Context, string) error,
) {
	handlerLogger := h.log.WithField("handler", name)
	orders := sessionFrom(c).Orders

	orderID, ok := orderIDParam(c, handlerLogger, orders)
	if !ok {
		return
	}

	callCtx, cancel := context.WithTimeout(c.Request.Context(), h.callTimeout)
	defer cancel()

	if err := action(orders, callCtx, orderID); err != nil {
		respondWithError(c, handlerLogger, err, orders.View())
		return
	}
	SuccessResponse(c, http.StatusOK, successMessage, orders.View())
}

func orderIDParam(c *gin.Context, logger logrus.FieldLogger, orders *usecase.OrderFilterController) (string, bool) {
	orderID := strings.TrimSpace(c.Param("id"))
	if orderID == "" {
		logger.Warn("Empty order ID parameter")
		ErrorResponse(c, http.StatusBadRequest, "Invalid order ID format", orders.View())
		return "", false
	}
	return orderID, true
}
