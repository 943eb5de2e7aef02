package http

import (
	"errors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ilindan-dev/fanout-notifier/internal/domain/model"
	repo "github.com/ilindan-dev/fanout-notifier/internal/domain/repository"
	"github.com/ilindan-dev/fanout-notifier/internal/service"
	"github.com/rs/zerolog"
	"net/http"
)

type Handlers struct {
	service *service.NotificationService
	logger  zerolog.Logger
}

// NewHandlers creates a new instance of Handlers.
func NewHandlers(service *service.NotificationService, logger *zerolog.Logger) *Handlers {
	return &Handlers{
		service: service,
		logger:  logger.With().Str("layer", "http_handler").Logger(),
	}
}

// RegisterRoutes sets up the routing for the notification API.
func (h *Handlers) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	{
		api.POST("/notifications", h.CreateNotification)
		api.GET("/notifications/:id/deliveries", h.ListDeliveries)
		api.GET("/deliveries/:id", h.GetDeliveryByID)
	}
}

// CreateNotification dispatches a notification to every configured channel.
// A channel failure answers 502 with the deliveries made before the failing channel.
func (h *Handlers) CreateNotification(c *gin.Context) {
	var req CreateNotificationRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn().Err(err).Msg("invalid request body")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	ctx := c.Request.Context()
	notification, sendErr := h.service.Notify(ctx, req.Recipient, req.Content)
	if notification == nil {
		h.logger.Error().Err(sendErr).Msg("failed to create notification")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to create notification"})
		return
	}

	deliveries, err := h.service.ListDeliveries(ctx, notification.ID)
	if err != nil {
		h.logger.Error().Err(err).Stringer("id", notification.ID).Msg("failed to list deliveries")
	}

	resp := toNotificationResponse(notification, deliveries)
	if sendErr != nil {
		resp.Error = sendErr.Error()
		c.JSON(http.StatusBadGateway, resp)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// ListDeliveries handles the HTTP request to list the deliveries of a notification.
func (h *Handlers) ListDeliveries(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid notification ID format"})
		return
	}

	deliveries, err := h.service.ListDeliveries(c.Request.Context(), id)
	if err != nil {
		h.logger.Error().Err(err).Stringer("id", id).Msg("failed to list deliveries")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to retrieve deliveries"})
		return
	}

	c.JSON(http.StatusOK, toDeliveryResponses(deliveries))
}

// GetDeliveryByID handles the HTTP request to retrieve a delivery.
func (h *Handlers) GetDeliveryByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid delivery ID format"})
		return
	}

	delivery, err := h.service.GetDelivery(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
			return
		}
		h.logger.Error().Err(err).Stringer("id", id).Msg("failed to get delivery by id")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to retrieve delivery"})
		return
	}

	c.JSON(http.StatusOK, toDeliveryResponse(delivery))
}

// toNotificationResponse is a helper function to map the domain model to the DTO.
func toNotificationResponse(n *model.Notification, deliveries []*model.Delivery) NotificationResponse {
	return NotificationResponse{
		ID:         n.ID,
		Recipient:  n.Recipient,
		CreatedAt:  n.CreatedAt,
		Deliveries: toDeliveryResponses(deliveries),
	}
}

func toDeliveryResponses(deliveries []*model.Delivery) []DeliveryResponse {
	out := make([]DeliveryResponse, 0, len(deliveries))
	for _, d := range deliveries {
		out = append(out, toDeliveryResponse(d))
	}
	return out
}

func toDeliveryResponse(d *model.Delivery) DeliveryResponse {
	return DeliveryResponse{
		ID:             d.ID,
		NotificationID: d.NotificationID,
		Channel:        string(d.Medium),
		Recipient:      d.Recipient,
		Content:        d.Content,
		DeliveredAt:    d.DeliveredAt,
	}
}
