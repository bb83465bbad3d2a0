package http

import (
	"context"
	"net/http"
	"time"

	"github.com/freshmart/backend/internal/core/domain"
	"github.com/freshmart/backend/internal/core/port"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type NotificationHandler struct {
	Handler
	service  port.NotificationService
	upgrader websocket.Upgrader
}

func NewNotificationHandler(service port.NotificationService, logger *zap.Logger) (*NotificationHandler, error) {
	return &NotificationHandler{
		Handler: *NewHandler(logger),
		service: service,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}, nil
}

type notificationResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	Type        string    `json:"type"`
	ReferenceID string    `json:"reference_id,omitempty"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"created_at"`
}

func newNotificationResponse(n *domain.Notification) notificationResponse {
	return notificationResponse{
		ID:          n.ID,
		Title:       n.Title,
		Message:     n.Message,
		Type:        string(n.Type),
		ReferenceID: n.ReferenceID,
		Read:        n.Read,
		CreatedAt:   n.CreatedAt,
	}
}

func (nh *NotificationHandler) ListNotifications(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	list, err := nh.service.ListNotifications(ctx, userID)
	if err != nil {
		nh.handleError(ctx, err)
		return
	}

	result := make([]notificationResponse, 0, len(list))
	for _, n := range list {
		result = append(result, newNotificationResponse(n))
	}

	nh.handleSuccess(ctx, result)
}

func (nh *NotificationHandler) UnreadCount(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	count, err := nh.service.GetUnreadNotificationCount(ctx, userID)
	if err != nil {
		nh.handleError(ctx, err)
		return
	}

	nh.handleSuccess(ctx, struct {
		Unread int64 `json:"unread"`
	}{Unread: count})
}

func (nh *NotificationHandler) MarkAsRead(ctx *gin.Context) {
	err := nh.service.MarkNotificationAsRead(ctx, ctx.Param("notification"))
	if err != nil {
		nh.handleError(ctx, err)
		return
	}

	nh.handleSuccessWithStatus(ctx, nil, http.StatusNoContent)
}

// Stream upgrades to a WebSocket and pushes the user's stored notifications
// followed by the live feed until the client disconnects.
func (nh *NotificationHandler) Stream(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	conn, err := nh.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		nh.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	streamCtx, cancel := context.WithCancel(ctx.Request.Context())
	defer cancel()

	stream, err := nh.service.StreamUserNotifications(streamCtx, userID)
	if err != nil {
		nh.logger.Error("Notification stream", zap.Uint64("user", userID), zap.Error(err))
		return
	}

	// Reader loop exists only to detect the client going away.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for n := range stream {
		if err := conn.WriteJSON(newNotificationResponse(n)); err != nil {
			nh.logger.Debug("WebSocket write failed", zap.Uint64("user", userID), zap.Error(err))
			return
		}
	}
}
