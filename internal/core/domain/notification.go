package domain

import "time"

type NotificationType string

const (
	NotificationOrderUpdate NotificationType = "ORDER_UPDATE"
	NotificationPayment     NotificationType = "PAYMENT"
	NotificationDelivery    NotificationType = "DELIVERY"
)

type Notification struct {
	ID          string
	UserID      uint64
	Title       string
	Message     string
	Type        NotificationType
	ReferenceID string
	Read        bool
	CreatedAt   time.Time
}
