package domain

import (
	"fmt"
	"time"
)

// DeliveryInfo is attached to an order once it enters delivery. Address and
// phone are required; the rest is optional.
type DeliveryInfo struct {
	Address               string
	Phone                 string
	TrackingNumber        string
	EstimatedDeliveryTime *time.Time
	DeliveryNotes         string
}

func NewDeliveryInfo(address, phone string) (DeliveryInfo, error) {
	if address == "" {
		return DeliveryInfo{}, fmt.Errorf("%w: delivery address is empty", ErrValidation)
	}
	if phone == "" {
		return DeliveryInfo{}, fmt.Errorf("%w: delivery phone is empty", ErrValidation)
	}
	return DeliveryInfo{Address: address, Phone: phone}, nil
}
