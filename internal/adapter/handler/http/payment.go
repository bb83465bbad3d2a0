package http

import (
	"time"

	"github.com/freshmart/backend/internal/core/domain"
	"github.com/freshmart/backend/internal/core/port"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	Handler
	service port.PaymentService
}

func NewPaymentHandler(service port.PaymentService, logger *zap.Logger) (*PaymentHandler, error) {
	return &PaymentHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type paymentResponse struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	Amount    string    `json:"amount"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newPaymentResponse(payment *domain.Payment) paymentResponse {
	return paymentResponse{
		ID:        payment.ID,
		OrderID:   payment.OrderID,
		Amount:    payment.Amount.String(),
		Status:    string(payment.Status),
		CreatedAt: payment.CreatedAt,
		UpdatedAt: payment.UpdatedAt,
	}
}

func (ph *PaymentHandler) GetPaymentByOrder(ctx *gin.Context) {
	payment, err := ph.service.GetPaymentByOrder(ctx, ctx.Param("order"))
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	if payment.UserID != getAuthPayload(ctx).UserID {
		ph.handleError(ctx, domain.ErrForbidden)
		return
	}

	ph.handleSuccess(ctx, newPaymentResponse(payment))
}

func (ph *PaymentHandler) RefundPayment(ctx *gin.Context) {
	payment, err := ph.service.RefundPayment(ctx, ctx.Param("order"))
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	ph.handleSuccess(ctx, newPaymentResponse(payment))
}
