package http

import (
	"context"
	"net/http"
	"time"

	"github.com/freshmart/backend/internal/core/domain"
	"github.com/freshmart/backend/internal/core/port"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type OrderHandler struct {
	Handler
	service  port.OrderService
	checkout port.CheckoutService
}

func NewOrderHandler(service port.OrderService, checkout port.CheckoutService, logger *zap.Logger) (*OrderHandler, error) {
	return &OrderHandler{
		Handler:  *NewHandler(logger),
		service:  service,
		checkout: checkout,
	}, nil
}

type orderLineRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required"`
}

type createOrderRequest struct {
	Items []orderLineRequest `json:"items" binding:"required"`
}

type orderItemResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	UnitPrice   string `json:"unit_price"`
	Quantity    int64  `json:"quantity"`
	Unit        string `json:"unit"`
	Subtotal    string `json:"subtotal"`
}

type deliveryResponse struct {
	Address               string     `json:"address"`
	Phone                 string     `json:"phone"`
	TrackingNumber        string     `json:"tracking_number,omitempty"`
	EstimatedDeliveryTime *time.Time `json:"estimated_delivery_time,omitempty"`
	DeliveryNotes         string     `json:"delivery_notes,omitempty"`
}

type orderResponse struct {
	ID        string              `json:"id"`
	Status    string              `json:"status"`
	Items     []orderItemResponse `json:"items"`
	Total     string              `json:"total"`
	Delivery  *deliveryResponse   `json:"delivery,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

func newOrderResponse(order *domain.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(order.Items()))
	for _, item := range order.Items() {
		items = append(items, orderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice.String(),
			Quantity:    item.Quantity.Value(),
			Unit:        item.Quantity.Unit(),
			Subtotal:    item.Subtotal.String(),
		})
	}

	resp := orderResponse{
		ID:        order.ID,
		Status:    string(order.Status),
		Items:     items,
		Total:     order.Total.String(),
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
	}
	if order.Delivery != nil {
		resp.Delivery = newDeliveryResponse(*order.Delivery)
	}
	return resp
}

func newDeliveryResponse(info domain.DeliveryInfo) *deliveryResponse {
	return &deliveryResponse{
		Address:               info.Address,
		Phone:                 info.Phone,
		TrackingNumber:        info.TrackingNumber,
		EstimatedDeliveryTime: info.EstimatedDeliveryTime,
		DeliveryNotes:         info.DeliveryNotes,
	}
}

func (oh *OrderHandler) CreateOrder(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	req := createOrderRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		oh.handleValidationError(ctx, err)
		return
	}

	lines := make([]domain.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, domain.OrderLine{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	order, err := oh.service.PlaceOrder(ctx, userID, lines)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccessWithStatus(ctx, newOrderResponse(order), http.StatusCreated)
}

func (oh *OrderHandler) ListOrdersByUser(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	list, err := oh.service.GetOrdersByUser(ctx, userID)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	result := make([]orderResponse, 0, len(list))
	for _, o := range list {
		result = append(result, newOrderResponse(o))
	}

	oh.handleSuccess(ctx, result)
}

func (oh *OrderHandler) GetOrder(ctx *gin.Context) {
	order, err := oh.service.GetOrder(ctx, ctx.Param("order"))
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	if order.UserID != getAuthPayload(ctx).UserID {
		oh.handleError(ctx, domain.ErrForbidden)
		return
	}

	oh.handleSuccess(ctx, newOrderResponse(order))
}

// Checkout runs the full checkout pipeline for a pending order.
func (oh *OrderHandler) Checkout(ctx *gin.Context) {
	order, err := oh.checkout.ProcessCheckout(ctx, ctx.Param("order"))
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccess(ctx, newOrderResponse(order))
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (oh *OrderHandler) UpdateOrderStatus(ctx *gin.Context) {
	req := updateStatusRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		oh.handleValidationError(ctx, err)
		return
	}

	order, err := oh.service.UpdateOrderStatus(ctx, ctx.Param("order"), domain.OrderStatus(req.Status))
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccess(ctx, newOrderResponse(order))
}

type deliveryInfoRequest struct {
	Address               string     `json:"address" binding:"required"`
	Phone                 string     `json:"phone" binding:"required"`
	TrackingNumber        string     `json:"tracking_number"`
	EstimatedDeliveryTime *time.Time `json:"estimated_delivery_time"`
	DeliveryNotes         string     `json:"delivery_notes"`
}

func (oh *OrderHandler) UpdateDeliveryInfo(ctx *gin.Context) {
	req := deliveryInfoRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		oh.handleValidationError(ctx, err)
		return
	}

	info, err := domain.NewDeliveryInfo(req.Address, req.Phone)
	if err != nil {
		oh.handleValidationError(ctx, err)
		return
	}
	info.TrackingNumber = req.TrackingNumber
	info.EstimatedDeliveryTime = req.EstimatedDeliveryTime
	info.DeliveryNotes = req.DeliveryNotes

	order, err := oh.service.UpdateDeliveryInfo(ctx, ctx.Param("order"), info)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccess(ctx, newOrderResponse(order))
}

func (oh *OrderHandler) CancelOrder(ctx *gin.Context) {
	order, err := oh.service.CancelOrder(ctx, ctx.Param("order"))
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccess(ctx, newOrderResponse(order))
}

func (oh *OrderHandler) TrackOrder(ctx *gin.Context) {
	info, err := oh.service.TrackOrder(ctx, ctx.Param("order"))
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccess(ctx, newDeliveryResponse(*info))
}

type assignRequest struct {
	UserID uint64 `json:"user_id" binding:"required"`
}

func (oh *OrderHandler) AssignSeller(ctx *gin.Context) {
	oh.handleAssign(ctx, oh.service.AssignSeller)
}

func (oh *OrderHandler) AssignDriver(ctx *gin.Context) {
	oh.handleAssign(ctx, oh.service.AssignDriver)
}

func (oh *OrderHandler) handleAssign(ctx *gin.Context,
	assign func(ctx context.Context, orderID string, userID uint64) (*domain.Order, error)) {
	req := assignRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		oh.handleValidationError(ctx, err)
		return
	}

	order, err := assign(ctx, ctx.Param("order"), req.UserID)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccess(ctx, newOrderResponse(order))
}
