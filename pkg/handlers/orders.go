package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/spoonful/spoonful-backend/pkg/models"
	"github.com/spoonful/spoonful-backend/pkg/payment"
	"github.com/spoonful/spoonful-backend/pkg/pricing"
	"github.com/spoonful/spoonful-backend/pkg/repository"
	"github.com/spoonful/spoonful-backend/pkg/service"
)

type OrderHandler struct {
	orders *service.OrderService
}

func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithField("error", err).Warn("CreateOrder: Invalid request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	lines := make([]pricing.Line, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, pricing.Line{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	order, err := h.orders.Create(c.Request.Context(), userID(c), service.CreateOrderInput{
		AddressID:      req.AddressID,
		Items:          lines,
		PaymentMethod:  req.PaymentMethod,
		CouponCode:     req.CouponCode,
		GatewayOrderID: req.RazorpayOrderID,
	})
	if err != nil {
		log := logrus.WithFields(logrus.Fields{
			"user_id":        userID(c),
			"payment_method": req.PaymentMethod,
		})

		switch {
		case errors.Is(err, service.ErrValidation), errors.Is(err, pricing.ErrInvalidQuantity):
			log.Warn("CreateOrder: Invalid order data")
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, repository.ErrProductNotFound):
			log.Warn("CreateOrder: Product not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		case errors.Is(err, repository.ErrCouponNotFound):
			log.Warn("CreateOrder: Coupon not found or already used")
			c.JSON(http.StatusNotFound, gin.H{"error": "Coupon not found or already used"})
		case errors.Is(err, repository.ErrDuplicateGatewayOrder):
			log.Warn("CreateOrder: Duplicate gateway order")
			c.JSON(http.StatusConflict, gin.H{"error": "Duplicate Razorpay order"})
		case errors.Is(err, payment.ErrGateway):
			log.WithError(err).Error("CreateOrder: Gateway failure")
			c.JSON(http.StatusBadGateway, gin.H{"error": "Payment gateway unavailable"})
		default:
			log.WithError(err).Error("CreateOrder: Failed to create order")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "order": order})
}

func (h *OrderHandler) ConfirmPayment(c *gin.Context) {
	var req models.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithField("error", err).Warn("ConfirmPayment: Invalid request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	order, err := h.orders.ConfirmPayment(c.Request.Context(), service.ConfirmPaymentInput{
		OrderID:          req.OrderID,
		GatewayOrderID:   req.RazorpayOrderID,
		GatewayPaymentID: req.RazorpayPaymentID,
		GatewaySignature: req.RazorpaySignature,
	})
	if err != nil {
		log := logrus.WithFields(logrus.Fields{
			"order_id":         req.OrderID,
			"gateway_order_id": req.RazorpayOrderID,
		})

		switch {
		case errors.Is(err, service.ErrInvalidSignature):
			log.Warn("ConfirmPayment: Invalid signature")
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signature"})
		case errors.Is(err, repository.ErrOrderNotFound):
			log.Warn("ConfirmPayment: Order not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		default:
			log.WithError(err).Error("ConfirmPayment: Failed to confirm payment")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm payment"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Payment verified and status updated", "order": order})
}

func (h *OrderHandler) MyOrders(c *gin.Context) {
	orders, err := h.orders.ListByUser(c.Request.Context(), userID(c))
	if err != nil {
		logrus.WithField("user_id", userID(c)).WithError(err).Error("MyOrders: Failed to list orders")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}

func (h *OrderHandler) AdminList(c *gin.Context) {
	orders, err := h.orders.ListAll(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("AdminOrders: Failed to list orders")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	orderID := c.Param("id")
	if err := h.orders.UpdateStatus(c.Request.Context(), orderID, req.Status); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		logrus.WithField("order_id", orderID).WithError(err).Error("UpdateStatus: Failed to update order")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order status updated"})
}
