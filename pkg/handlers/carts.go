package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/spoonful/spoonful-backend/pkg/models"
	"github.com/spoonful/spoonful-backend/pkg/repository"
)

type CartHandler struct {
	carts *repository.CartRepository
}

func NewCartHandler(carts *repository.CartRepository) *CartHandler {
	return &CartHandler{carts: carts}
}

func (h *CartHandler) Add(c *gin.Context) {
	var req models.CartAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	cart, err := h.carts.AddItem(c.Request.Context(), userID(c), req.ProductID, req.Quantity)
	if err != nil {
		logrus.WithField("user_id", userID(c)).WithError(err).Error("CartAdd: Failed to add item")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Item added to cart", "cart": cart})
}

func (h *CartHandler) Update(c *gin.Context) {
	var req models.CartUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	cart, err := h.carts.UpdateItem(c.Request.Context(), userID(c), req.ProductID, req.Quantity)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not in cart"})
			return
		}
		logrus.WithField("user_id", userID(c)).WithError(err).Error("CartUpdate: Failed to update item")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart updated", "cart": cart})
}

func (h *CartHandler) Remove(c *gin.Context) {
	var req models.CartUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	cart, err := h.carts.RemoveItem(c.Request.Context(), userID(c), req.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
			return
		}
		logrus.WithField("user_id", userID(c)).WithError(err).Error("CartRemove: Failed to remove item")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Item removed from cart", "cart": cart})
}

func (h *CartHandler) Get(c *gin.Context) {
	cart, err := h.carts.Get(c.Request.Context(), userID(c))
	if err != nil {
		logrus.WithField("user_id", userID(c)).WithError(err).Error("CartGet: Failed to get cart")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "items": cart.Items})
}
