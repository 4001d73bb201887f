package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/spoonful/spoonful-backend/pkg/models"
	"github.com/spoonful/spoonful-backend/pkg/repository"
)

type ProductHandler struct {
	products *repository.ProductRepository
}

func NewProductHandler(products *repository.ProductRepository) *ProductHandler {
	return &ProductHandler{products: products}
}

func (h *ProductHandler) Add(c *gin.Context) {
	var req models.AddProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithField("error", err).Warn("AddProduct: Invalid request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	product := &models.Product{
		Name:        req.Name,
		Images:      req.Images,
		Category:    req.Category,
		Description: req.Description,
		NewPrice:    req.NewPrice,
		OldPrice:    req.OldPrice,
	}
	if err := h.products.Add(c.Request.Context(), product); err != nil {
		logrus.WithField("name", req.Name).WithError(err).Error("AddProduct: Failed to insert product")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add product"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "product": product})
}

func (h *ProductHandler) Remove(c *gin.Context) {
	seqID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	if err := h.products.Remove(c.Request.Context(), seqID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		logrus.WithField("seq_id", seqID).WithError(err).Error("RemoveProduct: Failed to delete product")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.products.List(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("ListProducts: Failed to list products")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.products.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		logrus.WithField("product_id", c.Param("id")).WithError(err).Error("GetProduct: Failed to get product")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get product"})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) AddReview(c *gin.Context) {
	var req models.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	productID := c.Param("id")
	err := h.products.AddReview(c.Request.Context(), productID, userID(c), req.Rating, req.Comment)
	if err != nil {
		log := logrus.WithFields(logrus.Fields{
			"product_id": productID,
			"user_id":    userID(c),
		})

		switch {
		case errors.Is(err, repository.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		case errors.Is(err, repository.ErrAlreadyReviewed):
			log.Warn("AddReview: Duplicate review")
			c.JSON(http.StatusConflict, gin.H{"error": "You already reviewed this product"})
		default:
			log.WithError(err).Error("AddReview: Failed to add review")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add review"})
		}
		return
	}

	product, err := h.products.GetProduct(c.Request.Context(), productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get product"})
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) UpdateReview(c *gin.Context) {
	var req models.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	err := h.products.UpdateReview(c.Request.Context(), c.Param("id"), userID(c), req.Rating, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		case errors.Is(err, repository.ErrReviewNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		default:
			logrus.WithField("product_id", c.Param("id")).WithError(err).Error("UpdateReview: Failed to update review")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update review"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Review updated"})
}

func (h *ProductHandler) DeleteReview(c *gin.Context) {
	err := h.products.DeleteReview(c.Request.Context(), c.Param("id"), c.Param("reviewId"), userID(c))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		case errors.Is(err, repository.ErrReviewNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		default:
			logrus.WithField("product_id", c.Param("id")).WithError(err).Error("DeleteReview: Failed to delete review")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete review"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Review deleted"})
}
