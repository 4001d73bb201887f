package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/spoonful/spoonful-backend/pkg/models"
	"github.com/spoonful/spoonful-backend/pkg/repository"
)

type AddressHandler struct {
	addresses *repository.AddressRepository
}

func NewAddressHandler(addresses *repository.AddressRepository) *AddressHandler {
	return &AddressHandler{addresses: addresses}
}

func (h *AddressHandler) Add(c *gin.Context) {
	var req models.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	address := &models.Address{
		UserID:      userID(c),
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Pincode:     req.Pincode,
		Area:        req.Area,
		City:        req.City,
		State:       req.State,
	}
	if err := h.addresses.Add(c.Request.Context(), address); err != nil {
		logrus.WithField("user_id", userID(c)).WithError(err).Error("AddAddress: Failed to insert address")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add address"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Address added successfully", "address": address})
}

func (h *AddressHandler) List(c *gin.Context) {
	addresses, err := h.addresses.ListByUser(c.Request.Context(), userID(c))
	if err != nil {
		logrus.WithField("user_id", userID(c)).WithError(err).Error("ListAddresses: Failed to list addresses")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list addresses"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "addresses": addresses})
}

func (h *AddressHandler) Get(c *gin.Context) {
	address, err := h.addresses.Get(c.Request.Context(), c.Param("id"), userID(c))
	if err != nil {
		if errors.Is(err, repository.ErrAddressNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
			return
		}
		logrus.WithField("address_id", c.Param("id")).WithError(err).Error("GetAddress: Failed to get address")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get address"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "address": address})
}

func (h *AddressHandler) Update(c *gin.Context) {
	var req models.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	address, err := h.addresses.Update(c.Request.Context(), c.Param("id"), userID(c), &req)
	if err != nil {
		if errors.Is(err, repository.ErrAddressNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
			return
		}
		logrus.WithField("address_id", c.Param("id")).WithError(err).Error("UpdateAddress: Failed to update address")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update address"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Address updated", "address": address})
}

func (h *AddressHandler) Delete(c *gin.Context) {
	if err := h.addresses.Delete(c.Request.Context(), c.Param("id"), userID(c)); err != nil {
		if errors.Is(err, repository.ErrAddressNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
			return
		}
		logrus.WithField("address_id", c.Param("id")).WithError(err).Error("DeleteAddress: Failed to delete address")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete address"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Address deleted"})
}
