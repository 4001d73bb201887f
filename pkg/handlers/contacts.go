package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/spoonful/spoonful-backend/pkg/models"
	"github.com/spoonful/spoonful-backend/pkg/repository"
)

type ContactHandler struct {
	contacts *repository.ContactRepository
}

func NewContactHandler(contacts *repository.ContactRepository) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

func (h *ContactHandler) Submit(c *gin.Context) {
	var req models.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	contact := &models.Contact{Name: req.Name, Email: req.Email, Message: req.Message}
	if err := h.contacts.Insert(c.Request.Context(), contact); err != nil {
		logrus.WithField("email", req.Email).WithError(err).Error("Contact: Failed to store message")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Message sent successfully"})
}

func (h *ContactHandler) List(c *gin.Context) {
	messages, err := h.contacts.List(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("Contacts: Failed to list messages")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list messages"})
		return
	}
	c.JSON(http.StatusOK, messages)
}
