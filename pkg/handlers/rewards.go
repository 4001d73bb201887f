package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/spoonful/spoonful-backend/pkg/models"
	"github.com/spoonful/spoonful-backend/pkg/repository"
	"github.com/spoonful/spoonful-backend/pkg/service"
)

type RewardHandler struct {
	rewards *service.RewardService
}

func NewRewardHandler(rewards *service.RewardService) *RewardHandler {
	return &RewardHandler{rewards: rewards}
}

func (h *RewardHandler) Claim(c *gin.Context) {
	var req models.ClaimCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithField("error", err).Warn("ClaimCoupon: Invalid request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	claimed, err := h.rewards.Claim(c.Request.Context(), req.Code, userID(c))
	if err != nil {
		log := logrus.WithFields(logrus.Fields{
			"user_id": userID(c),
			"code":    req.Code,
		})

		switch {
		case errors.Is(err, repository.ErrCouponNotFound):
			log.Warn("ClaimCoupon: Coupon not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Coupon not found"})
		case errors.Is(err, repository.ErrAlreadyClaimed):
			log.Warn("ClaimCoupon: Coupon already claimed")
			c.JSON(http.StatusConflict, gin.H{"error": "Coupon already claimed"})
		default:
			log.WithError(err).Error("ClaimCoupon: Failed to claim coupon")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to claim coupon"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Coupon claimed successfully",
		"reward_type": claimed.RewardType,
		"coupon":      claimed,
	})
}

// Verify returns the caller's claimed, unused coupon so the checkout can
// apply it.
func (h *RewardHandler) Verify(c *gin.Context) {
	var req models.VerifyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	claimed, err := h.rewards.Verify(c.Request.Context(), req.Code, userID(c))
	if err != nil {
		if errors.Is(err, repository.ErrCouponNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Coupon not found or already used"})
			return
		}
		logrus.WithField("code", req.Code).WithError(err).Error("VerifyCoupon: Failed to verify coupon")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify coupon"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "coupon": claimed})
}

func (h *RewardHandler) Claimed(c *gin.Context) {
	claimed, err := h.rewards.ClaimedByUser(c.Request.Context(), userID(c))
	if err != nil {
		logrus.WithField("user_id", userID(c)).WithError(err).Error("ClaimedCoupons: Failed to list coupons")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list claimed coupons"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "claimed_coupons": claimed})
}

func (h *RewardHandler) Points(c *gin.Context) {
	points, err := h.rewards.Points(c.Request.Context(), userID(c))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		logrus.WithField("user_id", userID(c)).WithError(err).Error("Points: Failed to fetch balance")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch points"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "spoon_points": points})
}

func (h *RewardHandler) RedeemDiscount(c *gin.Context) {
	code, err := h.rewards.RedeemDiscount(c.Request.Context(), userID(c))
	if err != nil {
		log := logrus.WithField("user_id", userID(c))

		switch {
		case errors.Is(err, repository.ErrInsufficientPoints):
			log.Warn("RedeemDiscount: Not enough points")
			c.JSON(http.StatusBadRequest, gin.H{"error": "Not enough points"})
		case errors.Is(err, repository.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			log.WithError(err).Error("RedeemDiscount: Failed to redeem points")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to redeem points"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Coupon created", "code": code})
}

func (h *RewardHandler) RedeemCashback(c *gin.Context) {
	var req models.RedeemCashbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	cashback, err := h.rewards.RedeemCashback(c.Request.Context(), userID(c), req.UPIID)
	if err != nil {
		log := logrus.WithField("user_id", userID(c))

		switch {
		case errors.Is(err, repository.ErrInsufficientPoints):
			log.Warn("RedeemCashback: Not enough points")
			c.JSON(http.StatusBadRequest, gin.H{"error": "Not enough points"})
		case errors.Is(err, repository.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			log.WithError(err).Error("RedeemCashback: Failed to redeem points")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to redeem points"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cashback request received", "request": cashback})
}

// InsertCoupons is the operator batch insert.
func (h *RewardHandler) InsertCoupons(c *gin.Context) {
	var coupons []models.Coupon
	if err := c.ShouldBindJSON(&coupons); err != nil || len(coupons) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data format (expecting array)"})
		return
	}

	if err := h.rewards.InsertCoupons(c.Request.Context(), coupons); err != nil {
		if errors.Is(err, repository.ErrCouponExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "Coupon already exists"})
			return
		}
		logrus.WithError(err).Error("InsertCoupons: Failed to insert coupons")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to insert coupons"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Coupons inserted successfully"})
}
