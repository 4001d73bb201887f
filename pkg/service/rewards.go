package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/spoonful/spoonful-backend/pkg/models"
)

const (
	// redeemCost is the point price of any redemption.
	redeemCost = 100
	// redeemValue is the minted reward, in paise (10 currency units).
	redeemValue = 1000
)

// Stores required by the ledger; interfaces so tests can swap in-memory
// implementations.
type CouponStore interface {
	Insert(ctx context.Context, coupons []models.Coupon) error
	ClaimMaster(ctx context.Context, code, userID string) (*models.Coupon, error)
	InsertClaimed(ctx context.Context, cc *models.ClaimedCoupon) error
	MarkUsed(ctx context.Context, code, userID string) error
	GetClaimed(ctx context.Context, code, userID string, onlyNotUsed bool) (*models.ClaimedCoupon, error)
	ListClaimedByUser(ctx context.Context, userID string) ([]models.ClaimedCoupon, error)
}

type UserStore interface {
	Points(ctx context.Context, userID string) (int64, error)
	CreditPoints(ctx context.Context, userID string, points int64) error
	DebitPoints(ctx context.Context, userID string, points int64) error
}

type CashbackStore interface {
	Insert(ctx context.Context, req *models.CashbackRequest) error
}

// RewardService owns point balances and coupon claim/use transitions.
type RewardService struct {
	coupons  CouponStore
	users    UserStore
	cashback CashbackStore
}

func NewRewardService(coupons CouponStore, users UserStore, cashback CashbackStore) *RewardService {
	return &RewardService{coupons: coupons, users: users, cashback: cashback}
}

// Claim takes the master coupon for the caller (first claim wins) and records
// a ClaimedCoupon. Points rewards are credited immediately and the claim
// marked Used in the same step; there is no later "use" action for them.
func (s *RewardService) Claim(ctx context.Context, code, userID string) (*models.ClaimedCoupon, error) {
	master, err := s.coupons.ClaimMaster(ctx, code, userID)
	if err != nil {
		return nil, err
	}

	cc := &models.ClaimedCoupon{
		UserID:      userID,
		Code:        master.Code,
		RewardType:  master.RewardType,
		RewardValue: master.RewardValue,
		Status:      models.ClaimNotUsed,
		ClaimedAt:   time.Now(),
	}
	if err := s.coupons.InsertClaimed(ctx, cc); err != nil {
		return nil, err
	}

	if master.RewardType == models.RewardPoints {
		if err := s.users.CreditPoints(ctx, userID, master.RewardValue.Amount); err != nil {
			return nil, fmt.Errorf("failed to credit points: %w", err)
		}
		if err := s.coupons.MarkUsed(ctx, code, userID); err != nil {
			return nil, err
		}
		cc.Status = models.ClaimUsed

		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"code":    code,
			"points":  master.RewardValue.Amount,
		}).Info("credited points reward")
	}

	return cc, nil
}

// MarkUsed transitions the claim NotUsed -> Used. Idempotent; gateways retry
// payment confirmations.
func (s *RewardService) MarkUsed(ctx context.Context, code, userID string) error {
	return s.coupons.MarkUsed(ctx, code, userID)
}

// Verify returns the caller's claimed, not-yet-used coupon for a code.
func (s *RewardService) Verify(ctx context.Context, code, userID string) (*models.ClaimedCoupon, error) {
	return s.coupons.GetClaimed(ctx, code, userID, true)
}

func (s *RewardService) ClaimedByUser(ctx context.Context, userID string) ([]models.ClaimedCoupon, error) {
	return s.coupons.ListClaimedByUser(ctx, userID)
}

func (s *RewardService) Points(ctx context.Context, userID string) (int64, error) {
	return s.users.Points(ctx, userID)
}

func (s *RewardService) InsertCoupons(ctx context.Context, coupons []models.Coupon) error {
	return s.coupons.Insert(ctx, coupons)
}

// RedeemDiscount debits 100 points and mints a single-use discount coupon
// worth 10 currency units, pre-claimed by the caller. The debit carries the
// balance guard, so two concurrent redemptions cannot overdraw; a failed mint
// credits the points back so the redemption can be retried.
func (s *RewardService) RedeemDiscount(ctx context.Context, userID string) (string, error) {
	if err := s.users.DebitPoints(ctx, userID, redeemCost); err != nil {
		return "", err
	}

	code := newRedeemCode()
	coupon := models.Coupon{
		Code:        code,
		RewardType:  models.RewardDiscount,
		RewardValue: models.RewardValue{Amount: redeemValue},
		Claimed:     true,
		ClaimedBy:   userID,
		CreatedAt:   time.Now(),
	}
	if err := s.coupons.Insert(ctx, []models.Coupon{coupon}); err != nil {
		s.refundDebit(ctx, userID)
		return "", err
	}

	cc := &models.ClaimedCoupon{
		UserID:      userID,
		Code:        code,
		RewardType:  models.RewardDiscount,
		RewardValue: models.RewardValue{Amount: redeemValue},
		Status:      models.ClaimNotUsed,
		ClaimedAt:   time.Now(),
	}
	if err := s.coupons.InsertClaimed(ctx, cc); err != nil {
		s.refundDebit(ctx, userID)
		return "", err
	}

	return code, nil
}

// RedeemCashback debits 100 points and files a pending cashback request;
// approval happens elsewhere. A failed filing credits the points back.
func (s *RewardService) RedeemCashback(ctx context.Context, userID, upiID string) (*models.CashbackRequest, error) {
	if err := s.users.DebitPoints(ctx, userID, redeemCost); err != nil {
		return nil, err
	}

	req := &models.CashbackRequest{
		UserID:      userID,
		UPIID:       upiID,
		Amount:      redeemValue,
		Status:      models.CashbackPending,
		RequestedAt: time.Now(),
	}
	if err := s.cashback.Insert(ctx, req); err != nil {
		s.refundDebit(ctx, userID)
		return nil, err
	}
	return req, nil
}

// refundDebit returns a redemption debit after the follow-up write failed. The
// credit has no precondition to lose, so a failure here is an inconsistency
// worth an operator's attention, not the caller's.
func (s *RewardService) refundDebit(ctx context.Context, userID string) {
	if err := s.users.CreditPoints(ctx, userID, redeemCost); err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"points":  redeemCost,
		}).WithError(err).Error("failed to refund points after redemption failure")
	}
}

func newRedeemCode() string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("SPD-%05d", time.Now().UnixNano()%100000)
	}
	return "SPD-" + strings.ToUpper(hex.EncodeToString(buf))
}
