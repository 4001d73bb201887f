package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spoonful/spoonful-backend/pkg/models"
	"github.com/spoonful/spoonful-backend/pkg/repository"
)

func newRewardFixture() (*RewardService, *memCoupons, *memUsers, *memCashback) {
	coupons := newMemCoupons()
	users := newMemUsers()
	cashback := &memCashback{}
	return NewRewardService(coupons, users, cashback), coupons, users, cashback
}

func seedCoupon(t *testing.T, coupons *memCoupons, code string, rt models.RewardType, value models.RewardValue) {
	t.Helper()
	err := coupons.Insert(context.Background(), []models.Coupon{{
		Code:        code,
		RewardType:  rt,
		RewardValue: value,
	}})
	require.NoError(t, err)
}

func TestClaimFirstClaimWins(t *testing.T) {
	svc, coupons, users, _ := newRewardFixture()
	seedCoupon(t, coupons, "FLASH50", models.RewardDiscount, models.RewardValue{Amount: 5000})
	for i := 0; i < 20; i++ {
		users.set(fmt.Sprintf("user-%d", i), 0)
	}

	var wg sync.WaitGroup
	results := make([]error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.Claim(context.Background(), "FLASH50", fmt.Sprintf("user-%d", i))
		}(i)
	}
	wg.Wait()

	won := 0
	for _, err := range results {
		if err == nil {
			won++
		} else {
			assert.ErrorIs(t, err, repository.ErrAlreadyClaimed)
		}
	}
	assert.Equal(t, 1, won)
}

func TestClaimSameUserTwiceRejected(t *testing.T) {
	svc, coupons, users, _ := newRewardFixture()
	seedCoupon(t, coupons, "ONCE", models.RewardDiscount, models.RewardValue{Amount: 100})
	users.set("u1", 0)

	_, err := svc.Claim(context.Background(), "ONCE", "u1")
	require.NoError(t, err)

	_, err = svc.Claim(context.Background(), "ONCE", "u1")
	assert.ErrorIs(t, err, repository.ErrAlreadyClaimed)
}

func TestClaimUnknownCode(t *testing.T) {
	svc, _, users, _ := newRewardFixture()
	users.set("u1", 0)

	_, err := svc.Claim(context.Background(), "GHOST", "u1")
	assert.ErrorIs(t, err, repository.ErrCouponNotFound)
}

func TestClaimPointsCreditedImmediately(t *testing.T) {
	svc, coupons, users, _ := newRewardFixture()
	seedCoupon(t, coupons, "PTS50", models.RewardPoints, models.RewardValue{Amount: 50})
	users.set("u1", 10)

	cc, err := svc.Claim(context.Background(), "PTS50", "u1")
	require.NoError(t, err)
	assert.Equal(t, models.ClaimUsed, cc.Status)

	balance, err := svc.Points(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(60), balance)

	// A points claim leaves nothing to verify later.
	_, err = svc.Verify(context.Background(), "PTS50", "u1")
	assert.ErrorIs(t, err, repository.ErrCouponNotFound)
}

func TestClaimDiscountStaysNotUsed(t *testing.T) {
	svc, coupons, users, _ := newRewardFixture()
	seedCoupon(t, coupons, "OFF20", models.RewardDiscount, models.RewardValue{Amount: 2000})
	users.set("u1", 0)

	cc, err := svc.Claim(context.Background(), "OFF20", "u1")
	require.NoError(t, err)
	assert.Equal(t, models.ClaimNotUsed, cc.Status)

	got, err := svc.Verify(context.Background(), "OFF20", "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(2000), got.RewardValue.Amount)

	balance, err := svc.Points(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)
}

func TestMarkUsedIdempotent(t *testing.T) {
	svc, coupons, users, _ := newRewardFixture()
	seedCoupon(t, coupons, "OFF20", models.RewardDiscount, models.RewardValue{Amount: 2000})
	users.set("u1", 0)

	_, err := svc.Claim(context.Background(), "OFF20", "u1")
	require.NoError(t, err)

	require.NoError(t, svc.MarkUsed(context.Background(), "OFF20", "u1"))
	require.NoError(t, svc.MarkUsed(context.Background(), "OFF20", "u1"))

	cc, err := coupons.GetClaimed(context.Background(), "OFF20", "u1", false)
	require.NoError(t, err)
	assert.Equal(t, models.ClaimUsed, cc.Status)
}

func TestRedeemDiscount(t *testing.T) {
	svc, _, users, _ := newRewardFixture()
	users.set("u1", 95)

	_, err := svc.RedeemDiscount(context.Background(), "u1")
	assert.ErrorIs(t, err, repository.ErrInsufficientPoints)

	users.set("u1", 100)
	code, err := svc.RedeemDiscount(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(code, "SPD-"))

	balance, err := svc.Points(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)

	// The minted coupon is already claimed by the redeemer and spendable.
	cc, err := svc.Verify(context.Background(), code, "u1")
	require.NoError(t, err)
	assert.Equal(t, models.RewardDiscount, cc.RewardType)
	assert.Equal(t, int64(1000), cc.RewardValue.Amount)
}

type rejectInsertCoupons struct {
	*memCoupons
	err error
}

func (r *rejectInsertCoupons) Insert(ctx context.Context, coupons []models.Coupon) error {
	return r.err
}

type rejectCashback struct {
	err error
}

func (r *rejectCashback) Insert(ctx context.Context, req *models.CashbackRequest) error {
	return r.err
}

func TestRedeemDiscountRefundsOnMintFailure(t *testing.T) {
	users := newMemUsers()
	users.set("u1", 100)
	coupons := &rejectInsertCoupons{memCoupons: newMemCoupons(), err: repository.ErrCouponExists}
	svc := NewRewardService(coupons, users, &memCashback{})

	_, err := svc.RedeemDiscount(context.Background(), "u1")
	require.Error(t, err)

	// The failed mint must not consume the debit.
	balance, err := svc.Points(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(100), balance)

	// With the balance intact a retry against a healthy store succeeds.
	svcOK := NewRewardService(coupons.memCoupons, users, &memCashback{})
	code, err := svcOK.RedeemDiscount(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(code, "SPD-"))

	balance, err = svcOK.Points(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)
}

func TestRedeemCashbackRefundsOnStoreFailure(t *testing.T) {
	users := newMemUsers()
	users.set("u1", 100)
	svc := NewRewardService(newMemCoupons(), users, &rejectCashback{err: errors.New("write failed")})

	_, err := svc.RedeemCashback(context.Background(), "u1", "u1@upi")
	require.Error(t, err)

	balance, err := svc.Points(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(100), balance)
}

func TestRedeemCashback(t *testing.T) {
	svc, _, users, cashback := newRewardFixture()
	users.set("u1", 120)

	req, err := svc.RedeemCashback(context.Background(), "u1", "u1@upi")
	require.NoError(t, err)
	assert.Equal(t, models.CashbackPending, req.Status)
	assert.Equal(t, int64(1000), req.Amount)
	assert.Equal(t, "u1@upi", req.UPIID)

	balance, err := svc.Points(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(20), balance)
	assert.Len(t, cashback.requests, 1)
}

func TestConcurrentRedeemsNeverOverdraw(t *testing.T) {
	svc, _, users, _ := newRewardFixture()
	users.set("u1", 100)

	var wg sync.WaitGroup
	results := make([]error, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.RedeemCashback(context.Background(), "u1", "u1@upi")
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, repository.ErrInsufficientPoints)
		}
	}
	assert.Equal(t, 1, succeeded)

	balance, err := svc.Points(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)
}
