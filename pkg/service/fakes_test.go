package service

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/spoonful/spoonful-backend/pkg/models"
	"github.com/spoonful/spoonful-backend/pkg/repository"
)

// In-memory stores mirroring the repositories' conditional-update semantics:
// every guard check happens under one lock, like a single Mongo CAS.

type memCatalog struct {
	mu       sync.Mutex
	products map[string]*models.Product
}

func newMemCatalog() *memCatalog {
	return &memCatalog{products: make(map[string]*models.Product)}
}

func (m *memCatalog) put(id string, price int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[id] = &models.Product{NewPrice: price, Available: true}
}

func (m *memCatalog) GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[productID]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

type memCoupons struct {
	mu      sync.Mutex
	coupons map[string]*models.Coupon
	claimed map[string]*models.ClaimedCoupon

	markUsedCalls int
}

func newMemCoupons() *memCoupons {
	return &memCoupons{
		coupons: make(map[string]*models.Coupon),
		claimed: make(map[string]*models.ClaimedCoupon),
	}
}

func claimKey(code, userID string) string { return code + "|" + userID }

func (m *memCoupons) Insert(ctx context.Context, coupons []models.Coupon) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range coupons {
		if _, ok := m.coupons[coupons[i].Code]; ok {
			return repository.ErrCouponExists
		}
	}
	for i := range coupons {
		c := coupons[i]
		m.coupons[c.Code] = &c
	}
	return nil
}

func (m *memCoupons) ClaimMaster(ctx context.Context, code, userID string) (*models.Coupon, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.coupons[code]
	if !ok {
		return nil, repository.ErrCouponNotFound
	}
	if c.Claimed {
		return nil, repository.ErrAlreadyClaimed
	}
	c.Claimed = true
	c.ClaimedBy = userID
	cp := *c
	return &cp, nil
}

func (m *memCoupons) InsertClaimed(ctx context.Context, cc *models.ClaimedCoupon) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := claimKey(cc.Code, cc.UserID)
	if _, ok := m.claimed[key]; ok {
		return repository.ErrAlreadyClaimed
	}
	cp := *cc
	m.claimed[key] = &cp
	return nil
}

func (m *memCoupons) MarkUsed(ctx context.Context, code, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.markUsedCalls++
	if cc, ok := m.claimed[claimKey(code, userID)]; ok && cc.Status == models.ClaimNotUsed {
		cc.Status = models.ClaimUsed
	}
	return nil
}

func (m *memCoupons) GetClaimed(ctx context.Context, code, userID string, onlyNotUsed bool) (*models.ClaimedCoupon, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cc, ok := m.claimed[claimKey(code, userID)]
	if !ok || (onlyNotUsed && cc.Status != models.ClaimNotUsed) {
		return nil, repository.ErrCouponNotFound
	}
	cp := *cc
	return &cp, nil
}

func (m *memCoupons) ListClaimedByUser(ctx context.Context, userID string) ([]models.ClaimedCoupon, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.ClaimedCoupon{}
	for _, cc := range m.claimed {
		if cc.UserID == userID {
			out = append(out, *cc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

type memUsers struct {
	mu       sync.Mutex
	balances map[string]int64
}

func newMemUsers() *memUsers {
	return &memUsers{balances: make(map[string]int64)}
}

func (m *memUsers) set(userID string, points int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[userID] = points
}

func (m *memUsers) Points(ctx context.Context, userID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.balances[userID]
	if !ok {
		return 0, repository.ErrUserNotFound
	}
	return b, nil
}

func (m *memUsers) CreditPoints(ctx context.Context, userID string, points int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.balances[userID]; !ok {
		return repository.ErrUserNotFound
	}
	m.balances[userID] += points
	return nil
}

func (m *memUsers) DebitPoints(ctx context.Context, userID string, points int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.balances[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	if b < points {
		return repository.ErrInsufficientPoints
	}
	m.balances[userID] = b - points
	return nil
}

type memCashback struct {
	mu       sync.Mutex
	requests []models.CashbackRequest
}

func (m *memCashback) Insert(ctx context.Context, req *models.CashbackRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, *req)
	return nil
}

type memOrders struct {
	mu     sync.Mutex
	orders map[string]*models.Order
}

func newMemOrders() *memOrders {
	return &memOrders{orders: make(map[string]*models.Order)}
}

func (m *memOrders) Insert(ctx context.Context, order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if order.RazorpayOrderID != "" {
		for _, o := range m.orders {
			if o.RazorpayOrderID == order.RazorpayOrderID {
				return repository.ErrDuplicateGatewayOrder
			}
		}
	}
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	cp := *order
	m.orders[order.ID.Hex()] = &cp
	return nil
}

func (m *memOrders) GetByID(ctx context.Context, orderID string) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[orderID]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *memOrders) SetGatewayOrderID(ctx context.Context, orderID, gatewayOrderID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[orderID]
	if !ok {
		return repository.ErrOrderNotFound
	}
	o.RazorpayOrderID = gatewayOrderID
	return nil
}

func (m *memOrders) ConfirmPaid(ctx context.Context, orderID, gatewayOrderID, paymentID, signature string) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[orderID]
	if !ok || o.RazorpayOrderID != gatewayOrderID {
		return nil, repository.ErrOrderNotFound
	}
	o.PaymentStatus = models.PaymentPaid
	o.RazorpayPaymentID = paymentID
	o.RazorpaySignature = signature
	cp := *o
	return &cp, nil
}

func (m *memOrders) UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[orderID]
	if !ok {
		return repository.ErrOrderNotFound
	}
	o.OrderStatus = status
	return nil
}

func (m *memOrders) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Order{}
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (m *memOrders) ListAll(ctx context.Context) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Order{}
	for _, o := range m.orders {
		out = append(out, *o)
	}
	return out, nil
}

type memCarts struct {
	mu     sync.Mutex
	clears map[string]int
}

func newMemCarts() *memCarts {
	return &memCarts{clears: make(map[string]int)}
}

func (m *memCarts) Clear(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clears[userID]++
	return nil
}

func (m *memCarts) cleared(userID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clears[userID]
}

type fakeGateway struct {
	mu      sync.Mutex
	calls   int
	amounts []int64
	err     error
}

func (g *fakeGateway) CreateIntent(ctx context.Context, amount int64, currency, receipt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return "", g.err
	}
	g.calls++
	g.amounts = append(g.amounts, amount)
	return "rzp_test_order_1", nil
}
