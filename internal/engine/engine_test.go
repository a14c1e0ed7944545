package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"upflow/conf"
	"upflow/internal/model"
)

type fakeClient struct {
	balance    decimal.Decimal
	balanceErr error
	orders     []model.Order
	ordersErr  error
	placed     model.Order
	placeErr   error

	balanceCalls int
	ordersCalls  int
	placeCalls   int
	placedAmount decimal.Decimal
	placedMarket string
}

func (f *fakeClient) GetCurrentPrice(ctx context.Context, market string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (f *fakeClient) GetKRWBalance(ctx context.Context) (decimal.Decimal, error) {
	f.balanceCalls++
	return f.balance, f.balanceErr
}

func (f *fakeClient) PlaceBuyOrder(ctx context.Context, market string, price decimal.Decimal) (*model.Order, error) {
	f.placeCalls++
	f.placedMarket = market
	f.placedAmount = price
	if f.placeErr != nil {
		return nil, f.placeErr
	}
	order := f.placed
	return &order, nil
}

func (f *fakeClient) GetRecentOrders(ctx context.Context, market string, window time.Duration) ([]model.Order, error) {
	f.ordersCalls++
	return f.orders, f.ordersErr
}

func testConfig() conf.TradingConfig {
	return conf.TradingConfig{
		Market:               "KRW-ETH",
		BuyPercentage:        0.1,
		MinOrderAmount:       5000,
		DuplicateWindowHours: 1,
	}
}

func TestExecuteBuySizing(t *testing.T) {
	fake := &fakeClient{
		balance: decimal.NewFromInt(123456),
		placed:  model.Order{UUID: "order-1"},
	}
	result := New(fake, testConfig()).ExecuteBuy(context.Background())

	if !result.Success {
		t.Fatalf("result = %+v, want success", result)
	}
	// floor(123456 * 0.1) == 12345
	if !fake.placedAmount.Equal(decimal.NewFromInt(12345)) {
		t.Fatalf("placed amount = %s, want 12345", fake.placedAmount)
	}
}

func TestExecuteBuyBelowMinimumSkipsOrder(t *testing.T) {
	// floor(49990 * 0.1) == 4999 < 5000
	fake := &fakeClient{balance: decimal.NewFromInt(49990)}
	result := New(fake, testConfig()).ExecuteBuy(context.Background())

	if result.Success {
		t.Fatalf("result = %+v, want failure", result)
	}
	if result.Reason != model.ReasonInsufficientFunds {
		t.Fatalf("reason = %q, want %q", result.Reason, model.ReasonInsufficientFunds)
	}
	if fake.ordersCalls != 0 || fake.placeCalls != 0 {
		t.Fatalf("exchange called after size gate: orders=%d place=%d", fake.ordersCalls, fake.placeCalls)
	}
}

func TestExecuteBuyDuplicatePrevented(t *testing.T) {
	fake := &fakeClient{
		balance: decimal.NewFromInt(50000),
		orders: []model.Order{
			{UUID: "dup", Side: model.Bid, State: model.OrderStateDone,
				CreatedAt: time.Now().Add(-30 * time.Minute)},
		},
	}
	result := New(fake, testConfig()).ExecuteBuy(context.Background())

	if result.Success || result.Reason != model.ReasonDuplicatePrevented {
		t.Fatalf("result = %+v, want duplicate_prevented", result)
	}
	if fake.placeCalls != 0 {
		t.Fatalf("place called despite duplicate: %d", fake.placeCalls)
	}
}

func TestExecuteBuyIgnoresNonDoneBidOrders(t *testing.T) {
	// 已取消的买单和已成交的卖单都不算重复
	fake := &fakeClient{
		balance: decimal.NewFromInt(50000),
		orders: []model.Order{
			{Side: model.Bid, State: model.OrderStateCancel, CreatedAt: time.Now().Add(-10 * time.Minute)},
			{Side: model.Ask, State: model.OrderStateDone, CreatedAt: time.Now().Add(-10 * time.Minute)},
		},
		placed: model.Order{UUID: "order-2"},
	}
	result := New(fake, testConfig()).ExecuteBuy(context.Background())

	if !result.Success {
		t.Fatalf("result = %+v, want success", result)
	}
}

func TestExecuteBuyDuplicateCheckFailOpen(t *testing.T) {
	fake := &fakeClient{
		balance:   decimal.NewFromInt(50000),
		ordersErr: errors.New("temporary lookup failure"),
		placed:    model.Order{UUID: "order-3"},
	}
	result := New(fake, testConfig()).ExecuteBuy(context.Background())

	if !result.Success {
		t.Fatalf("result = %+v, want success (fail-open)", result)
	}
	if fake.placeCalls != 1 {
		t.Fatalf("place calls = %d, want 1", fake.placeCalls)
	}
}

func TestExecuteBuyEndToEnd(t *testing.T) {
	fake := &fakeClient{
		balance: decimal.NewFromInt(50000),
		placed:  model.Order{UUID: "abc-123"},
	}
	result := New(fake, testConfig()).ExecuteBuy(context.Background())

	if !result.Success {
		t.Fatalf("result = %+v, want success", result)
	}
	if result.OrderID != "abc-123" {
		t.Fatalf("order id = %s, want abc-123", result.OrderID)
	}
	if !result.Amount.Equal(decimal.NewFromInt(5000)) {
		t.Fatalf("amount = %s, want 5000", result.Amount)
	}
	if fake.placedMarket != "KRW-ETH" {
		t.Fatalf("market = %s, want KRW-ETH", fake.placedMarket)
	}
	if fake.placeCalls != 1 {
		t.Fatalf("place calls = %d, want exactly 1", fake.placeCalls)
	}
}

func TestExecuteBuyBalanceFailureIsolated(t *testing.T) {
	fake := &fakeClient{balanceErr: errors.New("connection reset")}
	result := New(fake, testConfig()).ExecuteBuy(context.Background())

	if result.Success {
		t.Fatalf("result = %+v, want failure", result)
	}
	if result.Error == "" {
		t.Fatalf("error message missing: %+v", result)
	}
	if fake.ordersCalls != 0 || fake.placeCalls != 0 {
		t.Fatalf("calls after balance failure: orders=%d place=%d", fake.ordersCalls, fake.placeCalls)
	}
}

func TestExecuteBuyPlacementFailureNotRetried(t *testing.T) {
	fake := &fakeClient{
		balance:  decimal.NewFromInt(50000),
		placeErr: errors.New("exchange rejected"),
	}
	result := New(fake, testConfig()).ExecuteBuy(context.Background())

	if result.Success {
		t.Fatalf("result = %+v, want failure", result)
	}
	if fake.placeCalls != 1 {
		t.Fatalf("place calls = %d, want 1 (no retry)", fake.placeCalls)
	}
}
