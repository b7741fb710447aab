package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/tilly/internal/analytics"
	"github.com/MrJamesThe3rd/tilly/internal/sale"
)

func TestService_Totals(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledger := analytics.NewMockLedger(ctrl)
	svc := analytics.NewService(ledger)

	ledger.EXPECT().List(gomock.Any()).Return([]*sale.Sale{
		{ID: 1, Quantity: 5, TotalPrice: 4995},
		{ID: 2, Quantity: 2, TotalPrice: 1998},
	}, nil)

	got, err := svc.Totals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, got.Count)
	assert.Equal(t, int64(7), got.Units)
	assert.Equal(t, int64(6993), got.Revenue)
}

func TestService_TotalsBetween(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledger := analytics.NewMockLedger(ctrl)
	svc := analytics.NewService(ledger)

	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC)

	ledger.EXPECT().ListBetween(gomock.Any(), start, end).Return([]*sale.Sale{
		{ID: 1, Quantity: 1, TotalPrice: 999},
	}, nil)

	got, err := svc.TotalsBetween(context.Background(), start, end)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Count)
	assert.Equal(t, int64(999), got.Revenue)
}

func TestService_TopProducts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledger := analytics.NewMockLedger(ctrl)
	svc := analytics.NewService(ledger)

	ledger.EXPECT().List(gomock.Any()).Return([]*sale.Sale{
		{ProductID: 1, ProductName: "Espresso Beans", Quantity: 5},
		{ProductID: 2, ProductName: "Filters", Quantity: 9},
		{ProductID: 1, ProductName: "Espresso Beans", Quantity: 3},
		{ProductID: 3, ProductName: "", Quantity: 8},
	}, nil)

	got, err := svc.TopProducts(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Filters", got[0].Name)
	assert.Equal(t, int64(9), got[0].Units)

	// A deleted product groups under the Unknown label.
	assert.Equal(t, "Unknown", got[1].Name)
	assert.Equal(t, int64(8), got[1].Units)
}

func TestService_TopProducts_TieBreaksByName(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledger := analytics.NewMockLedger(ctrl)
	svc := analytics.NewService(ledger)

	ledger.EXPECT().List(gomock.Any()).Return([]*sale.Sale{
		{ProductID: 1, ProductName: "Zest", Quantity: 4},
		{ProductID: 2, ProductName: "Apples", Quantity: 4},
	}, nil)

	got, err := svc.TopProducts(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Apples", got[0].Name)
	assert.Equal(t, "Zest", got[1].Name)
}

func TestService_CategoryShares(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledger := analytics.NewMockLedger(ctrl)
	svc := analytics.NewService(ledger)

	ledger.EXPECT().List(gomock.Any()).Return([]*sale.Sale{
		{Category: "Coffee", Quantity: 6},
		{Category: "Tea", Quantity: 2},
		{Category: "", Quantity: 100},
	}, nil)

	got, err := svc.CategoryShares(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Coffee", got[0].Category)
	assert.InDelta(t, 75.0, got[0].Percent, 0.001)

	assert.Equal(t, "Tea", got[1].Category)
	assert.InDelta(t, 25.0, got[1].Percent, 0.001)
}

func TestService_CategoryShares_NoSales(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledger := analytics.NewMockLedger(ctrl)
	svc := analytics.NewService(ledger)

	ledger.EXPECT().List(gomock.Any()).Return(nil, nil)

	got, err := svc.CategoryShares(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}
