package pos_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/tilly/internal/audit"
	"github.com/MrJamesThe3rd/tilly/internal/catalog"
	"github.com/MrJamesThe3rd/tilly/internal/pos"
	"github.com/MrJamesThe3rd/tilly/internal/sale"
	"github.com/MrJamesThe3rd/tilly/internal/session"
	"github.com/MrJamesThe3rd/tilly/internal/user"
)

var cashier = session.Actor{ID: 2, Username: "amy", Role: user.RoleCashier}

func TestService_RecordSale(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := pos.NewMockRepository(ctrl)
	tx := pos.NewMockSaleTx(ctrl)
	auditor := pos.NewMockAuditor(ctrl)
	svc := pos.NewService(repo, auditor)

	product := &catalog.Product{
		ID:           1,
		Name:         "Espresso Beans",
		Category:     "Coffee",
		SellingPrice: 999,
		Quantity:     50,
	}

	repo.EXPECT().BeginSale(gomock.Any()).Return(tx, nil)
	tx.EXPECT().GetProduct(gomock.Any(), int64(1)).Return(product, nil)
	tx.EXPECT().
		InsertSale(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, sl *sale.Sale) error {
			sl.ID = 7
			return nil
		})
	tx.EXPECT().AdjustStock(gomock.Any(), int64(1), int64(-5)).Return(true, nil)
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil)
	auditor.EXPECT().
		Record(gomock.Any(), cashier, audit.ActionCreate, audit.EntityTypeSale, int64(7), gomock.Nil(), gomock.Not(gomock.Nil()))

	got, err := svc.RecordSale(context.Background(), cashier, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, int64(4995), got.TotalPrice)
	assert.Equal(t, int64(5), got.Quantity)
	assert.Equal(t, "Espresso Beans", got.ProductName)
	assert.Equal(t, "Coffee", got.Category)
	assert.Equal(t, cashier.ID, got.UserID)
	assert.False(t, got.SaleDate.IsZero())
}

func TestService_RecordSale_InvalidQuantity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := pos.NewMockRepository(ctrl)
	auditor := pos.NewMockAuditor(ctrl)
	svc := pos.NewService(repo, auditor)

	for _, qty := range []int64{0, -3} {
		got, err := svc.RecordSale(context.Background(), cashier, 1, qty)
		assert.ErrorIs(t, err, pos.ErrInvalidQuantity)
		assert.Nil(t, got)
	}
}

func TestService_RecordSale_ProductNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := pos.NewMockRepository(ctrl)
	tx := pos.NewMockSaleTx(ctrl)
	auditor := pos.NewMockAuditor(ctrl)
	svc := pos.NewService(repo, auditor)

	repo.EXPECT().BeginSale(gomock.Any()).Return(tx, nil)
	tx.EXPECT().GetProduct(gomock.Any(), int64(99)).Return(nil, catalog.ErrNotFound)
	tx.EXPECT().Rollback().Return(nil)

	got, err := svc.RecordSale(context.Background(), cashier, 99, 1)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
	assert.Nil(t, got)
}

func TestService_RecordSale_InsufficientStock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := pos.NewMockRepository(ctrl)
	tx := pos.NewMockSaleTx(ctrl)
	auditor := pos.NewMockAuditor(ctrl)
	svc := pos.NewService(repo, auditor)

	product := &catalog.Product{ID: 1, Name: "Espresso Beans", SellingPrice: 999, Quantity: 3}

	repo.EXPECT().BeginSale(gomock.Any()).Return(tx, nil)
	tx.EXPECT().GetProduct(gomock.Any(), int64(1)).Return(product, nil)
	tx.EXPECT().Rollback().Return(nil)

	got, err := svc.RecordSale(context.Background(), cashier, 1, 5)
	require.Error(t, err)
	assert.Nil(t, got)

	var stockErr *pos.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, int64(5), stockErr.Requested)
	assert.Equal(t, int64(3), stockErr.Available)
}

func TestService_RecordSale_ConcurrentDecrementLoses(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := pos.NewMockRepository(ctrl)
	tx := pos.NewMockSaleTx(ctrl)
	auditor := pos.NewMockAuditor(ctrl)
	svc := pos.NewService(repo, auditor)

	product := &catalog.Product{ID: 1, Name: "Espresso Beans", SellingPrice: 999, Quantity: 5}

	// The pre-check passes but the conditional update reports no row
	// changed, as when another sale drained the stock first.
	repo.EXPECT().BeginSale(gomock.Any()).Return(tx, nil)
	tx.EXPECT().GetProduct(gomock.Any(), int64(1)).Return(product, nil)
	tx.EXPECT().InsertSale(gomock.Any(), gomock.Any()).Return(nil)
	tx.EXPECT().AdjustStock(gomock.Any(), int64(1), int64(-5)).Return(false, nil)
	tx.EXPECT().Rollback().Return(nil)

	got, err := svc.RecordSale(context.Background(), cashier, 1, 5)
	assert.Nil(t, got)

	var stockErr *pos.InsufficientStockError
	assert.ErrorAs(t, err, &stockErr)
}

func TestService_RecordSale_CommitError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := pos.NewMockRepository(ctrl)
	tx := pos.NewMockSaleTx(ctrl)
	auditor := pos.NewMockAuditor(ctrl)
	svc := pos.NewService(repo, auditor)

	product := &catalog.Product{ID: 1, Name: "Espresso Beans", SellingPrice: 999, Quantity: 50}

	repo.EXPECT().BeginSale(gomock.Any()).Return(tx, nil)
	tx.EXPECT().GetProduct(gomock.Any(), int64(1)).Return(product, nil)
	tx.EXPECT().InsertSale(gomock.Any(), gomock.Any()).Return(nil)
	tx.EXPECT().AdjustStock(gomock.Any(), int64(1), int64(-2)).Return(true, nil)
	tx.EXPECT().Commit().Return(errors.New("disk full"))
	tx.EXPECT().Rollback().Return(nil)

	got, err := svc.RecordSale(context.Background(), cashier, 1, 2)
	assert.Error(t, err)
	assert.Nil(t, got)
}

func TestService_DeleteSale(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := pos.NewMockRepository(ctrl)
	tx := pos.NewMockSaleTx(ctrl)
	auditor := pos.NewMockAuditor(ctrl)
	svc := pos.NewService(repo, auditor)

	sl := &sale.Sale{ID: 9, ProductID: 1, Quantity: 5, TotalPrice: 4995, ProductName: "Espresso Beans"}

	repo.EXPECT().BeginSale(gomock.Any()).Return(tx, nil)
	tx.EXPECT().GetSale(gomock.Any(), int64(9)).Return(sl, nil)
	tx.EXPECT().AdjustStock(gomock.Any(), int64(1), int64(5)).Return(true, nil)
	tx.EXPECT().DeleteSale(gomock.Any(), int64(9)).Return(nil)
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil)
	auditor.EXPECT().
		Record(gomock.Any(), cashier, audit.ActionDelete, audit.EntityTypeSale, int64(9), gomock.Not(gomock.Nil()), gomock.Nil())

	err := svc.DeleteSale(context.Background(), cashier, 9)
	assert.NoError(t, err)
}

func TestService_DeleteSale_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := pos.NewMockRepository(ctrl)
	tx := pos.NewMockSaleTx(ctrl)
	auditor := pos.NewMockAuditor(ctrl)
	svc := pos.NewService(repo, auditor)

	repo.EXPECT().BeginSale(gomock.Any()).Return(tx, nil)
	tx.EXPECT().GetSale(gomock.Any(), int64(404)).Return(nil, sale.ErrNotFound)
	tx.EXPECT().Rollback().Return(nil)

	err := svc.DeleteSale(context.Background(), cashier, 404)
	assert.ErrorIs(t, err, sale.ErrNotFound)
}

func TestService_DeleteSale_ProductGone(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := pos.NewMockRepository(ctrl)
	tx := pos.NewMockSaleTx(ctrl)
	auditor := pos.NewMockAuditor(ctrl)
	svc := pos.NewService(repo, auditor)

	// The referenced product was deleted after the sale; restoration is a
	// no-op and the ledger row is still removed.
	sl := &sale.Sale{ID: 9, ProductID: 1, Quantity: 5, TotalPrice: 4995}

	repo.EXPECT().BeginSale(gomock.Any()).Return(tx, nil)
	tx.EXPECT().GetSale(gomock.Any(), int64(9)).Return(sl, nil)
	tx.EXPECT().AdjustStock(gomock.Any(), int64(1), int64(5)).Return(false, nil)
	tx.EXPECT().DeleteSale(gomock.Any(), int64(9)).Return(nil)
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil)
	auditor.EXPECT().
		Record(gomock.Any(), cashier, audit.ActionDelete, audit.EntityTypeSale, int64(9), gomock.Not(gomock.Nil()), gomock.Nil())

	err := svc.DeleteSale(context.Background(), cashier, 9)
	assert.NoError(t, err)
}

func TestService_DeleteSale_DeleteError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := pos.NewMockRepository(ctrl)
	tx := pos.NewMockSaleTx(ctrl)
	auditor := pos.NewMockAuditor(ctrl)
	svc := pos.NewService(repo, auditor)

	sl := &sale.Sale{ID: 9, ProductID: 1, Quantity: 5}

	repo.EXPECT().BeginSale(gomock.Any()).Return(tx, nil)
	tx.EXPECT().GetSale(gomock.Any(), int64(9)).Return(sl, nil)
	tx.EXPECT().AdjustStock(gomock.Any(), int64(1), int64(5)).Return(true, nil)
	tx.EXPECT().DeleteSale(gomock.Any(), int64(9)).Return(errors.New("db error"))
	tx.EXPECT().Rollback().Return(nil)

	err := svc.DeleteSale(context.Background(), cashier, 9)
	assert.Error(t, err)
}
