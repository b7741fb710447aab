package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/tilly/internal/audit"
	"github.com/MrJamesThe3rd/tilly/internal/catalog"
	"github.com/MrJamesThe3rd/tilly/internal/session"
	"github.com/MrJamesThe3rd/tilly/internal/user"
)

var manager = session.Actor{ID: 3, Username: "bob", Role: user.RoleManager}

func TestService_Create(t *testing.T) {
	type args struct {
		params catalog.CreateParams
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(repo *catalog.MockRepository, auditor *catalog.MockAuditor)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{
				params: catalog.CreateParams{
					Name:         "Espresso Beans",
					Category:     "Coffee",
					CostPrice:    500,
					SellingPrice: 999,
					Quantity:     50,
				},
			},
			setupMock: func(repo *catalog.MockRepository, auditor *catalog.MockAuditor) {
				repo.EXPECT().
					CreateProduct(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p *catalog.Product) error {
						p.ID = 1
						return nil
					})
				auditor.EXPECT().
					Record(gomock.Any(), manager, audit.ActionCreate, audit.EntityTypeProduct, int64(1), gomock.Nil(), gomock.Not(gomock.Nil()))
			},
		},
		{
			name: "EmptyName",
			args: args{
				params: catalog.CreateParams{Name: "   ", SellingPrice: 999},
			},
			wantErr: catalog.ErrEmptyName,
		},
		{
			name: "NegativePrice",
			args: args{
				params: catalog.CreateParams{Name: "Espresso Beans", SellingPrice: -1},
			},
			wantErr: catalog.ErrNegativeAmount,
		},
		{
			name: "NegativeQuantity",
			args: args{
				params: catalog.CreateParams{Name: "Espresso Beans", Quantity: -5},
			},
			wantErr: catalog.ErrNegativeAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := catalog.NewMockRepository(ctrl)
			auditor := catalog.NewMockAuditor(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo, auditor)
			}

			svc := catalog.NewService(repo, auditor)
			got, err := svc.Create(context.Background(), manager, tt.args.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, int64(1), got.ID)
			assert.Equal(t, "Espresso Beans", got.Name)
		})
	}
}

func TestService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := catalog.NewMockRepository(ctrl)
	auditor := catalog.NewMockAuditor(ctrl)
	svc := catalog.NewService(repo, auditor)

	old := &catalog.Product{ID: 1, Name: "Espresso Beans", SellingPrice: 999, Quantity: 50}
	updated := &catalog.Product{ID: 1, Name: "Espresso Beans", SellingPrice: 1099, Quantity: 40}

	repo.EXPECT().GetProduct(gomock.Any(), int64(1)).Return(old, nil)
	repo.EXPECT().UpdateProduct(gomock.Any(), updated).Return(nil)
	auditor.EXPECT().
		Record(gomock.Any(), manager, audit.ActionUpdate, audit.EntityTypeProduct, int64(1),
			gomock.Not(gomock.Nil()), gomock.Not(gomock.Nil()))

	err := svc.Update(context.Background(), manager, updated)
	assert.NoError(t, err)
}

func TestService_Update_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := catalog.NewMockRepository(ctrl)
	auditor := catalog.NewMockAuditor(ctrl)
	svc := catalog.NewService(repo, auditor)

	repo.EXPECT().GetProduct(gomock.Any(), int64(99)).Return(nil, catalog.ErrNotFound)

	err := svc.Update(context.Background(), manager, &catalog.Product{ID: 99, Name: "Ghost"})
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := catalog.NewMockRepository(ctrl)
	auditor := catalog.NewMockAuditor(ctrl)
	svc := catalog.NewService(repo, auditor)

	old := &catalog.Product{ID: 1, Name: "Espresso Beans"}

	repo.EXPECT().GetProduct(gomock.Any(), int64(1)).Return(old, nil)
	repo.EXPECT().DeleteProduct(gomock.Any(), int64(1)).Return(nil)
	auditor.EXPECT().
		Record(gomock.Any(), manager, audit.ActionDelete, audit.EntityTypeProduct, int64(1),
			gomock.Not(gomock.Nil()), gomock.Nil())

	err := svc.Delete(context.Background(), manager, 1)
	assert.NoError(t, err)
}

func TestService_Delete_RepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := catalog.NewMockRepository(ctrl)
	auditor := catalog.NewMockAuditor(ctrl)
	svc := catalog.NewService(repo, auditor)

	old := &catalog.Product{ID: 1, Name: "Espresso Beans"}

	repo.EXPECT().GetProduct(gomock.Any(), int64(1)).Return(old, nil)
	repo.EXPECT().DeleteProduct(gomock.Any(), int64(1)).Return(errors.New("db error"))

	err := svc.Delete(context.Background(), manager, 1)
	assert.Error(t, err)
}

func TestService_LowStock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := catalog.NewMockRepository(ctrl)
	auditor := catalog.NewMockAuditor(ctrl)
	svc := catalog.NewService(repo, auditor)

	repo.EXPECT().ListProducts(gomock.Any()).Return([]*catalog.Product{
		{ID: 1, Name: "Espresso Beans", Quantity: 50},
		{ID: 2, Name: "Filters", Quantity: 10},
		{ID: 3, Name: "Cups", Quantity: 0},
	}, nil)

	low, err := svc.LowStock(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Equal(t, int64(2), low[0].ID)
	assert.Equal(t, int64(3), low[1].ID)
}
