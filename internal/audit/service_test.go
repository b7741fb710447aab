package audit_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/tilly/internal/audit"
	"github.com/MrJamesThe3rd/tilly/internal/session"
	"github.com/MrJamesThe3rd/tilly/internal/user"
)

func TestService_Record(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := audit.NewMockRepository(ctrl)
	svc := audit.NewService(repo)

	actor := session.Actor{ID: 3, Username: "bob", Role: user.RoleManager}
	newValue := "name=Espresso Beans category=Coffee cost=5.00 price=9.99 qty=50"

	repo.EXPECT().
		AppendEntry(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *audit.Entry) error {
			assert.Equal(t, int64(3), e.UserID)
			assert.Equal(t, "bob", e.Username)
			assert.Equal(t, audit.ActionCreate, e.Action)
			assert.Equal(t, audit.EntityTypeProduct, e.EntityType)
			assert.Equal(t, int64(1), e.EntityID)
			assert.Nil(t, e.OldValue)
			require.NotNil(t, e.NewValue)
			assert.Equal(t, newValue, *e.NewValue)
			assert.False(t, e.Timestamp.IsZero())
			return nil
		})

	svc.Record(context.Background(), actor, audit.ActionCreate, audit.EntityTypeProduct, 1, nil, &newValue)
}

func TestService_Record_SwallowsRepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := audit.NewMockRepository(ctrl)
	svc := audit.NewService(repo)

	repo.EXPECT().
		AppendEntry(gomock.Any(), gomock.Any()).
		Return(errors.New("db error"))

	// Must not panic or propagate; the trail is best-effort.
	svc.Record(context.Background(), session.System, audit.ActionDelete, audit.EntityTypeSale, 9, nil, nil)
}

func TestService_Record_SystemFallback(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := audit.NewMockRepository(ctrl)
	svc := audit.NewService(repo)

	repo.EXPECT().
		AppendEntry(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *audit.Entry) error {
			assert.Equal(t, "system", e.Username)
			return nil
		})

	svc.Record(context.Background(), session.Actor{}, audit.ActionUpdate, audit.EntityTypeUser, 2, nil, nil)
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := audit.NewMockRepository(ctrl)
	svc := audit.NewService(repo)

	repo.EXPECT().ListEntries(gomock.Any()).Return([]*audit.Entry{{ID: 1}, {ID: 2}}, nil)

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestService_ListByEntity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := audit.NewMockRepository(ctrl)
	svc := audit.NewService(repo)

	repo.EXPECT().
		ListEntriesByEntity(gomock.Any(), audit.EntityTypeProduct, int64(1)).
		Return([]*audit.Entry{{ID: 1, EntityType: audit.EntityTypeProduct, EntityID: 1}}, nil)

	got, err := svc.ListByEntity(context.Background(), audit.EntityTypeProduct, 1)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
