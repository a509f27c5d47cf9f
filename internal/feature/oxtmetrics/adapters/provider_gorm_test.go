package adapters

import (
	"context"
	"testing"
	"time"

	"analyst_app/internal/feature/oxtmetrics/domain/entity"
	"analyst_app/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedProvider(t *testing.T, repo *ProviderRepository, address string, status entity.ProviderStatus) entity.Provider {
	t.Helper()

	p, err := repo.Add(context.Background(), entity.Provider{
		Address:     address,
		Status:      status,
		LastSeen:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		StakeAmount: 1000,
	})
	require.NoError(t, err, "failed to seed provider")
	return p
}

func TestProviderRepository_AddAndGet(t *testing.T) {
	t.Parallel()

	repo := NewProviderRepository(setupTestDB(t))
	ctx := context.Background()
	p := seedProvider(t, repo, "0xabc", entity.ProviderActive)

	assert.NotEqual(t, uuid.Nil, p.ID)

	byID, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "0xabc", byID.Address)
	assert.Equal(t, entity.ProviderActive, byID.Status)

	byAddr, err := repo.GetByAddress(ctx, "0xabc")
	require.NoError(t, err)
	require.NotNil(t, byAddr)
	assert.Equal(t, p.ID, byAddr.ID)

	missing, err := repo.GetByAddress(ctx, "0xdef")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestProviderRepository_DuplicateAddress(t *testing.T) {
	t.Parallel()

	repo := NewProviderRepository(setupTestDB(t))
	seedProvider(t, repo, "0xabc", entity.ProviderActive)

	_, err := repo.Add(context.Background(), entity.Provider{Address: "0xabc", Status: entity.ProviderInactive, LastSeen: time.Now()})
	assert.ErrorIs(t, err, apperror.ErrDatabase)
}

func TestProviderRepository_GetAll(t *testing.T) {
	t.Parallel()

	repo := NewProviderRepository(setupTestDB(t))
	seedProvider(t, repo, "0xbbb", entity.ProviderInactive)
	seedProvider(t, repo, "0xaaa", entity.ProviderActive)

	got, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "0xaaa", got[0].Address)
	assert.Equal(t, "0xbbb", got[1].Address)
}

func TestProviderRepository_Update(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		modify       func(p entity.Provider) entity.Provider
		wantKind     apperror.Kind
		validateFunc func(t *testing.T, got entity.Provider)
	}{
		{
			name: "success: status and stake change",
			modify: func(p entity.Provider) entity.Provider {
				p.Status = entity.ProviderInactive
				p.StakeAmount = 42
				return p
			},
			validateFunc: func(t *testing.T, got entity.Provider) {
				assert.Equal(t, entity.ProviderInactive, got.Status)
				assert.Equal(t, 42.0, got.StakeAmount)
			},
		},
		{
			name: "error: unknown id",
			modify: func(p entity.Provider) entity.Provider {
				p.ID = uuid.New()
				return p
			},
			wantKind: apperror.KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := NewProviderRepository(setupTestDB(t))
			p := seedProvider(t, repo, "0xabc", entity.ProviderActive)

			got, err := repo.Update(context.Background(), tt.modify(p))
			if tt.wantKind != apperror.KindUnknown {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, apperror.KindOf(err))
				return
			}
			require.NoError(t, err)
			tt.validateFunc(t, got)
		})
	}
}
