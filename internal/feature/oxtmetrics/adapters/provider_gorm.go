package adapters

import (
	"context"
	"errors"

	"analyst_app/internal/feature/oxtmetrics/domain/entity"
	"analyst_app/internal/shared/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProviderRepository persists Orchid providers.
type ProviderRepository struct {
	db *gorm.DB
}

func NewProviderRepository(db *gorm.DB) *ProviderRepository {
	return &ProviderRepository{db: db}
}

// Add inserts p and returns the stored row. A duplicate address is a storage error.
func (r *ProviderRepository) Add(ctx context.Context, p entity.Provider) (entity.Provider, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	row := toProviderModel(p)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return entity.Provider{}, dbError("insert provider", err)
	}
	out, err := r.GetByID(ctx, row.ID)
	if err != nil {
		return entity.Provider{}, err
	}
	if out == nil {
		return entity.Provider{}, apperror.Database("reload provider", gorm.ErrRecordNotFound)
	}
	return *out, nil
}

// GetByID returns (nil, nil) when no provider has the id.
func (r *ProviderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Provider, error) {
	return r.first(ctx, "id = ?", id)
}

// GetByAddress returns (nil, nil) when no provider has the address.
func (r *ProviderRepository) GetByAddress(ctx context.Context, address string) (*entity.Provider, error) {
	return r.first(ctx, "address = ?", address)
}

// GetAll returns every provider ordered by address.
func (r *ProviderRepository) GetAll(ctx context.Context) ([]entity.Provider, error) {
	var rows []ProviderModel
	if err := r.db.WithContext(ctx).Order("address ASC").Find(&rows).Error; err != nil {
		return nil, dbError("list providers", err)
	}
	out := make([]entity.Provider, 0, len(rows))
	for _, row := range rows {
		p, err := toProviderEntity(row)
		if err != nil {
			return nil, dbError("decode provider", err)
		}
		out = append(out, p)
	}
	return out, nil
}

// Update overwrites every mutable field of p. An unknown id is a NotFound error.
func (r *ProviderRepository) Update(ctx context.Context, p entity.Provider) (entity.Provider, error) {
	row := toProviderModel(p)
	res := r.db.WithContext(ctx).Model(&ProviderModel{}).Where("id = ?", p.ID).Updates(map[string]any{
		"address":      row.Address,
		"status":       row.Status,
		"last_seen":    row.LastSeen,
		"stake_amount": row.StakeAmount,
	})
	if res.Error != nil {
		return entity.Provider{}, dbError("update provider", res.Error)
	}
	if res.RowsAffected == 0 {
		return entity.Provider{}, apperror.NotFound("Provider with ID " + p.ID.String() + " not found.")
	}
	out, err := r.GetByID(ctx, p.ID)
	if err != nil {
		return entity.Provider{}, err
	}
	if out == nil {
		return entity.Provider{}, apperror.NotFound("Provider with ID " + p.ID.String() + " not found.")
	}
	return *out, nil
}

func (r *ProviderRepository) first(ctx context.Context, query string, arg any) (*entity.Provider, error) {
	var row ProviderModel
	err := r.db.WithContext(ctx).Where(query, arg).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, dbError("get provider", err)
	}
	p, err := toProviderEntity(row)
	if err != nil {
		return nil, dbError("decode provider", err)
	}
	return &p, nil
}
