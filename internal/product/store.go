package product

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Where is an equality filter keyed by column name.
type Where map[string]interface{}

// Query selects a window of rows.
type Query struct {
	Where Where
	Order string
	Skip  int
	Take  int
}

// Store is the persistence client the Service runs its queries through.
// Errors from the database are returned as-is.
type Store interface {
	Create(ctx context.Context, p *Product) error
	Count(ctx context.Context, where Where) (int64, error)
	FindMany(ctx context.Context, q Query) ([]Product, error)
	// FindFirst returns nil and no error when nothing matches.
	FindFirst(ctx context.Context, where Where) (*Product, error)
	// Update applies data to every row matching where and returns the
	// number of rows changed.
	Update(ctx context.Context, where Where, data map[string]interface{}) (int64, error)
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

// GormStore implements Store on top of GORM.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a store backed by db.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Create(ctx context.Context, p *Product) error {
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return err
	}
	// Reload so storage-level defaults (available) are reflected.
	return s.db.WithContext(ctx).First(p, p.ID).Error
}

func (s *GormStore) Count(ctx context.Context, where Where) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&Product{}).
		Where(map[string]interface{}(where)).
		Count(&count).Error
	return count, err
}

func (s *GormStore) FindMany(ctx context.Context, q Query) ([]Product, error) {
	tx := s.db.WithContext(ctx).Where(map[string]interface{}(q.Where))
	if q.Order != "" {
		tx = tx.Order(q.Order)
	}
	if q.Skip > 0 {
		tx = tx.Offset(q.Skip)
	}
	if q.Take > 0 {
		tx = tx.Limit(q.Take)
	}

	products := make([]Product, 0)
	if err := tx.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *GormStore) FindFirst(ctx context.Context, where Where) (*Product, error) {
	var p Product
	err := s.db.WithContext(ctx).Where(map[string]interface{}(where)).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *GormStore) Update(ctx context.Context, where Where, data map[string]interface{}) (int64, error) {
	result := s.db.WithContext(ctx).
		Model(&Product{}).
		Where(map[string]interface{}(where)).
		Updates(data)
	return result.RowsAffected, result.Error
}

func (s *GormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}
