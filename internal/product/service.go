package product

import (
	"context"

	"github.com/sirupsen/logrus"
)

const listOrder = "id ASC"

// Service exposes the product operations. Only available products are
// visible, and removal flips Available instead of deleting the row.
type Service struct {
	store Store
	log   logrus.FieldLogger
}

// NewService creates a Service that queries store.
func NewService(store Store, logger logrus.FieldLogger) *Service {
	return &Service{
		store: store,
		log:   logger,
	}
}

// Create persists a new product and returns it with its generated id.
func (s *Service) Create(ctx context.Context, fields Fields) (*Product, error) {
	p := &Product{
		Name:  fields.Name,
		Price: fields.Price,
	}
	if err := s.store.Create(ctx, p); err != nil {
		s.log.WithError(err).Errorf("Failed to create product '%s'", fields.Name)
		return nil, err
	}

	s.log.WithField("product_id", p.ID).Info("Product created")
	return p, nil
}

// FindAll returns one page of available products ordered by id.
func (s *Service) FindAll(ctx context.Context, pagination Pagination) (*Page, error) {
	pagination = pagination.normalize()
	where := Where{"available": true}

	total, err := s.store.Count(ctx, where)
	if err != nil {
		s.log.WithError(err).Error("Failed to count products")
		return nil, err
	}

	meta := Meta{
		Total:    total,
		Page:     pagination.Page,
		LastPage: lastPage(total, pagination.Limit),
	}
	// Past the last page there is nothing to fetch, and the offset of a very
	// large page would overflow.
	if pagination.Page > meta.LastPage {
		return &Page{Data: []Product{}, Meta: meta}, nil
	}

	data, err := s.store.FindMany(ctx, Query{
		Where: where,
		Order: listOrder,
		Skip:  pagination.offset(),
		Take:  pagination.Limit,
	})
	if err != nil {
		s.log.WithError(err).Error("Failed to list products")
		return nil, err
	}
	if data == nil {
		data = []Product{}
	}

	s.log.WithFields(logrus.Fields{
		"page":  pagination.Page,
		"limit": pagination.Limit,
		"count": len(data),
	}).Debug("Listed products")

	return &Page{Data: data, Meta: meta}, nil
}

// FindOne returns the available product with id, or a NotFoundError.
func (s *Service) FindOne(ctx context.Context, id uint) (*Product, error) {
	return s.findOne(ctx, s.store, id)
}

// Update applies patch to the available product with id. Any id carried in
// the patch is discarded.
func (s *Service) Update(ctx context.Context, id uint, patch Patch) (*Product, error) {
	data := patch.columns()

	var updated *Product
	err := s.store.Transaction(ctx, func(tx Store) error {
		current, err := s.findOne(ctx, tx, id)
		if err != nil {
			return err
		}
		if len(data) == 0 {
			updated = current
			return nil
		}
		updated, err = s.mutate(ctx, tx, id, data)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.WithField("product_id", id).Info("Product updated")
	return updated, nil
}

// Remove marks the available product with id as unavailable and returns it
// as stored after the change.
func (s *Service) Remove(ctx context.Context, id uint) (*Product, error) {
	var removed *Product
	err := s.store.Transaction(ctx, func(tx Store) error {
		if _, err := s.findOne(ctx, tx, id); err != nil {
			return err
		}
		var err error
		removed, err = s.mutate(ctx, tx, id, map[string]interface{}{"available": false})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.WithField("product_id", id).Info("Product removed")
	return removed, nil
}

func (s *Service) findOne(ctx context.Context, store Store, id uint) (*Product, error) {
	p, err := store.FindFirst(ctx, Where{"id": id, "available": true})
	if err != nil {
		s.log.WithError(err).WithField("product_id", id).Error("Failed to find product")
		return nil, err
	}
	if p == nil {
		s.log.WithField("product_id", id).Warn("Product not found")
		return nil, &NotFoundError{ID: id}
	}
	return p, nil
}

// mutate updates the row only while it is still available, so a concurrent
// removal surfaces as NotFound rather than a silent write.
func (s *Service) mutate(ctx context.Context, store Store, id uint, data map[string]interface{}) (*Product, error) {
	n, err := store.Update(ctx, Where{"id": id, "available": true}, data)
	if err != nil {
		s.log.WithError(err).WithField("product_id", id).Error("Failed to update product")
		return nil, err
	}
	if n == 0 {
		return nil, &NotFoundError{ID: id}
	}

	p, err := store.FindFirst(ctx, Where{"id": id})
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, &NotFoundError{ID: id}
	}
	return p, nil
}
