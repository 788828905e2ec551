package catalog

import (
	"context"
	"strings"

	"ferropos/internal/core/apperror"
	"ferropos/internal/core/tx"
	"ferropos/internal/core/types"
	"ferropos/internal/domain/audit"
	"ferropos/pkg/logger"
)

const entityType = "product"

// ReportInvalidator drops cached daily reports. Aggregates cost sales at the
// product's current purchase price, so a repricing shifts the cost basis of
// every cached day. Invalidation is best effort.
type ReportInvalidator interface {
	InvalidateAll(ctx context.Context) error
}

// Service provides business logic for catalog administration.
// Mutations run in a transaction and leave an audit entry.
type Service struct {
	repo        Repository
	txm         tx.Manager
	auditor     audit.Recorder
	invalidator ReportInvalidator
}

// NewService creates a new catalog service.
func NewService(repo Repository, txm tx.Manager, auditor audit.Recorder, invalidator ReportInvalidator) *Service {
	if auditor == nil {
		auditor = audit.Noop{}
	}
	return &Service{repo: repo, txm: txm, auditor: auditor, invalidator: invalidator}
}

// CreateInput carries the fields of a new product.
type CreateInput struct {
	Name          string
	InitialStock  int64
	SalePrice     types.Money
	PurchasePrice types.Money
}

// Create registers a new active product with a unique name.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Product, error) {
	p := NewProduct(in.Name, in.InitialStock, in.SalePrice, in.PurchasePrice)
	if err := p.Validate(ctx); err != nil {
		return nil, err
	}

	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if existing, err := s.repo.GetByName(ctx, p.Name); err == nil && existing != nil {
			return apperror.NewDuplicate("product", "name", p.Name)
		} else if err != nil && !apperror.IsNotFound(err) {
			return err
		}
		if err := s.repo.Create(ctx, p); err != nil {
			return err
		}
		return s.auditor.Record(ctx, entityType, p.ID, audit.ActionCreate, map[string]any{
			"name":           p.Name,
			"stock":          p.QuantityAvailable,
			"sale_price":     p.SalePrice.String(),
			"purchase_price": p.PurchasePrice.String(),
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "product created", "id", p.ID, "name", p.Name)
	return p, nil
}

// UpdateInput carries mutable product fields. Nil pointers are left untouched.
// Status is not updatable here; use Deactivate and Reactivate.
type UpdateInput struct {
	Name          *string
	SalePrice     *types.Money
	PurchasePrice *types.Money
}

// Update applies field changes under optimistic locking.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (*Product, error) {
	var updated *Product
	var repriced bool
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		p, err := s.repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}

		changes := map[string]any{}
		if in.Name != nil && strings.TrimSpace(*in.Name) != p.Name {
			name := strings.TrimSpace(*in.Name)
			if existing, err := s.repo.GetByName(ctx, name); err == nil && existing != nil && existing.ID != id {
				return apperror.NewDuplicate("product", "name", name)
			} else if err != nil && !apperror.IsNotFound(err) {
				return err
			}
			changes["name"] = map[string]any{"old": p.Name, "new": name}
			p.Name = name
		}
		if in.SalePrice != nil && !in.SalePrice.Equal(p.SalePrice) {
			changes["sale_price"] = map[string]any{"old": p.SalePrice.String(), "new": in.SalePrice.String()}
			p.SalePrice = types.RoundMoney(*in.SalePrice)
		}
		if in.PurchasePrice != nil && !in.PurchasePrice.Equal(p.PurchasePrice) {
			changes["purchase_price"] = map[string]any{"old": p.PurchasePrice.String(), "new": in.PurchasePrice.String()}
			p.PurchasePrice = types.RoundMoney(*in.PurchasePrice)
			repriced = true
		}

		if len(changes) == 0 {
			updated = p
			return nil
		}

		if err := p.Validate(ctx); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, p); err != nil {
			return err
		}
		updated = p
		return s.auditor.Record(ctx, entityType, p.ID, audit.ActionUpdate, changes)
	})
	if err != nil {
		return nil, err
	}

	// Cached daily aggregates carry the old cost basis until dropped.
	if repriced && s.invalidator != nil {
		if err := s.invalidator.InvalidateAll(ctx); err != nil {
			logger.Warn(ctx, "report cache invalidation failed", "product_id", id, "error", err)
		}
	}
	return updated, nil
}

// Deactivate removes the product from sale without losing its history.
// Deactivating an already inactive product is a no-op.
func (s *Service) Deactivate(ctx context.Context, id int64) error {
	return s.setStatus(ctx, id, StatusInactive, audit.ActionDeactivate)
}

// Reactivate returns a deactivated product to sale.
func (s *Service) Reactivate(ctx context.Context, id int64) error {
	return s.setStatus(ctx, id, StatusActive, audit.ActionReactivate)
}

func (s *Service) setStatus(ctx context.Context, id int64, status Status, action audit.Action) error {
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		p, err := s.repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if p.Status == status {
			return nil
		}
		if err := s.repo.SetStatus(ctx, id, status); err != nil {
			return err
		}
		return s.auditor.Record(ctx, entityType, id, action, map[string]any{
			"status": map[string]any{"old": string(p.Status), "new": string(status)},
		})
	})
	if err != nil {
		return err
	}
	logger.Info(ctx, "product status changed", "id", id, "status", string(status))
	return nil
}

// AdjustStock overwrites quantity_available for administrative correction.
func (s *Service) AdjustStock(ctx context.Context, id int64, quantity int64) error {
	if quantity < 0 {
		return apperror.NewValidation("stock quantity cannot be negative").
			WithDetail("field", "quantity").
			WithDetail("value", quantity)
	}
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		p, err := s.repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if p.QuantityAvailable == quantity {
			return nil
		}
		if err := s.repo.SetQuantity(ctx, id, quantity); err != nil {
			return err
		}
		return s.auditor.Record(ctx, entityType, id, audit.ActionStockAdjust, map[string]any{
			"quantity": map[string]any{"old": p.QuantityAvailable, "new": quantity},
		})
	})
	if err != nil {
		return err
	}
	logger.Info(ctx, "product stock adjusted", "id", id, "quantity", quantity)
	return nil
}

// Get retrieves a single product.
func (s *Service) Get(ctx context.Context, id int64) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves products ordered by name ascending.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Product, error) {
	return s.repo.List(ctx, filter)
}
