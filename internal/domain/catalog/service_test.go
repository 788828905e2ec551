package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ferropos/internal/core/apperror"
	"ferropos/internal/core/types"
	"ferropos/internal/domain/audit"
)

type passthroughTxManager struct{}

func (passthroughTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memProductRepo struct {
	byID   map[int64]*Product
	nextID int64
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{byID: make(map[int64]*Product)}
}

func (r *memProductRepo) Create(_ context.Context, p *Product) error {
	r.nextID++
	p.ID = r.nextID
	cp := *p
	r.byID[p.ID] = &cp
	return nil
}

func (r *memProductRepo) Update(_ context.Context, p *Product) error {
	stored, ok := r.byID[p.ID]
	if !ok {
		return apperror.NewNotFound("product", p.ID)
	}
	if stored.Version != p.Version {
		return apperror.NewConcurrentModification("product", p.ID)
	}
	cp := *p
	cp.Version++
	r.byID[p.ID] = &cp
	p.Version++
	return nil
}

func (r *memProductRepo) GetByID(_ context.Context, id int64) (*Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, apperror.NewNotFound("product", id)
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetByName(_ context.Context, name string) (*Product, error) {
	for _, p := range r.byID {
		if p.Name == name {
			cp := *p
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("product", name)
}

func (r *memProductRepo) List(_ context.Context, filter ListFilter) ([]*Product, error) {
	var out []*Product
	for _, p := range r.byID {
		if !filter.IncludeInactive && !p.IsActive() {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memProductRepo) GetForUpdate(ctx context.Context, id int64) (*Product, error) {
	return r.GetByID(ctx, id)
}

func (r *memProductRepo) DecrementStock(_ context.Context, id int64, qty int64) error {
	p, ok := r.byID[id]
	if !ok {
		return apperror.NewNotFound("product", id)
	}
	if qty > p.QuantityAvailable {
		return apperror.NewStockConflict(id)
	}
	p.QuantityAvailable -= qty
	return nil
}

func (r *memProductRepo) SetStatus(_ context.Context, id int64, status Status) error {
	p, ok := r.byID[id]
	if !ok {
		return apperror.NewNotFound("product", id)
	}
	p.Status = status
	p.Version++
	return nil
}

func (r *memProductRepo) SetQuantity(_ context.Context, id int64, quantity int64) error {
	p, ok := r.byID[id]
	if !ok {
		return apperror.NewNotFound("product", id)
	}
	p.QuantityAvailable = quantity
	p.Version++
	return nil
}

func (r *memProductRepo) FindLowStock(_ context.Context, threshold int64) ([]*Product, error) {
	var out []*Product
	for _, p := range r.byID {
		if p.IsActive() && p.QuantityAvailable <= threshold {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

type recordingAuditor struct {
	actions []audit.Action
}

func (a *recordingAuditor) Record(_ context.Context, _ string, _ int64, action audit.Action, _ map[string]any) error {
	a.actions = append(a.actions, action)
	return nil
}

type dropRecorder struct {
	dropped int
}

func (d *dropRecorder) InvalidateAll(context.Context) error {
	d.dropped++
	return nil
}

func newCatalogService() (*Service, *memProductRepo, *recordingAuditor) {
	repo := newMemProductRepo()
	auditor := &recordingAuditor{}
	return NewService(repo, passthroughTxManager{}, auditor, nil), repo, auditor
}

func TestServiceCreate(t *testing.T) {
	ctx := context.Background()
	svc, repo, auditor := newCatalogService()

	p, err := svc.Create(ctx, CreateInput{
		Name:          "Hammer",
		InitialStock:  10,
		SalePrice:     types.MustMoney("25.50"),
		PurchasePrice: types.MustMoney("14.00"),
	})
	require.NoError(t, err)

	assert.NotZero(t, p.ID)
	assert.Equal(t, StatusActive, p.Status)
	assert.Len(t, repo.byID, 1)
	assert.Equal(t, []audit.Action{audit.ActionCreate}, auditor.actions)
}

func TestServiceCreate_DuplicateName(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newCatalogService()

	_, err := svc.Create(ctx, CreateInput{Name: "Hammer", SalePrice: types.MustMoney("25.50")})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateInput{Name: "Hammer", SalePrice: types.MustMoney("9.99")})
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDuplicate, appErr.Code)
}

func TestServiceUpdate(t *testing.T) {
	ctx := context.Background()
	svc, _, auditor := newCatalogService()

	p, err := svc.Create(ctx, CreateInput{Name: "Hammer", SalePrice: types.MustMoney("25.50")})
	require.NoError(t, err)

	newName := "Claw Hammer"
	newPrice := types.MustMoney("27.00")
	updated, err := svc.Update(ctx, p.ID, UpdateInput{Name: &newName, SalePrice: &newPrice})
	require.NoError(t, err)

	assert.Equal(t, "Claw Hammer", updated.Name)
	assert.True(t, updated.SalePrice.Equal(newPrice))
	assert.Contains(t, auditor.actions, audit.ActionUpdate)
}

func TestServiceUpdate_NoChangesSkipsWrite(t *testing.T) {
	ctx := context.Background()
	svc, _, auditor := newCatalogService()

	p, err := svc.Create(ctx, CreateInput{Name: "Hammer", SalePrice: types.MustMoney("25.50")})
	require.NoError(t, err)

	samePrice := types.MustMoney("25.50")
	updated, err := svc.Update(ctx, p.ID, UpdateInput{SalePrice: &samePrice})
	require.NoError(t, err)

	assert.Equal(t, p.Version, updated.Version)
	assert.NotContains(t, auditor.actions, audit.ActionUpdate)
}

func TestServiceUpdate_RepriceDropsCachedReports(t *testing.T) {
	// Daily aggregates cost sales at the current purchase price; an edit
	// must drop every cached day.
	ctx := context.Background()
	repo := newMemProductRepo()
	drops := &dropRecorder{}
	svc := NewService(repo, passthroughTxManager{}, nil, drops)

	p, err := svc.Create(ctx, CreateInput{
		Name:          "Hammer",
		SalePrice:     types.MustMoney("25.50"),
		PurchasePrice: types.MustMoney("14.00"),
	})
	require.NoError(t, err)

	newCost := types.MustMoney("15.25")
	_, err = svc.Update(ctx, p.ID, UpdateInput{PurchasePrice: &newCost})
	require.NoError(t, err)
	assert.Equal(t, 1, drops.dropped)
}

func TestServiceUpdate_SalePriceChangeKeepsCachedReports(t *testing.T) {
	// Revenue is captured per sale at commit time, so a sale price edit
	// leaves cached aggregates valid.
	ctx := context.Background()
	repo := newMemProductRepo()
	drops := &dropRecorder{}
	svc := NewService(repo, passthroughTxManager{}, nil, drops)

	p, err := svc.Create(ctx, CreateInput{
		Name:          "Hammer",
		SalePrice:     types.MustMoney("25.50"),
		PurchasePrice: types.MustMoney("14.00"),
	})
	require.NoError(t, err)

	newPrice := types.MustMoney("27.00")
	_, err = svc.Update(ctx, p.ID, UpdateInput{SalePrice: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, 0, drops.dropped)
}

func TestServiceUpdate_DuplicateNameRejected(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newCatalogService()

	_, err := svc.Create(ctx, CreateInput{Name: "Hammer", SalePrice: types.MustMoney("25.50")})
	require.NoError(t, err)
	p2, err := svc.Create(ctx, CreateInput{Name: "Gloves", SalePrice: types.MustMoney("4.99")})
	require.NoError(t, err)

	taken := "Hammer"
	_, err = svc.Update(ctx, p2.ID, UpdateInput{Name: &taken})
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDuplicate, appErr.Code)
}

func TestServiceDeactivateReactivate(t *testing.T) {
	ctx := context.Background()
	svc, repo, auditor := newCatalogService()

	p, err := svc.Create(ctx, CreateInput{Name: "Hammer", SalePrice: types.MustMoney("25.50")})
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(ctx, p.ID))
	assert.Equal(t, StatusInactive, repo.byID[p.ID].Status)
	assert.Contains(t, auditor.actions, audit.ActionDeactivate)

	// Already inactive: no-op, no extra audit entry
	before := len(auditor.actions)
	require.NoError(t, svc.Deactivate(ctx, p.ID))
	assert.Len(t, auditor.actions, before)

	require.NoError(t, svc.Reactivate(ctx, p.ID))
	assert.Equal(t, StatusActive, repo.byID[p.ID].Status)
	assert.Contains(t, auditor.actions, audit.ActionReactivate)
}

func TestServiceAdjustStock(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newCatalogService()

	p, err := svc.Create(ctx, CreateInput{Name: "Hammer", InitialStock: 10, SalePrice: types.MustMoney("25.50")})
	require.NoError(t, err)

	require.NoError(t, svc.AdjustStock(ctx, p.ID, 25))
	assert.Equal(t, int64(25), repo.byID[p.ID].QuantityAvailable)

	err = svc.AdjustStock(ctx, p.ID, -1)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestServiceAdjustStock_UnknownProduct(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newCatalogService()

	err := svc.AdjustStock(ctx, 404, 5)
	assert.True(t, apperror.IsNotFound(err))
}
