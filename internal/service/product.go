package service

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/showcase/pkg/logging"

	"github.com/Skotchmaster/showcase/internal/domain"
	"github.com/Skotchmaster/showcase/internal/events"
	"github.com/Skotchmaster/showcase/internal/models"
	"github.com/Skotchmaster/showcase/internal/repo"
	"github.com/Skotchmaster/showcase/internal/search"
	"github.com/Skotchmaster/showcase/internal/transport"
)

func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	p, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return nil, storeErr("get product", err)
	}
	return p, nil
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	items, err := s.Repo.ListProducts(ctx)
	if err != nil {
		return nil, storeErr("list products", err)
	}
	return items, nil
}

// SearchProducts serves the storefront grid. Text queries go to the search index when one is
// configured; any index failure falls back to the store.
func (s *CatalogService) SearchProducts(ctx context.Context, f domain.ProductFilter, offset, limit int) (int64, []models.Product, error) {
	if strings.TrimSpace(f.Query) != "" {
		total, items, err := s.searchIndex(ctx, f, offset, limit)
		if err == nil {
			return total, items, nil
		}
		if !errors.Is(err, search.ErrDisabled) {
			logging.FromContext(ctx).Warn("search_index_fallback", "error", err)
		}
	}

	total, items, err := s.Repo.FindProducts(ctx, f, offset, limit)
	if err != nil {
		return 0, nil, storeErr("find products", err)
	}
	return total, items, nil
}

func (s *CatalogService) searchIndex(ctx context.Context, f domain.ProductFilter, offset, limit int) (int64, []models.Product, error) {
	total, ids, err := s.index().Search(ctx, f, offset, limit)
	if err != nil {
		return 0, nil, err
	}
	found, err := s.Repo.ProductsByIDs(ctx, ids)
	if err != nil {
		return 0, nil, err
	}
	byID := make(map[uuid.UUID]models.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	items := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			items = append(items, p)
		}
	}
	return total, items, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	p := &models.Product{
		Name:         strings.TrimSpace(req.Name),
		ImageURL:     strings.TrimSpace(req.ImageURL),
		MRP:          req.MRP,
		SellingPrice: req.SellingPrice,
		Category:     req.Category,
		Subcategory:  req.Subcategory,
		Code:         strings.TrimSpace(req.Code),
		AffiliateURL: strings.TrimSpace(req.AffiliateURL),
	}
	if p.Code == "" {
		p.Code = domain.NewProductCode(s.now(), nil)
	}
	if err := s.validateProduct(ctx, p, true); err != nil {
		return nil, err
	}

	created, err := s.Repo.CreateProduct(ctx, p)
	if err != nil {
		return nil, storeErr("create product", err)
	}

	s.reindex(ctx, *created)
	s.Notify.publish(ctx, created.ID.String(), events.CatalogEvent{
		Type: events.ProductCreated, EntityID: created.ID, Name: created.Name, At: s.now().UTC(),
	})
	return created, nil
}

// PatchProduct applies the provided fields. Moving a product to another category without naming a
// subcategory clears it, which fails validation. Category and subcategory are only checked against
// the category list when the patch touches them, so products left on a renamed category stay editable.
func (s *CatalogService) PatchProduct(ctx context.Context, id uuid.UUID, req transport.PatchProductRequest) (*models.Product, error) {
	current, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return nil, storeErr("get product", err)
	}

	next := *current
	fields := map[string]any{}

	setString := func(field string, v *string, dst *string) {
		if v == nil {
			return
		}
		*dst = strings.TrimSpace(*v)
		fields[field] = *dst
	}
	setDecimal := func(field string, v *decimal.Decimal, dst *decimal.Decimal) {
		if v == nil {
			return
		}
		*dst = *v
		fields[field] = *v
	}

	setString("name", req.Name, &next.Name)
	setString("imageUrl", req.ImageURL, &next.ImageURL)
	setString("code", req.Code, &next.Code)
	setString("affiliateUrl", req.AffiliateURL, &next.AffiliateURL)
	setDecimal("mrp", req.MRP, &next.MRP)
	setDecimal("sellingPrice", req.SellingPrice, &next.SellingPrice)

	if req.Category != nil {
		sel := domain.SelectCategory(domain.ProductSelection{Category: next.Category, Subcategory: next.Subcategory}, *req.Category)
		next.Category, next.Subcategory = sel.Category, sel.Subcategory
		fields["category"] = next.Category
		fields["subcategory"] = next.Subcategory
	}
	if req.Subcategory != nil {
		next.Subcategory = *req.Subcategory
		fields["subcategory"] = next.Subcategory
	}

	if len(fields) == 0 {
		return current, nil
	}
	if next.Code == "" {
		return nil, invalid("code is required")
	}
	placementChanged := req.Category != nil || req.Subcategory != nil
	if err := s.validateProduct(ctx, &next, placementChanged); err != nil {
		return nil, err
	}

	updated, err := s.Repo.UpdateProduct(ctx, id, fields)
	if err != nil {
		return nil, storeErr("update product", err)
	}

	s.reindex(ctx, *updated)
	s.Notify.publish(ctx, updated.ID.String(), events.CatalogEvent{
		Type: events.ProductUpdated, EntityID: updated.ID, Name: updated.Name, At: s.now().UTC(),
	})
	return updated, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return storeErr("delete product", err)
	}
	if err := s.index().Delete(ctx, id); err != nil {
		logging.FromContext(ctx).Warn("search_delete_failed", "product_id", id, "error", err)
	}
	s.Notify.publish(ctx, id.String(), events.CatalogEvent{Type: events.ProductDeleted, EntityID: id, At: s.now().UTC()})
	return nil
}

func (s *CatalogService) validateProduct(ctx context.Context, p *models.Product, checkPlacement bool) error {
	switch {
	case p.Name == "":
		return invalid("name is required")
	case p.ImageURL == "":
		return invalid("imageUrl is required")
	case p.AffiliateURL == "":
		return invalid("affiliateUrl is required")
	case p.Category == "":
		return invalid("category is required")
	case p.Subcategory == "":
		return invalid("subcategory is required")
	case p.MRP.IsNegative() || p.SellingPrice.IsNegative():
		return invalid("prices must not be negative")
	}
	if err := domain.ValidAffiliateURL(p.AffiliateURL); err != nil {
		return invalid("%v", err)
	}
	if !checkPlacement {
		return nil
	}

	category, err := s.Repo.CategoryByName(ctx, p.Category)
	if err != nil {
		if repo.IsNotFound(err) {
			return invalid("category %q does not exist", p.Category)
		}
		return storeErr("get category", err)
	}
	if !slices.Contains(category.Subcategories, p.Subcategory) {
		return invalid("subcategory %q is not in category %q", p.Subcategory, p.Category)
	}
	return nil
}
