package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/Skotchmaster/showcase/pkg/logging"

	"github.com/Skotchmaster/showcase/internal/domain"
	"github.com/Skotchmaster/showcase/internal/events"
	"github.com/Skotchmaster/showcase/internal/models"
	"github.com/Skotchmaster/showcase/internal/repo"
)

// CategoryRenamer decides what a category rename does to the products that reference the old name.
type CategoryRenamer interface {
	Rename(ctx context.Context, r *repo.GormRepo, c *models.Category, newName string) (*models.Category, int64, error)
}

// NameOnly renames the category row only. Products keep the old category string.
type NameOnly struct{}

func (NameOnly) Rename(ctx context.Context, r *repo.GormRepo, c *models.Category, newName string) (*models.Category, int64, error) {
	updated, err := r.UpdateCategory(ctx, c.ID, map[string]any{"name": newName})
	return updated, 0, err
}

// CascadingRename renames the category and every product's category string in one transaction.
type CascadingRename struct{}

func (CascadingRename) Rename(ctx context.Context, r *repo.GormRepo, c *models.Category, newName string) (*models.Category, int64, error) {
	var (
		updated  *models.Category
		affected int64
	)
	err := r.Transaction(ctx, func(tx *repo.GormRepo) error {
		var err error
		if updated, err = tx.UpdateCategory(ctx, c.ID, map[string]any{"name": newName}); err != nil {
			return err
		}
		affected, err = tx.RenameProductsCategory(ctx, c.Name, newName)
		return err
	})
	return updated, affected, err
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	items, err := s.Repo.ListCategories(ctx)
	if err != nil {
		return nil, storeErr("list categories", err)
	}
	return items, nil
}

// CreateCategory adds a category. A blank name yields the "New Category" placeholder with one
// placeholder subcategory.
func (s *CatalogService) CreateCategory(ctx context.Context, name string, subcategories []string) (*models.Category, error) {
	c := &models.Category{
		Name:          strings.TrimSpace(name),
		Subcategories: domain.NormalizeSubcategories(subcategories),
	}
	if c.Name == "" {
		c.Name = domain.DefaultCategoryName
		if len(c.Subcategories) == 0 {
			c.Subcategories = models.StringList{domain.DefaultSubcategoryName}
		}
	}

	created, err := s.Repo.CreateCategory(ctx, c)
	if err != nil {
		return nil, storeErr("create category", err)
	}
	s.Notify.publish(ctx, created.ID.String(), events.CatalogEvent{
		Type: events.CategoryCreated, EntityID: created.ID, Name: created.Name, At: s.now().UTC(),
	})
	return created, nil
}

func (s *CatalogService) RenameCategory(ctx context.Context, id uuid.UUID, newName string) (*models.Category, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, invalid("category name is required")
	}

	current, err := s.Repo.GetCategory(ctx, id)
	if err != nil {
		return nil, storeErr("get category", err)
	}
	if current.Name == newName {
		return current, nil
	}

	updated, affected, err := s.renamer().Rename(ctx, s.Repo, current, newName)
	if err != nil {
		return nil, storeErr("rename category", err)
	}

	if affected > 0 {
		if products, err := s.Repo.FindProductsByCategory(ctx, newName); err == nil {
			s.reindex(ctx, products...)
		}
	}
	s.Notify.publish(ctx, id.String(), events.CatalogEvent{
		Type: events.CategoryRenamed, EntityID: id, Name: newName, OldName: current.Name, Affected: affected, At: s.now().UTC(),
	})
	return updated, nil
}

// DeleteCategory refuses while any product references the category name.
func (s *CatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	current, err := s.Repo.GetCategory(ctx, id)
	if err != nil {
		return storeErr("get category", err)
	}

	n, err := s.Repo.CountProductsByCategory(ctx, current.Name)
	if err != nil {
		return storeErr("count products", err)
	}
	if n > 0 {
		return &ReferenceError{Entity: "category", Name: current.Name, Count: n}
	}

	if err := s.Repo.DeleteCategory(ctx, id); err != nil {
		return storeErr("delete category", err)
	}
	s.Notify.publish(ctx, id.String(), events.CatalogEvent{
		Type: events.CategoryDeleted, EntityID: id, Name: current.Name, At: s.now().UTC(),
	})
	return nil
}

func (s *CatalogService) AddSubcategory(ctx context.Context, id uuid.UUID, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("subcategory name is required")
	}

	current, err := s.Repo.GetCategory(ctx, id)
	if err != nil {
		return nil, storeErr("get category", err)
	}
	if current.Subcategories.Contains(name) {
		return nil, fmtConflict("subcategory %q already exists", name)
	}

	updated, err := s.Repo.UpdateCategory(ctx, id, map[string]any{
		"subcategories": domain.AppendSubcategory(current.Subcategories, name),
	})
	if err != nil {
		return nil, storeErr("update category", err)
	}
	s.Notify.publish(ctx, id.String(), events.CatalogEvent{
		Type: events.SubcategoryAdded, EntityID: id, Name: name, At: s.now().UTC(),
	})
	return updated, nil
}

// DeleteSubcategory refuses while any product in this category uses the subcategory.
func (s *CatalogService) DeleteSubcategory(ctx context.Context, id uuid.UUID, name string) (*models.Category, error) {
	current, err := s.Repo.GetCategory(ctx, id)
	if err != nil {
		return nil, storeErr("get category", err)
	}
	if !current.Subcategories.Contains(name) {
		return nil, missingSubcategory(name)
	}

	n, err := s.Repo.CountProductsBySubcategory(ctx, current.Name, name)
	if err != nil {
		return nil, storeErr("count products", err)
	}
	if n > 0 {
		return nil, &ReferenceError{Entity: "subcategory", Name: name, Count: n}
	}

	updated, err := s.Repo.UpdateCategory(ctx, id, map[string]any{
		"subcategories": domain.RemoveSubcategory(current.Subcategories, name),
	})
	if err != nil {
		return nil, storeErr("update category", err)
	}
	s.Notify.publish(ctx, id.String(), events.CatalogEvent{
		Type: events.SubcategoryDeleted, EntityID: id, Name: name, At: s.now().UTC(),
	})
	return updated, nil
}

// RenameSubcategory moves every product of this category from oldName to newName and updates the
// category's list. Everything happens in one transaction.
func (s *CatalogService) RenameSubcategory(ctx context.Context, id uuid.UUID, oldName, newName string) (*models.Category, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, invalid("subcategory name is required")
	}

	var (
		updated  *models.Category
		affected []models.Product
	)
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		current, err := tx.GetCategory(ctx, id)
		if err != nil {
			return storeErr("get category", err)
		}
		if !current.Subcategories.Contains(oldName) {
			return missingSubcategory(oldName)
		}
		if newName == oldName {
			updated = current
			return nil
		}
		if current.Subcategories.Contains(newName) {
			return fmtConflict("subcategory %q already exists", newName)
		}

		products, err := tx.ProductsBySubcategory(ctx, current.Name, oldName)
		if err != nil {
			return storeErr("list products", err)
		}
		for _, p := range products {
			moved, err := tx.UpdateProduct(ctx, p.ID, map[string]any{"subcategory": newName})
			if err != nil {
				return storeErr("update product", err)
			}
			affected = append(affected, *moved)
		}

		updated, err = tx.UpdateCategory(ctx, id, map[string]any{
			"subcategories": domain.ReplaceSubcategory(current.Subcategories, oldName, newName),
		})
		if err != nil {
			return storeErr("update category", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) {
			return nil, err
		}
		logging.FromContext(ctx).Warn("subcategory_rename_rolled_back", "category_id", id, "from", oldName, "to", newName, "error", err)
		return nil, err
	}

	s.reindex(ctx, affected...)
	if oldName != newName {
		s.Notify.publish(ctx, id.String(), events.CatalogEvent{
			Type: events.SubcategoryRenamed, EntityID: id, Name: newName, OldName: oldName,
			Affected: int64(len(affected)), At: s.now().UTC(),
		})
	}
	return updated, nil
}

// SubcategoryChoices lists the subcategories offered for a category on the product form.
func (s *CatalogService) SubcategoryChoices(ctx context.Context, category string) (models.StringList, error) {
	cats, err := s.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	return domain.SubcategoryChoices(cats, category), nil
}
