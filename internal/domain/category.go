package domain

import (
	"slices"
	"strings"

	"github.com/Skotchmaster/showcase/internal/models"
)

const (
	DefaultCategoryName    = "New Category"
	DefaultSubcategoryName = "New Subcategory"
)

// NormalizeSubcategories trims names and drops blanks and exact duplicates, keeping first-seen order.
func NormalizeSubcategories(names []string) models.StringList {
	out := make(models.StringList, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || out.Contains(n) {
			continue
		}
		out = append(out, n)
	}
	return out
}

func AppendSubcategory(list models.StringList, name string) models.StringList {
	out := list.Clone()
	return append(out, name)
}

// ReplaceSubcategory swaps old for name in place, keeping list order.
func ReplaceSubcategory(list models.StringList, old, name string) models.StringList {
	out := list.Clone()
	if i := slices.Index(out, old); i >= 0 {
		out[i] = name
	}
	return out
}

func RemoveSubcategory(list models.StringList, name string) models.StringList {
	out := make(models.StringList, 0, len(list))
	for _, n := range list {
		if n != name {
			out = append(out, n)
		}
	}
	return out
}

// SubcategoryChoices returns the subcategories offered for categoryName, or none when it is unknown.
func SubcategoryChoices(categories []models.Category, categoryName string) models.StringList {
	for _, c := range categories {
		if c.Name == categoryName {
			return c.Subcategories.Clone()
		}
	}
	return models.StringList{}
}

// ProductSelection is the category/subcategory pair chosen on the product form.
type ProductSelection struct {
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
}

// SelectCategory changes the selected category. A different category clears the subcategory.
func SelectCategory(sel ProductSelection, category string) ProductSelection {
	if sel.Category != category {
		sel.Subcategory = ""
	}
	sel.Category = category
	return sel
}
