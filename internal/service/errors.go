package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("already exists")
	ErrInUse      = errors.New("still referenced by products")
)

// ReferenceError blocks a delete while products still point at the entity.
type ReferenceError struct {
	Entity string
	Name   string
	Count  int64
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("cannot delete %s %q because %d product(s) are using it", e.Entity, e.Name, e.Count)
}

func (e *ReferenceError) Unwrap() error { return ErrInUse }

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// storeErr maps a missing row to ErrNotFound and wraps everything else with op.
func storeErr(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func fmtConflict(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

func missingSubcategory(name string) error {
	return fmt.Errorf("subcategory %q: %w", name, ErrNotFound)
}
