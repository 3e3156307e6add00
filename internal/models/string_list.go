package models

import (
	"database/sql/driver"
	"slices"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// StringList is an ordered list of names stored as a postgres text[] (array literal text on sqlite).
type StringList []string

func (StringList) GormDataType() string { return "text[]" }

func (StringList) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return pq.StringArray{}.Value()
	}
	return pq.StringArray(l).Value()
}

func (l *StringList) Scan(src any) error {
	var arr pq.StringArray
	if err := arr.Scan(src); err != nil {
		return err
	}
	*l = append(StringList{}, arr...)
	return nil
}

func (l StringList) Contains(name string) bool {
	return slices.Contains(l, name)
}

func (l StringList) Clone() StringList {
	return append(StringList{}, l...)
}
