package entity

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// Keywords is a set of unique keyword tags stored as a single
// comma-delimited string column. The search layer matches tags with
// substring containment on the serialized form.
type Keywords []string

func (k Keywords) Value() (driver.Value, error) {
	if len(k) == 0 {
		return "", nil
	}
	return strings.Join(k, ","), nil
}

func (k *Keywords) Scan(value interface{}) error {
	if value == nil {
		*k = nil
		return nil
	}

	var s string
	switch v := value.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("keywords: cannot scan %T", value)
	}

	if s == "" {
		*k = Keywords{}
		return nil
	}
	*k = Keywords(strings.Split(s, ","))
	return nil
}

// GormDataType tells GORM which column type to use for migrations.
func (Keywords) GormDataType() string {
	return "text"
}

// Contains reports whether tag is present in the keyword set.
func (k Keywords) Contains(tag string) bool {
	for _, kw := range k {
		if kw == tag {
			return true
		}
	}
	return false
}
