package repository

import (
	"fmt"

	"medpractice-backend/internal/domain/entity"

	"gorm.io/gorm"
)

// QueryBuilder compiles a SearchCriteria into an AND-composed set of
// predicates on the physicians table. Each recognized field maps to one
// named predicate builder; there is no OR support and no negation beyond
// the JAVA keyword exclusion.
type QueryBuilder struct{}

func NewQueryBuilder() *QueryBuilder {
	return &QueryBuilder{}
}

// Build returns a query restricted to the given criteria. A nil or empty
// criteria yields the unrestricted query. Pagination is applied separately
// so the same conditions can back both the page fetch and the total count.
func (qb *QueryBuilder) Build(db *gorm.DB, criteria *entity.SearchCriteria) *gorm.DB {
	query := db.Model(&entity.Physician{})
	if criteria == nil {
		return query
	}

	if criteria.PracticeName != "" {
		query = qb.byPracticeName(query, criteria.PracticeName)
	}
	if criteria.JavaScript == "true" {
		query = qb.byKeyword(query, "JAVASCRIPT")
	}
	if criteria.TypeScript == "true" {
		query = qb.byKeyword(query, "TYPESCRIPT")
	}
	// Tag JAVA must not match rows that only carry JAVASCRIPT: the longer
	// tag is stripped from the haystack before the substring test.
	if criteria.Java == "true" {
		query = qb.byKeywordExcluding(query, "JAVA", "JAVASCRIPT")
	}
	if criteria.Python == "true" {
		query = qb.byKeyword(query, "PYTHON")
	}

	if criteria.Name != "" {
		query = query.Where("physicians.name = ?", criteria.Name)
	}
	if criteria.BirthDate != "" {
		query = query.Where("physicians.birth_date = ?", criteria.BirthDate)
	}
	if criteria.SpecialtyCode != "" {
		query = query.Where("physicians.specialty_code = ?", criteria.SpecialtyCode)
	}
	if criteria.PhoneNumber != "" {
		query = query.Where("physicians.phone_number = ?", criteria.PhoneNumber)
	}
	if criteria.FieldOfSpecialty != "" {
		query = query.Where("physicians.field_of_specialty = ?", criteria.FieldOfSpecialty)
	}

	return query
}

// Paginate applies limit/offset from the pageable. Size 0 returns the
// unbounded query, used for count-only or export-style access.
func (qb *QueryBuilder) Paginate(query *gorm.DB, pageable entity.Pageable) *gorm.DB {
	if pageable.Size == 0 {
		return query
	}
	return query.Limit(pageable.Size).Offset(pageable.Number * pageable.Size)
}

// byPracticeName matches the practice name with case-insensitive substring
// containment. Postgres needs ILIKE for that; other engines fall back to a
// plain LIKE.
func (qb *QueryBuilder) byPracticeName(query *gorm.DB, name string) *gorm.DB {
	like := "LIKE"
	if query.Dialector.Name() == "postgres" {
		like = "ILIKE"
	}
	return query.
		Select("physicians.*").
		Joins("JOIN practices ON practices.physician_id = physicians.id").
		Where(fmt.Sprintf("practices.name %s ?", like), "%"+name+"%")
}

func (qb *QueryBuilder) byKeyword(query *gorm.DB, tag string) *gorm.DB {
	return query.Where("physicians.keywords LIKE ?", "%"+tag+"%")
}

func (qb *QueryBuilder) byKeywordExcluding(query *gorm.DB, tag, longerTag string) *gorm.DB {
	return query.Where("REPLACE(physicians.keywords, ?, '') LIKE ?", longerTag, "%"+tag+"%")
}
