package entity

// SearchCriteria is a domain-level filter for querying physicians.
// Used by the repository layer to avoid coupling with delivery DTOs.
// All fields are optional; zero values mean "not filtered". The four
// keyword flags are enabled only by the literal string "true"; any other
// value is treated as absent.
type SearchCriteria struct {
	Name             string // exact match
	BirthDate        string // exact match, format YYYY-MM-DD
	SpecialtyCode    string // exact match, one of the enumerated codes
	PhoneNumber      string // exact match
	FieldOfSpecialty string // exact match
	PracticeName     string // case-insensitive substring match
	JavaScript       string // keyword flag for tag JAVASCRIPT
	TypeScript       string // keyword flag for tag TYPESCRIPT
	Java             string // keyword flag for tag JAVA, excluding JAVASCRIPT
	Python           string // keyword flag for tag PYTHON
}

// IsEmpty reports whether no filter field is set. An empty criteria object
// and an absent one resolve to the same unrestricted query.
func (c *SearchCriteria) IsEmpty() bool {
	if c == nil {
		return true
	}
	return *c == SearchCriteria{}
}

const (
	DefaultPageNumber = 0
	DefaultPageSize   = 20
)

// Pageable carries pagination bounds for list queries. A Size of exactly 0
// requests the unbounded query (no limit/offset applied).
type Pageable struct {
	Number int
	Size   int
}

// NewPageable applies the configured defaults for out-of-range values.
// Size 0 is preserved, it selects the unbounded query.
func NewPageable(number, size int) Pageable {
	if number < 0 {
		number = DefaultPageNumber
	}
	if size < 0 {
		size = DefaultPageSize
	}
	return Pageable{Number: number, Size: size}
}
