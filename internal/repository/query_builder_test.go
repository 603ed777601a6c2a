package repository

import (
	"testing"
	"time"

	"medpractice-backend/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&entity.Physician{}, &entity.Practice{}, &entity.Patient{}, &entity.PhysicianFile{})
	require.NoError(t, err)

	return db
}

func seedPhysicians(t *testing.T, db *gorm.DB) {
	t.Helper()

	birthDate := time.Date(1975, 3, 14, 0, 0, 0, 0, time.UTC)
	physicians := []entity.Physician{
		{
			Name:             "Dr. Adler",
			FieldOfSpecialty: "Surgery",
			SpecialtyCode:    entity.SpecialtySurgery,
			PhoneNumber:      "+49-30-1111",
			BirthDate:        birthDate,
			Keywords:         entity.Keywords{"JAVA", "SQL"},
			Practice:         &entity.Practice{Name: "City Medical Center"},
		},
		{
			Name:             "Dr. Brandt",
			FieldOfSpecialty: "Radiology",
			SpecialtyCode:    entity.SpecialtyRadiology,
			PhoneNumber:      "+49-30-2222",
			BirthDate:        birthDate,
			Keywords:         entity.Keywords{"JAVASCRIPT"},
			Practice:         &entity.Practice{Name: "Harbor Clinic"},
		},
		{
			Name:             "Dr. Conrad",
			FieldOfSpecialty: "Surgery",
			SpecialtyCode:    entity.SpecialtySurgery,
			PhoneNumber:      "+49-30-3333",
			BirthDate:        birthDate,
			Keywords:         entity.Keywords{"JAVA", "JAVASCRIPT"},
			Practice:         &entity.Practice{Name: "City Dental"},
		},
		{
			Name:             "Dr. Dreyer",
			FieldOfSpecialty: "Cardiology",
			SpecialtyCode:    entity.SpecialtyCardiology,
			PhoneNumber:      "+49-30-4444",
			BirthDate:        birthDate,
			Keywords:         entity.Keywords{},
			Practice:         &entity.Practice{Name: "Lakeside Practice"},
		},
	}

	for i := range physicians {
		require.NoError(t, db.Create(&physicians[i]).Error)
	}
}

func findNames(t *testing.T, query *gorm.DB) []string {
	t.Helper()

	var physicians []entity.Physician
	require.NoError(t, query.Order("physicians.id").Find(&physicians).Error)

	names := make([]string, 0, len(physicians))
	for _, p := range physicians {
		names = append(names, p.Name)
	}
	return names
}

func TestQueryBuilder_KeywordFlags(t *testing.T) {
	db := setupTestDB(t)
	seedPhysicians(t, db)
	qb := NewQueryBuilder()

	t.Run("JavaExcludesJavascriptOnly", func(t *testing.T) {
		names := findNames(t, qb.Build(db, &entity.SearchCriteria{Java: "true"}))
		assert.Equal(t, []string{"Dr. Adler", "Dr. Conrad"}, names)
	})

	t.Run("JavascriptMatchesTag", func(t *testing.T) {
		names := findNames(t, qb.Build(db, &entity.SearchCriteria{JavaScript: "true"}))
		assert.Equal(t, []string{"Dr. Brandt", "Dr. Conrad"}, names)
	})

	t.Run("NonTrueFlagValueIsIgnored", func(t *testing.T) {
		names := findNames(t, qb.Build(db, &entity.SearchCriteria{Java: "1"}))
		assert.Len(t, names, 4)
	})
}

func TestQueryBuilder_PracticeName(t *testing.T) {
	db := setupTestDB(t)
	seedPhysicians(t, db)
	qb := NewQueryBuilder()

	t.Run("SubstringMatch", func(t *testing.T) {
		names := findNames(t, qb.Build(db, &entity.SearchCriteria{PracticeName: "City"}))
		assert.Equal(t, []string{"Dr. Adler", "Dr. Conrad"}, names)
	})

	t.Run("NoMatch", func(t *testing.T) {
		names := findNames(t, qb.Build(db, &entity.SearchCriteria{PracticeName: "Mountain"}))
		assert.Empty(t, names)
	})
}

func TestQueryBuilder_ConditionsAreANDed(t *testing.T) {
	db := setupTestDB(t)
	seedPhysicians(t, db)
	qb := NewQueryBuilder()

	names := findNames(t, qb.Build(db, &entity.SearchCriteria{
		SpecialtyCode: "C",
		Java:          "true",
		PracticeName:  "City",
	}))
	assert.Equal(t, []string{"Dr. Adler", "Dr. Conrad"}, names)

	names = findNames(t, qb.Build(db, &entity.SearchCriteria{
		SpecialtyCode: "RAD",
		Java:          "true",
	}))
	assert.Empty(t, names)
}

func TestQueryBuilder_ExactMatches(t *testing.T) {
	db := setupTestDB(t)
	seedPhysicians(t, db)
	qb := NewQueryBuilder()

	t.Run("SpecialtyCode", func(t *testing.T) {
		names := findNames(t, qb.Build(db, &entity.SearchCriteria{SpecialtyCode: "C"}))
		assert.Equal(t, []string{"Dr. Adler", "Dr. Conrad"}, names)
	})

	t.Run("Name", func(t *testing.T) {
		names := findNames(t, qb.Build(db, &entity.SearchCriteria{Name: "Dr. Brandt"}))
		assert.Equal(t, []string{"Dr. Brandt"}, names)
	})

	t.Run("PhoneNumber", func(t *testing.T) {
		names := findNames(t, qb.Build(db, &entity.SearchCriteria{PhoneNumber: "+49-30-4444"}))
		assert.Equal(t, []string{"Dr. Dreyer"}, names)
	})

	t.Run("NilCriteriaIsUnrestricted", func(t *testing.T) {
		names := findNames(t, qb.Build(db, nil))
		assert.Len(t, names, 4)
	})
}

func TestQueryBuilder_Paginate(t *testing.T) {
	db := setupTestDB(t)
	seedPhysicians(t, db)
	qb := NewQueryBuilder()

	t.Run("FirstPage", func(t *testing.T) {
		names := findNames(t, qb.Paginate(qb.Build(db, nil), entity.Pageable{Number: 0, Size: 2}))
		assert.Equal(t, []string{"Dr. Adler", "Dr. Brandt"}, names)
	})

	t.Run("SecondPage", func(t *testing.T) {
		names := findNames(t, qb.Paginate(qb.Build(db, nil), entity.Pageable{Number: 1, Size: 2}))
		assert.Equal(t, []string{"Dr. Conrad", "Dr. Dreyer"}, names)
	})

	t.Run("SizeZeroIsUnbounded", func(t *testing.T) {
		names := findNames(t, qb.Paginate(qb.Build(db, nil), entity.Pageable{Number: 0, Size: 0}))
		assert.Len(t, names, 4)
	})
}
