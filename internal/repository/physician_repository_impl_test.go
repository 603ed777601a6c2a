package repository

import (
	"testing"
	"time"

	"medpractice-backend/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createPhysician(t *testing.T, db *gorm.DB, name, phone string) *entity.Physician {
	t.Helper()

	physician := &entity.Physician{
		Name:             name,
		FieldOfSpecialty: "Surgery",
		SpecialtyCode:    entity.SpecialtySurgery,
		PhoneNumber:      phone,
		BirthDate:        time.Date(1980, 6, 1, 0, 0, 0, 0, time.UTC),
		Keywords:         entity.Keywords{"JAVA"},
		Practice:         &entity.Practice{Name: name + " Practice"},
		Patients: []entity.Patient{
			{Name: "Patient One", BirthDate: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)},
			{Name: "Patient Two", BirthDate: time.Date(1992, 2, 2, 0, 0, 0, 0, time.UTC)},
		},
	}
	require.NoError(t, db.Create(physician).Error)
	return physician
}

func TestPhysicianRepository_FindByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPhysicianRepository(NewQueryBuilder())
	created := createPhysician(t, db, "Dr. Ebert", "+49-30-5555")

	t.Run("WithPatients", func(t *testing.T) {
		found, err := repo.FindByID(db, created.ID, true)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "Dr. Ebert", found.Name)
		require.NotNil(t, found.Practice)
		assert.Equal(t, "Dr. Ebert Practice", found.Practice.Name)
		assert.Len(t, found.Patients, 2)
	})

	t.Run("WithoutPatients", func(t *testing.T) {
		found, err := repo.FindByID(db, created.ID, false)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.NotNil(t, found.Practice)
		assert.Empty(t, found.Patients)
	})

	t.Run("NotFoundReturnsNil", func(t *testing.T) {
		found, err := repo.FindByID(db, 9999, true)
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestPhysicianRepository_FindByCriteria(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPhysicianRepository(NewQueryBuilder())
	createPhysician(t, db, "Dr. Fuchs", "+49-30-6666")
	createPhysician(t, db, "Dr. Graf", "+49-30-7777")

	physicians, total, err := repo.FindByCriteria(db, &entity.SearchCriteria{Java: "true"}, entity.Pageable{Number: 0, Size: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, physicians, 1)
	assert.Equal(t, "Dr. Fuchs", physicians[0].Name)
	assert.NotNil(t, physicians[0].Practice)
}

func TestPhysicianRepository_ExistsByName(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPhysicianRepository(NewQueryBuilder())
	createPhysician(t, db, "Dr. Hahn", "+49-30-8888")

	exists, err := repo.ExistsByName(db, "Dr. Hahn")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByName(db, "Dr. Unknown")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestPhysicianRepository_UpdateScalarsGuarded(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPhysicianRepository(NewQueryBuilder())
	created := createPhysician(t, db, "Dr. Iser", "+49-30-9999")

	t.Run("MatchingVersionUpdatesAndIncrements", func(t *testing.T) {
		created.Name = "Dr. Iser-Renamed"
		rows, err := repo.UpdateScalarsGuarded(db, created, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(1), rows)

		found, err := repo.FindByID(db, created.ID, false)
		require.NoError(t, err)
		assert.Equal(t, "Dr. Iser-Renamed", found.Name)
		assert.Equal(t, 1, found.Version)
	})

	t.Run("StaleVersionTouchesNothing", func(t *testing.T) {
		created.Name = "Dr. Iser-Again"
		rows, err := repo.UpdateScalarsGuarded(db, created, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(0), rows)

		found, err := repo.FindByID(db, created.ID, false)
		require.NoError(t, err)
		assert.Equal(t, "Dr. Iser-Renamed", found.Name)
		assert.Equal(t, 1, found.Version)
	})
}

func TestPhysicianRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPhysicianRepository(NewQueryBuilder())
	created := createPhysician(t, db, "Dr. Jung", "+49-30-0000")

	rows, err := repo.Delete(db, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	rows, err = repo.Delete(db, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)
}

func TestPhysicianFileRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPhysicianFileRepository()
	physician := createPhysician(t, db, "Dr. Klein", "+49-30-1212")

	file := &entity.PhysicianFile{
		Filename:    "portrait.png",
		MimeType:    "image/png",
		Data:        []byte{0x89, 0x50, 0x4e, 0x47},
		PhysicianID: physician.ID,
	}
	require.NoError(t, repo.Create(db, file))

	found, err := repo.FindByPhysicianID(db, physician.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "portrait.png", found.Filename)
	assert.Equal(t, file.Data, found.Data)

	require.NoError(t, repo.DeleteByPhysicianID(db, physician.ID))

	found, err = repo.FindByPhysicianID(db, physician.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}
