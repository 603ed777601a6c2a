package usecase

import (
	"context"
	"io"
	"testing"

	"medpractice-backend/internal/delivery/dto"
	"medpractice-backend/internal/domain/entity"
	"medpractice-backend/internal/repository"
	"medpractice-backend/internal/service"

	"github.com/sirupsen/logrus"
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

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newUsecases(t *testing.T) (PhysicianWriteUsecase, PhysicianReadUsecase, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	log := testLogger()
	qb := repository.NewQueryBuilder()
	physicianRepo := repository.NewPhysicianRepository(qb)
	practiceRepo := repository.NewPracticeRepository()
	patientRepo := repository.NewPatientRepository()
	fileRepo := repository.NewPhysicianFileRepository()

	write := NewPhysicianWriteUsecase(db, log, physicianRepo, practiceRepo, patientRepo, fileRepo, service.NewNoopMailService())
	read := NewPhysicianReadUsecase(db, log, physicianRepo, fileRepo)
	return write, read, db
}

func createRequest(name, phone string) *dto.CreatePhysicianRequest {
	return &dto.CreatePhysicianRequest{
		Name:             name,
		FieldOfSpecialty: "Surgery",
		SpecialtyCode:    "C",
		PhoneNumber:      phone,
		BirthDate:        "1980-06-01",
		Keywords:         []string{"JAVA", "SQL"},
		Practice:         &dto.PracticeRequest{Name: name + " Practice"},
		Patients: []dto.PatientRequest{
			{Name: "Patient One", BirthDate: "1990-01-01"},
			{Name: "Patient Two", BirthDate: "1992-02-02"},
		},
	}
}

func updateRequest(name string) *dto.UpdatePhysicianRequest {
	return &dto.UpdatePhysicianRequest{
		Name:             name,
		FieldOfSpecialty: "Radiology",
		SpecialtyCode:    "RAD",
		PhoneNumber:      "+49-30-0001",
		BirthDate:        "1980-06-01",
		Keywords:         []string{"PYTHON"},
	}
}

func TestPhysicianWriteUsecase_Create(t *testing.T) {
	write, _, _ := newUsecases(t)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		resp, err := write.Create(ctx, createRequest("Dr. Lang", "+49-30-1111"))
		require.NoError(t, err)
		assert.NotZero(t, resp.ID)
		assert.Equal(t, 0, resp.Version)
		assert.Equal(t, "Dr. Lang", resp.Name)
		assert.Equal(t, []string{"JAVA", "SQL"}, resp.Keywords)
		require.NotNil(t, resp.Practice)
		assert.Equal(t, "Dr. Lang Practice", resp.Practice.Name)
		assert.Len(t, resp.Patients, 2)
	})

	t.Run("DuplicateName", func(t *testing.T) {
		_, err := write.Create(ctx, createRequest("Dr. Lang", "+49-30-2222"))
		assert.ErrorIs(t, err, ErrNameExists)
		assert.Contains(t, err.Error(), `"Dr. Lang"`)
	})

	t.Run("InvalidBirthDate", func(t *testing.T) {
		req := createRequest("Dr. Meier", "+49-30-3333")
		req.BirthDate = "01.06.1980"
		_, err := write.Create(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidBirthDate)
	})
}

func TestPhysicianWriteUsecase_Update(t *testing.T) {
	write, read, _ := newUsecases(t)
	ctx := context.Background()

	created, err := write.Create(ctx, createRequest("Dr. Nolte", "+49-30-4444"))
	require.NoError(t, err)
	id := created.ID

	t.Run("MissingVersion", func(t *testing.T) {
		_, err := write.Update(ctx, id, updateRequest("Dr. Nolte"), "")
		assert.ErrorIs(t, err, ErrVersionRequired)
	})

	t.Run("MalformedVersion", func(t *testing.T) {
		for _, token := range []string{"0", `"abc"`, `"1234"`, `'0'`} {
			_, err := write.Update(ctx, id, updateRequest("Dr. Nolte"), token)
			assert.ErrorIs(t, err, ErrVersionInvalid, "token %s", token)
			assert.Contains(t, err.Error(), token)
		}
	})

	t.Run("SuccessIncrementsVersion", func(t *testing.T) {
		newVersion, err := write.Update(ctx, id, updateRequest("Dr. Nolte-Renamed"), `"0"`)
		require.NoError(t, err)
		assert.Equal(t, 1, newVersion)

		resp, err := read.FindByID(ctx, id, false)
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Version)
		assert.Equal(t, "Dr. Nolte-Renamed", resp.Name)
		assert.Equal(t, "RAD", resp.SpecialtyCode)
		assert.Equal(t, []string{"PYTHON"}, resp.Keywords)
	})

	t.Run("StaleVersionDoesNotMutate", func(t *testing.T) {
		_, err := write.Update(ctx, id, updateRequest("Dr. Nolte-Stale"), `"0"`)
		assert.ErrorIs(t, err, ErrVersionOutdated)
		assert.Contains(t, err.Error(), "submitted version 0")
		assert.Contains(t, err.Error(), "current version 1")

		resp, err := read.FindByID(ctx, id, false)
		require.NoError(t, err)
		assert.Equal(t, "Dr. Nolte-Renamed", resp.Name)
		assert.Equal(t, 1, resp.Version)
	})

	t.Run("NewerVersionIsAccepted", func(t *testing.T) {
		newVersion, err := write.Update(ctx, id, updateRequest("Dr. Nolte-Newer"), `"5"`)
		require.NoError(t, err)
		assert.Equal(t, 2, newVersion)
	})

	t.Run("SequentialUpdates", func(t *testing.T) {
		for expected := 3; expected <= 5; expected++ {
			token := `"` + string(rune('0'+expected-1)) + `"`
			newVersion, err := write.Update(ctx, id, updateRequest("Dr. Nolte-Renamed"), token)
			require.NoError(t, err)
			assert.Equal(t, expected, newVersion)
		}
	})

	t.Run("UnknownPhysician", func(t *testing.T) {
		_, err := write.Update(ctx, 9999, updateRequest("Dr. Nobody"), `"0"`)
		assert.ErrorIs(t, err, ErrPhysicianNotFound)
		assert.Contains(t, err.Error(), "id 9999")
	})
}

func TestPhysicianWriteUsecase_AddFile(t *testing.T) {
	write, read, _ := newUsecases(t)
	ctx := context.Background()

	created, err := write.Create(ctx, createRequest("Dr. Otto", "+49-30-5555"))
	require.NoError(t, err)

	t.Run("UnknownPhysician", func(t *testing.T) {
		err := write.AddFile(ctx, 9999, []byte("x"), "a.txt", "text/plain")
		assert.ErrorIs(t, err, ErrPhysicianNotFound)
	})

	t.Run("StoreAndReplace", func(t *testing.T) {
		err := write.AddFile(ctx, created.ID, []byte("first"), "first.txt", "text/plain")
		require.NoError(t, err)

		err = write.AddFile(ctx, created.ID, []byte("second"), "second.txt", "text/plain")
		require.NoError(t, err)

		file, err := read.FindFile(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "second.txt", file.Filename)
		assert.Equal(t, []byte("second"), file.Data)
	})
}

func TestPhysicianWriteUsecase_Delete(t *testing.T) {
	write, _, db := newUsecases(t)
	ctx := context.Background()

	created, err := write.Create(ctx, createRequest("Dr. Peters", "+49-30-6666"))
	require.NoError(t, err)
	require.NoError(t, write.AddFile(ctx, created.ID, []byte("x"), "a.txt", "text/plain"))

	t.Run("CascadesToDependents", func(t *testing.T) {
		existed, err := write.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, existed)

		var count int64
		require.NoError(t, db.Model(&entity.Physician{}).Count(&count).Error)
		assert.Zero(t, count)
		require.NoError(t, db.Model(&entity.Practice{}).Count(&count).Error)
		assert.Zero(t, count)
		require.NoError(t, db.Model(&entity.Patient{}).Count(&count).Error)
		assert.Zero(t, count)
		require.NoError(t, db.Model(&entity.PhysicianFile{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("UnknownIDIsNotAnError", func(t *testing.T) {
		existed, err := write.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.False(t, existed)
	})
}
