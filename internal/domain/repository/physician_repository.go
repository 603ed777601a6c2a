package repository

import (
	"medpractice-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type PhysicianRepository interface {
	// Create persists the physician together with its nested practice and
	// patients in one cascading insert.
	Create(db *gorm.DB, physician *entity.Physician) error

	// FindByID loads the physician with its practice; patients are joined
	// in only when requested. Returns (nil, nil) when the id is unknown.
	FindByID(db *gorm.DB, id uint, withPatients bool) (*entity.Physician, error)

	// FindByCriteria runs the compiled search query and returns the page
	// content plus the total element count for the criteria.
	FindByCriteria(db *gorm.DB, criteria *entity.SearchCriteria, pageable entity.Pageable) ([]entity.Physician, int64, error)

	ExistsByName(db *gorm.DB, name string) (bool, error)

	// UpdateScalarsGuarded writes the physician's scalar columns with a
	// conditional UPDATE on the expected version and increments the version
	// column in the same statement. Returns the number of affected rows;
	// zero means the row changed concurrently (or vanished).
	UpdateScalarsGuarded(db *gorm.DB, physician *entity.Physician, expectedVersion int) (int64, error)

	// Delete removes the physician row only and reports affected rows.
	// Dependent rows are deleted explicitly by the caller beforehand.
	Delete(db *gorm.DB, id uint) (int64, error)
}

type PracticeRepository interface {
	Delete(db *gorm.DB, id uint) error
}

type PatientRepository interface {
	Delete(db *gorm.DB, id uint) error
}

type PhysicianFileRepository interface {
	Create(db *gorm.DB, file *entity.PhysicianFile) error
	// FindByPhysicianID returns (nil, nil) when no file is attached.
	FindByPhysicianID(db *gorm.DB, physicianID uint) (*entity.PhysicianFile, error)
	DeleteByPhysicianID(db *gorm.DB, physicianID uint) error
}
