package repository

import (
	"errors"

	"medpractice-backend/internal/domain/entity"
	domainRepo "medpractice-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type physicianRepository struct {
	qb *QueryBuilder
}

func NewPhysicianRepository(qb *QueryBuilder) domainRepo.PhysicianRepository {
	return &physicianRepository{qb: qb}
}

func (r *physicianRepository) Create(db *gorm.DB, physician *entity.Physician) error {
	return db.Create(physician).Error
}

func (r *physicianRepository) FindByID(db *gorm.DB, id uint, withPatients bool) (*entity.Physician, error) {
	query := db.Preload("Practice")
	if withPatients {
		query = query.Preload("Patients")
	}

	var physician entity.Physician
	err := query.First(&physician, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &physician, nil
}

func (r *physicianRepository) FindByCriteria(db *gorm.DB, criteria *entity.SearchCriteria, pageable entity.Pageable) ([]entity.Physician, int64, error) {
	var total int64
	if err := r.qb.Build(db, criteria).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.qb.Paginate(r.qb.Build(db, criteria), pageable).
		Preload("Practice").
		Order("physicians.id")

	var physicians []entity.Physician
	if err := query.Find(&physicians).Error; err != nil {
		return nil, 0, err
	}
	return physicians, total, nil
}

func (r *physicianRepository) ExistsByName(db *gorm.DB, name string) (bool, error) {
	var count int64
	err := db.Model(&entity.Physician{}).Where("name = ?", name).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *physicianRepository) UpdateScalarsGuarded(db *gorm.DB, physician *entity.Physician, expectedVersion int) (int64, error) {
	result := db.Model(&entity.Physician{}).
		Where("id = ? AND version = ?", physician.ID, expectedVersion).
		Updates(map[string]interface{}{
			"name":               physician.Name,
			"field_of_specialty": physician.FieldOfSpecialty,
			"specialty_code":     physician.SpecialtyCode,
			"phone_number":       physician.PhoneNumber,
			"birth_date":         physician.BirthDate,
			"keywords":           physician.Keywords,
			"version":            gorm.Expr("version + 1"),
		})
	return result.RowsAffected, result.Error
}

func (r *physicianRepository) Delete(db *gorm.DB, id uint) (int64, error) {
	result := db.Delete(&entity.Physician{}, id)
	return result.RowsAffected, result.Error
}
