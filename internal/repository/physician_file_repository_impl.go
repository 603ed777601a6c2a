package repository

import (
	"errors"

	"medpractice-backend/internal/domain/entity"
	domainRepo "medpractice-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type physicianFileRepository struct{}

func NewPhysicianFileRepository() domainRepo.PhysicianFileRepository {
	return &physicianFileRepository{}
}

func (r *physicianFileRepository) Create(db *gorm.DB, file *entity.PhysicianFile) error {
	return db.Create(file).Error
}

func (r *physicianFileRepository) FindByPhysicianID(db *gorm.DB, physicianID uint) (*entity.PhysicianFile, error) {
	var file entity.PhysicianFile
	err := db.Where("physician_id = ?", physicianID).First(&file).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &file, nil
}

func (r *physicianFileRepository) DeleteByPhysicianID(db *gorm.DB, physicianID uint) error {
	return db.Where("physician_id = ?", physicianID).Delete(&entity.PhysicianFile{}).Error
}
