package repository

import (
	"medpractice-backend/internal/domain/entity"
	domainRepo "medpractice-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type practiceRepository struct{}

func NewPracticeRepository() domainRepo.PracticeRepository {
	return &practiceRepository{}
}

func (r *practiceRepository) Delete(db *gorm.DB, id uint) error {
	return db.Delete(&entity.Practice{}, id).Error
}

type patientRepository struct{}

func NewPatientRepository() domainRepo.PatientRepository {
	return &patientRepository{}
}

func (r *patientRepository) Delete(db *gorm.DB, id uint) error {
	return db.Delete(&entity.Patient{}, id).Error
}
