package usecase

import (
	"context"
	"errors"
	"fmt"

	"medpractice-backend/internal/converter"
	"medpractice-backend/internal/delivery/dto"
	"medpractice-backend/internal/domain/entity"
	"medpractice-backend/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPhysicianNotFound = errors.New("physician not found")
	ErrNoPhysiciansFound = errors.New("no physicians found")
	ErrFileNotFound      = errors.New("file not found")

	// ErrInvalidSearchCriteria is reported like a not-found condition at
	// the delivery layer. Clients cannot tell a rejected filter from an
	// empty result.
	ErrInvalidSearchCriteria = errors.New("invalid search criteria")
)

type PhysicianReadUsecase interface {
	FindByID(ctx context.Context, id uint, withPatients bool) (*dto.PhysicianResponse, error)
	Find(ctx context.Context, criteria *entity.SearchCriteria, pageable entity.Pageable) (*dto.PhysicianPageResponse, error)
	FindFile(ctx context.Context, physicianID uint) (*entity.PhysicianFile, error)
}

type physicianReadUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	physicianRepo repository.PhysicianRepository
	fileRepo      repository.PhysicianFileRepository
}

func NewPhysicianReadUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	physicianRepo repository.PhysicianRepository,
	fileRepo repository.PhysicianFileRepository,
) PhysicianReadUsecase {
	return &physicianReadUsecase{
		db:            db,
		log:           log,
		physicianRepo: physicianRepo,
		fileRepo:      fileRepo,
	}
}

func (u *physicianReadUsecase) FindByID(ctx context.Context, id uint, withPatients bool) (*dto.PhysicianResponse, error) {
	physician, err := u.physicianRepo.FindByID(u.db.WithContext(ctx), id, withPatients)
	if err != nil {
		u.log.Warnf("Failed to find physician: %+v", err)
		return nil, err
	}
	if physician == nil {
		return nil, fmt.Errorf("%w: id %d", ErrPhysicianNotFound, id)
	}

	return converter.PhysicianToResponse(physician), nil
}

func (u *physicianReadUsecase) Find(ctx context.Context, criteria *entity.SearchCriteria, pageable entity.Pageable) (*dto.PhysicianPageResponse, error) {
	if criteria.IsEmpty() {
		return u.findAll(ctx, pageable)
	}

	if criteria.SpecialtyCode != "" && !entity.SpecialtyCode(criteria.SpecialtyCode).Valid() {
		u.log.Warnf("Failed to search physicians: invalid specialty code %q", criteria.SpecialtyCode)
		return nil, fmt.Errorf("%w: specialty code %q", ErrInvalidSearchCriteria, criteria.SpecialtyCode)
	}

	physicians, total, err := u.physicianRepo.FindByCriteria(u.db.WithContext(ctx), criteria, pageable)
	if err != nil {
		u.log.Warnf("Failed to search physicians: %+v", err)
		return nil, err
	}
	if len(physicians) == 0 {
		return nil, ErrNoPhysiciansFound
	}

	return u.createPage(physicians, total, pageable), nil
}

func (u *physicianReadUsecase) findAll(ctx context.Context, pageable entity.Pageable) (*dto.PhysicianPageResponse, error) {
	physicians, total, err := u.physicianRepo.FindByCriteria(u.db.WithContext(ctx), nil, pageable)
	if err != nil {
		u.log.Warnf("Failed to list physicians: %+v", err)
		return nil, err
	}
	if len(physicians) == 0 {
		return nil, ErrNoPhysiciansFound
	}

	return u.createPage(physicians, total, pageable), nil
}

func (u *physicianReadUsecase) createPage(physicians []entity.Physician, total int64, pageable entity.Pageable) *dto.PhysicianPageResponse {
	return &dto.PhysicianPageResponse{
		Content:       converter.PhysiciansToResponses(physicians),
		TotalElements: total,
		Page:          pageable.Number,
		Size:          pageable.Size,
	}
}

func (u *physicianReadUsecase) FindFile(ctx context.Context, physicianID uint) (*entity.PhysicianFile, error) {
	file, err := u.fileRepo.FindByPhysicianID(u.db.WithContext(ctx), physicianID)
	if err != nil {
		u.log.Warnf("Failed to find physician file: %+v", err)
		return nil, err
	}
	if file == nil {
		return nil, fmt.Errorf("%w: physician %d", ErrFileNotFound, physicianID)
	}
	return file, nil
}
