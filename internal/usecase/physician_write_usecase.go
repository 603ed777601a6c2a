package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"medpractice-backend/internal/converter"
	"medpractice-backend/internal/delivery/dto"
	"medpractice-backend/internal/domain/entity"
	"medpractice-backend/internal/domain/repository"
	"medpractice-backend/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrNameExists        = errors.New("name already exists")
	ErrPhoneNumberExists = errors.New("phone number already exists")
	ErrInvalidBirthDate  = errors.New("invalid birth date, use YYYY-MM-DD")
	ErrVersionRequired   = errors.New("version token required")
	ErrVersionInvalid    = errors.New("version token invalid")
	ErrVersionOutdated   = errors.New("version token outdated")
)

// versionPattern accepts a quoted non-negative integer of up to 3 digits,
// the If-Match token format.
var versionPattern = regexp.MustCompile(`^"\d{1,3}"$`)

type PhysicianWriteUsecase interface {
	Create(ctx context.Context, req *dto.CreatePhysicianRequest) (*dto.PhysicianResponse, error)
	// Update replaces the scalar attributes of the physician identified by
	// id, guarded by the version token. It returns the new version number.
	Update(ctx context.Context, id uint, req *dto.UpdatePhysicianRequest, version string) (int, error)
	AddFile(ctx context.Context, physicianID uint, data []byte, filename, mimeType string) error
	// Delete removes the physician and all dependent rows atomically.
	// Deleting an unknown id is not an error, it yields false.
	Delete(ctx context.Context, id uint) (bool, error)
}

type physicianWriteUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	physicianRepo repository.PhysicianRepository
	practiceRepo  repository.PracticeRepository
	patientRepo   repository.PatientRepository
	fileRepo      repository.PhysicianFileRepository
	mailService   service.MailService
}

func NewPhysicianWriteUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	physicianRepo repository.PhysicianRepository,
	practiceRepo repository.PracticeRepository,
	patientRepo repository.PatientRepository,
	fileRepo repository.PhysicianFileRepository,
	mailService service.MailService,
) PhysicianWriteUsecase {
	return &physicianWriteUsecase{
		db:            db,
		log:           log,
		physicianRepo: physicianRepo,
		practiceRepo:  practiceRepo,
		patientRepo:   patientRepo,
		fileRepo:      fileRepo,
		mailService:   mailService,
	}
}

func (u *physicianWriteUsecase) Create(ctx context.Context, req *dto.CreatePhysicianRequest) (*dto.PhysicianResponse, error) {
	physician, err := converter.CreatePhysicianRequestToEntity(req)
	if err != nil {
		return nil, ErrInvalidBirthDate
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	exists, err := u.physicianRepo.ExistsByName(tx, physician.Name)
	if err != nil {
		u.log.Warnf("Failed to check physician name: %+v", err)
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %q", ErrNameExists, physician.Name)
	}

	// Cascading insert of the physician with its practice and patients.
	if err := u.physicianRepo.Create(tx, physician); err != nil {
		u.log.Warnf("Failed to create physician: %+v", err)
		if isDuplicateKeyError(err, "name") {
			return nil, fmt.Errorf("%w: %q", ErrNameExists, physician.Name)
		}
		if isDuplicateKeyError(err, "phone_number") {
			return nil, fmt.Errorf("%w: %q", ErrPhoneNumberExists, physician.PhoneNumber)
		}
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.notifyCreated(physician)

	return converter.PhysicianToResponse(physician), nil
}

// notifyCreated sends the new-physician mail in the background. Delivery
// failures are logged and never surface to the caller.
func (u *physicianWriteUsecase) notifyCreated(physician *entity.Physician) {
	subject := fmt.Sprintf("New physician %d", physician.ID)
	practiceName := "N/A"
	if physician.Practice != nil {
		practiceName = physician.Practice.Name
	}
	body := fmt.Sprintf("The physician with practice <strong>%s</strong> has been created", practiceName)

	go func() {
		if err := u.mailService.Send(context.Background(), subject, body); err != nil {
			u.log.Warnf("Failed to send notification mail: %+v", err)
		}
	}()
}

func (u *physicianWriteUsecase) Update(ctx context.Context, id uint, req *dto.UpdatePhysicianRequest, version string) (int, error) {
	if version == "" {
		return 0, ErrVersionRequired
	}
	if !versionPattern.MatchString(version) {
		return 0, fmt.Errorf("%w: %s", ErrVersionInvalid, version)
	}
	submitted, err := strconv.Atoi(version[1 : len(version)-1])
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrVersionInvalid, version)
	}

	incoming, err := converter.UpdatePhysicianRequestToEntity(req)
	if err != nil {
		return 0, ErrInvalidBirthDate
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	current, err := u.physicianRepo.FindByID(tx, id, false)
	if err != nil {
		u.log.Warnf("Failed to find physician: %+v", err)
		return 0, err
	}
	if current == nil {
		return 0, fmt.Errorf("%w: id %d", ErrPhysicianNotFound, id)
	}

	// A submitted version greater than or equal to the stored one is
	// accepted; only a strictly older token is rejected.
	if submitted < current.Version {
		u.log.Warnf("Rejected outdated version %d for physician %d (current %d)", submitted, id, current.Version)
		return 0, fmt.Errorf("%w: submitted version %d, current version %d", ErrVersionOutdated, submitted, current.Version)
	}

	// Merge the scalar attributes onto the persisted row; relations stay
	// untouched on this path.
	current.Name = incoming.Name
	current.FieldOfSpecialty = incoming.FieldOfSpecialty
	current.SpecialtyCode = incoming.SpecialtyCode
	current.PhoneNumber = incoming.PhoneNumber
	current.BirthDate = incoming.BirthDate
	current.Keywords = incoming.Keywords

	rows, err := u.physicianRepo.UpdateScalarsGuarded(tx, current, current.Version)
	if err != nil {
		u.log.Warnf("Failed to update physician: %+v", err)
		if isDuplicateKeyError(err, "name") {
			return 0, fmt.Errorf("%w: %q", ErrNameExists, current.Name)
		}
		if isDuplicateKeyError(err, "phone_number") {
			return 0, fmt.Errorf("%w: %q", ErrPhoneNumberExists, current.PhoneNumber)
		}
		return 0, err
	}
	// The row changed between the version check and the write.
	if rows == 0 {
		return 0, fmt.Errorf("%w: submitted version %d", ErrVersionOutdated, submitted)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return 0, err
	}

	return current.Version + 1, nil
}

func (u *physicianWriteUsecase) AddFile(ctx context.Context, physicianID uint, data []byte, filename, mimeType string) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	physician, err := u.physicianRepo.FindByID(tx, physicianID, false)
	if err != nil {
		u.log.Warnf("Failed to find physician: %+v", err)
		return err
	}
	if physician == nil {
		return fmt.Errorf("%w: id %d", ErrPhysicianNotFound, physicianID)
	}

	// Replace any previously attached file.
	if err := u.fileRepo.DeleteByPhysicianID(tx, physicianID); err != nil {
		u.log.Warnf("Failed to delete previous file: %+v", err)
		return err
	}

	file := &entity.PhysicianFile{
		Filename:    filename,
		MimeType:    mimeType,
		Data:        data,
		PhysicianID: physicianID,
	}
	if err := u.fileRepo.Create(tx, file); err != nil {
		u.log.Warnf("Failed to create physician file: %+v", err)
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

func (u *physicianWriteUsecase) Delete(ctx context.Context, id uint) (bool, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	physician, err := u.physicianRepo.FindByID(tx, id, true)
	if err != nil {
		u.log.Warnf("Failed to find physician: %+v", err)
		return false, err
	}
	if physician == nil {
		return false, nil
	}

	// Dependent rows are removed explicitly, relying on ORM-level cascade
	// for deletion is not an option here.
	if err := u.fileRepo.DeleteByPhysicianID(tx, id); err != nil {
		u.log.Warnf("Failed to delete physician file: %+v", err)
		return false, err
	}
	if physician.Practice != nil {
		if err := u.practiceRepo.Delete(tx, physician.Practice.ID); err != nil {
			u.log.Warnf("Failed to delete practice: %+v", err)
			return false, err
		}
	}
	for _, patient := range physician.Patients {
		if err := u.patientRepo.Delete(tx, patient.ID); err != nil {
			u.log.Warnf("Failed to delete patient: %+v", err)
			return false, err
		}
	}

	rows, err := u.physicianRepo.Delete(tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete physician: %+v", err)
		return false, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return false, err
	}

	return rows > 0, nil
}
