package converter

import (
	"time"

	"medpractice-backend/internal/delivery/dto"
	"medpractice-backend/internal/domain/entity"
)

const dateLayout = "2006-01-02"

// CreatePhysicianRequestToEntity builds the physician aggregate, including
// the nested practice and patients, ready for a single cascading insert.
func CreatePhysicianRequestToEntity(req *dto.CreatePhysicianRequest) (*entity.Physician, error) {
	birthDate, err := time.Parse(dateLayout, req.BirthDate)
	if err != nil {
		return nil, err
	}

	physician := &entity.Physician{
		Name:             req.Name,
		FieldOfSpecialty: req.FieldOfSpecialty,
		SpecialtyCode:    entity.SpecialtyCode(req.SpecialtyCode),
		PhoneNumber:      req.PhoneNumber,
		BirthDate:        birthDate,
		Keywords:         entity.Keywords(req.Keywords),
	}

	if req.Practice != nil {
		physician.Practice = &entity.Practice{
			Name:        req.Practice.Name,
			Address:     req.Practice.Address,
			PhoneNumber: req.Practice.PhoneNumber,
			Email:       req.Practice.Email,
		}
	}

	for _, patientReq := range req.Patients {
		patientBirthDate, err := time.Parse(dateLayout, patientReq.BirthDate)
		if err != nil {
			return nil, err
		}
		physician.Patients = append(physician.Patients, entity.Patient{
			Name:        patientReq.Name,
			BirthDate:   patientBirthDate,
			PhoneNumber: patientReq.PhoneNumber,
			Address:     patientReq.Address,
		})
	}

	return physician, nil
}

// UpdatePhysicianRequestToEntity maps the scalar attributes only.
func UpdatePhysicianRequestToEntity(req *dto.UpdatePhysicianRequest) (*entity.Physician, error) {
	birthDate, err := time.Parse(dateLayout, req.BirthDate)
	if err != nil {
		return nil, err
	}

	return &entity.Physician{
		Name:             req.Name,
		FieldOfSpecialty: req.FieldOfSpecialty,
		SpecialtyCode:    entity.SpecialtyCode(req.SpecialtyCode),
		PhoneNumber:      req.PhoneNumber,
		BirthDate:        birthDate,
		Keywords:         entity.Keywords(req.Keywords),
	}, nil
}

// PhysicianToResponse converts a Physician entity to its response DTO.
// A nil keyword list is normalized to an empty one, callers never see null
// where a collection is expected.
func PhysicianToResponse(physician *entity.Physician) *dto.PhysicianResponse {
	if physician == nil {
		return nil
	}

	keywords := physician.Keywords
	if keywords == nil {
		keywords = entity.Keywords{}
	}

	response := &dto.PhysicianResponse{
		ID:               physician.ID,
		Version:          physician.Version,
		Name:             physician.Name,
		FieldOfSpecialty: physician.FieldOfSpecialty,
		SpecialtyCode:    string(physician.SpecialtyCode),
		PhoneNumber:      physician.PhoneNumber,
		BirthDate:        physician.BirthDate.Format(dateLayout),
		Keywords:         keywords,
		CreatedAt:        physician.CreatedAt,
		UpdatedAt:        physician.UpdatedAt,
	}

	if physician.Practice != nil {
		response.Practice = &dto.PracticeResponse{
			ID:          physician.Practice.ID,
			Name:        physician.Practice.Name,
			Address:     physician.Practice.Address,
			PhoneNumber: physician.Practice.PhoneNumber,
			Email:       physician.Practice.Email,
		}
	}

	for _, patient := range physician.Patients {
		response.Patients = append(response.Patients, dto.PatientResponse{
			ID:          patient.ID,
			Name:        patient.Name,
			BirthDate:   patient.BirthDate.Format(dateLayout),
			PhoneNumber: patient.PhoneNumber,
			Address:     patient.Address,
		})
	}

	return response
}

// PhysiciansToResponses converts a result slice for the page envelope.
func PhysiciansToResponses(physicians []entity.Physician) []dto.PhysicianResponse {
	responses := make([]dto.PhysicianResponse, len(physicians))
	for i := range physicians {
		responses[i] = *PhysicianToResponse(&physicians[i])
	}
	return responses
}
