package dto

import "time"

// Request DTOs

type PracticeRequest struct {
	Name        string `json:"name" validate:"required"`
	Address     string `json:"address" validate:"omitempty"`
	PhoneNumber string `json:"phone_number" validate:"omitempty"`
	Email       string `json:"email" validate:"omitempty,email"`
}

type PatientRequest struct {
	Name        string `json:"name" validate:"required"`
	BirthDate   string `json:"birth_date" validate:"required,datetime=2006-01-02"`
	PhoneNumber string `json:"phone_number" validate:"omitempty"`
	Address     string `json:"address" validate:"omitempty"`
}

type CreatePhysicianRequest struct {
	Name             string           `json:"name" validate:"required"`
	FieldOfSpecialty string           `json:"field_of_specialty" validate:"required"`
	SpecialtyCode    string           `json:"specialty_code" validate:"omitempty,oneof=C RAD KAR HNO AUG"`
	PhoneNumber      string           `json:"phone_number" validate:"required"`
	BirthDate        string           `json:"birth_date" validate:"required,datetime=2006-01-02"`
	Keywords         []string         `json:"keywords" validate:"omitempty,unique"`
	Practice         *PracticeRequest `json:"practice" validate:"required"`
	Patients         []PatientRequest `json:"patients" validate:"omitempty,dive"`
}

// UpdatePhysicianRequest replaces the scalar attributes of an existing
// physician. Relations are never touched on update.
type UpdatePhysicianRequest struct {
	Name             string   `json:"name" validate:"required"`
	FieldOfSpecialty string   `json:"field_of_specialty" validate:"required"`
	SpecialtyCode    string   `json:"specialty_code" validate:"omitempty,oneof=C RAD KAR HNO AUG"`
	PhoneNumber      string   `json:"phone_number" validate:"required"`
	BirthDate        string   `json:"birth_date" validate:"required,datetime=2006-01-02"`
	Keywords         []string `json:"keywords" validate:"omitempty,unique"`
}

// Response DTOs

type PracticeResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Email       string `json:"email,omitempty"`
}

type PatientResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	BirthDate   string `json:"birth_date"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Address     string `json:"address,omitempty"`
}

type PhysicianResponse struct {
	ID               uint              `json:"id"`
	Version          int               `json:"version"`
	Name             string            `json:"name"`
	FieldOfSpecialty string            `json:"field_of_specialty"`
	SpecialtyCode    string            `json:"specialty_code,omitempty"`
	PhoneNumber      string            `json:"phone_number"`
	BirthDate        string            `json:"birth_date"`
	Keywords         []string          `json:"keywords"`
	Practice         *PracticeResponse `json:"practice,omitempty"`
	Patients         []PatientResponse `json:"patients,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// PhysicianPageResponse is the page envelope for list queries.
type PhysicianPageResponse struct {
	Content       []PhysicianResponse `json:"content"`
	TotalElements int64               `json:"total_elements"`
	Page          int                 `json:"page"`
	Size          int                 `json:"size"`
}
