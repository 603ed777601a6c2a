package entity

import "time"

// SpecialtyCode is the enumerated medical specialty of a physician.
type SpecialtyCode string

const (
	SpecialtySurgery       SpecialtyCode = "C"
	SpecialtyRadiology     SpecialtyCode = "RAD"
	SpecialtyCardiology    SpecialtyCode = "KAR"
	SpecialtyENT           SpecialtyCode = "HNO"
	SpecialtyOphthalmology SpecialtyCode = "AUG"
)

// Valid reports whether c is one of the five known specialty codes.
func (c SpecialtyCode) Valid() bool {
	switch c {
	case SpecialtySurgery, SpecialtyRadiology, SpecialtyCardiology, SpecialtyENT, SpecialtyOphthalmology:
		return true
	}
	return false
}

// Physician is the primary managed entity. Version starts at 0 on creation
// and is incremented by the persistence layer on every successful update.
type Physician struct {
	ID               uint          `gorm:"primaryKey" json:"id"`
	Version          int           `gorm:"not null;default:0" json:"version"`
	Name             string        `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	FieldOfSpecialty string        `gorm:"type:varchar(100);not null" json:"field_of_specialty"`
	SpecialtyCode    SpecialtyCode `gorm:"type:varchar(3);index" json:"specialty_code"`
	PhoneNumber      string        `gorm:"type:varchar(30);uniqueIndex;not null" json:"phone_number"`
	BirthDate        time.Time     `gorm:"type:date" json:"birth_date"`
	Keywords         Keywords      `gorm:"type:text" json:"keywords"`
	CreatedAt        time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time     `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Practice *Practice      `gorm:"foreignKey:PhysicianID" json:"practice,omitempty"`
	Patients []Patient      `gorm:"foreignKey:PhysicianID" json:"patients,omitempty"`
	File     *PhysicianFile `gorm:"foreignKey:PhysicianID" json:"file,omitempty"`
}

func (Physician) TableName() string {
	return "physicians"
}
