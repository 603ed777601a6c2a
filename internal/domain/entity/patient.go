package entity

import "time"

// Patient is a person under a physician's care (1:N owned entity).
type Patient struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	BirthDate   time.Time `gorm:"type:date;not null" json:"birth_date"`
	PhoneNumber string    `gorm:"type:varchar(30)" json:"phone_number,omitempty"`
	Address     string    `gorm:"type:varchar(255)" json:"address,omitempty"`
	PhysicianID uint      `gorm:"not null;index" json:"-"`
}

func (Patient) TableName() string {
	return "patients"
}
