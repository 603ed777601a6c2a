package entity

// Practice is the physician's place of business. Exactly one practice
// belongs to every physician; it is created and deleted with its owner.
type Practice struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Address     string `gorm:"type:varchar(255)" json:"address,omitempty"`
	PhoneNumber string `gorm:"type:varchar(30)" json:"phone_number,omitempty"`
	Email       string `gorm:"type:varchar(255)" json:"email,omitempty"`
	PhysicianID uint   `gorm:"not null;index" json:"-"`
}

func (Practice) TableName() string {
	return "practices"
}
