package entity

// PhysicianFile is an optional binary attachment (e.g. a photo) owned by a
// physician. At most one file exists per physician; uploading a new one
// replaces the previous row.
type PhysicianFile struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Filename    string `gorm:"type:varchar(255)" json:"filename"`
	MimeType    string `gorm:"type:varchar(100)" json:"mime_type"`
	Data        []byte `json:"-"`
	PhysicianID uint   `gorm:"not null;index" json:"-"`
}

func (PhysicianFile) TableName() string {
	return "physician_files"
}
