package models

// Teacher is a staff account. Accounts are written by the provisioning CLI;
// login/session handling lives outside this service.
type Teacher struct {
	ID           string  `json:"id" gorm:"primaryKey;type:uuid" validate:"required,uuid"`
	Username     string  `json:"username" gorm:"uniqueIndex;not null" validate:"required"`
	PasswordHash string  `json:"-" gorm:"not null"`
	ClassID      *string `json:"class_id,omitempty" gorm:"index;type:uuid" validate:"omitempty,uuid"`
	IsAdmin      bool    `json:"is_admin" gorm:"default:false"`
	IsActive     bool    `json:"is_active" gorm:"default:true"`
}
