package model

import "time"

// Supplier represents a product supplier. The contact fields are optional;
// email is unique when provided (NULL emails do not collide).
type Supplier struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"type:varchar(150);not null"`
	ContactPerson string    `json:"contact_person" gorm:"type:varchar(100)"`
	Email         *string   `json:"email" gorm:"type:varchar(100);uniqueIndex"`
	Phone         string    `json:"phone" gorm:"type:varchar(20)"`
	Address       string    `json:"address" gorm:"type:text"`
	CreatedAt     time.Time `json:"created_at"`
}
