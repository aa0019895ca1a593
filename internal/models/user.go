package models

import (
	"time"

	"github.com/snehasingla/Hospital-Management-System/internal/domain"

	"gorm.io/gorm"
)

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"size:255;not null" json:"name"`
	Email        string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string `gorm:"size:255" json:"-"`
	Role         string `gorm:"size:20;not null;index" json:"role"` // patient | doctor | admin

	// Doctor-only fields.
	Specialization  string   `gorm:"size:255;index" json:"specialization,omitempty"`
	DiseasesTreated []string `gorm:"serializer:json;type:text" json:"diseasesTreated,omitempty"`

	// Patient-only fields.
	Age            *int     `json:"age,omitempty"`
	Gender         string   `gorm:"size:20" json:"gender,omitempty"`
	Phone          string   `gorm:"size:32" json:"phone,omitempty"`
	Address        string   `gorm:"size:512" json:"address,omitempty"`
	MedicalHistory []string `gorm:"serializer:json;type:text" json:"medicalHistory,omitempty"`
	Allergies      []string `gorm:"serializer:json;type:text" json:"allergies,omitempty"`
	BloodGroup     string   `gorm:"size:8" json:"bloodGroup,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) IsDoctor() bool  { return u.Role == domain.RoleDoctor }
func (u *User) IsPatient() bool { return u.Role == domain.RolePatient }
func (u *User) IsAdmin() bool   { return u.Role == domain.RoleAdmin }
