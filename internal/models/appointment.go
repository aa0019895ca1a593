package models

import (
	"time"

	"github.com/snehasingla/Hospital-Management-System/internal/domain"
)

type Appointment struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	PatientID         uint      `gorm:"not null;index" json:"patient_id"`
	DoctorID          uint      `gorm:"not null;index" json:"doctor_id"`
	Date              time.Time `gorm:"not null" json:"date"`
	Time              string    `gorm:"size:16;not null" json:"time"` // HH:MM
	Status            string    `gorm:"size:20;not null;default:pending;index" json:"status"`
	RescheduleMessage string    `gorm:"type:text" json:"rescheduleMessage,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	Patient *User `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  *User `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

func (a *Appointment) IsPending() bool { return a.Status == domain.AppointmentPending }
