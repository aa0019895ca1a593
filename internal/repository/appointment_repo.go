package repository

import (
	"errors"

	"github.com/snehasingla/Hospital-Management-System/internal/domain"
	"github.com/snehasingla/Hospital-Management-System/internal/models"

	"gorm.io/gorm"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

func (r *AppointmentRepository) Create(a *models.Appointment) error {
	return r.db.Create(a).Error
}

func (r *AppointmentRepository) GetByID(id uint) (*models.Appointment, error) {
	var a models.Appointment
	err := r.db.First(&a, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *AppointmentRepository) Update(a *models.Appointment) error {
	return r.db.Save(a).Error
}

func (r *AppointmentRepository) ListByDoctor(doctorID uint) ([]models.Appointment, error) {
	var list []models.Appointment
	err := r.db.Where("doctor_id = ?", doctorID).
		Order("date ASC").
		Preload("Patient").
		Find(&list).Error
	return list, err
}

func (r *AppointmentRepository) ListByPatient(patientID uint) ([]models.Appointment, error) {
	var list []models.Appointment
	err := r.db.Where("patient_id = ?", patientID).
		Order("date ASC").
		Preload("Doctor").
		Find(&list).Error
	return list, err
}

func (r *AppointmentRepository) ListAll() ([]models.Appointment, error) {
	var list []models.Appointment
	err := r.db.Order("date DESC").
		Preload("Patient").
		Preload("Doctor").
		Find(&list).Error
	return list, err
}

// DeleteByUser removes every appointment the user participates in, as either
// patient or doctor. Used when an admin deletes the account.
func (r *AppointmentRepository) DeleteByUser(userID uint) error {
	return r.db.Where("patient_id = ? OR doctor_id = ?", userID, userID).
		Delete(&models.Appointment{}).Error
}

type DoctorStats struct {
	TotalAppointments int64 `json:"totalAppointments"`
	TotalPatients     int64 `json:"totalPatients"`
}

// StatsForDoctor counts the doctor's appointments and distinct patients.
func (r *AppointmentRepository) StatsForDoctor(doctorID uint) (*DoctorStats, error) {
	var s DoctorStats
	if err := r.db.Model(&models.Appointment{}).
		Where("doctor_id = ?", doctorID).
		Count(&s.TotalAppointments).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Appointment{}).
		Where("doctor_id = ?", doctorID).
		Distinct("patient_id").
		Count(&s.TotalPatients).Error; err != nil {
		return nil, err
	}
	return &s, nil
}
