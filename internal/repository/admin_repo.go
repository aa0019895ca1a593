package repository

import (
	"github.com/snehasingla/Hospital-Management-System/internal/domain"
	"github.com/snehasingla/Hospital-Management-System/internal/models"

	"gorm.io/gorm"
)

type DashboardStats struct {
	TotalUsers            int64 `json:"totalUsers"`
	TotalDoctors          int64 `json:"totalDoctors"`
	TotalPatients         int64 `json:"totalPatients"`
	TotalAppointments     int64 `json:"totalAppointments"`
	ConfirmedAppointments int64 `json:"confirmedAppointments"`
	PendingAppointments   int64 `json:"pendingAppointments"`
	RejectedAppointments  int64 `json:"rejectedAppointments"`
	OnlineUsers           int64 `json:"onlineUsers"`
}

type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// GetDashboardStats aggregates platform-wide counts. OnlineUsers is filled in
// by the handler from the presence registry, not from storage.
func (r *AdminRepository) GetDashboardStats() (*DashboardStats, error) {
	var s DashboardStats
	if err := r.db.Model(&models.User{}).Count(&s.TotalUsers).Error; err != nil {
		return nil, err
	}
	r.db.Model(&models.User{}).Where("role = ?", domain.RoleDoctor).Count(&s.TotalDoctors)
	r.db.Model(&models.User{}).Where("role = ?", domain.RolePatient).Count(&s.TotalPatients)
	r.db.Model(&models.Appointment{}).Count(&s.TotalAppointments)
	r.db.Model(&models.Appointment{}).Where("status = ?", domain.AppointmentConfirmed).Count(&s.ConfirmedAppointments)
	r.db.Model(&models.Appointment{}).Where("status = ?", domain.AppointmentPending).Count(&s.PendingAppointments)
	r.db.Model(&models.Appointment{}).Where("status = ?", domain.AppointmentRejected).Count(&s.RejectedAppointments)
	return &s, nil
}
