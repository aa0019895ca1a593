package handler

import (
	"net/http"

	"github.com/snehasingla/Hospital-Management-System/internal/middleware"
	"github.com/snehasingla/Hospital-Management-System/internal/repository"

	"github.com/gin-gonic/gin"
)

type DoctorHandler struct {
	userRepo *repository.UserRepository
	apptRepo *repository.AppointmentRepository
}

func NewDoctorHandler(userRepo *repository.UserRepository, apptRepo *repository.AppointmentRepository) *DoctorHandler {
	return &DoctorHandler{userRepo: userRepo, apptRepo: apptRepo}
}

// GetProfile returns the doctor's profile with live appointment totals.
func (h *DoctorHandler) GetProfile(c *gin.Context) {
	doctorID := middleware.GetUserID(c)
	doctor, err := h.userRepo.GetByID(doctorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching doctor profile"})
		return
	}
	stats, err := h.apptRepo.StatsForDoctor(doctorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching doctor profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"name":              doctor.Name,
		"email":             doctor.Email,
		"specialization":    doctor.Specialization,
		"diseasesTreated":   doctor.DiseasesTreated,
		"totalPatients":     stats.TotalPatients,
		"totalAppointments": stats.TotalAppointments,
	})
}
