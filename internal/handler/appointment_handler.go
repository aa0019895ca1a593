package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/snehasingla/Hospital-Management-System/internal/domain"
	"github.com/snehasingla/Hospital-Management-System/internal/middleware"
	"github.com/snehasingla/Hospital-Management-System/internal/models"
	"github.com/snehasingla/Hospital-Management-System/internal/repository"
	"github.com/snehasingla/Hospital-Management-System/internal/service"

	"github.com/gin-gonic/gin"
)

type AppointmentHandler struct {
	apptRepo *repository.AppointmentRepository
	userRepo *repository.UserRepository
	notifSvc *service.NotificationService
}

func NewAppointmentHandler(apptRepo *repository.AppointmentRepository, userRepo *repository.UserRepository, notifSvc *service.NotificationService) *AppointmentHandler {
	return &AppointmentHandler{apptRepo: apptRepo, userRepo: userRepo, notifSvc: notifSvc}
}

type BookRequest struct {
	DoctorID uint   `json:"doctorId" binding:"required"`
	Date     string `json:"date" binding:"required"` // YYYY-MM-DD
	Time     string `json:"time" binding:"required,timeslot"`
}

type UpdateAppointmentRequest struct {
	Status            string `json:"status" binding:"omitempty,oneof=confirmed rejected rescheduled"`
	NewDate           string `json:"newDate"`
	NewTime           string `json:"newTime" binding:"omitempty,timeslot"`
	RescheduleMessage string `json:"rescheduleMessage"`
}

// Book creates a pending appointment and dispatches an appointment_booked
// notification to the doctor. Notification delivery is best-effort: the
// booking succeeds even when the notification pipeline does not.
func (h *AppointmentHandler) Book(c *gin.Context) {
	patientID := middleware.GetUserID(c)
	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide doctorId, date, and time"})
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format (use YYYY-MM-DD)"})
		return
	}
	patient, err := h.userRepo.GetByID(patientID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
		return
	}
	doctor, err := h.userRepo.GetByID(req.DoctorID)
	if err != nil || !doctor.IsDoctor() {
		c.JSON(http.StatusNotFound, gin.H{"error": "Doctor not found or invalid doctorId"})
		return
	}
	appt := &models.Appointment{
		PatientID: patientID,
		DoctorID:  doctor.ID,
		Date:      date,
		Time:      req.Time,
		Status:    domain.AppointmentPending,
	}
	if err := h.apptRepo.Create(appt); err != nil {
		log.Printf("[appointments] book failed: patient=%d doctor=%d err=%v", patientID, doctor.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while booking the appointment"})
		return
	}
	h.notifSvc.NotifyAppointmentBooked(doctor.ID, patient.Name, appt.ID)
	c.JSON(http.StatusCreated, gin.H{
		"message":     "Appointment booked successfully",
		"appointment": appt,
	})
}

func (h *AppointmentHandler) ListForDoctor(c *gin.Context) {
	doctorID := middleware.GetUserID(c)
	list, err := h.apptRepo.ListByDoctor(doctorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch appointments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": list})
}

func (h *AppointmentHandler) ListForPatient(c *gin.Context) {
	patientID := middleware.GetUserID(c)
	list, err := h.apptRepo.ListByPatient(patientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch appointments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": list})
}

// Update lets the owning doctor confirm, reject or reschedule an appointment
// and notifies the patient of the transition.
func (h *AppointmentHandler) Update(c *gin.Context) {
	doctorID := middleware.GetUserID(c)
	apptID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid appointment id"})
		return
	}
	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	appt, err := h.apptRepo.GetByID(uint(apptID))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update appointment"})
		return
	}
	if appt.DoctorID != doctorID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized to update this appointment"})
		return
	}
	if req.NewDate != "" {
		date, err := time.Parse("2006-01-02", req.NewDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid newDate format (use YYYY-MM-DD)"})
			return
		}
		appt.Date = date
	}
	if req.NewTime != "" {
		appt.Time = req.NewTime
	}
	if req.RescheduleMessage != "" {
		appt.RescheduleMessage = req.RescheduleMessage
	}
	if req.Status != "" {
		appt.Status = req.Status
	}
	if err := h.apptRepo.Update(appt); err != nil {
		log.Printf("[appointments] update failed: id=%d err=%v", appt.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update appointment"})
		return
	}
	if req.Status != "" {
		h.notifSvc.NotifyAppointmentStatus(appt.PatientID, req.Status, appt.ID)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment updated successfully", "appointment": appt})
}

func (h *AppointmentHandler) DoctorStats(c *gin.Context) {
	doctorID := middleware.GetUserID(c)
	stats, err := h.apptRepo.StatsForDoctor(doctorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
