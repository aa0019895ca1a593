package handler

import (
	"log"
	"net/http"

	"github.com/snehasingla/Hospital-Management-System/internal/middleware"
	"github.com/snehasingla/Hospital-Management-System/internal/repository"

	"github.com/gin-gonic/gin"
)

type PatientHandler struct {
	userRepo *repository.UserRepository
}

func NewPatientHandler(userRepo *repository.UserRepository) *PatientHandler {
	return &PatientHandler{userRepo: userRepo}
}

func (h *PatientHandler) GetProfile(c *gin.Context) {
	patientID := middleware.GetUserID(c)
	patient, err := h.userRepo.GetByID(patientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching patient profile"})
		return
	}
	c.JSON(http.StatusOK, patient)
}

type UpdatePatientRequest struct {
	Name           *string  `json:"name"`
	Age            *int     `json:"age"`
	Gender         *string  `json:"gender"`
	Phone          *string  `json:"phone"`
	Address        *string  `json:"address"`
	MedicalHistory []string `json:"medicalHistory"`
	Allergies      []string `json:"allergies"`
	BloodGroup     *string  `json:"bloodGroup"`
}

// UpdateProfile patches the patient's own profile; only supplied fields change.
func (h *PatientHandler) UpdateProfile(c *gin.Context) {
	patientID := middleware.GetUserID(c)
	var req UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	patient, err := h.userRepo.GetByID(patientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching patient profile"})
		return
	}
	if req.Name != nil {
		patient.Name = *req.Name
	}
	if req.Age != nil {
		patient.Age = req.Age
	}
	if req.Gender != nil {
		patient.Gender = *req.Gender
	}
	if req.Phone != nil {
		patient.Phone = *req.Phone
	}
	if req.Address != nil {
		patient.Address = *req.Address
	}
	if req.MedicalHistory != nil {
		patient.MedicalHistory = req.MedicalHistory
	}
	if req.Allergies != nil {
		patient.Allergies = req.Allergies
	}
	if req.BloodGroup != nil {
		patient.BloodGroup = *req.BloodGroup
	}
	if err := h.userRepo.Update(patient); err != nil {
		log.Printf("[patients] update profile failed: id=%d err=%v", patientID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, patient)
}
