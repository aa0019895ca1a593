package handler

import (
	"log"
	"net/http"

	"github.com/snehasingla/Hospital-Management-System/internal/domain"
	"github.com/snehasingla/Hospital-Management-System/internal/models"
	"github.com/snehasingla/Hospital-Management-System/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type SignupRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required,oneof=patient doctor admin"`

	// Doctor fields; specialization is mandatory for doctors.
	Specialization  string   `json:"specialization"`
	DiseasesTreated []string `json:"diseasesTreated"`

	// Optional patient fields.
	Age            *int     `json:"age"`
	Gender         string   `json:"gender"`
	Phone          string   `json:"phone"`
	Address        string   `json:"address"`
	MedicalHistory []string `json:"medicalHistory"`
	Allergies      []string `json:"allergies"`
	BloodGroup     string   `json:"bloodGroup"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Role == domain.RoleDoctor && req.Specialization == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Specialization is required for doctors"})
		return
	}
	u := &models.User{
		Name:            req.Name,
		Email:           req.Email,
		Role:            req.Role,
		Specialization:  req.Specialization,
		DiseasesTreated: req.DiseasesTreated,
		Age:             req.Age,
		Gender:          req.Gender,
		Phone:           req.Phone,
		Address:         req.Address,
		MedicalHistory:  req.MedicalHistory,
		Allergies:       req.Allergies,
		BloodGroup:      req.BloodGroup,
	}
	access, refresh, err := h.svc.Register(u, req.Password)
	if err != nil {
		if err == service.ErrEmailExists {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("[auth] signup failed: email=%s err=%v", req.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error during signup"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":       "Signup successful",
		"token":         access,
		"refresh_token": refresh,
		"user":          u,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, access, refresh, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		if err == service.ErrInvalidCreds {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("[auth] login failed: email=%s err=%v", req.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error during login"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":       "Login successful",
		"token":         access,
		"refresh_token": refresh,
		"user":          u,
	})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	access, refresh, err := h.svc.RefreshToken(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": access, "refresh_token": refresh})
}
