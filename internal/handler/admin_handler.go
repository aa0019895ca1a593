package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/snehasingla/Hospital-Management-System/internal/domain"
	"github.com/snehasingla/Hospital-Management-System/internal/repository"
	"github.com/snehasingla/Hospital-Management-System/internal/ws"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminRepo *repository.AdminRepository
	userRepo  *repository.UserRepository
	apptRepo  *repository.AppointmentRepository
	registry  *ws.Registry
}

func NewAdminHandler(adminRepo *repository.AdminRepository, userRepo *repository.UserRepository, apptRepo *repository.AppointmentRepository, registry *ws.Registry) *AdminHandler {
	return &AdminHandler{adminRepo: adminRepo, userRepo: userRepo, apptRepo: apptRepo, registry: registry}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.userRepo.ListAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *AdminHandler) ListUsersByRole(c *gin.Context) {
	role := c.Param("role")
	if !domain.ValidRole(role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}
	users, err := h.userRepo.ListByRole(role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *AdminHandler) ListAppointments(c *gin.Context) {
	list, err := h.apptRepo.ListAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch appointments"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.adminRepo.GetDashboardStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch statistics"})
		return
	}
	if h.registry != nil {
		stats.OnlineUsers = h.registry.OnlineUsers()
	}
	c.JSON(http.StatusOK, stats)
}

// DeleteUser removes the account and cascades to the user's appointments.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	if err := h.userRepo.Delete(uint(userID)); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}
	if err := h.apptRepo.DeleteByUser(uint(userID)); err != nil {
		log.Printf("[admin] cascade appointment delete failed: user=%d err=%v", userID, err)
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=patient doctor admin"`
}

func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}
	u, err := h.userRepo.UpdateRole(uint(userID), req.Role)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user role"})
		return
	}
	c.JSON(http.StatusOK, u)
}
