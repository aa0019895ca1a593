package handler

import (
	"net/http"

	"github.com/snehasingla/Hospital-Management-System/internal/repository"

	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	userRepo *repository.UserRepository
}

func NewSearchHandler(userRepo *repository.UserRepository) *SearchHandler {
	return &SearchHandler{userRepo: userRepo}
}

// SearchDoctors filters doctors by specialization and/or treated disease.
// Both filters are case-insensitive substring matches; no filter returns all
// doctors. Password hashes never serialize.
func (h *SearchHandler) SearchDoctors(c *gin.Context) {
	doctors, err := h.userRepo.SearchDoctors(c.Query("specialization"), c.Query("disease"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search doctors"})
		return
	}
	c.JSON(http.StatusOK, doctors)
}

func (h *SearchHandler) ListSpecializations(c *gin.Context) {
	specs, err := h.userRepo.DistinctSpecializations()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch specializations"})
		return
	}
	c.JSON(http.StatusOK, specs)
}
