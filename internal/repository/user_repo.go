package repository

import (
	"errors"
	"sort"
	"strings"

	"github.com/snehasingla/Hospital-Management-System/internal/domain"
	"github.com/snehasingla/Hospital-Management-System/internal/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *models.User) error {
	return r.db.Create(u).Error
}

func (r *UserRepository) GetByID(id uint) (*models.User, error) {
	var u models.User
	err := r.db.First(&u, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var u models.User
	err := r.db.Where("email = ?", email).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Update(u *models.User) error {
	return r.db.Save(u).Error
}

func (r *UserRepository) Delete(id uint) error {
	res := r.db.Delete(&models.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UserRepository) ListAll() ([]models.User, error) {
	var users []models.User
	err := r.db.Order("created_at DESC").Find(&users).Error
	return users, err
}

func (r *UserRepository) ListByRole(role string) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("role = ?", role).Order("created_at DESC").Find(&users).Error
	return users, err
}

func (r *UserRepository) UpdateRole(id uint, role string) (*models.User, error) {
	u, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	u.Role = role
	if err := r.db.Save(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

// SearchDoctors filters doctors by case-insensitive substring match on
// specialization and/or treated disease. Empty filters match everything.
func (r *UserRepository) SearchDoctors(specialization, disease string) ([]models.User, error) {
	q := r.db.Where("role = ?", domain.RoleDoctor)
	if specialization != "" {
		q = q.Where("LOWER(specialization) LIKE ?", "%"+strings.ToLower(specialization)+"%")
	}
	if disease != "" {
		q = q.Where("LOWER(diseases_treated) LIKE ?", "%"+strings.ToLower(disease)+"%")
	}
	var doctors []models.User
	err := q.Order("name ASC").Find(&doctors).Error
	return doctors, err
}

// DistinctSpecializations returns the sorted set of non-empty doctor specializations.
func (r *UserRepository) DistinctSpecializations() ([]string, error) {
	var specs []string
	err := r.db.Model(&models.User{}).
		Where("role = ? AND specialization <> ''", domain.RoleDoctor).
		Distinct().
		Pluck("specialization", &specs).Error
	if err != nil {
		return nil, err
	}
	sort.Strings(specs)
	return specs, nil
}
