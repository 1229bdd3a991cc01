package repositories

import (
	"carsite-backend/models"

	"gorm.io/gorm"
)

type FavoriteRepository interface {
	Create(favorite *models.Favorite) error
	Exists(userID, carID uint) (bool, error)
	Delete(userID, carID uint) error
	GetByUser(userID uint) ([]models.Favorite, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Create fails with a uniqueness violation when the (user, car) pair
// already exists.
func (r *favoriteRepository) Create(favorite *models.Favorite) error {
	return r.db.Create(favorite).Error
}

func (r *favoriteRepository) Exists(userID, carID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Favorite{}).
		Where("user_id = ? AND car_id = ?", userID, carID).
		Count(&count).Error
	return count > 0, err
}

func (r *favoriteRepository) Delete(userID, carID uint) error {
	return r.db.Where("user_id = ? AND car_id = ?", userID, carID).
		Delete(&models.Favorite{}).Error
}

func (r *favoriteRepository) GetByUser(userID uint) ([]models.Favorite, error) {
	var favorites []models.Favorite
	err := r.db.Preload("Car.Model.Brand").
		Where("user_id = ?", userID).
		Order("added_at desc").
		Find(&favorites).Error
	return favorites, err
}
