package services

import (
	"carsite-backend/models"
	"carsite-backend/repositories"
)

type FavoriteService interface {
	Add(actorID, carID uint) (*models.Favorite, error)
	Remove(actorID, carID uint) error
	List(actorID uint) ([]models.Favorite, error)
}

type favoriteService struct {
	favoriteRepo repositories.FavoriteRepository
	carRepo      repositories.CarRepository
}

func NewFavoriteService(favoriteRepo repositories.FavoriteRepository, carRepo repositories.CarRepository) FavoriteService {
	return &favoriteService{favoriteRepo: favoriteRepo, carRepo: carRepo}
}

func (s *favoriteService) Add(actorID, carID uint) (*models.Favorite, error) {
	car, err := s.carRepo.GetByID(carID)
	if err != nil {
		return nil, err
	}

	exists, err := s.favoriteRepo.Exists(actorID, car.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyFavorite
	}

	favorite := &models.Favorite{
		UserID: actorID,
		CarID:  car.ID,
	}

	// The unique index on (user_id, car_id) is the hard guard behind
	// this check.
	if err := s.favoriteRepo.Create(favorite); err != nil {
		return nil, err
	}

	return favorite, nil
}

func (s *favoriteService) Remove(actorID, carID uint) error {
	return s.favoriteRepo.Delete(actorID, carID)
}

func (s *favoriteService) List(actorID uint) ([]models.Favorite, error) {
	return s.favoriteRepo.GetByUser(actorID)
}
