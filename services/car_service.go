package services

import (
	"time"

	"carsite-backend/models"
	"carsite-backend/repositories"
)

// RetentionDays is how long a listing lives before the cleanup job
// removes it.
const RetentionDays = 365

type CarService interface {
	CreateCar(req models.CarRequest, actorID uint) (*models.Car, error)
	GetCar(id uint) (*models.Car, error)
	GetCars(params models.CarListParams) ([]models.Car, int64, error)
	GetExpensive(page, limit int) ([]models.Car, int64, error)
	UpdateCandidate(id uint, actor *models.User) (*models.Car, error)
	UpdateCar(id uint, req models.CarRequest, actor *models.User) (*models.Car, error)
	PatchCar(id uint, req models.CarPatchRequest, actor *models.User) (*models.Car, error)
	DeleteCar(id uint, actor *models.User) error
	MarkSold(id uint) (*models.Car, error)
	AttachImage(carID uint, actor *models.User, imagePath string, isMain bool) (*models.CarImage, error)
	ClearOldCars() (int64, error)
}

type carService struct {
	carRepo repositories.CarRepository
}

func NewCarService(carRepo repositories.CarRepository) CarService {
	return &carService{carRepo: carRepo}
}

// CreateCar stamps the authenticated actor as owner; client-supplied
// ownership is never trusted.
func (s *carService) CreateCar(req models.CarRequest, actorID uint) (*models.Car, error) {
	status := req.Status
	if status == "" {
		status = models.StatusActive
	}

	car := &models.Car{
		UserID:      actorID,
		ModelID:     req.ModelID,
		Price:       req.Price,
		Year:        req.Year,
		Mileage:     req.Mileage,
		Description: req.Description,
		VIN:         req.VIN,
		Status:      status,
	}

	if err := s.carRepo.Create(car); err != nil {
		return nil, err
	}

	return s.carRepo.GetByID(car.ID)
}

func (s *carService) GetCar(id uint) (*models.Car, error) {
	return s.carRepo.GetByID(id)
}

func (s *carService) GetCars(params models.CarListParams) ([]models.Car, int64, error) {
	return s.carRepo.GetList(params)
}

func (s *carService) GetExpensive(page, limit int) ([]models.Car, int64, error) {
	return s.carRepo.GetExpensive(page, limit)
}

// UpdateCandidate fetches a car for editing through the actor's candidate
// set; used by the edit and delete-confirm pages.
func (s *carService) UpdateCandidate(id uint, actor *models.User) (*models.Car, error) {
	return s.carRepo.GetScoped(actor, id)
}

// UpdateCar resolves the target through the actor's candidate set, so a
// car owned by someone else surfaces as record-not-found.
func (s *carService) UpdateCar(id uint, req models.CarRequest, actor *models.User) (*models.Car, error) {
	car, err := s.carRepo.GetScoped(actor, id)
	if err != nil {
		return nil, err
	}

	car.ModelID = req.ModelID
	car.Price = req.Price
	car.Year = req.Year
	car.Mileage = req.Mileage
	car.Description = req.Description
	car.VIN = req.VIN
	if req.Status != "" {
		// No transition graph is enforced; any value is accepted,
		// including deleted back to active.
		car.Status = req.Status
	}

	if err := s.carRepo.Update(car); err != nil {
		return nil, err
	}

	return s.carRepo.GetByID(car.ID)
}

// PatchCar overwrites only the supplied fields; the target resolves
// through the actor's candidate set like a full update.
func (s *carService) PatchCar(id uint, req models.CarPatchRequest, actor *models.User) (*models.Car, error) {
	car, err := s.carRepo.GetScoped(actor, id)
	if err != nil {
		return nil, err
	}

	if req.ModelID != nil {
		car.ModelID = *req.ModelID
	}
	if req.Price != nil {
		car.Price = *req.Price
	}
	if req.Year != nil {
		car.Year = *req.Year
	}
	if req.Mileage != nil {
		car.Mileage = *req.Mileage
	}
	if req.Description != nil {
		car.Description = *req.Description
	}
	if req.VIN != nil {
		car.VIN = *req.VIN
	}
	if req.Status != nil {
		car.Status = *req.Status
	}

	if err := s.carRepo.Update(car); err != nil {
		return nil, err
	}

	return s.carRepo.GetByID(car.ID)
}

func (s *carService) DeleteCar(id uint, actor *models.User) error {
	car, err := s.carRepo.GetScoped(actor, id)
	if err != nil {
		return err
	}
	return s.carRepo.Delete(car.ID)
}

// MarkSold flips any addressable car to sold. There is no ownership check
// here; the behavior is kept exactly as the API has always worked.
func (s *carService) MarkSold(id uint) (*models.Car, error) {
	car, err := s.carRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	car.Status = models.StatusSold
	if err := s.carRepo.Update(car); err != nil {
		return nil, err
	}

	return car, nil
}

func (s *carService) AttachImage(carID uint, actor *models.User, imagePath string, isMain bool) (*models.CarImage, error) {
	car, err := s.carRepo.GetByID(carID)
	if err != nil {
		return nil, err
	}

	if !models.CanModify(actor, car) {
		return nil, ErrPermissionDenied
	}

	image := &models.CarImage{
		CarID:     car.ID,
		ImagePath: imagePath,
		IsMain:    isMain,
	}

	if err := s.carRepo.AddImage(image); err != nil {
		return nil, err
	}

	return image, nil
}

// ClearOldCars deletes listings older than the retention window and
// reports how many went. Running it again right away removes nothing.
func (s *carService) ClearOldCars() (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -RetentionDays)
	return s.carRepo.DeleteOlderThan(cutoff)
}
