package repositories

import (
	"carsite-backend/models"

	"gorm.io/gorm"
)

type CatalogRepository interface {
	GetBrands() ([]models.Brand, error)
	CreateBrand(brand *models.Brand) error
	DeleteBrand(id uint) error
	GetModels(brandID uint) ([]models.Model, error)
	GetModelByID(id uint) (*models.Model, error)
	CreateModel(model *models.Model) error
	DeleteModel(id uint) error
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) GetBrands() ([]models.Brand, error) {
	var brands []models.Brand
	err := r.db.Order("name").Find(&brands).Error
	return brands, err
}

func (r *catalogRepository) CreateBrand(brand *models.Brand) error {
	return r.db.Create(brand).Error
}

// DeleteBrand cascades to the brand's models at the storage layer.
func (r *catalogRepository) DeleteBrand(id uint) error {
	return r.db.Delete(&models.Brand{}, id).Error
}

func (r *catalogRepository) GetModels(brandID uint) ([]models.Model, error) {
	var mods []models.Model
	query := r.db.Preload("Brand").Order("name")
	if brandID > 0 {
		query = query.Where("brand_id = ?", brandID)
	}
	err := query.Find(&mods).Error
	return mods, err
}

func (r *catalogRepository) GetModelByID(id uint) (*models.Model, error) {
	var mod models.Model
	err := r.db.Preload("Brand").First(&mod, id).Error
	return &mod, err
}

func (r *catalogRepository) CreateModel(model *models.Model) error {
	return r.db.Create(model).Error
}

// DeleteModel fails with a foreign key violation while cars reference the
// model; the constraint is RESTRICT, not cascade.
func (r *catalogRepository) DeleteModel(id uint) error {
	return r.db.Delete(&models.Model{}, id).Error
}
