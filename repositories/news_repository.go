package repositories

import (
	"carsite-backend/models"

	"gorm.io/gorm"
)

type NewsRepository interface {
	Create(news *models.News) error
	GetByID(id uint) (*models.News, error)
	GetScoped(actor *models.User, id uint) (*models.News, error)
	GetPublished(params models.NewsListParams) ([]models.News, int64, error)
	Update(news *models.News) error
	Delete(id uint) error
}

type newsRepository struct {
	db *gorm.DB
}

func NewNewsRepository(db *gorm.DB) NewsRepository {
	return &newsRepository{db: db}
}

func (r *newsRepository) Create(news *models.News) error {
	return r.db.Create(news).Error
}

func (r *newsRepository) GetByID(id uint) (*models.News, error) {
	var news models.News
	err := r.db.Preload("Author").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at asc")
		}).
		Preload("Comments.User").
		First(&news, id).Error
	return &news, err
}

// GetScoped mirrors the car candidate set: moderators see all news,
// others only posts they authored.
func (r *newsRepository) GetScoped(actor *models.User, id uint) (*models.News, error) {
	query := r.db.Preload("Author")
	if !actor.IsModerator() {
		query = query.Where("author_id = ?", actor.ID)
	}
	var news models.News
	err := query.First(&news, id).Error
	return &news, err
}

// GetPublished lists only posts with a non-null published_at; drafts stay
// invisible to the public surface.
func (r *newsRepository) GetPublished(params models.NewsListParams) ([]models.News, int64, error) {
	var items []models.News
	var total int64

	query := r.db.Model(&models.News{}).
		Preload("Author").
		Where("published_at IS NOT NULL")

	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where("title ILIKE ? OR content ILIKE ?", pattern, pattern)
	}

	query.Count(&total)

	offset := (params.Page - 1) * params.Limit
	err := query.Order("published_at desc, created_at desc").
		Offset(offset).Limit(params.Limit).
		Find(&items).Error

	return items, total, err
}

func (r *newsRepository) Update(news *models.News) error {
	return r.db.Save(news).Error
}

func (r *newsRepository) Delete(id uint) error {
	return r.db.Delete(&models.News{}, id).Error
}
