package repositories

import (
	"carsite-backend/models"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(comment *models.Comment) error
	GetScoped(actor *models.User, id uint) (*models.Comment, error)
	Delete(id uint) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

func (r *commentRepository) GetScoped(actor *models.User, id uint) (*models.Comment, error) {
	query := r.db.Model(&models.Comment{})
	if !actor.IsModerator() {
		query = query.Where("user_id = ?", actor.ID)
	}
	var comment models.Comment
	err := query.First(&comment, id).Error
	return &comment, err
}

func (r *commentRepository) Delete(id uint) error {
	return r.db.Delete(&models.Comment{}, id).Error
}
