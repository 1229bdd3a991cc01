package services

import (
	"strings"
	"time"

	"carsite-backend/models"
	"carsite-backend/repositories"
)

type NewsService interface {
	CreateNews(req models.NewsRequest, actor *models.User) (*models.News, error)
	GetNews(id uint) (*models.News, error)
	GetPublished(params models.NewsListParams) ([]models.News, int64, error)
	UpdateCandidate(id uint, actor *models.User) (*models.News, error)
	UpdateNews(id uint, req models.NewsRequest, actor *models.User) (*models.News, error)
	PatchNews(id uint, req models.NewsPatchRequest, actor *models.User) (*models.News, error)
	DeleteNews(id uint, actor *models.User) error
	AddComment(newsID uint, actorID uint, text string) (*models.Comment, error)
	DeleteComment(id uint, actor *models.User) (uint, error)
}

type newsService struct {
	newsRepo    repositories.NewsRepository
	commentRepo repositories.CommentRepository
}

func NewNewsService(newsRepo repositories.NewsRepository, commentRepo repositories.CommentRepository) NewsService {
	return &newsService{newsRepo: newsRepo, commentRepo: commentRepo}
}

// CreateNews is moderator-only. PublishedAt defaults to now, so a post
// without an explicit timestamp goes live immediately.
func (s *newsService) CreateNews(req models.NewsRequest, actor *models.User) (*models.News, error) {
	if !actor.IsModerator() {
		return nil, ErrPermissionDenied
	}

	publishedAt := req.PublishedAt
	if publishedAt == nil {
		now := time.Now()
		publishedAt = &now
	}

	authorID := actor.ID
	news := &models.News{
		Title:       req.Title,
		Content:     req.Content,
		AuthorID:    &authorID,
		PublishedAt: publishedAt,
	}

	if err := s.newsRepo.Create(news); err != nil {
		return nil, err
	}

	return s.newsRepo.GetByID(news.ID)
}

func (s *newsService) GetNews(id uint) (*models.News, error) {
	return s.newsRepo.GetByID(id)
}

func (s *newsService) GetPublished(params models.NewsListParams) ([]models.News, int64, error) {
	return s.newsRepo.GetPublished(params)
}

func (s *newsService) UpdateCandidate(id uint, actor *models.User) (*models.News, error) {
	return s.newsRepo.GetScoped(actor, id)
}

func (s *newsService) UpdateNews(id uint, req models.NewsRequest, actor *models.User) (*models.News, error) {
	news, err := s.newsRepo.GetScoped(actor, id)
	if err != nil {
		return nil, err
	}

	news.Title = req.Title
	news.Content = req.Content
	if req.PublishedAt != nil {
		news.PublishedAt = req.PublishedAt
	}

	if err := s.newsRepo.Update(news); err != nil {
		return nil, err
	}

	return s.newsRepo.GetByID(news.ID)
}

// PatchNews overwrites only the supplied fields within the actor's
// candidate set.
func (s *newsService) PatchNews(id uint, req models.NewsPatchRequest, actor *models.User) (*models.News, error) {
	news, err := s.newsRepo.GetScoped(actor, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		news.Title = *req.Title
	}
	if req.Content != nil {
		news.Content = *req.Content
	}
	if req.PublishedAt != nil {
		news.PublishedAt = req.PublishedAt
	}

	if err := s.newsRepo.Update(news); err != nil {
		return nil, err
	}

	return s.newsRepo.GetByID(news.ID)
}

func (s *newsService) DeleteNews(id uint, actor *models.User) error {
	news, err := s.newsRepo.GetScoped(actor, id)
	if err != nil {
		return err
	}
	return s.newsRepo.Delete(news.ID)
}

// AddComment trims the text and silently drops a blank submission: no
// comment row, no error, the caller redirects to the news detail either way.
func (s *newsService) AddComment(newsID uint, actorID uint, text string) (*models.Comment, error) {
	news, err := s.newsRepo.GetByID(newsID)
	if err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	comment := &models.Comment{
		NewsID: news.ID,
		UserID: actorID,
		Text:   text,
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// DeleteComment returns the parent news id, resolved before the row goes,
// so the caller can redirect to the detail page.
func (s *newsService) DeleteComment(id uint, actor *models.User) (uint, error) {
	comment, err := s.commentRepo.GetScoped(actor, id)
	if err != nil {
		return 0, err
	}

	newsID := comment.NewsID
	if err := s.commentRepo.Delete(comment.ID); err != nil {
		return 0, err
	}

	return newsID, nil
}
