package services

import (
	"time"

	"carsite-backend/models"
	"carsite-backend/repositories"

	"gorm.io/gorm"
)

// In-memory repository fakes mirroring the candidate-set scoping the
// real repositories do in SQL.

type fakeCarRepo struct {
	cars   map[uint]*models.Car
	images []*models.CarImage
	nextID uint
}

func newFakeCarRepo() *fakeCarRepo {
	return &fakeCarRepo{cars: map[uint]*models.Car{}, nextID: 1}
}

func (r *fakeCarRepo) Create(car *models.Car) error {
	car.ID = r.nextID
	r.nextID++
	now := time.Now()
	car.CreatedAt = now
	car.UpdatedAt = now
	stored := *car
	r.cars[car.ID] = &stored
	return nil
}

func (r *fakeCarRepo) GetByID(id uint) (*models.Car, error) {
	car, ok := r.cars[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *car
	return &copied, nil
}

func (r *fakeCarRepo) GetScoped(actor *models.User, id uint) (*models.Car, error) {
	car, ok := r.cars[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if !actor.IsModerator() && car.UserID != actor.ID {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *car
	return &copied, nil
}

func (r *fakeCarRepo) GetList(params models.CarListParams) ([]models.Car, int64, error) {
	var out []models.Car
	for _, car := range r.cars {
		if params.Year > 0 && !(car.Year == params.Year || car.Status == models.StatusActive) {
			continue
		}
		if params.Status != "" && string(car.Status) != params.Status {
			continue
		}
		out = append(out, *car)
	}
	return out, int64(len(out)), nil
}

func (r *fakeCarRepo) GetExpensive(page, limit int) ([]models.Car, int64, error) {
	var out []models.Car
	for _, car := range r.cars {
		if car.Price > repositories.ExpensivePriceThreshold {
			out = append(out, *car)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeCarRepo) Update(car *models.Car) error {
	if _, ok := r.cars[car.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	car.UpdatedAt = time.Now()
	stored := *car
	r.cars[car.ID] = &stored
	return nil
}

func (r *fakeCarRepo) Delete(id uint) error {
	delete(r.cars, id)
	return nil
}

func (r *fakeCarRepo) DeleteOlderThan(cutoff time.Time) (int64, error) {
	var count int64
	for id, car := range r.cars {
		if car.CreatedAt.Before(cutoff) {
			delete(r.cars, id)
			count++
		}
	}
	return count, nil
}

func (r *fakeCarRepo) AddImage(image *models.CarImage) error {
	r.images = append(r.images, image)
	return nil
}

type fakeNewsRepo struct {
	items  map[uint]*models.News
	nextID uint
}

func newFakeNewsRepo() *fakeNewsRepo {
	return &fakeNewsRepo{items: map[uint]*models.News{}, nextID: 1}
}

func (r *fakeNewsRepo) Create(news *models.News) error {
	news.ID = r.nextID
	r.nextID++
	now := time.Now()
	news.CreatedAt = now
	news.UpdatedAt = now
	stored := *news
	r.items[news.ID] = &stored
	return nil
}

func (r *fakeNewsRepo) GetByID(id uint) (*models.News, error) {
	news, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *news
	return &copied, nil
}

func (r *fakeNewsRepo) GetScoped(actor *models.User, id uint) (*models.News, error) {
	news, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if !actor.IsModerator() && (news.AuthorID == nil || *news.AuthorID != actor.ID) {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *news
	return &copied, nil
}

func (r *fakeNewsRepo) GetPublished(params models.NewsListParams) ([]models.News, int64, error) {
	var out []models.News
	for _, news := range r.items {
		if news.PublishedAt != nil {
			out = append(out, *news)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeNewsRepo) Update(news *models.News) error {
	if _, ok := r.items[news.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	news.UpdatedAt = time.Now()
	stored := *news
	r.items[news.ID] = &stored
	return nil
}

func (r *fakeNewsRepo) Delete(id uint) error {
	delete(r.items, id)
	return nil
}

type fakeCommentRepo struct {
	comments map[uint]*models.Comment
	nextID   uint
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: map[uint]*models.Comment{}, nextID: 1}
}

func (r *fakeCommentRepo) Create(comment *models.Comment) error {
	comment.ID = r.nextID
	r.nextID++
	comment.CreatedAt = time.Now()
	stored := *comment
	r.comments[comment.ID] = &stored
	return nil
}

func (r *fakeCommentRepo) GetScoped(actor *models.User, id uint) (*models.Comment, error) {
	comment, ok := r.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if !actor.IsModerator() && comment.UserID != actor.ID {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *comment
	return &copied, nil
}

func (r *fakeCommentRepo) Delete(id uint) error {
	delete(r.comments, id)
	return nil
}

type fakeFavoriteRepo struct {
	favorites map[[2]uint]*models.Favorite
	nextID    uint
}

func newFakeFavoriteRepo() *fakeFavoriteRepo {
	return &fakeFavoriteRepo{favorites: map[[2]uint]*models.Favorite{}, nextID: 1}
}

func (r *fakeFavoriteRepo) Create(favorite *models.Favorite) error {
	key := [2]uint{favorite.UserID, favorite.CarID}
	if _, ok := r.favorites[key]; ok {
		return gorm.ErrDuplicatedKey
	}
	favorite.ID = r.nextID
	r.nextID++
	favorite.AddedAt = time.Now()
	stored := *favorite
	r.favorites[key] = &stored
	return nil
}

func (r *fakeFavoriteRepo) Exists(userID, carID uint) (bool, error) {
	_, ok := r.favorites[[2]uint{userID, carID}]
	return ok, nil
}

func (r *fakeFavoriteRepo) Delete(userID, carID uint) error {
	delete(r.favorites, [2]uint{userID, carID})
	return nil
}

func (r *fakeFavoriteRepo) GetByUser(userID uint) ([]models.Favorite, error) {
	var out []models.Favorite
	for key, favorite := range r.favorites {
		if key[0] == userID {
			out = append(out, *favorite)
		}
	}
	return out, nil
}
