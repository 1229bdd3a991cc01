package models

import "time"

type RegisterRequest struct {
	Username  string `json:"username" form:"username" binding:"required,min=3,max=50"`
	Email     string `json:"email" form:"email" binding:"required,email"`
	Password  string `json:"password" form:"password" binding:"required,min=6"`
	FirstName string `json:"first_name" form:"first_name"`
	LastName  string `json:"last_name" form:"last_name"`
}

type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type CarRequest struct {
	ModelID     uint      `json:"model_id" form:"model_id" binding:"required"`
	Price       float64   `json:"price" form:"price" validate:"gt=0"`
	Year        int       `json:"year" form:"year" binding:"required,min=1900"`
	Mileage     int       `json:"mileage" form:"mileage" binding:"min=0"`
	Description string    `json:"description" form:"description"`
	VIN         string    `json:"vin" form:"vin" binding:"max=17"`
	Status      CarStatus `json:"status" form:"status" binding:"omitempty,oneof=active sold deleted"`
}

// CarPatchRequest carries only the fields a partial update supplies;
// nil fields keep their stored value.
type CarPatchRequest struct {
	ModelID     *uint      `json:"model_id"`
	Price       *float64   `json:"price" validate:"omitempty,gt=0"`
	Year        *int       `json:"year" binding:"omitempty,min=1900"`
	Mileage     *int       `json:"mileage" binding:"omitempty,min=0"`
	Description *string    `json:"description"`
	VIN         *string    `json:"vin" binding:"omitempty,max=17"`
	Status      *CarStatus `json:"status" binding:"omitempty,oneof=active sold deleted"`
}

// CarResponse mirrors a car with the brand/model names resolved, the way
// the API has always exposed them.
type CarResponse struct {
	Car
	BrandName string `json:"brand_name"`
	ModelName string `json:"model_name"`
}

func NewCarResponse(car Car) CarResponse {
	return CarResponse{
		Car:       car,
		BrandName: car.Model.Brand.Name,
		ModelName: car.Model.Name,
	}
}

type CarListParams struct {
	Year   int    `form:"year"`
	Status string `form:"status"`
	Search string `form:"search"`
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=10"`
}

type BrandRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type ModelRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	BrandID uint   `json:"brand_id" binding:"required"`
}

type NewsRequest struct {
	Title       string     `json:"title" form:"title" binding:"required,min=1,max=255"`
	Content     string     `json:"content" form:"content" binding:"required"`
	PublishedAt *time.Time `json:"published_at" form:"published_at"`
}

type NewsPatchRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=1,max=255"`
	Content     *string    `json:"content"`
	PublishedAt *time.Time `json:"published_at"`
}

type NewsListParams struct {
	Search string `form:"search"`
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=10"`
}

type CommentRequest struct {
	Text string `json:"text" form:"text"`
}
