package models

import "time"

type CarStatus string

const (
	StatusActive  CarStatus = "active"
	StatusSold    CarStatus = "sold"
	StatusDeleted CarStatus = "deleted"
)

type Car struct {
	ID          uint       `json:"id" gorm:"primarykey"`
	UserID      uint       `json:"user_id" gorm:"not null;index"`
	User        User       `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ModelID     uint       `json:"model_id" gorm:"not null"`
	Model       Model      `json:"model,omitempty" gorm:"foreignKey:ModelID;constraint:OnDelete:RESTRICT"`
	Price       float64    `json:"price" gorm:"type:numeric(12,2);not null"`
	Year        int        `json:"year" gorm:"not null"`
	Mileage     int        `json:"mileage" gorm:"not null"`
	Description string     `json:"description" gorm:"type:text"`
	VIN         string     `json:"vin" gorm:"size:17"`
	Status      CarStatus  `json:"status" gorm:"type:varchar(20);default:'active';index"`
	Images      []CarImage `json:"images,omitempty" gorm:"foreignKey:CarID"`
	CreatedAt   time.Time  `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (c *Car) OwnerID() *uint {
	id := c.UserID
	return &id
}

type CarImage struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	CarID      uint      `json:"car_id" gorm:"not null;index"`
	Car        *Car      `json:"-" gorm:"foreignKey:CarID;constraint:OnDelete:CASCADE"`
	ImagePath  string    `json:"image_path" gorm:"not null;size:500"`
	IsMain     bool      `json:"is_main" gorm:"default:false"`
	UploadedAt time.Time `json:"uploaded_at" gorm:"autoCreateTime"`
}
