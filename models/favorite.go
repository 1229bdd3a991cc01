package models

import "time"

// Favorite links a user to a car; the (user, car) pair is unique.
type Favorite struct {
	ID      uint      `json:"id" gorm:"primarykey"`
	UserID  uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_favorite_user_car"`
	User    User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CarID   uint      `json:"car_id" gorm:"not null;uniqueIndex:idx_favorite_user_car"`
	Car     Car       `json:"car,omitempty" gorm:"foreignKey:CarID;constraint:OnDelete:CASCADE"`
	AddedAt time.Time `json:"added_at" gorm:"autoCreateTime"`
}
