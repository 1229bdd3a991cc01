package models

import "time"

// News posts with a null PublishedAt are drafts and never publicly listed.
// The author reference survives user deletion as null.
type News struct {
	ID          uint       `json:"id" gorm:"primarykey"`
	Title       string     `json:"title" gorm:"not null;size:255"`
	Content     string     `json:"content" gorm:"type:text;not null"`
	AuthorID    *uint      `json:"author_id"`
	Author      *User      `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:SET NULL"`
	CoverImage  string     `json:"cover_image" gorm:"size:500"`
	PublishedAt *time.Time `json:"published_at"`
	Comments    []Comment  `json:"comments,omitempty" gorm:"foreignKey:NewsID"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (n *News) OwnerID() *uint {
	return n.AuthorID
}

type Comment struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	NewsID    uint      `json:"news_id" gorm:"not null;index"`
	News      *News     `json:"-" gorm:"foreignKey:NewsID;constraint:OnDelete:CASCADE"`
	UserID    uint      `json:"user_id" gorm:"not null"`
	User      User      `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Comment) OwnerID() *uint {
	id := c.UserID
	return &id
}
