package models

type Brand struct {
	ID     uint    `json:"id" gorm:"primarykey"`
	Name   string  `json:"name" gorm:"uniqueIndex;not null;size:100"`
	Models []Model `json:"models,omitempty" gorm:"foreignKey:BrandID"`
}

// Model is a vehicle model belonging to a brand. Deleting the brand
// removes its models; deleting a model is blocked while cars reference it.
type Model struct {
	ID      uint   `json:"id" gorm:"primarykey"`
	Name    string `json:"name" gorm:"not null;size:100"`
	BrandID uint   `json:"brand_id" gorm:"not null"`
	Brand   Brand  `json:"brand,omitempty" gorm:"foreignKey:BrandID;constraint:OnDelete:CASCADE"`
}
