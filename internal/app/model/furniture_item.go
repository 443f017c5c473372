package model

import (
	"time"

	"gorm.io/gorm"
)

// FurnitureItem is a catalogue entry. Prices are stored in minor units
// (TZS cents) so totals never go through floating point.
type FurnitureItem struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	PriceCents  int64          `gorm:"not null;default:0" json:"priceCents"`
	CategoryID  uint           `gorm:"not null;index" json:"categoryId"`
	ImageURL    string         `json:"imageUrl"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Category Category `gorm:"foreignKey:CategoryID" json:"-"`
}

func (FurnitureItem) TableName() string {
	return "furniture_items"
}

// PublicView is the shape the storefront consumes.
type PublicView struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"priceCents"`
	ImageURL    string `json:"imageUrl"`
	Category    string `json:"category"`
}

// AdminView adds the fields the dashboard needs beyond the public shape.
type AdminView struct {
	PublicView
	CategoryID uint      `json:"categoryId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Public projects the item into its storefront shape.
func (i *FurnitureItem) Public() PublicView {
	return PublicView{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		PriceCents:  i.PriceCents,
		ImageURL:    i.ImageURL,
		Category:    i.Category.Name,
	}
}

// Admin projects the item into its dashboard shape.
func (i *FurnitureItem) Admin() AdminView {
	return AdminView{
		PublicView: i.Public(),
		CategoryID: i.CategoryID,
		CreatedAt:  i.CreatedAt,
		UpdatedAt:  i.UpdatedAt,
	}
}
