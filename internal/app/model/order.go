package model

import (
	"time"

	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"   // received, awaiting contact
	OrderStatusConfirmed OrderStatus = "confirmed" // confirmed with the customer
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order is a guest checkout: there are no customer accounts, so the contact
// and shipping details live on the order itself.
type Order struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	CustomerName string         `gorm:"not null" json:"customerName"`
	Email        string         `gorm:"not null" json:"email"`
	Phone        string         `json:"phone"`
	AddressLine1 string         `gorm:"not null" json:"addressLine1"`
	AddressLine2 string         `json:"addressLine2"`
	City         string         `json:"city"`
	TotalCents   int64          `gorm:"not null" json:"totalCents"`
	Status       OrderStatus    `gorm:"type:varchar(20);default:'pending'" json:"status"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem snapshots the item name and unit price at submission time, so
// later catalogue edits do not rewrite order history.
type OrderItem struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	OrderID         uint           `gorm:"not null;index" json:"orderId"`
	FurnitureItemID uint           `gorm:"not null;index" json:"furnitureItemId"`
	Name            string         `gorm:"not null" json:"name"`
	UnitPriceCents  int64          `gorm:"not null" json:"unitPriceCents"`
	Quantity        int            `gorm:"not null" json:"quantity"`
	CreatedAt       time.Time      `json:"-"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Order         Order         `gorm:"foreignKey:OrderID" json:"-"`
	FurnitureItem FurnitureItem `gorm:"foreignKey:FurnitureItemID" json:"-"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
