package domain

import "time"

// Product represents a catalog item; read-only reference data from
// the cart workflow's perspective
type Product struct {
	ID        int64     `json:"id,string" form:"id"`
	Name      string    `gorm:"index" json:"name" form:"name"`
	Category  string    `gorm:"size:64" json:"category" form:"category"`
	Cost      float64   `json:"cost" form:"cost"`
	Rating    int       `json:"rating" form:"rating"`
	Image     string    `gorm:"size:1024" json:"image" form:"image"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "products"
}
