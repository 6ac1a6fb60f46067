package product

import "time"

// Product is a catalog entry. Rows are never hard-deleted; Available=false
// marks a removed product.
type Product struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Price     float64   `gorm:"not null" json:"price"`
	Available bool      `gorm:"not null;default:true;index" json:"available"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the table name for Product
func (Product) TableName() string {
	return "products"
}

// Fields holds the caller-supplied attributes of a new product.
type Fields struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Patch is a partial update. Nil fields are left untouched and ID is always
// ignored.
type Patch struct {
	ID    *uint    `json:"id,omitempty"`
	Name  *string  `json:"name,omitempty"`
	Price *float64 `json:"price,omitempty"`
}

// columns returns the columns to update, without the identifier.
func (p Patch) columns() map[string]interface{} {
	cols := make(map[string]interface{})
	if p.Name != nil {
		cols["name"] = *p.Name
	}
	if p.Price != nil {
		cols["price"] = *p.Price
	}
	return cols
}
