package migrations

import (
	"time"

	"gorm.io/gorm"
)

type CreateProducts struct{}

func (m CreateProducts) Version() string { return "202501150900000001" }

func (m CreateProducts) Name() string { return "create_products" }

func (m CreateProducts) Up(db *gorm.DB) error {
	type Product struct {
		ID        uint    `gorm:"primaryKey"`
		Name      string  `gorm:"not null"`
		Price     float64 `gorm:"not null"`
		Available bool    `gorm:"not null;default:true"`
		CreatedAt time.Time
		UpdatedAt time.Time
	}
	return db.Table("products").AutoMigrate(&Product{})
}

func (m CreateProducts) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("products")
}

func init() {
	register(CreateProducts{})
}
