package migrations

import "gorm.io/gorm"

type AddIndexIdxProductsAvailable struct{}

func (m AddIndexIdxProductsAvailable) Version() string { return "202501150900000002" }

func (m AddIndexIdxProductsAvailable) Name() string {
	return "add_index_idx_products_available"
}

func (m AddIndexIdxProductsAvailable) Up(db *gorm.DB) error {
	return db.Exec("CREATE INDEX IF NOT EXISTS idx_products_available ON products (available)").Error
}

func (m AddIndexIdxProductsAvailable) Down(db *gorm.DB) error {
	return db.Exec("DROP INDEX IF EXISTS idx_products_available").Error
}

func init() {
	register(AddIndexIdxProductsAvailable{})
}
