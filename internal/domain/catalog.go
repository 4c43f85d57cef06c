package domain

import "time"

// Product is a sellable catalog item. Category and Brand are referenced
// by id only; lookups go through the repository, not object navigation.
type Product struct {
	ID            int64     `json:"id,string" form:"id"`
	Name          string    `gorm:"index" json:"name" form:"name"`
	Description   string    `json:"description" form:"description"`
	CategoryId    int64     `gorm:"index" json:"category_id,string" form:"category_id"`
	BrandId       int64     `gorm:"index" json:"brand_id,string" form:"brand_id"`
	Price         float64   `json:"price" form:"price"`
	StockQuantity int       `json:"stock_quantity" form:"stock_quantity"`
	IsActive      bool      `json:"is_active" form:"is_active"`
	IsFeatured    bool      `json:"is_featured" form:"is_featured"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Product) TableName() string {
	return "shop_product"
}

// InStock reports whether at least qty units are available.
func (p Product) InStock(qty int) bool {
	return p.StockQuantity >= qty
}

// Category is a catalog grouping. ParentId is nil for root categories.
type Category struct {
	ID           int64     `json:"id,string" form:"id"`
	Name         string    `gorm:"index" json:"name" form:"name"`
	Description  string    `json:"description" form:"description"`
	ParentId     *int64    `gorm:"index" json:"parent_id,string" form:"parent_id"`
	IsActive     bool      `json:"is_active" form:"is_active"`
	DisplayOrder int       `json:"display_order" form:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Category) TableName() string {
	return "shop_category"
}

func (c Category) IsRoot() bool {
	return c.ParentId == nil
}

type Brand struct {
	ID          int64     `json:"id,string" form:"id"`
	Name        string    `gorm:"index" json:"name" form:"name"`
	Description string    `json:"description" form:"description"`
	LogoUrl     string    `gorm:"size:1024" json:"logo_url" form:"logo_url"`
	IsActive    bool      `json:"is_active" form:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Brand) TableName() string {
	return "shop_brand"
}
