package domain

import "time"

// ShoppingCart is one cart line for a user. Cart rows live outside the
// order workflow's transactional boundary.
type ShoppingCart struct {
	ID             int64     `json:"id,string" form:"id"`
	UserId         int64     `gorm:"index" json:"user_id,string" form:"user_id"`
	ProductId      int64     `gorm:"index" json:"product_id,string" form:"product_id"`
	Quantity       int       `json:"quantity" form:"quantity"`
	VariantDetails string    `gorm:"size:500" json:"variant_details" form:"variant_details"`
	AddedDate      time.Time `json:"added_date"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (ShoppingCart) TableName() string {
	return "shop_cart"
}
