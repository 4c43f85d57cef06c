package domain

import "time"

// Order lifecycle states. Delivered and Cancelled are terminal.
const (
	OrderStatusPending    = "Pending"
	OrderStatusConfirmed  = "Confirmed"
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
)

const (
	PaymentStatusPending = "Pending"
	PaymentStatusPaid    = "Paid"
	PaymentStatusFailed  = "Failed"
)

// ValidOrderStatus reports whether s is one of the known order states.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// ValidPaymentStatus reports whether s is one of the known payment states.
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed:
		return true
	}
	return false
}

// Order is created only through the order workflow. Monetary fields are
// recomputed server side, never trusted from client input.
type Order struct {
	ID                int64     `json:"id,string" form:"id"`
	OrderNumber       string    `gorm:"uniqueIndex" json:"order_number" form:"order_number"`
	UserId            int64     `gorm:"index" json:"user_id,string" form:"user_id"`
	Status            string    `gorm:"index" json:"status" form:"status"`
	PaymentStatus     string    `json:"payment_status" form:"payment_status"`
	PaymentMethod     string    `json:"payment_method" form:"payment_method"`
	SubTotal          float64   `json:"sub_total"`
	TaxAmount         float64   `json:"tax_amount"`
	ShippingAmount    float64   `json:"shipping_amount"`
	DiscountAmount    float64   `json:"discount_amount"`
	TotalAmount       float64   `json:"total_amount"`
	ShippingAddressId int64     `json:"shipping_address_id,string" form:"shipping_address_id"`
	BillingAddressId  int64     `json:"billing_address_id,string" form:"billing_address_id"`
	Notes             string    `gorm:"size:500" json:"notes" form:"notes"`
	OrderDate         time.Time `json:"order_date"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (Order) TableName() string {
	return "shop_order"
}

// CanBeCancelled reports whether the order may still be cancelled.
// Shipped and delivered orders are past the point of no return.
func (o Order) CanBeCancelled() bool {
	return o.Status != OrderStatusShipped && o.Status != OrderStatusDelivered
}

// CanBeDeleted reports whether the order row may be removed entirely.
func (o Order) CanBeDeleted() bool {
	return o.Status == OrderStatusCancelled || o.Status == OrderStatusPending
}

func (o Order) IsPaid() bool {
	return o.PaymentStatus == PaymentStatusPaid
}

// OrderItem is owned by exactly one Order and is always created and
// deleted together with it. UnitPrice snapshots the product price at
// purchase time.
type OrderItem struct {
	ID             int64     `json:"id,string" form:"id"`
	OrderId        int64     `gorm:"index" json:"order_id,string" form:"order_id"`
	ProductId      int64     `gorm:"index" json:"product_id,string" form:"product_id"`
	Quantity       int       `json:"quantity" form:"quantity"`
	UnitPrice      float64   `json:"unit_price"`
	TotalPrice     float64   `json:"total_price"`
	VariantDetails string    `gorm:"size:500" json:"variant_details" form:"variant_details"`
	CreatedAt      time.Time `json:"created_at"`
}

func (OrderItem) TableName() string {
	return "shop_order_item"
}
