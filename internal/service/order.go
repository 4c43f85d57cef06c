package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/google/uuid"
	"github.com/talkincode/toughstore/internal/domain"
	"github.com/talkincode/toughstore/internal/repository"
	"github.com/talkincode/toughstore/pkg/common"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Event bus topics published by the order workflow.
const (
	EventOrderCreated   = "order.created"
	EventOrderCancelled = "order.cancelled"
)

const (
	taxRate               = 0.10
	freeShippingThreshold = 100.0
	flatShippingFee       = 10.0
)

// OrderService runs the order workflow: stock validation, order and
// item creation, totals computation and lifecycle transitions. Every
// multi-step mutation goes through one unit-of-work transaction.
type OrderService struct {
	db  *gorm.DB
	bus EventBus.Bus
}

func NewOrderService(db *gorm.DB, bus EventBus.Bus) *OrderService {
	return &OrderService{db: db, bus: bus}
}

type OrderItemInput struct {
	ProductId      int64  `json:"product_id,string"`
	Quantity       int    `json:"quantity"`
	VariantDetails string `json:"variant_details"`
}

type CreateOrderInput struct {
	UserId            int64  `json:"user_id,string"`
	PaymentMethod     string `json:"payment_method"`
	ShippingAddressId int64  `json:"shipping_address_id,string"`
	BillingAddressId  int64  `json:"billing_address_id,string"`
	Notes             string `json:"notes"`
	Items             []OrderItemInput
}

type UpdateOrderStatusInput struct {
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	Notes         string `json:"notes"`
}

// CreateOrder places a new order. The order row, all item rows and all
// stock decrements commit together or not at all. Totals are always
// recomputed here; client supplied amounts are ignored.
func (s *OrderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	uow := repository.NewUnitOfWork(s.db)

	user, err := uow.Users.GetByID(ctx, in.UserId)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, NotFoundf("user with id %d not found", in.UserId)
	}
	if len(in.Items) == 0 {
		return nil, InvalidRequestf("order must have at least one item")
	}
	for _, item := range in.Items {
		if item.Quantity < 1 {
			return nil, InvalidRequestf("item quantity must be at least 1")
		}
	}

	var order *domain.Order
	err = uow.Transaction(ctx, func(tx *repository.UnitOfWork) error {
		// Validate every product before writing anything.
		products := make(map[int64]*domain.Product, len(in.Items))
		for _, item := range in.Items {
			if _, ok := products[item.ProductId]; ok {
				continue
			}
			product, err := tx.Products.GetByID(ctx, item.ProductId)
			if err != nil {
				return err
			}
			if product == nil {
				return NotFoundf("product with id %d not found", item.ProductId)
			}
			if !product.IsActive {
				return InvalidStatef("product %s is not active", product.Name)
			}
			products[item.ProductId] = product
		}
		for _, item := range in.Items {
			if products[item.ProductId].StockQuantity < item.Quantity {
				return InsufficientStockf("insufficient stock for product %s", products[item.ProductId].Name)
			}
		}

		now := time.Now()
		order = &domain.Order{
			ID:                common.UUIDint64(),
			OrderNumber:       generateOrderNumber(),
			UserId:            in.UserId,
			Status:            domain.OrderStatusPending,
			PaymentStatus:     domain.PaymentStatusPending,
			PaymentMethod:     in.PaymentMethod,
			ShippingAddressId: in.ShippingAddressId,
			BillingAddressId:  in.BillingAddressId,
			Notes:             in.Notes,
			OrderDate:         now,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if err := tx.Orders.Add(ctx, order); err != nil {
			return err
		}

		// Create item rows with a price snapshot and decrement stock.
		var subtotal float64
		for _, item := range in.Items {
			product := products[item.ProductId]
			orderItem := &domain.OrderItem{
				ID:             common.UUIDint64(),
				OrderId:        order.ID,
				ProductId:      item.ProductId,
				Quantity:       item.Quantity,
				UnitPrice:      product.Price,
				TotalPrice:     product.Price * float64(item.Quantity),
				VariantDetails: item.VariantDetails,
				CreatedAt:      now,
			}
			if err := tx.OrderItems.Add(ctx, orderItem); err != nil {
				return err
			}
			subtotal += orderItem.TotalPrice

			product.StockQuantity -= item.Quantity
			product.UpdatedAt = now
			if err := tx.Products.Update(ctx, product); err != nil {
				return err
			}
		}

		order.SubTotal = subtotal
		order.TaxAmount = calculateTax(subtotal)
		order.ShippingAmount = calculateShipping(subtotal)
		order.DiscountAmount = 0 // coupon application out of scope
		order.TotalAmount = order.SubTotal + order.TaxAmount + order.ShippingAmount - order.DiscountAmount
		return tx.Orders.Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("order created",
		zap.String("order_number", order.OrderNumber),
		zap.Int64("user_id", order.UserId),
		zap.Float64("total_amount", order.TotalAmount))
	s.publish(EventOrderCreated, order)
	return order, nil
}

// CancelOrder sets the order to Cancelled and restores every item's
// quantity back onto its product's stock, atomically. Shipped and
// delivered orders cannot be cancelled.
func (s *OrderService) CancelOrder(ctx context.Context, orderID int64) error {
	uow := repository.NewUnitOfWork(s.db)

	order, err := uow.Orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return NotFoundf("order with id %d not found", orderID)
	}
	if !order.CanBeCancelled() {
		return InvalidStatef("cannot cancel order that has been shipped or delivered")
	}

	err = uow.Transaction(ctx, func(tx *repository.UnitOfWork) error {
		now := time.Now()
		items, err := tx.OrderItems.Find(ctx, "order_id = ?", orderID)
		if err != nil {
			return err
		}
		for _, item := range items {
			product, err := tx.Products.GetByID(ctx, item.ProductId)
			if err != nil {
				return err
			}
			if product == nil {
				continue
			}
			product.StockQuantity += item.Quantity
			product.UpdatedAt = now
			if err := tx.Products.Update(ctx, product); err != nil {
				return err
			}
		}
		order.Status = domain.OrderStatusCancelled
		order.UpdatedAt = now
		return tx.Orders.Update(ctx, order)
	})
	if err != nil {
		return err
	}

	zap.L().Info("order cancelled", zap.String("order_number", order.OrderNumber))
	s.publish(EventOrderCancelled, order)
	return nil
}

// UpdateOrderStatus mutates status fields directly. Unknown status
// values are rejected, but transitions between known states are not
// validated, matching the historical behavior.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID int64, in UpdateOrderStatusInput) (*domain.Order, error) {
	if !domain.ValidOrderStatus(in.Status) {
		return nil, InvalidRequestf("unknown order status %q", in.Status)
	}
	if !domain.ValidPaymentStatus(in.PaymentStatus) {
		return nil, InvalidRequestf("unknown payment status %q", in.PaymentStatus)
	}

	uow := repository.NewUnitOfWork(s.db)
	order, err := uow.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, NotFoundf("order with id %d not found", orderID)
	}

	order.Status = in.Status
	order.PaymentStatus = in.PaymentStatus
	order.Notes = in.Notes
	order.UpdatedAt = time.Now()
	if err := uow.Orders.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// ProcessPayment marks the order paid with the given method. Payment
// gateway integration lives outside this service.
func (s *OrderService) ProcessPayment(ctx context.Context, orderID int64, paymentMethod string) (*domain.Order, error) {
	uow := repository.NewUnitOfWork(s.db)
	order, err := uow.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, NotFoundf("order with id %d not found", orderID)
	}

	order.PaymentStatus = domain.PaymentStatusPaid
	order.PaymentMethod = paymentMethod
	order.UpdatedAt = time.Now()
	if err := uow.Orders.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// DeleteOrder removes a cancelled or still pending order together with
// its items.
func (s *OrderService) DeleteOrder(ctx context.Context, orderID int64) error {
	uow := repository.NewUnitOfWork(s.db)
	order, err := uow.Orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return NotFoundf("order with id %d not found", orderID)
	}
	if !order.CanBeDeleted() {
		return InvalidStatef("cannot delete order that is not cancelled or pending")
	}

	return uow.Transaction(ctx, func(tx *repository.UnitOfWork) error {
		if err := tx.OrderItems.DeleteWhere(ctx, "order_id = ?", orderID); err != nil {
			return err
		}
		return tx.Orders.Delete(ctx, order)
	})
}

func (s *OrderService) GetOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	uow := repository.NewUnitOfWork(s.db)
	order, err := uow.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, NotFoundf("order with id %d not found", orderID)
	}
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return repository.NewUnitOfWork(s.db).Orders.GetAll(ctx)
}

func (s *OrderService) ListOrdersByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	return repository.NewUnitOfWork(s.db).Orders.Find(ctx, "user_id = ?", userID)
}

func (s *OrderService) ListOrdersByStatus(ctx context.Context, status string) ([]domain.Order, error) {
	return repository.NewUnitOfWork(s.db).Orders.Find(ctx, "status = ?", status)
}

func (s *OrderService) CountOrdersByStatus(ctx context.Context, status string) (int64, error) {
	return repository.NewUnitOfWork(s.db).Orders.Count(ctx, "status = ?", status)
}

// OrderItems loads the item rows of an order. Child rows are an
// explicit query, never an automatic graph traversal.
func (s *OrderService) OrderItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	return repository.NewUnitOfWork(s.db).OrderItems.Find(ctx, "order_id = ?", orderID)
}

func (s *OrderService) OrderTotal(ctx context.Context, orderID int64) (float64, error) {
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return 0, err
	}
	return order.TotalAmount, nil
}

func (s *OrderService) publish(topic string, order *domain.Order) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(topic, order)
}

// generateOrderNumber builds a human-facing order number of the form
// ORD-20240131-7F3A1C9B. Uniqueness is best effort via the random
// suffix; the unique index on order_number surfaces a collision as a
// store error rather than silently accepting it.
func generateOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("ORD-%s-%s", time.Now().UTC().Format("20060102"), suffix)
}

func calculateTax(subtotal float64) float64 {
	return subtotal * taxRate
}

func calculateShipping(subtotal float64) float64 {
	if subtotal >= freeShippingThreshold {
		return 0
	}
	return flatShippingFee
}
