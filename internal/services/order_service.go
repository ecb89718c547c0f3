package services

import (
	"database/sql"
	"errors"
	"strconv"
	"time"

	"stickerpress/internal/domain"
	"stickerpress/internal/money"
	"stickerpress/internal/repos"
)

var (
	ErrEmptyCart  = errors.New("cart is empty")
	ErrNoPayment  = errors.New("no payment method selected")
	ErrBadAddress = errors.New("all shipping fields are required")
)

// PaymentMethods is the closed set of accepted payment labels.
var PaymentMethods = []string{"Online Pay", "Cash on Delivery"}

func ValidPayment(m string) bool {
	for _, p := range PaymentMethods {
		if p == m {
			return true
		}
	}
	return false
}

type OrderService struct {
	Carts  *repos.CartRepo
	Orders *repos.OrderRepo
	Addrs  *repos.AddressRepo
	Prods  *repos.ProductRepo
}

func NewOrderService(carts *repos.CartRepo, orders *repos.OrderRepo, addrs *repos.AddressRepo, prods *repos.ProductRepo) *OrderService {
	return &OrderService{Carts: carts, Orders: orders, Addrs: addrs, Prods: prods}
}

// PlaceFromCart turns the whole staged cart into an order, then removes the
// purchased product ids from the cart.
func (s *OrderService) PlaceFromCart(sessionID string, userID int64, ship domain.ShippingDetails, payment string) (domain.Order, error) {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return domain.Order{}, err
	}
	items, err := s.Carts.Items(cartID)
	if err != nil {
		return domain.Order{}, err
	}
	o, err := s.place(userID, items, ship, payment)
	if err != nil {
		return domain.Order{}, err
	}

	ids := make([]int64, 0, len(items))
	seen := map[int64]bool{}
	for _, it := range items {
		if !seen[it.ProductID] {
			seen[it.ProductID] = true
			ids = append(ids, it.ProductID)
		}
	}
	if err := s.Carts.RemoveProducts(cartID, ids); err != nil {
		return domain.Order{}, err
	}
	return o, nil
}

// PlaceDirect orders exactly one product, bypassing the cart entirely
// (the "buy now bypasses cart" policy).
func (s *OrderService) PlaceDirect(productID, userID int64, ship domain.ShippingDetails, payment string) (domain.Order, error) {
	p, err := s.Prods.Get(productID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, ErrNotFound
	}
	if err != nil {
		return domain.Order{}, err
	}
	return s.place(userID, []domain.CartItem{Snapshot(p)}, ship, payment)
}

func (s *OrderService) place(userID int64, items []domain.CartItem, ship domain.ShippingDetails, payment string) (domain.Order, error) {
	if len(items) == 0 {
		return domain.Order{}, ErrEmptyCart
	}
	if !ValidPayment(payment) {
		return domain.Order{}, ErrNoPayment
	}
	if !shipComplete(ship) {
		return domain.Order{}, ErrBadAddress
	}

	prices := make([]string, len(items))
	for i, it := range items {
		prices[i] = it.Price
	}
	total, err := money.Sum(prices)
	if err != nil {
		return domain.Order{}, err
	}

	o := domain.Order{
		ID:            newOrderID(),
		UserID:        userID,
		ShipName:      ship.Name,
		ShipEmail:     ship.Email,
		ShipPhone:     ship.Phone,
		ShipAddress:   ship.Address,
		ShipCity:      ship.City,
		ShipState:     ship.State,
		ShipZip:       ship.Zip,
		PaymentMethod: payment,
		Total:         total,
		Status:        domain.StatusPending,
	}
	lines := make([]domain.OrderItem, len(items))
	for i, it := range items {
		lines[i] = domain.OrderItem{
			OrderID:     o.ID,
			Seq:         i + 1,
			ProductID:   it.ProductID,
			Name:        it.Name,
			Price:       it.Price,
			ImageURL:    it.ImageURL,
			Category:    it.Category,
			Description: it.Description,
		}
	}
	if err := s.Orders.Create(o, lines); err != nil {
		return domain.Order{}, err
	}

	// Remember the shipping details unless the same name+street is saved.
	if exists, err := s.Addrs.Exists(userID, ship.Name, ship.Address); err == nil && !exists {
		_ = s.Addrs.Insert(userID, ship)
	}

	return o, nil
}

func (s *OrderService) Get(orderID string) (domain.Order, []domain.OrderItem, error) {
	o, items, err := s.Orders.Get(orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, nil, ErrNotFound
	}
	return o, items, err
}

func (s *OrderService) History(userID int64) ([]domain.Order, error) {
	return s.Orders.ListByUser(userID)
}

func (s *OrderService) ListLatest(limit int) ([]domain.Order, error) {
	return s.Orders.ListLatest(limit)
}

func (s *OrderService) UpdateStatus(orderID, status string) (domain.Order, error) {
	if !domain.ValidStatus(status) {
		return domain.Order{}, errors.New("unknown order status")
	}
	o, err := s.Orders.UpdateStatus(orderID, status)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, ErrNotFound
	}
	return o, err
}

func shipComplete(d domain.ShippingDetails) bool {
	for _, f := range []string{d.Name, d.Email, d.Phone, d.Address, d.City, d.State, d.Zip} {
		if f == "" {
			return false
		}
	}
	return true
}

// Order ids are time-based. Nanosecond resolution keeps ids unique even
// when orders land in the same millisecond.
func newOrderID() string {
	return "ORD-" + strconv.FormatInt(time.Now().UnixNano(), 10)
}
