package services

import (
	"stickerpress/internal/domain"
	"stickerpress/internal/money"
	"stickerpress/internal/repos"
)

type CartService struct {
	Carts *repos.CartRepo
	Prods *repos.ProductRepo
}

func NewCartService(carts *repos.CartRepo, prods *repos.ProductRepo) *CartService {
	return &CartService{Carts: carts, Prods: prods}
}

// Add snapshots the product and appends one unit. No coalescing: adding
// twice yields two entries.
func (s *CartService) Add(sessionID string, productID int64) error {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	p, err := s.Prods.Get(productID)
	if err != nil {
		return err
	}
	return s.Carts.Append(cartID, Snapshot(p))
}

// Remove drops every staged unit of the product.
func (s *CartService) Remove(sessionID string, productID int64) error {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	_, err = s.Carts.RemoveByProduct(cartID, productID)
	return err
}

type CartView struct {
	Items []domain.CartItem
	Total string
	Count int
}

func (s *CartService) View(sessionID string) (CartView, error) {
	items, err := s.Items(sessionID)
	if err != nil {
		return CartView{}, err
	}
	prices := make([]string, len(items))
	for i, it := range items {
		prices[i] = it.Price
	}
	total, err := money.Sum(prices)
	if err != nil {
		return CartView{}, err
	}
	return CartView{Items: items, Total: total, Count: len(items)}, nil
}

func (s *CartService) Items(sessionID string) ([]domain.CartItem, error) {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return nil, err
	}
	return s.Carts.Items(cartID)
}

// Snapshot copies the catalog record into a staged unit.
func Snapshot(p domain.Product) domain.CartItem {
	return domain.CartItem{
		ProductID:   p.ID,
		Name:        p.Name,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		Category:    p.Category,
		Description: p.Description,
	}
}
