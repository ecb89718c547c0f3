package services

import (
	"database/sql"
	"errors"
	"strings"

	"stickerpress/internal/domain"
	"stickerpress/internal/money"
	"stickerpress/internal/repos"
)

var ErrNotFound = errors.New("record not found")

type CatalogService struct {
	Prods *repos.ProductRepo
}

func NewCatalogService(prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Prods: prods}
}

func (s *CatalogService) List() ([]domain.Product, error) {
	return s.Prods.List()
}

func (s *CatalogService) ListByCategory(category string) ([]domain.Product, error) {
	return s.Prods.ListByCategory(category)
}

func (s *CatalogService) Get(id int64) (domain.Product, error) {
	p, err := s.Prods.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, ErrNotFound
	}
	return p, err
}

func (s *CatalogService) Search(q string) ([]domain.Product, error) {
	return s.Prods.Search(strings.ToLower(strings.TrimSpace(q)))
}

// Add stores a new product. The price is normalized to two decimals so
// every stored price has one canonical form.
func (s *CatalogService) Add(p domain.Product) (domain.Product, error) {
	price, err := money.Normalize(p.Price)
	if err != nil {
		return domain.Product{}, err
	}
	p.Price = price
	return s.Prods.Insert(p)
}

// Update replaces the whole record by id and returns the stored row, which
// is what callers should trust afterwards.
func (s *CatalogService) Update(p domain.Product) (domain.Product, error) {
	price, err := money.Normalize(p.Price)
	if err != nil {
		return domain.Product{}, err
	}
	p.Price = price
	out, err := s.Prods.Update(p)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, ErrNotFound
	}
	return out, err
}

func (s *CatalogService) Delete(id int64) error {
	return s.Prods.Delete(id)
}
