package handlers

import (
	"github.com/jmoiron/sqlx"

	"stickerpress/internal/config"
	"stickerpress/internal/repos"
	"stickerpress/internal/services"
)

type Deps struct {
	CatalogHandler *CatalogHandler
	SearchHandler  *SearchHandler
	ProductHandler *ProductHandler
	CartHandler    *CartHandler
	OrderHandler   *OrderHandler
	AddressHandler *AddressHandler
	AdminHandler   *AdminHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService) *Deps {
	prodRepo := repos.NewProductRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	addrRepo := repos.NewAddressRepo(db)

	catalogSvc := services.NewCatalogService(prodRepo)
	cartSvc := services.NewCartService(cartRepo, prodRepo)
	orderSvc := services.NewOrderService(cartRepo, orderRepo, addrRepo, prodRepo)
	addrSvc := services.NewAddressService(addrRepo)

	return &Deps{
		CatalogHandler: &CatalogHandler{Catalog: catalogSvc},
		SearchHandler:  &SearchHandler{Catalog: catalogSvc},
		ProductHandler: &ProductHandler{Catalog: catalogSvc},
		CartHandler:    &CartHandler{Cart: cartSvc, Mode: cfg.BuyNowMode},
		OrderHandler:   &OrderHandler{Cart: cartSvc, Order: orderSvc, Addr: addrSvc, Catalog: catalogSvc, Auth: auth},
		AddressHandler: &AddressHandler{Addr: addrSvc},
		AdminHandler:   &AdminHandler{Catalog: catalogSvc, Order: orderSvc, Users: auth.Users, Auth: auth},
	}
}
