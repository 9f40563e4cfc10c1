package handlers

import (
	"github.com/jmoiron/sqlx"

	"tokokita/internal/config"
	"tokokita/internal/repos"
	"tokokita/internal/shop"
)

type Deps struct {
	Registry *shop.Registry

	AuthHandler     *AuthHandler
	CatalogHandler  *CatalogHandler
	CartHandler     *CartHandler
	FavoriteHandler *FavoriteHandler
	CheckoutHandler *CheckoutHandler
	OrderHandler    *OrderHandler
	ProfileHandler  *ProfileHandler
	AdminHandler    *AdminHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	prodRepo := repos.NewProductRepo(db)

	gw := shop.Gateway{
		Products:  prodRepo,
		Cart:      repos.NewCartRepo(db),
		Favorites: repos.NewFavoriteRepo(db),
		Orders:    repos.NewOrderRepo(db),
		Profiles:  repos.NewProfileRepo(db),
		Auth:      repos.NewUserRepo(db),
		Blobs:     repos.NewMediaRepo(cfg.MediaDir, cfg.BaseURL),
	}
	reg := shop.NewRegistry(gw)

	return &Deps{
		Registry:        reg,
		AuthHandler:     &AuthHandler{Registry: reg},
		CatalogHandler:  &CatalogHandler{Products: prodRepo},
		CartHandler:     &CartHandler{Products: prodRepo},
		FavoriteHandler: &FavoriteHandler{Products: prodRepo},
		CheckoutHandler: &CheckoutHandler{},
		OrderHandler:    &OrderHandler{},
		ProfileHandler:  &ProfileHandler{},
		AdminHandler:    &AdminHandler{},
	}
}
