package handlers

import (
	"cocobloom/internal/config"
	"cocobloom/internal/repos"
	"cocobloom/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	Registry *services.Registry

	HomeHandler      *HomeHandler
	ProductHandler   *ProductHandler
	SearchHandler    *SearchHandler
	CartHandler      *CartHandler
	CompareHandler   *CompareHandler
	WishlistHandler  *WishlistHandler
	ReviewHandler    *ReviewHandler
	OfferHandler     *OfferHandler
	OrderHandler     *OrderHandler
	AssistantHandler *AssistantHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	cartRepo := repos.NewCartRepo(db)
	wishRepo := repos.NewWishlistRepo(db)
	reviewRepo := repos.NewReviewRepo(db)
	offerRepo := repos.NewOfferRepo(db)
	sectionRepo := repos.NewSectionRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	analyticsRepo := repos.NewAnalyticsRepo(db)

	registry := services.NewRegistry(cartRepo, wishRepo, auth)
	catalogSvc := services.NewCatalogService(catRepo, prodRepo)
	reviewSvc := services.NewReviewService(reviewRepo)
	tracker := services.NewAnalyticsTracker(analyticsRepo)
	orderSvc := services.NewOrderService(cartRepo, orderRepo, offerRepo, tracker)

	return &Deps{
		Registry:         registry,
		HomeHandler:      &HomeHandler{Catalog: catalogSvc, Offers: offerRepo, Sections: sectionRepo, State: registry},
		ProductHandler:   &ProductHandler{Catalog: catalogSvc, Reviews: reviewSvc, State: registry},
		SearchHandler:    &SearchHandler{Catalog: catalogSvc, State: registry},
		CartHandler:      &CartHandler{Catalog: catalogSvc, State: registry},
		CompareHandler:   &CompareHandler{Catalog: catalogSvc, State: registry},
		WishlistHandler:  &WishlistHandler{Wishes: wishRepo, State: registry},
		ReviewHandler:    &ReviewHandler{Reviews: reviewSvc, State: registry},
		OfferHandler:     &OfferHandler{Tracker: tracker},
		OrderHandler:     &OrderHandler{Order: orderSvc, Repo: orderRepo, State: registry},
		AssistantHandler: NewAssistantHandler(cfg),
	}
}
