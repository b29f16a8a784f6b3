package handlers

import (
	"twostreet/internal/config"
	"twostreet/internal/repos"
	"twostreet/internal/services"
	"twostreet/internal/store"
)

type Deps struct {
	AuthHandler    *AuthHandler
	UserHandler    *UserHandler
	ListingHandler *ListingHandler
	AdminHandler   *AdminHandler
}

func NewDeps(s *store.Store, cfg config.Config, auth *services.AuthService) *Deps {
	userRepo := repos.NewUserRepo(s)
	listingRepo := repos.NewListingRepo(s)
	reportRepo := repos.NewReportRepo(s)
	statsRepo := repos.NewStatsRepo(s)

	catalogSvc := services.NewCatalogService(listingRepo)

	return &Deps{
		AuthHandler: &AuthHandler{Auth: auth, Users: userRepo},
		UserHandler: &UserHandler{Users: userRepo, Listings: listingRepo},
		ListingHandler: &ListingHandler{
			Catalog:   catalogSvc,
			Listings:  listingRepo,
			Users:     userRepo,
			Reports:   reportRepo,
			UploadDir: cfg.UploadDir,
		},
		AdminHandler: &AdminHandler{
			Users:    userRepo,
			Listings: listingRepo,
			Reports:  reportRepo,
			Stats:    statsRepo,
		},
	}
}
