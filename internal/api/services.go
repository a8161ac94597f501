package api

import "github.com/f246632/rijeka-online/internal/service"

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Auth     *service.AuthService
	Users    *service.UserService
	Articles *service.ArticleService
	Listing  *service.ListingService
	Catalog  *service.CatalogService
	Search   *service.SearchService
}
