package httpx

import (
	"log/slog"
	"net/http"

	"github.com/forkful/menuboard/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth         AuthSessionService
	Restaurants  *service.RestaurantService
	MenuItems    *service.MenuItemService
	Exports      *service.ExportService
	CookieDomain string
	Logger       *slog.Logger
}

// NewRouter creates and configures a new HTTP router.
func NewRouter(services RouterServices) (http.Handler, error) {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	renderer, err := NewRenderer(logger)
	if err != nil {
		return nil, err
	}

	authHandlers := &AuthHandlers{
		Svc:          services.Auth,
		Renderer:     renderer,
		CookieDomain: services.CookieDomain,
		Logger:       logger,
	}
	restaurantHandlers := &RestaurantHandlers{Svc: services.Restaurants}
	itemHandlers := &MenuItemHandlers{Svc: services.MenuItems}
	exportHandlers := &ExportHandlers{Svc: services.Exports}
	uiHandlers := &UIHandlers{
		Renderer:    renderer,
		Restaurants: services.Restaurants,
		Items:       services.MenuItems,
	}

	mux := http.NewServeMux()

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	registerAuthRoutes(mux, authHandlers)
	registerRestaurantRoutes(mux, restaurantHandlers)
	registerMenuItemRoutes(mux, itemHandlers)
	registerExportRoutes(mux, exportHandlers)
	registerUIRoutes(mux, uiHandlers)

	// Every route shares the session middleware so handlers can assume a
	// session value on the context.
	var handler http.Handler = mux
	handler = WithSession(services.Auth, services.CookieDomain)(handler)
	handler = Logging(logger)(handler)
	handler = Recover(logger)(handler)
	return handler, nil
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("GET /login", h.Login)
	mux.HandleFunc("POST /auth/{provider}/connect", h.Connect)
	mux.HandleFunc("POST /auth/disconnect", h.Disconnect)
	mux.HandleFunc("DELETE /auth/session", h.Reset)
	mux.HandleFunc("GET /auth/status", h.Status)
}

func registerRestaurantRoutes(mux *http.ServeMux, h *RestaurantHandlers) {
	mux.HandleFunc("POST /api/restaurants", h.Create)
	mux.HandleFunc("GET /api/restaurants", h.List)
	mux.HandleFunc("GET /api/restaurants/{id}", h.GetByID)
	mux.HandleFunc("PUT /api/restaurants/{id}", h.Update)
	mux.HandleFunc("DELETE /api/restaurants/{id}", h.Delete)
}

func registerMenuItemRoutes(mux *http.ServeMux, h *MenuItemHandlers) {
	mux.HandleFunc("POST /api/restaurants/{id}/menu", h.Create)
	mux.HandleFunc("GET /api/restaurants/{id}/menu", h.List)
	mux.HandleFunc("GET /api/restaurants/{id}/menu/{itemID}", h.GetByID)
	mux.HandleFunc("PUT /api/restaurants/{id}/menu/{itemID}", h.Update)
	mux.HandleFunc("DELETE /api/restaurants/{id}/menu/{itemID}", h.Delete)
}

func registerExportRoutes(mux *http.ServeMux, h *ExportHandlers) {
	mux.HandleFunc("GET /restaurants/JSON", h.RestaurantsJSON)
	mux.HandleFunc("GET /restaurants/ATOM", h.RestaurantsAtom)
	mux.HandleFunc("GET /restaurants/{id}/menu/JSON", h.MenuJSON)
	mux.HandleFunc("GET /restaurants/{id}/menu/ATOM", h.MenuAtom)
	mux.HandleFunc("GET /restaurants/{id}/menu/{itemID}/JSON", h.ItemJSON)
	mux.HandleFunc("GET /restaurants/{id}/menu/{itemID}/ATOM", h.ItemAtom)
}

func registerUIRoutes(mux *http.ServeMux, h *UIHandlers) {
	mux.HandleFunc("GET /{$}", h.Index)
	mux.HandleFunc("GET /restaurants", h.Index)
	mux.HandleFunc("GET /restaurants/{id}/menu", h.Menu)
}
