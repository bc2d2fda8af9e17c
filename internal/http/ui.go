package httpx

import (
	"net/http"

	"github.com/forkful/menuboard/internal/domain/model"
	"github.com/forkful/menuboard/internal/service"
)

// UIHandlers serves the server-rendered pages.
type UIHandlers struct {
	Renderer    *Renderer
	Restaurants *service.RestaurantService
	Items       *service.MenuItemService
}

// LoginPageData feeds the sign-in page template.
type LoginPageData struct {
	State         string
	Authenticated bool
	DisplayName   string
}

// RestaurantsPageData feeds the restaurant list page template.
type RestaurantsPageData struct {
	Restaurants   []*model.Restaurant
	Authenticated bool
	DisplayName   string
}

// MenuPageData feeds the menu page template.
type MenuPageData struct {
	Restaurant    *model.Restaurant
	MenuItems     []*model.MenuItem
	Authenticated bool
	DisplayName   string
	CanEdit       bool
}

// Index renders the restaurant list.
// GET /.
func (h *UIHandlers) Index(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())

	restaurants, err := h.Restaurants.List(r.Context(), 0, 0)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	h.Renderer.Render(w, r, "restaurants", RestaurantsPageData{
		Restaurants:   restaurants,
		Authenticated: sess.IsAuthenticated(),
		DisplayName:   sess.DisplayName,
	})
}

// Menu renders one restaurant's menu. Owners see edit affordances.
// GET /restaurants/{id}/menu.
func (h *UIHandlers) Menu(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}

	sess, _ := SessionFromContext(r.Context())

	restaurant, err := h.Restaurants.GetByID(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	items, err := h.Items.ListByRestaurant(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	h.Renderer.Render(w, r, "menu", MenuPageData{
		Restaurant:    restaurant,
		MenuItems:     items,
		Authenticated: sess.IsAuthenticated(),
		DisplayName:   sess.DisplayName,
		CanEdit:       service.RequireOwner(sess, restaurant.OwnerID),
	})
}
