package httpx

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/forkful/menuboard/internal/domain/model"
	"github.com/forkful/menuboard/internal/service"
)

const maxRestaurantListLimit = 100

// RestaurantHandlers provides HTTP handlers for restaurant CRUD.
type RestaurantHandlers struct {
	Svc *service.RestaurantService
}

// Create handles HTTP requests to create a restaurant owned by the caller.
func (h *RestaurantHandlers) Create(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}

	var req model.CreateRestaurantRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	restaurant, err := h.Svc.Create(r.Context(), sess, &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, restaurant)
}

// List handles HTTP requests to list restaurants with pagination. The
// optional q, owner_id, sort, and dir query parameters switch to a filtered
// listing.
func (h *RestaurantHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, 50, maxRestaurantListLimit)

	var (
		restaurants []*model.Restaurant
		err         error
	)
	if opts, filtered := restaurantListOptions(r, limit, offset); filtered {
		restaurants, err = h.Svc.Search(r.Context(), opts)
	} else {
		restaurants, err = h.Svc.List(r.Context(), limit, offset)
	}
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"restaurants": restaurants,
		"limit":       limit,
		"offset":      offset,
	})
}

// restaurantListOptions reads the filter query parameters. The second return
// reports whether any filter was supplied.
func restaurantListOptions(r *http.Request, limit, offset int) (model.RestaurantsListOptions, bool) {
	opts := model.RestaurantsListOptions{Limit: limit, Offset: offset}
	filtered := false

	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		opts.Q = &q
		filtered = true
	}
	if raw := r.URL.Query().Get("owner_id"); raw != "" {
		if ownerID, err := strconv.ParseInt(raw, 10, 64); err == nil && ownerID > 0 {
			opts.OwnerID = &ownerID
			filtered = true
		}
	}
	if sort := r.URL.Query().Get("sort"); sort != "" {
		opts.Sort = sort
		opts.Dir = r.URL.Query().Get("dir")
		filtered = true
	}

	return opts, filtered
}

// GetByID handles HTTP requests to get a restaurant by id.
func (h *RestaurantHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_path",
			Err:     errors.New("restaurant id must be a positive integer"),
		})
		return
	}

	restaurant, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, restaurant)
}

// Update handles HTTP requests to rename a restaurant.
func (h *RestaurantHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_path",
			Err:     errors.New("restaurant id must be a positive integer"),
		})
		return
	}

	sess, _ := SessionFromContext(r.Context())

	var req model.UpdateRestaurantRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	restaurant, err := h.Svc.Rename(r.Context(), sess, id, req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, restaurant)
}

// Delete handles HTTP requests to delete a restaurant and, via the cascade,
// its menu.
func (h *RestaurantHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_path",
			Err:     errors.New("restaurant id must be a positive integer"),
		})
		return
	}

	sess, _ := SessionFromContext(r.Context())

	if err := h.Svc.Delete(r.Context(), sess, id); err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
