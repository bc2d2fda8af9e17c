package httpx

import (
	"errors"
	"net/http"

	"github.com/forkful/menuboard/internal/domain/model"
	"github.com/forkful/menuboard/internal/service"
)

// MenuItemHandlers provides HTTP handlers for menu item CRUD. Items are
// always addressed through their restaurant, never bare.
type MenuItemHandlers struct {
	Svc *service.MenuItemService
}

// Create handles HTTP requests to add an item to a restaurant's menu.
func (h *MenuItemHandlers) Create(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := pathID(r, "id")
	if !ok {
		writeInvalidPath(w)
		return
	}

	sess, _ := SessionFromContext(r.Context())

	var req model.CreateMenuItemRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	item, err := h.Svc.Create(r.Context(), sess, restaurantID, &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, item)
}

// List handles HTTP requests to list a restaurant's menu.
func (h *MenuItemHandlers) List(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := pathID(r, "id")
	if !ok {
		writeInvalidPath(w)
		return
	}

	items, err := h.Svc.ListByRestaurant(r.Context(), restaurantID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"menu_items": items})
}

// GetByID handles HTTP requests to get a single menu item.
func (h *MenuItemHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	ref, ok := menuItemRef(r)
	if !ok {
		writeInvalidPath(w)
		return
	}

	item, err := h.Svc.GetByRef(r.Context(), ref)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, item)
}

// Update handles HTTP requests to edit a menu item.
func (h *MenuItemHandlers) Update(w http.ResponseWriter, r *http.Request) {
	ref, ok := menuItemRef(r)
	if !ok {
		writeInvalidPath(w)
		return
	}

	sess, _ := SessionFromContext(r.Context())

	var req model.UpdateMenuItemRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	item, err := h.Svc.Update(r.Context(), sess, ref, req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, item)
}

// Delete handles HTTP requests to remove a menu item.
func (h *MenuItemHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	ref, ok := menuItemRef(r)
	if !ok {
		writeInvalidPath(w)
		return
	}

	sess, _ := SessionFromContext(r.Context())

	if err := h.Svc.Delete(r.Context(), sess, ref); err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func writeInvalidPath(w http.ResponseWriter) {
	WriteError(w, ErrorParams{
		Code:    http.StatusBadRequest,
		ErrCode: "invalid_path",
		Err:     errors.New("path ids must be positive integers"),
	})
}
