package http

import (
	"errors"
	"net/http"

	"example.com/storefront-cart/app/internal/domain/notice"
	cartuc "example.com/storefront-cart/app/internal/usecase/cart"
)

type addCartItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
}

// Amount is a signed delta; zero is accepted and leaves the cart unchanged.
type updateCartItemRequest struct {
	Amount *int64 `json:"amount" validate:"required,min=-1000000,max=1000000"`
}

var errInvalidProductID = errors.New("invalid product id")

func (a *API) sessionCart(w http.ResponseWriter, r *http.Request) (*cartuc.Service, bool) {
	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, errUnauthenticated)
		return nil, false
	}

	svc, err := a.carts.Get(r.Context(), sessionID)
	if err != nil {
		a.log.Error().Err(err).Str("session_id", sessionID).Msg("load cart")
		handleDomainError(w, err)
		return nil, false
	}
	return svc, true
}

// respondCart writes the cart after an operation together with the notice
// the operation produced, if any.
func (a *API) respondCart(w http.ResponseWriter, r *http.Request, svc *cartuc.Service, op notice.Operation, err error) {
	resp := map[string]any{
		"cart": mapCart(svc.Cart()),
	}
	if n, ok := notice.For(op, err); ok {
		tag := a.translator.Negotiate(r.Header.Get("Accept-Language"))
		resp["notification"] = map[string]any{
			"kind":    n.Kind,
			"message": a.translator.Text(tag, n.Key),
		}
		resp["error"] = err.Error()
	}
	writeJSON(w, statusFor(err), resp)
}

func (a *API) handleGetCart(w http.ResponseWriter, r *http.Request) {
	svc, ok := a.sessionCart(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, mapCart(svc.Cart()))
}

func (a *API) handleAddCartItem(w http.ResponseWriter, r *http.Request) {
	svc, ok := a.sessionCart(w, r)
	if !ok {
		return
	}

	var req addCartItemRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	err := svc.AddProduct(r.Context(), req.ProductID)
	a.respondCart(w, r, svc, notice.OpAdd, err)
}

func (a *API) handleRemoveCartItem(w http.ResponseWriter, r *http.Request) {
	svc, ok := a.sessionCart(w, r)
	if !ok {
		return
	}

	id, err := parseIDParam(r, "id")
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, errInvalidProductID)
		return
	}

	err = svc.RemoveProduct(r.Context(), id)
	a.respondCart(w, r, svc, notice.OpRemove, err)
}

func (a *API) handleUpdateCartItem(w http.ResponseWriter, r *http.Request) {
	svc, ok := a.sessionCart(w, r)
	if !ok {
		return
	}

	id, err := parseIDParam(r, "id")
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, errInvalidProductID)
		return
	}

	var req updateCartItemRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	err = svc.UpdateProductAmount(r.Context(), cartuc.UpdateAmount{
		ProductID: id,
		Amount:    *req.Amount,
	})
	op := notice.OpUpdate
	if *req.Amount > 0 {
		op = notice.OpAdd
	}
	a.respondCart(w, r, svc, op, err)
}
