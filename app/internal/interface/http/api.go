package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	domcart "example.com/storefront-cart/app/internal/domain/cart"
	"example.com/storefront-cart/app/internal/infra/i18n"
	cartuc "example.com/storefront-cart/app/internal/usecase/cart"
	sessionuc "example.com/storefront-cart/app/internal/usecase/session"
)

// Pinger reports whether the cart storage backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type API struct {
	sessionSvc *sessionuc.Service
	carts      *cartuc.Registry
	storage    Pinger
	translator *i18n.Translator
	validator  *validator.Validate
	log        zerolog.Logger
}

type Dependencies struct {
	SessionService *sessionuc.Service
	Carts          *cartuc.Registry
	Storage        Pinger
	Translator     *i18n.Translator
	Logger         zerolog.Logger
}

func NewAPI(deps Dependencies) *API {
	validate := validator.New()
	return &API{
		sessionSvc: deps.SessionService,
		carts:      deps.Carts,
		storage:    deps.Storage,
		translator: deps.Translator,
		validator:  validate,
		log:        deps.Logger,
	}
}

func (a *API) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(a.requestLogger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.AllowContentType("application/json", "text/plain"))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/health/storage", a.handleStorageHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/sessions", a.handleCreateSession)

		r.Group(func(sr chi.Router) {
			sr.Use(a.sessionMiddleware)
			sr.Get("/cart", a.handleGetCart)
			sr.Post("/cart/items", a.handleAddCartItem)
			sr.Delete("/cart/items/{id}", a.handleRemoveCartItem)
			sr.Patch("/cart/items/{id}", a.handleUpdateCartItem)
		})
	})

	return r
}

func (a *API) handleStorageHealth(w http.ResponseWriter, r *http.Request) {
	if a.storage == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := a.storage.Ping(ctx); err != nil {
		a.log.Error().Err(err).Msg("storage health check failed")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *API) decodeAndValidate(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}
	return a.validator.Struct(dst)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func respondError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func parseIDParam(r *http.Request, key string) (int64, error) {
	idStr := chi.URLParam(r, key)
	return strconv.ParseInt(idStr, 10, 64)
}

func mapCart(c domcart.Cart) map[string]any {
	items := make([]map[string]any, 0, c.Len())
	for _, item := range c.Items {
		items = append(items, map[string]any{
			"id":       item.ID,
			"name":     item.Name,
			"price":    item.Price,
			"image":    item.Image,
			"amount":   item.Amount,
			"subtotal": item.Subtotal(),
		})
	}
	return map[string]any{
		"items":    items,
		"total":    c.Total(),
		"quantity": c.Quantity(),
	}
}

// statusFor maps the result of a cart operation to its HTTP status.
func statusFor(err error) int {
	switch domcart.OutcomeOf(err) {
	case domcart.OutcomeOK:
		return http.StatusOK
	case domcart.OutcomeStockExceeded:
		return http.StatusUnprocessableEntity
	case domcart.OutcomeNotInCart:
		return http.StatusNotFound
	case domcart.OutcomePersistFailure:
		return http.StatusInternalServerError
	default:
		return http.StatusBadGateway
	}
}

func handleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cartuc.ErrEmptySession),
		errors.Is(err, sessionuc.ErrInvalidSession):
		respondError(w, http.StatusUnauthorized, err)
	case errors.Is(err, domcart.ErrInvalidCart):
		// stored slot could not be decoded
		respondError(w, http.StatusInternalServerError, err)
	case errors.Is(err, domcart.ErrStockExceeded),
		errors.Is(err, domcart.ErrProductNotInCart),
		errors.Is(err, domcart.ErrPersistFailure),
		errors.Is(err, domcart.ErrFetchFailure):
		respondError(w, statusFor(err), err)
	default:
		respondError(w, http.StatusInternalServerError, err)
	}
}
