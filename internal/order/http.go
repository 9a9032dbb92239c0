package order

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"MiniShop/internal/auth"
	"MiniShop/internal/catalog"
	"MiniShop/pkg/kit"
)

type Server struct {
	Store   Store
	Catalog *catalog.Catalog
	Metrics *Metrics
	Log     *zap.Logger
}

func (s *Server) CreateHandler() http.HandlerFunc      { return s.create }
func (s *Server) GetHandler() http.HandlerFunc         { return s.get }
func (s *Server) AddPositionHandler() http.HandlerFunc { return s.addPosition }

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	clientID, ok := auth.ClientIDFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no client", nil)
		return
	}

	o := New("o_"+uuid.NewString(), clientID)
	if err := s.Store.Create(r.Context(), o); err != nil {
		if isTimeoutErr(err) {
			kit.WriteError(w, r, http.StatusGatewayTimeout, "timeout", nil)
			return
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	kit.WriteJSON(w, http.StatusCreated, o.View())
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	o, ok := s.ownedOrder(w, r)
	if !ok {
		return
	}
	kit.WriteJSON(w, http.StatusOK, o.View())
}

type addPositionReq struct {
	Product string   `json:"product"`
	Weight  *float64 `json:"weight,omitempty"`
	Amount  *uint64  `json:"amount,omitempty"`
}

var (
	errBadPosition = errors.New("exactly one of weight or amount required")
)

func (s *Server) addPosition(w http.ResponseWriter, r *http.Request) {
	o, ok := s.ownedOrder(w, r)
	if !ok {
		return
	}

	var req addPositionReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	p, pricing, err := s.buildPosition(r.Context(), req)
	switch {
	case err == nil:
	case errors.Is(err, errBadPosition):
		kit.WriteError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	case errors.Is(err, catalog.ErrProductNotFound):
		kit.WriteError(w, r, http.StatusBadRequest, "unknown product", map[string]any{"product": req.Product})
		return
	default:
		if s.Log != nil {
			s.Log.Error("catalog lookup failed", zap.Error(err), zap.String("product", req.Product))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	o.AddPosition(p)
	s.Metrics.positionAdded(string(pricing))

	kit.WriteJSON(w, http.StatusOK, o.View())
}

func (s *Server) buildPosition(ctx context.Context, req addPositionReq) (Position, catalog.Pricing, error) {
	name := strings.TrimSpace(req.Product)

	switch {
	case req.Weight != nil && req.Amount == nil:
		p, err := s.Catalog.WeightProduct(ctx, name)
		if err != nil {
			return nil, "", err
		}
		return NewWeightPosition(p, *req.Weight), catalog.PerKg, nil
	case req.Amount != nil && req.Weight == nil:
		p, err := s.Catalog.AmountProduct(ctx, name)
		if err != nil {
			return nil, "", err
		}
		return NewAmountPosition(p, *req.Amount), catalog.PerOne, nil
	default:
		return nil, "", errBadPosition
	}
}

// ownedOrder loads the {id} order and checks it belongs to the caller. It
// writes the error response itself when it returns false.
func (s *Server) ownedOrder(w http.ResponseWriter, r *http.Request) (*Order, bool) {
	o, err := FindOwned(r.Context(), s.Store, chi.URLParam(r, "id"))
	if err != nil {
		WriteLookupError(w, r, s.Log, err)
		return nil, false
	}
	return o, true
}

var ErrForbidden = errors.New("order belongs to another client")

// FindOwned loads order id and checks that it belongs to the client in ctx.
func FindOwned(ctx context.Context, store Store, id string) (*Order, error) {
	clientID, ok := auth.ClientIDFromContext(ctx)
	if !ok {
		return nil, ErrForbidden
	}

	o, found, err := store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	if o.ClientID != clientID {
		return nil, ErrForbidden
	}
	return o, nil
}

func WriteLookupError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": chi.URLParam(r, "id")})
	case errors.Is(err, ErrForbidden):
		kit.WriteError(w, r, http.StatusForbidden, "forbidden", nil)
	default:
		if log != nil {
			log.Error("store get order failed", zap.Error(err), zap.String("order_id", chi.URLParam(r, "id")))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
	}
}

func isTimeoutErr(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
