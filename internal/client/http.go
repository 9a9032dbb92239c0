package client

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"MiniShop/internal/auth"
	"MiniShop/internal/money"
	"MiniShop/internal/order"
	"MiniShop/pkg/kit"
)

const minPassword = 8

type Server struct {
	Accounts auth.AccountStore
	Tokens   *auth.TokenMaker
	Clients  *Registry
	Orders   order.Store
	Deps     Deps
	Log      *zap.Logger
}

func (s *Server) RegisterHandler() http.HandlerFunc { return s.handleRegister }
func (s *Server) LoginHandler() http.HandlerFunc    { return s.handleLogin }
func (s *Server) MeHandler() http.HandlerFunc       { return s.handleMe }
func (s *Server) EarnHandler() http.HandlerFunc     { return s.handleEarn }
func (s *Server) PayHandler() http.HandlerFunc      { return s.handlePay }

type credentialsReq struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type registerResp struct {
	ID string `json:"id"`
}

type loginResp struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type meResp struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Balance money.Amount `json:"balance"`
}

type earnReq struct {
	Currency money.Currency `json:"currency"`
	Amount   money.Amount   `json:"amount"`
}

type balanceResp struct {
	Balance money.Amount `json:"balance"`
}

type payResp struct {
	Order   order.View   `json:"order"`
	Balance money.Amount `json:"balance"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsReq
	if !decodeBody(w, r, &req) {
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Password = strings.TrimSpace(req.Password)

	if req.Name == "" || req.Password == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "name/password required", nil)
		return
	}
	if len(req.Password) < minPassword {
		kit.WriteError(w, r, http.StatusBadRequest, "password too short", map[string]any{"min_len": minPassword})
		return
	}

	id := "c_" + uuid.NewString()

	err := s.Accounts.Create(r.Context(), req.Name, req.Password, id)
	switch {
	case err == nil:
	case errors.Is(err, auth.ErrNameExists):
		kit.WriteError(w, r, http.StatusConflict, err.Error(), nil)
		return
	default:
		s.Log.Error("account create failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	if err := s.Clients.Add(New(id, req.Name, s.Deps)); err != nil {
		s.Log.Error("client registry add failed", zap.Error(err), zap.String("client_id", id))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	kit.WriteJSON(w, http.StatusCreated, registerResp{ID: id})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsReq
	if !decodeBody(w, r, &req) {
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Password = strings.TrimSpace(req.Password)

	if req.Name == "" || req.Password == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "name/password required", nil)
		return
	}

	a, err := s.Accounts.Verify(r.Context(), req.Name, req.Password)
	if err != nil {
		kit.WriteError(w, r, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}

	tok, exp, err := s.Tokens.Issue(a.ID, a.Name)
	if err != nil {
		s.Log.Error("token issue", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, loginResp{AccessToken: tok, ExpiresAt: exp})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	c, ok := s.currentClient(w, r)
	if !ok {
		return
	}
	kit.WriteJSON(w, http.StatusOK, meResp{ID: c.ID, Name: c.Name, Balance: c.Balance()})
}

func (s *Server) handleEarn(w http.ResponseWriter, r *http.Request) {
	c, ok := s.currentClient(w, r)
	if !ok {
		return
	}

	var req earnReq
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Amount.IsNegative() {
		kit.WriteError(w, r, http.StatusBadRequest, "amount must not be negative", nil)
		return
	}

	err := c.Earn(req.Currency, req.Amount)
	switch {
	case err == nil:
	case errors.Is(err, money.ErrUnknownCurrency):
		kit.WriteError(w, r, http.StatusBadRequest, "unknown currency", map[string]any{"currency": req.Currency})
		return
	case errors.Is(err, money.ErrOutOfRange):
		kit.WriteError(w, r, http.StatusBadRequest, "amount out of range", map[string]any{
			"max_exponent": money.MaxExponent,
			"max_digits":   money.MaxDigits,
		})
		return
	default:
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, balanceResp{Balance: c.Balance()})
}

func (s *Server) handlePay(w http.ResponseWriter, r *http.Request) {
	c, ok := s.currentClient(w, r)
	if !ok {
		return
	}

	o, err := order.FindOwned(r.Context(), s.Orders, chi.URLParam(r, "id"))
	if err != nil {
		order.WriteLookupError(w, r, s.Log, err)
		return
	}

	err = c.PayAndReceiveOrder(r.Context(), o)
	switch {
	case err == nil:
		kit.WriteJSON(w, http.StatusOK, payResp{Order: o.View(), Balance: c.Balance()})
	case errors.Is(err, order.ErrEmptyOrder):
		kit.WriteError(w, r, http.StatusConflict, "the order is empty", map[string]any{"balance": c.Balance()})
	case errors.Is(err, ErrInsufficientFunds):
		kit.WriteError(w, r, http.StatusPaymentRequired, "not enough money", map[string]any{
			"cost":    o.Cost(),
			"balance": c.Balance(),
		})
	default:
		s.Log.Error("payment failed", zap.Error(err), zap.String("order_id", o.ID))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
	}
}

func (s *Server) currentClient(w http.ResponseWriter, r *http.Request) (*Client, bool) {
	id, ok := auth.ClientIDFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no client", nil)
		return nil, false
	}

	c, ok := s.Clients.Get(id)
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "unknown client", nil)
		return nil, false
	}
	return c, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := kit.DecodeJSON(w, r, v); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return false
	}
	return true
}
