package catalog

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"MiniShop/pkg/kit"
)

type Server struct {
	Catalog *Catalog
	Log     *zap.Logger
}

func (s *Server) ListHandler() http.HandlerFunc { return s.list }
func (s *Server) GetHandler() http.HandlerFunc  { return s.get }

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	entries, err := s.Catalog.List(r.Context())
	if err != nil {
		if s.Log != nil {
			s.Log.Error("list products failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, entries)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	e, err := s.Catalog.Entry(r.Context(), name)
	if errors.Is(err, ErrProductNotFound) {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"name": name})
		return
	}
	if err != nil {
		if s.Log != nil {
			s.Log.Error("get product failed", zap.Error(err), zap.String("name", name))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, e)
}
