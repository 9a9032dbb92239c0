package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"MiniShop/internal/auth"
	"MiniShop/internal/catalog"
	"MiniShop/internal/client"
	"MiniShop/internal/events"
	"MiniShop/internal/order"
	"MiniShop/pkg/kit"
)

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsToken string

	AuthRateLimit  int
	AuthRateWindow time.Duration
}

type Deps struct {
	Catalog  *catalog.Catalog
	Accounts auth.AccountStore
	Clients  *client.Registry
	Orders   order.Store
	Events   events.Sink
	Tokens   *auth.TokenMaker
}

const readyTimeout = 2 * time.Second

func NewHandler(deps Deps, httpDeps HTTPDeps) http.Handler {
	if httpDeps.Log == nil {
		httpDeps.Log = zap.NewNop()
	}

	var (
		orderMetrics  *order.Metrics
		clientMetrics *client.Metrics
	)
	if httpDeps.Registry != nil {
		orderMetrics = order.NewMetrics(httpDeps.Registry)
		clientMetrics = client.NewMetrics(httpDeps.Registry)
	}

	catalogSrv := &catalog.Server{Catalog: deps.Catalog, Log: httpDeps.Log}
	orderSrv := &order.Server{
		Store:   deps.Orders,
		Catalog: deps.Catalog,
		Metrics: orderMetrics,
		Log:     httpDeps.Log,
	}
	clientSrv := &client.Server{
		Accounts: deps.Accounts,
		Tokens:   deps.Tokens,
		Clients:  deps.Clients,
		Orders:   deps.Orders,
		Deps: client.Deps{
			Log:     httpDeps.Log,
			Events:  deps.Events,
			Metrics: clientMetrics,
		},
		Log: httpDeps.Log,
	}

	r := chi.NewRouter()
	setupMiddleware(r, httpDeps)
	setupMetrics(r, httpDeps)

	r.Get("/healthz", healthz)
	r.Get("/readyz", readyz(deps.Catalog, httpDeps.Log))

	r.Get("/products", catalogSrv.ListHandler())
	r.Get("/products/{name}", catalogSrv.GetHandler())

	r.Group(func(pr chi.Router) {
		if httpDeps.AuthRateLimit > 0 {
			pr.Use(kit.NewIPRateLimiter(httpDeps.AuthRateLimit, httpDeps.AuthRateWindow).Middleware)
		}
		pr.Post("/clients", clientSrv.RegisterHandler())
		pr.Post("/clients/login", clientSrv.LoginHandler())
	})

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireClient(deps.Tokens))

		pr.Get("/clients/me", clientSrv.MeHandler())
		pr.Post("/clients/me/earn", clientSrv.EarnHandler())

		pr.Post("/orders", orderSrv.CreateHandler())
		pr.Get("/orders/{id}", orderSrv.GetHandler())
		pr.Post("/orders/{id}/positions", orderSrv.AddPositionHandler())
		pr.Post("/orders/{id}/pay", clientSrv.PayHandler())
	})

	return r
}

func setupMiddleware(r *chi.Mux, deps HTTPDeps) {
	r.Use(chimw.RequestID)
	r.Use(kit.Recoverer)
	r.Use(kit.Logging(deps.Log))
}

func setupMetrics(r *chi.Mux, deps HTTPDeps) {
	if deps.Registry == nil {
		return
	}

	metrics := kit.NewMetrics(deps.Registry)
	r.Use(metrics.Middleware(deps.Service, kit.RoutePattern))

	if deps.MetricsToken == "" {
		return
	}

	r.With(kit.MetricsAuth(deps.MetricsToken)).
		Handle("/metrics", kit.MetricsHandler(deps.Registry))
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func readyz(c *catalog.Catalog, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		if err := c.Ping(ctx); err != nil {
			log.Warn("readyz failed: catalog", zap.Error(err))
			kit.WriteError(w, r, http.StatusServiceUnavailable, "catalog not ready", nil)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}
