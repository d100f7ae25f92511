package http

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/aussiebroadwan/janus/internal/janus/service"
	"github.com/aussiebroadwan/janus/internal/janus/store"
	"github.com/aussiebroadwan/janus/pkg/httpx"
	"github.com/aussiebroadwan/janus/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/aussiebroadwan/janus/api/janus" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	// handler is Mux wrapped in middlewares, built on first use.
	handler     http.Handler
	handlerOnce sync.Once

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	registry     *prometheus.Registry

	store          store.Store
	UserService    *service.UserService
	RequestService *service.RequestService
	PollingGateway *service.PollingGateway
	AdminService   *service.AdminService

	// MaxPollWait caps the wait a device may ask for on a long poll.
	MaxPollWait time.Duration
}

// NewRouter builds a router. A nil registry disables /metrics and request
// instrumentation.
func NewRouter(
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
	registry *prometheus.Registry,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		registry:     registry,
	}

	// Set default middleware chain. Metrics sit innermost so r.Pattern,
	// set by the mux, is visible when they record.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.Recover(),
	}
	if registry != nil {
		r.middlewares = append(r.middlewares, httpx.NewHTTPMetrics(registry).Middleware())
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerUsers()
	r.registerAuthRequests()
	r.registerPolling()
	r.registerAdmin()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Janus Approval Service API
//	@version		0.1.0
//	@description	Out-of-band approval of login and payment requests. Relying parties raise auth requests;
//	@description	the user's enrolled device discovers them by polling and approves or rejects each one exactly once.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/janus
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.handlerOnce.Do(func() {
		r.handler = httpx.Chain(r.Mux, r.middlewares...)
	})
	r.handler.ServeHTTP(w, req)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}

	// Registration and credential changes - strict rate limit by IP
	r.Mux.Handle("POST /v1/users",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("PUT /v1/users/{id}/credential",
		httpx.Chain(http.HandlerFunc(h.HandleAttachCredential),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("GET /v1/users",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /v1/users/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

func (r *Router) registerAuthRequests() {
	h := &AuthRequestsHandler{RequestService: r.RequestService}

	// POST /auth-requests - relying parties, moderate rate limit
	r.Mux.Handle("POST /v1/auth-requests",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// Relying parties poll this for the outcome
	r.Mux.Handle("GET /v1/auth-requests/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

func (r *Router) registerPolling() {
	h := &PollingHandler{
		Gateway:     r.PollingGateway,
		MaxPollWait: r.MaxPollWait,
	}

	// Device polling - limited per IP and user so devices behind one NAT
	// do not starve each other
	r.Mux.Handle("GET /v1/auth-requests/pending",
		httpx.Chain(http.HandlerFunc(h.HandlePending),
			httpx.RateLimitByIPAndQuery(httpx.PollLimit, "userId"),
		),
	)

	// Decisions - strict rate limit by IP and request id
	r.Mux.Handle("POST /v1/auth-requests/{id}/approve",
		httpx.Chain(http.HandlerFunc(h.HandleApprove),
			httpx.RateLimitByIPAndPath(httpx.StrictLimit, "id"),
		),
	)
	r.Mux.Handle("POST /v1/auth-requests/{id}/reject",
		httpx.Chain(http.HandlerFunc(h.HandleReject),
			httpx.RateLimitByIPAndPath(httpx.StrictLimit, "id"),
		),
	)
}

func (r *Router) registerAdmin() {
	h := &AdminHandler{AdminService: r.AdminService}

	r.Mux.Handle("GET /v1/admin/logs",
		httpx.Chain(http.HandlerFunc(h.HandleLogs),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /v1/admin/stats",
		httpx.Chain(http.HandlerFunc(h.HandleStats),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - public rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	if r.registry != nil {
		r.Mux.Handle("GET /metrics", promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{}))
	}
}
