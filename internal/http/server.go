package http

import (
	"context"
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"expensetracker/internal/auth"
	"expensetracker/internal/expenses"
	applog "expensetracker/internal/log"
	"expensetracker/internal/metrics"
	"expensetracker/internal/middleware/ratelimit"
	"expensetracker/internal/middleware/security"
	"expensetracker/internal/middleware/trace"
	"expensetracker/internal/services"
	appweb "expensetracker/web"
)

// Deps are the collaborators the server renders and mutates through.
type Deps struct {
	Categories   *services.CategoryService
	Transactions *services.TransactionService
	Accounts     *services.AccountService
	Summaries    *services.SummaryService
	Expenses     expenses.Store
	Sessions     *auth.SessionManager
	Metrics      *metrics.Metrics
	Logger       *applog.Logger

	// Ready reports whether backing stores answer; nil means always ready.
	Ready func(ctx context.Context) error

	CookieSecure       bool
	RateLimitPerMinute int
}

type Server struct {
	http.Server

	deps      Deps
	logger    *applog.Logger
	log       *applog.StructuredLogger
	templates map[string]*template.Template
	limiter   *ratelimit.Limiter
	detector  *security.Detector
	started   time.Time

	shutdownOnce sync.Once
}

// NewServer parses templates, wires middleware and registers every route.
func NewServer(addr string, deps Deps) (*Server, error) {
	if deps.Logger == nil {
		deps.Logger = applog.New(applog.DefaultConfig())
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.New()
	}
	if deps.Sessions == nil {
		return nil, errors.New("session manager is required")
	}

	templates, err := loadTemplates(appweb.TemplatesFS)
	if err != nil {
		return nil, err
	}

	logger := deps.Logger.WithComponent(applog.ComponentHTTP)
	s := &Server{
		deps:      deps,
		logger:    logger,
		log:       applog.NewStructuredLogger(logger),
		templates: templates,
		limiter:   ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: deps.RateLimitPerMinute}),
		detector:  security.NewDetector(),
		started:   time.Now(),
	}

	mux := http.NewServeMux()
	if err := s.routes(mux); err != nil {
		s.limiter.Stop()
		return nil, err
	}

	var handler http.Handler = mux
	handler = s.withSession(handler)
	handler = s.withCSRF(handler)
	handler = s.limiter.Middleware(s.detector.ExtractClientIP, nil)(handler)
	handler = s.detector.Middleware(handler)
	handler = security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware(handler)
	handler = trace.NewMiddleware(deps.Logger, s.detector.ExtractClientIP).Middleware(handler)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s, nil
}

func (s *Server) routes(mux *http.ServeMux) error {
	handle := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, s.deps.Metrics.Instrument(pattern, h))
	}
	private := func(pattern string, h http.HandlerFunc) {
		handle(pattern, s.requireAuth(security.NoStore(h)).ServeHTTP)
	}

	private("GET /{$}", s.handleHome)

	private("GET /Category", s.handleCategoryIndex)
	private("GET /Category/AddOrEdit", s.handleCategoryForm)
	private("GET /Category/AddOrEdit/{id}", s.handleCategoryForm)
	private("POST /Category/AddOrEdit", s.handleCategorySave)
	private("GET /Category/Delete/{id}", s.handleCategoryDeleteConfirm)
	private("POST /Category/Delete/{id}", s.handleCategoryDelete)

	private("GET /Transaction", s.handleTransactionIndex)
	private("GET /Transaction/AddOrEdit", s.handleTransactionForm)
	private("GET /Transaction/AddOrEdit/{id}", s.handleTransactionForm)
	private("POST /Transaction/AddOrEdit", s.handleTransactionSave)
	private("GET /Transaction/Delete/{id}", s.handleTransactionDeleteConfirm)
	private("POST /Transaction/Delete/{id}", s.handleTransactionDelete)
	private("GET /Transaction/Export", s.handleTransactionExport)

	handle("GET /Account/Register", s.handleRegisterForm)
	handle("POST /Account/Register", s.handleRegister)
	handle("GET /Account/Login", s.handleLoginForm)
	handle("POST /Account/Login", s.handleLogin)
	handle("POST /Account/Logout", s.handleLogout)

	handle("GET /Expenses", s.handleExpenseIndex)
	handle("GET /Expenses/Create", s.handleExpenseForm)
	handle("POST /Expenses/Create", s.handleExpenseCreate)

	handle("GET /healthz", s.handleHealth)
	handle("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", s.deps.Metrics.Handler())

	sub, err := fs.Sub(appweb.StaticFS, "static")
	if err != nil {
		return err
	}
	static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
	mux.Handle("GET /static/", security.StaticAssetMiddleware(3600)(static))

	mux.HandleFunc("/", s.notFound)
	return nil
}

// Shutdown drains the HTTP server and stops background routines once.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
