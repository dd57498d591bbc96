package server

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ydovzhyk/insight-agent/config"
	agentcore "github.com/ydovzhyk/insight-agent/internal/agent/core"
	"github.com/ydovzhyk/insight-agent/internal/memory"
	"github.com/ydovzhyk/insight-agent/internal/memory/mem0"
	"github.com/ydovzhyk/insight-agent/internal/session"
	sessioninmemory "github.com/ydovzhyk/insight-agent/internal/session/inmemory"
	sessionredis "github.com/ydovzhyk/insight-agent/internal/session/redis"
	"github.com/ydovzhyk/insight-agent/internal/telemetry"
	"github.com/ydovzhyk/insight-agent/provider"
	"github.com/ydovzhyk/insight-agent/tools/semantic"
	"github.com/ydovzhyk/insight-agent/tools/web_fetch"
	"github.com/ydovzhyk/insight-agent/tools/web_search"
)

// Run wires every provider from config and serves the API until the
// process exits.
func Run(cfgPath, addr string) error {
	cfg := config.LoadConfig(cfgPath)

	baseLogger := log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	tele := telemetry.New()

	e := newEcho(baseLogger, tele)

	// Top-level DI: providers are built once and shared across requests.
	llm, err := provider.NewProvider(provider.Client(cfg.LLM.Provider), cfg.LLM.APIKey, cfg.LLM.Timeout)
	if err != nil {
		return fmt.Errorf("llm provider: %w", err)
	}
	searcher, err := web_search.NewWebSearcher(web_search.Provider(cfg.Search.Provider), cfg.Search.APIKey, cfg.Search.MaxResults)
	if err != nil {
		return fmt.Errorf("search provider: %w", err)
	}
	contents, err := semantic.NewContentProvider(semantic.Provider(cfg.Semantic.Provider), cfg.Semantic.APIKey)
	if err != nil {
		return fmt.Errorf("semantic provider: %w", err)
	}
	fetcher, err := web_fetch.NewWebFetcher(web_fetch.FetcherType(cfg.Fetch.Fetcher), cfg.Fetch.APIKey, cfg.Fetch.Timeout, cfg.Fetch.MaxChars)
	if err != nil {
		return fmt.Errorf("fetcher: %w", err)
	}

	memLogger := log.New(log.Writer(), "[MEMORY] ", log.LstdFlags)
	gate := memory.NewGate(mem0.NewClient(cfg.Memory.APIKey, cfg.Memory.OrgID, cfg.Memory.ProjectID, cfg.Memory.Timeout), memLogger)

	orchLogger := log.New(log.Writer(), "[ORCH] ", log.LstdFlags)
	orch := agentcore.NewOrchestrator(cfg, llm, searcher, contents, fetcher, gate, orchLogger, tele)

	sessions, err := newSessionStore(cfg)
	if err != nil {
		return err
	}

	api := e.Group("/api")
	agent := api.Group("/agent")
	ah := &AgentHandler{Agent: orch, Logger: baseLogger}
	ah.Register(agent)
	sh := &SuggestionsHandler{Agent: orch, Sessions: sessions, Logger: baseLogger}
	sh.Register(agent)

	if addr == "" {
		addr = cfg.Server.Address
	}
	return e.Start(addr)
}

// newEcho builds the echo instance with the shared middleware and the
// operational endpoints. Handlers are registered by the caller.
func newEcho(logger *log.Logger, tele *telemetry.Telemetry) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	// Unified HTTP error handler with structured JSON and logging
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		logger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]interface{}{"error": msg})
		}
	}

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Cookie"},
		AllowCredentials: true,
	}))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			t0 := time.Now()
			err := next(c)
			tele.ObserveRequest(c.Path(), time.Since(t0))
			return err
		}
	})

	e.GET("/healthz", func(c echo.Context) error { return c.String(200, "ok") })
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	return e
}

func newSessionStore(cfg *config.Config) (session.Store, error) {
	switch cfg.Suggestions.Store {
	case "redis":
		r := cfg.Suggestions.Redis
		if r.Addr == "" {
			return nil, fmt.Errorf("redis session store selected but suggestions.redis.addr is empty")
		}
		return sessionredis.NewStore(r.Addr, r.Password, r.DB, cfg.Suggestions.SessionTTL), nil
	case "inmemory", "":
		return sessioninmemory.NewStore(cfg.Suggestions.SessionTTL), nil
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.Suggestions.Store)
	}
}
