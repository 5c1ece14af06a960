package researchbot

import (
	"fmt"
	"log/slog"

	"researchbot/internal/bot"
	"researchbot/internal/config"
	"researchbot/internal/logging"
	"researchbot/internal/rag"
	"researchbot/internal/runtime"
	"researchbot/pkg/adapters/memindex"
	"researchbot/pkg/adapters/memory"
	openaiadapter "researchbot/pkg/adapters/openai"
	redisadapter "researchbot/pkg/adapters/redis"
	"researchbot/pkg/adapters/tavily"
	"researchbot/pkg/domain"
	"researchbot/pkg/graph"
	"researchbot/pkg/ports"
	"researchbot/pkg/session"
)

// Version is the release version, overridable at build time via
// -ldflags "-X researchbot.Version=...".
var Version = "0.1.0"

// App is the high-level entry point. It wires the document index, the
// language model, the dialogue graph and checkpoint persistence, and
// hands out session controllers.
type App struct {
	cfg    config.Config
	logger *slog.Logger
	hooks  domain.LifecycleHooks

	model     ports.ModelClient
	index     ports.DocumentIndex
	web       ports.WebSearcher
	store     ports.CheckpointStore
	retrieval *rag.Service
	graph     *graph.Graph
}

// Option defines a functional option for configuring the App.
type Option func(*App)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks on the executor.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(a *App) { a.hooks = hooks }
}

// WithModelClient injects a model client, bypassing the OpenAI default.
func WithModelClient(m ports.ModelClient) Option {
	return func(a *App) { a.model = m }
}

// WithDocumentIndex injects a document index, bypassing the directory
// index built from the configured docs dir.
func WithDocumentIndex(ix ports.DocumentIndex) Option {
	return func(a *App) { a.index = ix }
}

// WithWebSearcher injects a web searcher. By default web search is
// enabled only when a Tavily API key is configured.
func WithWebSearcher(w ports.WebSearcher) Option {
	return func(a *App) { a.web = w }
}

// WithCheckpointStore injects a checkpoint store, bypassing the
// Redis-or-memory default.
func WithCheckpointStore(s ports.CheckpointStore) Option {
	return func(a *App) { a.store = s }
}

// New assembles an App from configuration. Collaborators not supplied
// via options are built from cfg.
func New(cfg config.Config, opts ...Option) (*App, error) {
	a := &App{cfg: cfg, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(a)
	}

	if a.model == nil {
		if cfg.Model.APIKey == "" {
			return nil, fmt.Errorf("researchbot: model API key is not configured")
		}
		a.model = openaiadapter.New(cfg.Model.APIKey, cfg.Model.BaseURL,
			openaiadapter.WithModel(cfg.Model.Name),
			openaiadapter.WithLogger(a.logger),
		)
	}
	if a.index == nil {
		a.index = memindex.New(cfg.Retrieval.DocsDir)
	}
	if a.web == nil && cfg.WebSearch.APIKey != "" {
		webOpts := []tavily.Option{}
		if cfg.WebSearch.BaseURL != "" {
			webOpts = append(webOpts, tavily.WithBaseURL(cfg.WebSearch.BaseURL))
		}
		a.web = tavily.New(cfg.WebSearch.APIKey, webOpts...)
	}
	if a.store == nil {
		if cfg.Redis.Addr != "" {
			a.store = redisadapter.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		} else {
			a.store = memory.NewStore()
		}
	}

	a.retrieval = rag.NewService(a.index, rag.NewGate(cfg.Retrieval.ScoreThreshold),
		rag.WithTopK(cfg.Retrieval.TopK),
		rag.WithLogger(a.logger),
	)

	botOpts := []bot.Option{bot.WithLogger(a.logger)}
	if a.web != nil {
		botOpts = append(botOpts, bot.WithWebSearcher(a.web))
	}
	b := bot.New(a.model, a.retrieval, botOpts...)

	g, err := b.BuildGraph()
	if err != nil {
		return nil, fmt.Errorf("researchbot: build graph: %w", err)
	}
	a.graph = g
	return a, nil
}

// Config returns the configuration the App was built with.
func (a *App) Config() config.Config { return a.cfg }

// Retrieval exposes the retrieval service so callers can warm the
// document index before the first session.
func (a *App) Retrieval() *rag.Service { return a.retrieval }

// NewSession builds a controller for one dialogue session. Controllers
// are independent; each owns its own thread lineage in the shared
// checkpoint store.
func (a *App) NewSession() (*session.Controller, error) {
	exec := runtime.New(a.graph, a.store,
		runtime.WithLogger(a.logger),
		runtime.WithLifecycleHooks(a.hooks),
	)
	return session.NewController(exec, a.store, session.Protocol{
		RequestFor: bot.InputRequestFor,
		PatchFor:   bot.PatchFor,
		RestartAt:  bot.NodeAskTopic,
	},
		session.WithLogger(a.logger),
		session.WithMinAnswerLength(a.cfg.Session.MinQuizAnswerLen),
	), nil
}
