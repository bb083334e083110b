package commands

import (
	"context"
	"io"
	"strings"

	"github.com/go-kratos/kratos/v2/log"

	"taskpad/internal/config"
	"taskpad/internal/logging"
	"taskpad/internal/service"
	"taskpad/internal/tasklist"
)

// ExporterFactory creates an Exporter from config.
// Used to inject the export backend.
type ExporterFactory func(ctx context.Context, cfg *config.Config, logger log.Logger) (service.Exporter, error)

// Session is one process run: a config, an input stream and the task store
// that every session command operates on.
type Session struct {
	Config   *config.Config
	Store    *tasklist.Store
	In       io.Reader
	Logger   log.Logger
	Exporter ExporterFactory
	Registry *Registry
}

// NewSession creates a session with an empty store.
// A nil logger discards logs and a nil input reads nothing.
func NewSession(cfg *config.Config, in io.Reader, logger log.Logger, factory ExporterFactory) *Session {
	if logger == nil {
		logger = logging.Discard()
	}
	if in == nil {
		in = strings.NewReader("")
	}
	return &Session{
		Config:   cfg,
		Store:    tasklist.New(tasklist.WithLogger(logger)),
		In:       in,
		Logger:   logger,
		Exporter: factory,
		Registry: DefaultRegistry,
	}
}

// Log returns a helper tagged with the given module name.
func (s *Session) Log(module string) *log.Helper {
	return log.NewHelper(log.With(s.Logger, "module", module))
}
