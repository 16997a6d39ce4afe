package widget

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Registry holds the mounted widgets, one Controller per session.
type Registry struct {
	source weatherSource
	logger zerolog.Logger
	opts   Options

	mu      sync.RWMutex
	widgets map[string]*Controller
}

func NewRegistry(source weatherSource, logger zerolog.Logger, opts Options) *Registry {
	return &Registry{
		source:  source,
		logger:  logger,
		opts:    opts,
		widgets: make(map[string]*Controller),
	}
}

// Mount creates a widget and runs its initial fetch. The widget stays mounted
// even when that fetch fails; the failure is reflected in its state.
func (r *Registry) Mount(ctx context.Context) (*Controller, error) {
	c := NewController(uuid.NewString(), r.source, r.logger, r.opts)

	r.mu.Lock()
	r.widgets[c.ID()] = c
	r.mu.Unlock()

	r.logger.Info().Str("widget", c.ID()).Msg("widget mounted")

	return c, c.Mount(ctx)
}

func (r *Registry) Get(id string) (*Controller, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.widgets[id]
	if !ok {
		return nil, ErrUnknownWidget
	}
	return c, nil
}

func (r *Registry) Unmount(id string) error {
	r.mu.Lock()
	c, ok := r.widgets[id]
	delete(r.widgets, id)
	r.mu.Unlock()

	if !ok {
		return ErrUnknownWidget
	}
	c.Close()

	r.logger.Info().Str("widget", id).Msg("widget unmounted")
	return nil
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.widgets)
}

// Close unmounts every widget.
func (r *Registry) Close() {
	r.mu.Lock()
	widgets := r.widgets
	r.widgets = make(map[string]*Controller)
	r.mu.Unlock()

	for _, c := range widgets {
		c.Close()
	}
}
