package widget

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-widget/internal/models"
	"github.com/Nazarious-ucu/weather-widget/internal/services/messages"
)

const defaultForecastTimeout = 10 * time.Second

var errNoGeolocation = errors.New("no geolocation capability")

type weatherSource interface {
	FetchCurrent(ctx context.Context, query string) (models.CurrentWeather, error)
	// FetchForecast never fails; an unavailable forecast is empty.
	FetchForecast(ctx context.Context, location string) []models.ForecastDay
}

type Options struct {
	// DefaultLocation is fetched on mount when set.
	DefaultLocation string
	ForecastTimeout time.Duration
	Clock           func() time.Time
}

// Controller owns one widget's state. Every load takes a sequence number and
// only the result of the latest load is ever applied.
type Controller struct {
	id     string
	source weatherSource
	logger zerolog.Logger

	defaultLocation string
	forecastTimeout time.Duration
	clock           func() time.Time

	mu      sync.Mutex
	state   WidgetState
	seq     uint64
	subs    map[int]chan struct{}
	nextSub int
	closed  bool

	wg sync.WaitGroup
}

func NewController(id string, source weatherSource, logger zerolog.Logger, opts Options) *Controller {
	c := &Controller{
		id:              id,
		source:          source,
		logger:          logger.With().Str("widget", id).Logger(),
		defaultLocation: strings.TrimSpace(opts.DefaultLocation),
		forecastTimeout: opts.ForecastTimeout,
		clock:           opts.Clock,
		state:           newWidgetState(),
		subs:            make(map[int]chan struct{}),
	}
	if c.forecastTimeout <= 0 {
		c.forecastTimeout = defaultForecastTimeout
	}
	if c.clock == nil {
		c.clock = time.Now
	}
	return c
}

func (c *Controller) ID() string {
	return c.id
}

// Mount performs the initial fetch of the default location, if configured.
func (c *Controller) Mount(ctx context.Context) error {
	if c.defaultLocation == "" {
		return nil
	}
	return c.Submit(ctx, c.defaultLocation)
}

// Submit loads the weather for a free-text location.
func (c *Controller) Submit(ctx context.Context, query string) error {
	trimmed := strings.TrimSpace(query)

	c.mu.Lock()
	c.state.LocationQuery = query
	if trimmed == "" {
		c.seq++
		c.state.IsLoading = false
		c.state.Error = MsgInvalidLocation
		c.state.Current = nil
		c.state.Forecast = []models.ForecastDay{}
		c.notifyLocked()
		c.mu.Unlock()

		c.logger.Info().Ctx(ctx).Msg("rejected empty location query")
		return ErrValidation
	}
	c.mu.Unlock()

	return c.load(ctx, trimmed)
}

// UseGeolocation loads the weather for the device position.
func (c *Controller) UseGeolocation(ctx context.Context, locator Geolocator) error {
	if locator == nil {
		return c.geolocationFailed(ctx, errNoGeolocation)
	}

	coords, err := locator.Locate(ctx)
	if err != nil {
		return c.geolocationFailed(ctx, err)
	}
	return c.load(ctx, coords.Query())
}

func (c *Controller) geolocationFailed(ctx context.Context, cause error) error {
	c.mu.Lock()
	c.seq++
	c.state.IsLoading = false
	c.state.Error = MsgGeolocation
	c.notifyLocked()
	c.mu.Unlock()

	c.logger.Warn().Ctx(ctx).Err(cause).Msg("geolocation failed")
	return fmt.Errorf("%w: %w", ErrGeolocation, cause)
}

func (c *Controller) load(ctx context.Context, query string) error {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.state.IsLoading = true
	c.state.Error = ""
	c.notifyLocked()
	c.mu.Unlock()

	c.logger.Info().
		Ctx(ctx).
		Str("query", query).
		Uint64("seq", seq).
		Msg("loading current weather")

	cur, err := c.source.FetchCurrent(ctx, query)

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq {
		c.logger.Debug().
			Uint64("seq", seq).
			Uint64("latest", c.seq).
			Msg("discarding superseded current weather")
		return ErrSuperseded
	}

	c.state.IsLoading = false
	if err != nil {
		c.state.Error = MsgCityNotFound
		c.state.Current = nil
		c.state.Forecast = []models.ForecastDay{}
		c.notifyLocked()
		return fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	cur.Unit = c.state.DisplayUnit
	c.state.Error = ""
	c.state.Current = &cur
	c.state.Forecast = []models.ForecastDay{}
	c.notifyLocked()

	if !c.closed {
		c.wg.Add(1)
		// the forecast outlives the request that triggered it
		go c.loadForecast(context.WithoutCancel(ctx), seq, cur.LocationName)
	}
	return nil
}

func (c *Controller) loadForecast(ctx context.Context, seq uint64, location string) {
	defer c.wg.Done()

	ctx, cancel := context.WithTimeout(ctx, c.forecastTimeout)
	defer cancel()

	days := c.source.FetchForecast(ctx, location)

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq || c.state.Current == nil {
		c.logger.Debug().
			Uint64("seq", seq).
			Msg("discarding superseded forecast")
		return
	}
	c.state.Forecast = append([]models.ForecastDay{}, days...)
	c.notifyLocked()
}

// ToggleUnit flips the display unit without re-fetching.
func (c *Controller) ToggleUnit() models.Unit {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.DisplayUnit = c.state.DisplayUnit.Other()
	if c.state.Current != nil {
		c.state.Current.Unit = c.state.DisplayUnit
	}
	c.notifyLocked()
	return c.state.DisplayUnit
}

func (c *Controller) ToggleDarkMode() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.DarkMode = !c.state.DarkMode
	c.notifyLocked()
	return c.state.DarkMode
}

func (c *Controller) ToggleForecastTable() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.ShowForecastTable = !c.state.ShowForecastTable
	c.notifyLocked()
	return c.state.ShowForecastTable
}

// Share passes a one-line summary of the displayed weather to sharer. The
// text is returned even when the host cannot share it.
func (c *Controller) Share(ctx context.Context, sharer Sharer) (string, error) {
	c.mu.Lock()
	var cur *models.CurrentWeather
	if c.state.Current != nil {
		snapshot := *c.state.Current
		cur = &snapshot
	}
	c.mu.Unlock()

	if cur == nil {
		return "", ErrNothingToShare
	}

	text := messages.ShareText(cur.LocationName, displayTemperature(*cur), cur.Unit, cur.Condition)
	if sharer == nil {
		return text, ErrShareUnsupported
	}
	if err := sharer.Share(ctx, text); err != nil {
		c.logger.Warn().Ctx(ctx).Err(err).Msg("share failed")
		return text, err
	}
	return text, nil
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() WidgetState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Render derives the presentation view at the controller's clock time.
func (c *Controller) Render() View {
	return newView(c.Snapshot(), c.clock())
}

// Subscribe returns a channel signalled after every state change, and a
// function that cancels the subscription. Signals coalesce.
func (c *Controller) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		close(ch)
		return ch, func() {}
	}

	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch

	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if sub, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(sub)
		}
	}
}

func (c *Controller) notifyLocked() {
	for _, ch := range c.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Wait blocks until background forecast fetches have finished.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Close unmounts the widget: in-flight results are dropped and subscribers
// are released.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.seq++
	for id, ch := range c.subs {
		delete(c.subs, id)
		close(ch)
	}
	c.mu.Unlock()

	c.wg.Wait()
}
