package launchapi

import (
	"context"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/launchdeck/pkg/apiclient"
	"github.com/matzehuels/launchdeck/pkg/cache"
	"github.com/matzehuels/launchdeck/pkg/errors"
	"github.com/matzehuels/launchdeck/pkg/httputil"
	"github.com/matzehuels/launchdeck/pkg/launch"
	"github.com/matzehuels/launchdeck/pkg/query"
)

// Default TTLs and limits.
const (
	DefaultLaunchesTTL   = time.Minute
	DefaultStatsTTL      = 2 * time.Minute
	DefaultSeriesTTL     = 5 * time.Minute
	DefaultUpcomingLimit = 10
	DefaultPastLimit     = 20

	// StatsKey is the cache key of the aggregate statistics.
	StatsKey = "stats"
)

// Service provides cached access to the launch API.
type Service struct {
	client *apiclient.Client
	store  *cache.Store
	logger *log.Logger

	attempts int
	delay    time.Duration

	launchesTTL time.Duration
	statsTTL    time.Duration
	seriesTTL   time.Duration

	fallback map[SeriesID]launch.Series
}

// Option configures a [Service].
type Option func(*Service)

// WithRetry sets the retry policy for every fetch.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(s *Service) {
		s.attempts = attempts
		s.delay = delay
	}
}

// WithTTLs overrides the freshness windows. Zero values keep the defaults.
func WithTTLs(launches, stats, series time.Duration) Option {
	return func(s *Service) {
		if launches > 0 {
			s.launchesTTL = launches
		}
		if stats > 0 {
			s.statsTTL = stats
		}
		if series > 0 {
			s.seriesTTL = series
		}
	}
}

// WithFallback enables sample data for series that cannot be fetched.
// A nil map selects [SampleSeries].
func WithFallback(samples map[SeriesID]launch.Series) Option {
	return func(s *Service) {
		if samples == nil {
			samples = SampleSeries()
		}
		s.fallback = samples
	}
}

// WithLogger sets the logger used for fallback warnings and debug output.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Service over client and store.
func New(client *apiclient.Client, store *cache.Store, opts ...Option) *Service {
	s := &Service{
		client:      client,
		store:       store,
		logger:      log.New(io.Discard),
		attempts:    httputil.DefaultAttempts,
		delay:       httputil.DefaultDelay,
		launchesTTL: DefaultLaunchesTTL,
		statsTTL:    DefaultStatsTTL,
		seriesTTL:   DefaultSeriesTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// cachedGet is the single fetch path behind every cached accessor.
func cachedGet[T any](ctx context.Context, s *Service, key string, ttl time.Duration, path string, q url.Values) (T, error) {
	return cache.Fetch(ctx, s.store, key, ttl, func(ctx context.Context) (T, error) {
		s.logger.Debug("fetching", "key", key, "path", path)
		return httputil.Do(ctx, s.attempts, s.delay, func() (T, error) {
			var v T
			err := s.client.Get(ctx, path, q, &v)
			return v, err
		})
	})
}

// Launches returns the launch collection. Set fields of spec are passed to
// the server as query parameters; an empty spec fetches everything.
func (s *Service) Launches(ctx context.Context, spec query.FilterSpec) ([]launch.Launch, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	q := spec.Values()
	key := cache.Key("launches")
	if len(q) > 0 {
		key = cache.Key("launches", q)
	}
	ls, err := cachedGet[launch.List](ctx, s, key, s.launchesTTL, "/launches", q)
	return ls, err
}

// Launch returns a single launch by id.
func (s *Service) Launch(ctx context.Context, id string) (launch.Launch, error) {
	if err := errors.ValidateID(id); err != nil {
		return launch.Launch{}, err
	}
	return cachedGet[launch.Launch](ctx, s, "launch:"+id, s.launchesTTL, "/launches/"+url.PathEscape(id), nil)
}

// Upcoming returns the next launches, soonest first. A limit of 0 or less
// uses [DefaultUpcomingLimit].
func (s *Service) Upcoming(ctx context.Context, limit int) ([]launch.Launch, error) {
	if limit <= 0 {
		limit = DefaultUpcomingLimit
	}
	n := strconv.Itoa(limit)
	return cachedGet[launch.List](ctx, s, "upcoming:"+n, s.launchesTTL, "/launches/upcoming", url.Values{"limit": {n}})
}

// Past returns the most recent launches. A limit of 0 or less uses
// [DefaultPastLimit].
func (s *Service) Past(ctx context.Context, limit int) ([]launch.Launch, error) {
	if limit <= 0 {
		limit = DefaultPastLimit
	}
	n := strconv.Itoa(limit)
	return cachedGet[launch.List](ctx, s, "past:"+n, s.launchesTTL, "/launches/past", url.Values{"limit": {n}})
}

// Search runs a server-side text search, narrowed by the set fields of spec.
func (s *Service) Search(ctx context.Context, q string, spec query.FilterSpec) ([]launch.Launch, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "search query is empty")
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	values := spec.Values()
	values.Del("search")
	values.Set("q", q)
	return cachedGet[launch.List](ctx, s, cache.Key("search", values), s.launchesTTL, "/launches/search", values)
}

// Stats returns the aggregate statistics.
func (s *Service) Stats(ctx context.Context) (launch.Stats, error) {
	return cachedGet[launch.Stats](ctx, s, StatsKey, s.statsTTL, "/statistics", nil)
}

// InvalidateStats drops the cached statistics.
func (s *Service) InvalidateStats() {
	s.store.Invalidate(StatsKey)
}

// RefreshStats drops the cached statistics and fetches them again.
func (s *Service) RefreshStats(ctx context.Context) (launch.Stats, error) {
	s.InvalidateStats()
	return s.Stats(ctx)
}

// Refresh drops every cached response.
func (s *Service) Refresh() {
	s.store.Clear()
}

// Series returns one aggregate series.
func (s *Service) Series(ctx context.Context, id SeriesID) (launch.Series, error) {
	def, ok := seriesTable[id]
	if !ok {
		return launch.Series{}, errors.New(errors.ErrCodeInvalidInput, "unknown series %q", id)
	}
	return cachedGet[launch.Series](ctx, s, "series:"+string(id), s.seriesTTL, def.path, nil)
}

// MonthlyLaunchesFor returns the monthly launch counts of one year.
func (s *Service) MonthlyLaunchesFor(ctx context.Context, year int) (launch.Series, error) {
	if year < 1950 || year > 9999 {
		return launch.Series{}, errors.New(errors.ErrCodeInvalidInput, "year out of range: %d", year)
	}
	y := strconv.Itoa(year)
	return cachedGet[launch.Series](ctx, s, "series:"+string(MonthlyLaunches)+":"+y, s.seriesTTL,
		MonthlyLaunches.Path(), url.Values{"year": {y}})
}

// SeriesResult fetches one series and applies the fallback, if enabled.
func (s *Service) SeriesResult(ctx context.Context, id SeriesID) SeriesResult {
	series, err := s.Series(ctx, id)
	if err == nil {
		return SeriesResult{ID: id, Series: series}
	}
	if sample, ok := s.fallback[id]; ok && ctx.Err() == nil {
		s.logger.Warn("series unavailable, using sample data", "series", id, "err", err)
		return SeriesResult{ID: id, Series: sample, Err: err, Substitute: true}
	}
	return SeriesResult{ID: id, Err: err}
}

// AllSeries fetches every series concurrently. Results are in [SeriesIDs]
// order; a failing series does not stop the others.
func (s *Service) AllSeries(ctx context.Context) []SeriesResult {
	return s.SeriesResults(ctx, SeriesIDs()...)
}

// SeriesResults fetches the given series concurrently, in order.
func (s *Service) SeriesResults(ctx context.Context, ids ...SeriesID) []SeriesResult {
	results := make([]SeriesResult, len(ids))
	var g errgroup.Group
	for i, id := range ids {
		g.Go(func() error {
			results[i] = s.SeriesResult(ctx, id)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Health queries /health. It is neither cached nor retried.
func (s *Service) Health(ctx context.Context) (launch.Health, error) {
	var h launch.Health
	err := s.client.Get(ctx, "/health", nil, &h)
	return h, err
}

// Info queries /info. It is not cached.
func (s *Service) Info(ctx context.Context) (launch.Info, error) {
	return httputil.Do(ctx, s.attempts, s.delay, func() (launch.Info, error) {
		var info launch.Info
		err := s.client.Get(ctx, "/info", nil, &info)
		return info, err
	})
}
