package discovery

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonwraymond/pydepdocs/index"
	"github.com/jonwraymond/pydepdocs/internal/logging"
	"github.com/jonwraymond/pydepdocs/internal/metrics"
	"github.com/jonwraymond/pydepdocs/internal/validation"
	"github.com/jonwraymond/pydepdocs/render"
	"github.com/jonwraymond/pydepdocs/search"
)

// Result-count bounds.
const (
	DefaultTopN = 5
	MaxTopN     = 10
)

// Request is one call of the search tool.
type Request struct {
	// Query is free text. It must contain something other than whitespace.
	Query string `json:"query"`

	// PackageFilter restricts results to one package. Empty means all.
	PackageFilter index.Package `json:"package_filter,omitempty" validate:"package"`

	// TopN is the maximum number of results, 1 to 10. Zero selects the
	// default.
	TopN int `json:"top_n,omitempty" validate:"min=0,max=10"`
}

// Options configures a Discovery instance.
type Options struct {
	// Cache provides the index handle. Required.
	Cache *index.Cache

	// Logger receives search failures. Default: no-op.
	Logger *zap.Logger

	// Metrics records per-search outcomes. Optional.
	Metrics *metrics.Metrics

	// Validator checks requests. If nil, one is created.
	Validator *validation.Validator

	// Timeout bounds each search. Zero means no timeout beyond the
	// caller's context.
	Timeout time.Duration

	// DefaultTopN is used when a request leaves TopN at zero.
	// Default: 5
	DefaultTopN int
}

// Discovery runs documentation searches against the cached index.
type Discovery struct {
	cache       *index.Cache
	logger      *zap.Logger
	metrics     *metrics.Metrics
	validator   *validation.Validator
	timeout     time.Duration
	defaultTopN int
}

// New creates a Discovery instance with the given options.
func New(opts Options) (*Discovery, error) {
	if opts.Cache == nil {
		return nil, ErrNoCache
	}

	d := &Discovery{
		cache:       opts.Cache,
		logger:      opts.Logger,
		metrics:     opts.Metrics,
		validator:   opts.Validator,
		timeout:     opts.Timeout,
		defaultTopN: opts.DefaultTopN,
	}

	if d.logger == nil {
		d.logger = zap.NewNop()
	}
	if d.validator == nil {
		v, err := validation.New(d.logger)
		if err != nil {
			return nil, err
		}
		d.validator = v
	}
	if d.defaultTopN == 0 {
		d.defaultTopN = DefaultTopN
	}
	if d.defaultTopN < 1 || d.defaultTopN > MaxTopN {
		return nil, fmt.Errorf("discovery: default top_n %d outside 1-%d", d.defaultTopN, MaxTopN)
	}

	return d, nil
}

// Find runs the request and returns results in rank order.
//
// Errors are typed: *UserInputError for a bad request (the index is not
// touched), *index.ConfigurationError when the index directory is
// missing, and *SearchExecutionError for anything that fails while
// opening or querying the index.
func (d *Discovery) Find(ctx context.Context, req Request) (Results, error) {
	text := strings.TrimSpace(req.Query)
	if text == "" {
		return nil, &UserInputError{Field: "query", Err: ErrEmptyQuery}
	}
	if err := d.validator.Validate(req); err != nil {
		return nil, &UserInputError{Field: fieldOf(req), Err: err}
	}

	limit := req.TopN
	if limit == 0 {
		limit = d.defaultTopN
	}

	handle, err := d.cache.Ensure()
	if err != nil {
		var cfgErr *index.ConfigurationError
		if errors.As(err, &cfgErr) {
			return nil, err
		}
		return nil, &SearchExecutionError{Query: text, Err: err}
	}

	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	qs := search.BuildQuery(text, req.PackageFilter)
	hits, err := search.NewSearcher(handle.Index).Search(ctx, qs, limit)
	if err != nil {
		return nil, &SearchExecutionError{Query: qs, Err: err}
	}

	results := make(Results, len(hits))
	for i, hit := range hits {
		results[i] = newResult(hit, req.Query)
	}
	return results, nil
}

// Search runs the request and renders every outcome as text. It never
// returns an error and never panics: failures become "Search failed: ..."
// messages. It logs through the logger carried by ctx when there is one.
func (d *Discovery) Search(ctx context.Context, req Request) (out string) {
	start := time.Now()
	filter := string(req.PackageFilter)
	logger := logging.FromContext(ctx, d.logger)

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("internal error: %v", r)
			logger.Error("search panicked",
				zap.String("query", req.Query),
				zap.Any("panic", r),
			)
			d.metrics.ObserveSearch(filter, metrics.OutcomeFailed, time.Since(start), 0)
			out = render.Failure(err)
		}
	}()

	results, err := d.Find(ctx, req)
	if err != nil {
		var inputErr *UserInputError
		if errors.As(err, &inputErr) {
			logger.Debug("rejected search request", zap.String("field", inputErr.Field), zap.Error(err))
			d.metrics.ObserveSearch("", metrics.OutcomeUserError, time.Since(start), 0)
			return err.Error()
		}

		outcome := metrics.OutcomeFailed
		var cfgErr *index.ConfigurationError
		if errors.As(err, &cfgErr) {
			outcome = metrics.OutcomeIndexError
		}
		logger.Error("search failed",
			zap.String("query", req.Query),
			zap.String("package_filter", filter),
			zap.Error(err),
		)
		d.metrics.ObserveSearch(filter, outcome, time.Since(start), 0)
		return render.Failure(err)
	}

	if len(results) == 0 {
		d.metrics.ObserveSearch(filter, metrics.OutcomeNoResults, time.Since(start), 0)
		return render.NoResults(req.Query, filter)
	}

	logger.Debug("search completed",
		zap.String("query", req.Query),
		zap.Strings("paths", results.Paths()),
		zap.Duration("took", time.Since(start)),
	)
	d.metrics.ObserveSearch(filter, metrics.OutcomeOK, time.Since(start), len(results))
	return render.Text(req.Query, filter, results.Entries())
}

// fieldOf names the request field a validation error most likely refers
// to, for logging and the user-facing message.
func fieldOf(req Request) string {
	if req.PackageFilter != "" && !req.PackageFilter.Valid() {
		return "package_filter"
	}
	return "top_n"
}
