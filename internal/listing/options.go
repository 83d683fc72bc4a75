package listing

import (
	"log/slog"

	"github.com/johnwards/storefront/internal/domain"
)

type options struct {
	defaults     domain.Criteria
	extract      FilterExtractor
	logger       *slog.Logger
	observer     Observer
	discardStale bool
}

// Option configures a Reconciler.
type Option func(*options)

// WithDefaults sets the criteria every request starts from. Caller criteria
// and the navigation query are merged on top.
func WithDefaults(c domain.Criteria) Option {
	return func(o *options) {
		o.defaults = c.Clone()
	}
}

// WithFilterExtractor replaces filters.Extract for deriving available filters.
func WithFilterExtractor(fn FilterExtractor) Option {
	return func(o *options) {
		if fn != nil {
			o.extract = fn
		}
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithObserver reports every action to obs.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}

// WithStaleResponseDiscard drops a response when a later call of the same
// action (init/search share one sequence, load-more has its own) started
// before it resolved. Dropped calls return nil and store nothing.
func WithStaleResponseDiscard() Option {
	return func(o *options) {
		o.discardStale = true
	}
}
