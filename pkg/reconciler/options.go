package reconciler

import (
	"github.com/agentstation/roster/pkg/constants"
	"github.com/agentstation/roster/pkg/errors"
	"github.com/agentstation/roster/pkg/registry"
)

// options configures a reconciler.
type options struct {
	layout           registry.Layout
	descriptionLimit int
	suffix           string
	dryRun           bool
}

func defaultOptions() *options {
	return &options{
		layout:           registry.DefaultLayout(),
		descriptionLimit: constants.MaxDescriptionLength,
		suffix:           constants.Suffix,
	}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (options *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// newOptions returns reconciler options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithLayout sets the directory policy canonical paths are derived from.
func WithLayout(layout registry.Layout) Option {
	return func(o *options) error {
		if err := layout.Validate(); err != nil {
			return err
		}
		o.layout = layout
		return nil
	}
}

// WithDescriptionLimit sets the description length past which a warning is
// reported.
func WithDescriptionLimit(limit int) Option {
	return func(o *options) error {
		if limit <= 0 {
			return &errors.ValidationError{
				Field:   "description_limit",
				Value:   limit,
				Message: "must be positive",
			}
		}
		o.descriptionLimit = limit
		return nil
	}
}

// WithSuffix restricts the rescue index to files ending in suffix.
func WithSuffix(suffix string) Option {
	return func(o *options) error {
		o.suffix = suffix
		return nil
	}
}

// WithDryRun reports file moves without performing them.
func WithDryRun(enabled bool) Option {
	return func(o *options) error {
		o.dryRun = enabled
		return nil
	}
}
