package evidence

import "time"

// BuilderOption applies a configuration option to a Builder.
type BuilderOption func(*Builder)

// WithClock sets the time source for stage and seal timestamps.
func WithClock(clock func() time.Time) BuilderOption {
	return func(b *Builder) {
		if clock != nil {
			b.clock = clock
		}
	}
}

// WithSystemTag sets the tag mixed into validator signatures.
func WithSystemTag(tag string) BuilderOption {
	return func(b *Builder) {
		if tag != "" {
			b.systemTag = tag
		}
	}
}
