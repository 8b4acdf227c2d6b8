package session

import (
	"github.com/ppiankov/phoneinput/internal/adapter"
	"github.com/ppiankov/phoneinput/internal/logger"
)

// Option configures a Session.
type Option func(*options)

type options struct {
	onPhone   adapter.PhoneUpdateFunc
	onCountry adapter.CountryUpdateFunc
	log       *logger.Logger
	detect    bool
}

// WithPhoneUpdate sets the handler that receives base-widget phone payloads.
func WithPhoneUpdate(fn adapter.PhoneUpdateFunc) Option {
	return func(o *options) { o.onPhone = fn }
}

// WithCountryUpdate sets the handler that receives base-widget country codes.
func WithCountryUpdate(fn adapter.CountryUpdateFunc) Option {
	return func(o *options) { o.onCountry = fn }
}

// WithLogger sets the logger. Nil keeps the discarding default.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithCountryDetection enables country auto-detection on typed input,
// subject to the policy's country settings.
func WithCountryDetection(enabled bool) Option {
	return func(o *options) { o.detect = enabled }
}
