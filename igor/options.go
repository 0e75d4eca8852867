package igor

// Option configures a call to Load or LoadBytes.
type Option func(*loadOptions)

type loadOptions struct {
	keepUnknown bool
}

// WithUnknownRecords preserves records with unregistered type codes as
// Unknown records carrying their raw payload, instead of skipping them.
func WithUnknownRecords() Option {
	return func(o *loadOptions) {
		o.keepUnknown = true
	}
}
