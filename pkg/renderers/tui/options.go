package tui

// Theme holds the prefixes used for informational output.
type Theme struct {
	InfoPrefix    string
	ErrorPrefix   string
	SuccessPrefix string
}

// DefaultTheme uses plain ASCII markers.
var DefaultTheme = Theme{InfoPrefix: "", ErrorPrefix: "! ", SuccessPrefix: "* "}

// Option configures a Runner.
type Option func(*Runner)

// WithPromptDriver replaces the survey driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Runner) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithTheme sets output prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Runner) { r.theme = theme }
}

// WithMaxAttempts bounds how often an invalid field is prompted again. Zero
// means unlimited.
func WithMaxAttempts(n int) Option {
	return func(r *Runner) {
		if n >= 0 {
			r.maxAttempts = n
		}
	}
}

// WithRetryOnFailure controls whether a failed submission offers a retry.
func WithRetryOnFailure(enabled bool) Option {
	return func(r *Runner) { r.retry = enabled }
}
