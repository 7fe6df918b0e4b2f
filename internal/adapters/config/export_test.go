package config

// NewFinderWithEnv creates a Finder with a stubbed environment lookup.
func NewFinderWithEnv(env map[string]string) *Finder {
	return &Finder{
		logger: nopLogger{},
		lookupEnv: func(k string) (string, bool) {
			v, ok := env[k]
			return v, ok
		},
	}
}

type nopLogger struct{}

func (nopLogger) Debug(string) {}
func (nopLogger) Info(string) {}
func (nopLogger) Warn(string) {}
func (nopLogger) Error(error) {}
