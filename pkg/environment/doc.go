// Package environment names the deployment stage of a process.
//
// Environment implements encoding.TextUnmarshaler, so it can be loaded
// straight from APP_ENV with pkg/config:
//
//	type Config struct {
//		Env environment.Environment `env:"APP_ENV" envDefault:"development"`
//	}
package environment
