package configs

import "time"

type Session struct {
	TTL        time.Duration `env:"SESSION_TTL" envDefault:"336h"`
	CookieName string        `env:"SESSION_COOKIE" envDefault:"polls_session"`
}
