package web

import (
	"html/template"
	"io"
	"net/http"
	"polling_system/configs"
	"polling_system/internal/services"
	"polling_system/internal/sessions"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type MediaStore interface {
	Save(dir string, r io.Reader) (string, error)
	Remove(name string) error
	Handler() http.Handler
}

type Config struct {
	SiteName       string
	CookieName     string
	SessionTTL     time.Duration
	MaxUploadBytes int64
	SecureCookies  bool
	Location       *time.Location
}

func NewConfig(appConfig configs.App, httpConfig configs.HTTP, sessionConfig configs.Session) Config {
	return Config{
		SiteName:       appConfig.SiteName,
		CookieName:     sessionConfig.CookieName,
		SessionTTL:     sessionConfig.TTL,
		MaxUploadBytes: httpConfig.MaxUploadBytes,
		SecureCookies:  !appConfig.IsDevEnvironment(),
		Location:       time.Local,
	}
}

type Server struct {
	config    Config
	polls     services.PollService
	voting    services.VotingService
	users     services.UserService
	sessions  sessions.Store
	media     MediaStore
	templates map[string]*template.Template
	now       func() time.Time
	logger    *zap.SugaredLogger
}

func NewServer(
	config Config,
	polls services.PollService,
	voting services.VotingService,
	users services.UserService,
	sessionStore sessions.Store,
	media MediaStore,
	logger *zap.SugaredLogger,
) (*Server, error) {
	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	if config.Location == nil {
		config.Location = time.Local
	}

	return &Server{
		config:    config,
		polls:     polls,
		voting:    voting,
		users:     users,
		sessions:  sessionStore,
		media:     media,
		templates: templates,
		now:       time.Now,
		logger:    logger,
	}, nil
}

// Router returns the application routes. Callers may mount additional
// handlers on it, they go through the same middleware stack.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.accessLog)
	r.Use(s.recoverer)
	r.Use(s.loadUser)

	r.NotFound(s.notFound)

	r.Get("/healthcheck", healthCheckHandler)
	r.Handle("/media/*", http.StripPrefix("/media", s.media.Handler()))

	r.Get("/", s.index)
	r.Get("/{questionID:[0-9]+}", s.detail)
	r.Get("/{questionID:[0-9]+}/results", s.results)

	r.Get("/register", s.registerForm)
	r.Post("/register", s.register)
	r.Get("/login", s.loginForm)
	r.Post("/login", s.login)
	r.Post("/logout", s.logout)

	r.Group(func(r chi.Router) {
		r.Use(s.requireUser)

		r.Post("/{questionID:[0-9]+}/vote", s.vote)
		r.Get("/create", s.createQuestionForm)
		r.Post("/create", s.createQuestion)

		r.Get("/profile", s.profileForm)
		r.Post("/profile", s.updateProfile)
		r.Get("/profile/delete", s.deleteProfileConfirm)
		r.Post("/profile/delete", s.deleteProfile)
	})

	return r
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte("I'm alive"))
}
