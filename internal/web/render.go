package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"polling_system/internal"
	"polling_system/internal/db/models"
	"polling_system/internal/sessions"
	"polling_system/internal/storage"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pages = []string{
	"index.html",
	"detail.html",
	"results.html",
	"create_question.html",
	"register.html",
	"login.html",
	"profile.html",
	"delete_profile_confirm.html",
	"404.html",
	"500.html",
}

var templateFuncs = template.FuncMap{
	"mediaURL": storage.URL,
	"percent": func(value float64) string {
		return strconv.FormatFloat(value, 'f', 2, 64)
	},
	"plural": func(count uint64) string {
		if count == 1 {
			return ""
		}
		return "s"
	},
}

func parseTemplates() (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template, len(pages))

	for _, name := range pages {
		t, err := template.New(name).Funcs(templateFuncs).ParseFS(templatesFS, "templates/base.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		templates[name] = t
	}

	return templates, nil
}

type page struct {
	SiteName    string
	Title       string
	CurrentUser *models.User
}

func (s *Server) page(r *http.Request, title string) page {
	return page{
		SiteName:    s.config.SiteName,
		Title:       title,
		CurrentUser: sessions.CurrentUser(r.Context()),
	}
}

type questionItem struct {
	ID          int64
	Text        string
	Description string
	Image       string
	PubDate     string
	EndDate     string
	Status      string
	Active      bool
}

func (s *Server) questionItem(question *models.Question) questionItem {
	now := s.now()

	item := questionItem{
		ID:          question.ID,
		Text:        question.QuestionText,
		Description: question.Description,
		Image:       question.Image,
		PubDate:     internal.FormatDateTime(question.PubDate.In(s.config.Location)),
		Status:      question.Status(now).CapitalizedString(),
		Active:      question.IsActive(now),
	}
	if question.EndDate != nil {
		item.EndDate = internal.FormatDateTime(question.EndDate.In(s.config.Location))
	}

	return item
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data interface{}) {
	var buf bytes.Buffer

	if err := s.templates[name].ExecuteTemplate(&buf, "base", data); err != nil {
		s.logger.Errorw("failed to render template", "template", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusNotFound, "404.html", s.page(r, "Not found"))
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Errorw("failed to handle request",
		"method", r.Method,
		"path", r.URL.Path,
		"requestID", middleware.GetReqID(r.Context()),
		"error", err,
	)
	s.render(w, http.StatusInternalServerError, "500.html", s.page(r, "Server error"))
}
