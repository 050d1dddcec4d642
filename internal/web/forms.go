package web

import (
	"errors"
	"net/http"
	"unicode"
	"unicode/utf8"
)

// parseForm reads url-encoded and multipart bodies alike, bounded by the
// configured upload limit.
func (s *Server) parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadBytes)

	err := r.ParseMultipartForm(s.config.MaxUploadBytes)
	if errors.Is(err, http.ErrNotMultipart) {
		return r.ParseForm()
	}

	return err
}

// saveUpload stores the file sent in field and returns its path. An absent
// file yields an empty path.
func (s *Server) saveUpload(r *http.Request, field, dir string) (string, error) {
	if r.MultipartForm == nil {
		return "", nil
	}

	file, _, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	} else if err != nil {
		return "", err
	}
	defer file.Close()

	return s.media.Save(dir, file)
}

func (s *Server) removeUpload(name string) {
	if name == "" {
		return
	}

	if err := s.media.Remove(name); err != nil {
		s.logger.Warnw("failed to remove upload", "path", name, "error", err)
	}
}

func capitalize(message string) string {
	r, size := utf8.DecodeRuneInString(message)
	if r == utf8.RuneError {
		return message
	}
	return string(unicode.ToUpper(r)) + message[size:]
}
