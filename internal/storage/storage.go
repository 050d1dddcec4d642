package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const (
	AvatarsDir = "avatars"
	PostsDir   = "posts"

	sniffLength = 512
)

var ErrNotImage = errors.New("upload a valid image")

var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/bmp":  ".bmp",
}

// Store keeps uploaded media files under a root directory. Paths returned by
// Save are relative to that root and use forward slashes.
type Store struct {
	fs     afero.Fs
	logger *zap.SugaredLogger
}

func NewStore(fs afero.Fs, logger *zap.SugaredLogger) *Store {
	return &Store{
		fs:     fs,
		logger: logger,
	}
}

// NewLocalStore stores files on disk under root.
func NewLocalStore(root string, logger *zap.SugaredLogger) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media root: %w", err)
	}

	return NewStore(afero.NewBasePathFs(afero.NewOsFs(), root), logger), nil
}

// Save writes the content of r to dir under a random name. Only the image
// types in imageExtensions are accepted and the extension always follows the
// detected content type, never the client supplied file name.
func (s *Store) Save(dir string, r io.Reader) (string, error) {
	head := make([]byte, sniffLength)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	head = head[:n]

	contentType := http.DetectContentType(head)
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", ErrNotImage
	}

	name := path.Join(dir, uuid.NewString()+ext)

	if err := afero.WriteReader(s.fs, fsPath(name), io.MultiReader(bytes.NewReader(head), r)); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}

	s.logger.Debugw("file saved", "path", name, "contentType", contentType)

	return name, nil
}

// Remove deletes a stored file. Missing files are not an error.
func (s *Store) Remove(name string) error {
	if name == "" {
		return nil
	}

	err := s.fs.Remove(fsPath(name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", name, err)
	}

	return nil
}

// Handler serves stored files. Mount it with the URL prefix stripped.
// Directories are not listed.
func (s *Store) Handler() http.Handler {
	return http.FileServer(filesOnly{fs: afero.NewHttpFs(s.fs)})
}

type filesOnly struct {
	fs http.FileSystem
}

func (f filesOnly) Open(name string) (http.File, error) {
	file, err := f.fs.Open(name)
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}

	if info.IsDir() {
		file.Close()
		return nil, os.ErrNotExist
	}

	return file, nil
}

func fsPath(name string) string {
	return "/" + strings.TrimPrefix(name, "/")
}

// URL returns the public URL of a stored file.
func URL(name string) string {
	if name == "" {
		return ""
	}
	return "/media/" + name
}
