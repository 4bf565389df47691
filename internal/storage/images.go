package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ImageStore keeps recipe images on local disk under <root>/recipes and
// hands out the public /uploads/... paths stored on recipe rows.
type ImageStore struct {
	root string
}

func NewImageStore(root string) (*ImageStore, error) {
	dir := filepath.Join(root, "recipes")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir %s: %w", dir, err)
	}
	return &ImageStore{root: root}, nil
}

// Filename builds a collision-free name for a recipe image. The recipe id
// prefix keeps the directory greppable; the uuid fragment keeps replaced
// images from ever reusing a name (and a cached stale URL).
func (s *ImageStore) Filename(recipeID uint, originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		ext = ".jpg"
	}
	return fmt.Sprintf("%d_%s%s", recipeID, uuid.New().String()[:8], ext)
}

// DiskPath returns where a named image lives on disk.
func (s *ImageStore) DiskPath(filename string) string {
	return filepath.Join(s.root, "recipes", filename)
}

// PublicPath returns the path clients fetch the image from.
func (s *ImageStore) PublicPath(filename string) string {
	return "/uploads/recipes/" + filename
}

// Remove deletes the file behind a stored public path. Unknown prefixes and
// already-missing files are ignored; cleanup must never fail a request.
func (s *ImageStore) Remove(publicPath string) {
	filename, ok := strings.CutPrefix(publicPath, "/uploads/recipes/")
	if !ok || filename == "" || strings.Contains(filename, "/") {
		return
	}
	_ = os.Remove(s.DiskPath(filename))
}
