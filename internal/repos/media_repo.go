package repos

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MediaRepo is the gateway's blob-upload surface: raw bytes in, public
// URL out. Files land under a flat media directory served at /media.
type MediaRepo struct {
	Dir     string
	BaseURL string
}

func NewMediaRepo(dir, baseURL string) *MediaRepo {
	return &MediaRepo{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}
}

var imageExt = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

func (r *MediaRepo) Upload(ctx context.Context, name, contentType string, data []byte) (string, error) {
	ext, ok := imageExt[contentType]
	if !ok {
		return "", fmt.Errorf("unsupported content type %q", contentType)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("empty upload")
	}

	// Only the caller-supplied base name is kept; no path components.
	base := filepath.Base(strings.TrimSpace(name))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "", fmt.Errorf("invalid blob name %q", name)
	}
	base = strings.TrimSuffix(base, filepath.Ext(base)) + ext

	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(r.Dir, base), data, 0o644); err != nil {
		return "", err
	}
	return r.BaseURL + "/media/" + base, nil
}
