package filesystem

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Leopold1975/current_banner/internal/banners/repository/assetrepo"
)

// AssetStore reads banner images from a directory, keyed by banner id.
type AssetStore struct {
	dir string
}

func New(dir string) AssetStore {
	return AssetStore{
		dir: dir,
	}
}

// GetImage returns the raw bytes of <dir>/<bannerID>.png.
func (as AssetStore) GetImage(ctx context.Context, bannerID string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	name := bannerID + "." + assetrepo.ImageFormat
	if bannerID == "" || !filepath.IsLocal(name) || filepath.Base(name) != name {
		return nil, fmt.Errorf("%w: bad asset name %q", assetrepo.ErrNotFound, name)
	}

	data, err := os.ReadFile(filepath.Join(as.dir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", assetrepo.ErrNotFound, name)
		}

		return nil, fmt.Errorf("read asset error: %w", err)
	}

	return data, nil
}
