package jsonfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Leopold1975/current_banner/internal/banners/domain/models"
	repo "github.com/Leopold1975/current_banner/internal/banners/repository/bannerrepo"
	"github.com/Leopold1975/current_banner/pkg/logger"
)

const recordExt = ".json"

// Loader reads banner records from a directory holding one JSON document per file.
type Loader struct {
	dir string
	lg  logger.Logger
}

func New(dir string, lg logger.Logger) Loader {
	return Loader{
		dir: dir,
		lg:  lg,
	}
}

// Load returns every valid banner in the directory in file name order.
// Invalid records are skipped, a missing directory yields no banners.
func (l Loader) Load() []models.Banner {
	l.lg.Infow("loading banner configs", "dir", l.dir)

	banners := make([]models.Banner, 0)

	entries, err := readDir(l.dir)
	if err != nil {
		l.lg.Errorw("banner config directory unavailable", "dir", l.dir, "error", err)

		return banners
	}

	skipped := 0

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), recordExt) {
			continue
		}

		b, err := l.loadFile(filepath.Join(l.dir, e.Name()))
		if err != nil {
			skipped++

			if errors.Is(err, repo.ErrMissingKeys) || errors.Is(err, repo.ErrInvalidTime) {
				l.lg.Warnw("skipping invalid banner config", "file", e.Name(), "error", err)
			} else {
				l.lg.Errorw("read banner config error", "file", e.Name(), "error", err)
			}

			continue
		}

		if !b.Condition.Known() {
			l.lg.Warnw("unrecognized special condition, banner will never match",
				"file", e.Name(), "banner_id", b.ID, "condition", b.Condition.Tag)
		}

		banners = append(banners, b)
	}

	l.lg.Infow("banner configs loaded", "dir", l.dir, "count", len(banners), "skipped", skipped)

	return banners
}

func (l Loader) loadFile(path string) (models.Banner, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Banner{}, fmt.Errorf("read file error: %w", err)
	}

	return ParseRecord(data)
}

func readDir(dir string) ([]os.DirEntry, error) {
	fi, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", repo.ErrDirNotFound, dir)
		}

		return nil, fmt.Errorf("stat error: %w", err)
	}

	if !fi.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", repo.ErrDirNotFound, dir)
	}

	// os.ReadDir sorts by file name, which fixes the load order.
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir error: %w", err)
	}

	return entries, nil
}

// ParseRecord decodes and validates a single banner record.
func ParseRecord(data []byte) (models.Banner, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return models.Banner{}, fmt.Errorf("%w: %w", repo.ErrInvalidRecord, err)
	}

	if err := Validate(raw); err != nil {
		return models.Banner{}, err
	}

	var rec repo.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return models.Banner{}, fmt.Errorf("%w: %w", repo.ErrInvalidRecord, err)
	}

	return toModel(rec)
}

// Validate checks that every required key is present and that no text key is null.
// Null timestamps are left to time parsing.
func Validate(raw map[string]json.RawMessage) error {
	var missing []string

	for _, k := range repo.RequiredKeys {
		if _, ok := raw[k]; !ok {
			missing = append(missing, k)
		}
	}

	if len(missing) != 0 {
		return fmt.Errorf("%w: %s", repo.ErrMissingKeys, strings.Join(missing, ", "))
	}

	var null []string

	for _, k := range repo.TextKeys {
		if bytes.Equal(bytes.TrimSpace(raw[k]), []byte("null")) {
			null = append(null, k)
		}
	}

	if len(null) != 0 {
		return fmt.Errorf("%w: null %s", repo.ErrInvalidRecord, strings.Join(null, ", "))
	}

	return nil
}

func toModel(rec repo.Record) (models.Banner, error) {
	from, err := models.ParseTime(rec.StartTime)
	if err != nil {
		return models.Banner{}, fmt.Errorf("%w: start_time: %w", repo.ErrInvalidTime, err)
	}

	until, err := models.ParseTime(rec.EndTime)
	if err != nil {
		return models.Banner{}, fmt.Errorf("%w: end_time: %w", repo.ErrInvalidTime, err)
	}

	return models.Banner{
		ID:          rec.ID,
		Title:       rec.Title,
		Description: rec.Description,
		ActiveFrom:  from,
		ActiveUntil: until,
		Locations:   rec.Locations,
		Condition:   models.ParseCondition(rec.SpecialCondition),
	}, nil
}
