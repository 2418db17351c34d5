package jsonfile_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Leopold1975/current_banner/internal/banners/domain/models"
	repo "github.com/Leopold1975/current_banner/internal/banners/repository/bannerrepo"
	"github.com/Leopold1975/current_banner/internal/banners/repository/bannerrepo/jsonfile"
	"github.com/Leopold1975/current_banner/pkg/logger"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const exampleRecord = `{
	"id": "example",
	"title": "Some Sale",
	"description": "End of Season LOOOOOT!",
	"start_time": "2024-12-01T00:00:00Z",
	"end_time": "2024-12-25T23:59:59Z",
	"locations": ["US", "CA", "DE", "FR"]
}`

func newObserved() (logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)

	return logger.FromZap(zap.New(core)), logs
}

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
	}

	return dir
}

func TestParseRecord(t *testing.T) {
	b, err := jsonfile.ParseRecord([]byte(exampleRecord))
	require.NoError(t, err)

	require.Equal(t, "example", b.ID)
	require.Equal(t, "Some Sale", b.Title)
	require.Equal(t, "End of Season LOOOOOT!", b.Description)
	require.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), b.ActiveFrom)
	require.Equal(t, time.Date(2024, 12, 25, 23, 59, 59, 0, time.UTC), b.ActiveUntil)
	require.Equal(t, []string{"US", "CA", "DE", "FR"}, b.Locations)
	require.Equal(t, models.ConditionNone, b.Condition.Kind)

	b, err = jsonfile.ParseRecord([]byte(`{"id":"spaced","title":"t","description":"d",
		"start_time":"2024-12-01 00:00:00+00:00","end_time":"2024-12-25T23:59Z","locations":["US"]}`))
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), b.ActiveFrom)
	require.Equal(t, time.Date(2024, 12, 25, 23, 59, 0, 0, time.UTC), b.ActiveUntil)
}

func TestParseRecordCondition(t *testing.T) {
	b, err := jsonfile.ParseRecord([]byte(`{
		"id": "odd", "title": "t", "description": "d",
		"start_time": "2024-12-01T00:00:00+00:00", "end_time": "2024-12-02T00:00:00+01:00",
		"locations": ["ALL"], "special_condition": "odd-minutes"
	}`))
	require.NoError(t, err)
	require.Equal(t, models.ConditionOddMinutes, b.Condition.Kind)
	require.Equal(t, time.Date(2024, 12, 1, 23, 0, 0, 0, time.UTC), b.ActiveUntil)
}

func TestParseRecordErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
	}{
		{
			name: "missing keys",
			body: `{"id": "example", "title": "Some Sale"}`,
			err:  repo.ErrMissingKeys,
		},
		{
			name: "null document",
			body: `null`,
			err:  repo.ErrMissingKeys,
		},
		{
			name: "bad start time",
			body: `{"id":"a","title":"t","description":"d","start_time":"yesterday",
				"end_time":"2024-12-25T23:59:59Z","locations":["US"]}`,
			err: repo.ErrInvalidTime,
		},
		{
			name: "naive end time",
			body: `{"id":"a","title":"t","description":"d","start_time":"2024-12-01T00:00:00Z",
				"end_time":"2024-12-25T23:59:59","locations":["US"]}`,
			err: repo.ErrInvalidTime,
		},
		{
			name: "null time",
			body: `{"id":"a","title":"t","description":"d","start_time":null,
				"end_time":"2024-12-25T23:59:59Z","locations":["US"]}`,
			err: repo.ErrInvalidTime,
		},
		{
			name: "null title",
			body: `{"id":"a","title":null,"description":"d","start_time":"2024-12-01T00:00:00Z",
				"end_time":"2024-12-25T23:59:59Z","locations":["US"]}`,
			err: repo.ErrInvalidRecord,
		},
		{
			name: "null id",
			body: `{"id":null,"title":"t","description":"d","start_time":"2024-12-01T00:00:00Z",
				"end_time":"2024-12-25T23:59:59Z","locations":["US"]}`,
			err: repo.ErrInvalidRecord,
		},
		{
			name: "padded time",
			body: `{"id":"a","title":"t","description":"d","start_time":" 2024-12-01T00:00:00Z",
				"end_time":"2024-12-25T23:59:59Z","locations":["US"]}`,
			err: repo.ErrInvalidTime,
		},
		{
			name: "wrong locations type",
			body: `{"id":"a","title":"t","description":"d","start_time":"2024-12-01T00:00:00Z",
				"end_time":"2024-12-25T23:59:59Z","locations":"US"}`,
			err: repo.ErrInvalidRecord,
		},
		{
			name: "not json",
			body: `{"id":`,
			err:  repo.ErrInvalidRecord,
		},
		{
			name: "array document",
			body: `[]`,
			err:  repo.ErrInvalidRecord,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := jsonfile.ParseRecord([]byte(tt.body))
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestParseRecordAcceptsUnvalidatedData(t *testing.T) {
	// Inverted windows, empty locations and duplicate ids are data-entry concerns.
	b, err := jsonfile.ParseRecord([]byte(`{"id":"a","title":"t","description":"d",
		"start_time":"2024-12-25T00:00:00Z","end_time":"2024-12-01T00:00:00Z","locations":[]}`))
	require.NoError(t, err)
	require.True(t, b.ActiveFrom.After(b.ActiveUntil))
	require.Empty(t, b.Locations)
}

func TestLoad(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"b_example.json": exampleRecord,
		"a_invalid.json": `{"id": "broken", "title": "Broken"}`,
		"c_garbage.json": `not json at all`,
		"d_second.json": `{"id":"second","title":"Second","description":"d",
			"start_time":"2024-01-01T00:00:00Z","end_time":"2025-01-01T00:00:00Z","locations":["ALL"]}`,
		"readme.txt": "ignored",
	})
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.json"), 0o700))

	lg, logs := newObserved()
	banners := jsonfile.New(dir, lg).Load()

	require.Len(t, banners, 2)
	require.Equal(t, "example", banners[0].ID)
	require.Equal(t, "second", banners[1].ID)

	invalid := logs.FilterMessage("skipping invalid banner config").All()
	require.Len(t, invalid, 1)
	require.Equal(t, "a_invalid.json", invalid[0].ContextMap()["file"])

	unreadable := logs.FilterMessage("read banner config error").All()
	require.Len(t, unreadable, 1)
	require.Equal(t, "c_garbage.json", unreadable[0].ContextMap()["file"])
}

func TestLoadOrderIsFileNameOrder(t *testing.T) {
	record := func(id string) string {
		return `{"id":"` + id + `","title":"t","description":"d",
			"start_time":"2024-01-01T00:00:00Z","end_time":"2025-01-01T00:00:00Z","locations":["US"]}`
	}

	dir := writeFiles(t, map[string]string{
		"30.json": record("third"),
		"10.json": record("first"),
		"20.json": record("second"),
	})

	banners := jsonfile.New(dir, logger.NewNop()).Load()
	require.Len(t, banners, 3)
	require.Equal(t, "first", banners[0].ID)
	require.Equal(t, "second", banners[1].ID)
	require.Equal(t, "third", banners[2].ID)
}

func TestLoadMissingDirectory(t *testing.T) {
	lg, logs := newObserved()

	banners := jsonfile.New(filepath.Join(t.TempDir(), "absent"), lg).Load()
	require.NotNil(t, banners)
	require.Empty(t, banners)

	entries := logs.FilterMessage("banner config directory unavailable").All()
	require.Len(t, entries, 1)
	require.Equal(t, zapcore.ErrorLevel, entries[0].Level)
}

func TestLoadPathIsFile(t *testing.T) {
	dir := writeFiles(t, map[string]string{"example.json": exampleRecord})

	banners := jsonfile.New(filepath.Join(dir, "example.json"), logger.NewNop()).Load()
	require.Empty(t, banners)
}

func TestLoadEmptyDirectory(t *testing.T) {
	banners := jsonfile.New(t.TempDir(), logger.NewNop()).Load()
	require.Empty(t, banners)
}

func TestLoadWarnsOnUnknownCondition(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"moon.json": `{"id":"moon","title":"t","description":"d","special_condition":"full-moon",
			"start_time":"2024-01-01T00:00:00Z","end_time":"2025-01-01T00:00:00Z","locations":["US"]}`,
	})

	lg, logs := newObserved()
	banners := jsonfile.New(dir, lg).Load()

	require.Len(t, banners, 1)
	require.False(t, banners[0].Condition.Known())
	require.Equal(t, 1, logs.FilterField(zap.String("condition", "full-moon")).Len())
}
