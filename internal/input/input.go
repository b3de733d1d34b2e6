// Package input supplies puzzle text: from an explicit file or stdin, or
// from a local cache directory that is filled on demand over HTTP.
package input

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/danmuck/bitsdec/internal/observability"
	"github.com/rs/zerolog/log"
)

const unlockNotice = "Please don't repeatedly request this endpoint before it unlocks"

var (
	ErrNotCached   = errors.New("input: not cached and no fetch url configured")
	ErrNoSession   = errors.New("input: session cookie missing")
	ErrTooEarly    = errors.New("input: puzzle has not unlocked yet")
	ErrFetchFailed = errors.New("input: fetch failed")
)

// Source resolves named inputs. URL is a fmt template taking the name, e.g.
// "https://adventofcode.com/2021/day/%s/input".
type Source struct {
	Dir         string
	URL         string
	SessionFile string
	Timeout     time.Duration
	Client      *http.Client
	// Unlock, when set, reports when the named input becomes available.
	// Load refuses to fetch before then.
	Unlock func(name string) (time.Time, error)
	Now    func() time.Time
}

func DefaultSource() Source {
	return Source{
		Dir:         "inputs",
		SessionFile: ".advent-session-cookie",
		Timeout:     10 * time.Second,
	}
}

// CachePath returns where the named input is cached.
func (s Source) CachePath(name string) string {
	return filepath.Join(s.Dir, name+".txt")
}

// Load returns the trimmed text of the named input, fetching and caching
// it first when it is not on disk.
func (s Source) Load(ctx context.Context, name string) (string, error) {
	path := s.CachePath(name)
	text, err := ReadFile(path)
	if err == nil {
		log.Debug().Str("input", name).Str("path", path).Msg("input cache hit")
		return text, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}
	if strings.TrimSpace(s.URL) == "" {
		return "", fmt.Errorf("%w: %s", ErrNotCached, path)
	}

	if err := s.checkUnlocked(name); err != nil {
		return "", err
	}
	body, err := s.fetch(ctx, name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("input: create cache dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return "", fmt.Errorf("input: write cache: %w", err)
	}
	log.Info().Str("input", name).Str("path", path).Int("bytes", len(body)).Msg("input cached")
	return strings.TrimSpace(body), nil
}

func (s Source) checkUnlocked(name string) error {
	if s.Unlock == nil {
		return nil
	}
	at, err := s.Unlock(name)
	if err != nil {
		return fmt.Errorf("input: unlock time for %s: %w", name, err)
	}
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	if now.Before(at) {
		log.Warn().Str("input", name).Time("unlocks", at).Msg("input not unlocked")
		return fmt.Errorf("%w: %s unlocks at %s", ErrTooEarly, name, at.Format(time.RFC3339))
	}
	return nil
}

// AdventUnlock returns an Unlock func for the given event year: the input
// named by day N unlocks at midnight US Eastern (05:00 UTC) on December N.
func AdventUnlock(year int) func(name string) (time.Time, error) {
	return func(name string) (time.Time, error) {
		day, err := strconv.Atoi(strings.TrimSpace(name))
		if err != nil || day < 1 || day > 25 {
			return time.Time{}, fmt.Errorf("day %q out of range 1..25", name)
		}
		return time.Date(year, time.December, day, 5, 0, 0, 0, time.UTC), nil
	}
}

func (s Source) fetch(ctx context.Context, name string) (string, error) {
	start := time.Now()
	session, err := s.session()
	if err != nil {
		return "", err
	}
	url := fmt.Sprintf(s.URL, name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("input: build request: %w", err)
	}
	req.Header.Set("Cookie", "session="+session)

	resp, err := s.client().Do(req)
	if err != nil {
		log.Error().Str("input", name).Str("url", url).Err(err).Msg("input fetch failed")
		observability.RecordFetch(0, time.Since(start))
		return "", fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	observability.RecordFetch(resp.StatusCode, time.Since(start))
	if err != nil {
		return "", fmt.Errorf("%w: read body: %v", ErrFetchFailed, err)
	}
	text := string(body)
	if strings.HasPrefix(text, unlockNotice) {
		return "", ErrTooEarly
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %s returned %d", ErrFetchFailed, url, resp.StatusCode)
	}
	log.Info().Str("input", name).Str("url", url).Int("status", resp.StatusCode).Msg("input fetched")
	return text, nil
}

func (s Source) session() (string, error) {
	raw, err := os.ReadFile(s.SessionFile)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoSession, err)
	}
	session := strings.TrimSpace(string(raw))
	if session == "" {
		return "", fmt.Errorf("%w: %s is empty", ErrNoSession, s.SessionFile)
	}
	return session, nil
}

func (s Source) client() *http.Client {
	if s.Client != nil {
		return s.Client
	}
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

// ReadFile returns the trimmed contents of path.
func ReadFile(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("input: read %s: %w", path, err)
	}
	return strings.TrimSpace(string(raw)), nil
}

// ReadAll returns the trimmed contents of r.
func ReadAll(r io.Reader) (string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("input: read: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}
