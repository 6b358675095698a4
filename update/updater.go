// Package update lets an Alfred workflow check a remote host for newer
// releases of itself and download them.
//
// The updater keeps its state in the workflow data directory and only talks
// to the remote server once per check interval (24 hours by default); all
// calls in between are answered from a small cache file. The very first call
// to UpdateReady records a timestamp and reports false without any network
// traffic, on the assumption that the user just installed the workflow.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/alfredtools/go-alfred/env"
	"github.com/alfredtools/go-alfred/pkg/logger"
)

const (
	// DefaultInterval is how long the updater waits between remote checks.
	DefaultInterval = 24 * time.Hour

	lastCheckStatusFile = "last_check_status.json"
)

// Updater checks for and downloads the latest release of the running
// workflow from a remote server.
type Updater struct {
	state          state
	releaser       Releaser
	downloadClient *http.Client
	lggr           logger.Logger
}

// state is persisted as JSON in the workflow data directory across runs.
type state struct {
	CurrentVersion  *semver.Version `json:"current_version"`
	LastCheck       *time.Time      `json:"last_check,omitempty"`
	IntervalSeconds int64           `json:"update_interval"`
}

// Option configures an Updater.
type Option func(*Updater)

// WithDownloadClient overrides the HTTP client used to download workflow
// bundles. The default client has no global timeout; pass a context to
// DownloadLatest to bound the transfer.
func WithDownloadClient(client *http.Client) Option {
	return func(u *Updater) {
		u.downloadClient = client
	}
}

// NewGithub returns an Updater for a workflow hosted on github.com. The
// repository must be in "owner/name" form.
//
// Creating the updater performs no network calls; it only loads or
// initializes the persisted state, so the workflow's data directory
// variables must be present.
func NewGithub(repo string, lggr logger.Logger, opts ...Option) (*Updater, error) {
	releaser, err := NewGithubReleaser(repo, lggr)
	if err != nil {
		return nil, err
	}

	return New(releaser, lggr, opts...)
}

// New returns an Updater backed by the given Releaser.
//
// State is loaded from the workflow data directory when present. Otherwise
// the current version is taken from alfred_workflow_version (0.0.0 when
// unset) and fresh state is written out.
func New(releaser Releaser, lggr logger.Logger, opts ...Option) (*Updater, error) {
	u := &Updater{
		releaser:       releaser,
		downloadClient: &http.Client{},
		lggr:           lggr.Named("Updater"),
	}
	for _, opt := range opts {
		opt(u)
	}

	if st, err := loadState(); err == nil {
		u.state = *st

		return u, nil
	}

	version := semver.New(0, 0, 0, "", "")
	if raw, ok := env.WorkflowVersion(); ok {
		parsed, err := semver.NewVersion(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse workflow version %q: %w", raw, err)
		}
		version = parsed
	}

	u.state = state{
		CurrentVersion:  version,
		IntervalSeconds: int64(DefaultInterval / time.Second),
	}
	if err := u.save(); err != nil {
		return nil, err
	}

	return u, nil
}

// CurrentVersion returns the version the updater considers installed.
func (u *Updater) CurrentVersion() *semver.Version {
	return u.state.CurrentVersion
}

// Interval returns the configured check interval.
func (u *Updater) Interval() time.Duration {
	return time.Duration(u.state.IntervalSeconds) * time.Second
}

// SetInterval sets the check interval and persists it.
func (u *Updater) SetInterval(interval time.Duration) error {
	u.state.IntervalSeconds = int64(interval / time.Second)

	return u.save()
}

// SetVersion overrides the installed workflow version at runtime, for
// authors who derive the version from build info rather than Alfred's
// preferences. It panics when version is not a valid semantic version.
func (u *Updater) SetVersion(version string) {
	parsed, err := semver.NewVersion(version)
	if err != nil {
		panic(fmt.Sprintf("version %q does not follow semantic versioning: %v", version, err))
	}
	u.state.CurrentVersion = parsed
	os.Setenv("alfred_workflow_version", version)
}

// DueToCheck reports whether the check interval has elapsed since the last
// conversation with the remote server.
func (u *Updater) DueToCheck() bool {
	if u.state.LastCheck == nil {
		return true
	}

	return time.Since(*u.state.LastCheck) > u.Interval()
}

// UpdateReady reports whether a release newer than the current version is
// available. A network call is made only when the check interval has
// elapsed, or when the local cache file cannot be read; otherwise the
// answer comes from the cache.
func (u *Updater) UpdateReady(ctx context.Context) (bool, error) {
	// First run: the workflow was presumably just installed, so record the
	// timestamp and stay offline.
	if u.state.LastCheck == nil {
		now := time.Now().UTC()
		u.state.LastCheck = &now
		if err := u.save(); err != nil {
			return false, err
		}
		u.lggr.Debugw("first update check, assuming fresh install")

		return false, nil
	}

	if u.DueToCheck() {
		return u.askReleaser(ctx)
	}

	latest, err := u.readLastCheckStatus()
	if err != nil {
		// The cache can be missing or corrupted when a previous run was
		// cancelled mid-write. Check with the server again.
		u.lggr.Warnw("unreadable update cache, checking remote", "err", err)

		return u.askReleaser(ctx)
	}
	if latest == nil {
		return false, nil
	}

	return u.state.CurrentVersion.LessThan(latest), nil
}

// DownloadLatest downloads the newest release bundle into the workflow
// cache directory and returns the saved file's path. The file is always
// named "latest_release_<workflow uid>.alfredworkflow" so a downstream
// action can open it unconditionally.
func (u *Updater) DownloadLatest(ctx context.Context) (string, error) {
	cacheDir, ok := env.WorkflowCache()
	if !ok {
		return "", errors.New("alfred_workflow_cache is not set")
	}
	uid, ok := env.WorkflowUID()
	if !ok {
		return "", errors.New("alfred_workflow_uid is not set")
	}

	release, err := u.releaser.LatestRelease(ctx)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, release.DownloadURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create download request: %w", err)
	}

	resp, err := u.downloadClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("release download returned status %d", resp.StatusCode)
	}

	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create workflow cache dir: %w", err)
	}

	dest := filepath.Join(cacheDir, "latest_release_"+uid+".alfredworkflow")
	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("failed to create bundle file: %w", err)
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()

		return "", fmt.Errorf("failed to save bundle: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to save bundle: %w", err)
	}

	u.lggr.Infow("downloaded latest release",
		"version", release.Version.String(), "path", dest)

	return dest, nil
}

// askReleaser talks to the remote server, refreshes the cache file and the
// persisted state, and reports whether an update is available.
func (u *Updater) askReleaser(ctx context.Context) (bool, error) {
	release, err := u.releaser.LatestRelease(ctx)
	if err != nil {
		return false, err
	}

	ready := u.state.CurrentVersion.LessThan(release.Version)

	var latest *semver.Version
	if ready {
		latest = release.Version
	}
	if err := u.writeLastCheckStatus(latest); err != nil {
		return false, err
	}

	now := time.Now().UTC()
	u.state.LastCheck = &now
	if err := u.save(); err != nil {
		return false, err
	}

	u.lggr.Infow("checked for update",
		"current", u.state.CurrentVersion.String(),
		"latest", release.Version.String(),
		"ready", ready)

	return ready, nil
}

func (u *Updater) save() error {
	path, err := stateFilePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create workflow data dir: %w", err)
	}

	data, err := json.Marshal(u.state)
	if err != nil {
		return fmt.Errorf("failed to encode updater state: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write updater state: %w", err)
	}

	return nil
}

func loadState() (*state, error) {
	path, err := stateFilePath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("failed to decode updater state: %w", err)
	}
	if st.CurrentVersion == nil {
		return nil, errors.New("updater state is missing the current version")
	}

	return &st, nil
}

// writeLastCheckStatus caches the newest remote version, or null when the
// workflow is up to date.
func (u *Updater) writeLastCheckStatus(latest *semver.Version) error {
	path, err := lastCheckStatusPath()
	if err != nil {
		return err
	}

	data, err := json.Marshal(latest)
	if err != nil {
		return fmt.Errorf("failed to encode update cache: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write update cache: %w", err)
	}

	return nil
}

func (u *Updater) readLastCheckStatus() (*semver.Version, error) {
	path, err := lastCheckStatusPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var latest *semver.Version
	if err := json.Unmarshal(data, &latest); err != nil {
		return nil, fmt.Errorf("failed to decode update cache: %w", err)
	}

	return latest, nil
}

// stateFilePath names the state file after the workflow uid and name so
// workflows sharing a data directory cannot clobber each other.
func stateFilePath() (string, error) {
	dataDir, ok := env.WorkflowData()
	if !ok {
		return "", errors.New("alfred_workflow_data is not set")
	}
	uid, ok := env.WorkflowUID()
	if !ok {
		return "", errors.New("alfred_workflow_uid is not set")
	}
	name, ok := env.WorkflowName()
	if !ok {
		name = "workflow"
	}

	return filepath.Join(dataDir, uid+"-"+sanitize(name)+"-updater.json"), nil
}

func lastCheckStatusPath() (string, error) {
	dataDir, ok := env.WorkflowData()
	if !ok {
		return "", errors.New("alfred_workflow_data is not set")
	}

	return filepath.Join(dataDir, lastCheckStatusFile), nil
}

// sanitize maps anything outside ASCII letters and digits to '_' so the
// workflow name is safe to embed in a file name.
func sanitize(s string) string {
	out := []rune(s)
	for i, r := range out {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		default:
			out[i] = '_'
		}
	}

	return string(out)
}
