package update

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/avast/retry-go/v4"

	"github.com/alfredtools/go-alfred/pkg/logger"
)

const githubAPIBaseURL = "https://api.github.com"

// Release describes the newest published release of a workflow.
type Release struct {
	// Version is the release version, taken from the release tag.
	Version *semver.Version
	// DownloadURL points at the workflow bundle asset.
	DownloadURL string
}

// Releaser resolves the latest release of a workflow hosted on a remote
// service. Implement it to check releases on hosts other than github.com.
type Releaser interface {
	LatestRelease(ctx context.Context) (*Release, error)
}

// GithubReleaser resolves workflow releases through the github.com REST API.
//
// Releases are expected to follow the usual GitHub process: a tagged commit
// with an uploaded `.alfredworkflow` asset. The tag must be a semantic
// version, optionally prefixed with "v".
type GithubReleaser struct {
	owner      string
	name       string
	baseURL    string
	httpClient *http.Client
	lggr       logger.Logger
}

var _ Releaser = &GithubReleaser{}

// GithubOption configures a GithubReleaser.
type GithubOption func(*GithubReleaser)

// WithBaseURL overrides the GitHub API base URL. Used by tests.
func WithBaseURL(baseURL string) GithubOption {
	return func(r *GithubReleaser) {
		r.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient overrides the HTTP client used for API calls.
func WithHTTPClient(client *http.Client) GithubOption {
	return func(r *GithubReleaser) {
		r.httpClient = client
	}
}

// NewGithubReleaser returns a Releaser for a repository in "owner/name"
// form, e.g. "spamwax/alfred-pinboard-rs".
func NewGithubReleaser(repo string, lggr logger.Logger, opts ...GithubOption) (*GithubReleaser, error) {
	owner, name, ok := strings.Cut(repo, "/")
	if !ok || owner == "" || name == "" {
		return nil, fmt.Errorf("github repository must be in owner/name form, got %q", repo)
	}

	r := &GithubReleaser{
		owner:   owner,
		name:    name,
		baseURL: githubAPIBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		lggr: lggr.Named("GithubReleaser"),
	}
	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

// releaseItem is the wire form of a GitHub release.
type releaseItem struct {
	TagName string         `json:"tag_name"`
	Assets  []releaseAsset `json:"assets"`
}

type releaseAsset struct {
	Name               string `json:"name"`
	State              string `json:"state"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// LatestRelease fetches metadata for the newest release and resolves its
// version and bundle download URL. Only a small metadata document is
// transferred; the bundle itself is not downloaded.
func (r *GithubReleaser) LatestRelease(ctx context.Context) (*Release, error) {
	item, err := doWithRetry(ctx, r.fetchLatest)
	if err != nil {
		return nil, err
	}

	tag := strings.TrimPrefix(item.TagName, "v")
	version, err := semver.NewVersion(tag)
	if err != nil {
		return nil, fmt.Errorf("failed to parse release tag %q as semantic version: %w", item.TagName, err)
	}

	downloadURL, err := pickAssetURL(item.Assets)
	if err != nil {
		return nil, err
	}

	r.lggr.Debugw("resolved latest release",
		"repo", r.owner+"/"+r.name, "version", version.String())

	return &Release{Version: version, DownloadURL: downloadURL}, nil
}

func (r *GithubReleaser) fetchLatest(ctx context.Context) (*releaseItem, error) {
	reqURL, err := url.JoinPath(r.baseURL, "repos", r.owner, r.name, "releases", "latest")
	if err != nil {
		return nil, fmt.Errorf("failed to build request URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("github API returned status %d", resp.StatusCode)
		// Client errors such as a missing repo will not resolve themselves.
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return nil, retry.Unrecoverable(err)
		}

		return nil, err
	}

	var item releaseItem
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		return nil, fmt.Errorf("failed to parse release metadata: %w", err)
	}

	return &item, nil
}

// pickAssetURL selects the workflow bundle among the uploaded release
// assets, favoring `.alfred3workflow` bundles over `.alfredworkflow`.
func pickAssetURL(assets []releaseAsset) (string, error) {
	urls := make([]string, 0, len(assets))
	for _, asset := range assets {
		if asset.State != "uploaded" {
			continue
		}
		if strings.HasSuffix(asset.BrowserDownloadURL, ".alfredworkflow") ||
			strings.HasSuffix(asset.BrowserDownloadURL, ".alfred3workflow") {
			urls = append(urls, asset.BrowserDownloadURL)
		}
	}

	if len(urls) == 0 {
		return "", errors.New("release has no usable workflow bundle asset")
	}
	for _, u := range urls {
		if strings.HasSuffix(u, ".alfred3workflow") {
			return u, nil
		}
	}

	return urls[0], nil
}
