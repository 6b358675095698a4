package update

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alfredtools/go-alfred/pkg/logger"
)

func Test_NewGithubReleaser(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		giveRepo  string
		wantErr   string
		wantOwner string
		wantName  string
	}{
		{
			name:      "valid repository",
			giveRepo:  "spamwax/alfred-pinboard-rs",
			wantOwner: "spamwax",
			wantName:  "alfred-pinboard-rs",
		},
		{
			name:     "missing separator",
			giveRepo: "alfred-pinboard-rs",
			wantErr:  "owner/name form",
		},
		{
			name:     "empty owner",
			giveRepo: "/alfred-pinboard-rs",
			wantErr:  "owner/name form",
		},
		{
			name:     "empty name",
			giveRepo: "spamwax/",
			wantErr:  "owner/name form",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			releaser, err := NewGithubReleaser(tt.giveRepo, logger.Nop())

			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOwner, releaser.owner)
			assert.Equal(t, tt.wantName, releaser.name)
			assert.Equal(t, githubAPIBaseURL, releaser.baseURL)
		})
	}
}

func Test_GithubReleaser_LatestRelease(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		giveTag     string
		giveAssets  []releaseAsset
		wantVersion string
		wantURL     string
		wantErr     string
	}{
		{
			name:    "resolves version and bundle",
			giveTag: "v1.4.2",
			giveAssets: []releaseAsset{
				{Name: "src.tar.gz", State: "uploaded", BrowserDownloadURL: "https://dl.test/src.tar.gz"},
				{Name: "bundle.alfredworkflow", State: "uploaded", BrowserDownloadURL: "https://dl.test/bundle.alfredworkflow"},
			},
			wantVersion: "1.4.2",
			wantURL:     "https://dl.test/bundle.alfredworkflow",
		},
		{
			name:    "tag without v prefix",
			giveTag: "0.9.0",
			giveAssets: []releaseAsset{
				{Name: "bundle.alfredworkflow", State: "uploaded", BrowserDownloadURL: "https://dl.test/bundle.alfredworkflow"},
			},
			wantVersion: "0.9.0",
			wantURL:     "https://dl.test/bundle.alfredworkflow",
		},
		{
			name:    "prefers alfred3workflow bundle",
			giveTag: "v2.0.0",
			giveAssets: []releaseAsset{
				{Name: "bundle.alfredworkflow", State: "uploaded", BrowserDownloadURL: "https://dl.test/bundle.alfredworkflow"},
				{Name: "bundle.alfred3workflow", State: "uploaded", BrowserDownloadURL: "https://dl.test/bundle.alfred3workflow"},
			},
			wantVersion: "2.0.0",
			wantURL:     "https://dl.test/bundle.alfred3workflow",
		},
		{
			name:    "skips assets that are not uploaded",
			giveTag: "v2.0.0",
			giveAssets: []releaseAsset{
				{Name: "bundle.alfred3workflow", State: "new", BrowserDownloadURL: "https://dl.test/bundle.alfred3workflow"},
				{Name: "bundle.alfredworkflow", State: "uploaded", BrowserDownloadURL: "https://dl.test/bundle.alfredworkflow"},
			},
			wantVersion: "2.0.0",
			wantURL:     "https://dl.test/bundle.alfredworkflow",
		},
		{
			name:    "no usable bundle asset",
			giveTag: "v2.0.0",
			giveAssets: []releaseAsset{
				{Name: "src.tar.gz", State: "uploaded", BrowserDownloadURL: "https://dl.test/src.tar.gz"},
			},
			wantErr: "no usable workflow bundle asset",
		},
		{
			name:    "tag is not a semantic version",
			giveTag: "latest",
			giveAssets: []releaseAsset{
				{Name: "bundle.alfredworkflow", State: "uploaded", BrowserDownloadURL: "https://dl.test/bundle.alfredworkflow"},
			},
			wantErr: "failed to parse release tag",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/repos/spamwax/alfred-pinboard-rs/releases/latest", r.URL.Path)
				assert.Equal(t, "application/vnd.github+json", r.Header.Get("Accept"))

				err := json.NewEncoder(w).Encode(releaseItem{
					TagName: tt.giveTag,
					Assets:  tt.giveAssets,
				})
				assert.NoError(t, err)
			}))
			t.Cleanup(srv.Close)

			releaser, err := NewGithubReleaser("spamwax/alfred-pinboard-rs", logger.Test(t),
				WithBaseURL(srv.URL),
				WithHTTPClient(srv.Client()),
			)
			require.NoError(t, err)

			release, err := releaser.LatestRelease(context.Background())

			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantVersion, release.Version.String())
			assert.Equal(t, tt.wantURL, release.DownloadURL)
		})
	}
}

func Test_GithubReleaser_LatestRelease_NotFoundDoesNotRetry(t *testing.T) {
	t.Parallel()

	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	releaser, err := NewGithubReleaser("spamwax/no-such-repo", logger.Test(t),
		WithBaseURL(srv.URL),
		WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)

	_, err = releaser.LatestRelease(context.Background())

	require.ErrorContains(t, err, "status 404")
	assert.Equal(t, 1, calls)
}

func Test_pickAssetURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		giveAssets []releaseAsset
		want       string
		wantErr    string
	}{
		{
			name: "single bundle",
			giveAssets: []releaseAsset{
				{State: "uploaded", BrowserDownloadURL: "https://dl.test/a.alfredworkflow"},
			},
			want: "https://dl.test/a.alfredworkflow",
		},
		{
			name: "alfred3workflow wins regardless of order",
			giveAssets: []releaseAsset{
				{State: "uploaded", BrowserDownloadURL: "https://dl.test/a.alfredworkflow"},
				{State: "uploaded", BrowserDownloadURL: "https://dl.test/a.alfred3workflow"},
			},
			want: "https://dl.test/a.alfred3workflow",
		},
		{
			name:       "no assets",
			giveAssets: nil,
			wantErr:    "no usable workflow bundle asset",
		},
		{
			name: "only unrelated assets",
			giveAssets: []releaseAsset{
				{State: "uploaded", BrowserDownloadURL: "https://dl.test/a.zip"},
			},
			wantErr: "no usable workflow bundle asset",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := pickAssetURL(tt.giveAssets)

			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
