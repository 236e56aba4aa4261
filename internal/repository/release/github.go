package release

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/go-github/v52/github"

	domain "github.com/oshokin/scoop-manifest/internal/domain/release"
	"github.com/oshokin/scoop-manifest/internal/failure"
	"github.com/oshokin/scoop-manifest/internal/service/common"
	"github.com/oshokin/scoop-manifest/internal/version"
)

// Resolver defines how the latest release of a repository is obtained.
type Resolver interface {
	Latest(ctx context.Context, repo domain.Repository) (*domain.Release, error)
}

// GitHubResolver reads releases from the GitHub REST API.
type GitHubResolver struct {
	// client is the session shared with the digest computer.
	client *common.Client
	// api is the go-github client bound to client's transport and base URL.
	api *github.Client
}

// NewGitHubResolver creates a resolver that talks to the API configured in client.
func NewGitHubResolver(client *common.Client) *GitHubResolver {
	api := github.NewClient(client.HTTP())
	api.BaseURL = client.APIURL()
	api.UserAgent = version.UserAgent()

	return &GitHubResolver{
		client: client,
		api:    api,
	}
}

// Latest returns the first entry of the releases listing.
// It makes exactly one request and never retries.
func (r *GitHubResolver) Latest(ctx context.Context, repo domain.Repository) (*domain.Release, error) {
	callCtx, cancel := r.client.CallContext(ctx)
	defer cancel()

	releases, _, err := r.api.Repositories.ListReleases(callCtx, repo.Owner, repo.Name, &github.ListOptions{
		PerPage: 1,
	})
	if err != nil {
		return nil, classifyError(repo, err)
	}

	if len(releases) == 0 {
		return nil, failure.New(failure.NotFound, "repository %s has no releases", repo)
	}

	return fromGitHub(releases[0]), nil
}

// classifyError turns go-github errors into network failures with a readable cause.
func classifyError(repo domain.Repository, err error) error {
	var (
		rateErr  *github.RateLimitError
		abuseErr *github.AbuseRateLimitError
		respErr  *github.ErrorResponse
	)

	switch {
	case errors.As(err, &rateErr):
		return failure.Wrap(failure.Network, err, "GitHub API rate limit exceeded, resets at %s",
			rateErr.Rate.Reset.UTC().Format(time.RFC3339))
	case errors.As(err, &abuseErr):
		return failure.Wrap(failure.Network, err, "GitHub API secondary rate limit hit")
	case errors.As(err, &respErr) && respErr.Response != nil:
		switch respErr.Response.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return failure.Wrap(failure.Network, err, "authentication failed while listing releases of %s", repo)
		case http.StatusNotFound:
			return failure.Wrap(failure.Network, err, "repository %s is not accessible", repo)
		}
	}

	return failure.Wrap(failure.Network, err, "list releases of %s", repo)
}

// fromGitHub converts the go-github payload into the domain Release.
func fromGitHub(gr *github.RepositoryRelease) *domain.Release {
	assets := make([]domain.Asset, 0, len(gr.Assets))
	for _, ga := range gr.Assets {
		assets = append(assets, domain.Asset{
			Name: ga.GetName(),
			URL:  ga.GetBrowserDownloadURL(),
			Size: int64(ga.GetSize()),
		})
	}

	return &domain.Release{
		TagName:    gr.GetTagName(),
		Name:       gr.GetName(),
		Body:       gr.GetBody(),
		Prerelease: gr.GetPrerelease(),
		Assets:     assets,
	}
}
