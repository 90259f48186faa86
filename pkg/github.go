package commitbump

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v66/github"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// ErrInvalidRepository is returned for repository names not of the form owner/name.
var ErrInvalidRepository = errors.New("repository must be of the form owner/name")

// GitHubOptions configures a GitHubTags lister.
type GitHubOptions struct {
	Token      string        // optional; unauthenticated requests are rate limited harder
	APIURL     string        // optional API base URL, e.g. for GitHub Enterprise
	MaxRetries uint64        // retries after the first attempt for transient failures
	RetryDelay time.Duration // initial backoff delay
	Logger     *zap.Logger
}

// GitHubTags lists the tags of a GitHub repository through the REST API.
type GitHubTags struct {
	client *github.Client
	owner  string
	repo   string
	opts   GitHubOptions
}

// NewGitHubTags returns a lister for repository ("owner/name").
func NewGitHubTags(ctx context.Context, repository string, opts GitHubOptions) (*GitHubTags, error) {
	owner, repo, ok := strings.Cut(repository, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRepository, repository)
	}

	var httpClient *http.Client
	if opts.Token != "" {
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token}))
	}
	client := github.NewClient(httpClient)

	if opts.APIURL != "" {
		base := opts.APIURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("parsing GitHub API URL %q: %w", opts.APIURL, err)
		}
		client.BaseURL = u
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = time.Second
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	return &GitHubTags{client: client, owner: owner, repo: repo, opts: opts}, nil
}

// ListTags returns every tag name of the repository, following pagination.
func (g *GitHubTags) ListTags(ctx context.Context) ([]string, error) {
	listOpts := &github.ReferenceListOptions{
		Ref:         "tags/",
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var tags []string
	for {
		var (
			refs []*github.Reference
			resp *github.Response
		)
		err := retry.Do(ctx, g.backoff(), func(ctx context.Context) error {
			var err error
			refs, resp, err = g.client.Git.ListMatchingRefs(ctx, g.owner, g.repo, listOpts)
			if err != nil && isRetryable(err) {
				g.opts.Logger.Debug("Retrying tag listing",
					zap.String("repository", g.owner+"/"+g.repo),
					zap.Error(err))
				return retry.RetryableError(err)
			}
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("listing tags of %s/%s: %w", g.owner, g.repo, err)
		}

		for _, ref := range refs {
			tags = append(tags, strings.TrimPrefix(ref.GetRef(), "refs/tags/"))
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		listOpts.Page = resp.NextPage
	}

	g.opts.Logger.Debug("Listed tags", zap.String("repository", g.owner+"/"+g.repo), zap.Int("count", len(tags)))
	return tags, nil
}

func (g *GitHubTags) backoff() retry.Backoff {
	return retry.WithMaxRetries(
		g.opts.MaxRetries,
		retry.WithCappedDuration(
			30*time.Second,
			retry.WithJitter(
				g.opts.RetryDelay/10,
				retry.NewExponential(g.opts.RetryDelay),
			),
		),
	)
}

// isRetryable reports whether a GitHub API error is transient.
func isRetryable(err error) bool {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return true
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return true
	}
	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) {
		return respErr.Response != nil && respErr.Response.StatusCode >= 500
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	// Transport failures.
	return true
}
