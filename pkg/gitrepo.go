package commitbump

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Repository reads tags and history from a local git repository.
type Repository struct {
	repo *git.Repository
}

// OpenRepository opens the git repository containing path.
func OpenRepository(path string) (*Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("opening git repository at %q: %w", path, err)
	}
	return &Repository{repo: repo}, nil
}

// NewRepository wraps an already opened go-git repository.
func NewRepository(repo *git.Repository) *Repository {
	return &Repository{repo: repo}
}

// ListTags returns the short names of all tags.
func (r *Repository) ListTags(ctx context.Context) ([]string, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("reading tags: %w", err)
	}
	defer iter.Close()

	var tags []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		tags = append(tags, ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading tags: %w", err)
	}
	return tags, nil
}

// LatestVersionTag returns the tag holding the highest version.
// It returns ErrNoVersion when no tag parses as a version.
func (r *Repository) LatestVersionTag(ctx context.Context) (string, Version, error) {
	tags, err := r.ListTags(ctx)
	if err != nil {
		return "", Version{}, err
	}
	tag, v, ok := LatestTag(tags)
	if !ok {
		return "", Version{}, ErrNoVersion
	}
	return tag, v, nil
}

// CommitMessagesSince returns the messages of commits reachable from HEAD that
// come after tag, oldest first. An empty tag returns the whole history.
func (r *Repository) CommitMessagesSince(ctx context.Context, tag string) ([]string, error) {
	head, err := r.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			// Repository without commits.
			return nil, nil
		}
		return nil, fmt.Errorf("resolving HEAD: %w", err)
	}

	excluded := make(map[plumbing.Hash]struct{})
	if tag != "" {
		h, err := r.tagCommit(tag)
		if err != nil {
			return nil, err
		}
		err = r.walk(ctx, h, func(c *object.Commit) {
			excluded[c.Hash] = struct{}{}
		})
		if err != nil {
			return nil, err
		}
	}

	var messages []string
	err = r.walk(ctx, head.Hash(), func(c *object.Commit) {
		if _, ok := excluded[c.Hash]; !ok {
			messages = append(messages, c.Message)
		}
	})
	if err != nil {
		return nil, err
	}

	slices.Reverse(messages)
	return messages, nil
}

// tagCommit returns the commit a tag points at, peeling annotated tags.
func (r *Repository) tagCommit(tag string) (plumbing.Hash, error) {
	ref, err := r.repo.Tag(tag)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("resolving tag %q: %w", tag, err)
	}
	obj, err := r.repo.TagObject(ref.Hash())
	switch {
	case err == nil:
		c, err := obj.Commit()
		if err != nil {
			return plumbing.ZeroHash, fmt.Errorf("resolving tag %q: %w", tag, err)
		}
		return c.Hash, nil
	case errors.Is(err, plumbing.ErrObjectNotFound):
		// Lightweight tag.
		return ref.Hash(), nil
	default:
		return plumbing.ZeroHash, fmt.Errorf("resolving tag %q: %w", tag, err)
	}
}

// walk visits every commit reachable from start, newest first.
func (r *Repository) walk(ctx context.Context, start plumbing.Hash, visit func(*object.Commit)) error {
	iter, err := r.repo.Log(&git.LogOptions{From: start, Order: git.LogOrderCommitterTime})
	if err != nil {
		return fmt.Errorf("reading log from %s: %w", start, err)
	}
	defer iter.Close()

	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		visit(c)
		return nil
	})
	if err != nil {
		return fmt.Errorf("reading log from %s: %w", start, err)
	}
	return nil
}
