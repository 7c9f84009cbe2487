package blog

import (
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"
)

// Source is where posts come from, normally *Client.
type Source interface {
	List(ctx context.Context) ([]Post, error)
	Get(ctx context.Context, slug string) (Post, error)
}

// Cache keeps the last good copy of each post, normally *store.DB.
type Cache interface {
	UpsertPosts(ctx context.Context, posts []Post) error
	ListPosts(ctx context.Context) ([]Post, error)
	GetPost(ctx context.Context, slug string) (Post, error)
}

// Service serves posts from the content store, falling back to the cache
// when the store is unreachable. It never fails a page render: with nothing
// cached it returns an empty list.
type Service struct {
	src   Source
	cache Cache
	log   *zap.Logger
}

// NewService accepts a nil src (content store not configured) or a nil
// cache; the service then works with whatever remains.
func NewService(src Source, cache Cache, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{src: src, cache: cache, log: log.Named("blog")}
}

// List returns published posts, newest first.
func (s *Service) List(ctx context.Context) []Post {
	if s.src != nil {
		posts, err := s.src.List(ctx)
		if err == nil {
			prepared := s.prepareAll(posts)
			s.store(ctx, prepared)
			return prepared
		}
		s.log.Warn("content store list failed, serving cache", zap.Error(err))
	}
	return s.cached(ctx)
}

// Get returns one post. ErrNotFound means neither the content store nor
// the cache has it.
func (s *Service) Get(ctx context.Context, slug string) (Post, error) {
	if s.src != nil {
		p, err := s.src.Get(ctx, slug)
		if err == nil {
			prepared, perr := Prepare(p)
			if perr == nil {
				s.store(ctx, []Post{prepared})
				return prepared, nil
			}
			err = perr
		}
		if errors.Is(err, ErrNotFound) {
			return Post{}, ErrNotFound
		}
		s.log.Warn("content store get failed, serving cache", zap.String("slug", slug), zap.Error(err))
	}
	if s.cache == nil {
		return Post{}, ErrNotFound
	}
	p, err := s.cache.GetPost(ctx, slug)
	if err != nil {
		return Post{}, ErrNotFound
	}
	return p, nil
}

func (s *Service) prepareAll(posts []Post) []Post {
	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		prepared, err := Prepare(p)
		if err != nil {
			s.log.Warn("skipping post", zap.String("slug", p.Slug), zap.Error(err))
			continue
		}
		out = append(out, prepared)
	}
	sortNewest(out)
	return out
}

func (s *Service) store(ctx context.Context, posts []Post) {
	if s.cache == nil || len(posts) == 0 {
		return
	}
	if err := s.cache.UpsertPosts(ctx, posts); err != nil {
		s.log.Warn("failed to cache posts", zap.Error(err))
	}
}

func (s *Service) cached(ctx context.Context) []Post {
	if s.cache == nil {
		return []Post{}
	}
	posts, err := s.cache.ListPosts(ctx)
	if err != nil {
		s.log.Error("failed to read post cache", zap.Error(err))
		return []Post{}
	}
	if posts == nil {
		return []Post{}
	}
	return posts
}

func sortNewest(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].PublishedAt.After(posts[j].PublishedAt)
	})
}
