package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/Zachkp/portfolio/internal/blog"
)

// UpsertPosts replaces the cached copy of each post in one transaction.
func (d *DB) UpsertPosts(ctx context.Context, posts []blog.Post) error {
	tx, err := d.Pool.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert posts: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	fetched := formatTime(d.now())
	for _, p := range posts {
		tags, err := json.Marshal(p.Tags)
		if err != nil {
			return fmt.Errorf("encode tags for %s: %w", p.Slug, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO blog_posts (slug, title, summary, markdown, html, tags, cover_image, published_at, updated_at, reading_minutes, fetched_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(slug) DO UPDATE SET
				title = excluded.title,
				summary = excluded.summary,
				markdown = excluded.markdown,
				html = excluded.html,
				tags = excluded.tags,
				cover_image = excluded.cover_image,
				published_at = excluded.published_at,
				updated_at = excluded.updated_at,
				reading_minutes = excluded.reading_minutes,
				fetched_at = excluded.fetched_at`,
			p.Slug, p.Title, p.Summary, p.Markdown, p.HTML, string(tags), p.CoverImage,
			formatTime(p.PublishedAt), formatTime(p.UpdatedAt), p.ReadingMinutes, fetched)
		if err != nil {
			return fmt.Errorf("upsert post %s: %w", p.Slug, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert posts: %w", err)
	}
	return nil
}

const postColumns = `slug, title, summary, markdown, html, tags, cover_image, published_at, updated_at, reading_minutes`

type scanner interface {
	Scan(dest ...any) error
}

func scanPost(s scanner) (blog.Post, error) {
	var (
		p                  blog.Post
		tags               string
		published, updated string
	)
	if err := s.Scan(&p.Slug, &p.Title, &p.Summary, &p.Markdown, &p.HTML, &tags, &p.CoverImage, &published, &updated, &p.ReadingMinutes); err != nil {
		return blog.Post{}, err
	}
	if tags != "" {
		if err := json.Unmarshal([]byte(tags), &p.Tags); err != nil {
			return blog.Post{}, fmt.Errorf("decode tags for %s: %w", p.Slug, err)
		}
	}
	p.PublishedAt = parseTime(published)
	p.UpdatedAt = parseTime(updated)
	return p, nil
}

// ListPosts returns cached posts, newest first.
func (d *DB) ListPosts(ctx context.Context) ([]blog.Post, error) {
	rows, err := d.Pool.QueryContext(ctx, `SELECT `+postColumns+` FROM blog_posts ORDER BY published_at DESC, slug ASC`)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var out []blog.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (d *DB) GetPost(ctx context.Context, slug string) (blog.Post, error) {
	row := d.Pool.QueryRowContext(ctx, `SELECT `+postColumns+` FROM blog_posts WHERE slug = ?`, slug)
	p, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return blog.Post{}, fmt.Errorf("cached post %q: %w", slug, ErrNotFound)
	}
	if err != nil {
		return blog.Post{}, fmt.Errorf("get post %s: %w", slug, err)
	}
	return p, nil
}
