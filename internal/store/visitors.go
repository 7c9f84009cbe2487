package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Zachkp/portfolio/internal/geo"
)

// Visit is one tracked page view. HashedIP is a salted hash, never the raw
// address. Coordinates are only present when the edge proxy supplied them.
type Visit struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
	Country   string    `json:"country,omitempty"`
	HasCoords bool      `json:"-"`
	Lat       float64   `json:"lat,omitempty"`
	Lng       float64   `json:"lng,omitempty"`
}

type PathStat struct {
	Path  string `json:"path"`
	Views int64  `json:"views"`
}

type Stats struct {
	TotalVisitors    int64      `json:"total_visitors"`
	UniqueVisitors   int64      `json:"unique_visitors"`
	VisitorsToday    int64      `json:"visitors_today"`
	VisitorsThisWeek int64      `json:"visitors_this_week"`
	TopPaths         []PathStat `json:"top_paths"`
	RecentVisitors   []Visit    `json:"recent_visitors"`
}

// RecordVisit stores v. A zero Timestamp means now.
func (d *DB) RecordVisit(ctx context.Context, v Visit) error {
	if v.Timestamp.IsZero() {
		v.Timestamp = d.now()
	}
	var lat, lng sql.NullFloat64
	if v.HasCoords {
		lat = sql.NullFloat64{Float64: v.Lat, Valid: true}
		lng = sql.NullFloat64{Float64: v.Lng, Valid: true}
	}
	_, err := d.Pool.ExecContext(ctx, `
		INSERT INTO visitors (hashed_ip, user_agent, path, timestamp, country, lat, lng)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		v.HashedIP, v.UserAgent, v.Path, formatTime(v.Timestamp), v.Country, lat, lng)
	if err != nil {
		return fmt.Errorf("insert visitor: %w", err)
	}
	return nil
}

// Stats gathers the dashboard numbers. "Today" starts at midnight UTC.
func (d *DB) Stats(ctx context.Context) (*Stats, error) {
	now := d.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	week := now.Add(-7 * 24 * time.Hour)

	stats := &Stats{}
	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalVisitors, `SELECT COUNT(*) FROM visitors`, nil},
		{&stats.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil},
		{&stats.VisitorsToday, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{formatTime(today)}},
		{&stats.VisitorsThisWeek, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{formatTime(week)}},
	}
	for _, c := range counts {
		if err := d.Pool.QueryRowContext(ctx, c.query, c.args...).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("visitor stats: %w", err)
		}
	}

	top, err := d.TopPaths(ctx, 10)
	if err != nil {
		return nil, err
	}
	stats.TopPaths = top

	recent, err := d.RecentVisitors(ctx, 10)
	if err != nil {
		return nil, err
	}
	stats.RecentVisitors = recent
	return stats, nil
}

func (d *DB) TopPaths(ctx context.Context, n int) ([]PathStat, error) {
	rows, err := d.Pool.QueryContext(ctx, `
		SELECT path, COUNT(*) AS views
		FROM visitors
		GROUP BY path
		ORDER BY views DESC, path ASC
		LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("top paths: %w", err)
	}
	defer rows.Close()

	var out []PathStat
	for rows.Next() {
		var ps PathStat
		if err := rows.Scan(&ps.Path, &ps.Views); err != nil {
			return nil, fmt.Errorf("scan top path: %w", err)
		}
		out = append(out, ps)
	}
	return out, rows.Err()
}

// RecentVisitors returns the newest n visits, newest first.
func (d *DB) RecentVisitors(ctx context.Context, n int) ([]Visit, error) {
	rows, err := d.Pool.QueryContext(ctx, `
		SELECT id, hashed_ip, user_agent, path, timestamp, country, lat, lng
		FROM visitors
		ORDER BY timestamp DESC, id DESC
		LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("recent visitors: %w", err)
	}
	defer rows.Close()

	var out []Visit
	for rows.Next() {
		var (
			v        Visit
			ts       string
			lat, lng sql.NullFloat64
		)
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &ts, &v.Country, &lat, &lng); err != nil {
			return nil, fmt.Errorf("scan visitor: %w", err)
		}
		v.Timestamp = parseTime(ts)
		if lat.Valid && lng.Valid {
			v.HasCoords, v.Lat, v.Lng = true, lat.Float64, lng.Float64
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// CleanupOlderThan deletes visits older than age and reports how many went.
func (d *DB) CleanupOlderThan(ctx context.Context, age time.Duration) (int64, error) {
	cutoff := formatTime(d.now().Add(-age))
	res, err := d.Pool.ExecContext(ctx, `DELETE FROM visitors WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleanup visitors: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// VisitPoints groups located visits since the given time by coordinate,
// weighting each point by its visit count.
func (d *DB) VisitPoints(ctx context.Context, since time.Time) ([]geo.Point, error) {
	rows, err := d.Pool.QueryContext(ctx, `
		SELECT lat, lng, COUNT(*)
		FROM visitors
		WHERE lat IS NOT NULL AND lng IS NOT NULL AND timestamp >= ?
		GROUP BY lat, lng
		ORDER BY lat, lng`, formatTime(since))
	if err != nil {
		return nil, fmt.Errorf("visit points: %w", err)
	}
	defer rows.Close()

	var out []geo.Point
	for rows.Next() {
		var (
			p geo.Point
			n int64
		)
		if err := rows.Scan(&p.Lat, &p.Lng, &n); err != nil {
			return nil, fmt.Errorf("scan visit point: %w", err)
		}
		p.Weight = float64(n)
		out = append(out, p)
	}
	return out, rows.Err()
}
