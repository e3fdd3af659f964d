package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/roach88/gapp/internal/ir"
)

// Result is one cached CAS exchange.
type Result struct {
	Key      string // ir.RequestKey(Request)
	RunID    string // run that produced the response
	Request  []string
	Response []string
	Seq      int64 // insertion order, assigned by PutResult
	Duration time.Duration
}

// PutResult stores a result. Writing a key that already exists is a no-op.
// An empty Key is filled in from Request.
func (s *Store) PutResult(ctx context.Context, r Result) error {
	if r.Key == "" {
		r.Key = ir.RequestKey(r.Request)
	}
	if r.RunID == "" {
		return errors.New("put result: run id is required")
	}

	request, err := marshalLines(r.Request)
	if err != nil {
		return fmt.Errorf("put result: %w", err)
	}
	response, err := marshalLines(r.Response)
	if err != nil {
		return fmt.Errorf("put result: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO optimizations (request_key, run_id, request, response, seq, duration_ms)
		VALUES (?, ?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM optimizations), ?)
		ON CONFLICT(request_key) DO NOTHING
	`, r.Key, r.RunID, request, response, r.Duration.Milliseconds())
	if err != nil {
		return fmt.Errorf("put result: %w", err)
	}
	return nil
}

// LookupResult returns the cached result for key. The bool is false when
// nothing is cached.
func (s *Store) LookupResult(ctx context.Context, key string) (Result, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT request_key, run_id, request, response, seq, duration_ms
		FROM optimizations
		WHERE request_key = ?
	`, key)

	r, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Result{}, false, nil
	}
	if err != nil {
		return Result{}, false, fmt.Errorf("lookup result: %w", err)
	}
	return r, true, nil
}

// ListResults returns cached results in insertion order. An empty runID
// lists every run. Returns an empty slice, not nil, when nothing matches.
func (s *Store) ListResults(ctx context.Context, runID string) ([]Result, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT request_key, run_id, request, response, seq, duration_ms
		FROM optimizations
		WHERE ? = '' OR run_id = ?
		ORDER BY seq ASC, request_key COLLATE BINARY ASC
	`, runID, runID)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	results := []Result{}
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}
	return results, nil
}

// Purge deletes every cached result and returns how many were removed.
func (s *Store) Purge(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM optimizations`)
	if err != nil {
		return 0, fmt.Errorf("purge results: %w", err)
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanResult(row scanner) (Result, error) {
	var (
		r                 Result
		request, response []byte
		durationMS        int64
	)
	if err := row.Scan(&r.Key, &r.RunID, &request, &response, &r.Seq, &durationMS); err != nil {
		return Result{}, err
	}

	var err error
	if r.Request, err = unmarshalLines(request); err != nil {
		return Result{}, fmt.Errorf("scan result %s: request: %w", r.Key, err)
	}
	if r.Response, err = unmarshalLines(response); err != nil {
		return Result{}, fmt.Errorf("scan result %s: response: %w", r.Key, err)
	}
	r.Duration = time.Duration(durationMS) * time.Millisecond
	return r, nil
}

// marshalLines encodes lines as a JSON array of base64 strings. Lines are
// kept byte for byte, including invalid UTF-8 and non-NFC text.
func marshalLines(lines []string) ([]byte, error) {
	raw := make([][]byte, len(lines))
	for i, l := range lines {
		raw[i] = []byte(l)
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("marshal lines: %w", err)
	}
	return data, nil
}

func unmarshalLines(data []byte) ([]string, error) {
	var raw [][]byte
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal lines: %w", err)
	}
	lines := make([]string, len(raw))
	for i, b := range raw {
		lines[i] = string(b)
	}
	return lines, nil
}
