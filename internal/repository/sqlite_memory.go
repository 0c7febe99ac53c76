package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/chronos/internal/db"
	"github.com/alexanderramin/chronos/internal/domain"
)

// SQLiteMemoryRepo implements MemoryRepo using a SQLite database.
type SQLiteMemoryRepo struct {
	conn db.DBTX
}

// NewSQLiteMemoryRepo creates a new SQLiteMemoryRepo.
func NewSQLiteMemoryRepo(conn db.DBTX) *SQLiteMemoryRepo {
	return &SQLiteMemoryRepo{conn: conn}
}

func (r *SQLiteMemoryRepo) CreateGuideline(ctx context.Context, g *domain.Guideline) error {
	query := `INSERT INTO guidelines (id, rule, priority, active, created_at) VALUES (?, ?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query,
		g.ID,
		g.Rule,
		g.Priority,
		boolToInt(g.Active),
		g.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting guideline: %w", err)
	}
	return nil
}

func (r *SQLiteMemoryRepo) ListGuidelines(ctx context.Context, activeOnly bool) ([]*domain.Guideline, error) {
	query := `SELECT id, rule, priority, active, created_at FROM guidelines`
	if activeOnly {
		query += ` WHERE active = 1`
	}
	query += ` ORDER BY priority DESC, created_at`
	rows, err := r.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing guidelines: %w", err)
	}
	defer rows.Close()

	var guidelines []*domain.Guideline
	for rows.Next() {
		var g domain.Guideline
		var activeInt int
		var createdAtStr string
		if err := rows.Scan(&g.ID, &g.Rule, &g.Priority, &activeInt, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning guideline row: %w", err)
		}
		g.Active = intToBool(activeInt)
		g.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		guidelines = append(guidelines, &g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating guidelines: %w", err)
	}
	return guidelines, nil
}

func (r *SQLiteMemoryRepo) SetGuidelineActive(ctx context.Context, id string, active bool) error {
	res, err := r.conn.ExecContext(ctx, `UPDATE guidelines SET active = ? WHERE id = ?`, boolToInt(active), id)
	if err != nil {
		return fmt.Errorf("setting guideline active: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("guideline: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteMemoryRepo) UpsertFact(ctx context.Context, f *domain.MemoryFact) error {
	query := `INSERT INTO memory_facts (category, key, value, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(category, key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`
	_, err := r.conn.ExecContext(ctx, query,
		f.Category,
		f.Key,
		f.Value,
		f.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting memory fact: %w", err)
	}
	return nil
}

func (r *SQLiteMemoryRepo) GetFact(ctx context.Context, category, key string) (*domain.MemoryFact, error) {
	query := `SELECT category, key, value, updated_at FROM memory_facts WHERE category = ? AND key = ?`
	var f domain.MemoryFact
	var updatedAtStr string
	err := r.conn.QueryRowContext(ctx, query, category, key).Scan(&f.Category, &f.Key, &f.Value, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("memory fact: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning memory fact: %w", err)
	}
	f.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &f, nil
}

func (r *SQLiteMemoryRepo) ListFacts(ctx context.Context, category string) ([]*domain.MemoryFact, error) {
	query := `SELECT category, key, value, updated_at FROM memory_facts WHERE category = ? ORDER BY key`
	rows, err := r.conn.QueryContext(ctx, query, category)
	if err != nil {
		return nil, fmt.Errorf("listing memory facts: %w", err)
	}
	defer rows.Close()

	var facts []*domain.MemoryFact
	for rows.Next() {
		var f domain.MemoryFact
		var updatedAtStr string
		if err := rows.Scan(&f.Category, &f.Key, &f.Value, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("scanning memory fact row: %w", err)
		}
		f.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing updated_at: %w", err)
		}
		facts = append(facts, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating memory facts: %w", err)
	}
	return facts, nil
}
