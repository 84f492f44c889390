package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/ogurasousui/codex-graphql-crud/internal/core/branch"
	pgdb "github.com/ogurasousui/codex-graphql-crud/internal/platform/db/postgres"
)

const branchColumns = `id, company_id, title, city, country, created_at, updated_at`

// BranchRepository は PostgreSQL を利用した支社永続化の実装です。
type BranchRepository struct {
	pool pgdb.Queryer
}

// NewBranchRepository は BranchRepository を生成します。
func NewBranchRepository(pool pgdb.Queryer) *BranchRepository {
	return &BranchRepository{pool: pool}
}

// FindByID は ID で支社を取得します。
func (r *BranchRepository) FindByID(ctx context.Context, id int64) (*branch.Branch, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+branchColumns+`
          FROM branches
         WHERE id = $1
         LIMIT 1
    `, id)

	return scanBranch(row)
}

// List は全支社を ID 順で取得します。
func (r *BranchRepository) List(ctx context.Context) ([]*branch.Branch, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT `+branchColumns+`
          FROM branches
         ORDER BY id
    `)
	if err != nil {
		return nil, err
	}
	return collectBranches(rows)
}

// ListByCompany は会社に属する支社を ID 順で取得します。
func (r *BranchRepository) ListByCompany(ctx context.Context, companyID int64) ([]*branch.Branch, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT `+branchColumns+`
          FROM branches
         WHERE company_id = $1
         ORDER BY id
    `, companyID)
	if err != nil {
		return nil, err
	}
	return collectBranches(rows)
}

func collectBranches(rows pgx.Rows) ([]*branch.Branch, error) {
	defer rows.Close()

	branches := make([]*branch.Branch, 0)
	for rows.Next() {
		b, err := scanBranch(rows)
		if err != nil {
			return nil, err
		}
		branches = append(branches, b)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return branches, nil
}

func scanBranch(row pgx.Row) (*branch.Branch, error) {
	var (
		id, companyID        int64
		title                string
		city, country        sql.NullString
		createdAt, updatedAt time.Time
	)

	if err := row.Scan(&id, &companyID, &title, &city, &country, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, branch.ErrBranchNotFound
		}
		return nil, err
	}

	return &branch.Branch{
		ID:        id,
		CompanyID: companyID,
		Title:     title,
		City:      stringPtr(city),
		Country:   stringPtr(country),
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}
