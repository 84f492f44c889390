package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/ogurasousui/codex-graphql-crud/internal/core/employee"
	pgdb "github.com/ogurasousui/codex-graphql-crud/internal/platform/db/postgres"
)

// EmployeeRepository は PostgreSQL を利用した社員永続化の実装です。
type EmployeeRepository struct {
	pool pgdb.Queryer
}

// NewEmployeeRepository は EmployeeRepository を生成します。
func NewEmployeeRepository(pool pgdb.Queryer) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

// List は全社員を ID 順で取得します。
func (r *EmployeeRepository) List(ctx context.Context) ([]*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT id, branch_id, company_id, first_name, last_name, role, created_at, updated_at
          FROM employees
         ORDER BY id
    `)
	if err != nil {
		return nil, err
	}
	return collectEmployees(rows)
}

// ListByBranch は支社に所属する社員を ID 順で取得します。
func (r *EmployeeRepository) ListByBranch(ctx context.Context, branchID int64) ([]*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT id, branch_id, company_id, first_name, last_name, role, created_at, updated_at
          FROM employees
         WHERE branch_id = $1
         ORDER BY id
    `, branchID)
	if err != nil {
		return nil, err
	}
	return collectEmployees(rows)
}

func collectEmployees(rows pgx.Rows) ([]*employee.Employee, error) {
	defer rows.Close()

	employees := make([]*employee.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return employees, nil
}

func scanEmployee(row pgx.Row) (*employee.Employee, error) {
	var (
		id, branchID, companyID int64
		firstName, lastName     string
		role                    sql.NullString
		createdAt, updatedAt    time.Time
	)

	if err := row.Scan(&id, &branchID, &companyID, &firstName, &lastName, &role, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	return &employee.Employee{
		ID:        id,
		BranchID:  branchID,
		CompanyID: companyID,
		FirstName: firstName,
		LastName:  lastName,
		Role:      stringPtr(role),
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}
