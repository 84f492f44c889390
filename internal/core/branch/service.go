package branch

import (
	"context"
	"fmt"
)

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// UseCase は支社ユースケースの公開インターフェースです。
type UseCase interface {
	GetBranch(ctx context.Context, id int64) (*Branch, error)
	ListBranches(ctx context.Context) ([]*Branch, error)
	ListBranchesByCompany(ctx context.Context, companyID int64) ([]*Branch, error)
}

// Service は支社の参照系ユースケースです。
type Service struct {
	repo Repository
	tx   TransactionManager
}

// NewService は Service を生成します。
func NewService(repo Repository, tx TransactionManager) *Service {
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{repo: repo, tx: tx}
}

// GetBranch は ID で支社を取得します。
func (s *Service) GetBranch(ctx context.Context, id int64) (*Branch, error) {
	if id <= 0 {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var found *Branch
	err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.FindByID(txCtx, id)
		found = result
		return err
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// ListBranches は全支社を取得します。
func (s *Service) ListBranches(ctx context.Context) ([]*Branch, error) {
	var branches []*Branch
	err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.List(txCtx)
		branches = result
		return err
	})
	if err != nil {
		return nil, err
	}
	return branches, nil
}

// ListBranchesByCompany は会社に属する支社を取得します。
func (s *Service) ListBranchesByCompany(ctx context.Context, companyID int64) ([]*Branch, error) {
	if companyID <= 0 {
		return nil, fmt.Errorf("company id: %w", ErrInvalidCompanyID)
	}

	var branches []*Branch
	err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.ListByCompany(txCtx, companyID)
		branches = result
		return err
	})
	if err != nil {
		return nil, err
	}
	return branches, nil
}
