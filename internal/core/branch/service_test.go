package branch

import (
	"context"
	"errors"
	"testing"
)

type fakeRepo struct {
	branches []*Branch
}

func (r *fakeRepo) FindByID(_ context.Context, id int64) (*Branch, error) {
	for _, b := range r.branches {
		if b.ID == id {
			clone := *b
			return &clone, nil
		}
	}
	return nil, ErrBranchNotFound
}

func (r *fakeRepo) List(_ context.Context) ([]*Branch, error) {
	return r.branches, nil
}

func (r *fakeRepo) ListByCompany(_ context.Context, companyID int64) ([]*Branch, error) {
	var out []*Branch
	for _, b := range r.branches {
		if b.CompanyID == companyID {
			out = append(out, b)
		}
	}
	return out, nil
}

func newFakeRepo() *fakeRepo {
	city := "Osaka"
	return &fakeRepo{branches: []*Branch{
		{ID: 1, CompanyID: 10, Title: "HQ"},
		{ID: 2, CompanyID: 10, Title: "West", City: &city},
		{ID: 3, CompanyID: 20, Title: "Other"},
	}}
}

func TestService_ListBranches(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeRepo(), nil)

	branches, err := svc.ListBranches(context.Background())
	if err != nil {
		t.Fatalf("ListBranches returned error: %v", err)
	}

	if len(branches) != 3 {
		t.Fatalf("expected 3 branches, got %d", len(branches))
	}
}

func TestService_ListBranchesByCompany(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeRepo(), nil)

	branches, err := svc.ListBranchesByCompany(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListBranchesByCompany returned error: %v", err)
	}

	if len(branches) != 2 || branches[1].City == nil || *branches[1].City != "Osaka" {
		t.Fatalf("unexpected branches: %+v", branches)
	}

	if _, err := svc.ListBranchesByCompany(context.Background(), 0); !errors.Is(err, ErrInvalidCompanyID) {
		t.Fatalf("expected ErrInvalidCompanyID, got %v", err)
	}
}

func TestService_GetBranch(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeRepo(), nil)

	found, err := svc.GetBranch(context.Background(), 3)
	if err != nil {
		t.Fatalf("GetBranch returned error: %v", err)
	}
	if found.Title != "Other" {
		t.Fatalf("unexpected branch: %+v", found)
	}

	if _, err := svc.GetBranch(context.Background(), 99); !errors.Is(err, ErrBranchNotFound) {
		t.Fatalf("expected ErrBranchNotFound, got %v", err)
	}

	if _, err := svc.GetBranch(context.Background(), -1); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}
