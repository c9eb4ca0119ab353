package user_management

import (
	"context"

	"github.com/learnhub/learnhub/application/port/inbound"
	"github.com/learnhub/learnhub/application/port/outbound"
	domainerr "github.com/learnhub/learnhub/domain/error"
	"github.com/learnhub/learnhub/domain/valueobject"
)

type ListUsersUseCase struct {
	userRepo outbound.UserRepository
}

func NewListUsersUseCase(userRepo outbound.UserRepository) *ListUsersUseCase {
	return &ListUsersUseCase{
		userRepo: userRepo,
	}
}

// Execute lists learner accounts only; admins are never listed.
func (uc *ListUsersUseCase) Execute(ctx context.Context, req inbound.ListUsersRequest) (*inbound.ListUsersResponse, error) {
	var offset int
	req.Page, req.Limit, offset = Paginate(req.Page, req.Limit)

	users, total, err := uc.userRepo.FindAll(ctx, offset, req.Limit, outbound.UserFilters{Role: valueobject.RoleUser})
	if err != nil {
		return nil, domainerr.ErrDownstream("list users", err)
	}

	items := make([]inbound.GetUserDetailResponse, len(users))
	for i, user := range users {
		items[i] = *toUserDetail(user)
	}

	return &inbound.ListUsersResponse{
		Users:       items,
		TotalPages:  TotalPages(total, req.Limit),
		CurrentPage: req.Page,
	}, nil
}

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
	// MaxPage bounds (page-1)*limit well inside int range.
	MaxPage = 100000
)

// Paginate applies the default and maximum page size, clamps page to [1, MaxPage] and
// returns the row offset of that page.
func Paginate(page, limit int) (int, int, int) {
	if page <= 0 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit, (page - 1) * limit
}

// TotalPages rounds up; an empty collection has zero pages.
func TotalPages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
