package queries

//go:generate mockgen -source=admin.go -destination=../../mock/queries/admin_mock.go -package=queriesmock

import (
	"context"

	"turnos-service/internal/domain/admin"
	"turnos-service/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrAccountNotFound = errs.New("account not found")

type AccountView struct {
	ID       uuid.UUID
	Username string
	Role     admin.Role
}

type AdminQueries interface {
	GetCurrentAccount(ctx context.Context, accountID uuid.UUID) (*AccountView, error)
}

type adminQueriesImpl struct {
	account admin.Account
}

func NewAdminQueries(account admin.Account) AdminQueries {
	return &adminQueriesImpl{account: account}
}

// GetCurrentAccount fails once the configured username changes, which retires old sessions.
func (q *adminQueriesImpl) GetCurrentAccount(_ context.Context, accountID uuid.UUID) (*AccountView, error) {
	if accountID != q.account.ID() {
		return nil, ErrAccountNotFound
	}
	return &AccountView{
		ID:       q.account.ID(),
		Username: q.account.Username(),
		Role:     q.account.Role(),
	}, nil
}
