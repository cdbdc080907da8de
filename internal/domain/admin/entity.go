package admin

import (
	"github.com/google/uuid"
)

var accountNamespace = uuid.MustParse("6f1c1f7e-3f5b-4b7e-9a51-0b8f0d3e2a10")

// Account is the single operator allowed to manage settings and book directly.
// Its secret is either a bcrypt hash or, for legacy deployments, a plain password.
type Account struct {
	id         uuid.UUID
	username   string
	secret     string
	secretHash bool
}

func NewAccount(username, secret string, secretIsHash bool) Account {
	return Account{
		id:         AccountID(username),
		username:   username,
		secret:     secret,
		secretHash: secretIsHash,
	}
}

// AccountID is stable across restarts so issued sessions stay valid.
func AccountID(username string) uuid.UUID {
	return uuid.NewSHA1(accountNamespace, []byte(username))
}

func (a Account) ID() uuid.UUID {
	return a.id
}

func (a Account) Username() string {
	return a.username
}

func (a Account) Secret() string {
	return a.secret
}

func (a Account) SecretIsHash() bool {
	return a.secretHash
}

func (a Account) Role() Role {
	return RoleAdmin
}
