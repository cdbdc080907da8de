package commands

//go:generate mockgen -source=auth.go -destination=../../mock/commands/auth_mock.go -package=commandsmock

import (
	"context"
	"crypto/subtle"
	"log/slog"

	"turnos-service/internal/domain/admin"
	reqdto "turnos-service/internal/handler/dto/request"
	"turnos-service/internal/pkg/errs"
	"turnos-service/internal/pkg/jwt"
	"turnos-service/internal/pkg/password"
)

var (
	ErrInvalidCredentials   = errs.New("invalid credentials")
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("token generation failed")
)

type LoginResult struct {
	Account     admin.Account
	AccessToken string
}

type AuthCommands interface {
	Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error)
}

type authCommandsImpl struct {
	account    admin.Account
	jwtService *jwt.Service
}

func NewAuthCommands(account admin.Account, jwtService *jwt.Service) AuthCommands {
	return &authCommandsImpl{
		account:    account,
		jwtService: jwtService,
	}
}

func (a *authCommandsImpl) Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error) {
	credentials, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	if err := a.verify(credentials); err != nil {
		slog.WarnContext(ctx, "admin login rejected", "username", credentials.Username())
		return nil, errs.Mark(err, ErrInvalidCredentials)
	}

	token, err := a.jwtService.GenerateToken(a.account)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	slog.InfoContext(ctx, "admin logged in", "account_id", a.account.ID())
	return &LoginResult{Account: a.account, AccessToken: token}, nil
}

// verify runs both comparisons regardless of the username outcome.
func (a *authCommandsImpl) verify(c admin.Credentials) error {
	userOK := subtle.ConstantTimeCompare([]byte(c.Username()), []byte(a.account.Username())) == 1

	var passErr error
	if a.account.SecretIsHash() {
		passErr = password.ComparePassword(a.account.Secret(), c.Password())
	} else {
		passErr = password.ComparePlain(a.account.Secret(), c.Password())
	}

	if !userOK {
		return admin.ErrInvalidPassword
	}
	if passErr != nil {
		return errs.Mark(passErr, admin.ErrInvalidPassword)
	}
	return nil
}
