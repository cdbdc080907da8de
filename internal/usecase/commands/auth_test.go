//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"turnos-service/internal/domain/admin"
	reqdto "turnos-service/internal/handler/dto/request"
	"turnos-service/internal/pkg/clock"
	"turnos-service/internal/pkg/errs"
	"turnos-service/internal/pkg/jwt"
	"turnos-service/internal/pkg/password"
	"turnos-service/internal/usecase/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthCommandsLogin(t *testing.T) {
	jwtService := jwt.NewService("test-jwt-secret", time.Hour, clock.NewRealClock())
	hash, err := password.HashPassword("s3cret")
	require.NoError(t, err)

	testCases := []struct {
		name    string
		account admin.Account
		req     reqdto.LoginRequest
		wantErr error
	}{
		{
			name:    "plain password",
			account: admin.NewAccount("admin", "admin123", false),
			req:     reqdto.LoginRequest{Username: "admin", Password: "admin123"},
		},
		{
			name:    "bcrypt hash",
			account: admin.NewAccount("admin", hash, true),
			req:     reqdto.LoginRequest{Username: "admin", Password: "s3cret"},
		},
		{
			name:    "wrong password",
			account: admin.NewAccount("admin", "admin123", false),
			req:     reqdto.LoginRequest{Username: "admin", Password: "admin1234"},
			wantErr: commands.ErrInvalidCredentials,
		},
		{
			name:    "wrong username",
			account: admin.NewAccount("admin", "admin123", false),
			req:     reqdto.LoginRequest{Username: "root", Password: "admin123"},
			wantErr: commands.ErrInvalidCredentials,
		},
		{
			name:    "hash compared as plain text does not match",
			account: admin.NewAccount("admin", hash, true),
			req:     reqdto.LoginRequest{Username: "admin", Password: hash},
			wantErr: commands.ErrInvalidCredentials,
		},
		{
			name:    "empty password",
			account: admin.NewAccount("admin", "admin123", false),
			req:     reqdto.LoginRequest{Username: "admin"},
			wantErr: commands.ErrAuthenticationFailed,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := commands.NewAuthCommands(tc.account, jwtService).Login(context.Background(), tc.req)
			if tc.wantErr != nil {
				assert.True(t, errs.Is(err, tc.wantErr), "got %v", err)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)

			claims, err := jwtService.ValidateToken(result.AccessToken)
			require.NoError(t, err)
			assert.Equal(t, tc.account.ID(), claims.AccountID)
			assert.Equal(t, admin.RoleAdmin.String(), claims.Role)
		})
	}
}
