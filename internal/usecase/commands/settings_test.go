//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"turnos-service/internal/domain/booking"
	reqdto "turnos-service/internal/handler/dto/request"
	"turnos-service/internal/infra"
	sharedmock "turnos-service/internal/mock/shared"
	"turnos-service/internal/pkg/errs"
	"turnos-service/internal/pkg/ptr"
	"turnos-service/internal/testutil/builder"
	"turnos-service/internal/usecase/commands"
	"turnos-service/internal/usecase/shared"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestSettingsCommandsUpdate(t *testing.T) {
	t.Run("forwards only the present fields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := sharedmock.NewMockSettingsStore(ctrl)

		want := builder.NewPolicyBuilder().WithHours(9, 18).Build()
		store.EXPECT().Set(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p booking.PolicyPatch) (booking.Policy, error) {
				expected := booking.PolicyPatch{StartHour: ptr.Of(9), EndHour: ptr.Of(18)}
				if diff := cmp.Diff(expected, p); diff != "" {
					t.Errorf("patch mismatch (-want +got):\n%s", diff)
				}
				return want, nil
			}).Times(1)

		got, err := commands.NewSettingsCommands(store).Update(context.Background(),
			reqdto.UpdateSettingsRequest{StartHour: ptr.Of(9), EndHour: ptr.Of(18)})
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("invalid merge result", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := sharedmock.NewMockSettingsStore(ctrl)
		store.EXPECT().Set(gomock.Any(), gomock.Any()).
			Return(booking.Policy{}, errs.Wrap(booking.ErrInvalidPolicy, "start hour must be before end hour")).Times(1)

		_, err := commands.NewSettingsCommands(store).Update(context.Background(),
			reqdto.UpdateSettingsRequest{StartHour: ptr.Of(21)})
		assert.True(t, errs.Is(err, commands.ErrInvalidSettings), "got %v", err)
	})

	t.Run("concurrent writers exhausted the retries", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := sharedmock.NewMockSettingsStore(ctrl)
		store.EXPECT().Set(gomock.Any(), gomock.Any()).
			Return(booking.Policy{}, infra.Error{Kind: infra.KindConflict}).Times(1)

		_, err := commands.NewSettingsCommands(store).Update(context.Background(),
			reqdto.UpdateSettingsRequest{Enabled: ptr.Of(false)})
		assert.True(t, errs.Is(err, shared.ErrConflict), "got %v", err)
		assert.False(t, errs.Is(err, shared.ErrSettingsUnavailable))
	})

	t.Run("store failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := sharedmock.NewMockSettingsStore(ctrl)
		store.EXPECT().Set(gomock.Any(), gomock.Any()).Return(booking.Policy{}, errors.New("redis gone")).Times(1)

		_, err := commands.NewSettingsCommands(store).Update(context.Background(),
			reqdto.UpdateSettingsRequest{Enabled: ptr.Of(false)})
		assert.True(t, errs.Is(err, shared.ErrSettingsUnavailable), "got %v", err)
	})
}
