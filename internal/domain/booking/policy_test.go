//go:build unit

package booking_test

import (
	"testing"

	"turnos-service/internal/domain/booking"
	"turnos-service/internal/pkg/civiltime"
	"turnos-service/internal/pkg/ptr"
	"turnos-service/internal/testutil/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicyAdmits(t *testing.T) {
	testCases := []struct {
		name   string
		policy booking.Policy
		mutate func(*builder.BookingRequestBuilder)
		errIs  error
	}{
		{
			name:   "default policy admits a Tuesday afternoon",
			policy: builder.NewPolicyBuilder().Build(),
		},
		{
			name:   "disabled rejects regardless of slot",
			policy: builder.NewPolicyBuilder().Disabled().Build(),
			errIs:  booking.ErrBookingsDisabled,
		},
		{
			name:   "Monday is not allowed by default",
			policy: builder.NewPolicyBuilder().Build(),
			mutate: func(b *builder.BookingRequestBuilder) { b.Date = "2024-06-03" },
			errIs:  booking.ErrDayNotAllowed,
		},
		{
			name:   "Sunday allowed when configured",
			policy: builder.NewPolicyBuilder().WithDays(0).Build(),
			mutate: func(b *builder.BookingRequestBuilder) { b.Date = "2024-06-02" },
		},
		{
			name:   "start hour is inclusive",
			policy: builder.NewPolicyBuilder().Build(),
			mutate: func(b *builder.BookingRequestBuilder) { b.Time = "10:00" },
		},
		{
			name:   "before start hour",
			policy: builder.NewPolicyBuilder().Build(),
			mutate: func(b *builder.BookingRequestBuilder) { b.Time = "09:30" },
			errIs:  booking.ErrHourOutOfRange,
		},
		{
			name:   "last half hour before end is allowed",
			policy: builder.NewPolicyBuilder().Build(),
			mutate: func(b *builder.BookingRequestBuilder) { b.Time = "19:30" },
		},
		{
			name:   "end hour is exclusive",
			policy: builder.NewPolicyBuilder().Build(),
			mutate: func(b *builder.BookingRequestBuilder) { b.Time = "20:00" },
			errIs:  booking.ErrHourOutOfRange,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := builder.NewBookingRequestBuilder()
			if tc.mutate != nil {
				b.With(tc.mutate)
			}
			err := tc.policy.Admits(b.MustBuildDomain(), civiltime.Argentina)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPolicyApply(t *testing.T) {
	current := booking.DefaultPolicy("admin@example.com")

	testCases := []struct {
		name  string
		patch booking.PolicyPatch
		want  booking.Policy
	}{
		{
			name:  "empty patch keeps everything",
			patch: booking.PolicyPatch{},
			want:  current,
		},
		{
			name:  "only enabled changes",
			patch: booking.PolicyPatch{Enabled: ptr.Of(false)},
			want: booking.Policy{
				Enabled: false, StartHour: 10, EndHour: 20,
				AllowedDays: []int{2, 3, 4, 5, 6}, AdminNotifyEmail: "admin@example.com",
			},
		},
		{
			name: "days are sorted and de-duplicated",
			patch: booking.PolicyPatch{
				StartHour:   ptr.Of(9),
				AllowedDays: ptr.Of([]int{5, 1, 5, 3}),
			},
			want: booking.Policy{
				Enabled: true, StartHour: 9, EndHour: 20,
				AllowedDays: []int{1, 3, 5}, AdminNotifyEmail: "admin@example.com",
			},
		},
		{
			name:  "admin email can be cleared",
			patch: booking.PolicyPatch{AdminNotifyEmail: ptr.Of("")},
			want: booking.Policy{
				Enabled: true, StartHour: 10, EndHour: 20,
				AllowedDays: []int{2, 3, 4, 5, 6},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := current.Apply(tc.patch)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Policy mismatch (-want +got):\n%s", diff)
			}
		})
	}

	t.Run("does not alias the original", func(t *testing.T) {
		got := current.Apply(booking.PolicyPatch{})
		got.AllowedDays[0] = 0
		assert.Equal(t, 2, current.AllowedDays[0])
	})
}

func TestPolicyValidate(t *testing.T) {
	testCases := []struct {
		name    string
		policy  booking.Policy
		wantErr bool
	}{
		{name: "default", policy: booking.DefaultPolicy("")},
		{name: "full day", policy: builder.NewPolicyBuilder().WithHours(0, 23).Build()},
		{name: "start after end", policy: builder.NewPolicyBuilder().WithHours(20, 10).Build(), wantErr: true},
		{name: "equal hours", policy: builder.NewPolicyBuilder().WithHours(10, 10).Build(), wantErr: true},
		{name: "hour above 23", policy: builder.NewPolicyBuilder().WithHours(10, 24).Build(), wantErr: true},
		{name: "negative hour", policy: builder.NewPolicyBuilder().WithHours(-1, 10).Build(), wantErr: true},
		{name: "day 7", policy: builder.NewPolicyBuilder().WithDays(1, 7).Build(), wantErr: true},
		{name: "bad admin email", policy: builder.NewPolicyBuilder().WithAdminEmail("nope").Build(), wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.policy.Validate()
			if tc.wantErr {
				assert.ErrorIs(t, err, booking.ErrInvalidPolicy)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPolicyMerge(t *testing.T) {
	base := booking.DefaultPolicy("admin@example.com")

	t.Run("valid patch", func(t *testing.T) {
		got, err := base.Merge(booking.PolicyPatch{EndHour: ptr.Of(18)})
		require.NoError(t, err)
		assert.Equal(t, 18, got.EndHour)
		assert.Equal(t, base.StartHour, got.StartHour)
	})

	t.Run("invalid patch keeps the current policy", func(t *testing.T) {
		got, err := base.Merge(booking.PolicyPatch{StartHour: ptr.Of(21)})
		assert.ErrorIs(t, err, booking.ErrInvalidPolicy)
		assert.Equal(t, base, got)
	})
}
