//go:build unit

package booking_test

import (
	"testing"
	"time"

	"turnos-service/internal/domain/booking"
	"turnos-service/internal/pkg/civiltime"
	"turnos-service/internal/testutil/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.BookingRequestBuilder)
	errIs  error
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := builder.NewBookingRequestBuilder()
			if tc.mutate != nil {
				b.With(tc.mutate)
			}
			r, err := b.BuildDomain()
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				assert.Nil(t, r)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, r)
		})
	}
}

func TestNewRequest(t *testing.T) {
	t.Run("basic success", func(t *testing.T) {
		r, err := builder.NewBookingRequestBuilder().BuildDomain()
		require.NoError(t, err)

		assert.Equal(t, "Ana", r.FirstName())
		assert.Equal(t, "Gomez", r.LastName())
		assert.Equal(t, "ana@example.com", r.Email().Value())
		assert.Equal(t, "2024-06-04", r.Date().String())
		assert.Equal(t, "14:00", r.Time().String())
		assert.Equal(t, "Turno - Ana Gomez", r.Title())
	})

	t.Run("names", func(t *testing.T) {
		runCases(t, []testCase{
			{name: "trimmed names OK", mutate: func(b *builder.BookingRequestBuilder) { b.FirstName = "  Ana " }},
			{name: "empty first name NG", mutate: func(b *builder.BookingRequestBuilder) { b.FirstName = "" }, errIs: booking.ErrMissingField},
			{name: "blank last name NG", mutate: func(b *builder.BookingRequestBuilder) { b.LastName = "   " }, errIs: booking.ErrMissingField},
		})
	})

	t.Run("email", func(t *testing.T) {
		runCases(t, []testCase{
			{name: "subdomain OK", mutate: func(b *builder.BookingRequestBuilder) { b.Email = "ana@mail.example.com.ar" }},
			{name: "plus sign OK", mutate: func(b *builder.BookingRequestBuilder) { b.Email = "ana+turnos@example.com" }},
			{name: "empty NG", mutate: func(b *builder.BookingRequestBuilder) { b.Email = "" }, errIs: booking.ErrMissingField},
			{name: "no at NG", mutate: func(b *builder.BookingRequestBuilder) { b.Email = "ana.example.com" }, errIs: booking.ErrInvalidEmail},
			{name: "no tld NG", mutate: func(b *builder.BookingRequestBuilder) { b.Email = "ana@example" }, errIs: booking.ErrInvalidEmail},
			{name: "inner space NG", mutate: func(b *builder.BookingRequestBuilder) { b.Email = "ana gomez@example.com" }, errIs: booking.ErrInvalidEmail},
		})
	})

	t.Run("date and time", func(t *testing.T) {
		runCases(t, []testCase{
			{name: "half hour OK", mutate: func(b *builder.BookingRequestBuilder) { b.Time = "14:30" }},
			{name: "off grid NG", mutate: func(b *builder.BookingRequestBuilder) { b.Time = "14:15" }, errIs: booking.ErrOffGrid},
			{name: "bad time NG", mutate: func(b *builder.BookingRequestBuilder) { b.Time = "2pm" }, errIs: booking.ErrInvalidTime},
			{name: "missing time NG", mutate: func(b *builder.BookingRequestBuilder) { b.Time = "" }, errIs: booking.ErrMissingField},
			{name: "impossible date NG", mutate: func(b *builder.BookingRequestBuilder) { b.Date = "2024-02-30" }, errIs: booking.ErrInvalidDate},
			{name: "missing date NG", mutate: func(b *builder.BookingRequestBuilder) { b.Date = "" }, errIs: booking.ErrMissingField},
		})
	})
}

func TestSlot(t *testing.T) {
	r := builder.NewBookingRequestBuilder().MustBuildDomain()

	slot := r.Slot(civiltime.Argentina)

	assert.True(t, slot.Start().Equal(time.Date(2024, time.June, 4, 17, 0, 0, 0, time.UTC)))
	assert.Equal(t, 30*time.Minute, slot.Duration())
	assert.Equal(t, "[2024-06-04T17:00:00Z,2024-06-04T17:30:00Z)", slot.String())
}

func TestPayload(t *testing.T) {
	t.Run("serializes with legacy field names in order", func(t *testing.T) {
		r := builder.NewBookingRequestBuilder().MustBuildDomain()

		b, err := r.Payload().Marshal()
		require.NoError(t, err)
		assert.Equal(t,
			`{"nombre":"Ana","apellido":"Gomez","email":"ana@example.com","fecha":"2024-06-04","hora":"14:00"}`,
			string(b))
	})

	t.Run("does not escape html characters", func(t *testing.T) {
		r := builder.NewBookingRequestBuilder().With(func(b *builder.BookingRequestBuilder) {
			b.LastName = "Gomez & <Hijos>"
		}).MustBuildDomain()

		b, err := r.Payload().Marshal()
		require.NoError(t, err)
		assert.Contains(t, string(b), `"apellido":"Gomez & <Hijos>"`)
	})

	t.Run("round trip through FromPayload", func(t *testing.T) {
		want := builder.NewBookingRequestBuilder().MustBuildDomain()

		b, err := want.Payload().Marshal()
		require.NoError(t, err)
		p, err := booking.UnmarshalPayload(b)
		require.NoError(t, err)
		got, err := booking.FromPayload(p)
		require.NoError(t, err)

		if diff := cmp.Diff(want.Payload(), got.Payload()); diff != "" {
			t.Errorf("payload mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("legacy off grid times are accepted", func(t *testing.T) {
		p := builder.NewBookingRequestBuilder().BuildPayload()
		p.Time = "14:15"
		_, err := booking.FromPayload(p)
		assert.NoError(t, err)
	})

	t.Run("missing fields", func(t *testing.T) {
		for _, field := range []string{"nombre", "apellido", "email", "fecha", "hora"} {
			t.Run(field, func(t *testing.T) {
				p := builder.NewBookingRequestBuilder().BuildPayload()
				switch field {
				case "nombre":
					p.FirstName = ""
				case "apellido":
					p.LastName = ""
				case "email":
					p.Email = ""
				case "fecha":
					p.Date = ""
				case "hora":
					p.Time = ""
				}
				_, err := booking.FromPayload(p)
				assert.ErrorIs(t, err, booking.ErrIncompletePayload)
			})
		}
	})

	t.Run("not json", func(t *testing.T) {
		_, err := booking.UnmarshalPayload([]byte("\x00garbage"))
		assert.Error(t, err)
	})
}

func TestAdminRequest(t *testing.T) {
	r, err := booking.NewAdminRequest("Ana", "Gomez", "2024-06-04", "14:15")
	require.NoError(t, err)
	assert.True(t, r.Email().IsZero())
	assert.Equal(t, "Turno - Ana Gomez", r.Title())

	_, err = booking.NewAdminRequest("", "Gomez", "2024-06-04", "14:00")
	assert.ErrorIs(t, err, booking.ErrMissingField)
}

func TestNewTimeRange(t *testing.T) {
	start := time.Date(2024, time.June, 4, 17, 0, 0, 0, time.UTC)

	_, err := booking.NewTimeRange(start, start)
	assert.ErrorIs(t, err, booking.ErrInvalidRange)

	r, err := booking.NewTimeRange(start, start.Add(booking.SlotDuration))
	require.NoError(t, err)
	assert.Equal(t, booking.SlotDuration, r.Duration())
}

func TestSlotAt(t *testing.T) {
	t.Run("off grid is allowed", func(t *testing.T) {
		got, err := booking.SlotAt("2024-06-04", "14:15", civiltime.Argentina)
		require.NoError(t, err)
		assert.True(t, got.Start().Equal(time.Date(2024, time.June, 4, 17, 15, 0, 0, time.UTC)))
		assert.Equal(t, booking.SlotDuration, got.Duration())
	})

	t.Run("bad date", func(t *testing.T) {
		_, err := booking.SlotAt("2024-13-01", "14:00", civiltime.Argentina)
		assert.ErrorIs(t, err, booking.ErrInvalidDate)
	})

	t.Run("missing time", func(t *testing.T) {
		_, err := booking.SlotAt("2024-06-04", "", civiltime.Argentina)
		assert.ErrorIs(t, err, booking.ErrMissingField)
	})
}
