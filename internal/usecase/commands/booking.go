package commands

//go:generate mockgen -source=booking.go -destination=../../mock/commands/booking_mock.go -package=commandsmock

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"turnos-service/internal/domain/booking"
	reqdto "turnos-service/internal/handler/dto/request"
	"turnos-service/internal/pkg/civiltime"
	"turnos-service/internal/pkg/clock"
	"turnos-service/internal/pkg/config"
	"turnos-service/internal/pkg/errs"
	"turnos-service/internal/usecase/shared"

	"golang.org/x/sync/errgroup"
)

const (
	opSubmit  = "submit"
	opConfirm = "confirm"
	opBook    = "book"
)

type SubmitResult struct {
	Token      string
	ConfirmURL string
}

type ConfirmationResult struct {
	EventID string
}

type BookingCommands interface {
	// SubmitRequest validates a public request and mails the administrator a confirmation link.
	// Nothing is written to the calendar.
	SubmitRequest(ctx context.Context, req reqdto.SubmitBookingRequest) (*SubmitResult, error)
	// Confirm redeems a confirmation token and writes the event to the calendar.
	Confirm(ctx context.Context, req reqdto.ConfirmBookingRequest) (*ConfirmationResult, error)
	// Book writes an administrator-entered appointment straight to the calendar.
	Book(ctx context.Context, req reqdto.DirectBookingRequest) (*ConfirmationResult, error)
}

type bookingCommandsImpl struct {
	settings   shared.SettingsStore
	gateway    shared.AvailabilityGateway
	dispatcher NotificationDispatcher
	composer   MessageComposer
	codec      TokenCodec
	publisher  EventPublisher
	recorder   OutcomeRecorder
	clock      clock.Clock
	cfg        config.BookingConfig
	zone       civiltime.Zone
}

func NewBookingCommands(
	settings shared.SettingsStore,
	gateway shared.AvailabilityGateway,
	dispatcher NotificationDispatcher,
	composer MessageComposer,
	codec TokenCodec,
	publisher EventPublisher,
	recorder OutcomeRecorder,
	clk clock.Clock,
	cfg config.BookingConfig,
) BookingCommands {
	return &bookingCommandsImpl{
		settings:   settings,
		gateway:    gateway,
		dispatcher: dispatcher,
		composer:   composer,
		codec:      codec,
		publisher:  publisher,
		recorder:   recorder,
		clock:      clk,
		cfg:        cfg,
		zone:       civiltime.Argentina,
	}
}

func (b *bookingCommandsImpl) SubmitRequest(ctx context.Context, req reqdto.SubmitBookingRequest) (*SubmitResult, error) {
	r, err := req.ToDomain()
	if err != nil {
		return nil, b.fail(opSubmit, OutcomeRejected, errs.Mark(err, shared.ErrValidation))
	}

	policy, err := b.settings.Get(ctx)
	if err != nil {
		return nil, b.fail(opSubmit, OutcomeFailed, errs.Mark(err, shared.ErrSettingsUnavailable))
	}
	if err := policy.Admits(r, b.zone); err != nil {
		return nil, b.fail(opSubmit, OutcomeRejected, errs.Mark(err, shared.ErrValidation))
	}

	adminEmail, err := b.adminEmail(policy)
	if err != nil {
		return nil, b.fail(opSubmit, OutcomeFailed, err)
	}

	plaintext, err := r.Payload().Marshal()
	if err != nil {
		return nil, b.fail(opSubmit, OutcomeFailed, errs.Wrap(err, "marshal booking payload"))
	}
	token, err := b.codec.Encode(plaintext)
	if err != nil {
		return nil, b.fail(opSubmit, OutcomeFailed, errs.Wrap(err, "seal booking payload"))
	}
	confirmURL := b.confirmURL(token)

	msg, err := b.composer.RequestReceived(r, adminEmail, confirmURL)
	if err != nil {
		return nil, b.fail(opSubmit, OutcomeFailed, errs.Mark(err, shared.ErrDispatch))
	}
	if err := b.dispatcher.Send(ctx, msg); err != nil {
		return nil, b.fail(opSubmit, OutcomeFailed, errs.Mark(err, shared.ErrDispatch))
	}

	slog.InfoContext(ctx, "booking request submitted",
		"slot", r.Slot(b.zone).String(), "email", r.Email().Value())
	b.recorder.Record(opSubmit, OutcomeRequested)

	return &SubmitResult{Token: token, ConfirmURL: confirmURL}, nil
}

func (b *bookingCommandsImpl) Confirm(ctx context.Context, req reqdto.ConfirmBookingRequest) (*ConfirmationResult, error) {
	plaintext, err := b.codec.Decode(req.Data)
	if err != nil {
		return nil, b.fail(opConfirm, OutcomeRejected, errs.Mark(err, shared.ErrInvalidToken))
	}
	payload, err := booking.UnmarshalPayload(plaintext)
	if err != nil {
		return nil, b.fail(opConfirm, OutcomeRejected, errs.Mark(err, shared.ErrCorruptPayload))
	}
	r, err := booking.FromPayload(payload)
	if err != nil {
		return nil, b.fail(opConfirm, OutcomeRejected, errs.Mark(err, shared.ErrCorruptPayload))
	}

	policy, err := b.settings.Get(ctx)
	if err != nil {
		return nil, b.fail(opConfirm, OutcomeFailed, errs.Mark(err, shared.ErrSettingsUnavailable))
	}
	// Day and hour are only checked at submit time.
	if !policy.Enabled {
		return nil, b.fail(opConfirm, OutcomeRejected, errs.Mark(booking.ErrBookingsDisabled, shared.ErrValidation))
	}

	slot := r.Slot(b.zone)
	if err := b.ensureAvailable(ctx, opConfirm, slot); err != nil {
		return nil, err
	}

	adminEmail, err := b.adminEmail(policy)
	if err != nil {
		return nil, b.fail(opConfirm, OutcomeFailed, err)
	}

	eventID, err := b.gateway.CreateEvent(ctx, booking.Event{
		Title:     r.Title(),
		Range:     slot,
		Attendees: []string{adminEmail, r.Email().Value()},
	})
	if err != nil {
		return nil, b.fail(opConfirm, OutcomeFailed, errs.Mark(err, shared.ErrUpstream))
	}

	slog.InfoContext(ctx, "booking confirmed", "event_id", eventID, "slot", slot.String())
	b.recorder.Record(opConfirm, OutcomeCommitted)

	// The event exists from here on; nothing below may fail the call.
	detached := context.WithoutCancel(ctx)
	b.notifyConfirmed(detached, r, adminEmail, eventID)
	b.publish(detached, BookingConfirmed{
		EventID: eventID,
		Title:   r.Title(),
		Start:   slot.Start(),
		End:     slot.End(),
		Email:   r.Email().Value(),
	})

	return &ConfirmationResult{EventID: eventID}, nil
}

func (b *bookingCommandsImpl) Book(ctx context.Context, req reqdto.DirectBookingRequest) (*ConfirmationResult, error) {
	r, err := req.ToDomain()
	if err != nil {
		return nil, b.fail(opBook, OutcomeRejected, errs.Mark(err, shared.ErrValidation))
	}

	policy, err := b.settings.Get(ctx)
	if err != nil {
		return nil, b.fail(opBook, OutcomeFailed, errs.Mark(err, shared.ErrSettingsUnavailable))
	}
	if err := policy.Admits(r, b.zone); err != nil {
		return nil, b.fail(opBook, OutcomeRejected, errs.Mark(err, shared.ErrValidation))
	}

	slot := r.Slot(b.zone)
	if err := b.ensureAvailable(ctx, opBook, slot); err != nil {
		return nil, err
	}

	var attendees []string
	if policy.AdminNotifyEmail != "" {
		attendees = []string{policy.AdminNotifyEmail}
	}
	eventID, err := b.gateway.CreateEvent(ctx, booking.Event{Title: r.Title(), Range: slot, Attendees: attendees})
	if err != nil {
		return nil, b.fail(opBook, OutcomeFailed, errs.Mark(err, shared.ErrUpstream))
	}

	slog.InfoContext(ctx, "booking created by administrator", "event_id", eventID, "slot", slot.String())
	b.recorder.Record(opBook, OutcomeCommitted)

	b.publish(context.WithoutCancel(ctx), BookingConfirmed{
		EventID: eventID,
		Title:   r.Title(),
		Start:   slot.Start(),
		End:     slot.End(),
		Direct:  true,
	})

	return &ConfirmationResult{EventID: eventID}, nil
}

func (b *bookingCommandsImpl) ensureAvailable(ctx context.Context, op string, slot booking.TimeRange) error {
	available, err := b.gateway.IsAvailable(ctx, slot)
	if err != nil {
		return b.fail(op, OutcomeFailed, errs.Mark(err, shared.ErrUpstream))
	}
	if !available {
		slog.InfoContext(ctx, "slot already taken", "slot", slot.String())
		return b.fail(op, OutcomeConflict, errs.Wrapf(shared.ErrConflict, "slot %s", slot))
	}
	return nil
}

func (b *bookingCommandsImpl) adminEmail(policy booking.Policy) (string, error) {
	if policy.AdminNotifyEmail != "" {
		return policy.AdminNotifyEmail, nil
	}
	if b.cfg.DefaultAdminEmail != "" {
		return b.cfg.DefaultAdminEmail, nil
	}
	return "", shared.ErrAdminEmailNotConfigured
}

func (b *bookingCommandsImpl) confirmURL(token string) string {
	base := strings.TrimRight(b.cfg.BaseURL, "/")
	path := "/" + strings.TrimLeft(b.cfg.ConfirmPath, "/")
	return base + path + "?data=" + url.QueryEscape(token)
}

// notifyConfirmed mails the requester and the administrator. Failures are logged only.
func (b *bookingCommandsImpl) notifyConfirmed(ctx context.Context, r *booking.Request, adminEmail, eventID string) {
	recipients := []struct {
		to       string
		forAdmin bool
	}{
		{to: r.Email().Value()},
		{to: adminEmail, forAdmin: true},
	}

	var g errgroup.Group
	for _, rc := range recipients {
		g.Go(func() error {
			msg, err := b.composer.Confirmed(r, rc.to, rc.forAdmin)
			if err == nil {
				err = b.dispatcher.Send(ctx, msg)
			}
			if err != nil {
				slog.WarnContext(ctx, "confirmation email not delivered",
					"event_id", eventID, "to", rc.to, "error", err.Error())
			}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		slog.WarnContext(ctx, "booking confirmed but notifications failed", "event_id", eventID)
	}
}

func (b *bookingCommandsImpl) publish(ctx context.Context, event BookingConfirmed) {
	event.ConfirmedAt = b.clock.Now().UTC()
	if err := b.publisher.BookingConfirmed(ctx, event); err != nil {
		slog.WarnContext(ctx, "booking event not published", "event_id", event.EventID, "error", err.Error())
	}
}

func (b *bookingCommandsImpl) fail(op, outcome string, err error) error {
	b.recorder.Record(op, outcome)
	return err
}
