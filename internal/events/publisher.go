package events

import (
	"context"
	"errors"
)

type Publisher interface {
	PublishBookingEvent(ctx context.Context, event BookingEvent) error
}

// Fanout delivers each event to every publisher and joins their errors.
type Fanout []Publisher

func (f Fanout) PublishBookingEvent(ctx context.Context, event BookingEvent) error {
	var errs []error
	for _, p := range f {
		if p == nil {
			continue
		}
		if err := p.PublishBookingEvent(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Discard drops every event.
type Discard struct{}

func (Discard) PublishBookingEvent(context.Context, BookingEvent) error { return nil }
