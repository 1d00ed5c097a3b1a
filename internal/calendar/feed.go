package calendar

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/emersion/go-ical"

	"github.com/firmdesk/scheduling-backend/internal/booking"
)

// feedPageSize bounds one feed render. Clients with more future bookings
// than this see the nearest ones first.
const feedPageSize = 500

const productID = "-//firmdesk//scheduling-backend//EN"

// Feed renders a client's bookings as an iCalendar document. Occurrences
// of a recurring series are emitted as individual events because each one
// is committed (and cancellable) on its own.
type Feed struct {
	bookings booking.Service
}

func NewFeed(bookings booking.Service) *Feed {
	return &Feed{bookings: bookings}
}

// Render returns the ICS document for the given client's non-cancelled
// bookings, ordered by start time.
func (f *Feed) Render(ctx context.Context, clientID string) ([]byte, error) {
	list, _, err := f.bookings.List(ctx, booking.Filter{
		ClientID:         clientID,
		ExcludeCancelled: true,
		Page:             1,
		PageSize:         feedPageSize,
		SortBy:           "start_time",
		SortOrder:        "asc",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for feed: %w", err)
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	now := time.Now().UTC()
	for _, b := range list {
		cal.Children = append(cal.Children, newEvent(b, now).Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("failed to encode calendar: %w", err)
	}
	return buf.Bytes(), nil
}

func newEvent(b *booking.Booking, stamp time.Time) *ical.Event {
	ev := ical.NewEvent()
	ev.Props.SetText(ical.PropUID, b.ID+"@firmdesk")
	ev.Props.SetDateTime(ical.PropDateTimeStamp, stamp)
	ev.Props.SetDateTime(ical.PropDateTimeStart, b.StartTime.UTC())
	ev.Props.SetDateTime(ical.PropDateTimeEnd, b.EndTime.UTC())
	ev.Props.SetText(ical.PropSummary, summaryFor(b))
	ev.Props.SetText(ical.PropStatus, statusFor(b.Status))
	if b.Notes != "" {
		ev.Props.SetText(ical.PropDescription, b.Notes)
	}
	if b.SeriesID != nil {
		// Occurrences carry their series so calendar clients can group
		// them, even though each event stands alone.
		ev.Props.SetText("X-FIRMDESK-SERIES-ID", *b.SeriesID)
	}
	return ev
}

func summaryFor(b *booking.Booking) string {
	if b.StaffName != nil && *b.StaffName != "" {
		return fmt.Sprintf("%s with %s", b.ServiceName, *b.StaffName)
	}
	return b.ServiceName
}

func statusFor(s booking.Status) string {
	if s == booking.StatusConfirmed {
		return "CONFIRMED"
	}
	return "TENTATIVE"
}
