// Package calendar exports meetings as an iCalendar stream.
package calendar

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/emersion/go-ical"

	"agenda/internal/model"
)

const (
	prodID = "-//agenda//agenda console//EN"
	// floating local time, the store has no timezone
	floating = "20060102T150405"
)

// ErrNoMeetings is returned for an empty export; a VCALENDAR needs at least one event.
var ErrNoMeetings = errors.New("no meetings to export")

// Export writes one VEVENT per meeting. users supplies e-mail addresses for
// the organizer and attendees; names without a record get a urn:agenda:user: address.
func Export(w io.Writer, meetings []model.Meeting, users []model.User, stamp time.Time) error {
	if len(meetings) == 0 {
		return ErrNoMeetings
	}
	emails := make(map[string]string, len(users))
	for _, u := range users {
		emails[u.Name] = u.Email
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, prodID)

	for _, m := range meetings {
		ev := ical.NewEvent()
		ev.Props.SetText(ical.PropUID, m.Title+"@agenda")
		ev.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
		ev.Props.SetText(ical.PropSummary, m.Title)
		ev.Props.Set(localTime(ical.PropDateTimeStart, m.Start))
		ev.Props.Set(localTime(ical.PropDateTimeEnd, m.End))

		ev.Props.Set(person(ical.PropOrganizer, m.Sponsor, emails))
		for _, p := range m.Participants {
			ev.Props.Add(person(ical.PropAttendee, p, emails))
		}
		cal.Children = append(cal.Children, ev.Component)
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("encode calendar: %w", err)
	}
	return nil
}

func localTime(name string, t time.Time) *ical.Prop {
	p := ical.NewProp(name)
	p.Value = t.Format(floating)
	return p
}

func person(name, user string, emails map[string]string) *ical.Prop {
	p := ical.NewProp(name)
	p.Params.Set(ical.ParamCommonName, user)
	if e := emails[user]; e != "" {
		p.Value = "mailto:" + e
	} else {
		p.Value = "urn:agenda:user:" + url.PathEscape(user)
	}
	return p
}
