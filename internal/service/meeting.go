package service

import (
	"fmt"
	"time"

	"agenda/internal/date"
	"agenda/internal/model"
)

func (s *Service) CreateMeeting(sponsor, title, start, end string, participants []string) error {
	const op = "create meeting"
	kv := []any{"sponsor", sponsor, "title", title, "start", start, "end", end, "participants", participants}
	s.log.Infow(op, kv...)

	st, et, err := parseInterval(start, end)
	if err != nil {
		return s.done(op, err, kv...)
	}
	if !st.Before(et) {
		return s.done(op, fmt.Errorf("%w: start must be before end", model.ErrInvalidDate), kv...)
	}
	if title == "" {
		return s.done(op, fmt.Errorf("%w: title required", model.ErrInvalidArgument), kv...)
	}

	if !s.userExists(sponsor) {
		return s.done(op, fmt.Errorf("%w: sponsor %s", model.ErrUserNotFound, sponsor), kv...)
	}

	for i, p := range participants {
		if p == sponsor {
			return s.done(op, fmt.Errorf("%w: sponsor %s listed as participant", model.ErrUserRepeat, p), kv...)
		}
		if !s.userExists(p) {
			return s.done(op, fmt.Errorf("%w: participant %s", model.ErrUserNotFound, p), kv...)
		}
		for _, prev := range participants[:i] {
			if prev == p {
				return s.done(op, fmt.Errorf("%w: participant %s listed twice", model.ErrUserRepeat, p), kv...)
			}
		}
	}

	// every meeting is checked; the first conflicting one names the failure
	var reason error
	s.store.QueryMeetings(func(m model.Meeting) bool {
		err := creationConflict(m, sponsor, title, participants, st, et)
		if err != nil && reason == nil {
			reason = err
		}
		return err != nil
	})
	if reason != nil {
		return s.done(op, reason, kv...)
	}

	s.store.CreateMeeting(model.Meeting{
		Sponsor:      sponsor,
		Participants: participants,
		Start:        st,
		End:          et,
		Title:        title,
	})
	return s.done(op, nil, kv...)
}

func creationConflict(m model.Meeting, sponsor, title string, participants []string, st, et time.Time) error {
	if m.Title == title {
		return fmt.Errorf("%w: %s", model.ErrTitleRepeat, title)
	}
	if !busy(m, st, et) {
		return nil
	}
	if m.Involves(sponsor) {
		return fmt.Errorf("%w: %s is busy with %q", model.ErrTimeConflict, sponsor, m.Title)
	}
	for _, p := range participants {
		if m.Involves(p) {
			return fmt.Errorf("%w: %s is busy with %q", model.ErrTimeConflict, p, m.Title)
		}
	}
	return nil
}

func (s *Service) sponsored(sponsor, title string) (model.Meeting, bool) {
	found := s.store.QueryMeetings(func(m model.Meeting) bool {
		return m.Sponsor == sponsor && m.Title == title
	})
	if len(found) == 0 {
		return model.Meeting{}, false
	}
	return found[0], true
}

func (s *Service) AddMeetingParticipator(sponsor, title, participant string) error {
	const op = "add participant"
	kv := []any{"sponsor", sponsor, "title", title, "participant", participant}
	s.log.Infow(op, kv...)

	target, ok := s.sponsored(sponsor, title)
	if !ok {
		return s.done(op, fmt.Errorf("%w: %s sponsors no meeting %q", model.ErrMeetingNotFound, sponsor, title), kv...)
	}
	if !s.userExists(participant) {
		return s.done(op, fmt.Errorf("%w: %s", model.ErrUserNotFound, participant), kv...)
	}
	if target.Involves(participant) {
		return s.done(op, fmt.Errorf("%w: %s already in %q", model.ErrUserRepeat, participant, title), kv...)
	}

	clashes := s.store.QueryMeetings(func(m model.Meeting) bool {
		return m.Involves(participant) && busy(m, target.Start, target.End)
	})
	if len(clashes) > 0 {
		return s.done(op, fmt.Errorf("%w: %s is busy with %q", model.ErrTimeConflict, participant, clashes[0].Title), kv...)
	}

	s.store.UpdateMeetings(
		func(m model.Meeting) bool { return m.Sponsor == sponsor && m.Title == title },
		func(m *model.Meeting) { m.AddParticipant(participant) },
	)
	return s.done(op, nil, kv...)
}

func (s *Service) RemoveMeetingParticipator(sponsor, title, participant string) error {
	const op = "remove participant"
	kv := []any{"sponsor", sponsor, "title", title, "participant", participant}
	s.log.Infow(op, kv...)

	target, ok := s.sponsored(sponsor, title)
	if !ok {
		return s.done(op, fmt.Errorf("%w: %s sponsors no meeting %q", model.ErrMeetingNotFound, sponsor, title), kv...)
	}
	if !target.IsParticipant(participant) {
		return s.done(op, fmt.Errorf("%w: %s is not in %q", model.ErrUserNotFound, participant, title), kv...)
	}

	s.leave(func(m model.Meeting) bool { return m.Sponsor == sponsor && m.Title == title }, participant)
	return s.done(op, nil, kv...)
}

func (s *Service) QuitMeeting(user, title string) error {
	const op = "quit meeting"
	kv := []any{"user", user, "title", title}
	s.log.Infow(op, kv...)

	match := func(m model.Meeting) bool { return m.Title == title && m.IsParticipant(user) }
	if len(s.store.QueryMeetings(match)) == 0 {
		return s.done(op, fmt.Errorf("%w: %s takes no part in %q", model.ErrMeetingNotFound, user, title), kv...)
	}

	s.leave(match, user)
	return s.done(op, nil, kv...)
}

// leave drops user from the matching meetings and deletes any left without participants.
func (s *Service) leave(match func(model.Meeting) bool, user string) {
	left := map[string]bool{}
	s.store.UpdateMeetings(match, func(m *model.Meeting) {
		m.RemoveParticipant(user)
		left[m.Title] = true
	})
	s.store.DeleteMeetings(func(m model.Meeting) bool {
		return left[m.Title] && len(m.Participants) == 0
	})
}

func (s *Service) DeleteMeeting(sponsor, title string) error {
	const op = "delete meeting"
	kv := []any{"sponsor", sponsor, "title", title}
	s.log.Infow(op, kv...)

	n := s.store.DeleteMeetings(func(m model.Meeting) bool {
		return m.Sponsor == sponsor && m.Title == title
	})
	if n == 0 {
		return s.done(op, fmt.Errorf("%w: %s sponsors no meeting %q", model.ErrEmptyDeletion, sponsor, title), kv...)
	}
	return s.done(op, nil, kv...)
}

func (s *Service) DeleteAllMeetings(sponsor string) (int, error) {
	const op = "delete all meetings"
	s.log.Infow(op, "sponsor", sponsor)

	n := s.store.DeleteMeetings(func(m model.Meeting) bool { return m.Sponsor == sponsor })
	if n == 0 {
		return 0, s.done(op, fmt.Errorf("%w: %s sponsors no meetings", model.ErrEmptyDeletion, sponsor), "sponsor", sponsor)
	}
	return n, s.done(op, nil, "sponsor", sponsor, "deleted", n)
}

func (s *Service) MeetingsByTitle(user, title string) []model.Meeting {
	out := s.store.QueryMeetings(func(m model.Meeting) bool {
		return m.Involves(user) && m.Title == title
	})
	s.log.Infow("query meeting by title", "user", user, "title", title, "found", len(out))
	return out
}

// MeetingsBetween returns the user's meetings touching [start, end], both ends inclusive.
// start == end is a point query.
func (s *Service) MeetingsBetween(user, start, end string) ([]model.Meeting, error) {
	const op = "query meeting by time"
	kv := []any{"user", user, "start", start, "end", end}
	s.log.Infow(op, kv...)

	st, et, err := parseInterval(start, end)
	if err != nil {
		return nil, s.done(op, err, kv...)
	}
	if st.After(et) {
		return nil, s.done(op, fmt.Errorf("%w: start %s after end %s", model.ErrInvalidDate,
			date.Format(st), date.Format(et)), kv...)
	}

	out := s.store.QueryMeetings(func(m model.Meeting) bool {
		return m.Involves(user) && intersects(m, st, et)
	})
	return out, s.done(op, nil, append(kv, "found", len(out))...)
}

func (s *Service) ListAllMeetings(user string) []model.Meeting {
	out := s.store.QueryMeetings(func(m model.Meeting) bool { return m.Involves(user) })
	s.log.Infow("list meetings", "user", user, "found", len(out))
	return out
}

func (s *Service) ListAllSponsorMeetings(user string) []model.Meeting {
	out := s.store.QueryMeetings(func(m model.Meeting) bool { return m.Sponsor == user })
	s.log.Infow("list sponsored meetings", "user", user, "found", len(out))
	return out
}

func (s *Service) ListAllParticipateMeetings(user string) []model.Meeting {
	out := s.store.QueryMeetings(func(m model.Meeting) bool { return m.IsParticipant(user) })
	s.log.Infow("list participated meetings", "user", user, "found", len(out))
	return out
}
