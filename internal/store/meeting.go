package store

import "agenda/internal/model"

func (s *Store) CreateMeeting(m model.Meeting) {
	s.meetings.rows = append(s.meetings.rows, m.Clone())
	s.dirty = true
}

func (s *Store) QueryMeetings(match func(model.Meeting) bool) []model.Meeting {
	return s.meetings.query(match)
}

// UpdateMeetings runs apply on every matching meeting in place and returns the count.
func (s *Store) UpdateMeetings(match func(model.Meeting) bool, apply func(*model.Meeting)) int {
	return s.touch(s.meetings.update(match, apply))
}

func (s *Store) DeleteMeetings(match func(model.Meeting) bool) int {
	return s.touch(s.meetings.delete(match))
}
