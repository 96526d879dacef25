package model

import (
	"slices"
	"time"
)

type User struct {
	Name     string
	Password string
	Email    string
	Phone    string
}

type Meeting struct {
	Sponsor      string
	Participants []string
	Start        time.Time
	End          time.Time
	Title        string
}

func (m Meeting) IsParticipant(name string) bool {
	return slices.Contains(m.Participants, name)
}

// sponsor or participant
func (m Meeting) Involves(name string) bool {
	return m.Sponsor == name || m.IsParticipant(name)
}

// Clone copies the participant slice so callers can't alias stored state.
func (m Meeting) Clone() Meeting {
	m.Participants = slices.Clone(m.Participants)
	return m
}

func (m *Meeting) AddParticipant(name string) {
	m.Participants = append(m.Participants, name)
}

func (m *Meeting) RemoveParticipant(name string) bool {
	i := slices.Index(m.Participants, name)
	if i < 0 {
		return false
	}
	m.Participants = slices.Delete(m.Participants, i, i+1)
	return true
}
