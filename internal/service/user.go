package service

import (
	"fmt"

	"agenda/internal/model"
)

func (s *Service) UserLogIn(name, password string) error {
	s.log.Infow("log in", "user", name)
	found := s.store.QueryUsers(func(u model.User) bool {
		return u.Name == name && u.Password == password
	})
	if len(found) == 0 {
		return s.done("log in", fmt.Errorf("%w: wrong name or password", model.ErrUserNotFound), "user", name)
	}
	return s.done("log in", nil, "user", name)
}

func (s *Service) UserRegister(name, password, email, phone string) error {
	s.log.Infow("register", "user", name)
	if name == "" || password == "" || email == "" || phone == "" {
		return s.done("register", fmt.Errorf("%w: all fields required", model.ErrInvalidArgument), "user", name)
	}
	if s.userExists(name) {
		return s.done("register", fmt.Errorf("%w: %s is taken", model.ErrUserRepeat, name), "user", name)
	}
	s.store.CreateUser(model.User{Name: name, Password: password, Email: email, Phone: phone})
	return s.done("register", nil, "user", name)
}

func (s *Service) ListAllUsers() []model.User {
	users := s.store.QueryUsers(func(model.User) bool { return true })
	s.log.Infow("list users", "count", len(users))
	return users
}

// DeleteUser removes the account, drops the user from every meeting it joined and
// deletes the meetings it sponsored along with every meeting that now has no participants.
func (s *Service) DeleteUser(name, password string) error {
	s.log.Infow("delete user", "user", name)
	removed := s.store.DeleteUsers(func(u model.User) bool {
		return u.Name == name && u.Password == password
	})
	if removed == 0 {
		return s.done("delete user", fmt.Errorf("%w: wrong name or password", model.ErrUserNotFound), "user", name)
	}

	s.store.UpdateMeetings(
		func(m model.Meeting) bool { return m.IsParticipant(name) },
		func(m *model.Meeting) { m.RemoveParticipant(name) },
	)

	// participant removal first, so meetings it emptied go too
	gone := s.store.DeleteMeetings(func(m model.Meeting) bool {
		return m.Sponsor == name || len(m.Participants) == 0
	})
	return s.done("delete user", nil, "user", name, "meetings_deleted", gone)
}
