package store

import "agenda/internal/model"

func (s *Store) CreateUser(u model.User) {
	s.users.rows = append(s.users.rows, u)
	s.dirty = true
}

func (s *Store) QueryUsers(match func(model.User) bool) []model.User {
	return s.users.query(match)
}

func (s *Store) UpdateUsers(match func(model.User) bool, apply func(*model.User)) int {
	return s.touch(s.users.update(match, apply))
}

func (s *Store) DeleteUsers(match func(model.User) bool) int {
	return s.touch(s.users.delete(match))
}
