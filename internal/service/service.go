// Package service enforces the scheduling rules on top of the store.
package service

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"agenda/internal/date"
	"agenda/internal/model"
	"agenda/internal/store"
)

// Service validates every request fully before it touches the store, so a failed
// operation leaves no partial state behind.
type Service struct {
	store *store.Store
	log   *zap.SugaredLogger
}

func New(st *store.Store, log *zap.SugaredLogger) *Service {
	return &Service{store: st, log: log.Named("service")}
}

// busy reports whether existing meeting m blocks the candidate interval [s, e).
// Touching endpoints do not conflict, so back-to-back meetings are fine.
func busy(m model.Meeting, s, e time.Time) bool {
	if !m.Start.After(s) && m.End.After(s) {
		return true
	}
	if m.Start.Before(e) && !m.End.Before(e) {
		return true
	}
	return !m.Start.Before(s) && !m.End.After(e)
}

// closed-interval intersection, used by queries
func intersects(m model.Meeting, s, e time.Time) bool {
	return !(e.Before(m.Start) || s.After(m.End))
}

func parseInterval(start, end string) (time.Time, time.Time, error) {
	s, err := date.Parse(start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start: %v", model.ErrInvalidDate, err)
	}
	e, err := date.Parse(end)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end: %v", model.ErrInvalidDate, err)
	}
	return s, e, nil
}

func (s *Service) userExists(name string) bool {
	return len(s.store.QueryUsers(func(u model.User) bool { return u.Name == name })) > 0
}

// done logs the outcome of an operation and hands the error back unchanged.
func (s *Service) done(op string, err error, kv ...any) error {
	if err != nil {
		s.log.Warnw(op+" failed", append(kv, "error", err)...)
		return err
	}
	s.log.Infow(op+" ok", kv...)
	return nil
}
