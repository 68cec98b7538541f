package service

import (
	"context"
	"errors"
	"time"

	"github.com/Freeeeeet/tutor_sessions/internal/model"
	"github.com/google/uuid"
	"github.com/samber/mo"
)

type userStub struct {
	users     map[int64]*model.User
	timezones map[int64]string
	err       error
}

func (s *userStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.users[id], nil
}

func (s *userStub) GetTimezone(ctx context.Context, id int64) (mo.Option[string], error) {
	if s.err != nil {
		return mo.None[string](), s.err
	}
	if tz, ok := s.timezones[id]; ok {
		return mo.Some(tz), nil
	}
	return mo.None[string](), nil
}

func (s *userStub) SetTimezone(ctx context.Context, id int64, tz string) error {
	if _, ok := s.users[id]; !ok {
		return model.ErrUserNotFound
	}
	if s.timezones == nil {
		s.timezones = map[int64]string{}
	}
	s.timezones[id] = tz
	s.users[id].Timezone = mo.Some(tz)
	return nil
}

type availabilityStub struct {
	slots []*model.AvailabilitySlot
	calls int
}

func (s *availabilityStub) GetByTutorID(ctx context.Context, tutorID int64) ([]*model.AvailabilitySlot, error) {
	s.calls++
	return s.slots, nil
}

// sessionStoreStub создаёт занятия в памяти; failOn номер вызова Create (с 1), который падает
type sessionStoreStub struct {
	created []*model.ClassSession
	deleted []int64
	calls   int
	failOn  int
	nextID  int64
}

var errBackend = errors.New("backend unavailable")

func (s *sessionStoreStub) Create(ctx context.Context, session *model.ClassSession) error {
	s.calls++
	if s.failOn > 0 && s.calls == s.failOn {
		return errBackend
	}
	s.nextID++
	session.ID = s.nextID
	session.CreatedAt = time.Now()
	s.created = append(s.created, session)
	return nil
}

func (s *sessionStoreStub) Delete(ctx context.Context, id int64) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *sessionStoreStub) GetByGroupID(ctx context.Context, groupID uuid.UUID) ([]*model.ClassSession, error) {
	var out []*model.ClassSession
	for _, session := range s.created {
		if session.GroupID == groupID {
			out = append(out, session)
		}
	}
	return out, nil
}

type notifierStub struct {
	calls   int
	results []model.SubmissionResult
	err     error
}

func (n *notifierStub) SessionsCreated(ctx context.Context, tutor *model.User, meta model.SessionMeta, result model.SubmissionResult) error {
	n.calls++
	n.results = append(n.results, result)
	return n.err
}
