package app_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"novenapp_alert_bot/internal/domain/deadline"
	"novenapp_alert_bot/internal/domain/delivery"
	"novenapp_alert_bot/internal/domain/user"

	"github.com/sirupsen/logrus"
)

// memStore is an in-memory settings.Store.
type memStore struct {
	mu      sync.Mutex
	data    map[string]string
	getErr  error
	setErr  error
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]string)}
}

func (s *memStore) Get(_ context.Context, key, def string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return def, s.getErr
	}
	if v, ok := s.data[key]; ok {
		return v, nil
	}
	return def, nil
}

func (s *memStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setErr != nil {
		return s.setErr
	}
	s.data[key] = value
	return nil
}

func (s *memStore) get(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[key]
}

// fakeSubjectRepo serves canned subjects per kind and counts queries.
type fakeSubjectRepo struct {
	mu       sync.Mutex
	subjects map[deadline.Kind][]deadline.Subject
	errs     map[deadline.Kind]error
	calls    int
}

func newFakeSubjectRepo() *fakeSubjectRepo {
	return &fakeSubjectRepo{
		subjects: make(map[deadline.Kind][]deadline.Subject),
		errs:     make(map[deadline.Kind]error),
	}
}

func (r *fakeSubjectRepo) ListExpiring(_ context.Context, kind deadline.Kind, _ time.Time, _ int) ([]deadline.Subject, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if err := r.errs[kind]; err != nil {
		return nil, err
	}
	return r.subjects[kind], nil
}

func (r *fakeSubjectRepo) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

// fakeUserRepo serves a canned user list.
type fakeUserRepo struct {
	users []*user.User
	err   error
}

func (r *fakeUserRepo) ListAll(context.Context) ([]*user.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.users, nil
}

// fakeSender records deliveries and can fail selected recipients.
type fakeSender struct {
	mu       sync.Mutex
	sent     []sentAlert
	failFor  map[string]bool // by recipient email
	failAll  bool
}

type sentAlert struct {
	Email   string
	Subject string
}

func newFakeSender() *fakeSender {
	return &fakeSender{failFor: make(map[string]bool)}
}

func (s *fakeSender) Send(_ context.Context, to delivery.Recipient, subject, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll || s.failFor[to.Email] {
		return fmt.Errorf("delivery refused for %s", to.Email)
	}
	s.sent = append(s.sent, sentAlert{Email: to.Email, Subject: subject})
	return nil
}

func (s *fakeSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel) // keep test output quiet
	return logrus.NewEntry(l)
}

func testUser(id int64, role user.Role, email string) *user.User {
	u := &user.User{ID: id, Username: fmt.Sprintf("user%d", id), FullName: fmt.Sprintf("Usuario %d", id), Role: role}
	if email != "" {
		u.Email.String = email
		u.Email.Valid = true
	}
	return u
}
