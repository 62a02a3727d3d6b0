package server

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-optimizer/internal/db"
	"github.com/jonathan/resume-optimizer/internal/types"
)

// fakeStore is an in-memory Store. Rows are stamped with increasing times so
// list order is deterministic.
type fakeStore struct {
	mu       sync.Mutex
	clock    time.Time
	pingErr  error
	users    map[uuid.UUID]*db.User
	jobs     map[uuid.UUID]db.JobPosting
	resumes  map[uuid.UUID]db.Resume
	analyses map[uuid.UUID]db.Analysis
	docs     map[uuid.UUID]db.OptimizedResume
	profiles map[uuid.UUID]db.UserProfile
}

var _ Store = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		clock:    time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		users:    map[uuid.UUID]*db.User{},
		jobs:     map[uuid.UUID]db.JobPosting{},
		resumes:  map[uuid.UUID]db.Resume{},
		analyses: map[uuid.UUID]db.Analysis{},
		docs:     map[uuid.UUID]db.OptimizedResume{},
		profiles: map[uuid.UUID]db.UserProfile{},
	}
}

func (f *fakeStore) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fakeStore) Ping(context.Context) error { return f.pingErr }

func (f *fakeStore) CreateUser(_ context.Context, name, email, passwordHash string) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := f.tick()
	u := &db.User{ID: uuid.New(), Name: name, Email: strings.ToLower(email), PasswordHash: passwordHash, CreatedAt: now, UpdatedAt: now}
	f.users[u.ID] = u
	return u.ID, nil
}

func (f *fakeStore) GetUser(_ context.Context, id uuid.UUID) (*db.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == strings.ToLower(strings.TrimSpace(email)) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	u, err := f.GetUserByEmail(ctx, email)
	return u != nil, err
}

func (f *fakeStore) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return errors.New("user not found")
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = f.tick()
	return nil
}

func (f *fakeStore) SaveJobPosting(_ context.Context, j *db.JobPosting) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	j.CreatedAt = f.tick()
	f.jobs[j.ID] = *j
	return nil
}

func (f *fakeStore) ListJobPostings(_ context.Context, userID uuid.UUID) ([]db.JobPosting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return newestFirst(f.jobs, userID, func(j db.JobPosting) (uuid.UUID, time.Time) { return j.UserID, j.CreatedAt }), nil
}

func (f *fakeStore) GetJobPosting(_ context.Context, userID, id uuid.UUID) (*db.JobPosting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if j, ok := f.jobs[id]; ok && j.UserID == userID {
		return &j, nil
	}
	return nil, nil
}

func (f *fakeStore) SaveResume(_ context.Context, r *db.Resume) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	r.CreatedAt = f.tick()
	f.resumes[r.ID] = *r
	return nil
}

func (f *fakeStore) ListResumes(_ context.Context, userID uuid.UUID) ([]db.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return newestFirst(f.resumes, userID, func(r db.Resume) (uuid.UUID, time.Time) { return r.UserID, r.CreatedAt }), nil
}

func (f *fakeStore) GetResume(_ context.Context, userID, id uuid.UUID) (*db.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.resumes[id]; ok && r.UserID == userID {
		return &r, nil
	}
	return nil, nil
}

func (f *fakeStore) SaveAnalysis(_ context.Context, a *db.Analysis) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.CreatedAt = f.tick()
	f.analyses[a.ID] = *a
	return nil
}

func (f *fakeStore) ListAnalyses(_ context.Context, userID uuid.UUID) ([]db.Analysis, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return newestFirst(f.analyses, userID, func(a db.Analysis) (uuid.UUID, time.Time) { return a.UserID, a.CreatedAt }), nil
}

func (f *fakeStore) GetAnalysis(_ context.Context, userID, id uuid.UUID) (*db.Analysis, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.analyses[id]; ok && a.UserID == userID {
		return &a, nil
	}
	return nil, nil
}

func (f *fakeStore) SaveOptimizedResume(_ context.Context, o *db.OptimizedResume) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	o.CreatedAt = f.tick()
	f.docs[o.ID] = *o
	return nil
}

func (f *fakeStore) ListOptimizedResumes(_ context.Context, userID uuid.UUID) ([]db.OptimizedResume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return newestFirst(f.docs, userID, func(o db.OptimizedResume) (uuid.UUID, time.Time) { return o.UserID, o.CreatedAt }), nil
}

func (f *fakeStore) GetOptimizedResume(_ context.Context, userID, id uuid.UUID) (*db.OptimizedResume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o, ok := f.docs[id]; ok && o.UserID == userID {
		return &o, nil
	}
	return nil, nil
}

func (f *fakeStore) SaveUserProfile(_ context.Context, userID uuid.UUID, p *types.ResumeProfile) (*db.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p == nil {
		p = &types.ResumeProfile{}
	}
	up := db.UserProfile{UserID: userID, Profile: *p, UpdatedAt: f.tick()}
	f.profiles[userID] = up
	return &up, nil
}

func (f *fakeStore) GetUserProfile(_ context.Context, userID uuid.UUID) (*db.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if up, ok := f.profiles[userID]; ok {
		return &up, nil
	}
	return nil, nil
}

func newestFirst[T any](rows map[uuid.UUID]T, userID uuid.UUID, key func(T) (uuid.UUID, time.Time)) []T {
	var out []T
	for _, row := range rows {
		if owner, _ := key(row); owner == userID {
			out = append(out, row)
		}
	}
	slices.SortFunc(out, func(a, b T) int {
		_, ta := key(a)
		_, tb := key(b)
		return tb.Compare(ta)
	})
	return out
}
