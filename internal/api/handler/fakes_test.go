package handler

import (
	"context"
	"errors"
	"sync"

	"github.com/cuongbtq/recruitment-be/internal/api/domain"
	"github.com/cuongbtq/recruitment-be/internal/api/model"
	"github.com/cuongbtq/recruitment-be/internal/api/storage"
)

// fakeStore is an in-memory stand-in for the postgres storage
type fakeStore struct {
	mu           sync.Mutex
	users        map[string]*model.User
	profiles     map[string]domain.Profile
	offers       map[string]*model.JobOffer
	applications map[string]*model.Application

	lastFilter storage.JobOfferFilter
	lastPatch  model.JobOfferPatch
	userPatch  model.UserPatch
	listResult []model.JobOffer
	failWith   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:        map[string]*model.User{},
		profiles:     map[string]domain.Profile{},
		offers:       map[string]*model.JobOffer{},
		applications: map[string]*model.Application{},
	}
}

func (f *fakeStore) CreateUser(_ context.Context, user *model.User, profile domain.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	for _, u := range f.users {
		if u.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	f.users[user.UserID] = user
	f.profiles[user.UserID] = profile
	return nil
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeStore) GetUserByID(_ context.Context, userID string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[userID]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeStore) GetProfile(_ context.Context, user *model.User) (domain.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.profiles[user.UserID]; ok {
		return p, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeStore) UpdateUser(_ context.Context, userID string, patch model.UserPatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	f.userPatch = patch
	if patch.FirstName != nil {
		u.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		u.LastName = *patch.LastName
	}
	return nil
}

func (f *fakeStore) CreateJobOffer(_ context.Context, offer *model.JobOffer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.offers[offer.JobOfferID] = offer
	return nil
}

func (f *fakeStore) GetJobOffer(_ context.Context, jobOfferID string) (*model.JobOffer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o, ok := f.offers[jobOfferID]; ok {
		return o, nil
	}
	return nil, domain.ErrJobOfferNotFound
}

func (f *fakeStore) ListJobOffers(_ context.Context, filter storage.JobOfferFilter) ([]model.JobOffer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastFilter = filter
	return f.listResult, f.failWith
}

func (f *fakeStore) UpdateJobOffer(_ context.Context, jobOfferID string, patch model.JobOfferPatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.offers[jobOfferID]
	if !ok {
		return domain.ErrJobOfferNotFound
	}
	f.lastPatch = patch
	if patch.Position != nil {
		o.Position = *patch.Position
	}
	if patch.Status != nil {
		o.Status = *patch.Status
	}
	return nil
}

func (f *fakeStore) DeleteJobOffer(_ context.Context, jobOfferID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.offers[jobOfferID]; !ok {
		return domain.ErrJobOfferNotFound
	}
	delete(f.offers, jobOfferID)
	return nil
}

func (f *fakeStore) CreateApplication(_ context.Context, app *model.Application) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.applications {
		if a.JobOfferID == app.JobOfferID && a.CandidateID == app.CandidateID {
			return domain.ErrAlreadyApplied
		}
	}
	f.applications[app.ApplicationID] = app
	return nil
}

func (f *fakeStore) GetApplication(_ context.Context, applicationID string) (*model.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.applications[applicationID]; ok {
		return a, nil
	}
	return nil, domain.ErrApplicationNotFound
}

func (f *fakeStore) DeleteApplication(_ context.Context, applicationID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.applications, applicationID)
	return nil
}

type fakePublisher struct {
	mu       sync.Mutex
	messages []any
	err      error
}

func (p *fakePublisher) PublishJSON(_ context.Context, v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.messages = append(p.messages, v)
	return nil
}

var errDatabaseDown = errors.New("database is down")
