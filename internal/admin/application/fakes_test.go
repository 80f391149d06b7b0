package application

import (
	"context"
	"errors"
	"sync"

	admindomain "github.com/brokertools/marketplace/api/internal/admin/domain"
)

type memoryApplications struct {
	mu           sync.Mutex
	items        map[string]admindomain.Application
	statusErr    error
	statusWrites int
}

func newMemoryApplications(apps ...admindomain.Application) *memoryApplications {
	m := &memoryApplications{items: map[string]admindomain.Application{}}
	for _, a := range apps {
		m.items[a.ID] = a
	}
	return m
}

func (m *memoryApplications) Find(_ context.Context, filter ApplicationFilter, _ Paging) ([]admindomain.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []admindomain.Application
	for _, a := range m.items {
		if filter.Status != "" && a.Status.String() != filter.Status {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (m *memoryApplications) FindByID(_ context.Context, id string) (*admindomain.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (m *memoryApplications) UpdateStatus(_ context.Context, id string, status admindomain.ApplicationStatus, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.statusErr != nil {
		return m.statusErr
	}
	a, ok := m.items[id]
	if !ok {
		return ErrNotFound
	}
	a.Status = status
	a.RejectReason = reason
	m.items[id] = a
	m.statusWrites++
	return nil
}

func (m *memoryApplications) status(id string) admindomain.ApplicationStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.items[id].Status
}

type memoryAssessments struct {
	mu        sync.Mutex
	items     map[string]admindomain.Assessment
	upsertErr error
	upserts   int
}

func newMemoryAssessments() *memoryAssessments {
	return &memoryAssessments{items: map[string]admindomain.Assessment{}}
}

func (m *memoryAssessments) FindByApplicationID(_ context.Context, id string) (*admindomain.Assessment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := a.Clone()
	return &c, nil
}

func (m *memoryAssessments) Upsert(_ context.Context, a *admindomain.Assessment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.items[a.ApplicationID] = a.Clone()
	m.upserts++
	return nil
}

func (m *memoryAssessments) stored(id string) (admindomain.Assessment, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.items[id]
	return a, ok
}

type recordingInvalidator struct {
	mu  sync.Mutex
	ids []string
	err error
}

func (r *recordingInvalidator) Invalidate(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append(r.ids, id)
	return r.err
}

var errStoreDown = errors.New("store unavailable")
