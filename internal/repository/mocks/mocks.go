package mocks

import (
	"context"

	"github.com/rpggio/jobtracker/internal/domain/activity"
	"github.com/rpggio/jobtracker/internal/domain/company"
	"github.com/stretchr/testify/mock"
)

// Backend is a mock for store.Backend.
type Backend struct {
	mock.Mock
}

func (m *Backend) Load(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if data, ok := args.Get(0).([]byte); ok {
		return data, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Backend) Save(ctx context.Context, key string, data []byte) error {
	args := m.Called(ctx, key, data)
	return args.Error(0)
}

// CompanyRepository is a mock for company.Repository.
type CompanyRepository struct {
	mock.Mock
}

func (m *CompanyRepository) GetAll(ctx context.Context) []company.Company {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]company.Company); ok {
		return list
	}
	return nil
}

// Modify applies fn to the mocked GetAll snapshot and hands a non-nil result
// to the mocked SaveAll, so tests can stub reads and assert writes.
func (m *CompanyRepository) Modify(ctx context.Context, fn func([]company.Company) ([]company.Company, error)) error {
	updated, err := fn(m.GetAll(ctx))
	if err != nil || updated == nil {
		return err
	}
	return m.SaveAll(ctx, updated)
}

func (m *CompanyRepository) SaveAll(ctx context.Context, companies []company.Company) error {
	args := m.Called(ctx, companies)
	return args.Error(0)
}

func (m *CompanyRepository) FindByID(ctx context.Context, companyID string) (company.Company, bool) {
	args := m.Called(ctx, companyID)
	c, _ := args.Get(0).(company.Company)
	return c, args.Bool(1)
}

func (m *CompanyRepository) ListWithApplications(ctx context.Context) []company.Company {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]company.Company); ok {
		return list
	}
	return nil
}

func (m *CompanyRepository) ListWithoutApplications(ctx context.Context) []company.Company {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]company.Company); ok {
		return list
	}
	return nil
}

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, entry *activity.ActivityEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]activity.ActivityEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
