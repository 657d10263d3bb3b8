package mocks

import (
	"context"
	"mime/multipart"

	"farmer-market/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, message interface{}) error {
	args := m.Called(ctx, topic, message)
	return args.Error(0)
}

func (m *MockPublisher) Close() {
	m.Called()
}

type MockSuggestCache struct {
	mock.Mock
}

func (m *MockSuggestCache) Get(ctx context.Context, term string) ([]domain.Suggestion, int64, bool, error) {
	args := m.Called(ctx, term)
	var out []domain.Suggestion
	if v := args.Get(0); v != nil {
		out = v.([]domain.Suggestion)
	}
	return out, args.Get(1).(int64), args.Bool(2), args.Error(3)
}

func (m *MockSuggestCache) Set(ctx context.Context, version int64, term string, s []domain.Suggestion) error {
	args := m.Called(ctx, version, term, s)
	return args.Error(0)
}

func (m *MockSuggestCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) SaveFile(fh *multipart.FileHeader) (string, error) {
	args := m.Called(fh)
	return args.String(0), args.Error(1)
}

func (m *MockImageStore) SaveDataURL(data string) (string, error) {
	args := m.Called(data)
	return args.String(0), args.Error(1)
}

func (m *MockImageStore) Remove(name string) error {
	args := m.Called(name)
	return args.Error(0)
}
