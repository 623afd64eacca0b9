// Code generated manually. DO NOT EDIT.

package mocks

import (
	"github.com/guttosm/combination-service/internal/domain/model"
	"github.com/stretchr/testify/mock"
)

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(key string) (model.EnumerationResult, bool) {
	args := m.Called(key)
	return args.Get(0).(model.EnumerationResult), args.Bool(1)
}

func (m *MockCache) Set(key string, value model.EnumerationResult) {
	m.Called(key, value)
}

func (m *MockCache) Invalidate(key string) {
	m.Called(key)
}

func (m *MockCache) Clear() {
	m.Called()
}

func (m *MockCache) Stop() {
	m.Called()
}
