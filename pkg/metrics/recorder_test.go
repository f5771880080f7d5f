package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Count(name string, value float64, tags []string) error {
	return m.Called(name, value, tags).Error(0)
}

func (m *MockProvider) Gauge(name string, value float64, tags []string) error {
	return m.Called(name, value, tags).Error(0)
}

func (m *MockProvider) Histogram(name string, value float64, tags []string) error {
	return m.Called(name, value, tags).Error(0)
}

func TestRecorder_Item(t *testing.T) {
	p := &MockProvider{}
	p.On("Count", ItemsMetric, 1.0, []string{"operation:insert", "status:ok"}).Return(nil).Once()
	p.On("Count", ItemsMetric, 1.0, []string{"operation:insert", "status:error"}).Return(nil).Once()

	r := NewRecorder(p, zerolog.Nop())
	r.Item("insert", true)
	r.Item("insert", false)

	p.AssertExpectations(t)
}

func TestRecorder_Batch(t *testing.T) {
	p := &MockProvider{}
	p.On("Histogram", DurationMetric, 1500.0, []string{"operation:cleanup"}).Return(nil)
	p.On("Gauge", FailedMetric, 2.0, []string{"operation:cleanup"}).Return(errors.New("statsd down"))

	r := NewRecorder(p, zerolog.Nop())
	assert.NotPanics(t, func() {
		r.Batch("cleanup", 1500*time.Millisecond, 2)
	})
	p.AssertExpectations(t)
}

func TestRecorder_NilSafe(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.Item("insert", true)
		r.Batch("insert", time.Second, 0)
	})

	assert.NotPanics(t, func() {
		NewRecorder(nil, zerolog.Nop()).Item("insert", false)
	})
}
