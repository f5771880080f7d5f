package batch

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/raywall/book-library-toolkit/library"
	"github.com/raywall/book-library-toolkit/pkg/metrics"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	items    []Result
	progress []int
}

func (o *recordingObserver) ItemDone(operation string, r Result) {
	o.items = append(o.items, r)
}

func (o *recordingObserver) Progress(operation string, succeeded, total int) {
	o.progress = append(o.progress, succeeded)
}

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

func TestRun_ContinuesAfterFailures(t *testing.T) {
	ids := library.BookIDs(1, 10)
	failing := map[string]bool{"book003": true, "book007": true}

	var attempted []string
	obs := &recordingObserver{}
	runner := NewRunner(Options{Observer: obs})

	summary := runner.Run(context.Background(), "insert", ids, func(ctx context.Context, id string) (string, error) {
		attempted = append(attempted, id)
		if failing[id] {
			return "", fmt.Errorf("falha em %s", id)
		}
		return "ok " + id, nil
	})

	assert.Equal(t, ids, attempted)
	assert.Equal(t, "insert", summary.Operation)
	assert.Equal(t, 10, summary.Total())
	assert.Equal(t, 8, summary.Succeeded())
	assert.Equal(t, 2, summary.Failed())
	require.Len(t, summary.Failures(), 2)
	assert.Equal(t, "book003", summary.Failures()[0].ID)
	assert.Equal(t, "book007", summary.Failures()[1].ID)
	assert.Equal(t, "ok book001", summary.Results[0].Detail)
	assert.Len(t, obs.items, 10)
}

func TestRun_SuccessCountProperty(t *testing.T) {
	for n := 0; n <= 12; n += 3 {
		for k := 0; k <= n; k++ {
			ids := library.BookIDs(1, n)
			summary := NewRunner(Options{}).Run(context.Background(), "remove", ids, func(ctx context.Context, id string) (string, error) {
				num, _ := library.ParseBookID(id)
				if num <= k {
					return "", library.ErrNotFound
				}
				return "", nil
			})
			assert.Equal(t, n, summary.Total())
			assert.Equal(t, n-k, summary.Succeeded(), "n=%d k=%d", n, k)
		}
	}
}

func TestRun_RepeatedDeleteIsIsolatedFailure(t *testing.T) {
	deleted := map[string]bool{}
	del := func(ctx context.Context, id string) (string, error) {
		if deleted[id] {
			return "", library.ErrNotFound
		}
		deleted[id] = true
		return "", nil
	}

	runner := NewRunner(Options{})
	first := runner.Run(context.Background(), "remove", []string{"book001"}, del)
	assert.Equal(t, 1, first.Succeeded())

	second := runner.Run(context.Background(), "remove", []string{"book001", "book002", "book003"}, del)
	assert.Equal(t, 2, second.Succeeded())
	assert.ErrorIs(t, second.Results[0].Err, library.ErrNotFound)
	assert.True(t, second.Results[1].OK())
	assert.True(t, second.Results[2].OK())
}

func TestRun_Progress(t *testing.T) {
	obs := &recordingObserver{}
	runner := NewRunner(Options{ProgressEvery: 5, Observer: obs})

	runner.Run(context.Background(), "cleanup", library.BookIDs(1, 12), func(ctx context.Context, id string) (string, error) {
		if id == "book004" {
			return "", errors.New("x")
		}
		return "", nil
	})

	assert.Equal(t, []int{5, 10}, obs.progress)
}

func TestRun_CancelledContextSkipsRemaining(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var attempted []string
	summary := NewRunner(Options{}).Run(ctx, "insert", library.BookIDs(1, 5), func(ctx context.Context, id string) (string, error) {
		attempted = append(attempted, id)
		if id == "book002" {
			cancel()
		}
		return "", nil
	})

	assert.Equal(t, []string{"book001", "book002"}, attempted)
	assert.Equal(t, 5, summary.Total())
	assert.Equal(t, 2, summary.Succeeded())
	for _, r := range summary.Results[2:] {
		assert.ErrorIs(t, r.Err, context.Canceled)
	}
}

func TestRun_Delay(t *testing.T) {
	runner := NewRunner(Options{Delay: 20 * time.Millisecond})

	start := time.Now()
	summary := runner.Run(context.Background(), "insert", library.BookIDs(1, 3), func(ctx context.Context, id string) (string, error) {
		return "", nil
	})

	assert.Equal(t, 3, summary.Succeeded())
	assert.GreaterOrEqual(t, time.Since(start), 35*time.Millisecond)
}

func TestRun_DelayRunsUntilDeadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	var attempted []string
	summary := NewRunner(Options{Delay: 200 * time.Millisecond}).Run(ctx, "insert", library.BookIDs(1, 3), func(ctx context.Context, id string) (string, error) {
		attempted = append(attempted, id)
		return "", nil
	})

	// book003 só sairia em ~400ms: falha com o próprio deadline, não antes dele.
	assert.Equal(t, []string{"book001", "book002"}, attempted)
	require.Equal(t, 3, summary.Total())
	assert.ErrorIs(t, summary.Results[2].Err, context.DeadlineExceeded)
	assert.Error(t, ctx.Err())
}

func TestRun_RecordsMetrics(t *testing.T) {
	provider := &MockProvider{}
	provider.On("Count", metrics.ItemsMetric, float64(1), []string{"operation:insert", "status:ok"}).Return(nil).Twice()
	provider.On("Count", metrics.ItemsMetric, float64(1), []string{"operation:insert", "status:error"}).Return(nil).Once()
	provider.On("Histogram", metrics.DurationMetric, mock.Anything, []string{"operation:insert"}).Return(nil).Once()
	provider.On("Gauge", metrics.FailedMetric, float64(1), []string{"operation:insert"}).Return(nil).Once()

	runner := NewRunner(Options{Recorder: metrics.NewRecorder(provider, zerolog.Nop())})
	runner.Run(context.Background(), "insert", []string{"book001", "book002", "book003"}, func(ctx context.Context, id string) (string, error) {
		if id == "book002" {
			return "", errors.New("x")
		}
		return "", nil
	})

	provider.AssertExpectations(t)
}
