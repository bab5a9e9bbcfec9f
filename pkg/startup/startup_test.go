package startup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Ramsey-B/fern/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recorder(events *[]string, name string, requires ...string) *Dependency {
	return &Dependency{
		Name:     name,
		Requires: requires,
		StartFn: func(context.Context) error {
			*events = append(*events, "start "+name)
			return nil
		},
		StopFn: func(context.Context) error {
			*events = append(*events, "stop "+name)
			return nil
		},
	}
}

func TestStartup_Order(t *testing.T) {
	events := []string{}
	s := NewStartup(logging.NewNopLogger(), 1)
	s.AddDependency(recorder(&events, "http", "loader"))
	s.AddDependency(recorder(&events, "database"))
	s.AddDependency(recorder(&events, "loader", "database", "redis"))
	s.AddDependency(recorder(&events, "redis"))

	require.NoError(t, s.Start(context.Background()))
	assert.Equal(t, []string{"start database", "start redis", "start loader", "start http"}, events)
	assert.Equal(t, StartupStatusStarted, s.Status("http"))

	events = events[:0]
	require.NoError(t, s.Stop(context.Background()))
	assert.Equal(t, []string{"stop http", "stop loader", "stop redis", "stop database"}, events)
	assert.Equal(t, StartupStatusStopped, s.Status("database"))
}

func TestStartup_Retry(t *testing.T) {
	calls := 0
	s := NewStartup(logging.NewNopLogger(), 3)
	s.Backoff = time.Millisecond
	s.AddDependency(&Dependency{
		Name: "database",
		StartFn: func(context.Context) error {
			calls++
			if calls < 3 {
				return errors.New("connection refused")
			}
			return nil
		},
	})

	require.NoError(t, s.Start(context.Background()))
	assert.Equal(t, 3, calls)
}

func TestStartup_Failures(t *testing.T) {
	t.Run("gives up after max attempts", func(t *testing.T) {
		s := NewStartup(logging.NewNopLogger(), 2)
		s.Backoff = time.Millisecond
		s.AddDependency(&Dependency{Name: "redis", StartFn: func(context.Context) error { return errors.New("down") }})

		err := s.Start(context.Background())
		assert.ErrorContains(t, err, "startup failed after 2 attempts: down")
		assert.Equal(t, StartupStatusFailed, s.Status("redis"))
	})

	t.Run("unknown dependency", func(t *testing.T) {
		s := NewStartup(logging.NewNopLogger(), 1)
		s.AddDependency(&Dependency{Name: "http", Requires: []string{"kafka"}})
		assert.ErrorContains(t, s.Start(context.Background()), "unknown startup dependency 'kafka'")
	})

	t.Run("cycle", func(t *testing.T) {
		s := NewStartup(logging.NewNopLogger(), 1)
		s.AddDependency(&Dependency{Name: "a", Requires: []string{"b"}})
		s.AddDependency(&Dependency{Name: "b", Requires: []string{"a"}})
		assert.ErrorContains(t, s.Start(context.Background()), "cycle")
	})

	t.Run("cancelled while waiting", func(t *testing.T) {
		s := NewStartup(logging.NewNopLogger(), 5)
		s.Backoff = time.Hour
		s.AddDependency(&Dependency{Name: "redis", StartFn: func(context.Context) error { return errors.New("down") }})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.ErrorIs(t, s.Start(ctx), context.Canceled)
	})
}
