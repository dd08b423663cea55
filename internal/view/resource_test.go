package view

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResource_StartsIdle(t *testing.T) {
	r := NewResource[[]string]()
	assert.Equal(t, Idle, r.State())
	assert.Nil(t, r.Data())
	assert.NoError(t, r.Err())
}

func TestResource_LoadSuccess(t *testing.T) {
	r := NewResource[[]string]()

	err := r.Load(func() ([]string, error) {
		return []string{"a", "b"}, nil
	})

	assert.NoError(t, err)
	assert.Equal(t, Success, r.State())
	assert.Equal(t, []string{"a", "b"}, r.Data())
}

func TestResource_LoadReplacesWholesale(t *testing.T) {
	r := NewResource[[]string]()
	assert.NoError(t, r.Load(func() ([]string, error) { return []string{"a", "b", "c"}, nil }))

	// A narrower result after a filter change must not merge with the old one.
	assert.NoError(t, r.Load(func() ([]string, error) { return []string{"b"}, nil }))

	assert.Equal(t, []string{"b"}, r.Data())
}

func TestResource_FailureDiscardsPreviousData(t *testing.T) {
	r := NewResource[[]string]()
	assert.NoError(t, r.Load(func() ([]string, error) { return []string{"a"}, nil }))

	wantErr := errors.New("upstream down")
	err := r.Load(func() ([]string, error) { return nil, wantErr })

	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, Failure, r.State())
	assert.Nil(t, r.Data())
	assert.ErrorIs(t, r.Err(), wantErr)
}

func TestResource_SuccessAfterFailureClearsError(t *testing.T) {
	r := NewResource[int]()
	_ = r.Load(func() (int, error) { return 0, errors.New("boom") })
	assert.NoError(t, r.Load(func() (int, error) { return 7, nil }))

	assert.Equal(t, Success, r.State())
	assert.Equal(t, 7, r.Data())
	assert.NoError(t, r.Err())
}

func TestInFlight_BeginBlocksDuplicate(t *testing.T) {
	f := NewInFlight()

	assert.True(t, f.Begin(1))
	assert.False(t, f.Begin(1), "same id must not start twice")
	assert.True(t, f.Begin(2), "other rows stay available")
	assert.True(t, f.Active(1))

	f.End(1)
	assert.False(t, f.Active(1))
	assert.True(t, f.Begin(1))
}

func TestInFlight_ConcurrentBeginAdmitsOne(t *testing.T) {
	f := NewInFlight()

	const workers = 16
	var wg sync.WaitGroup
	var mu sync.Mutex
	admitted := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if f.Begin(42) {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, admitted)
}
