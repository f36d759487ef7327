package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/docsim/internal/errors"
	keycacheDomain "github.com/allisson/docsim/internal/keycache/domain"
	keycacheService "github.com/allisson/docsim/internal/keycache/service"
	keycacheServiceMocks "github.com/allisson/docsim/internal/keycache/service/mocks"
)

type testClock struct {
	mu  sync.Mutex
	now uint64
}

func (c *testClock) Now() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += uint64(d)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestUseCase(
	t *testing.T,
	authority keycacheService.Authority,
	capacity int,
	fallback bool,
	clock *testClock,
) KeyCacheUseCase {
	t.Helper()
	cache, err := keycacheService.NewCache(capacity, keycacheDomain.DefaultTTL, clock.Now)
	require.NoError(t, err)
	return NewKeyCacheUseCase(cache, authority, Options{
		FallbackEnabled: fallback,
		Concurrency:     4,
		Clock:           clock.Now,
	}, discardLogger())
}

func docRequest(id string) keycacheDomain.DerivationRequest {
	return keycacheDomain.NewDocumentRequest(keycacheDomain.DefaultKeyID(), id)
}

var errUnavailable = &keycacheDomain.AuthorityError{
	Code:    keycacheDomain.CodeUnavailable,
	Message: "vetKD not available on this subnet",
}

func TestKeyCacheUseCase_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_DerivedThenCached", func(t *testing.T) {
		authority := &keycacheServiceMocks.MockAuthority{}
		authority.On("Derive", ctx, docRequest("doc-1")).Return([]byte("key-1"), nil).Once()

		uc := newTestUseCase(t, authority, 10, false, &testClock{now: 1})

		source, err := uc.Resolve(ctx, "alice", "doc-1")
		require.NoError(t, err)
		assert.Equal(t, keycacheDomain.SourceDerived, source.Kind)
		assert.Equal(t, []byte("key-1"), source.Key)

		source, err = uc.Resolve(ctx, "alice", "doc-1")
		require.NoError(t, err)
		assert.Equal(t, keycacheDomain.SourceCached, source.Kind)
		assert.Equal(t, []byte("key-1"), source.Key)

		m := uc.Metrics(ctx)
		assert.Equal(t, uint64(1), m.KeyDerivations)
		assert.Equal(t, uint64(1), m.CacheHits)
		assert.Equal(t, uint64(1), m.CacheMisses)
		assert.Len(t, m.DerivationTimes, 1)
		assert.Equal(t, 1, uc.CacheStats(ctx).Size)

		events := uc.SecurityEvents(ctx)
		require.Len(t, events, 2)
		assert.Equal(t, keycacheDomain.EventKeyDerivation, events[0].Type)
		assert.Equal(t, keycacheDomain.EventCacheAccess, events[1].Type)
		assert.Equal(t, "alice", events[0].Principal)
		assert.NotEqual(t, events[0].ID, events[1].ID)

		authority.AssertExpectations(t)
	})

	t.Run("Success_ExpiredEntryIsRederived", func(t *testing.T) {
		clock := &testClock{now: 1}
		authority := &keycacheServiceMocks.MockAuthority{}
		authority.On("Derive", ctx, docRequest("doc-1")).Return([]byte("key-1"), nil).Twice()

		uc := newTestUseCase(t, authority, 10, false, clock)

		_, err := uc.Resolve(ctx, "alice", "doc-1")
		require.NoError(t, err)

		clock.Advance(keycacheDomain.DefaultTTL)

		source, err := uc.Resolve(ctx, "alice", "doc-1")
		require.NoError(t, err)
		assert.Equal(t, keycacheDomain.SourceDerived, source.Kind)
		assert.Equal(t, uint64(2), uc.Metrics(ctx).CacheMisses)

		authority.AssertExpectations(t)
	})

	t.Run("Success_WallClockStepBackDoesNotSkewLatency", func(t *testing.T) {
		clock := &testClock{now: uint64(time.Hour)}
		authority := &keycacheServiceMocks.MockAuthority{}
		authority.On("Derive", ctx, docRequest("doc-1")).
			Run(func(mock.Arguments) {
				clock.mu.Lock()
				clock.now = 1
				clock.mu.Unlock()
			}).
			Return([]byte("key-1"), nil).Once()

		uc := newTestUseCase(t, authority, 10, false, clock)

		source, err := uc.Resolve(ctx, "alice", "doc-1")
		require.NoError(t, err)
		assert.Equal(t, keycacheDomain.SourceDerived, source.Kind)

		m := uc.Metrics(ctx)
		require.Len(t, m.DerivationTimes, 1)
		assert.Less(t, m.DerivationTimes[0], uint64(1000))
		assert.Less(t, m.TotalDerivationTime, uint64(1000))
		authority.AssertExpectations(t)
	})

	t.Run("Success_LeastRecentlyUsedIsEvicted", func(t *testing.T) {
		authority := &keycacheServiceMocks.MockAuthority{}
		for _, id := range []string{"a", "b", "c"} {
			authority.On("Derive", ctx, docRequest(id)).Return([]byte(id), nil)
		}

		uc := newTestUseCase(t, authority, 2, false, &testClock{})

		for _, id := range []string{"a", "b", "a", "c"} {
			_, err := uc.Resolve(ctx, "alice", id)
			require.NoError(t, err)
		}

		source, err := uc.Resolve(ctx, "alice", "a")
		require.NoError(t, err)
		assert.Equal(t, keycacheDomain.SourceCached, source.Kind)

		source, err = uc.Resolve(ctx, "alice", "b")
		require.NoError(t, err)
		assert.Equal(t, keycacheDomain.SourceDerived, source.Kind)

		authority.AssertNumberOfCalls(t, "Derive", 4)
	})

	t.Run("Success_FallbackWhenUnavailable", func(t *testing.T) {
		authority := &keycacheServiceMocks.MockAuthority{}
		authority.On("Derive", ctx, docRequest("doc-1")).Return(nil, errUnavailable).Twice()

		uc := newTestUseCase(t, authority, 10, true, &testClock{now: 99})

		source, err := uc.Resolve(ctx, "alice", "doc-1")
		require.NoError(t, err)
		assert.Equal(t, keycacheDomain.SourceFallback, source.Kind)
		assert.Equal(t, keycacheService.FallbackKey("doc-1", 99, "alice"), source.Key)

		// Fallback keys are never cached.
		source, err = uc.Resolve(ctx, "alice", "doc-1")
		require.NoError(t, err)
		assert.Equal(t, keycacheDomain.SourceFallback, source.Kind)

		m := uc.Metrics(ctx)
		assert.Equal(t, uint64(2), m.FallbackUses)
		assert.Equal(t, uint64(0), m.KeyDerivations)
		assert.Equal(t, 0, uc.CacheStats(ctx).Size)

		authority.AssertExpectations(t)
	})

	t.Run("Error_UnavailableWithoutFallback", func(t *testing.T) {
		authority := &keycacheServiceMocks.MockAuthority{}
		authority.On("Derive", ctx, docRequest("doc-1")).Return(nil, errUnavailable).Once()

		uc := newTestUseCase(t, authority, 10, false, &testClock{})

		source, err := uc.Resolve(ctx, "alice", "doc-1")
		assert.Nil(t, source)
		assert.Same(t, errUnavailable, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrAuthority))
	})

	t.Run("Error_OtherFailureIsPropagatedVerbatim", func(t *testing.T) {
		rejected := &keycacheDomain.AuthorityError{Code: keycacheDomain.CodeRejected, Message: "permission denied"}
		authority := &keycacheServiceMocks.MockAuthority{}
		authority.On("Derive", ctx, docRequest("doc-1")).Return(nil, rejected).Once()

		uc := newTestUseCase(t, authority, 10, true, &testClock{})

		_, err := uc.Resolve(ctx, "alice", "doc-1")
		assert.Same(t, rejected, err)
		assert.Equal(t, "permission denied", err.Error())
		assert.Equal(t, uint64(0), uc.Metrics(ctx).FallbackUses)
	})

	t.Run("Error_EmptyDocumentID", func(t *testing.T) {
		authority := &keycacheServiceMocks.MockAuthority{}
		uc := newTestUseCase(t, authority, 10, true, &testClock{})

		_, err := uc.Resolve(ctx, "alice", "")
		assert.ErrorIs(t, err, keycacheDomain.ErrEmptyDocumentID)

		events := uc.SecurityEvents(ctx)
		require.Len(t, events, 1)
		assert.Equal(t, keycacheDomain.EventInvalidAccess, events[0].Type)
		authority.AssertNotCalled(t, "Derive", mock.Anything, mock.Anything)
	})
}

// slowAuthority returns the document id as key after a delay and tracks the
// highest number of concurrent calls.
type slowAuthority struct {
	delay    time.Duration
	inFlight atomic.Int32
	peak     atomic.Int32
}

func (s *slowAuthority) Derive(ctx context.Context, req keycacheDomain.DerivationRequest) ([]byte, error) {
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		peak := s.peak.Load()
		if n <= peak || s.peak.CompareAndSwap(peak, n) {
			break
		}
	}
	time.Sleep(s.delay)

	id := string(req.Path[1])
	if id == "broken" {
		return nil, errors.New("derivation failed")
	}
	return []byte(id), nil
}

func (s *slowAuthority) Check(ctx context.Context) error {
	return nil
}

func TestKeyCacheUseCase_BatchDerive(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_ResultsKeepInputOrder", func(t *testing.T) {
		authority := &slowAuthority{delay: 5 * time.Millisecond}
		uc := newTestUseCase(t, authority, 100, false, &testClock{})

		ids := make([]string, 20)
		for i := range ids {
			ids[i] = fmt.Sprintf("doc-%02d", i)
		}
		ids[7] = "broken"

		results, err := uc.BatchDerive(ctx, "alice", ids)
		require.NoError(t, err)
		require.Len(t, results, len(ids))

		for i, r := range results {
			if i == 7 {
				assert.Error(t, r.Err)
				assert.Nil(t, r.Source)
				continue
			}
			require.NoError(t, r.Err)
			assert.Equal(t, ids[i], r.Source.DocumentID)
			assert.Equal(t, []byte(ids[i]), r.Source.Key)
		}

		assert.LessOrEqual(t, authority.peak.Load(), int32(4))
		assert.Equal(t, uint64(19), uc.Metrics(ctx).KeyDerivations)
	})

	t.Run("Success_Empty", func(t *testing.T) {
		uc := newTestUseCase(t, &slowAuthority{}, 10, false, &testClock{})

		results, err := uc.BatchDerive(ctx, "alice", nil)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("Error_TooManyIDs", func(t *testing.T) {
		uc := newTestUseCase(t, &slowAuthority{}, 10, false, &testClock{})

		ids := make([]string, keycacheDomain.MaxBatchSize+1)
		_, err := uc.BatchDerive(ctx, "alice", ids)
		assert.ErrorIs(t, err, keycacheDomain.ErrTooManyDocuments)
	})
}

func TestKeyCacheUseCase_Administration(t *testing.T) {
	ctx := context.Background()
	authority := &keycacheServiceMocks.MockAuthority{}
	authority.On("Derive", ctx, mock.Anything).Return([]byte("k"), nil)

	uc := newTestUseCase(t, authority, 10, false, &testClock{})

	_, err := uc.Resolve(ctx, "alice", "doc-1")
	require.NoError(t, err)

	uc.ClearCache(ctx)
	assert.Equal(t, keycacheDomain.CacheStats{Size: 0, Capacity: 10}, uc.CacheStats(ctx))

	uc.ResetMetrics(ctx)
	assert.Equal(t, uint64(0), uc.Metrics(ctx).KeyDerivations)
	assert.Empty(t, uc.Metrics(ctx).DerivationTimes)
}

func TestKeyCacheUseCase_SecurityLogIsBounded(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCase(t, &slowAuthority{}, 10, false, &testClock{})

	for i := range keycacheDomain.MaxSecurityEvents + 1 {
		uc.LogSecurityEvent(ctx, keycacheDomain.EventRateLimitExceeded, "alice", fmt.Sprintf("event %d", i))
	}

	events := uc.SecurityEvents(ctx)
	assert.Len(t, events, keycacheDomain.MaxSecurityEvents+1-keycacheDomain.SecurityEventDrain)
	assert.Equal(t, fmt.Sprintf("event %d", keycacheDomain.SecurityEventDrain), events[0].Details)
	assert.Equal(t, fmt.Sprintf("event %d", keycacheDomain.MaxSecurityEvents), events[len(events)-1].Details)
}

func TestKeyCacheUseCase_CheckAuthority(t *testing.T) {
	ctx := context.Background()

	t.Run("available", func(t *testing.T) {
		uc := newTestUseCase(t, &slowAuthority{}, 10, false, &testClock{})

		status := uc.CheckAuthority(ctx)
		assert.True(t, status.Available)
		assert.Contains(t, status.Message, "is available")
	})

	t.Run("unavailable with fallback", func(t *testing.T) {
		uc := newTestUseCase(t, keycacheService.NewUnavailableAuthority(), 10, true, &testClock{})

		status := uc.CheckAuthority(ctx)
		assert.False(t, status.Available)
		assert.True(t, status.FallbackEnabled)
		assert.Contains(t, status.Message, "NOT available")
		assert.Contains(t, status.Message, "Fallback keys will be used.")
	})
}
