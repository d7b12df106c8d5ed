package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/railfare/internal/adapters/session"
	"go.trai.ch/railfare/internal/core/domain"
	"go.trai.ch/railfare/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func quietLogger(ctrl *gomock.Controller) *mocks.MockLogger {
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	return logger
}

func TestManager_SingleFlightRefresh(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		source := mocks.NewMockCredentialSource(ctrl)
		source.EXPECT().FetchCredential(gomock.Any()).DoAndReturn(func(context.Context) (string, error) {
			time.Sleep(500 * time.Millisecond)
			return "JSESSIONID=abc", nil
		}).Times(1)

		m := session.NewManager(source, quietLogger(ctrl), time.Hour)

		var wg sync.WaitGroup
		cookies := make([]string, 20)
		for i := range cookies {
			wg.Go(func() {
				s, err := m.Get(t.Context())
				if assert.NoError(t, err) {
					cookies[i] = s.Cookie
				}
			})
		}
		wg.Wait()

		for _, c := range cookies {
			assert.Equal(t, "JSESSIONID=abc", c)
		}
	})
}

func TestManager_RefreshesAfterWindow(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		source := mocks.NewMockCredentialSource(ctrl)
		gomock.InOrder(
			source.EXPECT().FetchCredential(gomock.Any()).Return("first", nil),
			source.EXPECT().FetchCredential(gomock.Any()).Return("second", nil),
		)

		m := session.NewManager(source, quietLogger(ctrl), 180*time.Minute)

		s, err := m.Get(t.Context())
		require.NoError(t, err)
		assert.Equal(t, "first", s.Cookie)

		time.Sleep(179 * time.Minute)
		s, err = m.Get(t.Context())
		require.NoError(t, err)
		assert.Equal(t, "first", s.Cookie)

		time.Sleep(2 * time.Minute)
		s, err = m.Get(t.Context())
		require.NoError(t, err)
		assert.Equal(t, "second", s.Cookie)
	})
}

func TestManager_Invalidate(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockCredentialSource(ctrl)
	source.EXPECT().FetchCredential(gomock.Any()).Return("c", nil).Times(2)

	m := session.NewManager(source, quietLogger(ctrl), time.Hour)
	_, err := m.Get(t.Context())
	require.NoError(t, err)

	m.Invalidate()
	_, err = m.Get(t.Context())
	require.NoError(t, err)
}

func TestManager_RefreshFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockCredentialSource(ctrl)
	source.EXPECT().FetchCredential(gomock.Any()).Return("", errors.New("connection refused"))

	m := session.NewManager(source, quietLogger(ctrl), time.Hour)
	_, err := m.Get(t.Context())
	require.ErrorIs(t, err, domain.ErrSessionRefresh)
	assert.True(t, domain.IsUpstream(err))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestManager_RefreshFailureKeepsUpstreamCause(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockCredentialSource(ctrl)
	source.EXPECT().FetchCredential(gomock.Any()).
		Return("", domain.Annotate(domain.ErrUpstream, "endpoint", "fetch_cookies", "status_code", 503))

	m := session.NewManager(source, quietLogger(ctrl), time.Hour)
	_, err := m.Get(t.Context())
	require.ErrorIs(t, err, domain.ErrSessionRefresh)
	require.ErrorIs(t, err, domain.ErrUpstream)
}

func TestManager_RefreshCanceledKeepsContextError(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		source := mocks.NewMockCredentialSource(ctrl)
		release := make(chan struct{})
		source.EXPECT().FetchCredential(gomock.Any()).DoAndReturn(func(context.Context) (string, error) {
			<-release
			return "c", nil
		})

		m := session.NewManager(source, quietLogger(ctrl), time.Hour)
		go func() {
			_, _ = m.Get(context.Background())
		}()
		synctest.Wait()

		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		_, err := m.Get(ctx)
		require.ErrorIs(t, err, domain.ErrSessionRefresh)
		require.ErrorIs(t, err, context.Canceled)

		close(release)
		synctest.Wait()
	})
}
