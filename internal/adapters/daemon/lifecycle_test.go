package daemon_test

import (
	"context"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/railfare/internal/adapters/daemon"
	"google.golang.org/grpc"
)

func TestLifecycle_IdleShutdown(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		lc := daemon.NewLifecycle(100 * time.Millisecond)

		select {
		case <-lc.Done():
		case <-time.After(200 * time.Millisecond):
			t.Fatal("expected idle shutdown")
		}
	})
}

func TestLifecycle_TouchPostponesShutdown(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		lc := daemon.NewLifecycle(100 * time.Millisecond)

		time.Sleep(50 * time.Millisecond)
		lc.Touch()

		select {
		case <-lc.Done():
			t.Fatal("shutdown should have been postponed")
		case <-time.After(60 * time.Millisecond):
		}
		assert.Equal(t, 40*time.Millisecond, lc.IdleRemaining())
		lc.Shutdown()
	})
}

func TestLifecycle_NoTimeout(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		lc := daemon.NewLifecycle(0)

		select {
		case <-lc.Done():
			t.Fatal("a zero timeout never shuts down on its own")
		case <-time.After(24 * time.Hour):
		}
		assert.Zero(t, lc.IdleRemaining())
		assert.Equal(t, 24*time.Hour, lc.Uptime())

		lc.Shutdown()
		lc.Shutdown()
		<-lc.Done()
	})
}

func TestLifecycle_InterceptorTouches(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		lc := daemon.NewLifecycle(time.Hour)
		started := lc.LastActivity()

		time.Sleep(time.Minute)
		intercept := lc.Interceptor()
		resp, err := intercept(t.Context(), "req", &grpc.UnaryServerInfo{},
			func(_ context.Context, req any) (any, error) { return req, nil })

		assert.NoError(t, err)
		assert.Equal(t, "req", resp)
		assert.Equal(t, started.Add(time.Minute), lc.LastActivity())
		lc.Shutdown()
	})
}
