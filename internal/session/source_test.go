package session_test

import (
	"context"
	"testing"
	"time"

	"ayurdiet-backend/internal/navigation"
	"ayurdiet-backend/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func receive(t *testing.T, ch <-chan navigation.AuthStatus) navigation.AuthStatus {
	t.Helper()
	select {
	case st, ok := <-ch:
		require.True(t, ok, "channel closed")
		return st
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for status")
	}
	return navigation.AuthStatus{}
}

func TestSubscribeReceivesCurrentThenChanges(t *testing.T) {
	defer goleak.VerifyNone(t)

	src := session.NewSource(navigation.LoadingStatus())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := src.Subscribe(ctx)
	assert.Equal(t, navigation.Loading, receive(t, ch).Kind())

	patient := navigation.AuthenticatedAs(navigation.Patient)
	assert.True(t, src.Publish(patient))
	assert.Equal(t, patient, receive(t, ch))
	assert.Equal(t, patient, src.Current())
}

func TestPublishSameStatusIsNoop(t *testing.T) {
	src := session.NewSource(navigation.UnauthenticatedStatus())
	assert.False(t, src.Publish(navigation.UnauthenticatedStatus()))
	assert.True(t, src.Publish(navigation.AuthenticatedAs(navigation.Dietitian)))
}

func TestSlowSubscriberSeesLatestOnly(t *testing.T) {
	defer goleak.VerifyNone(t)

	src := session.NewSource(navigation.LoadingStatus())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := src.Subscribe(ctx)

	src.Publish(navigation.UnauthenticatedStatus())
	src.Publish(navigation.AuthenticatedAs(navigation.Patient))
	src.Publish(navigation.AuthenticatedAs(navigation.Dietitian))

	assert.Equal(t, navigation.AuthenticatedAs(navigation.Dietitian), receive(t, ch))
	select {
	case st := <-ch:
		t.Fatalf("unexpected extra status %s", st)
	default:
	}
}

func TestCancelClosesSubscription(t *testing.T) {
	defer goleak.VerifyNone(t)

	src := session.NewSource(navigation.LoadingStatus())
	ctx, cancel := context.WithCancel(context.Background())
	ch := src.Subscribe(ctx)
	receive(t, ch)
	assert.Equal(t, 1, src.Subscribers())

	cancel()
	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("subscription not closed")
	}
	assert.Equal(t, 0, src.Subscribers())

	// Publishing after the subscriber left must not block or panic.
	src.Publish(navigation.UnauthenticatedStatus())
}

func TestHub(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := session.NewHub()
	assert.Equal(t, navigation.Loading, hub.Source("u1").Current().Kind())

	hub.Publish("u1", navigation.AuthenticatedAs(navigation.Patient))
	role, ok := hub.Source("u1").Current().Role()
	require.True(t, ok)
	assert.Equal(t, navigation.Patient, role)

	ctx, cancel := context.WithCancel(context.Background())
	hub.Source("u2").Subscribe(ctx)
	hub.Forget("u2")
	assert.Equal(t, 2, hub.Len(), "watched source must survive Forget")

	hub.Forget("u1")
	assert.Equal(t, 1, hub.Len())

	cancel()
	require.Eventually(t, func() bool { return hub.Source("u2").Subscribers() == 0 }, time.Second, 10*time.Millisecond)
}

func TestHubPruneKeepsWatchedSources(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := session.NewHub()
	hub.Publish("idle", navigation.AuthenticatedAs(navigation.Patient))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub.Source("watched").Subscribe(ctx)

	assert.Equal(t, 1, hub.Prune())
	assert.Equal(t, 1, hub.Len())
	assert.Equal(t, navigation.Loading, hub.Source("idle").Current().Kind())

	cancel()
	require.Eventually(t, func() bool { return hub.Source("watched").Subscribers() == 0 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, 2, hub.Prune())
	assert.Zero(t, hub.Len())
}

func TestHubSubscribeSurvivesForget(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := session.NewHub()
	hub.Source("u")
	hub.Forget("u")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	updates := hub.Subscribe(ctx, "u")
	assert.Equal(t, navigation.Loading, receive(t, updates).Kind())

	hub.Forget("u")
	assert.Zero(t, hub.Prune())

	hub.Publish("u", navigation.UnauthenticatedStatus())
	assert.Equal(t, navigation.Unauthenticated, receive(t, updates).Kind())

	cancel()
	for range updates {
	}
}

func TestHubSubscribeRacesPrune(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := session.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-stop:
				return
			default:
				hub.Prune()
				hub.Forget("u")
			}
		}
	}()

	streams := make([]<-chan navigation.AuthStatus, 0, 100)
	for i := 0; i < 100; i++ {
		streams = append(streams, hub.Subscribe(ctx, "u"))
	}
	close(stop)
	<-done

	hub.Publish("u", navigation.UnauthenticatedStatus())
	for _, updates := range streams {
		got := receive(t, updates)
		if got.Kind() == navigation.Loading {
			got = receive(t, updates)
		}
		assert.Equal(t, navigation.Unauthenticated, got.Kind())
	}

	cancel()
	for _, updates := range streams {
		for range updates {
		}
	}
}
