package render

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jwebster45206/escape-room/pkg/engine"
	"github.com/jwebster45206/escape-room/pkg/scene"
	"github.com/jwebster45206/escape-room/pkg/shuffle"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func setupTestRedis(t *testing.T) (*Spectator, *miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}

	ctx := context.Background()
	sp, err := NewSpectator(ctx, "redis://"+mr.Addr(), time.Second, testLogger())
	if err != nil {
		mr.Close()
		t.Fatalf("Failed to create spectator: %v", err)
	}

	watcher := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	t.Cleanup(func() {
		_ = watcher.Close()
		_ = sp.Close()
		mr.Close()
	})
	return sp, mr, watcher
}

func subscribe(t *testing.T, rdb *redis.Client, channel string) <-chan *redis.Message {
	t.Helper()
	ctx := context.Background()
	sub := rdb.Subscribe(ctx, channel)
	// Wait for the subscription to be confirmed before publishing.
	_, err := sub.Receive(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sub.Close() })
	return sub.Channel()
}

func receive(t *testing.T, ch <-chan *redis.Message) Event {
	t.Helper()
	select {
	case msg := <-ch:
		var ev Event
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &ev))
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestSpectator_PublishesSceneAndMessage(t *testing.T) {
	sp, _, watcher := setupTestRedis(t)
	id := uuid.New()
	sp.WithSession(func() uuid.UUID { return id })

	ch := subscribe(t, watcher, Channel(id))

	sc := scene.Scene{
		ID:      "clock_room",
		Text:    "Clocks everywhere.",
		Choices: []scene.Choice{{Label: "Smash them", Outcome: scene.OutcomeProgress}},
	}
	sp.RenderScene(sc)
	sp.ReportMessage("Rooms Cleared: 1 / 6")

	first := receive(t, ch)
	assert.Equal(t, EventTypeSceneRendered, first.Type)
	assert.Equal(t, id.String(), first.SessionID)
	assert.Equal(t, int64(1), first.Seq)
	require.NotNil(t, first.Scene)
	assert.True(t, sc.Equal(*first.Scene))

	second := receive(t, ch)
	assert.Equal(t, EventTypeMessageReported, second.Type)
	assert.Equal(t, "Rooms Cleared: 1 / 6", second.Message)
	assert.Equal(t, int64(2), second.Seq)
	assert.Nil(t, second.Scene)
}

func TestSpectator_FollowsEngineSessions(t *testing.T) {
	sp, _, watcher := setupTestRedis(t)

	progress := []scene.Choice{{Label: "Next", Outcome: scene.OutcomeProgress}}
	cat := scene.NewCatalog("test",
		scene.Scene{ID: "start", Text: "Start", Choices: progress},
		scene.Scene{ID: "escape", Text: "Out", Choices: []scene.Choice{{Label: "Again", Outcome: scene.OutcomeRestart}}},
		[]scene.Scene{{ID: "only_room", Text: "Room", Choices: progress}},
	)

	var eng *engine.Engine
	sp.WithSession(func() uuid.UUID { return eng.Status().SessionID })
	eng = engine.New(cat, sp, testLogger()).WithSource(shuffle.NewSource(1))

	// Subscribe by pattern since the session ID is created by Init.
	ctx := context.Background()
	psub := watcher.PSubscribe(ctx, ChannelPrefix+"*")
	_, err := psub.Receive(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = psub.Close() })
	ch := psub.Channel()

	eng.Init()
	eng.ApplyChoice(scene.OutcomeProgress)

	start := receive(t, ch)
	next := receive(t, ch)
	assert.Equal(t, "start", start.Scene.ID)
	assert.Equal(t, "escape", next.Scene.ID)
	assert.Equal(t, eng.Status().SessionID.String(), start.SessionID)
	assert.Equal(t, start.SessionID, next.SessionID)
}

func TestSpectator_PublishFailureIsSwallowed(t *testing.T) {
	sp, mr, _ := setupTestRedis(t)
	mr.Close()

	assert.NotPanics(t, func() {
		sp.RenderScene(scene.Scene{ID: "x", Text: "x"})
		sp.ReportMessage("still fine")
	})
}

func TestNewSpectator_Errors(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewSpectator(ctx, "not a url", time.Second, testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse redis URL")

	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	_, err = NewSpectator(ctx, "redis://"+addr, time.Second, testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to redis")
}

func TestChannel(t *testing.T) {
	id := uuid.MustParse("8f14e45f-ceea-467f-a0e6-4e1a6d8d0b9e")
	assert.Equal(t, "escape-room:8f14e45f-ceea-467f-a0e6-4e1a6d8d0b9e", Channel(id))
}
