package render

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/escape-room/pkg/engine"
	"github.com/jwebster45206/escape-room/pkg/scene"
	"github.com/redis/go-redis/v9"
)

// EventType represents the type of event being broadcast
type EventType string

const (
	EventTypeSceneRendered   EventType = "scene.rendered"
	EventTypeMessageReported EventType = "message.reported"
)

// ChannelPrefix is prepended to the session ID to form the Pub/Sub channel.
const ChannelPrefix = "escape-room:"

// Event is the JSON payload published for every render call.
type Event struct {
	Type      EventType    `json:"type"`
	SessionID string       `json:"session_id"`
	Seq       int64        `json:"seq"`
	Scene     *scene.Scene `json:"scene,omitempty"`
	Message   string       `json:"message,omitempty"`
	Time      time.Time    `json:"time"`
}

// SessionFunc returns the session the next event belongs to.
type SessionFunc func() uuid.UUID

// Spectator mirrors everything the player sees to Redis Pub/Sub so another
// terminal can follow along. Publishing failures are logged and never
// reach the engine.
type Spectator struct {
	client  *redis.Client
	logger  *slog.Logger
	timeout time.Duration
	session SessionFunc

	mu  sync.Mutex
	seq int64
}

var _ engine.Renderer = (*Spectator)(nil)

// NewSpectator connects to redisURL (redis://host:port/db) and verifies the
// connection.
func NewSpectator(ctx context.Context, redisURL string, timeout time.Duration, logger *slog.Logger) (*Spectator, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Connected to Redis for spectator feed", "addr", opt.Addr)

	return &Spectator{
		client:  rdb,
		logger:  logger,
		timeout: timeout,
		session: func() uuid.UUID { return uuid.Nil },
	}, nil
}

// WithSession sets how the spectator learns the current session ID.
// Returns the Spectator for method chaining
func (s *Spectator) WithSession(fn SessionFunc) *Spectator {
	s.session = fn
	return s
}

// Channel returns the Pub/Sub channel for a session.
func Channel(sessionID uuid.UUID) string {
	return ChannelPrefix + sessionID.String()
}

func (s *Spectator) RenderScene(sc scene.Scene) {
	sc = sc.Clone()
	s.publish(Event{Type: EventTypeSceneRendered, Scene: &sc})
}

func (s *Spectator) ReportMessage(text string) {
	s.publish(Event{Type: EventTypeMessageReported, Message: text})
}

func (s *Spectator) publish(event Event) {
	id := s.session()

	s.mu.Lock()
	s.seq++
	event.Seq = s.seq
	s.mu.Unlock()

	event.SessionID = id.String()
	event.Time = time.Now().UTC()

	data, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("Failed to marshal event", "error", err, "event_type", event.Type)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	channel := Channel(id)
	if err := s.client.Publish(ctx, channel, data).Err(); err != nil {
		s.logger.Warn("Failed to publish event", "error", err, "channel", channel)
		return
	}

	s.logger.Debug("Event published",
		"channel", channel,
		"event_type", event.Type,
		"seq", event.Seq,
	)
}

// Close closes the Redis connection
func (s *Spectator) Close() error {
	if err := s.client.Close(); err != nil {
		s.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	s.logger.Info("Redis connection closed")
	return nil
}
