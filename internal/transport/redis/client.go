package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const DefaultChannel = "tictactoe:outcomes"

// Client fans finished rounds out over redis pub/sub. Nothing is stored.
type Client struct {
	client  *redis.Client
	channel string
}

// Connect - opens a redis connection and checks it with PING.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	conn := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := conn.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return conn, nil
}

func New(client *redis.Client, channel string) *Client {
	if channel == "" {
		channel = DefaultChannel
	}

	return &Client{
		client:  client,
		channel: channel,
	}
}

// PublishOutcome - publishes a finished round as JSON.
func (that *Client) PublishOutcome(ctx context.Context, event entity.OutcomeEvent) error {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal outcome event: %w", err)
	}

	if err = that.client.Publish(ctx, that.channel, eventJSON).Err(); err != nil {
		return fmt.Errorf("failed to publish outcome in Redis: %w", err)
	}

	return nil
}

// Subscribe - decodes outcome events from the channel until ctx is done.
func (that *Client) Subscribe(ctx context.Context) (<-chan entity.OutcomeEvent, error) {
	pubsub := that.client.Subscribe(ctx, that.channel)

	// wait for the subscription confirmation so no event published afterwards is lost
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", that.channel, err)
	}

	events := make(chan entity.OutcomeEvent)
	go func() {
		defer close(events)
		defer pubsub.Close()

		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}

				var event entity.OutcomeEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					continue
				}

				select {
				case events <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return events, nil
}
