package client

import (
	"context"
	"fmt"
	"net/url"

	"quotation-backend/internal/models"

	"github.com/gorilla/websocket"
)

// Watch subscribes to item updates of one quotation at the websocket feed wsURL
// and calls fn for every event until ctx is done or the connection drops. An
// empty number subscribes to every quotation.
func Watch(ctx context.Context, wsURL, number string, fn func(models.ItemUpdatedEvent)) error {
	u, err := url.Parse(wsURL)
	if err != nil {
		return fmt.Errorf("parse feed url: %w", err)
	}
	if number != "" {
		q := u.Query()
		q.Set("q", number)
		u.RawQuery = q.Encode()
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", u.Redacted(), err)
	}
	defer conn.Close()

	// Unblock ReadJSON when the caller gives up
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-stop:
		}
	}()

	for {
		var event models.ItemUpdatedEvent
		if err := conn.ReadJSON(&event); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read feed: %w", err)
		}
		if event.Type != models.EventItemUpdated {
			continue
		}
		fn(event)
	}
}
