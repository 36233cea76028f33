package client

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"quotation-backend/internal/models"

	"github.com/gorilla/websocket"
)

func TestWatch(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "Q100" {
			t.Errorf("q = %q, want Q100", got)
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		conn.WriteJSON(map[string]string{"type": "alert"})
		conn.WriteJSON(models.ItemUpdatedEvent{Type: models.EventItemUpdated, QuotationNumber: "Q100", ItemCode: "IT-1", Tier: models.TierMedium})
		// Hold the connection until the client goes away
		conn.ReadMessage()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var got []models.ItemUpdatedEvent
	err := Watch(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", "Q100", func(e models.ItemUpdatedEvent) {
		got = append(got, e)
		cancel()
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Watch error = %v, want context.Canceled", err)
	}
	if len(got) != 1 || got[0].ItemCode != "IT-1" || got[0].Tier != models.TierMedium {
		t.Fatalf("events = %+v", got)
	}
}

func TestWatchConnectError(t *testing.T) {
	if err := Watch(context.Background(), "ws://127.0.0.1:1/ws", "", func(models.ItemUpdatedEvent) {}); err == nil {
		t.Fatal("expected connection error")
	}
}

func TestDownloadPDF(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/items/Q100/pdf" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.3 test"))
	}))
	defer srv.Close()

	data, err := New(srv.URL, nil).DownloadPDF(context.Background(), "Q100")
	if err != nil {
		t.Fatalf("DownloadPDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("data = %q", data)
	}
}
