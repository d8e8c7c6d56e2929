package ws

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestBroadcastSkipsSender(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	sender := &Client{hub: hub, send: make(chan []byte, 1)}
	peer := &Client{hub: hub, send: make(chan []byte, 1)}
	hub.register <- sender
	hub.register <- peer

	hub.Broadcast(sender, []byte("hello"))

	select {
	case got := <-peer.send:
		if string(got) != "hello" {
			t.Fatalf("peer received %q, want %q", got, "hello")
		}
	case <-time.After(time.Second):
		t.Fatal("peer never received the broadcast")
	}

	select {
	case payload := <-sender.send:
		t.Fatalf("sender received its own broadcast: %q", payload)
	default:
	}
}

func TestBroadcastReachesAllPeers(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	sender := &Client{hub: hub, send: make(chan []byte, 1)}
	peers := make([]*Client, 3)
	hub.register <- sender
	for i := range peers {
		peers[i] = &Client{hub: hub, send: make(chan []byte, 1)}
		hub.register <- peers[i]
	}

	hub.Broadcast(sender, []byte("ping"))

	for i, peer := range peers {
		select {
		case got := <-peer.send:
			if string(got) != "ping" {
				t.Fatalf("peer %d received %q, want %q", i, got, "ping")
			}
		case <-time.After(time.Second):
			t.Fatalf("peer %d never received the broadcast", i)
		}
	}
}

func TestSlowPeerIsDropped(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	sender := &Client{hub: hub, send: make(chan []byte, 1)}
	healthy := &Client{hub: hub, send: make(chan []byte, 2)}
	slow := &Client{hub: hub, send: make(chan []byte, 1)}
	slow.send <- []byte("backlog") // buffer full, next delivery cannot land
	hub.register <- sender
	hub.register <- healthy
	hub.register <- slow

	hub.Broadcast(sender, []byte("one"))
	hub.Broadcast(sender, []byte("two"))

	// hub events are handled in order, so once the healthy peer has both
	// messages the first fanout, and the drop, are complete
	for _, want := range []string{"one", "two"} {
		select {
		case got := <-healthy.send:
			if string(got) != want {
				t.Fatalf("healthy peer received %q, want %q", got, want)
			}
		case <-time.After(time.Second):
			t.Fatalf("healthy peer never received %q", want)
		}
	}

	if got := <-slow.send; string(got) != "backlog" {
		t.Fatalf("slow peer buffer held %q, want %q", got, "backlog")
	}
	// the hub closes a dropped peer's send channel
	select {
	case payload, ok := <-slow.send:
		if ok {
			t.Fatalf("slow peer unexpectedly received %q", payload)
		}
	case <-time.After(time.Second):
		t.Fatal("slow peer was not dropped")
	}
}
