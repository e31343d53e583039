package net

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"time"

	"MyDrawingPad/internal/state"

	"github.com/cenkalti/backoff"
	"github.com/gorilla/websocket"
)

// Follower keeps a viewer attached to a mirror, reconnecting with
// exponential backoff until its context ends.
type Follower struct {
	Addr       string
	OnSnapshot func(state.Snapshot)
	OnStatus   func(string)
	Log        *log.Logger

	dialer *websocket.Dialer
}

func NewFollower(addr string, onSnapshot func(state.Snapshot)) *Follower {
	return &Follower{
		Addr:       addr,
		OnSnapshot: onSnapshot,
		Log:        log.Default(),
		dialer:     websocket.DefaultDialer,
	}
}

// Run blocks until ctx is cancelled.
func (f *Follower) Run(ctx context.Context) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 500 * time.Millisecond
	policy.MaxInterval = 10 * time.Second
	policy.MaxElapsedTime = 0

	op := func() error {
		connected, err := f.session(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if connected {
			policy.Reset()
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		f.status(fmt.Sprintf("Disconnected (%v), retrying in %s", err, wait.Round(time.Millisecond)))
	}
	return backoff.RetryNotify(op, backoff.WithContext(policy, ctx), notify)
}

// session reads snapshots from one connection until it fails. connected
// reports whether the dial succeeded.
func (f *Follower) session(ctx context.Context) (connected bool, err error) {
	u := url.URL{Scheme: "ws", Host: f.Addr, Path: "/ws"}
	conn, _, err := f.dialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return false, fmt.Errorf("dial %s: %w", f.Addr, err)
	}
	defer conn.Close()
	f.status("Connected to " + f.Addr)

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	var last uint64
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return true, fmt.Errorf("read: %w", err)
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			f.Log.Printf("[VIEWER] Ignoring malformed message: %v", err)
			continue
		}
		if msg.Type != MessageSnapshot {
			continue
		}
		if msg.Snapshot.Revision != 0 && msg.Snapshot.Revision <= last {
			continue
		}
		last = msg.Snapshot.Revision
		if f.OnSnapshot != nil {
			f.OnSnapshot(msg.Snapshot)
		}
	}
}

func (f *Follower) status(s string) {
	if f.Log != nil {
		f.Log.Printf("[VIEWER] %s", s)
	}
	if f.OnStatus != nil {
		f.OnStatus(s)
	}
}
