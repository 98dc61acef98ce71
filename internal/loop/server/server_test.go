package server

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/pewpew/internal/loop"
	"github.com/tomz197/pewpew/internal/loop/config"
)

type recordPublisher struct {
	mu     sync.Mutex
	frames []loop.Frame
	users  []string
}

func (p *recordPublisher) Publish(session, username string, f loop.Frame) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frames = append(p.frames, f)
	p.users = append(p.users, username)
}

func (p *recordPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.frames)
}

func newTestRegistry(pub Publisher) *Registry {
	return NewRegistry(pub, log.New(io.Discard))
}

func TestRegisterUnregister(t *testing.T) {
	r := newTestRegistry(nil)
	a, ctxA := r.Register(context.Background(), "alice")
	b, _ := r.Register(context.Background(), "bob")

	if a.ID == b.ID || a.ID == "" {
		t.Fatalf("session ids %q %q", a.ID, b.ID)
	}
	if r.Len() != 2 || len(r.Snapshot().Sessions) != 2 {
		t.Fatalf("len = %d", r.Len())
	}

	r.Unregister(a.ID)
	if ctxA.Err() == nil {
		t.Fatal("unregister did not cancel the session context")
	}
	if r.Len() != 1 {
		t.Fatalf("len after unregister = %d", r.Len())
	}
	if _, ok := r.Frame(a.ID); ok {
		t.Fatal("frame still available for removed session")
	}

	// Unknown ids are ignored.
	r.Unregister("nope")
}

func TestObserverThrottlesPublishing(t *testing.T) {
	pub := &recordPublisher{}
	r := newTestRegistry(pub)
	s, _ := r.Register(context.Background(), "alice")

	now := time.Now()
	r.update(s, loop.Frame{Screen: loop.ScreenPlaying, Score: 1}, now)
	r.update(s, loop.Frame{Screen: loop.ScreenPlaying, Score: 2}, now.Add(config.SpectateInterval/2))
	r.update(s, loop.Frame{Screen: loop.ScreenPlaying, Score: 3}, now.Add(config.SpectateInterval))

	if pub.count() != 2 {
		t.Fatalf("published %d frames, want 2", pub.count())
	}
	if pub.users[0] != "alice" {
		t.Fatalf("username = %q", pub.users[0])
	}
	f, ok := r.Frame(s.ID)
	if !ok || f.Score != 3 {
		t.Fatalf("latest frame = %+v", f)
	}

	obs := r.Observer(s)
	obs(loop.Frame{Score: 4})
	if f, _ := r.Frame(s.ID); f.Score != 4 {
		t.Fatal("observer did not record frame")
	}
}

func TestSnapshotTopScores(t *testing.T) {
	r := newTestRegistry(nil)
	now := time.Now()
	scores := map[string]int{"a": 5, "b": 9, "c": 1, "d": 7, "e": 3, "f": 8}
	for name, score := range scores {
		s, _ := r.Register(context.Background(), name)
		r.update(s, loop.Frame{Screen: loop.ScreenPlaying, Score: score}, now)
	}
	idle, _ := r.Register(context.Background(), "idle")
	r.update(idle, loop.Frame{Screen: loop.ScreenIntro, Score: 100}, now)

	top := r.Snapshot().TopScores
	if len(top) != config.TopScoresCount {
		t.Fatalf("top scores = %d entries", len(top))
	}
	want := []int{9, 8, 7, 5, 3}
	for i, w := range want {
		if top[i].Score != w {
			t.Fatalf("top[%d] = %+v, want score %d", i, top[i], w)
		}
	}
}

func TestShutdownWaitsForSessions(t *testing.T) {
	r := newTestRegistry(nil)
	s, ctx := r.Register(context.Background(), "alice")

	go func() {
		<-ctx.Done()
		r.Unregister(s.ID)
	}()

	start := time.Now()
	r.Shutdown(5 * time.Second)
	if r.Len() != 0 {
		t.Fatal("session still registered")
	}
	if time.Since(start) > 2*time.Second {
		t.Fatal("shutdown waited for the full timeout")
	}
}

func TestShutdownTimeout(t *testing.T) {
	r := newTestRegistry(nil)
	r.Register(context.Background(), "stuck")

	start := time.Now()
	r.Shutdown(300 * time.Millisecond)
	if time.Since(start) < 300*time.Millisecond {
		t.Fatal("shutdown returned before timeout")
	}
	if r.Len() != 1 {
		t.Fatal("stuck session removed")
	}
}
