package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"golang.org/x/sync/errgroup"

	"github.com/tomz197/pewpew/internal/config"
	"github.com/tomz197/pewpew/internal/draw"
	"github.com/tomz197/pewpew/internal/input"
	"github.com/tomz197/pewpew/internal/loop/client"
	"github.com/tomz197/pewpew/internal/loop/server"
	"github.com/tomz197/pewpew/internal/spectate"
)

const (
	defaultHost         = "::"
	defaultPort         = "2222"
	defaultHostKeyPath  = "/app/keys/host_key"
	defaultSpectateAddr = ":8081"
)

func main() {
	if err := config.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := config.NewLogger(os.Stderr, "ssh")

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	spectateAddr := config.GetEnv("SPECTATE_ADDR", defaultSpectateAddr)
	drain := config.GetEnvDuration("SHUTDOWN_DRAIN", 15*time.Second)
	logger.Info("SSH config", "host", host, "port", port, "hostKeyPath", hostKeyPath, "spectate", spectateAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	hub := spectate.NewHub(logger.WithPrefix("spectate"))
	registry := server.NewRegistry(hub, logger.WithPrefix("registry"))

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			gameMiddleware(registry, logger),
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}
	web := &http.Server{
		Addr:              spectateAddr,
		Handler:           spectate.Handler(hub, registry),
		ReadHeaderTimeout: 5 * time.Second,
	}

	var g errgroup.Group
	g.Go(func() error {
		hub.Run(hubCtx)
		return nil
	})
	g.Go(func() error {
		logger.Info("Starting SSH server", "addr", net.JoinHostPort(host, port))
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			stop()
			return fmt.Errorf("ssh server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		logger.Info("Starting spectator server", "addr", spectateAddr)
		if err := web.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			stop()
			return fmt.Errorf("spectator server: %w", err)
		}
		return nil
	})

	<-ctx.Done()
	logger.Info("Shutting down server...")

	// Players see the quit screen before their sessions close.
	registry.Shutdown(drain)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		logger.Error("ssh shutdown", "err", err)
	}
	if err := web.Shutdown(shutdownCtx); err != nil {
		logger.Error("spectator shutdown", "err", err)
	}
	stopHub()

	if err := g.Wait(); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

// gameMiddleware runs one console per SSH session.
func gameMiddleware(registry *server.Registry, logger *log.Logger) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
				return
			}

			session, ctx := registry.Register(sess.Context(), sess.User())
			defer registry.Unregister(session.ID)
			sessLog := logger.With("user", sess.User(), "session", session.ID)
			sessLog.Info("New game session", "terminal", pty.Term, "size", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height))

			// Create a terminal size tracker that updates on window changes
			sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
			go func() {
				for win := range winCh {
					sizeTracker.update(win.Width, win.Height)
				}
			}()

			display := draw.NewTerminal(sess, sizeTracker.getSize)
			_ = display.Open()
			stream := input.StartStream(bufio.NewReader(sess))
			c := client.NewClient(stream, display, client.Options{
				Debug:    io.MultiWriter(display.Console(), sessLog.StandardLog(log.StandardLogOptions{ForceLevel: log.DebugLevel}).Writer()),
				Observer: registry.Observer(session),
				Logger:   sessLog,
			})
			if err := c.Run(ctx); err != nil {
				sessLog.Error("Game error", "err", err)
			}
			_ = display.Close()

			sessLog.Info("Session ended")
			next(sess)
		}
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
