package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/pewpew/internal/config"
	"github.com/tomz197/pewpew/internal/draw"
	"github.com/tomz197/pewpew/internal/input"
	"github.com/tomz197/pewpew/internal/loop/client"
	"github.com/tomz197/pewpew/internal/sound"
)

const (
	displayANSI  = "ansi"
	displayTcell = "tcell"
)

func main() {
	if err := config.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger, closeLog, err := openLog(config.GetEnv("GAME_LOG_FILE", ""))
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	player, closeSound := openSound(logger)
	defer closeSound()
	buzzer := sound.NewBuzzer(player)

	// Each display adds its console pane to the debug channel.
	opts := client.Options{
		Debug:    logger.StandardLog(log.StandardLogOptions{ForceLevel: log.DebugLevel}).Writer(),
		Observer: buzzer.Observe,
		Logger:   logger,
	}

	switch mode := config.GetEnv("GAME_DISPLAY", displayANSI); mode {
	case displayTcell:
		return runTcell(ctx, opts)
	case displayANSI:
		return runANSI(ctx, opts)
	default:
		return fmt.Errorf("unknown GAME_DISPLAY %q", mode)
	}
}

// runANSI plays on the controlling terminal in raw mode.
func runANSI(ctx context.Context, opts client.Options) error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	display := draw.NewTerminal(os.Stdout, nil)
	if err := display.Open(); err != nil {
		return err
	}
	defer display.Close()

	opts.Debug = io.MultiWriter(display.Console(), opts.Debug)
	stream := input.StartStream(bufio.NewReader(os.Stdin))
	return client.NewClient(stream, display, opts).Run(ctx)
}

// runTcell plays through a tcell screen, which handles raw mode and key
// decoding itself.
func runTcell(ctx context.Context, opts client.Options) error {
	stream := input.NewStream()
	display, err := draw.NewTcellDisplay(stream)
	if err != nil {
		return err
	}
	defer display.Close()
	opts.Debug = io.MultiWriter(display.Console(), opts.Debug)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-display.Done():
			cancel()
		case <-ctx.Done():
		}
	}()

	return client.NewClient(stream, display, opts).Run(ctx)
}

// openSound returns the speaker when GAME_SOUND is enabled and the device
// opens, and a silent player otherwise.
func openSound(logger *log.Logger) (sound.Player, func()) {
	if !config.GetEnvBool("GAME_SOUND", false) {
		return sound.Silent{}, func() {}
	}
	s, err := sound.NewSpeaker(logger.WithPrefix("sound"))
	if err != nil {
		logger.Warn("Sound disabled", "err", err)
		return sound.Silent{}, func() {}
	}
	return s, s.Close
}

// openLog sends logs to path, or discards them when path is empty. The
// terminal is owned by the game while it runs.
func openLog(path string) (*log.Logger, func(), error) {
	if path == "" {
		return config.NewLogger(io.Discard, "game"), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	return config.NewLogger(f, "game"), func() { _ = f.Close() }, nil
}

// Ensure both displays satisfy the client contract.
var (
	_ client.Display = (*draw.Terminal)(nil)
	_ client.Display = (*draw.TcellDisplay)(nil)
)
