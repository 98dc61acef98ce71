// Package client runs one console session: it feeds host input into an
// engine, converts wall time into hardware ticks and presents frames.
package client

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/pewpew/internal/clock"
	"github.com/tomz197/pewpew/internal/input"
	"github.com/tomz197/pewpew/internal/loop"
	"github.com/tomz197/pewpew/internal/loop/config"
)

// Display shows engine frames.
type Display interface {
	Present(f loop.Frame) error
}

// Observer receives every presented frame. It must not block.
type Observer func(f loop.Frame)

// Options configures a Client.
type Options struct {
	Rand     *rand.Rand   // Engine random source
	Debug    io.Writer    // Debug channel replies
	Knobs    *input.Knobs // Analog controls; created when nil
	Observer Observer     // Called after each presented frame
	Logger   *log.Logger
}

// Client handles input, timing and rendering for a single console.
type Client struct {
	engine  *loop.Engine
	stepper *clock.Stepper
	stream  *input.Stream
	knobs   *input.Knobs
	display Display
	observe Observer
	logger  *log.Logger
	state   *State
}

// NewClient creates a client reading from stream and presenting on display.
func NewClient(stream *input.Stream, display Display, opts Options) *Client {
	knobs := opts.Knobs
	if knobs == nil {
		knobs = input.NewKnobs()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &Client{
		engine: loop.NewEngine(loop.Options{
			Rand:   opts.Rand,
			Debug:  opts.Debug,
			Analog: knobs,
		}),
		stepper: clock.NewStepper(),
		stream:  stream,
		knobs:   knobs,
		display: display,
		observe: opts.Observer,
		logger:  logger,
		state:   NewState(time.Now()),
	}
}

// Engine returns the session's engine.
func (c *Client) Engine() *loop.Engine {
	return c.engine
}

// Run starts the client loop. Blocks until the player quits, the input
// closes, or ctx is cancelled and the quit screen has been shown.
func (c *Client) Run(ctx context.Context) error {
	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		delta := frameStart.Sub(lastTime)
		lastTime = frameStart

		if err := c.frame(ctx, frameStart, delta); err != nil {
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}
	return nil
}

// frame runs one host frame: input, the ticks due for delta, then output.
func (c *Client) frame(ctx context.Context, now time.Time, delta time.Duration) error {
	if ctx.Err() != nil && !c.engine.Done() {
		c.logger.Debug("Session interrupted", "err", ctx.Err())
		c.engine.Quit()
	}

	c.processInput(now)
	if !c.state.Running {
		return nil
	}

	for n := c.stepper.Advance(delta); n > 0; n-- {
		c.engine.Tick()
	}

	f := c.engine.Frame()
	if err := c.display.Present(f); err != nil {
		return fmt.Errorf("present frame: %w", err)
	}
	c.state.Frames++
	if c.observe != nil {
		c.observe(f)
	}

	if c.engine.Done() && c.state.lingerDone(now) {
		c.state.Running = false
	}
	return nil
}

// processInput reads input and hands it to the engine.
func (c *Client) processInput(now time.Time) {
	in := input.ReadInput(c.stream)

	if len(in.Bytes) > 0 || anyLine(in.Lines) {
		c.state.touch(now)
	} else if idle := c.state.idleFor(now); idle > config.InactivityDisconnectUser*time.Second {
		if !c.engine.Done() {
			c.logger.Info("Disconnecting inactive player", "idle", idle.Round(time.Second))
			c.engine.Quit()
		}
	} else if idle > config.InactivityWarnUser*time.Second && !c.state.idle {
		c.state.idle = true
		c.logger.Debug("Player inactive", "idle", idle.Round(time.Second))
	}

	// Knob keys double as digits and signs while a number is being typed.
	if !c.engine.AwaitingInput() {
		c.knobs.NudgeTurret(in.Turret)
		c.knobs.NudgeSpeed(in.Speed)
	}

	c.engine.SetLines(in.Lines)
	for _, b := range in.Bytes {
		c.engine.HandleByte(b)
	}

	if in.Closed {
		c.state.Running = false
	}
}

func anyLine(l input.Lines) bool {
	for _, v := range l {
		if v {
			return true
		}
	}
	return false
}
