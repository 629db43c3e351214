package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"github.com/robfig/cron/v3"

	"phoenlcd/internal/config"
	appLog "phoenlcd/internal/log"
	"phoenlcd/internal/tft"
)

// flagConfig holds CLI flag values.
type flagConfig struct {
	configPath string
	simulate   bool
	dumpPath   string
	flags      string
	icon       string
	caption    string
	progress   string
	once       bool
	packPath   string
	outPath    string
}

func main() {
	flags := parseFlags()

	if flags.packPath != "" {
		if err := packIcon(flags.packPath, flags.outPath); err != nil {
			appLog.Error("failed to pack icon", err, "in", flags.packPath)
			os.Exit(1)
		}
		appLog.Info("icon packed", "in", flags.packPath, "out", flags.outPath)
		return
	}

	appLog.Info("phoenlcd starting", "version", "0.1.0")

	conf, err := config.Load(flags.configPath)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", flags.configPath)
		os.Exit(1)
	}
	level, err := appLog.ParseLevel(conf.LogLevel)
	if err != nil {
		appLog.Error("bad log level, using INFO", err)
	}
	appLog.SetLevel(level)

	frameFlags, err := parseFrameFlags(flags.flags)
	if err != nil {
		appLog.Error("invalid -flags", err, "flags", flags.flags)
		os.Exit(2)
	}

	appLog.Info("effective config",
		"sim", flags.simulate,
		"data_pins", len(conf.Bus.Data),
		"backlight", conf.Bus.Backlight,
		"strobe_delay", conf.Bus.StrobeDelay,
		"icons", conf.Display.Icons,
		"icon_dir", conf.Display.IconDir,
		"marquee", conf.Marquee.Schedule,
		"flags", fmt.Sprintf("%#02x", uint8(frameFlags)),
		"icon", flags.icon,
		"once", flags.once,
	)

	disp, err := openDisplay(conf, flags.simulate)
	if err != nil {
		appLog.Error("failed to open display", err)
		os.Exit(1)
	}
	appLog.Info("display ready", "dev", disp.dev.String())

	r := &runner{disp: disp, flags: frameFlags, icon: flags.icon}
	if flags.progress != "" {
		tr, err := parseTransfer(flags.progress)
		if err != nil {
			appLog.Error("invalid -progress", err, "progress", flags.progress)
			os.Exit(2)
		}
		tr.color = disp.palette.Marquee(frameFlags)
		r.transfer = tr
	}
	if err := r.tick(); err != nil {
		appLog.Error("first frame failed", err)
		_ = shutdown(r, flags.dumpPath, false)
		os.Exit(1)
	}
	if flags.caption != "" {
		if err := disp.dev.WriteCaption(flags.caption); err != nil {
			appLog.Error("failed to write caption", err)
		}
	}

	if !flags.once {
		run(r, conf.Marquee.Schedule)
	}

	if err := shutdown(r, flags.dumpPath, !flags.once); err != nil {
		os.Exit(1)
	}
	appLog.Info("phoenlcd exiting")
}

// transfer is a byte counter shown on the bar instead of the marquee.
type transfer struct {
	current, total uint32
	step           uint32
	color          tft.Color
}

// transferSteps is the number of ticks a transfer takes from zero to total.
const transferSteps = 20

// parseTransfer reads "current/total".
func parseTransfer(s string) (*transfer, error) {
	curStr, totalStr, ok := strings.Cut(s, "/")
	if !ok {
		return nil, fmt.Errorf("want current/total, got %q", s)
	}
	cur, err := strconv.ParseUint(strings.TrimSpace(curStr), 0, 32)
	if err != nil {
		return nil, err
	}
	total, err := strconv.ParseUint(strings.TrimSpace(totalStr), 0, 32)
	if err != nil {
		return nil, err
	}
	return &transfer{
		current: uint32(min(cur, total)),
		total:   uint32(total),
		step:    uint32(max(total/transferSteps, 1)),
	}, nil
}

// runner serializes frame updates coming from the scheduler and shutdown.
type runner struct {
	mu       sync.Mutex
	disp     *display
	flags    tft.Flags
	icon     string
	transfer *transfer
	started  bool
}

// tick writes the first frame, then either advances the transfer or, without
// one, the marquee.
func (r *runner) tick() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	dev := r.disp.dev
	if r.transfer != nil && r.started {
		tr := r.transfer
		tr.current = min(tr.current+tr.step, tr.total)
		if err := dev.WriteTransferProgress(tr.current, tr.total, tr.color); err != nil {
			return err
		}
		appLog.Debug("transfer progress", "current", tr.current, "total", tr.total, "progress", dev.Progress())
		return nil
	}

	if err := dev.WriteFrame(r.flags, r.icon); err != nil {
		return err
	}
	r.started = true
	if r.transfer != nil {
		if err := dev.WriteTransferProgress(r.transfer.current, r.transfer.total, r.transfer.color); err != nil {
			return err
		}
	}
	appLog.Debug("frame written", "progress", dev.Progress(), "state", dev.State())
	return nil
}

// run advances the marquee on schedule until SIGINT/SIGTERM.
func run(r *runner, schedule string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case sig := <-sigCh:
			appLog.Info("signal received, shutting down", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	logger := cronLogger{}
	c := cron.New(cron.WithLogger(logger), cron.WithChain(cron.SkipIfStillRunning(logger)))
	if _, err := c.AddFunc(schedule, func() {
		if err := r.tick(); err != nil {
			appLog.Error("frame failed", err)
			cancel()
		}
	}); err != nil {
		appLog.Error("invalid marquee schedule", err, "schedule", schedule)
		return
	}
	c.Start()

	<-ctx.Done()
	<-c.Stop().Done()
}

// shutdown writes the simulator preview, clears the status screen unless
// the frame should stay visible, and turns the panel off.
func shutdown(r *runner, dumpPath string, clearScreen bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if dumpPath != "" {
		if err := r.disp.dump(dumpPath); err != nil {
			appLog.Error("failed to dump preview", err, "path", dumpPath)
		} else {
			appLog.Info("preview written", "path", dumpPath)
		}
	}

	var firstErr error
	if clearScreen {
		if err := r.disp.dev.WriteFrame(tft.Idle, ""); err != nil {
			appLog.Error("failed to clear screen", err)
			firstErr = err
		} else if err := r.disp.dev.WriteCaption(""); err != nil {
			appLog.Error("failed to clear caption", err)
			firstErr = err
		}
	}
	if err := r.disp.dev.Halt(); err != nil {
		appLog.Error("failed to halt display", err)
		if firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// parseFrameFlags accepts the flags byte in Go integer syntax, e.g. "0x21".
func parseFrameFlags(s string) (tft.Flags, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, err
	}
	return tft.Flags(v), nil
}

// cronLogger routes scheduler messages to the application log.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	appLog.Debug("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	appLog.Error("cron: "+msg, err, keysAndValues...)
}

func parseFlags() flagConfig {
	var cfg flagConfig

	flag.StringVar(&cfg.configPath, "config", config.DefaultPath, "Path to config file")
	flag.BoolVar(&cfg.simulate, "sim", false, "Drive a simulated panel instead of GPIO")
	flag.StringVar(&cfg.dumpPath, "dump", "", "Write a PNG of the panel on exit (simulator only)")
	flag.StringVar(&cfg.flags, "flags", "0x01", "Transfer flags byte: source<<4 | dest, 0x08 invert, 0x80 redraw")
	flag.StringVar(&cfg.icon, "icon", "SKETCH", "Sketch icon name on the volume (empty: clear screen)")
	flag.StringVar(&cfg.progress, "progress", "", "Show a byte transfer as current/total, e.g. 512/32768; ticks advance it")
	flag.StringVar(&cfg.caption, "caption", "", "Text shown below the progress bar")
	flag.BoolVar(&cfg.once, "once", false, "Draw a single frame and exit")
	flag.StringVar(&cfg.packPath, "pack", "", "Pack a 64x64 PNG into a sketch icon and exit")
	flag.StringVar(&cfg.outPath, "out", "SKETCH.SKI", "Output path for -pack")

	flag.Parse()

	return cfg
}
