package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robertof/go-beacon-radar/ble"
	"github.com/robertof/go-beacon-radar/cycle"
	"github.com/robertof/go-beacon-radar/display"
	"github.com/robertof/go-beacon-radar/metrics"
	"github.com/robertof/go-beacon-radar/platform"
	"github.com/robertof/go-beacon-radar/radio"
)

func main() {
  zerolog.DurationFieldUnit = time.Second
  zerolog.TimeFieldFormat = time.RFC3339Nano

  log.Logger = log.Output(zerolog.ConsoleWriter{
    Out: os.Stderr,
    TimeFormat: "15:04:05.000",
  })

  cfg := ParseArgs()

  if cfg.Trace || os.Getenv("TRACE") != "" {
      zerolog.SetGlobalLevel(zerolog.TraceLevel)
  } else if cfg.Debug || os.Getenv("DEBUG") != "" {
      zerolog.SetGlobalLevel(zerolog.DebugLevel)
  } else {
      zerolog.SetGlobalLevel(zerolog.InfoLevel)
  }

  if cfg.DiscoverDevices {
    doDeviceDiscovery(cfg)
    return
  }

  log.Info().
    Str("BindAddr", cfg.BindAddress).
    Stringer("Radio", &cfg.Radio).
    Stringer("Display", &cfg.Display).
    Stringer("Restart", &cfg.Restart).
    Int("BluetoothDeviceID", cfg.BluetoothDeviceId).
    Stringer("BluetoothFlags", cfg.bleFlags()).
    Msg("Starting with the specified configuration")

  ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
  defer stop()

  // the terminal panel eats Ctrl-C, it cancels through here instead.
  ctx, interrupt := context.WithCancel(ctx)
  defer interrupt()

  r, teardown := initRadio(cfg)
  panel, closePanel := initPanel(cfg, interrupt)
  defer closePanel()

  g, ctx := errgroup.WithContext(ctx)

  runner := cycle.NewRunner(r, display.NewPlayer(panel), initRestarter(cfg, ctx, teardown, closePanel))
  runner.OnResult = func(res cycle.Result) {
    metrics.Observe(res)

    if res.Err != nil {
      log.Warn().Err(res.Err).Str("Outcome", res.Label()).Msg("Scan cycle failed")
      return
    }

    log.Info().
      Int("Count", res.Count).
      Int("Strong", res.Strong).
      Int("Any", res.Any).
      Int("Dropped", res.Dropped).
      Msg("Scan cycle complete")
  }

  g.Go(func() error {
    return runner.Start(ctx)
  })

  if cfg.BindAddress != "" {
    registry := prometheus.NewRegistry()

    ble.RegisterMetrics(registry)
    metrics.RegisterCollector(runner.Latest, registry)

    g.Go(func() error {
      return serveMetrics(ctx, cfg.BindAddress, registry)
    })
  }

  if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
    log.Fatal().Err(err).Msg("Shutting down")
  }

  teardown()

  log.Info().Int("Cycles", runner.Cycles()).Msg("Bye")
}

func initRadio(cfg config) (radio.Radio, func()) {
  switch cfg.Radio {
  case radioBackendBluez:
    return ble.NewBluez(), func() {}
  default:
    h := ble.New(cfg.BluetoothDeviceId, cfg.bleFlags())
    return h, h.Stop
  }
}

// initPanel returns the panel and a close function safe to call more than once.
func initPanel(cfg config, interrupt func()) (display.Panel, func()) {
  switch cfg.Display {
  case displayBackendTerminal:
    t, err := display.NewTerminal(interrupt)

    if err != nil {
      log.Fatal().Err(err).Msg("Failed to initialize terminal display")
    }

    return t, sync.OnceFunc(func() { t.Close() })
  case displayBackendSerial:
    s, err := display.OpenSerial(cfg.SerialPort, cfg.SerialBaud)

    if err != nil {
      log.Fatal().Err(err).Str("Port", cfg.SerialPort).Msg("Failed to open serial display")
    }

    return s, sync.OnceFunc(func() {
      if err := s.Close(); err != nil {
        log.Warn().Err(err).Msg("Failed to close serial display")
      }
    })
  default:
    return &display.Log{}, func() {}
  }
}

// initRestarter picks the restart mode. An exec restart closes the panel first: the
// serial port is held exclusively and its descriptors would survive the exec.
func initRestarter(cfg config, ctx context.Context, teardown, closePanel func()) platform.Restarter {
  if cfg.Restart == restartModeExec {
    return platform.Exec{Teardown: teardown, Release: closePanel, Done: ctx.Done()}
  }

  return platform.InProcess{Teardown: teardown}
}

func serveMetrics(ctx context.Context, addr string, registry *prometheus.Registry) error {
  mux := http.NewServeMux()
  mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

  srv := &http.Server{Addr: addr, Handler: mux}

  go func() {
    <-ctx.Done()

    shutdownCtx, cancel := context.WithTimeout(context.Background(), 5 * time.Second)
    defer cancel()

    srv.Shutdown(shutdownCtx)
  }()

  log.Info().
      Str("ListenAddress", addr).
      Msg("Starting Prometheus server")

  if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
    return err
  }

  return nil
}
