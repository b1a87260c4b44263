package main

import (
  "context"
  "slices"
  "time"

  "github.com/rs/zerolog/log"
  "golang.org/x/exp/maps"

  "github.com/robertof/go-beacon-radar/adv"
  "github.com/robertof/go-beacon-radar/ble"
  "github.com/robertof/go-beacon-radar/radio"
  "github.com/robertof/go-beacon-radar/slots"
  "github.com/robertof/go-beacon-radar/utils"
)

const discoveryDuration = 5 * time.Second

type deviceInfo struct {
  name string
  connectable bool
  signal radio.Signal
  target bool
  services map[string]bool
}

func doDeviceDiscovery(cfg config) {
  log.Info().Msg("Starting in device discovery mode - collecting devices for 5 seconds...")

  handle, err := ble.Init(cfg.BluetoothDeviceId, cfg.bleFlags() | ble.FlagScanTypeActive)

  if err != nil {
    log.Fatal().Err(err).Msg("Failed to initialize Bluetooth device")
  }

  defer handle.Stop()

  ctx := ble.WrapContextWithSigHandler(
    context.WithTimeout(
      context.Background(),
      discoveryDuration,
    ),
  )

  devices := make(map[radio.Identity]*deviceInfo)

  err = handle.ScanAll(ctx, func(a ble.Advertisement) {
    id, err := radio.ParseIdentity(a.Addr().String())

    if err != nil {
      log.Debug().Err(err).Msg("Skipping advertisement with unparsable address")
      return
    }

    record := ble.RecordOf(a)
    info, ok := devices[id]

    if !ok {
      info = &deviceInfo{services: make(map[string]bool)}
      devices[id] = info
    }

    // merge
    if info.name == "" {
      info.name = a.LocalName()
    }

    info.connectable = a.Connectable()
    info.signal = radio.SignalFromRSSI(a.RSSI())
    info.target = info.target || adv.MatchesTarget(record)

    for _, uuid := range a.Services() {
      info.services[uuid.String()] = true
    }

    log.Debug().
      Stringer("Addr", id).
      Str("Name", a.LocalName()).
      Int("RSSI", a.RSSI()).
      Hex("Record", record).
      Msg("Received device advertisement")
  })

  if err != nil && !utils.ErrorIsAnyOf(err, context.Canceled, context.DeadlineExceeded) {
    log.Fatal().Err(err).Msg("Failed to initiate scan")
  }

  var targets []radio.Identity

  log.Info().Int("Found", len(devices)).Msg("Finished device discovery")

  for _, id := range slices.SortedFunc(maps.Keys(devices), compareIdentities) {
    info := devices[id]

    ev := log.Info().
      Stringer("Addr", id).
      Str("Name", info.name).
      Bool("Connectable", info.connectable).
      Int("RSSI", int(info.signal)).
      Strs("Services", slices.Sorted(maps.Keys(info.services))).
      Bool("Target", info.target)

    if info.target {
      targets = append(targets, id)
      // where it would land on an empty grid
      ev = ev.Stringer("Slot", slots.NewState().Allocate(id, info.signal))
    }

    ev.Msg("Found device")
  }

  log.Info().
    Array("Targets", utils.ToZeroLogArray(targets)).
    Msg("Devices advertising the target service")
}

func compareIdentities(a, b radio.Identity) int {
  return slices.Compare(utils.Reverse(a[:]), utils.Reverse(b[:]))
}
