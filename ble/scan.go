package ble

import (
  "context"
  "encoding/binary"
  "errors"
  "fmt"
  "sync"

  "github.com/go-ble/ble"
  "github.com/rs/zerolog/log"

  "github.com/robertof/go-beacon-radar/adv"
  "github.com/robertof/go-beacon-radar/radio"
)

var errNotEnabled = errors.New("device not enabled")

func WrapContextWithSigHandler(ctx context.Context, cancel func()) context.Context {
  return ble.WithSigHandler(ctx, cancel)
}

// Perform an active or passive scan and return every advertisement found, until ctx is
// done. onDevice is never called concurrently.
func (h *Handle) ScanAll(ctx context.Context, onDevice func(Advertisement)) error {
  if h.dev == nil {
    return fmt.Errorf("failed to initiate scan: %w", errNotEnabled)
  }

  allowDup := h.flags & FlagReportDuplicates == FlagReportDuplicates

  err := h.dev.Scan(ctx, allowDup, serialized(onDevice))

  if err != nil {
    return fmt.Errorf("failed to initiate scan: %w", err)
  }

  return nil
}

// StartPassiveScan enables scanning on the controller and returns right away.
// go-ble reports each advertisement on a new goroutine; the handle serializes them
// so handler sees one at a time.
func (h *Handle) StartPassiveScan(handler radio.Handler) error {
  if h.dev == nil {
    scanFailuresCounter.Inc()
    return fmt.Errorf("%w: %w", radio.ErrScanStart, errNotEnabled)
  }

  h.mu.Lock()
  h.handler = handler
  h.mu.Unlock()

  if err := h.dev.HCI.SetAdvHandler(h.onAdvertisement); err != nil {
    scanFailuresCounter.Inc()
    return fmt.Errorf("%w: failed to set advertisement handler: %w", radio.ErrScanStart, err)
  }

  allowDup := h.flags & FlagReportDuplicates == FlagReportDuplicates

  if err := h.dev.HCI.Scan(allowDup); err != nil {
    scanFailuresCounter.Inc()
    return fmt.Errorf("%w: %w", radio.ErrScanStart, err)
  }

  scansStartedCounter.Inc()

  return nil
}

// StopScan waits for a handler call in progress, so handler is not invoked once it
// returns.
func (h *Handle) StopScan() {
  h.mu.Lock()
  h.handler = nil
  h.mu.Unlock()

  if h.dev == nil {
    return
  }

  if err := h.dev.HCI.StopScanning(); err != nil {
    log.Warn().Err(err).Msg("ble: failed to stop scanning")
  }
}

func (h *Handle) onAdvertisement(a Advertisement) {
  // held across the call: deliveries are serialized and StopScan waits for them.
  h.mu.Lock()
  defer h.mu.Unlock()

  // the controller can still have reports in flight after StopScan.
  if h.handler == nil {
    return
  }

  advertisementsCounter.Inc()

  id, err := radio.ParseIdentity(a.Addr().String())

  if err != nil {
    unparsableAddressCounter.Inc()
    log.Trace().Err(err).Msg("ble: dropping advertisement with unparsable address")
    return
  }

  h.handler(id, radio.SignalFromRSSI(a.RSSI()), RecordOf(a))
}

// serialized wraps an advertisement callback so calls never overlap: go-ble hands every
// report to its own goroutine.
func serialized(onDevice func(Advertisement)) func(Advertisement) {
  var mu sync.Mutex

  return func(a Advertisement) {
    mu.Lock()
    defer mu.Unlock()

    onDevice(a)
  }
}

type rawAdvertisement interface {
  Data() []byte
}

// RecordOf returns the raw advertising data of a. When the stack does not expose it, a
// record is rebuilt from the parsed fields.
func RecordOf(a Advertisement) adv.Record {
  if raw, ok := a.(rawAdvertisement); ok {
    return adv.Record(raw.Data())
  }

  var uuids []uint16

  for _, u := range a.Services() {
    if u.Len() == 2 {
      uuids = append(uuids, binary.LittleEndian.Uint16(u))
    }
  }

  return rebuildRecord(uuids, a.LocalName())
}
