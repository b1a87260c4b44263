package ble

import (
  "sync"
  "time"

  "github.com/pkg/errors"
  "github.com/rs/zerolog/log"
  "tinygo.org/x/bluetooth"

  "github.com/robertof/go-beacon-radar/adv"
  "github.com/robertof/go-beacon-radar/radio"
)

// scanStartGrace is how long StartPassiveScan waits for BlueZ to reject a scan before
// assuming it is running: the adapter's Scan blocks for the whole scan.
const scanStartGrace = 250 * time.Millisecond

// Bluez is a radio.Radio going through BlueZ over D-Bus, for hosts where the HCI socket
// is owned by bluetoothd.
//
// BlueZ does not hand out raw advertising data, only the fields it parsed, and its
// service list merges incomplete lists, scan responses and UUIDs cached from earlier
// sightings of the device. The record rebuilt from it carries all of them as one
// complete list, so on this backend a beacon also matches when the target service was
// only ever advertised in an incomplete list or a scan response. Controller duplicate
// filtering is left to bluetoothd.
type Bluez struct {
  adapter *bluetooth.Adapter

  mu      sync.Mutex
  handler radio.Handler
  done    chan struct{}
}

func NewBluez() *Bluez {
  return &Bluez{adapter: bluetooth.DefaultAdapter}
}

func (b *Bluez) Enable() error {
  log.Debug().Msg("Initializing BlueZ adapter")

  if err := b.adapter.Enable(); err != nil {
    radioInitFailuresCounter.Inc()
    return errors.Wrapf(radio.ErrRadioInit, "failed to enable BlueZ adapter: %v", err)
  }

  return nil
}

func (b *Bluez) StartPassiveScan(handler radio.Handler) error {
  b.mu.Lock()
  b.handler = handler
  b.mu.Unlock()

  errCh := make(chan error, 1)
  done := make(chan struct{})

  go func() {
    defer close(done)
    errCh <- b.adapter.Scan(b.onScanResult)
  }()

  select {
  case err := <-errCh:
    b.clearHandler()
    scanFailuresCounter.Inc()

    if err == nil {
      return errors.Wrap(radio.ErrScanStart, "BlueZ scan ended immediately")
    }

    return errors.Wrapf(radio.ErrScanStart, "BlueZ: %v", err)
  case <-time.After(scanStartGrace):
  }

  b.mu.Lock()
  b.done = done
  b.mu.Unlock()

  scansStartedCounter.Inc()

  return nil
}

func (b *Bluez) StopScan() {
  b.clearHandler()

  b.mu.Lock()
  done := b.done
  b.done = nil
  b.mu.Unlock()

  if done == nil {
    return
  }

  if err := b.adapter.StopScan(); err != nil {
    log.Warn().Err(err).Msg("ble: failed to stop BlueZ scan")
  }

  <-done
}

func (b *Bluez) clearHandler() {
  b.mu.Lock()
  b.handler = nil
  b.mu.Unlock()
}

func (b *Bluez) onScanResult(_ *bluetooth.Adapter, result bluetooth.ScanResult) {
  b.mu.Lock()
  defer b.mu.Unlock()

  if b.handler == nil {
    return
  }

  advertisementsCounter.Inc()

  // MAC is stored least significant octet first, like radio.Identity.
  id := radio.Identity(result.Address.MAC)

  b.handler(id, radio.SignalFromRSSI(int(result.RSSI)), scanResultRecord(result))
}

func scanResultRecord(result bluetooth.ScanResult) adv.Record {
  if raw := result.AdvertisementPayload.Bytes(); raw != nil {
    return adv.Record(raw)
  }

  // BlueZ only hands out parsed fields.
  var uuids []uint16

  for _, u := range result.AdvertisementPayload.ServiceUUIDs() {
    if u.Is16Bit() {
      uuids = append(uuids, u.Get16Bit())
    }
  }

  return rebuildRecord(uuids, result.LocalName())
}
