package radio

import (
  "errors"

  "github.com/robertof/go-beacon-radar/adv"
)

var (
  ErrRadioInit = errors.New("radio init failed")
  ErrScanStart = errors.New("scan start failed")
)

// Handler receives one advertisement. The record must not be retained after the
// handler returns.
type Handler func(id Identity, signal Signal, record adv.Record)

// Radio is the scanning side of a Bluetooth LE stack.
//
// Implementations deliver advertisements to the Handler one at a time, serializing
// them if the underlying stack does not. Delivery happens on goroutines other than the
// one that called StartPassiveScan, so callers sharing state between the Handler and
// their own goroutine must synchronize access.
type Radio interface {
  // Enable brings the controller up. Errors wrap ErrRadioInit.
  Enable() error
  // StartPassiveScan starts a passive scan delivering every advertisement to h.
  // Errors wrap ErrScanStart.
  StartPassiveScan(h Handler) error
  // StopScan stops the scan started by StartPassiveScan. h is not invoked once it
  // returns.
  StopScan()
}
