package ble

import (
  "sync"

  "github.com/go-ble/ble"
  "github.com/go-ble/ble/linux"
  "github.com/go-ble/ble/linux/hci/cmd"
  "github.com/pkg/errors"
  "github.com/rs/zerolog/log"

  "github.com/robertof/go-beacon-radar/radio"
)

type Advertisement = ble.Advertisement

// Handle is a radio.Radio backed by a raw HCI socket. It starts disabled: Enable opens
// the device, Stop closes it, after which Enable may be called again.
type Handle struct {
  deviceId int
  flags Flags

  dev *linux.Device

  mu sync.Mutex
  handler radio.Handler
}

func UUID16(i uint16) ble.UUID {
  return ble.UUID16(i)
}

// New prepares a handle for the HCI device with the given id without touching it.
func New(deviceId int, flags Flags) *Handle {
  return &Handle{
    deviceId: deviceId,
    flags: flags,
  }
}

// Init returns an enabled handle.
func Init(deviceId int, flags Flags) (*Handle, error) {
  h := New(deviceId, flags)

  if err := h.Enable(); err != nil {
    return nil, err
  }

  return h, nil
}

func (h *Handle) Enable() error {
  if h.dev != nil {
    return nil
  }

  var scanType scanType = scanTypePassive

  if h.flags & FlagScanTypeActive == FlagScanTypeActive {
    scanType = scanTypeActive
  }

  log.Debug().
    Stringer("ScanType", scanType).
    Stringer("Flags", h.flags).
    Int("DeviceID", h.deviceId).
    Msg("Initializing Bluetooth device")

  dev, err := linux.NewDevice(
    ble.OptDeviceID(h.deviceId),
    ble.OptScanParams(cmd.LESetScanParameters{
      LEScanType:           uint8(scanType), // 0x00: passive, 0x01: active
      LEScanInterval:       0x0004,          // 0x0004 - 0x4000; N * 0.625msec
      LEScanWindow:         0x0004,          // 0x0004 - 0x4000; N * 0.625msec
      OwnAddressType:       0x00,            // 0x00: public, 0x01: random
      ScanningFilterPolicy: 0x00,            // 0x00: accept all
    }),
  )

  if err != nil {
    radioInitFailuresCounter.Inc()
    return errors.Wrapf(radio.ErrRadioInit, "failed to init bluetooth device %d: %v", h.deviceId, err)
  }

  h.dev = dev

  return nil
}

// Stop closes the device. The handle can be enabled again afterwards.
func (h *Handle) Stop() {
  if h.dev == nil {
    return
  }

  if err := h.dev.Stop(); err != nil {
    log.Warn().Err(err).Msg("ble: failed to stop Bluetooth device")
  }

  h.dev = nil
}
