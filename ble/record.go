package ble

import (
  gadv "github.com/go-ble/ble/linux/adv"
  "github.com/rs/zerolog/log"

  "github.com/robertof/go-beacon-radar/adv"
)

// a complete 16-bit list filling a whole legacy PDU: 31 bytes minus length and type.
const maxUUID16s = (gadv.MaxEIRPacketLength - 2) / 2

// rebuildRecord turns the parsed fields a stack hands out back into a record: the 16-bit
// service UUIDs as one complete list, then the local name when it still fits.
func rebuildRecord(uuids []uint16, name string) adv.Record {
  if len(uuids) > maxUUID16s {
    log.Trace().Int("UUIDs", len(uuids)).Msg("ble: too many services for one record, truncating")
    uuids = uuids[:maxUUID16s]
  }

  var fields []gadv.Field

  if len(uuids) > 0 {
    fields = append(fields, adv.AllUUID16s(uuids...))
  }

  if name != "" {
    if r, err := adv.Build(append(fields, gadv.CompleteName(name))...); err == nil {
      return r
    }
  }

  return adv.MustBuild(fields...)
}
