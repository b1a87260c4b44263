package ble

import (
  "strconv"
  "strings"
)

type Flags int

const (
  // Run active scans rather than passive scans (requesting scan responses from peripherals).
  FlagScanTypeActive Flags = 1 << iota
  // Report every advertisement instead of letting the controller filter duplicates.
  FlagReportDuplicates
)

func (f Flags) String() string {
  var flags []string

  if f & FlagScanTypeActive == FlagScanTypeActive {
    flags = append(flags, "active scan")
  }

  if f & FlagReportDuplicates == FlagReportDuplicates {
    flags = append(flags, "report duplicates")
  }

  if len(flags) == 0 {
    return "none"
  }

  return strings.Join(flags, ", ")
}

type scanType uint8

const (
  scanTypePassive scanType = iota
  scanTypeActive
)

func (s scanType) String() string {
  switch s {
  case scanTypeActive:
    return "Active"
  case scanTypePassive:
    return "Passive"
  default:
    panic("unknown scanType value: " + strconv.Itoa(int(s)))
  }
}
