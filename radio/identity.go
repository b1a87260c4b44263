// Package radio defines what the rest of the program needs from a Bluetooth LE stack:
// peer identities, signal levels and the scan contract.
package radio

import (
  "fmt"
  "math"
  "net"

  "github.com/robertof/go-beacon-radar/utils"
)

// Identity is a 6-byte device address stored least significant octet first, the way it
// travels over the air. Identity[0] is the last octet of the printed address.
type Identity [6]byte

// IdentityFromHardwareAddr converts a printed-order MAC address.
func IdentityFromHardwareAddr(addr net.HardwareAddr) (id Identity, err error) {
  if len(addr) != len(id) {
    return id, fmt.Errorf("invalid address %q: want %d bytes, got %d", addr, len(id), len(addr))
  }

  // flip due to endianness
  copy(id[:], utils.Reverse(addr))

  return id, nil
}

// ParseIdentity parses an address in the usual `AA:BB:CC:DD:EE:FF` notation.
func ParseIdentity(s string) (Identity, error) {
  addr, err := net.ParseMAC(s)
  if err != nil {
    return Identity{}, fmt.Errorf("invalid address: %w", err)
  }

  return IdentityFromHardwareAddr(addr)
}

func (id Identity) HardwareAddr() net.HardwareAddr {
  return net.HardwareAddr(utils.Reverse(id[:]))
}

func (id Identity) String() string {
  return id.HardwareAddr().String()
}

// Signal is a received signal strength in dBm.
type Signal int8

// SignalFromRSSI clamps an RSSI reported as a wider integer.
func SignalFromRSSI(rssi int) Signal {
  switch {
  case rssi > math.MaxInt8:
    return math.MaxInt8
  case rssi < math.MinInt8:
    return math.MinInt8
  default:
    return Signal(rssi)
  }
}
