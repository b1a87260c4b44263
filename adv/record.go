// Package adv looks for service signatures in raw BLE advertising data (AD structures).
// Parsing and building go through go-ble's advertising packet.
package adv

import (
	"github.com/go-ble/ble"
	gadv "github.com/go-ble/ble/linux/adv"
)

// AD structure types used by this package.
const (
	TypeFlags            = 0x01 // Flags
	TypeSomeUUID16       = 0x02 // Incomplete List of 16-bit Service Class UUIDs
	TypeAllUUID16        = 0x03 // Complete List of 16-bit Service Class UUIDs
	TypeShortName        = 0x08 // Shortened Local Name
	TypeCompleteName     = 0x09 // Complete Local Name
	TypeServiceData16    = 0x16 // Service Data - 16-bit UUID
	TypeManufacturerData = 0xFF // Manufacturer Specific Data
)

// Record is the payload of a single advertisement: a sequence of length-prefixed,
// typed elements. A Record is only valid for the duration of the scan callback that
// delivered it.
type Record []byte

// Field returns the data of the first element of type typ. Walking stops with nil at a
// zero length byte or a truncated element, so anything past the damage is never seen.
func (r Record) Field(typ byte) []byte {
	return gadv.NewRawPacket(r).Field(typ)
}

// LocalName returns the shortened local name if present, the complete one otherwise.
func (r Record) LocalName() string {
	return gadv.NewRawPacket(r).LocalName()
}

// Build assembles a record from go-ble packet fields. Built records fit a legacy
// advertising PDU; gadv.ErrNotFit is returned otherwise.
func Build(fields ...gadv.Field) (Record, error) {
	p, err := gadv.NewPacket(fields...)
	if err != nil {
		return nil, err
	}

	return Record(p.Bytes()), nil
}

// MustBuild is Build for records known to fit.
func MustBuild(fields ...gadv.Field) Record {
	r, err := Build(fields...)
	if err != nil {
		panic("adv: " + err.Error())
	}

	return r
}

// Element is a field holding one AD structure of any type.
func Element(typ byte, data []byte) gadv.Field {
	return gadv.Raw(append([]byte{byte(len(data) + 1), typ}, data...))
}

// AllUUID16s is a complete list of 16-bit service UUIDs in a single element. go-ble's
// AllUUID only puts one UUID per element.
func AllUUID16s(uuids ...uint16) gadv.Field {
	data := make([]byte, 0, 2*len(uuids))

	for _, u := range uuids {
		data = append(data, ble.UUID16(u)...)
	}

	return Element(TypeAllUUID16, data)
}
