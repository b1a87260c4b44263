package adv

import "encoding/binary"

// TargetService is the 16-bit service UUID of exposure notification beacons.
const TargetService uint16 = 0xFD6F

// MatchesTarget reports whether the record lists TargetService in its complete list of
// 16-bit service UUIDs. Malformed records never match past the point of damage.
func MatchesTarget(r Record) bool {
	return HasService16(r, TargetService)
}

// HasService16 reports whether uuid appears in the first complete 16-bit service UUID
// list of r. Later lists are not looked at. An odd trailing byte is ignored.
func HasService16(r Record, uuid uint16) bool {
	list := r.Field(TypeAllUUID16)

	for i := 0; i+1 < len(list); i += 2 {
		if binary.LittleEndian.Uint16(list[i:]) == uuid {
			return true
		}
	}

	return false
}
