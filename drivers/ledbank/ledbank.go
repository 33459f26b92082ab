// drivers/ledbank/ledbank.go
package ledbank

// Port is an 8-bit LED output bank with set/clear semantics, the shape of
// a GPIO FIOSET/FIOCLR register pair.
type Port interface {
	SetBits(bits uint8)
	ClearBits(bits uint8)
}

// Bank bit assignments: fan on bits 0-3, room light on bits 4-6,
// heartbeat on bit 7.
const (
	FanMask       uint8 = 0x0F
	RoomLightMask uint8 = 0x70
	HeartbeatBit  uint8 = 0x80
	AllBits       uint8 = 0xFF
)

// Level-to-pattern tables. Out-of-range levels fall back to the lowest
// visible pattern.
var (
	fanBits  = [4]uint8{0x01, 0x03, 0x07, 0x0F}
	roomBits = [4]uint8{0x00, 0x10, 0x30, 0x70}
)

// Bank maps discrete intensity levels onto the port's bit patterns.
type Bank struct {
	port Port
}

func New(port Port) *Bank { return &Bank{port: port} }

// SetFanLevel drives the fan channel to the pattern for level 0-3.
func (b *Bank) SetFanLevel(level int) {
	bits := fanBits[0]
	if level >= 0 && level < len(fanBits) {
		bits = fanBits[level]
	}
	b.port.ClearBits(FanMask)
	b.port.SetBits(bits & FanMask)
}

// SetRoomLevel drives the room-light channel to the pattern for level 0-3.
func (b *Bank) SetRoomLevel(level int) {
	bits := roomBits[1]
	if level >= 0 && level < len(roomBits) {
		bits = roomBits[level]
	}
	b.port.ClearBits(RoomLightMask)
	b.port.SetBits(bits & RoomLightMask)
}

// Heartbeat drives the heartbeat bit.
func (b *Bank) Heartbeat(on bool) {
	if on {
		b.port.SetBits(HeartbeatBit)
	} else {
		b.port.ClearBits(HeartbeatBit)
	}
}

// OverrideAll slams every bit in the bank, bypassing the per-channel
// patterns. Used for the motion override and the overheat strobe.
func (b *Bank) OverrideAll(on bool) {
	if on {
		b.port.SetBits(AllBits)
	} else {
		b.port.ClearBits(AllBits)
	}
}
