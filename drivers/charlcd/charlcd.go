// Package charlcd provides a minimal driver for a small character LCD
// behind an I2C bridge, covering only what the home service renders:
// clear, cursor positioning and ASCII writes.
//
// Wire protocol: each transfer is a control byte followed by payload.
// Control 0x00 introduces a command byte, control 0x40 a run of display
// data, the scheme used by the common I2C LCD/OLED bridges.
package charlcd

import (
	"tinygo.org/x/drivers"
)

const AddressDefault = 0x27

// Commands.
const (
	cmdClear    = 0x01
	cmdDDRAM    = 0x80
	ctrlCommand = 0x00
	ctrlData    = 0x40
)

// Row start offsets in DDRAM for a 2-line panel.
var rowOffset = [2]uint8{0x00, 0x40}

// Device drives one panel. Not safe for concurrent use; callers serialize
// through the display lock.
type Device struct {
	i2c  drivers.I2C
	addr uint16

	// Fixed buffer to avoid per-call heap allocations.
	w [2 + 16]byte
}

func New(i2c drivers.I2C, addr uint16) *Device {
	if addr == 0 {
		addr = AddressDefault
	}
	return &Device{i2c: i2c, addr: addr}
}

// Configure clears the panel and homes the cursor.
func (d *Device) Configure() error { return d.Clear() }

// Clear wipes the panel; the cursor returns to (0,0).
func (d *Device) Clear() error { return d.command(cmdClear) }

// GotoXY positions the cursor at column x of row y (0-based, rows wrap
// onto the 2-line panel).
func (d *Device) GotoXY(x, y uint8) error {
	return d.command(cmdDDRAM | (rowOffset[y%2] + x))
}

// Print writes s at the cursor. Writes longer than a line are split into
// line-sized transfers.
func (d *Device) Print(s string) error {
	for len(s) > 0 {
		n := len(s)
		if n > 16 {
			n = 16
		}
		d.w[0] = ctrlData
		copy(d.w[1:], s[:n])
		if err := d.i2c.Tx(d.addr, d.w[:1+n], nil); err != nil {
			return err
		}
		s = s[n:]
	}
	return nil
}

func (d *Device) command(c uint8) error {
	d.w[0] = ctrlCommand
	d.w[1] = c
	return d.i2c.Tx(d.addr, d.w[:2], nil)
}
