// services/home/levels.go
package home

// Simulated sensor ranges.
const (
	tempMin, tempMax   = 20, 40
	lightMin, lightMax = 10, 90
	lightStep          = 5
)

// FanLevel maps a temperature reading to a fan intensity level 0-3.
func FanLevel(temp int) int {
	switch {
	case temp < 25:
		return 0
	case temp < 30:
		return 1
	case temp < 35:
		return 2
	default:
		return 3
	}
}

// RoomLevel maps a light reading (0 = bright, 100 = dark) to a room-light
// intensity level 0-3.
func RoomLevel(light int) int {
	switch {
	case light < 25:
		return 0
	case light < 50:
		return 1
	case light < 75:
		return 2
	default:
		return 3
	}
}
