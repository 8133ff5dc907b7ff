//go:build rpi4

package memmap

// PeripheralBase is the start of the device-mapped MMIO window.
const PeripheralBase = 0xFE000000

// Platform names the board this binary was built for.
func Platform() string { return "Raspberry Pi 4" }
