//go:build !rpi3 && !rpi4 && !rpi5

package memmap

// Default build targets the QEMU raspi3b machine model.

// PeripheralBase is the start of the device-mapped MMIO window.
const PeripheralBase = 0x3F000000

// Platform names the board this binary was built for.
func Platform() string { return "QEMU (RPi3 Model)" }
