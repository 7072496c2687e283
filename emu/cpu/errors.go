package cpu

import "errors"

// ROM loading failures. These abort before execution starts but are not
// fatal to the process; the caller may retry with another image.
var (
	ErrEmptyImage    = errors.New("rom image is empty")
	ErrImageTooLarge = errors.New("rom image too large")
)

// Execution reports. EmulateCycle returns these wrapped with the offending
// opcode; the machine keeps running after all of them except
// ErrAddressOutOfRange, which halts it until the next Reset.
var (
	ErrStackOverflow     = errors.New("stack overflow")
	ErrStackUnderflow    = errors.New("stack underflow")
	ErrInvalidOpcode     = errors.New("invalid opcode")
	ErrAddressOutOfRange = errors.New("program counter out of range")
)
