package nes

import "errors"

// Errors which halt the CPU. There is no recovery from these, the running program is broken.
var (
	ErrUnknownOpcode = errors.New("unknown opcode")
	ErrReadOnly      = errors.New("write to read-only region")
	ErrHalted        = errors.New("cpu is halted")
)

// Errors while loading a cartridge, the caller can decide what to do with them.
var (
	ErrInvalidHeader     = errors.New("invalid iNES header")
	ErrUnsupportedFormat = errors.New("unsupported cartridge format")
	ErrUnsupportedMapper = errors.New("unsupported mapper")
	ErrTruncatedImage    = errors.New("truncated cartridge image")
)

// ErrStopRequested can be returned by a StepHook to finish CPU.Run without an error.
var ErrStopRequested = errors.New("stop requested")
