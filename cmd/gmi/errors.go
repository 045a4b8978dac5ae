package main

import "errors"

// Sentinel errors for CLI operations.
var (
	ErrUnknownCommand   = errors.New("unknown command")
	ErrInvalidFlags     = errors.New("invalid flags")
	ErrNoInput          = errors.New("no input specified")
	ErrNoFiles          = errors.New("no gemtext files found")
	ErrInvalidExtension = errors.New("file extension not accepted")
	ErrInvalidFormat    = errors.New("unsupported output format")
	ErrReadInput        = errors.New("failed to read gemtext input")
	ErrWriteOutput      = errors.New("failed to write listing")
	ErrWatchStdin       = errors.New("cannot watch standard input")
	ErrRepeatedStdin    = errors.New("standard input given more than once")
	ErrOutputCollision  = errors.New("inputs map to the same listing file")
	ErrWatch            = errors.New("file watcher failed")
	ErrFailedFiles      = errors.New("some files failed")
)
