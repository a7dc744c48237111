package emulator

import (
	"errors"

	"github.com/rv32sim/rv32sim/translate"
)

var f = translate.From

// ErrAssemble wraps the diagnostics returned by a failed Load.
type ErrAssemble struct {
	Errors []error
}

func (e *ErrAssemble) Error() string {
	return f("assembly failed with %d error(s)", len(e.Errors))
}

var ErrNoImageLoaded = errors.New(f("no image loaded"))
