package strbuf

import (
	"errors"
	"fmt"
	"math"
)

const (
	// MinPartSize is the floor for PartMax. Chunks much smaller than this
	// spend more time on bookkeeping than on content.
	MinPartSize = 100

	// MinPartFill is the floor for the working chunk size derived from
	// PartMax and FillFactor.
	MinPartFill = 64

	DefaultPartMax    = 2048
	DefaultFillFactor = 0.75
)

type Config struct {
	// PartMax is the hard upper bound on a chunk's length in bytes.
	// Larger chunks mean fewer chunks to scan during offset translation,
	// at the cost of more copying per point edit.
	PartMax int

	// FillFactor is the target fullness ratio for chunks, a value in
	// (0.0, 1.0]. Appends fill chunks to PartMax * FillFactor rather than
	// to the brim, leaving headroom so nearby inserts can splice in place
	// instead of splitting.
	FillFactor float64
}

func (c Config) Validate() error {
	var errs []error
	if c.PartMax < MinPartSize {
		errs = append(errs, fmt.Errorf("invalid config: PartMax (%d) must be at least %d", c.PartMax, MinPartSize))
	}
	if c.FillFactor <= 0.0 || c.FillFactor > 1.0 {
		errs = append(errs, errors.New("invalid config: FillFactor must be in (0.0, 1.0]"))
	}
	if float64(c.PartMax)*c.FillFactor < MinPartFill {
		errs = append(errs, fmt.Errorf(
			"invalid config: PartMax (%d) * FillFactor (%g) is below the minimum chunk size %d",
			c.PartMax, c.FillFactor, MinPartFill,
		))
	}
	return errors.Join(errs...)
}

// partFill returns the working target chunk size: ceil(PartMax * FillFactor).
func (c Config) partFill() int {
	return int(math.Ceil(float64(c.PartMax) * c.FillFactor))
}

func DefaultConfig() Config {
	return Config{
		PartMax:    DefaultPartMax,
		FillFactor: DefaultFillFactor,
	}
}
