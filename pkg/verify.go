package symbolcleanup

import (
	"fmt"

	"github.com/rustyoz/svg"
)

// verify makes sure that cleaned SVG markup still loads as an SVG image.
func verify(name string, data []byte) error {
	if _, err := svg.ParseSvg(string(data), name, 1); err != nil {
		return fmt.Errorf("%w: %w", ErrVerify, err)
	}

	return nil
}
