// Package options holds validation helpers shared by the option-taking
// entry points.
package options

import "fmt"

// ValidateSingleInputSource checks that exactly one of the given input
// sources is set. It returns an error built from noSourceMsg when none is,
// and from multiSourceMsg when more than one is.
func ValidateSingleInputSource(noSourceMsg, multiSourceMsg string, sources ...bool) error {
	count := 0
	for _, set := range sources {
		if set {
			count++
		}
	}

	switch {
	case count == 0:
		return fmt.Errorf("%s", noSourceMsg)
	case count > 1:
		return fmt.Errorf("%s", multiSourceMsg)
	}
	return nil
}
