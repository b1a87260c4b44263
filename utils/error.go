// Package utils holds small generic helpers shared by the radio backends and main.
package utils

import "errors"

// ErrorIsAnyOf reports whether errors.Is matches err against any of targets.
func ErrorIsAnyOf(err error, targets ...error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}
