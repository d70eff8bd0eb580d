package clipboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/gopasspw/clipboard"
)

// ErrUnavailable is returned when the platform has no usable clipboard
var ErrUnavailable = errors.New("clipboard not available on this system")

// Copy copies a secret to the system clipboard.
// Uses WritePassword so clipboard managers are asked not to record it.
func Copy(ctx context.Context, text string) error {
	if !IsAvailable() {
		return ErrUnavailable
	}
	if err := clipboard.WritePassword(ctx, []byte(text)); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}

// IsAvailable checks if clipboard functionality is available
func IsAvailable() bool {
	// Check if clipboard is supported on this platform
	return !clipboard.IsUnsupported()
}
