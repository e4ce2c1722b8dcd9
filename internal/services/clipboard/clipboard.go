// Package clipboard copies command output to the system clipboard.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// Copier copies textual data to the system clipboard.
type Copier interface {
	Copy(text string) error
}

// System is the Copier backed by the operating system clipboard.
type System struct{}

// Copy writes text to the system clipboard.
func (System) Copy(text string) error {
	if writeError := clipboard.WriteAll(text); writeError != nil {
		return fmt.Errorf("write clipboard: %w", writeError)
	}
	return nil
}

var _ Copier = System{}
