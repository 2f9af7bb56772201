// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/Denys/transformer-designer/internal/catalog"
)

// FindCore finds a core by part number in the results slice.
// Returns a pointer to the core if found, nil otherwise.
func FindCore(cores []catalog.Core, partNumber string) *catalog.Core {
	for i := range cores {
		if cores[i].PartNumber == partNumber {
			return &cores[i]
		}
	}
	return nil
}
