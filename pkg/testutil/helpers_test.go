package testutil

import (
	"fmt"
	"testing"

	"github.com/Denys/transformer-designer/internal/catalog"
)

func TestFindCore(t *testing.T) {
	cores := []catalog.Core{
		{
			PartNumber: "ETD29/16/10",
			ApCM4:      0.684,
		},
		{
			PartNumber: "E25/13/7",
			ApCM4:      0.29,
		},
		{
			PartNumber: "PQ26/25",
			ApCM4:      0.66,
		},
		{
			PartNumber: "EI-75",
			ApCM4:      11.3,
		},
	}

	tests := []struct {
		name        string
		partNumber  string
		expectFound bool
		expectedAp  float64
	}{
		{
			name:        "find ETD part with slashes",
			partNumber:  "ETD29/16/10",
			expectFound: true,
			expectedAp:  0.684,
		},
		{
			name:        "find E part",
			partNumber:  "E25/13/7",
			expectFound: true,
			expectedAp:  0.29,
		},
		{
			name:        "find hyphenated lamination part",
			partNumber:  "EI-75",
			expectFound: true,
			expectedAp:  11.3,
		},
		{
			name:        "non-existent part",
			partNumber:  "ETD54/28/19",
			expectFound: false,
		},
		{
			name:        "empty part number",
			partNumber:  "",
			expectFound: false,
		},
		{
			name:        "case sensitive lookup",
			partNumber:  "etd29/16/10",
			expectFound: false,
		},
		{
			name:        "partial part number",
			partNumber:  "ETD29",
			expectFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FindCore(cores, tt.partNumber)

			if tt.expectFound {
				if result == nil {
					t.Errorf("FindCore() expected to find core %q but got nil", tt.partNumber)
					return
				}
				if result.PartNumber != tt.partNumber {
					t.Errorf("FindCore() returned core %q, expected %q",
						result.PartNumber, tt.partNumber)
				}
				if result.ApCM4 != tt.expectedAp {
					t.Errorf("FindCore() returned core with Ap %v, expected %v",
						result.ApCM4, tt.expectedAp)
				}
			} else {
				if result != nil {
					t.Errorf("FindCore() expected nil for %q but got core %q",
						tt.partNumber, result.PartNumber)
				}
			}
		})
	}
}

func TestFindCoreEmptyResults(t *testing.T) {
	result := FindCore([]catalog.Core{}, "ETD29/16/10")
	if result != nil {
		t.Errorf("FindCore() with empty slice should return nil, got %v", result)
	}

	var cores []catalog.Core
	result = FindCore(cores, "ETD29/16/10")
	if result != nil {
		t.Errorf("FindCore() with nil slice should return nil, got %v", result)
	}
}

func TestFindCoreReturnsPointer(t *testing.T) {
	cores := []catalog.Core{
		{
			PartNumber: "ETD29/16/10",
			ApCM4:      0.684,
		},
	}

	found := FindCore(cores, "ETD29/16/10")
	if found == nil {
		t.Fatalf("FindCore() returned nil")
	}

	if &cores[0] != found {
		t.Errorf("FindCore() should return pointer to original element")
	}

	// Mutations through the pointer must land in the backing slice.
	found.ApCM4 = 0.7
	if cores[0].ApCM4 != 0.7 {
		t.Errorf("modifying through returned pointer should modify original")
	}
}

func TestFindCoreWithDuplicatePartNumbers(t *testing.T) {
	// A part carried by two manufacturers keeps the first entry.
	cores := []catalog.Core{
		{
			PartNumber:   "ETD29/16/10",
			Manufacturer: "TDK",
		},
		{
			PartNumber:   "ETD29/16/10",
			Manufacturer: "Ferroxcube",
		},
	}

	found := FindCore(cores, "ETD29/16/10")
	if found == nil {
		t.Fatalf("FindCore() returned nil")
	}
	if found.Manufacturer != "TDK" {
		t.Errorf("FindCore() should return first match, got manufacturer %q", found.Manufacturer)
	}
	if &cores[0] != found {
		t.Errorf("FindCore() should return pointer to first matching element")
	}
}

func TestFindCoreLargeSlice(t *testing.T) {
	const numCores = 1000
	cores := make([]catalog.Core, numCores)
	for i := 0; i < numCores; i++ {
		cores[i] = catalog.Core{
			PartNumber: fmt.Sprintf("E%d/10/5", i),
			ApCM4:      float64(i) / 100,
		}
	}

	targetPart := "E500/10/5"
	found := FindCore(cores, targetPart)
	if found == nil {
		t.Fatalf("FindCore() should find %q in large slice", targetPart)
	}
	if found.PartNumber != targetPart {
		t.Errorf("FindCore() returned wrong core: got %q, expected %q", found.PartNumber, targetPart)
	}
	if found.ApCM4 != 5.0 {
		t.Errorf("FindCore() returned wrong Ap: got %v, expected 5.0", found.ApCM4)
	}
}
