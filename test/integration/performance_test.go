package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Denys/transformer-designer/internal/catalog"
	"github.com/Denys/transformer-designer/internal/config"
	"github.com/Denys/transformer-designer/internal/design"
)

// TestMain is a simple test runner for debugging
func TestMain(m *testing.M) {
	// Run tests
	code := m.Run()
	os.Exit(code)
}

// TestBasicFunctionality tests basic functionality works
func TestBasicFunctionality(t *testing.T) {
	// Create a no-op logger to avoid debug output during testing
	logger := zap.NewNop()

	// Test basic config loading
	conf, err := config.LoadConfiguration("../test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration failed: %v", err)
	}
	if problems := conf.ValidateConfiguration(); len(problems) != 0 {
		t.Fatalf("ValidateConfiguration reported problems: %v", problems)
	}

	generator := design.NewGenerator(logger, catalog.NewHybrid(logger, nil, nil, nil))

	req := baselineTransformerRequest()
	conf.Defaults.ApplyTransformer(&req)

	result, noMatch, err := generator.DesignTransformer(context.Background(), req)
	if err != nil {
		t.Fatalf("DesignTransformer failed: %v", err)
	}
	if noMatch != nil {
		t.Fatalf("DesignTransformer found no core: %s", noMatch.Message)
	}
	if !result.DesignViable {
		t.Fatalf("Expected a viable design, got errors: %v", result.Verification.Errors)
	}

	t.Logf("Successfully designed onto %s at %.2f%% efficiency",
		result.Core.PartNumber, result.Losses.EfficiencyPct)
}

// TestPerformance tests performance characteristics
func TestPerformance(t *testing.T) {
	// Create a no-op logger to avoid debug output during testing
	logger := zap.NewNop()

	start := time.Now()
	conf, err := config.LoadConfiguration("../test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration failed: %v", err)
	}
	loadTime := time.Since(start)

	start = time.Now()
	generator := design.NewGenerator(logger, catalog.NewHybrid(logger, nil, nil, nil))
	buildTime := time.Since(start)

	start = time.Now()
	tReq := baselineTransformerRequest()
	conf.Defaults.ApplyTransformer(&tReq)
	transformer, noMatch, err := generator.DesignTransformer(context.Background(), tReq)
	if err != nil {
		t.Fatalf("DesignTransformer failed: %v", err)
	}
	if noMatch != nil {
		t.Fatalf("DesignTransformer found no core: %s", noMatch.Message)
	}
	transformerTime := time.Since(start)

	start = time.Now()
	iReq := baselineInductorRequest()
	iReq.MaxCurrentDensity = 500
	conf.Defaults.ApplyInductor(&iReq)
	inductor, noMatch, err := generator.DesignInductor(context.Background(), iReq)
	if err != nil {
		t.Fatalf("DesignInductor failed: %v", err)
	}
	if noMatch != nil {
		t.Fatalf("DesignInductor found no core: %s", noMatch.Message)
	}
	inductorTime := time.Since(start)

	totalTime := loadTime + buildTime + transformerTime + inductorTime

	t.Logf("Performance metrics:")
	t.Logf("  Load config: %v", loadTime)
	t.Logf("  Build generator: %v", buildTime)
	t.Logf("  Transformer design: %v", transformerTime)
	t.Logf("  Inductor design: %v", inductorTime)
	t.Logf("  Total time: %v", totalTime)

	// Performance expectations (adjust as needed)
	if totalTime > 10*time.Second {
		t.Errorf("Total processing time %v exceeds 10 second threshold", totalTime)
	}

	if transformer.Core.PartNumber != "ETD29/16/10" {
		t.Errorf("Expected core ETD29/16/10, got %s", transformer.Core.PartNumber)
	}
	if len(transformer.AlternativeCores) != 3 {
		t.Errorf("Expected 3 alternative cores, got %d", len(transformer.AlternativeCores))
	}
	if inductor.Core.PartNumber != "E25/13/7" || inductor.Winding.Turns != 53 {
		t.Errorf("Expected 53 turns on E25/13/7, got %d on %s",
			inductor.Winding.Turns, inductor.Core.PartNumber)
	}
}

// TestMemoryUsage performs basic memory usage validation
func TestMemoryUsage(t *testing.T) {
	// Create a no-op logger to avoid debug output during testing
	logger := zap.NewNop()

	// Run multiple iterations to check for memory leaks
	for i := 0; i < 10; i++ {
		conf, err := config.LoadConfiguration("../test_config.yaml")
		if err != nil {
			t.Fatalf("LoadConfiguration failed on iteration %d: %v", i, err)
		}

		generator := design.NewGenerator(logger, catalog.NewHybrid(logger, nil, nil, nil))

		tReq := baselineTransformerRequest()
		conf.Defaults.ApplyTransformer(&tReq)
		_, noMatch, err := generator.DesignTransformer(context.Background(), tReq)
		if err != nil {
			t.Fatalf("DesignTransformer failed on iteration %d: %v", i, err)
		}
		if noMatch != nil {
			t.Fatalf("DesignTransformer found no core on iteration %d", i)
		}

		iReq := baselineInductorRequest()
		iReq.MaxCurrentDensity = 500
		conf.Defaults.ApplyInductor(&iReq)
		_, noMatch, err = generator.DesignInductor(context.Background(), iReq)
		if err != nil {
			t.Fatalf("DesignInductor failed on iteration %d: %v", i, err)
		}
		if noMatch != nil {
			t.Fatalf("DesignInductor found no core on iteration %d", i)
		}
	}

	t.Log("Successfully completed 10 iterations without memory issues")
}

// TestDataConsistency validates that multiple runs produce identical results
func TestDataConsistency(t *testing.T) {
	// Create a no-op logger to avoid debug output during testing
	logger := zap.NewNop()

	var first *design.InductorResult

	for run := 0; run < 3; run++ {
		conf, err := config.LoadConfiguration("../test_config.yaml")
		if err != nil {
			t.Fatalf("LoadConfiguration failed on run %d: %v", run, err)
		}

		generator := design.NewGenerator(logger, catalog.NewHybrid(logger, nil, nil, nil))

		req := baselineInductorRequest()
		req.MaxCurrentDensity = 500
		conf.Defaults.ApplyInductor(&req)

		result, noMatch, err := generator.DesignInductor(context.Background(), req)
		if err != nil {
			t.Fatalf("DesignInductor failed on run %d: %v", run, err)
		}
		if noMatch != nil {
			t.Fatalf("DesignInductor found no core on run %d", run)
		}

		if run == 0 {
			first = result
			continue
		}

		// Compare with first run
		if result.Core.PartNumber != first.Core.PartNumber {
			t.Errorf("Run %d: core mismatch %s != %s",
				run, result.Core.PartNumber, first.Core.PartNumber)
		}
		if result.Winding.Turns != first.Winding.Turns {
			t.Errorf("Run %d: turns mismatch %d != %d",
				run, result.Winding.Turns, first.Winding.Turns)
		}
		if result.AirGapMM == nil || first.AirGapMM == nil {
			t.Fatalf("Run %d: missing air gap", run)
		}
		if abs(*result.AirGapMM-*first.AirGapMM) > 0.001 {
			t.Errorf("Run %d: air gap mismatch %.3f != %.3f",
				run, *result.AirGapMM, *first.AirGapMM)
		}
		if abs(result.CalculatedInductanceUH-first.CalculatedInductanceUH) > 0.01 {
			t.Errorf("Run %d: inductance mismatch %.2f != %.2f",
				run, result.CalculatedInductanceUH, first.CalculatedInductanceUH)
		}
		if abs(result.Losses.TotalLossW-first.Losses.TotalLossW) > 0.001 {
			t.Errorf("Run %d: loss mismatch %.3f != %.3f",
				run, result.Losses.TotalLossW, first.Losses.TotalLossW)
		}
	}

	t.Log("Data consistency verified across multiple runs")
}

// TestConfigurationVariations tests different configuration variations
func TestConfigurationVariations(t *testing.T) {
	// Create a no-op logger to avoid debug output during testing
	logger := zap.NewNop()

	variations := []struct {
		name            string
		modifyConfig    func(*config.Configuration)
		expectProblems  bool
		wantCore        string
		wantMinHotspotC float64
	}{
		{
			name: "Baseline config",
			modifyConfig: func(c *config.Configuration) {
				// No changes
			},
			wantCore: "ETD29/16/10",
		},
		{
			name: "Hotter ambient",
			modifyConfig: func(c *config.Configuration) {
				c.Defaults.AmbientTempC = 60
			},
			wantCore:        "ETD29/16/10",
			wantMinHotspotC: 70,
		},
		{
			name: "Conservative current density",
			modifyConfig: func(c *config.Configuration) {
				c.Defaults.CurrentDensityACm2 = 250
			},
			wantCore: "PQ26/25",
		},
		{
			name: "Negative rate limit",
			modifyConfig: func(c *config.Configuration) {
				c.Server.RateLimitRPS = -1
			},
			expectProblems: true,
		},
		{
			name: "Unknown logging level",
			modifyConfig: func(c *config.Configuration) {
				c.Logging.Level = "verbose"
			},
			expectProblems: true,
		},
	}

	for _, variation := range variations {
		t.Run(variation.name, func(t *testing.T) {
			conf, err := config.LoadConfiguration("../test_config.yaml")
			if err != nil {
				t.Fatalf("LoadConfiguration failed: %v", err)
			}

			// Apply variation
			variation.modifyConfig(conf)

			problems := conf.ValidateConfiguration()
			if variation.expectProblems {
				if len(problems) == 0 {
					t.Errorf("Expected validation problems but got none")
				}
				return
			}
			if len(problems) != 0 {
				t.Fatalf("Unexpected validation problems: %v", problems)
			}

			generator := design.NewGenerator(logger, catalog.NewHybrid(logger, nil, nil, nil))

			// Clear the request's own density so the configured default
			// flows through.
			req := baselineTransformerRequest()
			req.MaxCurrentDensity = 0
			conf.Defaults.ApplyTransformer(&req)

			result, noMatch, err := generator.DesignTransformer(context.Background(), req)
			if err != nil {
				t.Fatalf("DesignTransformer failed: %v", err)
			}
			if noMatch != nil {
				t.Fatalf("DesignTransformer found no core: %s", noMatch.Message)
			}

			if result.Core.PartNumber != variation.wantCore {
				t.Errorf("Expected core %s, got %s", variation.wantCore, result.Core.PartNumber)
			}
			if variation.wantMinHotspotC > 0 && result.Thermal.HotspotTempC < variation.wantMinHotspotC {
				t.Errorf("Expected hotspot above %.0f C, got %.1f C",
					variation.wantMinHotspotC, result.Thermal.HotspotTempC)
			}
		})
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
