package catalog

import (
	"context"
	"sort"
	"testing"
	"time"
)

func TestHybridLocalOnly(t *testing.T) {
	hybrid := NewHybrid(nil, nil, nil, nil)

	cores, err := hybrid.FindSuitable(context.Background(), 1.0, 100000, "", "", true)
	if err != nil {
		t.Fatalf("FindSuitable() unexpected error: %v", err)
	}
	if len(cores) == 0 {
		t.Fatal("local-only hybrid returned no cores")
	}
	for _, core := range cores {
		if core.Source != SourceLocal {
			t.Errorf("core %s source = %s, want %s", core.PartNumber, core.Source, SourceLocal)
		}
	}
}

func TestHybridMergesAndDeduplicates(t *testing.T) {
	records := []map[string]interface{}{
		// Same part number as a local catalog core: must be dropped.
		remoteFixture("ETD 49/25/16", "ETD49/25/16", "TDK", "N87", 2200, 0.39, 2.11e-4, 2.71e-4, 2.4e-5, 0.114),
		// New remote part inside the band: must be merged.
		remoteFixture("ETD 46/23/16", "ETD46-REMOTE", "EPCOS", "N87", 2200, 0.39, 1.9e-4, 2.4e-4, 2.0e-5, 0.108),
	}
	server := newRemoteServer(t, records, nil)
	defer server.Close()

	external := NewExternalClient(server.URL, time.Second, nil)
	hybrid := NewHybrid(nil, nil, nil, external)

	cores, err := hybrid.FindSuitable(context.Background(), 4.0, 100000, "", "", true)
	if err != nil {
		t.Fatalf("FindSuitable() unexpected error: %v", err)
	}

	var remote int
	seen := map[string]int{}
	for _, core := range cores {
		seen[core.PartNumber]++
		if core.Source == SourceOpenMagnetics {
			remote++
		}
	}
	for part, count := range seen {
		if count > 1 {
			t.Errorf("part %s appears %d times after merge", part, count)
		}
	}
	if remote != 1 {
		t.Errorf("merged list carries %d remote cores, want 1 (ETD46-REMOTE)", remote)
	}
	if !sort.SliceIsSorted(cores, func(i, j int) bool { return cores[i].ApCM4 < cores[j].ApCM4 }) {
		t.Error("merged list not sorted ascending by Ap")
	}
}

func TestHybridSkipsExternalWhenExcluded(t *testing.T) {
	records := []map[string]interface{}{
		remoteFixture("ETD 46/23/16", "ETD46-REMOTE", "EPCOS", "N87", 2200, 0.39, 1.9e-4, 2.4e-4, 2.0e-5, 0.108),
	}
	server := newRemoteServer(t, records, nil)
	defer server.Close()

	external := NewExternalClient(server.URL, time.Second, nil)
	hybrid := NewHybrid(nil, nil, nil, external)

	cores, err := hybrid.FindSuitable(context.Background(), 4.0, 100000, "", "", false)
	if err != nil {
		t.Fatalf("FindSuitable() unexpected error: %v", err)
	}
	for _, core := range cores {
		if core.Source == SourceOpenMagnetics {
			t.Errorf("remote core %s returned with external search excluded", core.PartNumber)
		}
	}
}

func TestHybridDegradesWithoutRemote(t *testing.T) {
	external := NewExternalClient("http://127.0.0.1:1", 200*time.Millisecond, nil)
	hybrid := NewHybrid(nil, nil, nil, external)

	cores, err := hybrid.FindSuitable(context.Background(), 1.0, 100000, "", "", true)
	if err != nil {
		t.Fatalf("FindSuitable() should degrade to local, got error: %v", err)
	}
	if len(cores) == 0 {
		t.Fatal("degraded hybrid returned no local cores")
	}
	if hybrid.ExternalAvailable(context.Background()) {
		t.Error("ExternalAvailable() = true for an unreachable server")
	}
}

func TestHybridCoreByPartSpansStores(t *testing.T) {
	hybrid := NewHybrid(nil, nil, nil, nil)

	if _, ok, err := hybrid.CoreByPart(context.Background(), "ETD39/20/13"); err != nil || !ok {
		t.Errorf("CoreByPart(ETD39/20/13) = %v, %v; want found", ok, err)
	}
	core, ok, err := hybrid.CoreByPart(context.Background(), "EI-75")
	if err != nil || !ok {
		t.Fatalf("CoreByPart(EI-75) = %v, %v; want found", ok, err)
	}
	if core.ApCM4 <= 0 {
		t.Error("lamination lookup returned core without Ap")
	}
}

func TestHybridGradeLoss(t *testing.T) {
	hybrid := NewHybrid(nil, nil, nil, nil)

	steelCore, ok, err := hybrid.CoreByPart(context.Background(), "EI-60")
	if err != nil || !ok {
		t.Fatalf("CoreByPart(EI-60) = %v, %v", ok, err)
	}
	loss, applied := hybrid.GradeLoss(steelCore, 1.5, 50, 1.0)
	if !applied {
		t.Fatal("GradeLoss() should apply to a graded lamination core")
	}
	if loss <= 0 {
		t.Errorf("GradeLoss() = %.4f, want positive", loss)
	}

	ferriteCore, ok, err := hybrid.CoreByPart(context.Background(), "ETD49/25/16")
	if err != nil || !ok {
		t.Fatalf("CoreByPart(ETD49/25/16) = %v, %v", ok, err)
	}
	if _, applied := hybrid.GradeLoss(ferriteCore, 0.1, 100000, 1.0); applied {
		t.Error("GradeLoss() should not apply to an ungraded ferrite core")
	}
}
