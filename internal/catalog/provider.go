package catalog

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// hybridSearchBand is how far above the requirement the merged search asks
// the remote database to go. Tighter than the client's own band so remote
// results stay comparable with the local shortlist.
const (
	hybridSearchBand  = 3.0
	hybridSearchLimit = 20
)

// Provider is the catalog surface the design pipelines and the HTTP facade
// consume.
type Provider interface {
	FindSuitable(ctx context.Context, requiredApCM4, frequencyHz float64, geometry, material string, includeExternal bool) ([]Core, error)
	FindEnergyStorage(ctx context.Context, requiredApCM4 float64, geometry string) ([]Core, error)
	Largest(ctx context.Context, frequencyHz float64) (Core, error)
	Closest(ctx context.Context, requiredApCM4, frequencyHz float64, count int) ([]Core, error)
	List(ctx context.Context, materialType, geometry string) ([]Core, error)
	CoreByPart(ctx context.Context, partNumber string) (Core, bool, error)
	Materials(ctx context.Context) (map[string]map[string]MaterialProperties, error)
	MaterialFor(materialType, grade string) (MaterialProperties, bool)
	GradeLoss(core Core, fluxDensityT, frequencyHz, dutyCycle float64) (float64, bool)
	ExternalAvailable(ctx context.Context) bool
}

// Hybrid merges the embedded local catalog, the silicon-steel lamination
// store, and the optional remote database. Remote failures never propagate;
// the local catalog always answers.
type Hybrid struct {
	logger   *zap.Logger
	store    *Store
	steel    *SteelStore
	external *ExternalClient
}

// NewHybrid constructs the merged provider. external may be nil to run from
// the local catalog alone.
func NewHybrid(logger *zap.Logger, store *Store, steel *SteelStore, external *ExternalClient) *Hybrid {
	if logger == nil {
		logger = zap.NewNop()
	}
	if store == nil {
		store = NewStore(logger)
	}
	if steel == nil {
		steel = NewSteelStore(logger)
	}
	return &Hybrid{logger: logger, store: store, steel: steel, external: external}
}

// FindSuitable returns candidate cores for an Ap requirement: the local
// matches, optionally merged with remote results fetched inside the
// oversize band, deduplicated by part number, ascending by Ap.
func (h *Hybrid) FindSuitable(ctx context.Context, requiredApCM4, frequencyHz float64, geometry, material string, includeExternal bool) ([]Core, error) {
	local, err := h.store.FindSuitable(requiredApCM4, frequencyHz, geometry, material)
	if err != nil {
		return nil, err
	}
	if !includeExternal || h.external == nil || !h.external.Available(ctx) {
		return local, nil
	}

	remote, err := h.external.Cores(ctx, CoreQuery{
		MinApCM4: requiredApCM4 * 0.9,
		MaxApCM4: requiredApCM4 * hybridSearchBand,
		Shape:    geometry,
		Material: material,
		Limit:    hybridSearchLimit,
	})
	if err != nil {
		h.logger.Warn("remote core search failed, continuing with local catalog",
			zap.String("op", "catalog.FindSuitable"),
			zap.Error(err),
		)
		return local, nil
	}
	if frequencyHz > 1000 {
		remote = filterFerrite(remote)
	}

	seen := make(map[string]bool, len(local))
	for _, core := range local {
		seen[strings.ToLower(core.PartNumber)] = true
	}
	merged := local
	for _, core := range remote {
		key := strings.ToLower(core.PartNumber)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, core)
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].ApCM4 < merged[j].ApCM4
	})
	h.logger.Debug("merged core search",
		zap.String("op", "catalog.FindSuitable"),
		zap.Int("local", len(local)),
		zap.Int("remote", len(remote)),
		zap.Int("merged", len(merged)),
	)
	return merged, nil
}

// FindEnergyStorage returns ferrite cores for inductor service from the
// local catalog.
func (h *Hybrid) FindEnergyStorage(ctx context.Context, requiredApCM4 float64, geometry string) ([]Core, error) {
	return h.store.FindEnergyStorage(requiredApCM4, geometry)
}

// Largest reports the biggest local core for the frequency band. The local
// catalog bounds what a no-match payload can recommend.
func (h *Hybrid) Largest(ctx context.Context, frequencyHz float64) (Core, error) {
	return h.store.Largest(frequencyHz)
}

// Closest reports the count largest local cores, descending by Ap.
func (h *Hybrid) Closest(ctx context.Context, requiredApCM4, frequencyHz float64, count int) ([]Core, error) {
	return h.store.Closest(requiredApCM4, frequencyHz, count)
}

// List returns catalog cores with optional material-type and geometry
// filters.
func (h *Hybrid) List(ctx context.Context, materialType, geometry string) ([]Core, error) {
	return h.store.List(materialType, geometry)
}

// CoreByPart looks a core up across the local and lamination catalogs.
func (h *Hybrid) CoreByPart(ctx context.Context, partNumber string) (Core, bool, error) {
	core, ok, err := h.store.ByPartNumber(partNumber)
	if err != nil || ok {
		return core, ok, err
	}
	return h.steel.ByPartNumber(partNumber)
}

// Materials returns the embedded material map.
func (h *Hybrid) Materials(ctx context.Context) (map[string]map[string]MaterialProperties, error) {
	return h.store.Materials()
}

// MaterialFor resolves one material grade from the embedded map.
func (h *Hybrid) MaterialFor(materialType, grade string) (MaterialProperties, bool) {
	return h.store.MaterialFor(materialType, grade)
}

// GradeLoss estimates lamination-grade core loss for cores that carry a
// silicon-steel grade. The boolean reports whether a grade applied.
func (h *Hybrid) GradeLoss(core Core, fluxDensityT, frequencyHz, dutyCycle float64) (float64, bool) {
	grade := core.MaterialGrade
	if grade == "" {
		return 0, false
	}
	if _, ok := h.steel.GradeProperties(grade); !ok {
		return 0, false
	}
	return h.steel.GradeLoss(core, fluxDensityT, frequencyHz, dutyCycle), true
}

// ExternalAvailable reports whether the remote database answered its probe.
func (h *Hybrid) ExternalAvailable(ctx context.Context) bool {
	return h.external != nil && h.external.Available(ctx)
}
