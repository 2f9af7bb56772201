// Package catalog provides the core and material databases consulted during
// design synthesis: an embedded local catalog, a silicon-steel lamination
// store, and an optional remote OpenMagnetics-style client, merged behind a
// single Provider.
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Denys/transformer-designer/pkg/constants"
)

//go:embed data/cores.json data/materials.json data/silicon_steel_cores.json
var dataFiles embed.FS

// Source labels recorded on Core records so results can be traced back to
// the database they came from.
const (
	SourceLocal         = "local"
	SourceSiliconSteel  = "silicon_steel"
	SourceOpenMagnetics = "openmagnetics"
)

// Core describes one magnetic core as carried by the catalog files and the
// remote database. Dimensional fields use the cm-based units conventional in
// magnetics datasheets.
type Core struct {
	PartNumber     string  `json:"part_number"`
	Manufacturer   string  `json:"manufacturer,omitempty"`
	Geometry       string  `json:"geometry"`
	Material       string  `json:"material"`
	MaterialGrade  string  `json:"material_grade,omitempty"`
	ApCM4          float64 `json:"Ap_cm4"`
	AeCM2          float64 `json:"Ae_cm2"`
	WaCM2          float64 `json:"Wa_cm2"`
	VeCM3          float64 `json:"Ve_cm3,omitempty"`
	LmCM           float64 `json:"lm_cm,omitempty"`
	MLTCM          float64 `json:"MLT_cm,omitempty"`
	AtCM2          float64 `json:"At_cm2,omitempty"`
	WindowHeightCM float64 `json:"window_height_cm,omitempty"`
	BsatT          float64 `json:"Bsat_T,omitempty"`
	BmaxT          float64 `json:"Bmax_T,omitempty"`
	MuI            float64 `json:"mu_i,omitempty"`
	WeightG        float64 `json:"weight_g,omitempty"`
	DatasheetURL   string  `json:"datasheet_url,omitempty"`
	Source         string  `json:"source,omitempty"`
}

// MaterialProperties describes one material grade from materials.json.
type MaterialProperties struct {
	BsatT        float64 `json:"Bsat_T"`
	MuI          float64 `json:"mu_i"`
	MaxTempC     float64 `json:"max_temp_C,omitempty"`
	Manufacturer string  `json:"manufacturer,omitempty"`
	Description  string  `json:"description,omitempty"`
}

type coresFile struct {
	FerriteCores      []Core `json:"ferrite_cores"`
	SiliconSteelCores []Core `json:"silicon_steel_cores"`
}

var (
	loadOnce     sync.Once
	loadErr      error
	ferriteCores []Core
	steelCores   []Core
	materialDB   map[string]map[string]MaterialProperties
)

func loadEmbedded() error {
	loadOnce.Do(func() {
		raw, err := dataFiles.ReadFile("data/cores.json")
		if err != nil {
			loadErr = fmt.Errorf("read embedded core catalog: %w", err)
			return
		}
		var cf coresFile
		if err := json.Unmarshal(raw, &cf); err != nil {
			loadErr = fmt.Errorf("parse embedded core catalog: %w", err)
			return
		}
		ferriteCores = cf.FerriteCores
		steelCores = cf.SiliconSteelCores

		raw, err = dataFiles.ReadFile("data/materials.json")
		if err != nil {
			loadErr = fmt.Errorf("read embedded material catalog: %w", err)
			return
		}
		if err := json.Unmarshal(raw, &materialDB); err != nil {
			loadErr = fmt.Errorf("parse embedded material catalog: %w", err)
			return
		}
	})
	return loadErr
}

// Store serves the embedded local core catalog.
type Store struct {
	logger *zap.Logger
}

// NewStore constructs a Store backed by the embedded catalog files.
func NewStore(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{logger: logger}
}

// coreList picks the catalog section for an operating frequency: ferrite
// above the lamination boundary, silicon steel at or below it.
func coreList(frequencyHz float64) []Core {
	if frequencyHz > constants.FerriteMinFrequencyHz {
		return ferriteCores
	}
	return steelCores
}

// FindSuitable returns local cores whose area product covers the requirement
// within a 10% shortfall band, sorted ascending by Ap so the smallest
// adequate core ranks first. Geometry matches exactly (case-insensitive);
// material matches as a substring.
func (s *Store) FindSuitable(requiredApCM4, frequencyHz float64, geometry, material string) ([]Core, error) {
	if err := loadEmbedded(); err != nil {
		return nil, err
	}
	var suitable []Core
	for _, core := range coreList(frequencyHz) {
		if core.ApCM4 < requiredApCM4*0.9 {
			continue
		}
		if geometry != "" && !strings.EqualFold(core.Geometry, geometry) {
			continue
		}
		if material != "" && !strings.Contains(strings.ToLower(core.Material), strings.ToLower(material)) {
			continue
		}
		core.Source = SourceLocal
		suitable = append(suitable, core)
	}
	sort.Slice(suitable, func(i, j int) bool {
		return suitable[i].ApCM4 < suitable[j].ApCM4
	})
	s.logger.Debug("local core search",
		zap.String("op", "catalog.FindSuitable"),
		zap.Float64("requiredApCM4", requiredApCM4),
		zap.Float64("frequencyHz", frequencyHz),
		zap.Int("matches", len(suitable)),
	)
	return suitable, nil
}

// FindEnergyStorage returns ferrite cores covering the required area
// product within the same 10% shortfall band as FindSuitable, sorted
// ascending by Ap. Energy storage inductors gap a ferrite core across the
// whole frequency range, so the lamination section is never consulted.
func (s *Store) FindEnergyStorage(requiredApCM4 float64, geometry string) ([]Core, error) {
	if err := loadEmbedded(); err != nil {
		return nil, err
	}
	var suitable []Core
	for _, core := range ferriteCores {
		if core.ApCM4 < requiredApCM4*0.9 {
			continue
		}
		if geometry != "" && !strings.EqualFold(core.Geometry, geometry) {
			continue
		}
		core.Source = SourceLocal
		suitable = append(suitable, core)
	}
	sort.Slice(suitable, func(i, j int) bool {
		return suitable[i].ApCM4 < suitable[j].ApCM4
	})
	s.logger.Debug("energy storage core search",
		zap.String("op", "catalog.FindEnergyStorage"),
		zap.Float64("requiredApCM4", requiredApCM4),
		zap.Int("matches", len(suitable)),
	)
	return suitable, nil
}

// Largest returns the biggest core by area product for the frequency band.
func (s *Store) Largest(frequencyHz float64) (Core, error) {
	if err := loadEmbedded(); err != nil {
		return Core{}, err
	}
	list := coreList(frequencyHz)
	if len(list) == 0 {
		return Core{}, fmt.Errorf("core catalog is empty")
	}
	largest := list[0]
	for _, core := range list[1:] {
		if core.ApCM4 > largest.ApCM4 {
			largest = core
		}
	}
	largest.Source = SourceLocal
	return largest, nil
}

// Closest returns the count largest cores in descending Ap order. Used to
// surface the nearest available options when no core satisfies a
// requirement.
func (s *Store) Closest(requiredApCM4, frequencyHz float64, count int) ([]Core, error) {
	if err := loadEmbedded(); err != nil {
		return nil, err
	}
	list := append([]Core(nil), coreList(frequencyHz)...)
	sort.Slice(list, func(i, j int) bool {
		return list[i].ApCM4 > list[j].ApCM4
	})
	if count > len(list) {
		count = len(list)
	}
	closest := make([]Core, 0, count)
	for _, core := range list[:count] {
		core.Source = SourceLocal
		closest = append(closest, core)
	}
	return closest, nil
}

// ByPartNumber looks up a core across both catalog sections.
func (s *Store) ByPartNumber(partNumber string) (Core, bool, error) {
	if err := loadEmbedded(); err != nil {
		return Core{}, false, err
	}
	for _, list := range [][]Core{ferriteCores, steelCores} {
		for _, core := range list {
			if strings.EqualFold(core.PartNumber, partNumber) {
				core.Source = SourceLocal
				return core, true, nil
			}
		}
	}
	return Core{}, false, nil
}

// List returns catalog cores, optionally filtered by material type
// (ferrite or silicon_steel/si_steel spellings) and geometry.
func (s *Store) List(materialType, geometry string) ([]Core, error) {
	if err := loadEmbedded(); err != nil {
		return nil, err
	}
	var out []Core
	appendCores := func(list []Core) {
		for _, core := range list {
			if geometry != "" && !strings.EqualFold(core.Geometry, geometry) {
				continue
			}
			core.Source = SourceLocal
			out = append(out, core)
		}
	}
	switch normalizeMaterialType(materialType) {
	case "ferrite":
		appendCores(ferriteCores)
	case "silicon_steel":
		appendCores(steelCores)
	default:
		appendCores(ferriteCores)
		appendCores(steelCores)
	}
	return out, nil
}

func normalizeMaterialType(materialType string) string {
	switch strings.ToLower(strings.TrimSpace(materialType)) {
	case "ferrite":
		return "ferrite"
	case "silicon_steel", "silicon-steel", "si_steel", "steel":
		return "silicon_steel"
	default:
		return ""
	}
}

// Materials returns the embedded material map keyed by material type then
// grade.
func (s *Store) Materials() (map[string]map[string]MaterialProperties, error) {
	if err := loadEmbedded(); err != nil {
		return nil, err
	}
	out := make(map[string]map[string]MaterialProperties, len(materialDB))
	for mtype, grades := range materialDB {
		gcopy := make(map[string]MaterialProperties, len(grades))
		for grade, props := range grades {
			gcopy[grade] = props
		}
		out[mtype] = gcopy
	}
	return out, nil
}

// MaterialFor resolves one material grade. Grade lookup is
// case-insensitive.
func (s *Store) MaterialFor(materialType, grade string) (MaterialProperties, bool) {
	if err := loadEmbedded(); err != nil {
		return MaterialProperties{}, false
	}
	grades, ok := materialDB[strings.ToLower(strings.TrimSpace(materialType))]
	if !ok {
		return MaterialProperties{}, false
	}
	if props, ok := grades[grade]; ok {
		return props, true
	}
	for name, props := range grades {
		if strings.EqualFold(name, grade) {
			return props, true
		}
	}
	return MaterialProperties{}, false
}
