package catalog

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Denys/transformer-designer/pkg/losses"
)

// SteelGrade holds the lamination grade properties from the silicon-steel
// catalog file.
type SteelGrade struct {
	ThicknessMM    float64 `json:"thickness_mm"`
	CoreLossWPerKg float64 `json:"core_loss_W_kg_1_5T_50Hz"`
	BsatT          float64 `json:"Bsat_T"`
	StackingFactor float64 `json:"stacking_factor"`
	Description    string  `json:"description,omitempty"`
}

type steelFile struct {
	Cores          []Core                `json:"cores"`
	MaterialGrades map[string]SteelGrade `json:"material_grades"`
}

var (
	steelOnce    sync.Once
	steelLoadErr error
	steelDB      steelFile
)

func loadSteel() error {
	steelOnce.Do(func() {
		raw, err := dataFiles.ReadFile("data/silicon_steel_cores.json")
		if err != nil {
			steelLoadErr = fmt.Errorf("read silicon-steel catalog: %w", err)
			return
		}
		if err := json.Unmarshal(raw, &steelDB); err != nil {
			steelLoadErr = fmt.Errorf("parse silicon-steel catalog: %w", err)
			return
		}
	})
	return steelLoadErr
}

// SteelStore serves the laminated E/I cores used for line-frequency
// transformers, which the remote ferrite database does not carry.
type SteelStore struct {
	logger *zap.Logger
}

// NewSteelStore constructs a SteelStore backed by the embedded lamination
// catalog.
func NewSteelStore(logger *zap.Logger) *SteelStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SteelStore{logger: logger}
}

// FindByArea returns lamination cores meeting the core-area and window-area
// requirements within a 10% shortfall band, rated at or above minBmaxT
// (default 1.0 T), sorted ascending by Ae and capped at count (default 5).
// A zero requiredWaCM2 skips the window check.
func (s *SteelStore) FindByArea(requiredAeCM2, requiredWaCM2, minBmaxT float64, geometry string, count int) ([]Core, error) {
	if err := loadSteel(); err != nil {
		return nil, err
	}
	if minBmaxT <= 0 {
		minBmaxT = 1.0
	}
	if count <= 0 {
		count = 5
	}
	var suitable []Core
	for _, core := range steelDB.Cores {
		if core.AeCM2 < requiredAeCM2*0.9 {
			continue
		}
		if requiredWaCM2 > 0 && core.WaCM2 < requiredWaCM2*0.9 {
			continue
		}
		if core.BmaxT < minBmaxT {
			continue
		}
		if geometry != "" && !strings.EqualFold(core.Geometry, geometry) {
			continue
		}
		core.Source = SourceSiliconSteel
		suitable = append(suitable, core)
	}
	sort.Slice(suitable, func(i, j int) bool {
		return suitable[i].AeCM2 < suitable[j].AeCM2
	})
	if len(suitable) > count {
		suitable = suitable[:count]
	}
	s.logger.Debug("silicon-steel core search",
		zap.String("op", "catalog.FindByArea"),
		zap.Float64("requiredAeCM2", requiredAeCM2),
		zap.Int("matches", len(suitable)),
	)
	return suitable, nil
}

// ByPartNumber looks up a lamination core.
func (s *SteelStore) ByPartNumber(partNumber string) (Core, bool, error) {
	if err := loadSteel(); err != nil {
		return Core{}, false, err
	}
	for _, core := range steelDB.Cores {
		if strings.EqualFold(core.PartNumber, partNumber) {
			core.Source = SourceSiliconSteel
			return core, true, nil
		}
	}
	return Core{}, false, nil
}

// All returns every lamination core in the catalog.
func (s *SteelStore) All() ([]Core, error) {
	if err := loadSteel(); err != nil {
		return nil, err
	}
	out := make([]Core, len(steelDB.Cores))
	for i, core := range steelDB.Cores {
		core.Source = SourceSiliconSteel
		out[i] = core
	}
	return out, nil
}

// GradeProperties resolves a lamination grade (M3 through M6).
func (s *SteelStore) GradeProperties(grade string) (SteelGrade, bool) {
	if err := loadSteel(); err != nil {
		return SteelGrade{}, false
	}
	if props, ok := steelDB.MaterialGrades[grade]; ok {
		return props, true
	}
	for name, props := range steelDB.MaterialGrades {
		if strings.EqualFold(name, grade) {
			return props, true
		}
	}
	return SteelGrade{}, false
}

// GradeLoss estimates total core loss for a lamination core at the given
// flux density, frequency, and duty cycle by scaling the grade's 1.5 T /
// 50 Hz reference figure over the core weight.
func (s *SteelStore) GradeLoss(core Core, fluxDensityT, frequencyHz, dutyCycle float64) float64 {
	grade := core.MaterialGrade
	if grade == "" {
		grade = core.Material
	}
	props, ok := s.GradeProperties(grade)
	refLoss := 1.15
	if ok && props.CoreLossWPerKg > 0 {
		refLoss = props.CoreLossWPerKg
	}
	return losses.SiliconSteelGradeLoss(refLoss, frequencyHz, fluxDensityT, dutyCycle, core.WeightG)
}
