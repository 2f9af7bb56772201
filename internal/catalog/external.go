package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/Denys/transformer-designer/pkg/losses"
	"github.com/Denys/transformer-designer/pkg/mathutil"
)

const (
	externalCacheSize      = 128
	defaultExternalTimeout = 5 * time.Second

	// externalSearchBand is how far above the requirement the remote search
	// reaches before a core counts as too oversized.
	externalSearchBand = 5.0
)

// ferriteFamilies are the material-name prefixes treated as ferrite when
// filtering remote results for high-frequency designs.
var ferriteFamilies = []string{"3C", "3F", "3E", "N", "PC", "P", "R", "T"}

// CoreQuery describes a remote core search.
type CoreQuery struct {
	MinApCM4 float64
	MaxApCM4 float64
	Shape    string
	Material string
	Limit    int
}

func (q CoreQuery) encode() string {
	v := url.Values{}
	if q.MinApCM4 > 0 {
		v.Set("min_ap_cm4", strconv.FormatFloat(q.MinApCM4, 'g', -1, 64))
	}
	if q.MaxApCM4 > 0 {
		v.Set("max_ap_cm4", strconv.FormatFloat(q.MaxApCM4, 'g', -1, 64))
	}
	if q.Shape != "" {
		v.Set("shape", q.Shape)
	}
	if q.Material != "" {
		v.Set("material", q.Material)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v.Encode()
}

// remoteCore mirrors the MAS-style record served by an OpenMagnetics
// database. Dimensional fields are SI (m, m^2, m^3).
type remoteCore struct {
	Name             string `json:"name"`
	ManufacturerInfo struct {
		Name         string `json:"name"`
		Reference    string `json:"reference"`
		DatasheetURL string `json:"datasheetUrl"`
	} `json:"manufacturerInfo"`
	FunctionalDescription struct {
		Material struct {
			Family              string  `json:"family"`
			InitialPermeability float64 `json:"initialPermeability"`
			Saturation          []struct {
				MagneticFluxDensity float64 `json:"magneticFluxDensity"`
			} `json:"saturation"`
		} `json:"material"`
	} `json:"functionalDescription"`
	ProcessedDescription struct {
		EffectiveParameters struct {
			EffectiveArea   float64 `json:"effectiveArea"`
			EffectiveVolume float64 `json:"effectiveVolume"`
			EffectiveLength float64 `json:"effectiveLength"`
		} `json:"effectiveParameters"`
		WindingWindows []struct {
			Area float64 `json:"area"`
		} `json:"windingWindows"`
		Width  float64 `json:"width"`
		Height float64 `json:"height"`
		Depth  float64 `json:"depth"`
	} `json:"processedDescription"`
}

// ExternalClient queries a remote OpenMagnetics-style core database over
// HTTP. The remote catalog is optional: when it cannot be reached the client
// degrades to returning no results so a design run never fails on it.
type ExternalClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	cache      *lru.Cache[string, []Core]

	probeOnce sync.Once
	available bool
}

// NewExternalClient constructs a client for the database at baseURL.
func NewExternalClient(baseURL string, timeout time.Duration, logger *zap.Logger) *ExternalClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = defaultExternalTimeout
	}
	// Size is fixed and positive, so construction cannot fail.
	cache, _ := lru.New[string, []Core](externalCacheSize)
	return &ExternalClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		cache:      cache,
	}
}

// Available probes the remote database once and caches the verdict for the
// lifetime of the client. An unreachable database is logged at Warn a single
// time and every subsequent query returns empty.
func (c *ExternalClient) Available(ctx context.Context) bool {
	c.probeOnce.Do(func() {
		if c.baseURL == "" {
			return
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
		if err != nil {
			c.logger.Warn("external core database disabled",
				zap.String("op", "catalog.Available"),
				zap.Error(err),
			)
			return
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.logger.Warn("external core database unreachable, continuing with local catalog",
				zap.String("op", "catalog.Available"),
				zap.Error(err),
			)
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			c.logger.Warn("external core database unhealthy, continuing with local catalog",
				zap.String("op", "catalog.Available"),
				zap.Int("status", resp.StatusCode),
			)
			return
		}
		c.available = true
	})
	return c.available
}

// Cores searches the remote database. Results are decoded into the local
// Core shape with missing dimensional fields estimated from geometry, sorted
// ascending by Ap. Responses are cached per query.
func (c *ExternalClient) Cores(ctx context.Context, query CoreQuery) ([]Core, error) {
	if !c.Available(ctx) {
		return nil, nil
	}
	key := query.encode()
	if cached, ok := c.cache.Get(key); ok {
		return append([]Core(nil), cached...), nil
	}

	endpoint := c.baseURL + "/cores"
	if key != "" {
		endpoint += "?" + key
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build core query: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query external core database: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("external core database returned status %d", resp.StatusCode)
	}

	var records []remoteCore
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode external core records: %w", err)
	}

	limit := query.Limit
	if limit <= 0 {
		limit = 50
	}
	cores := make([]Core, 0, len(records))
	for _, record := range records {
		if len(cores) >= limit {
			break
		}
		core, ok := c.convert(record, query)
		if !ok {
			continue
		}
		cores = append(cores, core)
	}
	sort.Slice(cores, func(i, j int) bool {
		return cores[i].ApCM4 < cores[j].ApCM4
	})

	c.cache.Add(key, cores)
	c.logger.Debug("external core search",
		zap.String("op", "catalog.Cores"),
		zap.String("query", key),
		zap.Int("matches", len(cores)),
	)
	return append([]Core(nil), cores...), nil
}

// convert maps one remote record to a Core, applying the query filters and
// the derived-field estimators.
func (c *ExternalClient) convert(record remoteCore, query CoreQuery) (Core, bool) {
	eff := record.ProcessedDescription.EffectiveParameters
	aeCM2 := eff.EffectiveArea * 1e4
	waCM2 := 0.0
	for _, w := range record.ProcessedDescription.WindingWindows {
		waCM2 += w.Area * 1e4
	}
	apCM4 := aeCM2 * waCM2
	if apCM4 <= 0 {
		return Core{}, false
	}
	if query.MinApCM4 > 0 && apCM4 < query.MinApCM4 {
		return Core{}, false
	}
	if query.MaxApCM4 > 0 && apCM4 > query.MaxApCM4 {
		return Core{}, false
	}

	shape := ""
	if fields := strings.Fields(record.Name); len(fields) > 0 {
		shape = fields[0]
	}
	if query.Shape != "" && !strings.HasPrefix(strings.ToUpper(shape), strings.ToUpper(query.Shape)) {
		return Core{}, false
	}
	material := record.FunctionalDescription.Material.Family
	if query.Material != "" && !strings.Contains(strings.ToLower(material), strings.ToLower(query.Material)) {
		return Core{}, false
	}

	veCM3 := eff.EffectiveVolume * 1e6
	lmCM := eff.EffectiveLength * 100
	widthCM := record.ProcessedDescription.Width * 100
	heightCM := record.ProcessedDescription.Height * 100
	depthCM := record.ProcessedDescription.Depth * 100

	bsat := 0.4
	if sat := record.FunctionalDescription.Material.Saturation; len(sat) > 0 && sat[0].MagneticFluxDensity > 0 {
		bsat = sat[0].MagneticFluxDensity
	}
	muI := record.FunctionalDescription.Material.InitialPermeability
	if muI <= 0 {
		muI = 2000
	}

	partNumber := record.ManufacturerInfo.Reference
	if partNumber == "" {
		partNumber = record.Name
	}

	return Core{
		PartNumber:   partNumber,
		Manufacturer: record.ManufacturerInfo.Name,
		Geometry:     shape,
		Material:     material,
		ApCM4:        mathutil.Round(apCM4, 4),
		AeCM2:        mathutil.Round(aeCM2, 4),
		WaCM2:        mathutil.Round(waCM2, 4),
		VeCM3:        mathutil.Round(veCM3, 4),
		LmCM:         mathutil.Round(lmCM, 2),
		MLTCM:        mathutil.Round(estimateMLT(shape, widthCM, depthCM, aeCM2), 2),
		AtCM2:        mathutil.Round(estimateSurfaceArea(shape, widthCM, heightCM, depthCM, apCM4), 2),
		WeightG:      mathutil.Round(estimateWeight(veCM3, material), 1),
		BsatT:        bsat,
		MuI:          muI,
		DatasheetURL: record.ManufacturerInfo.DatasheetURL,
		Source:       SourceOpenMagnetics,
	}, true
}

// FindSuitable searches the remote database for cores covering the Ap
// requirement, reaching up to the oversize band. High-frequency searches are
// narrowed to ferrite material families, falling back to the unfiltered set
// when that empties the list. Failures degrade to an empty result.
func (c *ExternalClient) FindSuitable(ctx context.Context, requiredApCM4, frequencyHz float64, geometry, material string, count int) []Core {
	if count <= 0 {
		count = 5
	}
	cores, err := c.Cores(ctx, CoreQuery{
		MinApCM4: requiredApCM4 * 0.9,
		MaxApCM4: requiredApCM4 * externalSearchBand,
		Shape:    geometry,
		Material: material,
		Limit:    count * 10,
	})
	if err != nil {
		c.logger.Warn("external core search failed, continuing with local catalog",
			zap.String("op", "catalog.FindSuitable"),
			zap.Error(err),
		)
		return nil
	}
	if frequencyHz > 1000 {
		cores = filterFerrite(cores)
	}
	if len(cores) > count {
		cores = cores[:count]
	}
	return cores
}

// filterFerrite keeps cores whose material starts with a known ferrite
// family prefix, falling back to the input when nothing matches.
func filterFerrite(cores []Core) []Core {
	filtered := make([]Core, 0, len(cores))
	for _, core := range cores {
		mat := strings.ToUpper(core.Material)
		if mat == "" || hasFerritePrefix(mat) {
			filtered = append(filtered, core)
		}
	}
	if len(filtered) == 0 {
		return cores
	}
	return filtered
}

func hasFerritePrefix(material string) bool {
	for _, family := range ferriteFamilies {
		if strings.HasPrefix(material, family) {
			return true
		}
	}
	return false
}

// FindByLoss searches the remote database and ranks the candidates by
// estimated core loss at the given operating point, lowest first.
func (c *ExternalClient) FindByLoss(ctx context.Context, requiredApCM4, frequencyHz, bacT, temperatureC float64, count int) []Core {
	if count <= 0 {
		count = 10
	}
	cores := c.FindSuitable(ctx, requiredApCM4, frequencyHz, "", "", count*2)
	type scored struct {
		core Core
		loss float64
	}
	ranked := make([]scored, 0, len(cores))
	for _, core := range cores {
		ranked = append(ranked, scored{core: core, loss: c.EstimatedCoreLoss(core, bacT, frequencyHz, temperatureC)})
	}
	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].loss < ranked[j].loss
	})
	if len(ranked) > count {
		ranked = ranked[:count]
	}
	out := make([]Core, len(ranked))
	for i, r := range ranked {
		out[i] = r.core
	}
	return out
}

// EstimatedCoreLoss evaluates a remote core's loss at an operating point
// using the generic ferrite Steinmetz fit and the parabolic loss-versus-
// temperature correction around the 100 degC loss minimum.
func (c *ExternalClient) EstimatedCoreLoss(core Core, bacT, frequencyHz, temperatureC float64) float64 {
	density, err := losses.CoreLossDensity(core.Material, frequencyHz, bacT, 100)
	if err != nil {
		return math.Inf(1)
	}
	return density * lossTemperatureCorrection(temperatureC) * core.VeCM3 / 1000
}

// lossTemperatureCorrection models the parabolic rise in ferrite loss away
// from the 100 degC minimum, capped at 2x.
func lossTemperatureCorrection(temperatureC float64) float64 {
	deltaT := temperatureC - 100
	correction := 1.0 + 0.001*deltaT*deltaT/100
	return math.Min(correction, 2.0)
}

// estimateMLT approximates mean length per turn from the core shape family
// and outer dimensions when the remote record carries no winding data.
func estimateMLT(shape string, widthCM, depthCM, aeCM2 float64) float64 {
	shapeUpper := strings.ToUpper(shape)
	centerLeg := math.Sqrt(aeCM2)

	var mlt float64
	switch {
	case isEFamily(shapeUpper):
		windingDepth := depthCM / 3
		if widthCM > centerLeg {
			windingDepth = (widthCM - centerLeg) / 2
		}
		mlt = 2 * (centerLeg + windingDepth) * 0.8
	case shapeUpper == "PQ" || shapeUpper == "PM" || shapeUpper == "P":
		innerRadius := centerLeg / 2
		outerRadius := math.Min(widthCM, depthCM) / 2
		mlt = 2 * math.Pi * (innerRadius + outerRadius) / 2 * 0.7
	case shapeUpper == "RM":
		mlt = 2*(centerLeg+depthCM/2) + 0.3
	case shapeUpper == "T" || shapeUpper == "TC" || shapeUpper == "TOROID":
		mlt = math.Pi * (widthCM + depthCM) / 2
	case shapeUpper == "POT":
		mlt = 2 * math.Pi * (centerLeg/2 + depthCM/4)
	case shapeUpper == "U" || shapeUpper == "UI" || shapeUpper == "UU":
		mlt = 2 * (widthCM + depthCM) * 0.5
	case shapeUpper == "ELP" || shapeUpper == "PLANAR":
		mlt = 2 * (widthCM + depthCM) * 0.6
	default:
		mlt = 2 * (widthCM + depthCM) * 0.9
	}

	if mlt < 0.5 {
		mlt = 4*math.Sqrt(aeCM2) + 0.5
	}
	return math.Max(mlt, 1.0)
}

func isEFamily(shapeUpper string) bool {
	switch shapeUpper {
	case "E", "EE", "EI", "ETD", "ER", "EQ", "EFD", "EP":
		return true
	}
	return false
}

// estimateSurfaceArea approximates the thermal surface area from the boxed
// outer dimensions, scaled by how much of the box each shape family exposes.
// Without dimensions it falls back to the Ks*sqrt(Ap) closed form.
func estimateSurfaceArea(shape string, widthCM, heightCM, depthCM, apCM4 float64) float64 {
	shapeUpper := strings.ToUpper(shape)

	var at float64
	if widthCM > 0 && heightCM > 0 && depthCM > 0 {
		box := 2 * (widthCM*heightCM + widthCM*depthCM + heightCM*depthCM)
		switch {
		case isEFamily(shapeUpper):
			at = box * 0.60
		case shapeUpper == "PQ" || shapeUpper == "PM" || shapeUpper == "P" || shapeUpper == "POT":
			at = box * 0.50
		case shapeUpper == "RM":
			at = box * 0.55
		case shapeUpper == "T" || shapeUpper == "TC" || shapeUpper == "TOROID":
			at = box * 0.70
		case shapeUpper == "U" || shapeUpper == "UI" || shapeUpper == "UU":
			at = box * 0.65
		case shapeUpper == "ELP" || shapeUpper == "PLANAR":
			at = box * 0.45
		default:
			at = box * 0.60
		}
	} else {
		ks := 40.0
		switch shapeUpper {
		case "ETD":
			ks = 42
		case "ER", "EQ", "PM":
			ks = 35
		case "PQ":
			ks = 38
		case "RM":
			ks = 30
		case "POT":
			ks = 32
		case "T", "TC", "TOROID":
			ks = 45
		}
		at = ks * math.Sqrt(apCM4)
	}
	return math.Max(at, 1.0)
}

// estimateWeight converts effective volume to weight using the material
// density and a fill factor for the non-effective portions of the core.
func estimateWeight(veCM3 float64, material string) float64 {
	materialUpper := strings.ToUpper(material)
	density := 4.8 // ferrite
	switch {
	case strings.Contains(materialUpper, "M6"), strings.Contains(materialUpper, "M19"), strings.Contains(materialUpper, "SILICON"):
		density = 7.65
	case strings.Contains(materialUpper, "AMORPHOUS"), strings.Contains(materialUpper, "METGLAS"):
		density = 7.18
	}
	const volumeFactor = 1.4
	return veCM3 * volumeFactor * density
}
