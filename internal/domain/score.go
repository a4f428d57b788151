package domain

import (
	"time"
)

// Strategy selects the scoring formula set.
type Strategy string

const (
	// StrategyBasic is the canonical three-factor, three-tier scheme.
	StrategyBasic Strategy = "basic"
	// StrategySeasonal adds a monsoon factor and a fourth VeryHigh tier.
	StrategySeasonal Strategy = "seasonal"
)

// Valid reports whether the strategy names a known formula set.
func (s Strategy) Valid() bool {
	return s == StrategyBasic || s == StrategySeasonal
}

// Tier is the discrete risk classification. Ordered: higher value means
// higher risk.
type Tier int

const (
	TierLow Tier = iota
	TierMedium
	TierHigh
	TierVeryHigh
)

// Code returns the stable machine-readable tier name.
func (t Tier) Code() string {
	switch t {
	case TierLow:
		return "low"
	case TierMedium:
		return "medium"
	case TierHigh:
		return "high"
	case TierVeryHigh:
		return "very_high"
	default:
		return "unknown"
	}
}

// LabelBN returns the Bengali display label.
func (t Tier) LabelBN() string {
	switch t {
	case TierLow:
		return "নিম্ন"
	case TierMedium:
		return "মধ্যম"
	case TierHigh:
		return "উচ্চ"
	case TierVeryHigh:
		return "অতি উচ্চ"
	default:
		return "অজানা"
	}
}

// Confidence values are advisory provenance markers, not calibrated
// estimates: assessments computed from a live upstream reading carry the
// higher figure.
const (
	ConfidenceLive     = 0.85
	ConfidenceFallback = 0.60
)

// SubScore pairs a factor score in [0,1] with its human-readable band label.
type SubScore struct {
	Score float64 `json:"score"`
	Label string  `json:"label"`
}

// RiskAssessment is the computed output for one location and weather
// reading. It is immutable once returned.
type RiskAssessment struct {
	RainfallScore float64  `json:"rainfall_score"`
	ZoneScore     SubScore `json:"zone_score"`
	RiverScore    SubScore `json:"river_score"`
	SeasonalScore float64  `json:"seasonal_score,omitempty"`

	NearestRiver     string  `json:"nearest_river"`
	RiverDistanceDeg float64 `json:"river_distance_deg"`

	RiskPercent float64  `json:"risk_percent"`
	Tier        Tier     `json:"-"`
	TierCode    string   `json:"risk_tier"`
	TierLabelBN string   `json:"risk_level"`
	Confidence  float64  `json:"confidence"`
	Strategy    Strategy `json:"strategy"`
}

// Scorer computes risk assessments using one fixed strategy.
type Scorer struct {
	rivers   []River
	strategy Strategy
}

// NewScorer creates a scorer. An unknown strategy falls back to basic.
func NewScorer(rivers []River, strategy Strategy) *Scorer {
	if !strategy.Valid() {
		strategy = StrategyBasic
	}
	return &Scorer{rivers: rivers, strategy: strategy}
}

// Strategy returns the active formula set.
func (s *Scorer) Strategy() Strategy {
	return s.strategy
}

// Score computes a complete assessment. It never fails: the reading is
// sanitized first and every output field is populated.
func (s *Scorer) Score(lat, lon float64, weather WeatherReading) RiskAssessment {
	weather = weather.Sanitize()

	rain := rainfallScore(weather.Rain3DayMM, weather.Rain7DayMM)
	zone := zoneScore(lat, lon)
	river, nearest, dist := s.riverScore(lat, lon)

	a := RiskAssessment{
		RainfallScore:    rain,
		ZoneScore:        zone,
		RiverScore:       river,
		NearestRiver:     nearest,
		RiverDistanceDeg: round2(dist),
		Strategy:         s.strategy,
		Confidence:       ConfidenceFallback,
	}
	if weather.Source == "nasa-power" {
		a.Confidence = ConfidenceLive
	}

	switch s.strategy {
	case StrategySeasonal:
		a.SeasonalScore = seasonalScore(clock.Now().Month())
		blended := 0.35*rain + 0.30*zone.Score + 0.20*river.Score + 0.15*a.SeasonalScore
		a.RiskPercent = round2(blended * 100)
		a.Tier = classifySeasonal(a.RiskPercent)
	default:
		blended := 0.45*rain + 0.35*zone.Score + 0.20*river.Score
		a.RiskPercent = round2(blended * 100)
		a.Tier = classifyBasic(a.RiskPercent)
	}

	a.TierCode = a.Tier.Code()
	a.TierLabelBN = a.Tier.LabelBN()
	return a
}

// rainfallScore weights recent rain over the trailing week, normalized to
// 150 mm. Both figures zero yields exactly zero.
func rainfallScore(rain3, rain7 float64) float64 {
	return clamp01((0.7*rain3 + 0.3*rain7) / 150)
}

// zoneScore is a coarse spatial heuristic, not real hydrological data.
// The northern Brahmaputra-Jamuna basin and the Sylhet haor region score
// highest, the central floodplain medium, everything else low.
func zoneScore(lat, lon float64) SubScore {
	switch {
	case lat >= 24.5 && lon >= 89.0:
		return SubScore{Score: 1.0, Label: "উচ্চ প্লাবন অঞ্চল"}
	case lat >= 23.5 && lat < 24.5:
		return SubScore{Score: 0.6, Label: "মধ্যম প্লাবন অঞ্চল"}
	default:
		return SubScore{Score: 0.3, Label: "নিম্ন প্লাবন অঞ্চল"}
	}
}

// riverScore buckets planar distance to the nearest major river.
func (s *Scorer) riverScore(lat, lon float64) (SubScore, string, float64) {
	river, dist, ok := NearestRiver(s.rivers, lat, lon)
	if !ok {
		// No river table; score as distant with no distance to report.
		return SubScore{Score: 0.3, Label: "নদী থেকে দূরে"}, "", 0
	}
	switch {
	case dist < 0.6:
		return SubScore{Score: 1.0, Label: "নদীর খুব কাছে"}, river.NameBN, dist
	case dist < 1.5:
		return SubScore{Score: 0.6, Label: "নদী থেকে মাঝারি দূরত্বে"}, river.NameBN, dist
	default:
		return SubScore{Score: 0.3, Label: "নদী থেকে দূরে"}, river.NameBN, dist
	}
}

// seasonalScore follows the monsoon calendar.
func seasonalScore(m time.Month) float64 {
	switch {
	case m >= time.June && m <= time.September:
		return 1.0
	case m == time.May || m == time.October:
		return 0.6
	default:
		return 0.2
	}
}

func classifyBasic(percent float64) Tier {
	switch {
	case percent < 30:
		return TierLow
	case percent < 60:
		return TierMedium
	default:
		return TierHigh
	}
}

func classifySeasonal(percent float64) Tier {
	switch {
	case percent < 30:
		return TierLow
	case percent < 60:
		return TierMedium
	case percent < 80:
		return TierHigh
	default:
		return TierVeryHigh
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
