// Command validate checks the embedded reference tables and the scoring
// model for internal consistency: district and river counts, name
// uniqueness, coordinates inside the Bangladesh bounding box, coefficient
// ranges, and score outputs within bounds for every district in every
// month. Run it after editing districts.json or rivers.json.
//
// Usage:
//
//	go run ./cmd/validate
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/jolbondhu/flood-risk-service/internal/domain"
)

// Bangladesh bounding box, with slack for enclave coordinates.
const (
	minLat = 20.3
	maxLat = 26.8
	minLon = 87.9
	maxLon = 92.8
)

const expectedDistricts = 64

// phase tracks pass/fail for one validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	os.Exit(run())
}

func run() int {
	districts, err := domain.LoadDistricts()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load districts: %v\n", err)
		return 1
	}
	rivers, err := domain.LoadRivers()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load rivers: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateDistricts(districts),
		validateRivers(rivers),
		validateScoring(districts, rivers),
	}

	failed := 0
	for _, p := range phases {
		if p.passed() {
			fmt.Printf("PASS %s\n", p.name)
			continue
		}
		failed++
		fmt.Printf("FAIL %s\n", p.name)
		for _, e := range p.errors {
			fmt.Printf("  - %s\n", e)
		}
	}

	if failed > 0 {
		fmt.Printf("%d of %d phases failed\n", failed, len(phases))
		return 1
	}
	fmt.Printf("all %d phases passed\n", len(phases))
	return 0
}

func validateDistricts(districts []domain.District) *phase {
	p := &phase{name: "district table"}

	if len(districts) != expectedDistricts {
		p.errorf("expected %d districts, got %d", expectedDistricts, len(districts))
	}

	seenBN := make(map[string]bool, len(districts))
	seenEN := make(map[string]bool, len(districts))
	for _, d := range districts {
		if d.NameBN == "" || d.NameEN == "" || d.Division == "" {
			p.errorf("district %q/%q has empty name or division", d.NameBN, d.NameEN)
		}
		if seenBN[d.NameBN] {
			p.errorf("duplicate Bengali name %q", d.NameBN)
		}
		if seenEN[d.NameEN] {
			p.errorf("duplicate English name %q", d.NameEN)
		}
		seenBN[d.NameBN] = true
		seenEN[d.NameEN] = true

		if d.Lat < minLat || d.Lat > maxLat || d.Lon < minLon || d.Lon > maxLon {
			p.errorf("%s at (%.4f, %.4f) outside Bangladesh bounds", d.NameEN, d.Lat, d.Lon)
		}
		if d.FloodCoefficient < 0 || d.FloodCoefficient > 1 {
			p.errorf("%s flood coefficient %.2f outside [0,1]", d.NameEN, d.FloodCoefficient)
		}
	}
	return p
}

func validateRivers(rivers []domain.River) *phase {
	p := &phase{name: "river table"}

	if len(rivers) == 0 {
		p.errorf("river table is empty")
	}

	seen := make(map[string]bool, len(rivers))
	for _, r := range rivers {
		if r.NameBN == "" || r.NameEN == "" {
			p.errorf("river %q/%q has an empty name", r.NameBN, r.NameEN)
		}
		if seen[r.NameBN] {
			p.errorf("duplicate river %q", r.NameBN)
		}
		seen[r.NameBN] = true

		if r.Lat < minLat || r.Lat > maxLat || r.Lon < minLon || r.Lon > maxLon {
			p.errorf("%s at (%.4f, %.4f) outside Bangladesh bounds", r.NameEN, r.Lat, r.Lon)
		}
	}
	return p
}

// validateScoring runs every district through both strategies for every
// month and checks the outputs stay in range and mutually consistent.
func validateScoring(districts []domain.District, rivers []domain.River) *phase {
	p := &phase{name: "scoring model"}
	defer domain.SetClock(nil)

	provider := domain.NewSyntheticProvider()
	for _, strategy := range []domain.Strategy{domain.StrategyBasic, domain.StrategySeasonal} {
		scorer := domain.NewScorer(rivers, strategy)

		for month := time.January; month <= time.December; month++ {
			at := time.Date(2025, month, 15, 12, 0, 0, 0, time.UTC)
			domain.SetClock(clockwork.NewFakeClockAt(at))

			for _, d := range districts {
				reading, err := provider.Fetch(context.Background(), d.Lat, d.Lon)
				if err != nil {
					p.errorf("synthesize %s: %v", d.NameEN, err)
					continue
				}
				a := scorer.Score(d.Lat, d.Lon, reading)

				if a.RiskPercent < 0 || a.RiskPercent > 100 {
					p.errorf("%s %s %s: risk %.2f outside [0,100]", strategy, month, d.NameEN, a.RiskPercent)
				}
				if a.NearestRiver == "" {
					p.errorf("%s %s: no nearest river", strategy, d.NameEN)
				}
				if a.TierCode == "unknown" || a.TierLabelBN == "অজানা" {
					p.errorf("%s %s %s: unclassified tier", strategy, month, d.NameEN)
				}
				if strategy == domain.StrategyBasic && a.Tier == domain.TierVeryHigh {
					p.errorf("basic %s %s: very_high tier is seasonal-only", month, d.NameEN)
				}
			}
		}
	}
	return p
}
