package config

import (
	"sort"

	"github.com/san-kum/phytosim/internal/models"
)

type Preset struct {
	Description string
	Run         RunConfig
	Params      models.Params
}

func run(biomass, contaminant float64) RunConfig {
	r := DefaultConfig().Run
	r.Biomass, r.Contaminant = biomass, contaminant
	return r
}

var Presets = map[string]Preset{
	"baseline": {
		Description: "Alyssum on moderately contaminated soil",
		Run:         run(100, 5000),
		Params:      models.DefaultParams(),
	},
	"bare-soil": {
		Description: "no plants, leaching only",
		Run:         run(0, 5000),
		Params:      models.DefaultParams(),
	},
	"clean-soil": {
		Description: "soil already below the safe threshold",
		Run:         run(100, 50),
		Params:      models.DefaultParams(),
	},
	"dense-planting": {
		Description: "established stand near half carrying capacity",
		Run:         run(4000, 5000),
		Params:      models.DefaultParams(),
	},
	"heavy-contamination": {
		Description: "mine tailings with four times the baseline nickel",
		Run:         run(100, 20000),
		Params:      models.DefaultParams(),
	},
}

// GetPreset returns a full configuration built from the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.ApplyPreset(p)
	return cfg
}

// ApplyPreset sets the initial conditions and model coefficients from p.
// Step, span, threshold and integrator keep whatever c already holds.
func (c *Config) ApplyPreset(p Preset) {
	c.Run.Biomass, c.Run.Contaminant = p.Run.Biomass, p.Run.Contaminant
	c.Params = p.Params
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
