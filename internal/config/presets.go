package config

import "sort"

var Presets = map[string]*Config{
	"single": {
		Gravity: DefaultGravity, Dt: DefaultDt, Margin: DefaultMargin, JointRadius: DefaultJointRadius, ShowStatus: true,
		Links: []LinkConfig{{Length: 5, Mass: 1, Theta: 1.0}},
	},
	"double": {
		Gravity: DefaultGravity, Dt: DefaultDt, Margin: DefaultMargin, JointRadius: DefaultJointRadius, ShowStatus: true,
		Links: []LinkConfig{{Length: 3, Mass: 2, Theta: 1.5}, {Length: 3, Mass: 1, Theta: 2.0}},
	},
	"triple": {
		Gravity: DefaultGravity, Dt: DefaultDt, Margin: DefaultMargin, JointRadius: DefaultJointRadius, ShowStatus: true,
		Links: []LinkConfig{{Length: 3, Mass: 3, Theta: 0.5}, {Length: 2, Mass: 2, Theta: 1.0}, {Length: 1, Mass: 1, Theta: 1.5, Omega: 1}},
	},
	"whip": {
		Gravity: DefaultGravity, Dt: 0.005, Margin: 1, JointRadius: 1, ShowStatus: true,
		Links: []LinkConfig{
			{Length: 2, Mass: 5, Theta: 0.2},
			{Length: 1.5, Mass: 4, Theta: 0.4},
			{Length: 1, Mass: 3, Theta: 0.8},
			{Length: 0.75, Mass: 2, Theta: 1.6},
			{Length: 0.5, Mass: 1, Theta: 3.0, Omega: 2},
		},
	},
	"rest": {
		Gravity: DefaultGravity, Dt: DefaultDt, Margin: DefaultMargin, JointRadius: DefaultJointRadius, ShowStatus: true,
		Links: []LinkConfig{{Length: 1, Mass: 1}},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return p.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
