// Package config holds the tunables for hull queries and the meshes built
// around them.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ghodss/yaml"

	"github.com/AnonimowyCoder/Projekt-GO/pkg/engine"
	"github.com/AnonimowyCoder/Projekt-GO/pkg/geom"
	"github.com/AnonimowyCoder/Projekt-GO/pkg/kernel/sdfx"
	"github.com/AnonimowyCoder/Projekt-GO/pkg/tessellate"
)

// Duration is a time.Duration that reads and writes as "5s" style strings.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", d.String())), nil
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %s: %w", b, err)
	}
	d.Duration = v
	return nil
}

// Config is loaded from YAML. ghodss/yaml converts to JSON first, so the
// json tags are the YAML keys.
type Config struct {
	Epsilon     float64  `json:"epsilon"`
	Containment string   `json:"containment"`
	Policy      string   `json:"policy"`
	Workers     int      `json:"workers,omitempty"`
	MeshCells   int      `json:"meshCells"`
	EvalTimeout Duration `json:"evalTimeout"`

	// MarkerRadius sizes the spheres drawn at intersection points. Zero
	// disables marker meshes.
	MarkerRadius float64 `json:"markerRadius"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Epsilon:     geom.ParallelEpsilon,
		Containment: geom.ContainmentXY,
		Policy:      geom.FirstHit.String(),
		MeshCells:   sdfx.DefaultMeshCells,
		EvalTimeout: Duration{engine.EvalTimeout},

		MarkerRadius: tessellate.DefaultMarkerRadius,
	}
}

// Load reads a YAML file on top of Default. Keys missing from the file keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges and names.
func (c Config) Validate() error {
	if !(c.Epsilon > 0) {
		return fmt.Errorf("epsilon must be positive, got %g", c.Epsilon)
	}
	if _, err := geom.ContainmentByName(c.Containment); err != nil {
		return err
	}
	if _, err := geom.ParsePolicy(c.Policy); err != nil {
		return err
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.MeshCells < 0 {
		return fmt.Errorf("meshCells must not be negative, got %d", c.MeshCells)
	}
	if c.MarkerRadius < 0 {
		return fmt.Errorf("markerRadius must not be negative, got %g", c.MarkerRadius)
	}
	if c.EvalTimeout.Duration < 0 {
		return fmt.Errorf("evalTimeout must not be negative, got %s", c.EvalTimeout)
	}
	return nil
}

// Intersector builds the scan settings described by c.
func (c Config) Intersector() (geom.Intersector, error) {
	contain, err := geom.ContainmentByName(c.Containment)
	if err != nil {
		return geom.Intersector{}, err
	}
	policy, err := geom.ParsePolicy(c.Policy)
	if err != nil {
		return geom.Intersector{}, err
	}
	return geom.Intersector{
		Epsilon:     c.Epsilon,
		Containment: contain,
		Policy:      policy,
		Workers:     c.Workers,
	}, nil
}

// Marshal renders c as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
