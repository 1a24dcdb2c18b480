// Package content serves the static tourism, culture, yoga and emergency data
// bundled with the binary.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

// CrowdStatus shrine crowd reading
type CrowdStatus struct {
	Shrine     string `yaml:"shrine" json:"shrine"`
	CrowdLevel int    `yaml:"crowd_level" json:"crowd_level"`
	Status     string `yaml:"status" json:"status"`
}

// Product artisan product listing
type Product struct {
	ID          int    `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Price       int    `yaml:"price" json:"price"`
	Artisan     string `yaml:"artisan" json:"artisan"`
	Image       string `yaml:"image" json:"image"`
}

// PostureFeedback mock vision verdict
type PostureFeedback struct {
	Status     string  `yaml:"status" json:"status"`
	Feedback   string  `yaml:"feedback" json:"feedback"`
	Confidence float64 `yaml:"confidence" json:"confidence"`
}

// YogaPose pose description
type YogaPose struct {
	Name            string   `yaml:"name" json:"name"`
	SanskritName    string   `yaml:"sanskrit_name" json:"sanskrit_name"`
	Description     string   `yaml:"description" json:"description"`
	DifficultyLevel string   `yaml:"difficulty_level" json:"difficulty_level"`
	Category        string   `yaml:"category" json:"category"`
	Benefits        []string `yaml:"benefits" json:"benefits"`
	Instructions    []string `yaml:"instructions" json:"instructions"`
	Precautions     string   `yaml:"precautions" json:"precautions,omitempty"`
	Duration        string   `yaml:"duration" json:"duration"`
	ImageURL        string   `yaml:"image_url" json:"image_url,omitempty"`
}

// EmergencyContact helpline
type EmergencyContact struct {
	District    string `yaml:"district" json:"district"`
	ServiceType string `yaml:"service_type" json:"service_type"`
	Name        string `yaml:"name" json:"name"`
	PhoneNumber string `yaml:"phone_number" json:"phone_number"`
	Address     string `yaml:"address" json:"address,omitempty"`
	Is24x7      bool   `yaml:"is_24x7" json:"is_24x7"`
}

// FirstAidTip first aid guidance
type FirstAidTip struct {
	Title     string   `yaml:"title" json:"title"`
	Symptoms  string   `yaml:"symptoms" json:"symptoms"`
	Treatment []string `yaml:"treatment" json:"treatment"`
}

// EmissionFactors kg CO2 per km by vehicle type
type EmissionFactors struct {
	Default  string             `yaml:"default"`
	Baseline string             `yaml:"baseline"`
	Factors  map[string]float64 `yaml:"factors"`
}

// Catalog all bundled content
type Catalog struct {
	CrowdStatus       []CrowdStatus      `yaml:"crowd_status"`
	EmissionFactors   EmissionFactors    `yaml:"emission_factors"`
	Products          []Product          `yaml:"products"`
	PostureFeedback   []PostureFeedback  `yaml:"posture_feedback"`
	YogaPoses         []YogaPose         `yaml:"yoga_poses"`
	EmergencyContacts []EmergencyContact `yaml:"emergency_contacts"`
	FirstAid          []FirstAidTip      `yaml:"first_aid"`

	pick func(n int) int
}

// Default the embedded catalog
func Default() (*Catalog, error) {
	return Parse(embeddedCatalog)
}

// LoadFile reads a catalog from path, falling back to the embedded copy when
// path is empty.
func LoadFile(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	c.pick = rand.IntN
	return &c, nil
}

func (c *Catalog) validate() error {
	ef := c.EmissionFactors
	if _, ok := ef.Factors[ef.Default]; !ok {
		return fmt.Errorf("catalog: default vehicle %q has no emission factor", ef.Default)
	}
	if _, ok := ef.Factors[ef.Baseline]; !ok {
		return fmt.Errorf("catalog: baseline vehicle %q has no emission factor", ef.Baseline)
	}
	if len(c.PostureFeedback) == 0 {
		return errors.New("catalog: posture_feedback is empty")
	}
	return nil
}

// WithPicker replaces the random index source; tests pass a fixed picker
func (c *Catalog) WithPicker(pick func(n int) int) *Catalog {
	c.pick = pick
	return c
}

// RandomPostureFeedback one of the mock vision verdicts
func (c *Catalog) RandomPostureFeedback() PostureFeedback {
	return c.PostureFeedback[c.pick(len(c.PostureFeedback))]
}

// CarbonEstimate footprint of a trip
type CarbonEstimate struct {
	CO2Kg       float64 `json:"co2_kg"`
	SavedVsSUV  float64 `json:"saved_vs_suv"`
	VehicleType string  `json:"vehicle_type"`
	Distance    float64 `json:"distance"`
}

// ErrInvalidDistance distance is negative or not a number
var ErrInvalidDistance = errors.New("distance must be a non-negative number")

// CarbonFootprint estimates CO2 for distance km; unknown vehicle types use the
// default factor. VehicleType is echoed back as given.
func (c *Catalog) CarbonFootprint(distance float64, vehicleType string) (CarbonEstimate, error) {
	if distance < 0 || math.IsNaN(distance) || math.IsInf(distance, 0) {
		return CarbonEstimate{}, ErrInvalidDistance
	}
	ef := c.EmissionFactors
	factor, ok := ef.Factors[strings.ToLower(strings.TrimSpace(vehicleType))]
	if !ok {
		factor = ef.Factors[ef.Default]
	}
	co2 := distance * factor
	return CarbonEstimate{
		CO2Kg:       co2,
		SavedVsSUV:  distance*ef.Factors[ef.Baseline] - co2,
		VehicleType: vehicleType,
		Distance:    distance,
	}, nil
}

// PosesByDifficulty poses at level, all poses when level is empty
func (c *Catalog) PosesByDifficulty(level string) []YogaPose {
	if level == "" {
		return c.YogaPoses
	}
	out := make([]YogaPose, 0, len(c.YogaPoses))
	for _, p := range c.YogaPoses {
		if strings.EqualFold(p.DifficultyLevel, level) {
			out = append(out, p)
		}
	}
	return out
}
