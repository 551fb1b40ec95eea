package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/quistberg/ladle/internal/domain"
)

// Sentinel errors for the content loader
var (
	ErrInvalidConfig = errors.New("invalid content configuration")
	ErrDuplicateName = errors.New("duplicate name")
)

// Content file names under the content directory.
const (
	FileAtoms       = "atoms.json"
	FileRecipes     = "recipes.json"
	FileFoods       = "foods.json"
	FileCustomers   = "customers.json"
	FileBosses      = "bosses.json"
	FileArtifacts   = "artifacts.json"
	FileConsumables = "consumables.json"
	FileTaste       = "taste.json"
)

type atomsFile struct {
	Version string    `json:"version"`
	Atoms   []AtomDef `json:"atoms"`
}

type recipesFile struct {
	Version string         `json:"version"`
	Combine []CombineEntry `json:"combine"`
	Split   []SplitEntry   `json:"split"`
	Amplify []MapEntry     `json:"amplify"`
	Mutate  []MapEntry     `json:"mutate"`
}

type foodsFile struct {
	Version string                    `json:"version"`
	Default domain.Profile            `json:"default"`
	Foods   map[string]domain.Profile `json:"foods"`
}

type customersFile struct {
	Version   string            `json:"version"`
	Customers []domain.Customer `json:"customers"`
}

type bossesFile struct {
	Version string        `json:"version"`
	Bosses  []domain.Boss `json:"bosses"`
}

type artifactsFile struct {
	Version   string            `json:"version"`
	Artifacts []domain.Artifact `json:"artifacts"`
}

type consumablesFile struct {
	Version     string              `json:"version"`
	Consumables []domain.Consumable `json:"consumables"`
}

type tasteFile struct {
	Version string                               `json:"version"`
	Buckets map[domain.Attribute][]TasteBucket `json:"buckets"`
}

// Loader reads and validates the content tables.
type Loader interface {
	Load(dir string) (*Tables, error)
	Validate(t *Tables) error
}

type loader struct{}

// NewLoader creates a new Loader instance
func NewLoader() Loader {
	return loader{}
}

func readJSON(dir, name string, out interface{}) error {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("failed to read content file %s: %w", name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse content file %s: %w", name, err)
	}
	return nil
}

// Load reads every content table from dir. Failure is fatal at startup; the
// core never retries.
func (l loader) Load(dir string) (*Tables, error) {
	var (
		atoms       atomsFile
		recipes     recipesFile
		foods       foodsFile
		customers   customersFile
		bosses      bossesFile
		artifacts   artifactsFile
		consumables consumablesFile
		taste       tasteFile
	)

	if err := readJSON(dir, FileAtoms, &atoms); err != nil {
		return nil, err
	}
	if err := readJSON(dir, FileRecipes, &recipes); err != nil {
		return nil, err
	}
	if err := readJSON(dir, FileFoods, &foods); err != nil {
		return nil, err
	}
	if err := readJSON(dir, FileCustomers, &customers); err != nil {
		return nil, err
	}
	if err := readJSON(dir, FileBosses, &bosses); err != nil {
		return nil, err
	}
	if err := readJSON(dir, FileArtifacts, &artifacts); err != nil {
		return nil, err
	}
	if err := readJSON(dir, FileConsumables, &consumables); err != nil {
		return nil, err
	}
	if err := readJSON(dir, FileTaste, &taste); err != nil {
		return nil, err
	}

	t := &Tables{
		Atoms:       atoms.Atoms,
		Combine:     recipes.Combine,
		Split:       make(map[string][2]string, len(recipes.Split)),
		Amplify:     make(map[string]string, len(recipes.Amplify)),
		Mutate:      make(map[string]string, len(recipes.Mutate)),
		Default:     foods.Default,
		Foods:       foods.Foods,
		Customers:   customers.Customers,
		Bosses:      bosses.Bosses,
		Artifacts:   artifacts.Artifacts,
		Consumables: consumables.Consumables,
		Taste:       taste.Buckets,
		atomSet:     make(map[string]bool, len(atoms.Atoms)),
	}

	for _, e := range recipes.Split {
		t.Split[e.Source] = e.Parts
	}
	for _, e := range recipes.Amplify {
		t.Amplify[e.Source] = e.Result
	}
	for _, e := range recipes.Mutate {
		t.Mutate[e.Source] = e.Result
	}
	for _, a := range atoms.Atoms {
		t.atomSet[a.Name] = true
	}

	if err := l.Validate(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks the loaded tables for structural errors.
func (l loader) Validate(t *Tables) error {
	if t == nil {
		return fmt.Errorf("%w: tables are nil", ErrInvalidConfig)
	}
	if len(t.Atoms) == 0 {
		return fmt.Errorf("%w: no atoms defined", ErrInvalidConfig)
	}

	seen := make(map[string]bool, len(t.Atoms))
	hasStarting := false
	for i, a := range t.Atoms {
		if a.Name == "" {
			return fmt.Errorf("%w: atom at index %d has empty name", ErrInvalidConfig, i)
		}
		if seen[a.Name] {
			return fmt.Errorf("%w: '%s'", ErrDuplicateName, a.Name)
		}
		seen[a.Name] = true
		if a.Cost < 0 {
			return fmt.Errorf("%w: atom '%s' has negative cost", ErrInvalidConfig, a.Name)
		}
		if a.Starting {
			hasStarting = true
		}
	}
	if !hasStarting {
		return fmt.Errorf("%w: no starting atoms", ErrInvalidConfig)
	}

	for i, e := range t.Combine {
		if e.Inputs[0] == "" || e.Inputs[1] == "" || e.Result == "" {
			return fmt.Errorf("%w: combine entry at index %d incomplete", ErrInvalidConfig, i)
		}
	}

	if len(t.Customers) == 0 {
		return fmt.Errorf("%w: no customers defined", ErrInvalidConfig)
	}
	spawnableDayOne := false
	for i, c := range t.Customers {
		if c.Name == "" {
			return fmt.Errorf("%w: customer at index %d has empty name", ErrInvalidConfig, i)
		}
		if len(c.Demand) == 0 {
			return fmt.Errorf("%w: customer '%s' has empty demand", ErrInvalidConfig, c.Name)
		}
		if c.SpawnDay <= 1 {
			spawnableDayOne = true
		}
	}
	if !spawnableDayOne {
		return fmt.Errorf("%w: no customer spawnable on day 1", ErrInvalidConfig)
	}

	for _, b := range t.Bosses {
		if len(b.Orders) == 0 {
			return fmt.Errorf("%w: boss '%s' has no courses", ErrInvalidConfig, b.Name)
		}
		if b.Day <= 0 {
			return fmt.Errorf("%w: boss '%s' has no day", ErrInvalidConfig, b.Name)
		}
		for _, o := range b.Orders {
			if o.MaxDistance <= 0 {
				return fmt.Errorf("%w: boss '%s' course '%s' has no max distance", ErrInvalidConfig, b.Name, o.Name)
			}
		}
	}

	ids := make(map[string]bool)
	for _, a := range t.Artifacts {
		if a.ID == "" || a.Effect.Type == "" {
			return fmt.Errorf("%w: artifact '%s' incomplete", ErrInvalidConfig, a.Name)
		}
		if ids[a.ID] {
			return fmt.Errorf("%w: '%s'", ErrDuplicateName, a.ID)
		}
		ids[a.ID] = true
	}
	for _, c := range t.Consumables {
		if c.ID == "" || c.Effect.Type == "" {
			return fmt.Errorf("%w: consumable '%s' incomplete", ErrInvalidConfig, c.Name)
		}
		if ids[c.ID] {
			return fmt.Errorf("%w: '%s'", ErrDuplicateName, c.ID)
		}
		ids[c.ID] = true
	}

	return nil
}
