package statute

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/user/fraudscope/pkg/logging"
)

// PenaltySpec describes one statutory penalty as declared in a provision file.
type PenaltySpec struct {
	Kind     string  `yaml:"kind"` // monetary | imprisonment | license_action
	Amount   float64 `yaml:"amount,omitempty"`
	Duration float64 `yaml:"duration,omitempty"`
	Unit     string  `yaml:"unit,omitempty"`
	Text     string  `yaml:"text"`
}

// Provision is a single legal provision keyed by citation.
type Provision struct {
	Citation            string        `yaml:"citation"`
	Name                string        `yaml:"name"`
	Description         string        `yaml:"description"`
	RequiredDisclosures []string      `yaml:"required_disclosures"`
	CriminalLiability   float64       `yaml:"criminal_liability"` // 0-10
	Penalties           []PenaltySpec `yaml:"penalties"`
}

// Index is a read-only lookup of citation -> provision. It is built once at
// startup and never mutated afterwards, so unsynchronized concurrent reads
// are safe.
type Index struct {
	provisions map[string]Provision
}

// NewIndex builds an index from an in-memory provision list.
func NewIndex(provisions []Provision) *Index {
	m := make(map[string]Provision, len(provisions))
	for _, p := range provisions {
		m[p.Citation] = p
	}
	return &Index{provisions: m}
}

// Load reads YAML provision files from a directory. Each file may hold a
// single provision or a list under a top-level "provisions" key.
func Load(dir string) (*Index, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var provisions []Provision
	for _, entry := range entries {
		if entry.IsDir() || (filepath.Ext(entry.Name()) != ".yaml" && filepath.Ext(entry.Name()) != ".yml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		var doc struct {
			Provisions []Provision `yaml:"provisions"`
		}
		if err := yaml.Unmarshal(data, &doc); err == nil && len(doc.Provisions) > 0 {
			provisions = append(provisions, doc.Provisions...)
			continue
		}

		var p Provision
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %v", entry.Name(), err)
		}
		if p.Citation == "" {
			continue
		}
		provisions = append(provisions, p)
	}

	logging.Logger.Infow("loaded statute provisions", "count", len(provisions), "dir", dir)
	return NewIndex(provisions), nil
}

// Lookup retrieves a provision by citation. A miss is not an error; it means
// no cross-reference is available.
func (idx *Index) Lookup(citation string) (Provision, bool) {
	p, ok := idx.provisions[citation]
	return p, ok
}

// Citations returns the citations of all loaded provisions.
func (idx *Index) Citations() []string {
	keys := make([]string, 0, len(idx.provisions))
	for k := range idx.provisions {
		keys = append(keys, k)
	}
	return keys
}

// Len returns the number of indexed provisions.
func (idx *Index) Len() int {
	return len(idx.provisions)
}
