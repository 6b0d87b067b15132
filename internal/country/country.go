// Package country resolves ISO codes and country names against static reference data.
package country

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrNotFound is returned when a name does not resolve to a country with a capital.
var ErrNotFound = errors.New("country not found")

//go:embed data/countries.json
var embeddedDataset []byte

// Record is the resolved view of a country.
type Record struct {
	Name        string `json:"name"`
	Capital     string `json:"capital"`
	Alpha2      string `json:"alpha2"`
	CallingCode int    `json:"calling_code,omitempty"`
}

type datasetEntry struct {
	Name    string   `json:"name"`
	Alpha2  string   `json:"alpha2"`
	Capital string   `json:"capital"`
	Alt     []string `json:"alt"`
}

// Catalog indexes the reference dataset by every accepted spelling. It is
// read-only after construction and safe for concurrent use.
type Catalog struct {
	entries []datasetEntry
	index   map[string]int
}

// NewCatalog builds a catalog from the embedded dataset.
func NewCatalog() (*Catalog, error) {
	return LoadCatalog(bytes.NewReader(embeddedDataset))
}

// LoadCatalog builds a catalog from a JSON array of dataset entries.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var entries []datasetEntry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode country dataset: %w", err)
	}

	c := &Catalog{entries: entries, index: make(map[string]int, len(entries)*3)}
	for i, e := range entries {
		if strings.TrimSpace(e.Name) == "" {
			return nil, fmt.Errorf("country dataset entry %d has no name", i)
		}
		keys := append([]string{e.Name, e.Alpha2}, e.Alt...)
		for _, k := range keys {
			nk := normalize(k)
			if nk == "" {
				continue
			}
			// first entry wins on collisions
			if _, exists := c.index[nk]; !exists {
				c.index[nk] = i
			}
		}
	}
	return c, nil
}

// Len reports how many countries the catalog holds.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Info resolves a country name, alpha-2 code or alternative spelling to its
// capital and canonical name.
func (c *Catalog) Info(name string) (Record, error) {
	i, ok := c.index[normalize(name)]
	if !ok {
		return Record{}, ErrNotFound
	}
	e := c.entries[i]
	if strings.TrimSpace(e.Capital) == "" {
		return Record{}, ErrNotFound
	}

	return Record{
		Name:        e.Name,
		Capital:     e.Capital,
		Alpha2:      strings.ToUpper(e.Alpha2),
		CallingCode: phonenumbers.GetCountryCodeForRegion(strings.ToUpper(e.Alpha2)),
	}, nil
}

// Name returns the English display name for a two-letter ISO 3166 code.
func (c *Catalog) Name(alpha2 string) (string, bool) {
	return Name(alpha2)
}

// Name returns the English display name for a two-letter ISO 3166 code. The
// second value is false for malformed, unknown, deprecated or non-country codes.
func Name(alpha2 string) (string, bool) {
	code := strings.TrimSpace(alpha2)
	if len(code) != 2 || !isASCIILetters(code) {
		return "", false
	}

	region, err := language.ParseRegion(code)
	if err != nil || !region.IsCountry() {
		return "", false
	}
	// ParseRegion maps reserved and retired codes such as UK or YU onto their
	// successors; only exact assignments count.
	if !strings.EqualFold(region.String(), code) {
		return "", false
	}

	name := display.English.Regions().Name(region)
	if name == "" {
		return "", false
	}
	return name, true
}

func isASCIILetters(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

// normalize folds case, strips diacritics and collapses whitespace.
func normalize(s string) string {
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		out = s
	}
	out = cases.Fold().String(out)
	return strings.Join(strings.Fields(out), " ")
}
