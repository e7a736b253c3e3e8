package catalog

import (
	"sort"
	"strings"

	"github.com/turtacn/FireCircuit-Intelligence/internal/domain/device"
)

// PatternKey is the composite lookup key probed by the pattern-match step
// of specification resolution.
type PatternKey struct {
	Type     string
	Mounting device.Mounting
	Env      device.EnvironmentalRating
	Token    string
}

// Indexed is a catalog record annotated with its position in the catalog
// hierarchy, as handed out by Index lookups.
type Indexed struct {
	Record
	Family string
	Type   string
	Token  string
}

// Index is the precomputed lookup structure built once per catalog load.
// It is immutable after construction and safe for concurrent readers.
//
// Build order is fully deterministic (sorted at every nesting level) so
// that first-wins collisions and insertion-order tie-breaking are
// reproducible across loads of an unchanged catalog.
type Index struct {
	class   device.Class
	version string

	byDescription  map[string]Indexed
	byPattern      map[PatternKey]Indexed
	familyByAlias  map[string]string
	familyDefaults map[string]map[string]Indexed

	// entries preserves catalog insertion order for similarity scoring and
	// its tie-break rule.
	entries []Indexed
}

// NormalizeKey uppercases and collapses interior whitespace so that lookups
// tolerate the loose spacing of host-model texts.
func NormalizeKey(s string) string {
	return strings.Join(strings.Fields(strings.ToUpper(s)), " ")
}

// BuildIndex walks the parsed catalog and precomputes every lookup table
// the resolvers probe.  The catalog itself is only read.
func BuildIndex(class device.Class, c *Catalog) *Index {
	idx := &Index{
		class:          class,
		byDescription:  make(map[string]Indexed),
		byPattern:      make(map[PatternKey]Indexed),
		familyByAlias:  make(map[string]string),
		familyDefaults: make(map[string]map[string]Indexed),
	}
	if c == nil {
		return idx
	}
	idx.version = c.Version

	for _, familyName := range sortedKeys(c.DeviceFamilies) {
		family := c.DeviceFamilies[familyName]
		for _, typeName := range sortedKeys(family.DeviceTypes) {
			typeGroup := family.DeviceTypes[typeName]
			for _, mountingName := range sortedKeys(typeGroup.Mountings) {
				envGroup := typeGroup.Mountings[mountingName]
				for _, envName := range sortedKeys(envGroup.Environments) {
					ratingSet := envGroup.Environments[envName]
					for _, token := range sortedKeys(ratingSet.Ratings) {
						rec := ratingSet.Ratings[token]
						entry := Indexed{
							Record: rec,
							Family: familyName,
							Type:   typeName,
							Token:  token,
						}
						idx.entries = append(idx.entries, entry)
						idx.indexDescriptions(entry)
						idx.indexPattern(entry)
						idx.indexFamilyDefault(entry)
					}
				}
			}
		}
	}

	for alias, ref := range c.FamilyMapping.Mappings {
		idx.familyByAlias[NormalizeKey(alias)] = ref.Family
	}
	return idx
}

// indexDescriptions registers the entry under its description, SKU, part
// code, and description+token. First entry wins on collision.
func (idx *Index) indexDescriptions(entry Indexed) {
	keys := []string{
		entry.Description,
		entry.SKU,
		entry.PartCode,
		entry.Description + " " + entry.Token,
	}
	for _, k := range keys {
		norm := NormalizeKey(k)
		if norm == "" {
			continue
		}
		if _, exists := idx.byDescription[norm]; !exists {
			idx.byDescription[norm] = entry
		}
	}
}

func (idx *Index) indexPattern(entry Indexed) {
	key := PatternKey{
		Type:     entry.Type,
		Mounting: entry.Mounting,
		Env:      entry.EnvironmentalRating,
		Token:    entry.Token,
	}
	if _, exists := idx.byPattern[key]; !exists {
		idx.byPattern[key] = entry
	}
}

func (idx *Index) indexFamilyDefault(entry Indexed) {
	tokens, ok := idx.familyDefaults[entry.Family]
	if !ok {
		tokens = make(map[string]Indexed)
		idx.familyDefaults[entry.Family] = tokens
	}
	if _, exists := tokens[entry.Token]; !exists {
		tokens[entry.Token] = entry
	}
}

// Class returns the device class this index serves.
func (idx *Index) Class() device.Class { return idx.class }

// Version returns the catalog version the index was built from.
func (idx *Index) Version() string { return idx.version }

// Len returns the number of indexed records.
func (idx *Index) Len() int { return len(idx.entries) }

// DirectMatch probes the description/SKU/part-code lookup with the given
// free text, normalized.
func (idx *Index) DirectMatch(text string) (Indexed, bool) {
	entry, ok := idx.byDescription[NormalizeKey(text)]
	return entry, ok
}

// Pattern probes the composite (type, mounting, environment, token) lookup.
func (idx *Index) Pattern(key PatternKey) (Indexed, bool) {
	entry, ok := idx.byPattern[key]
	return entry, ok
}

// ResolveFamilyAlias maps a loose family description to its canonical
// family name through the alias table.
func (idx *Index) ResolveFamilyAlias(text string) (string, bool) {
	family, ok := idx.familyByAlias[NormalizeKey(text)]
	return family, ok
}

// FamilyDefault returns the family's record for the requested token,
// preferring the exact token, then "75", then the lexicographically first
// available token.
func (idx *Index) FamilyDefault(family, token string) (Indexed, bool) {
	tokens, ok := idx.familyDefaults[family]
	if !ok || len(tokens) == 0 {
		return Indexed{}, false
	}
	if entry, ok := tokens[token]; ok {
		return entry, true
	}
	if entry, ok := tokens[PreferredCandelaToken]; ok {
		return entry, true
	}
	keys := sortedKeys(tokens)
	return tokens[keys[0]], true
}

// Entries returns the indexed records in deterministic catalog order.
// Callers must not modify the returned slice.
func (idx *Index) Entries() []Indexed { return idx.entries }

// PreferredCandelaToken is the most common candela rating, used as the
// default when a device text names no specific rating.
const PreferredCandelaToken = "75"

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
