package catalogs

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/zyedidia/generic/mapset"

	"nonogram.ap/internal/protocol"
	"nonogram.ap/internal/sim/host"
)

type ItemDef struct {
	Name           string              `json:"name"`
	Code           int64               `json:"code,omitempty"` // 0 for event items
	Classification host.Classification `json:"classification"`
	Description    string              `json:"description,omitempty"`
}

func (d ItemDef) IsEvent() bool { return d.Code == 0 }

type LocationDef struct {
	Name        string `json:"name"`
	Code        int64  `json:"code,omitempty"` // 0 for event locations
	Region      string `json:"region"`
	Description string `json:"description,omitempty"`
}

func (d LocationDef) IsEvent() bool { return d.Code == 0 }

// Catalog is an immutable, validated view over the item and location tables.
type Catalog struct {
	items     []ItemDef
	itemIndex map[string]int

	locations     []LocationDef
	locationIndex map[string]int

	groups     map[string][]string
	groupNames []string

	ItemsDigest     string
	LocationsDigest string
}

// New validates the tables and indexes them. It copies its inputs.
func New(items []ItemDef, locations []LocationDef, groups map[string][]string) (*Catalog, error) {
	c := &Catalog{
		items:         append([]ItemDef(nil), items...),
		itemIndex:     make(map[string]int, len(items)),
		locations:     append([]LocationDef(nil), locations...),
		locationIndex: make(map[string]int, len(locations)),
		groups:        make(map[string][]string, len(groups)),
	}

	codes := map[int64]string{}
	for i, d := range c.items {
		if d.Name == "" {
			return nil, fmt.Errorf("items: empty name at index %d", i)
		}
		if _, dup := c.itemIndex[d.Name]; dup {
			return nil, fmt.Errorf("items: duplicate name %q", d.Name)
		}
		c.itemIndex[d.Name] = i
		if d.IsEvent() {
			continue
		}
		if _, ok := protocol.ItemCategoryOf(d.Code); !ok {
			return nil, fmt.Errorf("items: %q code %d outside every item range", d.Name, d.Code)
		}
		if prev, dup := codes[d.Code]; dup {
			return nil, fmt.Errorf("items: code %d shared by %q and %q", d.Code, prev, d.Name)
		}
		codes[d.Code] = d.Name
	}

	codes = map[int64]string{}
	for i, d := range c.locations {
		if d.Name == "" {
			return nil, fmt.Errorf("locations: empty name at index %d", i)
		}
		if d.Region == "" {
			return nil, fmt.Errorf("locations: %q has no region", d.Name)
		}
		if _, dup := c.locationIndex[d.Name]; dup {
			return nil, fmt.Errorf("locations: duplicate name %q", d.Name)
		}
		c.locationIndex[d.Name] = i
		if d.IsEvent() {
			continue
		}
		if _, ok := protocol.LocationCategoryOf(d.Code); !ok {
			return nil, fmt.Errorf("locations: %q code %d outside every location range", d.Name, d.Code)
		}
		if prev, dup := codes[d.Code]; dup {
			return nil, fmt.Errorf("locations: code %d shared by %q and %q", d.Code, prev, d.Name)
		}
		codes[d.Code] = d.Name
	}

	for name, members := range groups {
		if name == "" {
			return nil, fmt.Errorf("groups: empty group name")
		}
		sorted := append([]string(nil), members...)
		sort.Strings(sorted)
		for _, m := range sorted {
			if _, ok := c.itemIndex[m]; !ok {
				return nil, fmt.Errorf("groups: %q references unknown item %q", name, m)
			}
		}
		c.groups[name] = sorted
		c.groupNames = append(c.groupNames, name)
	}
	sort.Strings(c.groupNames)

	itemsJSON, _ := json.Marshal(c.items)
	c.ItemsDigest = sha256Hex(itemsJSON)
	locJSON, _ := json.Marshal(c.locations)
	c.LocationsDigest = sha256Hex(locJSON)
	return c, nil
}

func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func (c *Catalog) ItemByName(name string) (ItemDef, error) {
	i, ok := c.itemIndex[name]
	if !ok {
		return ItemDef{}, protocol.NotFound("item", name)
	}
	return c.items[i], nil
}

func (c *Catalog) LocationByName(name string) (LocationDef, error) {
	i, ok := c.locationIndex[name]
	if !ok {
		return LocationDef{}, protocol.NotFound("location", name)
	}
	return c.locations[i], nil
}

// Items returns every item definition in table order, events included.
func (c *Catalog) Items() []ItemDef { return append([]ItemDef(nil), c.items...) }

// Locations returns every location definition in table order, events included.
func (c *Catalog) Locations() []LocationDef { return append([]LocationDef(nil), c.locations...) }

// FillableLocations returns the locations that carry a code, in table order.
func (c *Catalog) FillableLocations() []LocationDef {
	out := make([]LocationDef, 0, len(c.locations))
	for _, d := range c.locations {
		if !d.IsEvent() {
			out = append(out, d)
		}
	}
	return out
}

// GroupMembers returns a fresh set; callers may mutate it.
func (c *Catalog) GroupMembers(group string) (mapset.Set[string], error) {
	members, ok := c.groups[group]
	if !ok {
		return mapset.Set[string]{}, protocol.NotFound("group", group)
	}
	return mapset.Of(members...), nil
}

func (c *Catalog) GroupNames() []string { return append([]string(nil), c.groupNames...) }

func (c *Catalog) ItemNameToID() map[string]int64 {
	out := make(map[string]int64, len(c.items))
	for _, d := range c.items {
		if !d.IsEvent() {
			out[d.Name] = d.Code
		}
	}
	return out
}

func (c *Catalog) LocationNameToID() map[string]int64 {
	out := make(map[string]int64, len(c.locations))
	for _, d := range c.locations {
		if !d.IsEvent() {
			out[d.Name] = d.Code
		}
	}
	return out
}

// LocationsByRegion groups location names by region, preserving table order.
func (c *Catalog) LocationsByRegion() map[string][]string {
	out := map[string][]string{}
	for _, d := range c.locations {
		out[d.Region] = append(out[d.Region], d.Name)
	}
	return out
}

// DataPackage builds the name/ID tables the host distributes to clients.
// The checksum covers the ID maps only, so it changes exactly when the wire
// contract does.
func (c *Catalog) DataPackage() protocol.DataPackage {
	dp := protocol.DataPackage{
		Game:             protocol.Game,
		Version:          protocol.Version,
		ItemNameToID:     c.ItemNameToID(),
		LocationNameToID: c.LocationNameToID(),
		ItemNameGroups:   make(map[string][]string, len(c.groups)),
	}
	for name, members := range c.groups {
		dp.ItemNameGroups[name] = append([]string(nil), members...)
	}
	ids, _ := json.Marshal(struct {
		Items     map[string]int64 `json:"item_name_to_id"`
		Locations map[string]int64 `json:"location_name_to_id"`
	}{dp.ItemNameToID, dp.LocationNameToID})
	dp.Checksum = sha256Hex(ids)
	return dp
}
