package mapcolor

import "sort"

// Adjacency for a few classic coloring instances. Borders are listed
// symmetrically: every crossing appears in both regions' neighbor
// lists, and every neighbor is itself a region of the atlas.
var atlases = map[string]map[string][]string{
	"australia": {
		"WA":  {"NT", "SA"},
		"NT":  {"WA", "SA", "Q"},
		"SA":  {"WA", "NT", "Q", "NSW", "V"},
		"Q":   {"NT", "SA", "NSW"},
		"NSW": {"SA", "Q", "V"},
		"V":   {"SA", "NSW"},
		"T":   {},
	},
	"south-america": {
		"argentina":     {"bolivia", "brazil", "chile", "paraguay", "uruguay"},
		"bolivia":       {"argentina", "brazil", "chile", "paraguay", "peru"},
		"brazil":        {"argentina", "bolivia", "colombia", "french-guiana", "guyana", "paraguay", "peru", "suriname", "uruguay", "venezuela"},
		"chile":         {"argentina", "bolivia", "peru"},
		"colombia":      {"brazil", "ecuador", "peru", "venezuela"},
		"ecuador":       {"colombia", "peru"},
		"french-guiana": {"brazil", "suriname"},
		"guyana":        {"brazil", "suriname", "venezuela"},
		"paraguay":      {"argentina", "bolivia", "brazil"},
		"peru":          {"bolivia", "brazil", "chile", "colombia", "ecuador"},
		"suriname":      {"brazil", "french-guiana", "guyana"},
		"uruguay":       {"argentina", "brazil"},
		"venezuela":     {"brazil", "colombia", "guyana"},
	},
	"europe-west": {
		"portugal":    {"spain"},
		"spain":       {"portugal", "france"},
		"france":      {"spain", "belgium", "luxembourg", "germany", "switzerland", "italy"},
		"belgium":     {"france", "netherlands", "luxembourg", "germany"},
		"netherlands": {"belgium", "germany"},
		"luxembourg":  {"france", "belgium", "germany"},
		"germany":     {"france", "belgium", "netherlands", "luxembourg", "switzerland", "austria"},
		"switzerland": {"france", "germany", "italy", "austria"},
		"italy":       {"france", "switzerland", "austria"},
		"austria":     {"germany", "switzerland", "italy"},
	},
}

// AtlasNames returns the known atlas names, sorted.
func AtlasNames() []string {
	names := make([]string, 0, len(atlases))
	for name := range atlases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Borders returns the adjacency of a named atlas.
func Borders(name string) (map[string][]string, bool) {
	borders, ok := atlases[name]
	return borders, ok
}
