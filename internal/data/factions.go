// Package data holds the static game tables: factions, experience
// thresholds and starting templates.
package data

// Faction is one of the fixed allegiances. Ally/enemy lists drive combat
// modifiers and item eligibility.
type Faction struct {
	Name        string
	Description string
	Allies      []string
	Enemies     []string
}

// IsEnemy reports whether the other faction is on the enemy list.
func (f *Faction) IsEnemy(other string) bool {
	for _, e := range f.Enemies {
		if e == other {
			return true
		}
	}
	return false
}

// IsAlly reports whether the other faction is on the ally list.
func (f *Faction) IsAlly(other string) bool {
	for _, a := range f.Allies {
		if a == other {
			return true
		}
	}
	return false
}

var factions = map[string]*Faction{
	"Cruzados": {
		Name:        "Cruzados",
		Description: "Guerreros santos de la cristiandad, luchando por la fe y la conquista de Tierra Santa.",
		Enemies:     []string{"Sarracenos"},
	},
	"Sarracenos": {
		Name:        "Sarracenos",
		Description: "Defensores del Islam, protegiendo sus tierras sagradas de los invasores.",
		Enemies:     []string{"Cruzados"},
	},
	"Antiguos": {
		Name:        "Antiguos",
		Description: "Guardianes de antiguos secretos y conocimientos perdidos.",
	},
}

// GetFaction looks up a faction by name, nil if unknown.
func GetFaction(name string) *Faction {
	return factions[name]
}

// FactionNames returns the fixed faction list in presentation order.
func FactionNames() []string {
	return []string{"Cruzados", "Sarracenos", "Antiguos"}
}
