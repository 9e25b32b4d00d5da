package model

// Factory functions for the named legendaries. Each call mints a fresh
// instance; the "one per server" rule is the host's to enforce via the
// Unique flag and CurrentOwner.

// NewEspadaDelJuicioFinal creates the Crusader legendary sword.
func NewEspadaDelJuicioFinal() *LegendaryItem {
	sword := NewLegendaryItem(
		"Espada del Juicio Final",
		"La espada sagrada que decidirá el destino de Tierra Santa.",
		SlotWeapon, LegendaryWeapon, "Cruzados",
	)
	sword.AddStatBonus(StatStrength, 15)
	sword.AddStatBonus(StatTechnique, 10)
	sword.AddStatBonus(StatDefense, 8)
	sword.AddStatBonus(StatIntelligence, 5)
	sword.PurifiedBonuses = BonusMap{StatStrength: 5, StatIntelligence: 10}
	sword.StealDifficulty = 0.9
	sword.Abilities = []Ability{
		{Name: "Juicio Divino", Description: "Deals massive holy damage to enemies", Power: 200, Cooldown: 45},
		{Name: "Luz Purificadora", Description: "Heals allies and damages undead", Power: 150, Cooldown: 30},
	}
	return sword
}

// NewCimitarraDeLosVientos creates the Saracen legendary scimitar.
func NewCimitarraDeLosVientos() *LegendaryItem {
	scimitar := NewLegendaryItem(
		"Cimitarra de los Cuatro Vientos",
		"Una hoja curvada que susurra los secretos del desierto.",
		SlotWeapon, LegendaryWeapon, "Sarracenos",
	)
	scimitar.AddStatBonus(StatSpeed, 12)
	scimitar.AddStatBonus(StatAgility, 12)
	scimitar.AddStatBonus(StatTechnique, 10)
	scimitar.AddStatBonus(StatDexterity, 8)
	scimitar.PurifiedBonuses = BonusMap{StatSpeed: 8, StatAgility: 8}
	scimitar.StealDifficulty = 0.85
	scimitar.Abilities = []Ability{
		{Name: "Tormenta de Arena", Description: "Creates a sandstorm that blinds enemies", Power: 180, Cooldown: 40},
		{Name: "Viento del Desierto", Description: "Increases movement and attack speed", Power: 100, Cooldown: 25},
	}
	return scimitar
}

// NewGuadanaDelOlvido creates the Ancients' legendary scythe.
func NewGuadanaDelOlvido() *LegendaryItem {
	scythe := NewLegendaryItem(
		"Guadaña del Olvido",
		"Un arma ancestral que corta no solo la carne, sino también los recuerdos.",
		SlotWeapon, LegendaryWeapon, "Antiguos",
	)
	scythe.AddStatBonus(StatIntelligence, 20)
	scythe.AddStatBonus(StatTechnique, 8)
	scythe.AddStatBonus(StatEndurance, 8)
	scythe.AddStatBonus(StatDefense, 6)
	scythe.PurifiedBonuses = BonusMap{StatIntelligence: 10, StatEndurance: 5}
	scythe.StealDifficulty = 0.95
	scythe.Abilities = []Ability{
		{Name: "Olvido Eterno", Description: "Drains enemy memories and mana", Power: 220, Cooldown: 50},
		{Name: "Sabiduría Ancestral", Description: "Reveals enemy weaknesses", Power: 80, Cooldown: 20},
	}
	return scythe
}

// NewCalizDeLaVida creates the server-wide chalice artifact.
func NewCalizDeLaVida() *LegendaryItem {
	chalice := NewLegendaryItem(
		"Cáliz de la Vida Eterna",
		"El Santo Grial perdido, capaz de otorgar vida eterna a quien beba de él.",
		SlotNecklace, LegendaryArtifact, "",
	)
	chalice.AddStatBonus(StatEndurance, 25)
	chalice.AddStatBonus(StatIntelligence, 15)
	chalice.Purifiable = false // already pure
	chalice.StealDifficulty = 0.99
	return chalice
}

// NewEspejoDelDestino creates the prophetic mirror artifact.
func NewEspejoDelDestino() *LegendaryItem {
	mirror := NewLegendaryItem(
		"Espejo del Destino",
		"Un espejo ancestral que muestra no el reflejo físico, sino el destino del alma.",
		SlotRing1, LegendaryArtifact, "",
	)
	mirror.AddStatBonus(StatIntelligence, 20)
	mirror.AddStatBonus(StatAgility, 15)
	mirror.AddStatBonus(StatTechnique, 10)
	mirror.Purifiable = false
	mirror.StealDifficulty = 0.98
	return mirror
}

// NewMascaraDeLaMuerte creates the necromantic mask artifact.
func NewMascaraDeLaMuerte() *LegendaryItem {
	mask := NewLegendaryItem(
		"Máscara de la Muerte Silenciosa",
		"Una máscara que otorga poder sobre los muertos y los moribundos.",
		SlotHelmet, LegendaryArtifact, "",
	)
	mask.AddStatBonus(StatIntelligence, 18)
	mask.AddStatBonus(StatEndurance, 12)
	mask.AddStatBonus(StatDefense, 10)
	mask.Purifiable = false // dark artifact
	mask.StealDifficulty = 0.97
	return mask
}

// FactionLegendaries returns fresh instances of the legendaries tied to a
// faction. Unknown factions get an empty list.
func FactionLegendaries(faction string) []*LegendaryItem {
	switch faction {
	case "Cruzados":
		return []*LegendaryItem{NewEspadaDelJuicioFinal()}
	case "Sarracenos":
		return []*LegendaryItem{NewCimitarraDeLosVientos()}
	case "Antiguos":
		return []*LegendaryItem{NewGuadanaDelOlvido()}
	default:
		return nil
	}
}

// UniqueArtifacts returns fresh instances of the factionless artifacts.
func UniqueArtifacts() []*LegendaryItem {
	return []*LegendaryItem{
		NewCalizDeLaVida(),
		NewEspejoDelDestino(),
		NewMascaraDeLaMuerte(),
	}
}
