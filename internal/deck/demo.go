package deck

import "fmt"

// DemoDeck builds a complete, legal starter deck under the given id.
// Used by the static store when the server runs without postgres, and
// by tests.
func DemoDeck(id string) *Deck {
	d := &Deck{
		ID:     id,
		Legion: "Emberfall",
		Cards: []Card{
			{Name: "Emberfall Warlord", Code: "EMB-001", Type: "Warlord"},
			{Name: "Warden of the Gate", Code: "EMB-002", Type: "Guardian", Effects: []string{"guardiansBlessing"}},
			{Name: "The Smouldering Veil", Code: "EMB-003", Type: "VeilRealm", Cooldown: 3, Effects: []string{"veilSurge"}},
			{Name: "Bond of Cinders", Code: "EMB-004", Type: "Synergy"},
		},
	}
	for i := 0; i < 10; i++ {
		d.Cards = append(d.Cards, Card{
			Name: fmt.Sprintf("Ashblade Recruit %d", i+1),
			Code: fmt.Sprintf("EMB-1%02d", i+1),
			Type: "Warrior",
		})
	}
	for i := 0; i < 5; i++ {
		d.Cards = append(d.Cards, Card{
			Name:    fmt.Sprintf("Cinder Vanguard %d", i+1),
			Code:    fmt.Sprintf("EMB-2%02d", i+1),
			Type:    "Warrior",
			Effects: []string{"rallyCry"},
		})
	}
	for i := 0; i < 8; i++ {
		d.Cards = append(d.Cards, Card{
			Name: fmt.Sprintf("Unified Front %d", i+1),
			Code: fmt.Sprintf("EMB-3%02d", i+1),
			Type: "Unified",
		})
	}
	for i := 0; i < 7; i++ {
		d.Cards = append(d.Cards, Card{
			Name: fmt.Sprintf("Bulwark of Ash %d", i+1),
			Code: fmt.Sprintf("EMB-4%02d", i+1),
			Type: "Fortified",
		})
	}
	return d
}
