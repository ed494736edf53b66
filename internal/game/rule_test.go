package game

import "testing"

func TestComboCount(t *testing.T) {
	tests := []struct {
		name     string
		explored []Card
		want     int
	}{
		{"empty", nil, 0},
		{"one", []Card{Sun(Red)}, 1},
		{"two", []Card{Sun(Red), Moon(Red)}, 2},
		{"three wraps", []Card{Sun(Red), Moon(Red), Sun(Red)}, 0},
		{"four", []Card{Sun(Red), Moon(Red), Sun(Red), Moon(Red)}, 1},
		{"color break", []Card{Sun(Red), Moon(Red), Sun(Blue)}, 1},
		{"suffix only", []Card{Sun(Blue), Moon(Blue), Sun(Red), Moon(Red)}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComboCount(tt.explored); got != tt.want {
				t.Errorf("ComboCount(%v) = %d, want %d", tt.explored, got, tt.want)
			}
		})
	}
}

func TestCanObtainDoor(t *testing.T) {
	two := []Card{Sun(Red), Moon(Red)}
	tests := []struct {
		name     string
		explored []Card
		card     Card
		want     bool
	}{
		{"completes combo", two, Sun(Red), true},
		{"key completes combo", two, Key(Red), true},
		{"same kind as top", two, Moon(Red), false},
		{"wrong color", two, Sun(Blue), false},
		{"empty line", nil, Sun(Red), false},
		{"one card run", []Card{Sun(Red)}, Moon(Red), false},
		{"run already claimed", []Card{Sun(Red), Moon(Red), Sun(Red)}, Moon(Red), false},
		{"fifth of a run", []Card{Sun(Red), Moon(Red), Sun(Red), Moon(Red), Sun(Red)}, Moon(Red), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanObtainDoor(tt.explored, tt.card.Color, tt.card.Kind); got != tt.want {
				t.Errorf("CanObtainDoor(%v, %v) = %v, want %v", tt.explored, tt.card, got, tt.want)
			}
		})
	}
}

func TestMayOpenDoor(t *testing.T) {
	hand := []Card{Sun(Red), Key(Blue), Moon(Green)}
	if !MayOpenDoor(hand, Blue) {
		t.Error("blue key should open a blue door")
	}
	if MayOpenDoor(hand, Red) {
		t.Error("a red sun is not a key")
	}
	if MayOpenDoor(nil, Red) {
		t.Error("empty hand opens nothing")
	}
}

func TestClaimDoor(t *testing.T) {
	c := &Content{
		Undrawn: []Card{Sun(Red), Door(Blue), Door(Red), Door(Red)},
		Opened:  []Card{Door(Green), Door(Green), Door(Yellow), Door(Yellow), Door(Blue), Door(Blue)},
	}
	claimed, won := ClaimDoor(c, Red)
	if !claimed || won {
		t.Fatalf("first claim = (%v, %v), want (true, false)", claimed, won)
	}
	claimed, won = ClaimDoor(c, Red)
	if !claimed || !won {
		t.Fatalf("second claim = (%v, %v), want (true, true)", claimed, won)
	}
	claimed, _ = ClaimDoor(c, Red)
	if claimed {
		t.Error("no red door left, claim must be a no-op")
	}
	if len(c.Undrawn) != 2 || c.Total() != 10 {
		t.Errorf("undrawn = %v, total = %d", c.Undrawn, c.Total())
	}
}

func TestDoorDiscarded(t *testing.T) {
	c := &Content{Discarded: []Card{Sun(Red), Key(Blue)}, Limbo: []Card{Door(Red)}}
	if DoorDiscarded(c) {
		t.Error("a door in limbo is not discarded")
	}
	c.Discarded = append(c.Discarded, Door(Red))
	if !DoorDiscarded(c) {
		t.Error("expected discarded door to be detected")
	}
}

func TestKindRepeats(t *testing.T) {
	if KindRepeats(nil, Sun(Red)) {
		t.Error("anything may start the line")
	}
	if !KindRepeats([]Card{Key(Red)}, Key(Blue)) {
		t.Error("key on key must repeat regardless of color")
	}
	if KindRepeats([]Card{Sun(Red)}, Moon(Red)) {
		t.Error("moon on sun is allowed")
	}
}
