package models

import "testing"

func TestAccumulatorCountsNeverDecrease(t *testing.T) {
	acc := NewAccumulator()
	var prev PositionCounts

	moves := []Appearance{
		{"Alpha", "Berg, Bo", 1},
		{"Alpha", "Berg, Bo", 2},
		{"Alpha", "Berg, Bo", 1},
		{"Alpha", "Berg, Bo", 9},
		{"Alpha", "Berg, Bo", 4},
	}
	for _, m := range moves {
		acc.Add(m.Team, m.Player, m.Position)
		cur := acc.Counts("Alpha", "Berg, Bo")
		for i := range cur {
			if cur[i] < prev[i] {
				t.Fatalf("position %d decreased from %d to %d", i+1, prev[i], cur[i])
			}
		}
		prev = cur
	}

	want := PositionCounts{2, 1, 0, 1}
	if prev != want {
		t.Errorf("got %v, want %v", prev, want)
	}
}

func TestAccumulatorRejectsOutOfRangePositions(t *testing.T) {
	acc := NewAccumulator()
	if acc.Add("Alpha", "X, Y", 0) || acc.Add("Alpha", "X, Y", 5) {
		t.Error("out of range position accepted")
	}
	if acc.Len() != 0 {
		t.Errorf("got %d pairs, want 0", acc.Len())
	}
}

func TestAccumulatorRowsKeepFirstSeenOrder(t *testing.T) {
	acc := NewAccumulator()
	acc.AddAll([]Appearance{
		{"Beta", "B, One", 1},
		{"Alpha", "A, One", 1},
		{"Beta", "B, Two", 2},
		{"Alpha", "A, One", 3},
		// same name in another team is a separate row
		{"Alpha", "B, One", 4},
	})

	rows := acc.Rows()
	want := []PlayerRow{
		{Team: "Beta", Player: "B, One", Positions: PositionCounts{1, 0, 0, 0}},
		{Team: "Beta", Player: "B, Two", Positions: PositionCounts{0, 1, 0, 0}},
		{Team: "Alpha", Player: "A, One", Positions: PositionCounts{1, 0, 1, 0}},
		{Team: "Alpha", Player: "B, One", Positions: PositionCounts{0, 0, 0, 1}},
	}
	if len(rows) != len(want) {
		t.Fatalf("got %d rows, want %d", len(rows), len(want))
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("row %d: got %+v, want %+v", i, rows[i], want[i])
		}
	}
}
