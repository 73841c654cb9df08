package game

import (
	"encoding/json"
	"testing"
)

func TestPhaseString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		phase Phase
		want  string
	}{
		{Waiting, "waiting"},
		{PreFlop, "preflop"},
		{Flop, "flop"},
		{Turn, "turn"},
		{River, "river"},
		{Showdown, "showdown"},
		{Phase(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", tt.phase, got, tt.want)
		}
	}
}

func TestPhaseTextRoundTrip(t *testing.T) {
	t.Parallel()

	for p := Waiting; p <= Showdown; p++ {
		data, err := p.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%s): %v", p, err)
		}
		var back Phase
		if err := back.UnmarshalText(data); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", data, err)
		}
		if back != p {
			t.Errorf("round trip %s became %s", p, back)
		}
	}

	var p Phase
	if err := p.UnmarshalText([]byte("intermission")); err == nil {
		t.Error("expected error for unknown phase name")
	}
}

func TestParseAction(t *testing.T) {
	t.Parallel()

	for a := Fold; a <= Raise; a++ {
		got, err := ParseAction(a.String())
		if err != nil {
			t.Fatalf("ParseAction(%q): %v", a.String(), err)
		}
		if got != a {
			t.Errorf("ParseAction(%q) = %s", a.String(), got)
		}
	}

	if _, err := ParseAction("shove"); err == nil {
		t.Error("expected error for unknown action name")
	}
}

func TestStateJSONRoundTrip(t *testing.T) {
	t.Parallel()

	st := startedHand(t, 3)

	data, err := json.Marshal(st)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var back State
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if back.Phase != st.Phase || back.Pot != st.Pot || back.CurrentBet != st.CurrentBet {
		t.Errorf("table fields diverged: %s/%d/%d", back.Phase, back.Pot, back.CurrentBet)
	}
	if len(back.Seats) != len(st.Seats) {
		t.Fatalf("seat count %d, want %d", len(back.Seats), len(st.Seats))
	}
	for i := range st.Seats {
		if back.Seats[i].Stack != st.Seats[i].Stack {
			t.Errorf("seat %d stack %d, want %d", i, back.Seats[i].Stack, st.Seats[i].Stack)
		}
		if len(back.Seats[i].HoleCards) != 2 {
			t.Errorf("seat %d hole cards lost in round trip", i)
		}
	}
	if len(back.Deck) != len(st.Deck) {
		t.Errorf("deck remainder %d cards, want %d", len(back.Deck), len(st.Deck))
	}
}

func TestCloneIsIndependent(t *testing.T) {
	t.Parallel()

	st := startedHand(t, 2)
	dup := st.clone()

	dup.Seats[0].Stack = 0
	dup.Seats[0].HoleCards[0] = dup.Deck[0]
	dup.Deck[0] = dup.Deck[1]
	dup.Pot = 999

	if st.Seats[0].Stack == 0 {
		t.Error("clone shares seat backing array")
	}
	if st.Seats[0].HoleCards[0] == dup.Seats[0].HoleCards[0] && st.Deck[0] == dup.Deck[0] {
		t.Error("clone shares card slices")
	}
	if st.Pot == 999 {
		t.Error("clone shares scalar fields")
	}
}
