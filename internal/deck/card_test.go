package deck

import (
	"encoding/json"
	"testing"
)

func TestCardString(t *testing.T) {
	tests := []struct {
		card Card
		want string
	}{
		{NewCard(Spades, Ace), "A♠"},
		{NewCard(Hearts, Ten), "T♥"},
		{NewCard(Diamonds, Two), "2♦"},
		{NewCard(Clubs, King), "K♣"},
	}

	for _, tt := range tests {
		if got := tt.card.String(); got != tt.want {
			t.Errorf("Card.String() = %q, want %q", got, tt.want)
		}
	}
}

func TestCardIsRed(t *testing.T) {
	if !NewCard(Hearts, Five).IsRed() {
		t.Error("Hearts should be red")
	}
	if !NewCard(Diamonds, Five).IsRed() {
		t.Error("Diamonds should be red")
	}
	if NewCard(Spades, Five).IsRed() {
		t.Error("Spades should not be red")
	}
	if NewCard(Clubs, Five).IsRed() {
		t.Error("Clubs should not be red")
	}
}

func TestCardTextRoundTrip(t *testing.T) {
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			card := NewCard(suit, rank)

			data, err := json.Marshal(card)
			if err != nil {
				t.Fatalf("marshal %s: %v", card, err)
			}

			var got Card
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("unmarshal %s: %v", data, err)
			}

			if got != card {
				t.Errorf("round trip mismatch: %s became %s", card, got)
			}
		}
	}
}

func TestCardUnmarshalRejectsGarbage(t *testing.T) {
	cases := []string{`"Z♠"`, `"A"`, `"AX"`, `""`, `"AA♠"`}
	for _, tc := range cases {
		var c Card
		if err := json.Unmarshal([]byte(tc), &c); err == nil {
			t.Errorf("expected error unmarshalling %s", tc)
		}
	}
}
