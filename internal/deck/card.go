package deck

import "fmt"

// Suit represents a card suit
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the string representation of a rank
func (r Rank) String() string {
	switch r {
	case Two:
		return "2"
	case Three:
		return "3"
	case Four:
		return "4"
	case Five:
		return "5"
	case Six:
		return "6"
	case Seven:
		return "7"
	case Eight:
		return "8"
	case Nine:
		return "9"
	case Ten:
		return "T"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		return "?"
	}
}

// Card represents a playing card
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns the string representation of a card (e.g., "A♠")
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// MarshalText encodes the card in its compact display form, e.g. "A♠".
// Cards cross the wire and the session store in this form.
func (c Card) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText parses the compact display form produced by MarshalText.
func (c *Card) UnmarshalText(text []byte) error {
	runes := []rune(string(text))
	if len(runes) != 2 {
		return fmt.Errorf("invalid card %q", string(text))
	}

	rank, ok := rankFromString(string(runes[0]))
	if !ok {
		return fmt.Errorf("invalid card rank %q", string(runes[0]))
	}

	suit, ok := suitFromString(string(runes[1]))
	if !ok {
		return fmt.Errorf("invalid card suit %q", string(runes[1]))
	}

	c.Rank = rank
	c.Suit = suit
	return nil
}

func rankFromString(s string) (Rank, bool) {
	for r := Two; r <= Ace; r++ {
		if r.String() == s {
			return r, true
		}
	}
	return 0, false
}

func suitFromString(s string) (Suit, bool) {
	for su := Spades; su <= Clubs; su++ {
		if su.String() == s {
			return su, true
		}
	}
	return 0, false
}
