// Package game implements the betting-round state machine for Texas Hold'em.
//
// The main type is State, a plain value describing one table: seats, stacks,
// board, pot, phase and turn pointer. Every operation is a pure function that
// takes a State and returns the next State or an error:
//
//	st := game.New(game.DefaultStakes())
//	st, _ = game.Join(st, "p1", "Alice")
//	st, _ = game.Join(st, "p2", "Bob")
//	st, _ = game.StartHand(st, rng)
//	st, _ = game.Act(st, seatID, game.Call, 0)
//	if st.StreetResolved {
//	    st, _ = game.AdvanceStreet(st)
//	}
//
// A rejected operation never mutates state: validation happens before any
// chip movement, and the input State is cloned before changes are applied.
//
// The package performs no I/O and holds no shared fields. Serializing
// concurrent mutations of the same table is the caller's job (see the room
// package); a State value can be snapshotted, stored and restored freely.
//
// # Deterministic Testing
//
// StartHand takes an explicit *rand.Rand for the shuffle:
//
//	rng := randutil.New(42) // Fixed seed
//	st, err := game.StartHand(st, rng)
//
// # Scope
//
// The machine runs Waiting → PreFlop → Flop → Turn → River → Showdown, with
// an early jump to Showdown when a fold leaves one live seat. Showdown is
// terminal: no hand evaluation or payout happens here. There is no all-in
// or side-pot handling, so blind and call deductions are not clamped to
// the stack.
package game
