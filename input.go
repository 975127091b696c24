package pymeta

import "fmt"

// Value is anything that flows through a parse: an input item, a
// bound local, or the result of a rule application. OMeta grammars
// are dynamically typed, so Go's empty interface stands in for the
// reference implementation's Python objects.
type Value = any

// Input is an immutable, positional view over a sequence of items.
// Items are usually single-character strings (see NewStringInput),
// but NewListInput accepts any sequence, including nested sequences,
// which is what list-pattern matching descends into.
//
// Input is a value type: advancing never mutates the receiver, it
// returns a new cursor. Backtracking is just keeping the old one
// around.
type Input struct {
	items []Value
	pos   int
}

// NewListInput wraps an arbitrary item sequence.
func NewListInput(items []Value) Input {
	return Input{items: items}
}

// NewStringInput splits s into one-item-per-rune, matching the
// reference implementation's treatment of strings as sequences of
// one-character strings.
func NewStringInput(s string) Input {
	runes := []rune(s)
	items := make([]Value, len(runes))
	for i, r := range runes {
		items[i] = string(r)
	}
	return Input{items: items}
}

// Head returns the item under the cursor, or ErrEndOfInput if the
// cursor is at or past the end of the sequence.
func (in Input) Head() (Value, error) {
	if in.pos >= len(in.items) {
		return nil, ErrEndOfInput
	}
	return in.items[in.pos], nil
}

// Tail returns a cursor advanced by one position.
func (in Input) Tail() Input {
	return Input{items: in.items, pos: in.pos + 1}
}

// Position is the 0-based index of the item under the cursor.
func (in Input) Position() int { return in.pos }

// AtEnd reports whether the cursor has no more items to read.
func (in Input) AtEnd() bool { return in.pos >= len(in.items) }

// Len is the number of items in the underlying sequence (not the
// number remaining).
func (in Input) Len() int { return len(in.items) }

// Slice returns the items from the cursor's position to end,
// exclusive, as a plain slice. Nothing in the package calls it; list
// patterns build their sub-cursor with NewListInput instead.
func (in Input) Slice(end int) []Value {
	if end > len(in.items) {
		end = len(in.items)
	}
	if in.pos > end {
		return nil
	}
	return in.items[in.pos:end]
}

func (in Input) String() string {
	return fmt.Sprintf("Input{pos=%d, len=%d}", in.pos, len(in.items))
}
