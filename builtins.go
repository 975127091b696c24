package pymeta

import "unicode"

// builtinFunc is a native Go implementation of a rule the grammar
// parser and compiler never have to define: letter, digit, anything,
// spaces, end, and token are always available, the way the reference
// runtime wires a handful of primitives into every grammar's base
// rule set.
type builtinFunc func(m *Machine, args []Value, in Input) (Value, Input, bool, Failure)

var builtins = map[string]builtinFunc{
	"letter":   builtinLetter,
	"digit":    builtinDigit,
	"anything": builtinAnything,
	"spaces":   builtinSpaces,
	"end":      builtinEnd,
	"token":    builtinToken,
}

func oneChar(in Input) (rune, bool) {
	head, err := in.Head()
	if err != nil {
		return 0, false
	}
	s, ok := head.(string)
	if !ok {
		return 0, false
	}
	runes := []rune(s)
	if len(runes) != 1 {
		return 0, false
	}
	return runes[0], true
}

func builtinLetter(m *Machine, args []Value, in Input) (Value, Input, bool, Failure) {
	r, ok := oneChar(in)
	if !ok || !unicode.IsLetter(r) {
		return nil, in, false, NewFailure(in.Position(), Expected("letter"))
	}
	return string(r), in.Tail(), true, NoFailure
}

func builtinDigit(m *Machine, args []Value, in Input) (Value, Input, bool, Failure) {
	r, ok := oneChar(in)
	if !ok || !unicode.IsDigit(r) {
		return nil, in, false, NewFailure(in.Position(), Expected("digit"))
	}
	return string(r), in.Tail(), true, NoFailure
}

func builtinAnything(m *Machine, args []Value, in Input) (Value, Input, bool, Failure) {
	head, err := in.Head()
	if err != nil {
		return nil, in, false, NewFailure(in.Position(), Expected("anything"))
	}
	return head, in.Tail(), true, NoFailure
}

func builtinSpaces(m *Machine, args []Value, in Input) (Value, Input, bool, Failure) {
	cur := in
	var consumed []Value
	for {
		r, ok := oneChar(cur)
		if !ok || !unicode.IsSpace(r) {
			break
		}
		consumed = append(consumed, string(r))
		cur = cur.Tail()
	}
	return consumed, cur, true, NoFailure
}

func builtinEnd(m *Machine, args []Value, in Input) (Value, Input, bool, Failure) {
	if in.AtEnd() {
		return nil, in, true, NoFailure
	}
	return nil, in, false, NewFailure(in.Position(), Expected("end of input"))
}

// builtinToken skips leading whitespace and then matches its single
// string argument literally, one rune at a time, emitting
// expected("token", str) — naming the whole token rather than the
// individual character — at the furthest position actually reached.
func builtinToken(m *Machine, args []Value, in Input) (Value, Input, bool, Failure) {
	if len(args) != 1 {
		return nil, in, false, NewFailure(in.Position(), ExpectedKindValue("rule", "token/1"))
	}
	str, ok := args[0].(string)
	if !ok {
		return nil, in, false, NewFailure(in.Position(), ExpectedKindValue("rule", "token/1"))
	}
	_, cur, _, _ := builtinSpaces(m, nil, in)
	for _, want := range str {
		r, ok := oneChar(cur)
		if !ok || r != want {
			return nil, in, false, NewFailure(cur.Position(), ExpectedKindValue("token", str))
		}
		cur = cur.Tail()
	}
	return str, cur, true, NoFailure
}
