package pymeta

import "fmt"

// frame is one rule activation: the name under which it was entered,
// the GrammarClass whose table the executing RuleNode came from (so
// <super> knows where to resume the search), the arguments it was
// called with, and the bindings established so far by Bind nodes in
// its body.
type frame struct {
	ruleName string
	owner    *GrammarClass
	args     []Value
	locals   map[string]Value
}

type memoKind int

const (
	memoInProgress memoKind = iota
	memoDone
)

// memoEntry is one slot of the packrat memo table, keyed by
// (ruleName, defining GrammarClass, position), so an overriding rule
// and the parent version it reaches through <super> hold separate
// slots. While a rule is being evaluated its slot is
// memoInProgress holding a failing seed; if evaluation re-enters the
// same slot (left recursion) detected flips true and the seed is
// grown by re-running the rule from the same position with the
// previous result memoized, until a re-run fails to advance further.
//
// Only zero-parameter rules are memoized: keying on (ruleName,
// position, args) would require args to be comparable, and most
// grammars pass non-comparable values (slices, nested patterns) as
// rule arguments. Parameterized rules re-evaluate on every call
// instead of risking a cache keyed on values that can't be compared.
type memoEntry struct {
	kind     memoKind
	detected bool
	seedFail Failure
	value    Value
	next     Input
	ok       bool
	fail     Failure
}

type memoKey struct {
	rule  string
	owner *GrammarClass
	pos   int
}

// Machine runs one parse against one GrammarClass. It is not safe for
// concurrent use; create a new Machine (via GrammarClass.New) per
// input.
type Machine struct {
	self         *GrammarClass
	memo         map[memoKey]*memoEntry
	frames       []*frame
	localsByRule map[string]map[string]Value
}

func newMachine(self *GrammarClass) *Machine {
	return &Machine{
		self:         self,
		memo:         make(map[memoKey]*memoEntry),
		localsByRule: make(map[string]map[string]Value),
	}
}

func (m *Machine) top() *frame { return m.frames[len(m.frames)-1] }

// Apply runs rule name against in with the given arguments, returning
// the matched value, the cursor advanced past what it consumed,
// whether it succeeded, and (on failure, or as a record of how far
// the match probed) a Failure.
func (m *Machine) Apply(name string, in Input, args ...Value) (Value, Input, bool, Failure) {
	return m.applyRule(name, args, in)
}

func (m *Machine) applyRule(name string, args []Value, in Input) (Value, Input, bool, Failure) {
	if rule, owner, found := m.self.lookupRule(name); found {
		return m.invokeRule(rule, owner, name, args, in)
	}
	if fn, ok := builtins[name]; ok {
		return fn(m, args, in)
	}
	return nil, in, false, NewFailure(in.Position(), ExpectedKindValue("rule", name))
}

func (m *Machine) invokeRule(rule *RuleNode, owner *GrammarClass, name string, args []Value, in Input) (Value, Input, bool, Failure) {
	if len(args) != len(rule.Params) {
		return nil, in, false, NewFailure(in.Position(), ExpectedKindValue("rule", fmt.Sprintf("%s/%d", name, len(args))))
	}
	runBody := func(startIn Input) (Value, Input, bool, Failure) {
		locals := make(map[string]Value, len(rule.Params))
		for i, p := range rule.Params {
			locals[p.Name] = args[i]
		}
		m.frames = append(m.frames, &frame{ruleName: name, owner: owner, args: args, locals: locals})
		v, next, ok, f := m.eval(rule.Body, startIn)
		m.frames = m.frames[:len(m.frames)-1]
		return v, next, ok, f
	}
	if len(rule.Params) > 0 {
		return runBody(in)
	}
	return m.applyMemo(name, owner, in, runBody)
}

// applyMemo implements packrat memoization with automatic
// left-recursion support via seed growing (Warth, Douglass & Millstein):
// the first evaluation installs a failing seed; if that evaluation
// recurses back into the same (rule, position) the recursive call
// reads the seed and fails immediately, letting the first (outermost)
// alternative that doesn't recurse establish an initial result. That
// result is then memoized and the whole rule body is re-run from the
// same start position, now able to use the memoized result for its
// own recursive reference; this repeats until a re-run fails to
// consume more input than the previous round.
func (m *Machine) applyMemo(name string, owner *GrammarClass, in Input, runBody func(Input) (Value, Input, bool, Failure)) (Value, Input, bool, Failure) {
	pos := in.Position()
	key := memoKey{name, owner, pos}
	if e, ok := m.memo[key]; ok {
		if e.kind == memoInProgress {
			e.detected = true
			return nil, in, false, e.seedFail
		}
		return e.value, e.next, e.ok, e.fail
	}
	seed := &memoEntry{kind: memoInProgress, seedFail: emptyFailure(pos)}
	m.memo[key] = seed
	val, next, ok, fail := runBody(in)
	if !seed.detected || !ok {
		m.memo[key] = &memoEntry{kind: memoDone, value: val, next: next, ok: ok, fail: fail}
		return val, next, ok, fail
	}
	for {
		m.memo[key] = &memoEntry{kind: memoDone, value: val, next: next, ok: ok, fail: fail}
		newVal, newNext, newOk, newFail := runBody(in)
		if !newOk || newNext.Position() <= next.Position() {
			break
		}
		val, next, ok, fail = newVal, newNext, newOk, newFail
	}
	m.memo[key] = &memoEntry{kind: memoDone, value: val, next: next, ok: ok, fail: fail}
	return val, next, ok, fail
}

// eval interprets one AST node against in, purely: it never mutates
// in, only returns a new cursor past whatever it consumed. Grammar
// rule bodies are interpreted directly from their AST on every call
// rather than compiled to closures first; Go's own type switch is
// already as fast as a dispatch table, so the extra indirection a
// closure-compilation pass would buy isn't worth the complexity here
// (see DESIGN.md).
func (m *Machine) eval(node AstNode, in Input) (Value, Input, bool, Failure) {
	switch n := node.(type) {
	case *LiteralNode:
		return m.evalLiteral(n, in)
	case *AnyNode:
		head, err := in.Head()
		if err != nil {
			return nil, in, false, NewFailure(in.Position(), Expected("anything"))
		}
		return head, in.Tail(), true, NoFailure
	case *RangeNode:
		return m.evalRange(n, in)
	case *ApplyNode:
		return m.evalApply(n, in)
	case *SeqNode:
		return m.evalSeq(n, in)
	case *OrNode:
		return m.evalOr(n, in)
	case *ManyNode:
		return m.evalMany(n.Expr, in, false)
	case *Many1Node:
		return m.evalMany(n.Expr, in, true)
	case *OptionalNode:
		v, next, ok, f := m.eval(n.Expr, in)
		if ok {
			return v, next, true, f
		}
		return nil, in, true, f
	case *NotNode:
		_, _, ok, _ := m.eval(n.Expr, in)
		if ok {
			return nil, in, false, NewFailure(in.Position(), Expected("negative lookahead to hold"))
		}
		return nil, in, true, NoFailure
	case *LookaheadNode:
		v, _, ok, f := m.eval(n.Expr, in)
		if ok {
			return v, in, true, NoFailure
		}
		return nil, in, false, f
	case *BindNode:
		v, next, ok, f := m.eval(n.Expr, in)
		if ok {
			fr := m.top()
			fr.locals[n.Name] = v
			byName, ok := m.localsByRule[fr.ruleName]
			if !ok {
				byName = make(map[string]Value)
				m.localsByRule[fr.ruleName] = byName
			}
			byName[n.Name] = v
		}
		return v, next, ok, f
	case *ArgPatternNode:
		head, err := in.Head()
		if err != nil || head != n.Value {
			return nil, in, false, NewFailure(in.Position(), ExpectedLiteral(literalString(n.Value)))
		}
		return head, in.Tail(), true, NoFailure
	case *HostExprNode:
		return m.evalHostExpr(n, in)
	case *ListPatternNode:
		return m.evalListPattern(n, in)
	case *SuperNode:
		return m.evalSuper(in)
	default:
		return nil, in, false, NewFailure(in.Position(), Expected("recognized pattern"))
	}
}

func (m *Machine) evalLiteral(n *LiteralNode, in Input) (Value, Input, bool, Failure) {
	head, err := in.Head()
	if err != nil || head != n.Value {
		return nil, in, false, NewFailure(in.Position(), ExpectedLiteral(fmt.Sprintf("%v", n.Value)))
	}
	return head, in.Tail(), true, NoFailure
}

func (m *Machine) evalRange(n *RangeNode, in Input) (Value, Input, bool, Failure) {
	head, err := in.Head()
	if err != nil {
		return nil, in, false, NewFailure(in.Position(), ExpectedKindValue("range", fmt.Sprintf("%c-%c", n.Lo, n.Hi)))
	}
	s, ok := head.(string)
	runes := []rune(s)
	if !ok || len(runes) != 1 || runes[0] < n.Lo || runes[0] > n.Hi {
		return nil, in, false, NewFailure(in.Position(), ExpectedKindValue("range", fmt.Sprintf("%c-%c", n.Lo, n.Hi)))
	}
	return head, in.Tail(), true, NoFailure
}

func (m *Machine) evalApply(n *ApplyNode, in Input) (Value, Input, bool, Failure) {
	args := make([]Value, len(n.Args))
	for i, a := range n.Args {
		he, ok := a.(*HostExprNode)
		if !ok {
			return nil, in, false, NewFailure(in.Position(), Expected("host expression argument"))
		}
		v, err := m.evalHost(he.Source)
		if err != nil {
			return nil, in, false, NewFailure(in.Position(), Expected("valid host expression"))
		}
		args[i] = v
	}
	return m.applyRule(n.RuleName, args, in)
}

func (m *Machine) evalSeq(n *SeqNode, in Input) (Value, Input, bool, Failure) {
	cur := in
	var value Value
	fail := NoFailure
	for _, item := range n.Items {
		v, next, ok, f := m.eval(item, cur)
		fail = Join(fail, f)
		if !ok {
			return nil, in, false, fail
		}
		value = v
		cur = next
	}
	return value, cur, true, fail
}

func (m *Machine) evalOr(n *OrNode, in Input) (Value, Input, bool, Failure) {
	fail := NoFailure
	for _, item := range n.Items {
		v, next, ok, f := m.eval(item, in)
		fail = Join(fail, f)
		if ok {
			return v, next, true, fail
		}
	}
	return nil, in, false, fail
}

func (m *Machine) evalMany(expr AstNode, in Input, atLeastOne bool) (Value, Input, bool, Failure) {
	var values []Value
	cur := in
	fail := NoFailure
	for {
		v, next, ok, f := m.eval(expr, cur)
		fail = Join(fail, f)
		if !ok {
			break
		}
		values = append(values, v)
		cur = next
	}
	if atLeastOne && len(values) == 0 {
		return nil, in, false, fail
	}
	return values, cur, true, fail
}

func (m *Machine) evalHostExpr(n *HostExprNode, in Input) (Value, Input, bool, Failure) {
	v, err := m.evalHost(n.Source)
	if err != nil {
		return nil, in, false, NewFailure(in.Position(), Expected("valid host expression"))
	}
	if n.Kind == HostPredicate {
		if truthy(v) {
			return v, in, true, NoFailure
		}
		return nil, in, false, NewFailure(in.Position(), Expected("predicate to hold"))
	}
	return v, in, true, NoFailure
}

// evalHost evaluates a host-language snippet in the current rule
// activation's scope. The globals it sees come from the GrammarClass
// that owns the currently executing rule, not from m.self (the leaf
// class the session was opened on): an inherited rule body must see
// the globals bound anywhere along its own defining class's ancestor
// chain, which is exactly what that owner's Globals already contains.
func (m *Machine) evalHost(src string) (Value, error) {
	if len(m.frames) > 0 {
		f := m.top()
		return m.self.Evaluator.Eval(src, Scope{Globals: f.owner.Globals, Locals: f.locals})
	}
	return m.self.Evaluator.Eval(src, Scope{Globals: m.self.Globals})
}

func (m *Machine) evalListPattern(n *ListPatternNode, in Input) (Value, Input, bool, Failure) {
	head, err := in.Head()
	if err != nil {
		return nil, in, false, NewFailure(in.Position(), Expected("list"))
	}
	items, ok := head.([]Value)
	if !ok {
		return nil, in, false, NewFailure(in.Position(), Expected("list"))
	}
	sub := NewListInput(items)
	v, subNext, ok, f := m.eval(n.Expr, sub)
	if !ok {
		return nil, in, false, f
	}
	if !subNext.AtEnd() {
		return nil, in, false, NewFailure(in.Position(), Expected("list pattern to consume the whole list"))
	}
	return v, in.Tail(), true, NoFailure
}

func (m *Machine) evalSuper(in Input) (Value, Input, bool, Failure) {
	f := m.top()
	if f.owner.Parent == nil {
		return nil, in, false, NewFailure(in.Position(), ExpectedKindValue("rule", "super of "+f.ruleName))
	}
	rule, owner, found := f.owner.Parent.lookupRule(f.ruleName)
	if !found {
		return nil, in, false, NewFailure(in.Position(), ExpectedKindValue("rule", "super of "+f.ruleName))
	}
	return m.invokeRule(rule, owner, f.ruleName, f.args, in)
}
