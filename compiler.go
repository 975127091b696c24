package pymeta

import "fmt"

// GrammarClass is a compiled, invokable grammar: a rule table plus an
// optional parent to inherit from and the globals its host
// expressions see. It plays the role the reference implementation
// gives to a generated Python class — MakeGrammar is its constructor,
// and a second call to (*GrammarClass).MakeGrammar on an existing
// class is how grammars subclass one another and override rules.
type GrammarClass struct {
	Name      string
	ast       *GrammarNode
	rules     map[string]*RuleNode
	Parent    *GrammarClass
	Globals   map[string]Value
	Evaluator HostExprEvaluator
}

// MakeGrammar compiles source (already parsed into ast) into a
// standalone GrammarClass with no parent. globals is copied so later
// mutation by the caller doesn't leak into the grammar.
func MakeGrammar(ast *GrammarNode, globals map[string]Value) (*GrammarClass, error) {
	return newGrammarClass(ast, nil, globals)
}

// MakeGrammar compiles ast as a subclass of gc: rules ast defines
// override gc's same-named rules, and rules it doesn't define are
// inherited. A rule body may use <super> to reach gc's version of the
// rule currently executing.
func (gc *GrammarClass) MakeGrammar(ast *GrammarNode, globals map[string]Value) (*GrammarClass, error) {
	return newGrammarClass(ast, gc, globals)
}

func newGrammarClass(ast *GrammarNode, parent *GrammarClass, globals map[string]Value) (*GrammarClass, error) {
	if ast.ParentName != "" && parent == nil {
		return nil, fmt.Errorf("pymeta: grammar %q declares parent %q but none was supplied", ast.Name, ast.ParentName)
	}
	if parent != nil && ast.ParentName != "" && ast.ParentName != parent.Name {
		return nil, fmt.Errorf("pymeta: grammar %q declares parent %q, got %q", ast.Name, ast.ParentName, parent.Name)
	}
	rules := make(map[string]*RuleNode, len(ast.Rules))
	for _, r := range ast.Rules {
		rules[r.Name] = r
	}
	merged := map[string]Value{}
	if parent != nil {
		for k, v := range parent.Globals {
			merged[k] = v
		}
	}
	for k, v := range globals {
		merged[k] = v
	}
	return &GrammarClass{
		Name:      ast.Name,
		ast:       ast,
		rules:     rules,
		Parent:    parent,
		Globals:   merged,
		Evaluator: DefaultEvaluator{},
	}, nil
}

// lookupRule finds name in gc's own table, falling back to ancestors.
// It returns the GrammarClass whose table actually held the
// definition, which a <super> inside that definition's body uses to
// resume the search one level further up.
func (gc *GrammarClass) lookupRule(name string) (*RuleNode, *GrammarClass, bool) {
	if r, ok := gc.rules[name]; ok {
		return r, gc, true
	}
	if gc.Parent != nil {
		return gc.Parent.lookupRule(name)
	}
	return nil, nil, false
}

// New binds this grammar to input, starting a parse session: a
// GrammarClass plus a Machine plus the cursor Apply advances. A
// session owns its memo table exclusively and must not be reused
// across unrelated inputs.
func (gc *GrammarClass) New(input Input) *Grammar {
	return &Grammar{class: gc, machine: newMachine(gc), cur: input}
}

// Grammar is one parse session bound to one input. Apply runs a rule
// from the session's current cursor and advances it on success;
// Locals exposes, per rule, the most recent value bound to each name
// during the session.
type Grammar struct {
	class   *GrammarClass
	machine *Machine
	cur     Input
}

// Apply runs rule from the session's current position, advancing it
// on success. It returns the matched value, whether the rule matched,
// and the furthest Failure reported while producing it, successful or
// not. A successful Not, Lookahead or ListPattern reports NoFailure
// and drops the failures of the expression it ran, so those do not
// reach the returned Failure. This mirrors the reference
// apply(ruleName, args) → (value, failure).
func (g *Grammar) Apply(rule string, args ...Value) (Value, bool, Failure) {
	v, next, ok, fail := g.machine.Apply(rule, g.cur, args...)
	if ok {
		g.cur = next
	}
	return v, ok, fail
}

// AtEnd reports whether the session's cursor has reached the end of
// its input.
func (g *Grammar) AtEnd() bool { return g.cur.AtEnd() }

// Locals is the session's full binding history: for every rule that
// has ever bound a name during this session, the most recently bound
// value for each name. Unlike a rule activation's own scope this
// survives after Apply returns, so assertions like
// locals["foo"]["x"] == "1" hold after a successful top-level parse.
func (g *Grammar) Locals() map[string]map[string]Value {
	return g.machine.localsByRule
}

// Parse runs rule against the session's entire input: Apply followed
// by a check that the cursor reached the end, folding either a
// parse failure or unconsumed trailing input into a *ParseError
// located against originalInput.
func (g *Grammar) Parse(rule string, originalInput string, args ...Value) (Value, error) {
	v, ok, fail := g.Apply(rule, args...)
	if !ok {
		return nil, newParseError(fail, []rune(originalInput))
	}
	if !g.AtEnd() {
		if len(fail.Expectations) == 0 {
			fail = NewFailure(g.cur.Position(), Expected("end of input"))
		}
		return nil, newParseError(fail, []rune(originalInput))
	}
	return v, nil
}
