package pymeta

// MakeGrammarFromSource parses source with the default surface syntax
// and compiles it into a standalone GrammarClass, the one call most
// callers need: ParseGrammar followed by MakeGrammar.
func MakeGrammarFromSource(name, source string, globals map[string]Value) (*GrammarClass, error) {
	ast, err := ParseGrammar(name, source, NewAstBuilder())
	if err != nil {
		return nil, err
	}
	return MakeGrammar(ast, globals)
}

// MakeSubclassFromSource parses source and compiles it as a subclass
// of parent, the source-text equivalent of (*GrammarClass).MakeGrammar.
func MakeSubclassFromSource(parent *GrammarClass, name, source string, globals map[string]Value) (*GrammarClass, error) {
	ast, err := ParseGrammar(name, source, NewAstBuilder())
	if err != nil {
		return nil, err
	}
	return parent.MakeGrammar(ast, globals)
}

// Match compiles a one-shot grammar from source and parses input
// against rule, requiring the whole input be consumed. It exists for
// the common case of grammars used once rather than instantiated
// repeatedly; callers that reuse a grammar across many inputs should
// call MakeGrammarFromSource once and then GrammarClass.New per input.
func Match(grammarSource, rule, input string, globals map[string]Value) (Value, error) {
	gc, err := MakeGrammarFromSource("Anonymous", grammarSource, globals)
	if err != nil {
		return nil, err
	}
	g := gc.New(NewStringInput(input))
	return g.Parse(rule, input)
}

// OptimizeGrammar runs the null tree-to-tree rewrite over ast using b
// to reconstruct nodes, returning a structurally-equal GrammarNode.
func OptimizeGrammar(ast *GrammarNode, b Builder) (*GrammarNode, error) {
	out, err := NewNullOptimizer(b).Optimize(ast)
	if err != nil {
		return nil, err
	}
	return out.(*GrammarNode), nil
}
