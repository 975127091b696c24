package pymeta

// Builder is the interface the grammar parser uses to construct AST
// nodes. It is swappable: the default implementation (*AstBuilder)
// builds nodes as-is, and NullOptimizer rebuilds an existing tree
// through whichever Builder it is given. Every method takes the Span of the surface syntax it came
// from, for error reporting and pretty-printing.
type Builder interface {
	Literal(v Value, sp Span) AstNode
	Any(sp Span) AstNode
	Range(lo, hi rune, sp Span) AstNode
	Apply(rule string, args []AstNode, sp Span) AstNode
	Seq(items []AstNode, sp Span) AstNode
	Or(items []AstNode, sp Span) AstNode
	Many(e AstNode, sp Span) AstNode
	Many1(e AstNode, sp Span) AstNode
	Optional(e AstNode, sp Span) AstNode
	Not(e AstNode, sp Span) AstNode
	Lookahead(e AstNode, sp Span) AstNode
	Bind(name string, e AstNode, sp Span) AstNode
	ArgPattern(v Value, sp Span) AstNode
	Predicate(src string, sp Span) AstNode
	Action(src string, sp Span) AstNode
	RuleValue(src string, sp Span) AstNode
	ListPattern(e AstNode, sp Span) AstNode
	Super(sp Span) AstNode
	Rule(name string, params []Param, alternatives []AstNode, sp Span) *RuleNode
	Grammar(name, parent string, rules []*RuleNode, sp Span) *GrammarNode
}

// AstBuilder is the default Builder: a straightforward constructor
// for each AST form. Multiple alternatives passed to Rule are
// wrapped in a single OrNode (a single alternative is kept bare).
// Multiple definitions of the same rule name (`fact 0` / `fact :n`)
// are merged by Grammar, through mergeRulesByName, into one rule
// whose body is the ordered choice of their bodies.
type AstBuilder struct{}

func NewAstBuilder() *AstBuilder { return &AstBuilder{} }

func (AstBuilder) Literal(v Value, sp Span) AstNode        { return NewLiteralNode(v, sp) }
func (AstBuilder) Any(sp Span) AstNode                     { return NewAnyNode(sp) }
func (AstBuilder) Range(lo, hi rune, sp Span) AstNode       { return NewRangeNode(lo, hi, sp) }
func (AstBuilder) Apply(rule string, args []AstNode, sp Span) AstNode {
	return NewApplyNode(rule, args, sp)
}
func (AstBuilder) Seq(items []AstNode, sp Span) AstNode { return NewSeqNode(items, sp) }
func (AstBuilder) Or(items []AstNode, sp Span) AstNode  { return NewOrNode(items, sp) }
func (AstBuilder) Many(e AstNode, sp Span) AstNode      { return NewManyNode(e, sp) }
func (AstBuilder) Many1(e AstNode, sp Span) AstNode     { return NewMany1Node(e, sp) }
func (AstBuilder) Optional(e AstNode, sp Span) AstNode  { return NewOptionalNode(e, sp) }
func (AstBuilder) Not(e AstNode, sp Span) AstNode       { return NewNotNode(e, sp) }
func (AstBuilder) Lookahead(e AstNode, sp Span) AstNode { return NewLookaheadNode(e, sp) }
func (AstBuilder) Bind(name string, e AstNode, sp Span) AstNode {
	return NewBindNode(name, e, sp)
}
func (AstBuilder) ArgPattern(v Value, sp Span) AstNode { return NewArgPatternNode(v, sp) }
func (AstBuilder) Predicate(src string, sp Span) AstNode {
	return NewHostExprNode(HostPredicate, src, sp)
}
func (AstBuilder) Action(src string, sp Span) AstNode {
	return NewHostExprNode(HostAction, src, sp)
}
func (AstBuilder) RuleValue(src string, sp Span) AstNode {
	return NewHostExprNode(HostRuleValue, src, sp)
}
func (AstBuilder) ListPattern(e AstNode, sp Span) AstNode { return NewListPatternNode(e, sp) }
func (AstBuilder) Super(sp Span) AstNode                  { return NewSuperNode(sp) }

func (AstBuilder) Rule(name string, params []Param, alternatives []AstNode, sp Span) *RuleNode {
	body := AstNode(NewOrNode(alternatives, sp))
	if len(alternatives) == 1 {
		body = alternatives[0]
	}
	return NewRuleNode(name, params, body, sp)
}

func (AstBuilder) Grammar(name, parent string, rules []*RuleNode, sp Span) *GrammarNode {
	merged := mergeRulesByName(rules)
	return NewGrammarNode(name, parent, merged, sp)
}

// mergeRulesByName implements the "multiple definitions of a rule are
// merged" invariant: later definitions of an already-seen name append
// their body as another alternative of the existing rule, rather than
// creating a second RuleNode.
func mergeRulesByName(rules []*RuleNode) []*RuleNode {
	index := map[string]int{}
	out := make([]*RuleNode, 0, len(rules))
	for _, r := range rules {
		if i, ok := index[r.Name]; ok {
			existing := out[i]
			alts := orAlternatives(existing.Body)
			alts = append(alts, orAlternatives(r.Body)...)
			out[i] = NewRuleNode(existing.Name, existing.Params, NewOrNode(alts, existing.Span()), existing.Span())
			continue
		}
		index[r.Name] = len(out)
		out = append(out, r)
	}
	return out
}

func orAlternatives(body AstNode) []AstNode {
	if or, ok := body.(*OrNode); ok {
		return append([]AstNode(nil), or.Items...)
	}
	return []AstNode{body}
}
