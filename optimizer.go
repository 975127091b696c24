package pymeta

// NullOptimizer is a tree-to-tree rewrite pass: it walks a grammar
// AST and rebuilds an identical one through a Builder. It exists as
// the template for future optimization passes (e.g. folding adjacent
// literals into a token), not because the identity rewrite itself is
// useful.
//
// One well-known implementation of this idea compiles the null
// optimizer as a grammar in its own right, applying it to a
// one-element input stream holding the AST and using list-pattern
// matching to destructure it. That self-application is cute but adds
// nothing observable — the contract is exactly optimize(t) ≡ t for
// all valid t — so this version implements it as a direct
// AstNodeVisitor rebuild instead; see DESIGN.md for the rationale.
// The Builder-swapping seam it's meant to demonstrate is preserved:
// Optimize takes a Builder and uses it for every reconstructed node,
// so a rewriting optimizer can reuse this file's shape by overriding
// individual Visit methods.
type NullOptimizer struct {
	builder Builder
	result  AstNode
}

// NewNullOptimizer builds an optimizer that reconstructs nodes
// through b. Pass NewAstBuilder() for a pure identity pass.
func NewNullOptimizer(b Builder) *NullOptimizer {
	return &NullOptimizer{builder: b}
}

// Optimize rewrites n into a structurally-equal tree built through
// the optimizer's Builder.
func (o *NullOptimizer) Optimize(n AstNode) (AstNode, error) {
	if err := n.Accept(o); err != nil {
		return nil, err
	}
	return o.result, nil
}

func (o *NullOptimizer) VisitGrammar(n *GrammarNode) error {
	rules := make([]*RuleNode, len(n.Rules))
	for i, r := range n.Rules {
		if err := r.Accept(o); err != nil {
			return err
		}
		rules[i] = o.result.(*RuleNode)
	}
	o.result = o.builder.Grammar(n.Name, n.ParentName, rules, n.Span())
	return nil
}

func (o *NullOptimizer) VisitRule(n *RuleNode) error {
	if err := n.Body.Accept(o); err != nil {
		return err
	}
	body := o.result
	alts := orAlternatives(body)
	o.result = o.builder.Rule(n.Name, n.Params, alts, n.Span())
	return nil
}

func (o *NullOptimizer) VisitLiteral(n *LiteralNode) error {
	o.result = o.builder.Literal(n.Value, n.Span())
	return nil
}

func (o *NullOptimizer) VisitAny(n *AnyNode) error {
	o.result = o.builder.Any(n.Span())
	return nil
}

func (o *NullOptimizer) VisitRange(n *RangeNode) error {
	o.result = o.builder.Range(n.Lo, n.Hi, n.Span())
	return nil
}

func (o *NullOptimizer) VisitApply(n *ApplyNode) error {
	args := make([]AstNode, len(n.Args))
	for i, a := range n.Args {
		if err := a.Accept(o); err != nil {
			return err
		}
		args[i] = o.result
	}
	o.result = o.builder.Apply(n.RuleName, args, n.Span())
	return nil
}

func (o *NullOptimizer) VisitSeq(n *SeqNode) error {
	items, err := o.rewriteAll(n.Items)
	if err != nil {
		return err
	}
	o.result = o.builder.Seq(items, n.Span())
	return nil
}

func (o *NullOptimizer) VisitOr(n *OrNode) error {
	items, err := o.rewriteAll(n.Items)
	if err != nil {
		return err
	}
	o.result = o.builder.Or(items, n.Span())
	return nil
}

func (o *NullOptimizer) VisitMany(n *ManyNode) error {
	if err := n.Expr.Accept(o); err != nil {
		return err
	}
	o.result = o.builder.Many(o.result, n.Span())
	return nil
}

func (o *NullOptimizer) VisitMany1(n *Many1Node) error {
	if err := n.Expr.Accept(o); err != nil {
		return err
	}
	o.result = o.builder.Many1(o.result, n.Span())
	return nil
}

func (o *NullOptimizer) VisitOptional(n *OptionalNode) error {
	if err := n.Expr.Accept(o); err != nil {
		return err
	}
	o.result = o.builder.Optional(o.result, n.Span())
	return nil
}

func (o *NullOptimizer) VisitNot(n *NotNode) error {
	if err := n.Expr.Accept(o); err != nil {
		return err
	}
	o.result = o.builder.Not(o.result, n.Span())
	return nil
}

func (o *NullOptimizer) VisitLookahead(n *LookaheadNode) error {
	if err := n.Expr.Accept(o); err != nil {
		return err
	}
	o.result = o.builder.Lookahead(o.result, n.Span())
	return nil
}

func (o *NullOptimizer) VisitBind(n *BindNode) error {
	if err := n.Expr.Accept(o); err != nil {
		return err
	}
	o.result = o.builder.Bind(n.Name, o.result, n.Span())
	return nil
}

func (o *NullOptimizer) VisitArgPattern(n *ArgPatternNode) error {
	o.result = o.builder.ArgPattern(n.Value, n.Span())
	return nil
}

func (o *NullOptimizer) VisitHostExpr(n *HostExprNode) error {
	switch n.Kind {
	case HostPredicate:
		o.result = o.builder.Predicate(n.Source, n.Span())
	case HostAction:
		o.result = o.builder.Action(n.Source, n.Span())
	default:
		o.result = o.builder.RuleValue(n.Source, n.Span())
	}
	return nil
}

func (o *NullOptimizer) VisitListPattern(n *ListPatternNode) error {
	if err := n.Expr.Accept(o); err != nil {
		return err
	}
	o.result = o.builder.ListPattern(o.result, n.Span())
	return nil
}

func (o *NullOptimizer) VisitSuper(n *SuperNode) error {
	o.result = o.builder.Super(n.Span())
	return nil
}

func (o *NullOptimizer) rewriteAll(items []AstNode) ([]AstNode, error) {
	out := make([]AstNode, len(items))
	for i, it := range items {
		if err := it.Accept(o); err != nil {
			return nil, err
		}
		out[i] = o.result
	}
	return out, nil
}
