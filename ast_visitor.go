package pymeta

// AstNodeVisitor is the double-dispatch interface for AST
// transforms. NullOptimizer walks a grammar through it; the engine's
// eval and the pretty printer switch on node type directly instead.
type AstNodeVisitor interface {
	VisitGrammar(*GrammarNode) error
	VisitRule(*RuleNode) error
	VisitLiteral(*LiteralNode) error
	VisitAny(*AnyNode) error
	VisitRange(*RangeNode) error
	VisitApply(*ApplyNode) error
	VisitSeq(*SeqNode) error
	VisitOr(*OrNode) error
	VisitMany(*ManyNode) error
	VisitMany1(*Many1Node) error
	VisitOptional(*OptionalNode) error
	VisitNot(*NotNode) error
	VisitLookahead(*LookaheadNode) error
	VisitBind(*BindNode) error
	VisitArgPattern(*ArgPatternNode) error
	VisitHostExpr(*HostExprNode) error
	VisitListPattern(*ListPatternNode) error
	VisitSuper(*SuperNode) error
}

// WalkGrammar visits every rule of a grammar in order.
func WalkGrammar(v AstNodeVisitor, n *GrammarNode) error {
	for _, r := range n.Rules {
		if err := r.Accept(v); err != nil {
			return err
		}
	}
	return nil
}

// WalkSeq visits every item of a sequence in order.
func WalkSeq(v AstNodeVisitor, n *SeqNode) error {
	for _, item := range n.Items {
		if err := item.Accept(v); err != nil {
			return err
		}
	}
	return nil
}

// WalkOr visits every alternative of a choice in order.
func WalkOr(v AstNodeVisitor, n *OrNode) error {
	for _, item := range n.Items {
		if err := item.Accept(v); err != nil {
			return err
		}
	}
	return nil
}

// Inspect traverses an AST in depth-first order, calling f for every
// node. If f returns false the node's children are skipped. A
// lighter-weight alternative to implementing the full visitor for
// one-off traversals.
func Inspect(n AstNode, f func(AstNode) bool) {
	if n == nil || !f(n) {
		return
	}
	switch t := n.(type) {
	case *GrammarNode:
		for _, r := range t.Rules {
			Inspect(r, f)
		}
	case *RuleNode:
		Inspect(t.Body, f)
	case *SeqNode:
		for _, it := range t.Items {
			Inspect(it, f)
		}
	case *OrNode:
		for _, it := range t.Items {
			Inspect(it, f)
		}
	case *ManyNode:
		Inspect(t.Expr, f)
	case *Many1Node:
		Inspect(t.Expr, f)
	case *OptionalNode:
		Inspect(t.Expr, f)
	case *NotNode:
		Inspect(t.Expr, f)
	case *LookaheadNode:
		Inspect(t.Expr, f)
	case *BindNode:
		Inspect(t.Expr, f)
	case *ListPatternNode:
		Inspect(t.Expr, f)
	case *ApplyNode:
		for _, a := range t.Args {
			Inspect(a, f)
		}
	}
}
