package pymeta

import (
	"fmt"
	"strings"
)

// Span is a half-open range of byte offsets into grammar source text,
// used only for locating grammar-compile errors and for pretty
// printing; it has no effect on parsing semantics.
type Span struct{ Start, End int }

// AstNode is the interface implemented by every grammar AST form:
// every node knows how to print itself and how to dispatch into a
// visitor.
type AstNode interface {
	Span() Span
	String() string
	PrettyString() string
	HighlightPrettyString() string
	Accept(AstNodeVisitor) error
	Equal(AstNode) bool
}

// Param describes one formal parameter of a rule. A rule parameter is
// either a bind name (":x") or an embedded literal pattern used for
// argument-based dispatch (e.g. the "0" in `fact 0 => 1`).
type Param struct {
	Name      string
	IsLiteral bool
	Literal   Value
}

func (p Param) String() string {
	if p.IsLiteral {
		return fmt.Sprintf("%v", p.Literal)
	}
	return ":" + p.Name
}

func paramsString(params []Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.String()
	}
	return strings.Join(parts, " ")
}

type base struct{ sp Span }

func (b base) Span() Span { return b.sp }

// ---- Literal ----

type LiteralNode struct {
	base
	Value Value
}

func NewLiteralNode(v Value, sp Span) *LiteralNode { return &LiteralNode{base{sp}, v} }

func (n *LiteralNode) String() string { return literalString(n.Value) }
func (n *LiteralNode) Accept(v AstNodeVisitor) error { return v.VisitLiteral(n) }
func (n *LiteralNode) Equal(o AstNode) bool {
	other, ok := o.(*LiteralNode)
	return ok && other.Value == n.Value
}
func (n *LiteralNode) PrettyString() string          { return ppNode(n, false) }
func (n *LiteralNode) HighlightPrettyString() string { return ppNode(n, true) }

func literalString(v Value) string {
	switch t := v.(type) {
	case string:
		return fmt.Sprintf("%q", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// ---- Any ----

type AnyNode struct{ base }

func NewAnyNode(sp Span) *AnyNode { return &AnyNode{base{sp}} }

func (n *AnyNode) String() string                  { return "<anything>" }
func (n *AnyNode) Accept(v AstNodeVisitor) error    { return v.VisitAny(n) }
func (n *AnyNode) Equal(o AstNode) bool             { _, ok := o.(*AnyNode); return ok }
func (n *AnyNode) PrettyString() string             { return ppNode(n, false) }
func (n *AnyNode) HighlightPrettyString() string    { return ppNode(n, true) }

// ---- Range (character range; the grammar parser has no syntax that
// produces one, so only hand-built ASTs contain it) ----

type RangeNode struct {
	base
	Lo, Hi rune
}

func NewRangeNode(lo, hi rune, sp Span) *RangeNode { return &RangeNode{base{sp}, lo, hi} }

func (n *RangeNode) String() string               { return fmt.Sprintf("%c-%c", n.Lo, n.Hi) }
func (n *RangeNode) Accept(v AstNodeVisitor) error { return v.VisitRange(n) }
func (n *RangeNode) Equal(o AstNode) bool {
	other, ok := o.(*RangeNode)
	return ok && other.Lo == n.Lo && other.Hi == n.Hi
}
func (n *RangeNode) PrettyString() string          { return ppNode(n, false) }
func (n *RangeNode) HighlightPrettyString() string { return ppNode(n, true) }

// ---- Apply ----

type ApplyNode struct {
	base
	RuleName string
	Args     []AstNode // host-expression nodes (HostExprNode)
}

func NewApplyNode(rule string, args []AstNode, sp Span) *ApplyNode {
	return &ApplyNode{base{sp}, rule, args}
}

func (n *ApplyNode) String() string {
	if len(n.Args) == 0 {
		return "<" + n.RuleName + ">"
	}
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = a.String()
	}
	return "<" + n.RuleName + " " + strings.Join(parts, " ") + ">"
}
func (n *ApplyNode) Accept(v AstNodeVisitor) error { return v.VisitApply(n) }
func (n *ApplyNode) Equal(o AstNode) bool {
	other, ok := o.(*ApplyNode)
	if !ok || other.RuleName != n.RuleName || len(other.Args) != len(n.Args) {
		return false
	}
	for i := range n.Args {
		if !n.Args[i].Equal(other.Args[i]) {
			return false
		}
	}
	return true
}
func (n *ApplyNode) PrettyString() string          { return ppNode(n, false) }
func (n *ApplyNode) HighlightPrettyString() string { return ppNode(n, true) }

// ---- Sequence ----

type SeqNode struct {
	base
	Items []AstNode
}

func NewSeqNode(items []AstNode, sp Span) *SeqNode { return &SeqNode{base{sp}, items} }

func (n *SeqNode) String() string { return nodesString(n.Items, " ") }
func (n *SeqNode) Accept(v AstNodeVisitor) error { return v.VisitSeq(n) }
func (n *SeqNode) Equal(o AstNode) bool { return equalNodeSlices(n.Items, o, func(x AstNode) ([]AstNode, bool) {
	s, ok := x.(*SeqNode)
	if !ok {
		return nil, false
	}
	return s.Items, true
}) }
func (n *SeqNode) PrettyString() string          { return ppNode(n, false) }
func (n *SeqNode) HighlightPrettyString() string { return ppNode(n, true) }

// ---- Or (ordered choice) ----

type OrNode struct {
	base
	Items []AstNode
}

func NewOrNode(items []AstNode, sp Span) *OrNode { return &OrNode{base{sp}, items} }

func (n *OrNode) String() string { return nodesString(n.Items, " | ") }
func (n *OrNode) Accept(v AstNodeVisitor) error { return v.VisitOr(n) }
func (n *OrNode) Equal(o AstNode) bool { return equalNodeSlices(n.Items, o, func(x AstNode) ([]AstNode, bool) {
	s, ok := x.(*OrNode)
	if !ok {
		return nil, false
	}
	return s.Items, true
}) }
func (n *OrNode) PrettyString() string          { return ppNode(n, false) }
func (n *OrNode) HighlightPrettyString() string { return ppNode(n, true) }

// ---- Many / Many1 ----

type ManyNode struct {
	base
	Expr AstNode
}

func NewManyNode(e AstNode, sp Span) *ManyNode { return &ManyNode{base{sp}, e} }

func (n *ManyNode) String() string               { return n.Expr.String() + "*" }
func (n *ManyNode) Accept(v AstNodeVisitor) error { return v.VisitMany(n) }
func (n *ManyNode) Equal(o AstNode) bool {
	other, ok := o.(*ManyNode)
	return ok && n.Expr.Equal(other.Expr)
}
func (n *ManyNode) PrettyString() string          { return ppNode(n, false) }
func (n *ManyNode) HighlightPrettyString() string { return ppNode(n, true) }

type Many1Node struct {
	base
	Expr AstNode
}

func NewMany1Node(e AstNode, sp Span) *Many1Node { return &Many1Node{base{sp}, e} }

func (n *Many1Node) String() string               { return n.Expr.String() + "+" }
func (n *Many1Node) Accept(v AstNodeVisitor) error { return v.VisitMany1(n) }
func (n *Many1Node) Equal(o AstNode) bool {
	other, ok := o.(*Many1Node)
	return ok && n.Expr.Equal(other.Expr)
}
func (n *Many1Node) PrettyString() string          { return ppNode(n, false) }
func (n *Many1Node) HighlightPrettyString() string { return ppNode(n, true) }

// ---- Optional ----

type OptionalNode struct {
	base
	Expr AstNode
}

func NewOptionalNode(e AstNode, sp Span) *OptionalNode { return &OptionalNode{base{sp}, e} }

func (n *OptionalNode) String() string               { return n.Expr.String() + "?" }
func (n *OptionalNode) Accept(v AstNodeVisitor) error { return v.VisitOptional(n) }
func (n *OptionalNode) Equal(o AstNode) bool {
	other, ok := o.(*OptionalNode)
	return ok && n.Expr.Equal(other.Expr)
}
func (n *OptionalNode) PrettyString() string          { return ppNode(n, false) }
func (n *OptionalNode) HighlightPrettyString() string { return ppNode(n, true) }

// ---- Not ----

type NotNode struct {
	base
	Expr AstNode
}

func NewNotNode(e AstNode, sp Span) *NotNode { return &NotNode{base{sp}, e} }

func (n *NotNode) String() string               { return "~" + n.Expr.String() }
func (n *NotNode) Accept(v AstNodeVisitor) error { return v.VisitNot(n) }
func (n *NotNode) Equal(o AstNode) bool {
	other, ok := o.(*NotNode)
	return ok && n.Expr.Equal(other.Expr)
}
func (n *NotNode) PrettyString() string          { return ppNode(n, false) }
func (n *NotNode) HighlightPrettyString() string { return ppNode(n, true) }

// ---- Lookahead (~~) ----

type LookaheadNode struct {
	base
	Expr AstNode
}

func NewLookaheadNode(e AstNode, sp Span) *LookaheadNode { return &LookaheadNode{base{sp}, e} }

func (n *LookaheadNode) String() string               { return "~~" + n.Expr.String() }
func (n *LookaheadNode) Accept(v AstNodeVisitor) error { return v.VisitLookahead(n) }
func (n *LookaheadNode) Equal(o AstNode) bool {
	other, ok := o.(*LookaheadNode)
	return ok && n.Expr.Equal(other.Expr)
}
func (n *LookaheadNode) PrettyString() string          { return ppNode(n, false) }
func (n *LookaheadNode) HighlightPrettyString() string { return ppNode(n, true) }

// ---- Bind ----

type BindNode struct {
	base
	Name string
	Expr AstNode
}

func NewBindNode(name string, e AstNode, sp Span) *BindNode { return &BindNode{base{sp}, name, e} }

func (n *BindNode) String() string               { return n.Expr.String() + ":" + n.Name }
func (n *BindNode) Accept(v AstNodeVisitor) error { return v.VisitBind(n) }
func (n *BindNode) Equal(o AstNode) bool {
	other, ok := o.(*BindNode)
	return ok && other.Name == n.Name && n.Expr.Equal(other.Expr)
}
func (n *BindNode) PrettyString() string          { return ppNode(n, false) }
func (n *BindNode) HighlightPrettyString() string { return ppNode(n, true) }

// ---- ArgPattern: consume one item off the argument stream and
// require equality with a literal constant (used to compile rule
// parameters like the "0" in `fact 0 => 1`). ----

type ArgPatternNode struct {
	base
	Value Value
}

func NewArgPatternNode(v Value, sp Span) *ArgPatternNode { return &ArgPatternNode{base{sp}, v} }

func (n *ArgPatternNode) String() string               { return fmt.Sprintf("%v", n.Value) }
func (n *ArgPatternNode) Accept(v AstNodeVisitor) error { return v.VisitArgPattern(n) }
func (n *ArgPatternNode) Equal(o AstNode) bool {
	other, ok := o.(*ArgPatternNode)
	return ok && other.Value == n.Value
}
func (n *ArgPatternNode) PrettyString() string          { return ppNode(n, false) }
func (n *ArgPatternNode) HighlightPrettyString() string { return ppNode(n, true) }

// ---- Predicate / Action / RuleValue: opaque host expressions ----

type HostExprKind int

const (
	HostPredicate HostExprKind = iota
	HostAction
	HostRuleValue
)

type HostExprNode struct {
	base
	Kind   HostExprKind
	Source string
}

func NewHostExprNode(kind HostExprKind, src string, sp Span) *HostExprNode {
	return &HostExprNode{base{sp}, kind, src}
}

func (n *HostExprNode) String() string {
	switch n.Kind {
	case HostPredicate:
		return "?(" + n.Source + ")"
	case HostAction:
		return "!(" + n.Source + ")"
	default:
		return "=> " + n.Source
	}
}
func (n *HostExprNode) Accept(v AstNodeVisitor) error { return v.VisitHostExpr(n) }
func (n *HostExprNode) Equal(o AstNode) bool {
	other, ok := o.(*HostExprNode)
	return ok && other.Kind == n.Kind && other.Source == n.Source
}
func (n *HostExprNode) PrettyString() string          { return ppNode(n, false) }
func (n *HostExprNode) HighlightPrettyString() string { return ppNode(n, true) }

// ---- ListPattern ----

type ListPatternNode struct {
	base
	Expr AstNode
}

func NewListPatternNode(e AstNode, sp Span) *ListPatternNode { return &ListPatternNode{base{sp}, e} }

func (n *ListPatternNode) String() string               { return "[" + n.Expr.String() + "]" }
func (n *ListPatternNode) Accept(v AstNodeVisitor) error { return v.VisitListPattern(n) }
func (n *ListPatternNode) Equal(o AstNode) bool {
	other, ok := o.(*ListPatternNode)
	return ok && n.Expr.Equal(other.Expr)
}
func (n *ListPatternNode) PrettyString() string          { return ppNode(n, false) }
func (n *ListPatternNode) HighlightPrettyString() string { return ppNode(n, true) }

// ---- Super ----

type SuperNode struct{ base }

func NewSuperNode(sp Span) *SuperNode { return &SuperNode{base{sp}} }

func (n *SuperNode) String() string               { return "<super>" }
func (n *SuperNode) Accept(v AstNodeVisitor) error { return v.VisitSuper(n) }
func (n *SuperNode) Equal(o AstNode) bool          { _, ok := o.(*SuperNode); return ok }
func (n *SuperNode) PrettyString() string          { return ppNode(n, false) }
func (n *SuperNode) HighlightPrettyString() string { return ppNode(n, true) }

// ---- Rule & Grammar ----

type RuleNode struct {
	base
	Name   string
	Params []Param
	Body   AstNode // an *OrNode for several alternatives; a single alternative is stored bare
}

func NewRuleNode(name string, params []Param, body AstNode, sp Span) *RuleNode {
	return &RuleNode{base{sp}, name, params, body}
}

func (n *RuleNode) String() string {
	if len(n.Params) == 0 {
		return fmt.Sprintf("%s ::= %s", n.Name, n.Body.String())
	}
	return fmt.Sprintf("%s %s ::= %s", n.Name, paramsString(n.Params), n.Body.String())
}
func (n *RuleNode) Accept(v AstNodeVisitor) error { return v.VisitRule(n) }
func (n *RuleNode) Equal(o AstNode) bool {
	other, ok := o.(*RuleNode)
	return ok && other.Name == n.Name && n.Body.Equal(other.Body)
}
func (n *RuleNode) PrettyString() string          { return ppNode(n, false) }
func (n *RuleNode) HighlightPrettyString() string { return ppNode(n, true) }

type GrammarNode struct {
	base
	Name       string
	ParentName string // "" if this grammar has no explicit parent
	Rules      []*RuleNode
}

func NewGrammarNode(name, parent string, rules []*RuleNode, sp Span) *GrammarNode {
	return &GrammarNode{base{sp}, name, parent, rules}
}

func (n *GrammarNode) String() string {
	parts := make([]string, len(n.Rules))
	for i, r := range n.Rules {
		parts[i] = r.String()
	}
	return strings.Join(parts, "\n")
}
func (n *GrammarNode) Accept(v AstNodeVisitor) error { return v.VisitGrammar(n) }
func (n *GrammarNode) Equal(o AstNode) bool {
	other, ok := o.(*GrammarNode)
	if !ok || other.Name != n.Name || len(other.Rules) != len(n.Rules) {
		return false
	}
	for i := range n.Rules {
		if !n.Rules[i].Equal(other.Rules[i]) {
			return false
		}
	}
	return true
}
func (n *GrammarNode) PrettyString() string          { return ppNode(n, false) }
func (n *GrammarNode) HighlightPrettyString() string { return ppNode(n, true) }

// RuleByName looks up a rule definition by name.
func (n *GrammarNode) RuleByName(name string) (*RuleNode, bool) {
	for _, r := range n.Rules {
		if r.Name == name {
			return r, true
		}
	}
	return nil, false
}

func nodesString(items []AstNode, sep string) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it.String()
	}
	return strings.Join(parts, sep)
}

func equalNodeSlices(items []AstNode, o AstNode, extract func(AstNode) ([]AstNode, bool)) bool {
	other, ok := extract(o)
	if !ok || len(other) != len(items) {
		return false
	}
	for i := range items {
		if !items[i].Equal(other[i]) {
			return false
		}
	}
	return true
}
