package pymeta

import "fmt"

// selfHostedGrammarSource is OMeta2-dialect source for a parser of
// grammar text, compiled through the same bootstrap parser and code
// generator (G and F) that every other grammar goes through, rather
// than hand-written in Go. It covers the structural subset of the
// surface syntax — literals, string literals, bare rule application,
// sequencing, ordered choice, many/many1/optional, and bind — and
// intentionally leaves out predicate/action/ruleValue bodies, super,
// list patterns, and argument-taking applies: expressing this file's
// own host-expression bracket/quote balancer as OMeta rules operating
// rune-by-rune would roughly double its size without demonstrating
// anything the bootstrap parser doesn't already cover. See DESIGN.md.
const selfHostedGrammarSource = `
ruleName = letter:c (letter | digit | '_')*:cs -> joinIdent(c, cs);

ws = spaces;

charBody = '\\' anything:c -> c
         | (~'\'' anything):c -> c;

lit = '\'' charBody:c '\'' -> mkLit(c);

strBody = (~'"' anything)*:cs -> joinChars(cs);

strlit = '"' strBody:s '"' -> mkStrLit(s);

apply = ruleName:n -> mkApply(n);

primary = lit
        | strlit
        | apply
        | '(' ws choice:e ws ')' -> e;

postfix = primary:e ( '*' -> mkMany(e)
                     | '+' -> mkMany1(e)
                     | '?' -> mkOpt(e)
                     | ':' ruleName:n -> mkBind(n, e)
                     | -> e
                     );

seq = (ws postfix)+:items -> mkSeq(items);

choice = seq:first (ws '|' ws seq)*:rest -> mkChoice(first, rest);

rule = ws ruleName:name ws '=' ws choice:body ws ';' -> mkRule(name, body);

grammar = rule+:rs ws -> mkGrammar(rs);
`

var selfHostBuilder = NewAstBuilder()

// selfHostedGlobals are the host functions the self-hosted grammar's
// actions call into to build AST nodes, standing in for the generated
// code a from-scratch code generator would emit for each action body.
func selfHostedGlobals() map[string]Value {
	return map[string]Value{
		"joinIdent": Func(func(args []Value) (Value, error) {
			c := args[0].(string)
			cs := args[1].([]Value)
			for _, v := range cs {
				c += v.(string)
			}
			return c, nil
		}),
		"joinChars": Func(func(args []Value) (Value, error) {
			s := ""
			for _, v := range args[0].([]Value) {
				s += v.(string)
			}
			return s, nil
		}),
		"mkLit": Func(func(args []Value) (Value, error) {
			return selfHostBuilder.Literal(args[0], Span{}), nil
		}),
		"mkStrLit": Func(func(args []Value) (Value, error) {
			return selfHostBuilder.Literal(args[0], Span{}), nil
		}),
		"mkApply": Func(func(args []Value) (Value, error) {
			return selfHostBuilder.Apply(args[0].(string), nil, Span{}), nil
		}),
		"mkMany": Func(func(args []Value) (Value, error) {
			return selfHostBuilder.Many(args[0].(AstNode), Span{}), nil
		}),
		"mkMany1": Func(func(args []Value) (Value, error) {
			return selfHostBuilder.Many1(args[0].(AstNode), Span{}), nil
		}),
		"mkOpt": Func(func(args []Value) (Value, error) {
			return selfHostBuilder.Optional(args[0].(AstNode), Span{}), nil
		}),
		"mkBind": Func(func(args []Value) (Value, error) {
			return selfHostBuilder.Bind(args[0].(string), args[1].(AstNode), Span{}), nil
		}),
		"mkSeq": Func(func(args []Value) (Value, error) {
			items := args[0].([]Value)
			nodes := make([]AstNode, len(items))
			for i, it := range items {
				nodes[i] = it.(AstNode)
			}
			if len(nodes) == 1 {
				return nodes[0], nil
			}
			return selfHostBuilder.Seq(nodes, Span{}), nil
		}),
		"mkChoice": Func(func(args []Value) (Value, error) {
			first := args[0].(AstNode)
			rest := args[1].([]Value)
			if len(rest) == 0 {
				return first, nil
			}
			nodes := append([]AstNode{first}, make([]AstNode, len(rest))...)
			for i, it := range rest {
				nodes[i+1] = it.(AstNode)
			}
			return selfHostBuilder.Or(nodes, Span{}), nil
		}),
		"mkRule": Func(func(args []Value) (Value, error) {
			name := args[0].(string)
			body := args[1].(AstNode)
			return selfHostBuilder.Rule(name, nil, []AstNode{body}, Span{}), nil
		}),
		"mkGrammar": Func(func(args []Value) (Value, error) {
			items := args[0].([]Value)
			rules := make([]*RuleNode, len(items))
			for i, it := range items {
				rules[i] = it.(*RuleNode)
			}
			return selfHostBuilder.Grammar("", "", rules, Span{}), nil
		}),
	}
}

// selfHostedGrammarClass compiles selfHostedGrammarSource through the
// bootstrap parser exactly once; every ParseGrammarSelfHosted call
// reuses the resulting GrammarClass (nothing modifies a GrammarClass
// after it is built).
var selfHostedGrammarClass = func() *GrammarClass {
	ast, err := ParseGrammar("GrammarOfGrammars", selfHostedGrammarSource, NewAstBuilder())
	if err != nil {
		panic(fmt.Sprintf("pymeta: self-hosted grammar source failed to parse: %v", err))
	}
	gc, err := MakeGrammar(ast, selfHostedGlobals())
	if err != nil {
		panic(fmt.Sprintf("pymeta: self-hosted grammar failed to compile: %v", err))
	}
	return gc
}()

// ParseGrammarSelfHosted parses source the same way ParseGrammar does,
// but by running it through the self-hosted grammar (H) instead of
// the hand-written recursive-descent bootstrap parser (G). For any
// source within H's structural subset the two must produce
// structurally identical GrammarNodes.
func ParseGrammarSelfHosted(name, source string) (*GrammarNode, error) {
	g := selfHostedGrammarClass.New(NewStringInput(source))
	v, err := g.Parse("grammar", source)
	if err != nil {
		return nil, err
	}
	result := v.(*GrammarNode)
	return NewGrammarNode(name, "", result.Rules, result.Span()), nil
}
