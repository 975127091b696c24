// Command pymeta compiles a grammar file and runs one of its rules
// against an input file, printing the matched value or a formatted
// parse error.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mjumbewu/pymeta"
	"gopkg.in/yaml.v3"
)

func main() {
	grammarPath := flag.String("grammar", "", "path to a grammar source file (required)")
	inputPath := flag.String("input", "", "path to the input file to parse (required)")
	rule := flag.String("rule", "", "rule to apply (required)")
	globalsPath := flag.String("globals", "", "optional YAML file of globals exposed to host expressions")
	flag.Parse()

	if *grammarPath == "" || *inputPath == "" || *rule == "" {
		flag.Usage()
		os.Exit(2)
	}

	grammarSrc, err := os.ReadFile(*grammarPath)
	if err != nil {
		log.Fatalf("pymeta: reading grammar: %v", err)
	}
	input, err := os.ReadFile(*inputPath)
	if err != nil {
		log.Fatalf("pymeta: reading input: %v", err)
	}

	globals, err := loadGlobals(*globalsPath)
	if err != nil {
		log.Fatalf("pymeta: loading globals: %v", err)
	}

	gc, err := pymeta.MakeGrammarFromSource(*grammarPath, string(grammarSrc), globals)
	if err != nil {
		log.Fatalf("pymeta: compiling grammar: %v", err)
	}

	g := gc.New(pymeta.NewStringInput(string(input)))
	value, err := g.Parse(*rule, string(input))
	if err != nil {
		if perr, ok := err.(*pymeta.ParseError); ok {
			fmt.Fprint(os.Stderr, perr.FormatError(string(input)))
			os.Exit(1)
		}
		log.Fatalf("pymeta: %v", err)
	}
	fmt.Printf("%#v\n", value)
}

// loadGlobals reads an optional YAML document of name/value pairs
// into the map passed to MakeGrammar; an empty path yields an empty
// globals set rather than an error.
func loadGlobals(path string) (map[string]pymeta.Value, error) {
	if path == "" {
		return map[string]pymeta.Value{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	globals := make(map[string]pymeta.Value, len(raw))
	for k, v := range raw {
		globals[k] = v
	}
	return globals, nil
}
