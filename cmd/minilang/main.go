package main

import (
	"fmt"
	"io"
	"minilang/pkg/config"
	"minilang/pkg/frontend"
	"minilang/pkg/lexer"
	"minilang/pkg/parser"
	"minilang/pkg/token"
	"os"

	"github.com/sanity-io/litter"
	cli "github.com/urfave/cli/v2"
)

const version = "0.1.0"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "minilang",
		Usage:   "MiniLang front end: tokens, syntax and scope checks, three-address code",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env",
				Usage: "configuration file (default .env if present)",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "reject unrecognized characters instead of skipping them",
			},
			&cli.StringFlag{
				Name:  "scope",
				Usage: "scope checking mode: tree or tokens",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "Run every stage and print tokens, results and IR",
				ArgsUsage: "<file>",
				Action:    runFile,
			},
			{
				Name:      "tokens",
				Usage:     "Print the token sequence",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "skipped", Usage: "also list unrecognized characters"},
				},
				Action: printTokens,
			},
			{
				Name:      "check",
				Usage:     "Validate the grammar without building IR",
				ArgsUsage: "<file>",
				Action:    checkFile,
			},
			{
				Name:      "ast",
				Usage:     "Print the syntax tree",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "dump", Usage: "structural dump instead of source form"},
				},
				Action: printProgramAST,
			},
			{
				Name:      "ir",
				Usage:     "Print the three-address code",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "digest", Usage: "print the blake2b digest of the IR"},
				},
				Action: printIR,
			},
			{
				Name:      "inspect",
				Usage:     "Summarize symbols, statements and temporaries",
				ArgsUsage: "<file>",
				Action:    inspectFile,
			},
		},
	}
}

func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load(c.String("env"))
	if err != nil {
		return config.Config{}, err
	}
	if c.Bool("strict") {
		cfg.LexPolicy = lexer.RejectUnrecognized
	}
	if c.IsSet("scope") {
		mode, err := frontend.ParseScopeMode(c.String("scope"))
		if err != nil {
			return config.Config{}, err
		}
		cfg.Scope = mode
	}
	return cfg, nil
}

func readSource(c *cli.Context) (string, error) {
	if c.NArg() < 1 {
		return "", fmt.Errorf("usage: minilang %s <file>", c.Command.Name)
	}
	data, err := os.ReadFile(c.Args().First())
	if err != nil {
		return "", fmt.Errorf("reading file: %w", err)
	}
	return string(data), nil
}

func compileFile(c *cli.Context) (*frontend.Result, config.Config, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, cfg, err
	}
	src, err := readSource(c)
	if err != nil {
		return nil, cfg, err
	}
	result, err := frontend.Compile(src, cfg.Options())
	if err != nil {
		return nil, cfg, err
	}
	return result, cfg, nil
}

func runFile(c *cli.Context) error {
	result, cfg, err := compileFile(c)
	if err != nil {
		return err
	}

	out := c.App.Writer
	if cfg.ShowTokens {
		fmt.Fprintln(out, "Lexical Tokens:")
		writeTokens(out, result.Tokens)
	}
	fmt.Fprintln(out, "Syntax Analysis: Passed.")
	fmt.Fprintln(out, "Semantic Analysis: Passed.")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Intermediate Code:")
	io.WriteString(out, result.IR.String())
	return nil
}

func printTokens(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	src, err := readSource(c)
	if err != nil {
		return err
	}

	l := lexer.New(src, lexer.WithPolicy(cfg.LexPolicy))
	tokens, err := l.Tokenize()
	if err != nil {
		return err
	}

	writeTokens(c.App.Writer, tokens)
	if c.Bool("skipped") {
		for _, tok := range l.Skipped() {
			fmt.Fprintf(c.App.Writer, "skipped %q at %d:%d\n", tok.Lexeme, tok.Line, tok.Column)
		}
	}
	return nil
}

func checkFile(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	src, err := readSource(c)
	if err != nil {
		return err
	}

	tokens, err := lexer.New(src, lexer.WithPolicy(cfg.LexPolicy)).Tokenize()
	if err != nil {
		return err
	}
	if err := parser.Validate(tokens); err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, "Syntax Analysis: Passed.")
	return nil
}

func printProgramAST(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	src, err := readSource(c)
	if err != nil {
		return err
	}

	tokens, err := lexer.New(src, lexer.WithPolicy(cfg.LexPolicy)).Tokenize()
	if err != nil {
		return err
	}
	program, err := parser.Parse(tokens)
	if err != nil {
		return err
	}

	if c.Bool("dump") {
		io.WriteString(c.App.Writer, litter.Sdump(program)+"\n")
		return nil
	}
	io.WriteString(c.App.Writer, program.String())
	return nil
}

func printIR(c *cli.Context) error {
	result, _, err := compileFile(c)
	if err != nil {
		return err
	}

	io.WriteString(c.App.Writer, result.IR.String())
	for _, u := range result.IR.Unsupported {
		fmt.Fprintf(c.App.ErrWriter, "note: %s\n", u)
	}
	if c.Bool("digest") {
		fmt.Fprintf(c.App.Writer, "digest: %s\n", result.IR.Digest())
	}
	return nil
}

func inspectFile(c *cli.Context) error {
	result, _, err := compileFile(c)
	if err != nil {
		return err
	}

	insights := analyzeProgram(result)
	printSymbolInsights(c.App.Writer, insights)
	printStatementInsights(c.App.Writer, insights)
	printIRInsights(c.App.Writer, insights)
	return nil
}

func writeTokens(out io.Writer, tokens []token.Token) {
	for _, tok := range tokens {
		fmt.Fprintln(out, tok.String())
	}
}
