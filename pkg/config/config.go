package config

import (
	"errors"
	"fmt"
	"io/fs"
	"minilang/pkg/frontend"
	"minilang/pkg/lexer"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvLexPolicy  = "MINILANG_LEX_POLICY"
	EnvScopeMode  = "MINILANG_SCOPE_MODE"
	EnvShowTokens = "MINILANG_SHOW_TOKENS"
)

// DefaultEnvFile is read when no file is named and it exists.
const DefaultEnvFile = ".env"

type Config struct {
	LexPolicy  lexer.Policy
	Scope      frontend.ScopeMode
	ShowTokens bool
}

func Default() Config {
	return Config{
		LexPolicy:  lexer.SkipUnrecognized,
		Scope:      frontend.ScopeTree,
		ShowTokens: true,
	}
}

// Options converts the configuration for frontend.Compile.
func (c Config) Options() frontend.Options {
	return frontend.Options{LexPolicy: c.LexPolicy, Scope: c.Scope}
}

// Load reads envFile (DefaultEnvFile if empty; a missing default file is not
// an error) and overlays the process environment on top of it.
func Load(envFile string) (Config, error) {
	values := map[string]string{}

	path := envFile
	if path == "" {
		path = DefaultEnvFile
	}
	fileValues, err := godotenv.Read(path)
	switch {
	case err == nil:
		values = fileValues
	case envFile == "" && errors.Is(err, fs.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("reading %s: %w", path, err)
	}

	for _, key := range []string{EnvLexPolicy, EnvScopeMode, EnvShowTokens} {
		if v, ok := os.LookupEnv(key); ok {
			values[key] = v
		}
	}

	return fromValues(values)
}

func fromValues(values map[string]string) (Config, error) {
	cfg := Default()

	if v, ok := values[EnvLexPolicy]; ok {
		policy, err := ParseLexPolicy(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvLexPolicy, err)
		}
		cfg.LexPolicy = policy
	}

	if v, ok := values[EnvScopeMode]; ok {
		mode, err := frontend.ParseScopeMode(strings.TrimSpace(v))
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvScopeMode, err)
		}
		cfg.Scope = mode
	}

	if v, ok := values[EnvShowTokens]; ok {
		show, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvShowTokens, err)
		}
		cfg.ShowTokens = show
	}

	return cfg, nil
}

func ParseLexPolicy(s string) (lexer.Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "skip":
		return lexer.SkipUnrecognized, nil
	case "reject":
		return lexer.RejectUnrecognized, nil
	}
	return 0, fmt.Errorf("unknown lexer policy %q (want skip or reject)", s)
}
