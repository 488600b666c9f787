// Package filter selects titles with expr-lang expressions such as
//
//	UserRating >= 7.5 and Year > 2015 and not contains(Name, "christmas")
//
// Expressions are type-checked at compile time against the title variables
// and helper functions listed in env.go, and must evaluate to a bool.
package filter

import (
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/titlewatch/catalog"
)

// DefaultCacheSize is the number of compiled expressions kept by a Compiler
const DefaultCacheSize = 100

// Filter is a compiled expression. It is safe for concurrent use.
type Filter struct {
	expression string
	program    *vm.Program
}

// Compiler compiles expressions and caches the resulting filters
type Compiler struct {
	cache *lruCache
}

// NewCompiler creates a compiler that keeps up to cacheSize compiled filters.
// A cacheSize below one disables caching.
func NewCompiler(cacheSize int) *Compiler {
	c := &Compiler{}
	if cacheSize > 0 {
		c.cache = newLRUCache(cacheSize)
	}
	return c
}

var defaultCompiler = NewCompiler(DefaultCacheSize)

// Compile compiles an expression with the package's shared compiler
func Compile(expression string) (*Filter, error) {
	return defaultCompiler.Compile(expression)
}

// Compile parses and type-checks an expression
func (c *Compiler) Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(newEnv(catalog.TitleSummary{})),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	f := &Filter{
		expression: expression,
		program:    program,
	}
	if c.cache != nil {
		c.cache.Put(expression, f)
	}

	return f, nil
}

// CacheSize returns the number of cached filters
func (c *Compiler) CacheSize() int {
	if c.cache == nil {
		return 0
	}
	return c.cache.Len()
}

// Match checks if a title satisfies the expression.
// A runtime error counts as no match.
func (f *Filter) Match(title catalog.TitleSummary) bool {
	result, err := expr.Run(f.program, newEnv(title))
	if err != nil {
		return false
	}
	// Result is guaranteed to be bool due to AsBool() during compilation
	return result.(bool)
}

// Apply returns the matching titles in their original order
func (f *Filter) Apply(list []catalog.TitleSummary) []catalog.TitleSummary {
	matches := make([]catalog.TitleSummary, 0, len(list))
	for _, title := range list {
		if f.Match(title) {
			matches = append(matches, title)
		}
	}
	return matches
}

// Expression returns the original expression
func (f *Filter) Expression() string {
	return f.expression
}

// String returns the original expression
func (f *Filter) String() string {
	return f.expression
}
