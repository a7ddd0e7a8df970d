/*
Package runtime implements an execution environment for arithmetic expressions,
bundling parsing, compilation and execution.

A runtime compiles every expression once and keeps the program in a cache, so
that executing the same input again only costs a run of the stack machine.
Stacks are pooled and handed out per run, so a runtime may be used by concurrent
goroutines.

Execution Strategies

A runtime executes either by evaluating the expression tree (Evaluate), by running
the compiled program (Compiled), or by doing both and cross-checking the results
(Checked). Checked execution fails with ErrDivergence if the two results differ.


----------------------------------------------------------------------

BSD License

Copyright (c) 2017-21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software or the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE. */
package runtime

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/npillmayer/arith/calclang"
	"github.com/npillmayer/arith/compiler"
	"github.com/npillmayer/arith/config"
	"github.com/npillmayer/arith/expr"
	"github.com/npillmayer/arith/vm"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'arith.runtime'.
func tracer() tracing.Trace {
	return tracing.Select("arith.runtime")
}

// Strategy selects how a runtime executes expressions.
type Strategy int

// Execution strategies.
const (
	Evaluate Strategy = iota // walk the expression tree
	Compiled                 // run the compiled program
	Checked                  // do both and compare
)

func (s Strategy) String() string {
	switch s {
	case Evaluate:
		return config.StrategyEval
	case Compiled:
		return config.StrategyVM
	case Checked:
		return config.StrategyChecked
	}
	return fmt.Sprintf("strategy(%d)", int(s))
}

// StrategyFor maps a configuration value ("eval", "vm", "checked") to a strategy.
func StrategyFor(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case config.StrategyEval:
		return Evaluate, nil
	case config.StrategyVM:
		return Compiled, nil
	case config.StrategyChecked:
		return Checked, nil
	}
	return Evaluate, fmt.Errorf("unknown strategy %q", s)
}

// ErrDivergence is returned (wrapped) by checked execution if evaluating the tree
// and running the program produce different results.
var ErrDivergence = errors.New("evaluation strategies diverge")

// Result is the outcome of executing an expression.
type Result struct {
	Value    float64
	Program  vm.Program // nil for Evaluate
	Strategy Strategy
	Cached   bool // was Program taken from the cache?
}

// Stats counts the work a runtime did.
type Stats struct {
	Compilations int
	CacheHits    int
	Evaluations  int
	Runs         int
}

// Runtime is a type implementing an execution environment for arithmetic
// expressions. Create one with New.
type Runtime struct {
	Config   config.Config
	Strategy Strategy
	lexer    calclang.TokenizerKind // tokenizer for source text
	mu       sync.Mutex
	cache    *treemap.Map    // cache key → vm.Program
	order    *arraylist.List // cache keys, oldest first
	stats    Stats
	stacks   sync.Pool // of *vm.Stack
}

// New constructs a new runtime environment for a configuration. The configuration
// should have been validated; an unknown strategy falls back to Compiled, an
// unknown tokenizer to the lexmachine one.
func New(conf config.Config) *Runtime {
	rt := &Runtime{Config: conf}
	var err error
	if rt.Strategy, err = StrategyFor(conf.Strategy); err != nil {
		tracer().Errorf("%v, using %s", err, Compiled)
		rt.Strategy = Compiled
	}
	if rt.lexer, err = calclang.TokenizerFor(conf.Tokenizer); err != nil {
		tracer().Errorf("%v, using %s", err, calclang.LexMachine)
	}
	rt.cache = treemap.NewWithStringComparator()
	rt.order = arraylist.New()
	return rt
}

// Parse parses source with the runtime's tokenizer.
func (rt *Runtime) Parse(source string) (expr.Expression, error) {
	return calclang.ParseWith(rt.lexer, source)
}

// Compile parses and compiles source, or returns the cached program for it.
func (rt *Runtime) Compile(source string) (vm.Program, error) {
	prog, _, _, err := rt.compileSource(source, false)
	return prog, err
}

// compileSource returns the program for source and, if needTree is set or the
// program has not been cached, the expression tree.
func (rt *Runtime) compileSource(source string, needTree bool) (vm.Program, expr.Expression, bool, error) {
	key := "src:" + strings.TrimSpace(source)
	if !needTree {
		if prog, ok := rt.lookup(key); ok {
			return prog, nil, true, nil
		}
	}
	e, err := rt.Parse(source)
	if err != nil {
		return nil, nil, false, err
	}
	prog, cached, err := rt.compileExpr(key, e)
	return prog, e, cached, err
}

func (rt *Runtime) compileExpr(key string, e expr.Expression) (vm.Program, bool, error) {
	if prog, ok := rt.lookup(key); ok {
		return prog, true, nil
	}
	prog, err := compiler.Compile(e)
	if err != nil {
		return nil, false, err
	}
	rt.store(key, prog)
	return prog, false, nil
}

func (rt *Runtime) lookup(key string) (vm.Program, bool) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if x, found := rt.cache.Get(key); found {
		rt.stats.CacheHits++
		tracer().Debugf("cache hit for %q", key)
		return x.(vm.Program), true
	}
	return nil, false
}

func (rt *Runtime) store(key string, prog vm.Program) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.stats.Compilations++
	if rt.Config.CacheSize <= 0 {
		return
	}
	if _, found := rt.cache.Get(key); found {
		return // a concurrent caller was faster
	}
	rt.cache.Put(key, prog)
	rt.order.Add(key)
	for rt.order.Size() > rt.Config.CacheSize {
		oldest, _ := rt.order.Get(0)
		rt.order.Remove(0)
		rt.cache.Remove(oldest)
		tracer().Debugf("evicted %q from cache", oldest)
	}
}

// Exec parses and executes source with the runtime's strategy.
func (rt *Runtime) Exec(source string) (Result, error) {
	res := Result{Strategy: rt.Strategy}
	switch rt.Strategy {
	case Evaluate:
		e, err := rt.Parse(source)
		if err != nil {
			return res, err
		}
		res.Value, err = rt.evaluate(e)
		return res, err
	case Compiled:
		prog, _, cached, err := rt.compileSource(source, false)
		if err != nil {
			return res, err
		}
		res.Program, res.Cached = prog, cached
		res.Value, err = rt.Run(prog)
		return res, err
	}
	prog, e, cached, err := rt.compileSource(source, true)
	if err != nil {
		return res, err
	}
	res.Program, res.Cached = prog, cached
	res.Value, err = rt.check(e, prog)
	return res, err
}

// ExecExpr executes an expression tree with the runtime's strategy. Compiled
// programs are cached under the expression's canonical text.
func (rt *Runtime) ExecExpr(e expr.Expression) (Result, error) {
	res := Result{Strategy: rt.Strategy}
	var err error
	if rt.Strategy == Evaluate {
		res.Value, err = rt.evaluate(e)
		return res, err
	}
	if e == nil {
		_, err = compiler.Compile(e) // reports the malformed expression
		return res, err
	}
	res.Program, res.Cached, err = rt.compileExpr("expr:"+e.String(), e)
	if err != nil {
		return res, err
	}
	if rt.Strategy == Compiled {
		res.Value, err = rt.Run(res.Program)
	} else {
		res.Value, err = rt.check(e, res.Program)
	}
	return res, err
}

func (rt *Runtime) evaluate(e expr.Expression) (float64, error) {
	rt.mu.Lock()
	rt.stats.Evaluations++
	rt.mu.Unlock()
	return expr.Evaluate(e)
}

func (rt *Runtime) check(e expr.Expression, prog vm.Program) (float64, error) {
	want, err := rt.evaluate(e)
	if err != nil {
		return 0, err
	}
	got, err := rt.Run(prog)
	if err != nil {
		return 0, err
	}
	if !expr.Identical(want, got) {
		tracer().Errorf("evaluate(%s) = %v, run = %v", e, want, got)
		return 0, fmt.Errorf("%w: evaluated %v, ran %v", ErrDivergence, want, got)
	}
	return got, nil
}

// Stats returns a snapshot of the runtime's counters.
func (rt *Runtime) Stats() Stats {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.stats
}

// CacheSize returns the number of cached programs.
func (rt *Runtime) CacheSize() int {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.cache.Size()
}
