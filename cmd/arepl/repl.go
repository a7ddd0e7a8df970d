package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/arith"
	"github.com/npillmayer/arith/compiler"
	"github.com/npillmayer/arith/config"
	"github.com/npillmayer/arith/expr"
	"github.com/npillmayer/arith/expr/exprtest"
	"github.com/npillmayer/arith/runtime"
	"github.com/npillmayer/arith/vm"
	"github.com/npillmayer/arith/vm/codec"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

// main() starts an interactive CLI ("A.REPL"), where users may enter arithmetic
// expressions. A.REPL will compile and run each expression and print out the
// result. Lines starting with a colon are commands, see help().
//
// Remaining command line arguments are taken as a single expression, which is
// executed instead of going into interactive mode.
//
func main() {
	// set up logging
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "", "Trace level [Debug|Info|Error]")
	conff := flag.String("config", "", "Configuration file (YAML)")
	initf := flag.String("init", "", "Initial load")
	strategy := flag.String("strategy", "", "Execution strategy [eval|vm|checked]")
	tokenizer := flag.String("tokenizer", "", "Tokenizer [lexmachine|go]")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelInfo) // will set the correct level later
	//
	conf, err := loadConfig(*conff, *tlevel, *strategy, *tokenizer)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(2)
	}
	tracer().SetTraceLevel(traceLevel(conf.TraceLevel)) // now set the user supplied level
	tracer().Infof("Trace level is %s", conf.TraceLevel)
	intp := &Intp{rt: runtime.New(conf)}
	//
	input := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if input != "" {
		tracer().Infof("Input argument is \"%s\"", input)
		if _, err := intp.Eval(input); err != nil {
			os.Exit(1)
		}
		return
	}
	pterm.Info.Println("Welcome to AREPL") // colored welcome message
	intp.repl, err = readline.New("arepl> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	defer intp.repl.Close()
	tracer().Infof("Quit with <ctrl>D") // inform user how to stop the CLI
	intp.loadInitFile(*initf)           // init file name provided by flag
	intp.REPL()                         // go into interactive mode
}

// loadConfig reads the configuration file, if any, and lets flags override
// the values found there.
func loadConfig(path, tlevel, strategy, tokenizer string) (config.Config, error) {
	conf := config.Default()
	if path != "" {
		var err error
		if conf, err = config.Load(path); err != nil {
			return conf, err
		}
	}
	if tlevel != "" {
		conf.TraceLevel = tlevel
	}
	if strategy != "" {
		conf.Strategy = strings.ToLower(strategy)
	}
	if tokenizer != "" {
		conf.Tokenizer = strings.ToLower(tokenizer)
	}
	return conf, conf.Validate()
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	rt        *runtime.Runtime
	repl      *readline.Instance
	seed      int // for the next random expression
}

func (intp *Intp) loadInitFile(filename string) {
	if filename == "" {
		return
	}
	f, err := os.Open(filename)
	if err != nil {
		tracer().Errorf("Unable to open init file: %s", filename)
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if line = strings.TrimSpace(line); line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, err := intp.Eval(line); err != nil {
			tracer().Errorf("Error line %d: %v", lineno, err)
		}
	}
	if err := scanner.Err(); err != nil {
		tracer().Errorf("Error while reading init file: " + err.Error())
	}
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, _ := intp.Eval(line) // errors have been displayed already
		if quit {
			break
		}
	}
	println("Good bye!")
}

// Eval executes a line of input, either a command or an expression. Errors are
// displayed and returned.
func (intp *Intp) Eval(line string) (quit bool, err error) {
	if !strings.HasPrefix(line, ":") {
		err = intp.exec(line)
	} else {
		cmd, args := splitCommand(line)
		switch cmd {
		case ":quit", ":q":
			return true, nil
		case ":help":
			help()
		case ":tree":
			err = intp.showTree(args)
		case ":prog":
			err = intp.showProgram(args)
		case ":yaml":
			err = intp.showYAML(args)
		case ":save":
			err = intp.save(args)
		case ":load":
			err = intp.load(args)
		case ":stats":
			intp.showStats()
		case ":random":
			err = intp.random(args)
		default:
			err = fmt.Errorf("unknown command %s, try :help", cmd)
		}
	}
	if err != nil {
		pterm.Error.Println(err.Error())
	}
	return false, err
}

func splitCommand(line string) (string, string) {
	fields := strings.SplitN(line, " ", 2)
	cmd := strings.ToLower(fields[0])
	if len(fields) == 1 {
		return cmd, ""
	}
	return cmd, strings.TrimSpace(fields[1])
}

func help() {
	pterm.Println(`  <expr>              compile and run an arithmetic expression
  :tree <expr>        display the expression tree
  :prog <expr>        display the compiled program
  :yaml <expr>        display the compiled program as YAML
  :save <file> <expr> save the compiled program to a file
  :load <file>        load a program, decompile and run it
  :random [seed]      run a random expression
  :stats              display runtime statistics
  :quit               leave`)
}

func (intp *Intp) exec(input string) error {
	res, err := intp.rt.Exec(input)
	if err != nil {
		return err
	}
	tracer().Debugf("executed with strategy %s, cached = %v", res.Strategy, res.Cached)
	pterm.Info.Println(arith.FormatNumber(res.Value))
	return nil
}

func (intp *Intp) showTree(input string) error {
	e, err := intp.rt.Parse(input)
	if err != nil {
		return err
	}
	root := pterm.NewTreeFromLeveledList(leveledExpr(e))
	pterm.DefaultTree.WithRoot(root).Render()
	pterm.Info.Printf("%d leaves, depth %d\n", expr.Leaves(e), expr.Depth(e))
	return nil
}

// leveledExpr lists the nodes of an expression tree in pre-order, as needed for
// pterm's tree view.
func leveledExpr(e expr.Expression) pterm.LeveledList {
	var ll pterm.LeveledList
	expr.Walk(e, expr.PreOrder, func(node expr.Expression, level int) {
		text := node.String()
		if b, ok := node.(*expr.BinaryOp); ok {
			text = b.Op.String()
		}
		ll = append(ll, pterm.LeveledListItem{Level: level, Text: text})
	})
	return ll
}

func (intp *Intp) showProgram(input string) error {
	prog, err := intp.rt.Compile(input)
	if err != nil {
		return err
	}
	printProgram(prog)
	return nil
}

func printProgram(prog vm.Program) {
	data := pterm.TableData{{"#", "opcode", "argument"}}
	for i, instr := range prog {
		arg := instr.Op.String()
		if instr.Code == vm.PushConstant {
			arg = arith.FormatNumber(instr.Value)
		}
		data = append(data, []string{strconv.Itoa(i), instr.Code.String(), arg})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	pterm.Info.Printf("%d instructions, stack depth %d\n", prog.Len(), prog.StackDepth())
}

func (intp *Intp) showYAML(input string) error {
	prog, err := intp.rt.Compile(input)
	if err != nil {
		return err
	}
	y, err := codec.MarshalYAML(prog)
	if err != nil {
		return err
	}
	pterm.Println(string(y))
	return nil
}

func (intp *Intp) save(args string) error {
	filename, input := splitCommand(args)
	if filename == "" || input == "" {
		return fmt.Errorf("usage: :save <file> <expr>")
	}
	prog, err := intp.rt.Compile(input)
	if err != nil {
		return err
	}
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err = codec.Encode(f, prog); err != nil {
		f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	pterm.Info.Printf("saved %d instructions to %s\n", prog.Len(), filename)
	return nil
}

func (intp *Intp) load(filename string) error {
	if filename == "" {
		return fmt.Errorf("usage: :load <file>")
	}
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	prog, err := codec.Decode(f)
	if err != nil {
		return err
	}
	e, err := compiler.Decompile(prog)
	if err != nil {
		return err
	}
	pterm.Info.Println(e.String())
	v, err := intp.rt.Run(prog)
	if err != nil {
		return err
	}
	pterm.Info.Println(arith.FormatNumber(v))
	return nil
}

func (intp *Intp) random(args string) error {
	if args != "" {
		seed, err := strconv.Atoi(args)
		if err != nil {
			return fmt.Errorf("seed must be an integer: %w", err)
		}
		intp.seed = seed
	}
	e := exprtest.Example(4, intp.seed)
	intp.seed++
	pterm.Info.Println(e.String())
	res, err := intp.rt.ExecExpr(e)
	if err != nil {
		return err
	}
	pterm.Info.Println(arith.FormatNumber(res.Value))
	return nil
}

func (intp *Intp) showStats() {
	stats := intp.rt.Stats()
	pterm.DefaultTable.WithData(pterm.TableData{
		{"strategy", intp.rt.Strategy.String()},
		{"compilations", strconv.Itoa(stats.Compilations)},
		{"cache hits", strconv.Itoa(stats.CacheHits)},
		{"cached programs", strconv.Itoa(intp.rt.CacheSize())},
		{"evaluations", strconv.Itoa(stats.Evaluations)},
		{"runs", strconv.Itoa(stats.Runs)},
	}).Render()
}

func traceLevel(l string) tracing.TraceLevel {
	return tracing.TraceLevelFromString(l)
}
