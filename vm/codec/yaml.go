package codec

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/npillmayer/arith"
	"github.com/npillmayer/arith/vm"
	"gopkg.in/yaml.v3"
)

// MarshalYAML returns a program as a YAML sequence, one flow mapping per
// instruction.
func MarshalYAML(prog vm.Program) ([]byte, error) {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for i, instr := range prog {
		var key, value string
		switch instr.Code {
		case vm.PushConstant:
			key, value = "push", arith.FormatNumber(instr.Value)
		case vm.Apply:
			key, value = "apply", instr.Op.Name()
		default:
			return nil, arith.ErrorAt(arith.UnknownInstruction, i, "opcode %d", uint8(instr.Code))
		}
		seq.Content = append(seq.Content, &yaml.Node{
			Kind:  yaml.MappingNode,
			Style: yaml.FlowStyle,
			Content: []*yaml.Node{
				{Kind: yaml.ScalarNode, Value: key},
				{Kind: yaml.ScalarNode, Value: value},
			},
		})
	}
	return yaml.Marshal(seq)
}

// UnmarshalYAML reads a program from YAML, as written by MarshalYAML. Push values
// may be given in YAML notation for special values, too (.inf, -.inf, .nan), and
// operators by symbol ("+") or by name ("add").
func UnmarshalYAML(data []byte) (vm.Program, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("codec: %w", err)
	}
	if doc.Kind == 0 { // empty document
		return vm.Program{}, nil
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 || doc.Content[0].Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("codec: line %d: program must be a sequence of instructions", doc.Line)
	}
	items := doc.Content[0].Content
	prog := make(vm.Program, 0, len(items))
	for _, item := range items {
		if item.Kind != yaml.MappingNode || len(item.Content) != 2 {
			return nil, fmt.Errorf("codec: line %d: instruction must be a single-key mapping", item.Line)
		}
		key, value := item.Content[0].Value, item.Content[1].Value
		switch strings.ToLower(key) {
		case "push":
			v, err := parseNumber(value)
			if err != nil {
				return nil, fmt.Errorf("codec: line %d: %w", item.Line, err)
			}
			prog = append(prog, vm.Push(v))
		case "apply":
			op, ok := arith.OperatorFor(value)
			if !ok {
				return nil, fmt.Errorf("codec: line %d: %w", item.Line,
					arith.ErrorAt(arith.UnknownInstruction, len(prog), "operator %q", value))
			}
			prog = append(prog, vm.ApplyOp(op))
		default:
			return nil, fmt.Errorf("codec: line %d: %w", item.Line,
				arith.ErrorAt(arith.UnknownInstruction, len(prog), "%q", key))
		}
	}
	return prog, nil
}

func parseNumber(s string) (float64, error) {
	switch strings.ToLower(s) {
	case ".nan":
		return math.NaN(), nil
	case ".inf", "+.inf":
		return math.Inf(1), nil
	case "-.inf":
		return math.Inf(-1), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed number %q", s)
	}
	return v, nil
}
