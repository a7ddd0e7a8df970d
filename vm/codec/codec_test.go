package codec

import (
	"bytes"
	"errors"
	"math"
	"runtime"
	"testing"

	"github.com/npillmayer/arith"
	"github.com/npillmayer/arith/compiler"
	"github.com/npillmayer/arith/expr"
	"github.com/npillmayer/arith/expr/exprtest"
	"github.com/npillmayer/arith/vm"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var sample = vm.Program{
	vm.Push(5), vm.Push(7), vm.ApplyOp(arith.Add),
	vm.Push(3), vm.ApplyOp(arith.Multiply),
	vm.Push(2), vm.ApplyOp(arith.Divide),
}

// sameProgram compares programs bitwise, treating NaN push values as equal.
func sameProgram(t require.TestingT, expected, actual vm.Program) {
	require.Equal(t, len(expected), len(actual))
	for i := range expected {
		assert.Equal(t, expected[i].Code, actual[i].Code, "instruction #%d", i)
		assert.Equal(t, expected[i].Op, actual[i].Op, "instruction #%d", i)
		assert.True(t, expr.Identical(expected[i].Value, actual[i].Value), "instruction #%d", i)
	}
}

func TestBinaryRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arith.vm")
	defer teardown()
	//
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sample))
	assert.Greater(t, buf.Len(), 3+1+4+9*len(sample)+2)
	prog, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, sample, prog)
	v, err := vm.Run(prog, nil)
	require.NoError(t, err)
	assert.Equal(t, 18.0, v)
}

func TestBinaryRoundTripRandom(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arith.vm")
	defer teardown()
	//
	rapid.Check(t, func(t *rapid.T) {
		prog, err := compiler.Compile(exprtest.Expressions(6).Draw(t, "e"))
		require.NoError(t, err)
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, prog))
		decoded, err := Decode(&buf)
		require.NoError(t, err)
		sameProgram(t, prog, decoded)
		y, err := MarshalYAML(prog)
		require.NoError(t, err)
		decoded, err = UnmarshalYAML(y)
		require.NoError(t, err)
		sameProgram(t, prog, decoded)
	})
}

func TestDecodeCorrupt(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arith.vm")
	defer teardown()
	//
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sample))
	data := buf.Bytes()
	//
	_, err := Decode(bytes.NewReader(data[:len(data)-5]))
	assert.True(t, errors.Is(err, ErrCorrupt), "truncated: %v", err)
	//
	flipped := append([]byte(nil), data...)
	flipped[3+1+4+1+7] ^= 0x01 // low byte of the first push value
	_, err = Decode(bytes.NewReader(flipped))
	assert.True(t, errors.Is(err, ErrCorrupt), "flipped bit: %v", err)
	//
	badTag := append([]byte(nil), data...)
	badTag[3+1+4] = 0x7f
	_, err = Decode(bytes.NewReader(badTag))
	assert.True(t, errors.Is(err, arith.ErrUnknownInstruction), "bad tag: %v", err)
	//
	_, err = Decode(bytes.NewReader([]byte("PK\x03\x04abcd")))
	assert.True(t, errors.Is(err, ErrCorrupt), "magic: %v", err)
}

func TestDecodeHugeCountTruncated(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arith.vm")
	defer teardown()
	//
	header := []byte{'A', 'V', 'M', Version, 0x01, 0, 0, 0} // claims 2^24 records
	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	_, err := Decode(bytes.NewReader(header))
	runtime.ReadMemStats(&after)
	assert.True(t, errors.Is(err, ErrCorrupt), "huge count: %v", err)
	assert.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(1<<20),
		"decoding an 8-byte file must not allocate for the declared count")
}

func TestFingerprint(t *testing.T) {
	fp1, err := Fingerprint(sample)
	require.NoError(t, err)
	fp2, _ := Fingerprint(append(vm.Program(nil), sample...))
	assert.Equal(t, fp1, fp2)
	other := append(vm.Program(nil), sample...)
	other[len(other)-1] = vm.ApplyOp(arith.Multiply)
	fp3, _ := Fingerprint(other)
	assert.NotEqual(t, fp1, fp3)
}

func TestYAMLRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arith.vm")
	defer teardown()
	//
	data, err := MarshalYAML(sample)
	require.NoError(t, err)
	t.Logf("\n%s", data)
	assert.Contains(t, string(data), "- {push: 5}")
	assert.Contains(t, string(data), "- {apply: div}")
	prog, err := UnmarshalYAML(data)
	require.NoError(t, err)
	assert.Equal(t, sample, prog)
	//
	specials := vm.Program{vm.Push(math.Inf(-1)), vm.Push(math.NaN()), vm.ApplyOp(arith.Add),
		vm.Push(math.Copysign(0, -1)), vm.ApplyOp(arith.Subtract)}
	data, err = MarshalYAML(specials)
	require.NoError(t, err)
	prog, err = UnmarshalYAML(data)
	require.NoError(t, err)
	sameProgram(t, specials, prog)
}

func TestYAMLHandWritten(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arith.vm")
	defer teardown()
	//
	src := "- push: 1.5\n- push: .inf\n- apply: '*'\n- {push: 2}\n- {apply: Subtract}\n"
	prog, err := UnmarshalYAML([]byte(src))
	require.NoError(t, err)
	expected := vm.Program{vm.Push(1.5), vm.Push(math.Inf(1)), vm.ApplyOp(arith.Multiply),
		vm.Push(2), vm.ApplyOp(arith.Subtract)}
	assert.Equal(t, expected, prog)
	//
	_, err = UnmarshalYAML([]byte("- jump: 3\n"))
	assert.True(t, errors.Is(err, arith.ErrUnknownInstruction))
	_, err = UnmarshalYAML([]byte("- apply: mod\n"))
	assert.True(t, errors.Is(err, arith.ErrUnknownInstruction))
	_, err = UnmarshalYAML([]byte("push: 1\n"))
	assert.Error(t, err)
	_, err = UnmarshalYAML([]byte("- push: one\n"))
	assert.Error(t, err)
}
