package patch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollegjx/mycode-statusline/internal/buffer"
	"github.com/hollegjx/mycode-statusline/internal/types"
)

func runOne(t *testing.T, content string, p Patch) (Result, *Session) {
	t.Helper()
	s := NewSession(buffer.New("cli.js", content))
	return s.Run(p), s
}

func TestVerbose_ScenarioA(t *testing.T) {
	in := `createElement(X,{spinnerTip:1,overrideMessage:2,verbose:false})`
	res, s := runOne(t, in, VerbosePatch{Value: true})

	require.Equal(t, Applied, res.State, "err: %v", res.Err)
	assert.Equal(t, `createElement(X,{spinnerTip:1,overrideMessage:2,verbose:true})`, s.Content())
	assert.Equal(t, "verbose:false", res.Operation.OldText)
}

func TestVerbose_EitherPropOrder(t *testing.T) {
	in := `a.createElement($x,{verbose:!0,overrideMessage:m,spinnerTip:t})`
	res, s := runOne(t, in, VerbosePatch{Value: false})
	require.Equal(t, Applied, res.State)
	assert.Equal(t, `a.createElement($x,{verbose:false,overrideMessage:m,spinnerTip:t})`, s.Content())
}

func TestVerbose_PatternNotFound(t *testing.T) {
	in := `createElement(X,{spinnerTip:1,overrideMessage:2})`
	res, s := runOne(t, in, VerbosePatch{Value: true})
	assert.Equal(t, Failed, res.State)
	assert.ErrorIs(t, res.Err, types.ErrPatternNotFound)
	assert.Equal(t, in, s.Content())
}

func TestContextLow_ScenarioB(t *testing.T) {
	in := `x=1;` + contextFn
	res, s := runOne(t, in, ContextLowPatch{})

	require.Equal(t, Applied, res.State, "err: %v", res.Err)
	assert.Equal(t, strings.Replace(in, "if(!Q||D)return null", "if(true)return null", 1), s.Content())
}

func TestContextLow_ScenarioD(t *testing.T) {
	in := unrelatedFn + contextFn
	res, s := runOne(t, in, ContextLowPatch{})

	require.Equal(t, Applied, res.State, "err: %v", res.Err)
	assert.True(t, strings.HasPrefix(s.Content(), unrelatedFn), "farther function untouched")
	assert.Contains(t, s.Content(), `function Cl(A){let B={tokenUsage:A};if(true)return null;`)
	// The farther declaration's text also reaches the token, so both survive
	// and the choice is reported.
	assert.Equal(t, 2, res.Candidates)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "closest to the anchor")
}

func TestContextLow_ValidationFailed(t *testing.T) {
	in := `function f(){if(a)return null;return h("Context low (",P)}`
	res, s := runOne(t, in, ContextLowPatch{})
	assert.ErrorIs(t, res.Err, types.ErrValidationFailed)
	assert.Equal(t, in, s.Content())
}

func TestContextLow_NoFunctionInWindow(t *testing.T) {
	in := `function f(){tokenUsage:1}` + strings.Repeat(";", 900) + `"Context low ("`
	res, _ := runOne(t, in, ContextLowPatch{})
	assert.ErrorIs(t, res.Err, types.ErrPatternNotFound)

	var le *types.LocateError
	require.ErrorAs(t, res.Err, &le)
	assert.Equal(t, "window", le.Stage)
}

func TestEscInterrupt_ScenarioC(t *testing.T) {
	in := `...H1?[{key:"esc"},"foo","to interrupt"]:[]`
	res, s := runOne(t, in, EscInterruptPatch{})

	require.Equal(t, Applied, res.State, "err: %v", res.Err)
	assert.Equal(t, `...(false)?[{key:"esc"},"foo","to interrupt"]:[]`, s.Content())
}

func TestEscInterrupt_SecondaryMissing(t *testing.T) {
	in := `...H1?[{key:"esc"},"foo"]:[]` + strings.Repeat(" ", 300) + `"to interrupt"`
	res, s := runOne(t, in, EscInterruptPatch{})
	assert.ErrorIs(t, res.Err, types.ErrSecondaryAnchorMissing)
	assert.Equal(t, in, s.Content())
}

func TestEscInterrupt_NoSpread(t *testing.T) {
	res, _ := runOne(t, `H1?[{key:"esc"},"to interrupt"]:[]`, EscInterruptPatch{})
	assert.ErrorIs(t, res.Err, types.ErrPatternNotFound)
}

func TestEscInterrupt_SkipsHintWithoutSpread(t *testing.T) {
	in := `a({key:"esc"},"to interrupt");b=[...H1?[{key:"esc"},"to interrupt"]:[]]`
	res, s := runOne(t, in, EscInterruptPatch{})

	require.Equal(t, Applied, res.State, "err: %v", res.Err)
	assert.Equal(t, `a({key:"esc"},"to interrupt");b=[...(false)?[{key:"esc"},"to interrupt"]:[]]`, s.Content())
	assert.Equal(t, 1, res.Candidates)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "skipped 1 esc hint")

	assert.Equal(t, AlreadyApplied, s.Run(EscInterruptPatch{}).State)
}

func TestEscInterrupt_DistantSpread(t *testing.T) {
	in := `x=[...H1?[` + strings.Repeat(`"pad",`, 120) + `{key:"esc"},"to interrupt"]:[]]`
	res, s := runOne(t, in, EscInterruptPatch{})

	require.Equal(t, Applied, res.State, "err: %v", res.Err)
	assert.True(t, strings.HasPrefix(s.Content(), `x=[...(false)?[`))
}

func TestStatusRefresh_Injects(t *testing.T) {
	in := statusFn + signalInit + initCall + bundleTail
	res, s := runOne(t, in, StatusRefreshPatch{IntervalMs: 5000})

	require.Equal(t, Applied, res.State, "err: %v", res.Err)
	want := statusFn + signalInit + initCall + "setInterval(function(){try{Ab1({})}catch(e){}},5000);" + bundleTail
	assert.Equal(t, want, s.Content())
	assert.Equal(t, "Ab1", res.Location.Captured)
	assert.Empty(t, res.Operation.OldText)
}

func TestStatusRefresh_GenericFallback(t *testing.T) {
	in := signalInit + initCall
	res, s := runOne(t, in, StatusRefreshPatch{})

	require.Equal(t, Applied, res.State)
	assert.Equal(t, in+GenericRefreshCode(DefaultRefreshIntervalMs), s.Content())
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "generic refresh")
}

func TestStatusRefresh_CallOutsideTry(t *testing.T) {
	in := signalInit + `Xy();go()}});`
	res, s := runOne(t, in, StatusRefreshPatch{})
	assert.ErrorIs(t, res.Err, types.ErrValidationFailed)
	assert.Equal(t, in, s.Content())
}

func TestStatusRefresh_CallSiteNeedsBoundary(t *testing.T) {
	in := signalInit + `try{aXy();b()}});`
	res, _ := runOne(t, in, StatusRefreshPatch{})
	assert.ErrorIs(t, res.Err, types.ErrPatternNotFound)
}

func TestStatusRefresh_ScenarioE(t *testing.T) {
	in := signalInit + `setInterval(function(){try{refreshStatusLine()}catch(e){}},1000);` + initCall
	res, s := runOne(t, in, StatusRefreshPatch{})

	assert.Equal(t, AlreadyApplied, res.State)
	assert.Len(t, s.Content(), len(in))
	assert.Empty(t, s.Operations())
}

func TestStatusLineFunction_Strategies(t *testing.T) {
	tests := []struct {
		name, content, wantFn, wantStrategy string
	}{
		{"call site", statusFn, "Ab1", "call site"},
		{"hook executor", `async function Hk(A){let s=A.statusLine;return Ye1(s)}`, "Hk", "hook executor"},
		{"proximity", `async function Px(){return cfg.statusLine}`, "Px", "proximity"},
		{"preceding declaration", `async function Zz(a){if(a){x()}return q.statusLine}`, "Zz", "preceding declaration"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn, strategy, ok := StatusLineFunction(tt.content)
			require.True(t, ok)
			assert.Equal(t, tt.wantFn, fn)
			assert.Equal(t, tt.wantStrategy, strategy)
		})
	}

	_, _, ok := StatusLineFunction("function plain(){}")
	assert.False(t, ok)
}

func TestContextLowMessage(t *testing.T) {
	p := ParseMessage("Ctx (,% left)")
	assert.Equal(t, "Ctx (", p.Prefix)
	assert.Equal(t, "% left)", p.Suffix)

	res, s := runOne(t, contextFn, p)
	require.Equal(t, Applied, res.State, "err: %v", res.Err)
	assert.Equal(t, "P", res.Location.Captured)
	assert.Contains(t, s.Content(), `return h(T,null,"Ctx (",P,"% left)")}`)

	again := s.Run(p)
	assert.Equal(t, AlreadyApplied, again.State)
}

func TestContextLowMessage_RerunIgnoresPrefixDecoys(t *testing.T) {
	tests := []struct {
		name    string
		message string
		decoy   string
	}{
		{name: "prefix used elsewhere", message: "Ctx (,% left)", decoy: `y("Ctx (",1);`},
		{name: "empty prefix", message: ",% left)", decoy: `x("",1);`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patches := allPatches(t, DefaultRegistry(Options{Verbose: true, ContextLowMessage: tt.message}))
			s := NewSession(buffer.New("cli.js", tt.decoy+bundle))
			for _, p := range patches {
				res := s.Run(p)
				require.Equal(t, Applied, res.State, "%s: %v", p.Name(), res.Err)
			}
			after := s.Content()
			assert.True(t, strings.HasPrefix(after, tt.decoy))

			for _, p := range patches {
				assert.Equal(t, AlreadyApplied, s.Run(p).State, p.Name())
			}
			assert.Equal(t, after, s.Content())
		})
	}
}

func TestContextLowMessage_NotAppliedByPrefixAlone(t *testing.T) {
	p := ParseMessage("Ctx (,% left)")
	assert.False(t, p.Applied(`y("Ctx (",1);`))
	assert.True(t, p.Applied(`h(T,null,"Ctx (",P,"% left)")`))
}

func TestContextLowMessage_JavaScriptEscapes(t *testing.T) {
	p := ParseMessage("Ctx\a <,% left ")
	res, s := runOne(t, contextFn, p)
	require.Equal(t, Applied, res.State, "err: %v", res.Err)
	assert.Contains(t, s.Content(), `"Ctx\u0007 <",P,"% left "`)
	assert.True(t, p.Applied(s.Content()))
}

func TestEveryPatch_NoAnchorLeavesBufferIdentical(t *testing.T) {
	in := "function a(){return 1};var b=2;"
	for _, p := range allPatches(t, DefaultRegistry(Options{Verbose: true, ContextLowMessage: "a,b"})) {
		t.Run(p.Name(), func(t *testing.T) {
			res, s := runOne(t, in, p)
			assert.Equal(t, Failed, res.State)
			assert.ErrorIs(t, res.Err, types.ErrAnchorNotFound)
			assert.Equal(t, in, s.Content())
			assert.Empty(t, s.Operations())
		})
	}
}

func TestEveryPatch_SecondRunIsAlreadyApplied(t *testing.T) {
	for _, p := range allPatches(t, DefaultRegistry(Options{Verbose: true, ContextLowMessage: "Ctx (,% left)"})) {
		t.Run(p.Name(), func(t *testing.T) {
			s := NewSession(buffer.New("cli.js", bundle))
			first := s.Run(p)
			require.Equal(t, Applied, first.State, "err: %v", first.Err)
			after := s.Content()

			second := s.Run(p)
			assert.Equal(t, AlreadyApplied, second.State)
			assert.Equal(t, after, s.Content())
		})
	}
}

func allPatches(t *testing.T, r *Registry) []Patch {
	t.Helper()
	patches, err := r.Select(nil)
	require.NoError(t, err)
	return patches
}
