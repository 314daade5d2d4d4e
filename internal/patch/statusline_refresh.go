package patch

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hollegjx/mycode-statusline/internal/core/anchor"
	"github.com/hollegjx/mycode-statusline/internal/core/match"
	"github.com/hollegjx/mycode-statusline/internal/logger"
	"github.com/hollegjx/mycode-statusline/internal/types"
)

// DefaultRefreshIntervalMs is the refresh period used when none is configured.
const DefaultRefreshIntervalMs = 30000

const (
	refreshMarker     = "setInterval(function(){try{"
	genericRefresh    = "refreshStatusLine"
	sigintAnchor      = `process.on("SIGINT"`
	sigtermAnchor     = `process.on("SIGTERM"`
	signalWithin      = 200
	initLookback      = 500
	tryLookback       = 500
	injectLookahead   = 2000
	statusLineLiteral = "statusLine"
)

var (
	injectedCall = regexp.MustCompile(`setInterval\(function\(\)\{try\{[$\w]+\(\{\}\)\}catch\(e\)\{\}\},\d+\);`)
	initVar      = regexp.MustCompile(`var\s+([a-zA-Z0-9_]+)\s*=`)
	tryBlockEnd  = match.Shape{Name: "end of try block", Pattern: regexp.MustCompile(`\}\}\);`)}
	asyncFuncDef = regexp.MustCompile(`async function ([a-zA-Z0-9_]+)\(`)
)

// Strategies for naming the status line updater, most specific first.
var statusLineStrategies = []struct {
	name string
	re   *regexp.Regexp
}{
	{"call site", regexp.MustCompile(`async function ([a-zA-Z0-9_]+)\([^)]*\)\{[^}]*nA\(\)\?\.statusLine`)},
	{"hook executor", regexp.MustCompile(`async function ([a-zA-Z0-9_]+)\([^)]*\)\{[^}]{0,500}statusLine[^}]{0,500}Ye1`)},
	{"proximity", regexp.MustCompile(`async function ([a-zA-Z0-9_]+)\([^)]*\)\{[^}]{0,200}statusLine`)},
}

// StatusRefreshPatch injects a timer that re-renders the status line every
// IntervalMs milliseconds, right after the signal-handler setup call.
type StatusRefreshPatch struct {
	IntervalMs int
}

func (p StatusRefreshPatch) Name() string { return NameStatusRefresh }

func (p StatusRefreshPatch) Description() string {
	return fmt.Sprintf("refresh the status line every %dms", p.interval())
}

func (p StatusRefreshPatch) interval() int {
	if p.IntervalMs <= 0 {
		return DefaultRefreshIntervalMs
	}
	return p.IntervalMs
}

// Applied is true once a refresh timer is in the bundle, whether it calls a
// resolved function or the generic refreshStatusLine fallback.
func (p StatusRefreshPatch) Applied(content string) bool {
	if !strings.Contains(content, refreshMarker) {
		return false
	}
	return strings.Contains(content, genericRefresh) || injectedCall.MatchString(content)
}

// RefreshCode is the statement injected for a resolved updater function.
func RefreshCode(fn string, intervalMs int) string {
	return fmt.Sprintf("setInterval(function(){try{%s({})}catch(e){}},%d);", fn, intervalMs)
}

// GenericRefreshCode is injected when no updater function can be named.
func GenericRefreshCode(intervalMs int) string {
	return fmt.Sprintf("setInterval(function(){try{if(typeof refreshStatusLine==='function')refreshStatusLine();"+
		"else if(typeof updateStatusLine==='function')updateStatusLine();}catch(e){}},%d);", intervalMs)
}

func (p StatusRefreshPatch) Locate(content string) (Resolution, error) {
	at, err := p.injectionPoint(content)
	if err != nil {
		return Resolution{}, err
	}

	res := Resolution{Location: types.Location{Start: at, End: at}, Candidates: 1}
	if fn, strategy, ok := StatusLineFunction(content); ok {
		logger.DebugTagf("match", "StatusRefresh: updater %s via %s strategy", fn, strategy)
		res.Location.Captured = fn
		res.Replacement = RefreshCode(fn, p.interval())
	} else {
		res.Replacement = GenericRefreshCode(p.interval())
		res.Warnings = append(res.Warnings, "no async function referencing statusLine; injecting generic refresh")
	}
	return res, nil
}

// injectionPoint finds the end of the try block that calls the
// signal-handler init function.
func (p StatusRefreshPatch) injectionPoint(content string) (int, error) {
	a := anchor.Literal(sigintAnchor).WithSecondary(sigtermAnchor, signalWithin)
	sig, err := anchor.Find(content, a)
	if err != nil {
		return 0, locateErr(p.Name(), "anchor", err, a.String())
	}

	decl, ok := anchor.Extract(content, sig.Start, initLookback, 0).LastSubmatch(initVar)
	if !ok {
		return 0, locateErr(p.Name(), "window", types.ErrPatternNotFound, "var declaration before signal handlers")
	}
	initName := decl.Captured

	callShape := match.Shape{
		Name:    "init call site",
		Pattern: regexp.MustCompile(`(?:^|[^$\w])(` + regexp.QuoteMeta(initName) + `)\(\)`),
		Group:   1,
	}
	call, err := match.Find(anchor.ExtractRange(content, 0, len(content)), callShape)
	if err != nil {
		return 0, locateErr(p.Name(), "match", err, initName+"()")
	}
	callLoc := call.Location()

	_, err = match.Validate(content,
		[]match.Candidate{{Start: callLoc.Start - tryLookback, End: callLoc.Start, Label: initName + "()"}},
		match.Contains("try{"))
	if err != nil {
		return 0, locateErr(p.Name(), "validate", err, "try{ before "+initName+"()")
	}

	end, err := match.Find(anchor.Extract(content, callLoc.End+2, 0, injectLookahead), tryBlockEnd)
	if err != nil {
		return 0, locateErr(p.Name(), "match", err, "}}); after "+initName+"()")
	}
	return end.Location().End, nil
}

// StatusLineFunction names the async function that renders the status
// line, trying each strategy in order. The first hit wins.
func StatusLineFunction(content string) (name, strategy string, ok bool) {
	for _, s := range statusLineStrategies {
		if m := s.re.FindStringSubmatch(content); m != nil {
			return m[1], s.name, true
		}
	}

	ref := strings.Index(content, statusLineLiteral)
	if ref < 0 {
		return "", "", false
	}
	if loc, found := anchor.Extract(content, ref, initLookback, 0).LastSubmatch(asyncFuncDef); found {
		return loc.Captured, "preceding declaration", true
	}
	return "", "", false
}
