package patch

import "strings"

const (
	statusFn    = `async function Ab1(A){let B=nA()?.statusLine;return B}`
	signalInit  = `var Xy=G(()=>{process.on("SIGINT",()=>{});process.on("SIGTERM",()=>{})});`
	unrelatedFn = `function Hq(){if(B)return null;return 1}`
	contextFn   = `function Cl(A){let B={tokenUsage:A};if(!Q||D)return null;` +
		`return h(T,null,"Context low (",P,"% remaining) · Run /compact to compact & continue")}`
	escHint    = `h(Ft,{hints:[...H1?[{key:"esc"},"foo","to interrupt"]:[]]});`
	spinner    = `h.createElement(X,{spinnerTip:1,overrideMessage:2,verbose:false});`
	initCall   = `S(async()=>{try{Xy();await go()}catch(e){log(e)}});`
	bundleTail = `tail();`
)

// bundle is a synthetic minified bundle carrying every patch target.
var bundle = statusFn + signalInit + unrelatedFn + contextFn + escHint + spinner + initCall + bundleTail

// patchedBundle is bundle after the default patches plus a message rewrite.
var patchedBundle = func() string {
	s := bundle
	s = strings.Replace(s, "verbose:false", "verbose:true", 1)
	s = strings.Replace(s, "if(!Q||D)return null", "if(true)return null", 1)
	s = strings.Replace(s, "...H1?", "...(false)?", 1)
	s = strings.Replace(s, initCall, initCall+"setInterval(function(){try{Ab1({})}catch(e){}},30000);", 1)
	s = strings.Replace(s, `"Context low (",P,"% remaining) · Run /compact to compact & continue"`, `"Ctx (",P,"% left)"`, 1)
	return s
}()
