package patch

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/hollegjx/mycode-statusline/internal/core/anchor"
	"github.com/hollegjx/mycode-statusline/internal/core/match"
)

var (
	// An element-construction call whose props carry both spinnerTip and
	// overrideMessage, in either order.
	spinnerCall = regexp.MustCompile(`createElement\([$\w]+,\{[^}]*(?:spinnerTip[^}]*overrideMessage|overrideMessage[^}]*spinnerTip)[^}]*\}`)

	verboseProp = match.Shape{Name: "verbose property", Pattern: regexp.MustCompile(`verbose:[^,}]+`)}
)

// VerbosePatch sets the spinner's verbose property.
type VerbosePatch struct {
	Value bool
}

func (p VerbosePatch) Name() string { return NameVerbose }

func (p VerbosePatch) Description() string {
	return fmt.Sprintf("set verbose flag to %t", p.Value)
}

func (p VerbosePatch) Applied(content string) bool {
	return resolvesToItself(p, content)
}

func (p VerbosePatch) Locate(content string) (Resolution, error) {
	calls, err := anchor.Locate(content, anchor.Regexp(spinnerCall))
	if err != nil {
		return Resolution{}, locateErr(p.Name(), "anchor", err, "createElement call with spinnerTip and overrideMessage")
	}
	call, _ := anchor.Pick(calls, anchor.Forward)

	w := anchor.ExtractRange(content, call.Start, call.End)
	frag, err := match.Find(w, verboseProp)
	if err != nil {
		return Resolution{}, locateErr(p.Name(), "match", err, verboseProp.Pattern.String())
	}

	res := Resolution{
		Location:    frag.Location(),
		Replacement: "verbose:" + strconv.FormatBool(p.Value),
		Candidates:  len(calls),
	}
	if len(calls) > 1 {
		res.Warnings = append(res.Warnings, ambiguity(len(calls), "createElement calls", "first"))
	}
	return res, nil
}
