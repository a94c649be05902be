package decision

import (
	"credable/internal/model"
	"fmt"
)

// Pacing offsets of a staged run, in milliseconds from start
const (
	offsetParse   = 450
	offsetGST     = 900
	offsetNetwork = 1350
	offsetVerdict = 1900
	offsetReady   = offsetVerdict + 650
)

// Trace lists the console lines of a staged run for d in display order.
// Offsets are presentation pacing only; the lines depend on d alone.
func Trace(d model.Decision) []model.TraceLine {
	lines := []model.TraceLine{
		{Text: fmt.Sprintf("Starting analysis: %s", d.Company), Tone: model.ToneStrong},
		{Text: "Loading policy pack: SME + Supply Chain"},
		{Text: "Building financial reasoning graph…"},
		{Text: "Parsing bank statement…", OffsetMS: offsetParse},
		{Text: "Reconciling GST filings…", OffsetMS: offsetGST},
		{Text: "Mapping director network…", Tone: model.ToneStrong, OffsetMS: offsetNetwork},
	}
	for _, v := range fixtures[d.Mode].verdict {
		v.OffsetMS = offsetVerdict
		lines = append(lines, v)
	}
	lines = append(lines,
		model.TraceLine{Text: "Generating AI recommended sanction structures…", Tone: model.ToneStrong, OffsetMS: offsetVerdict},
		model.TraceLine{Text: "Results ready. Open Full Results for complete output.", Tone: model.ToneGood, OffsetMS: offsetReady},
	)
	return lines
}
