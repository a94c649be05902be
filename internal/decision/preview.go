package decision

import (
	"credable/internal/model"
	"fmt"
	"strings"
	"unicode/utf16"

	"github.com/shopspring/decimal"
)

// previewMinUnits counts UTF-16 code units, as Hash does
const previewMinUnits = 3

var dscrFloor = decimal.New(110, -2)

// Preview computes the live signals shown while a name is typed. Input
// shorter than three characters after trimming is not ready and carries only
// the hint line.
func Preview(text string) model.SignalPreview {
	text = strings.TrimSpace(text)
	p := model.SignalPreview{
		Input: text,
		Lines: []model.TraceLine{
			{Text: "AI status: active", Tone: model.ToneGood},
			{Text: "Waiting for business input…"},
		},
	}
	if len(utf16.Encode([]rune(text))) < previewMinUnits {
		p.Lines = append(p.Lines, model.TraceLine{Text: "Type 3+ characters to surface live signals…"})
		return p
	}

	h := int64(Hash(text))
	p.Ready = true
	p.RevenueTrend = int(h%18) - 7
	p.Concentration = 30 + int(h%55)
	p.Volatility = 8 + int(h%22)
	p.DSCR = decimal.New(90+h%45, -2)

	p.Lines = append(p.Lines,
		model.TraceLine{Text: fmt.Sprintf("Interpreting: \"%s\"", text), Tone: model.ToneStrong},
		model.TraceLine{
			Text: fmt.Sprintf("Live signals — Revenue trend: %d%%", p.RevenueTrend),
			Tone: toneIf(p.RevenueTrend < 0, model.ToneBad, model.ToneGood),
		},
		model.TraceLine{
			Text: fmt.Sprintf("Live signals — Counterparty concentration: %d%%", p.Concentration),
			Tone: toneIf(p.Concentration > 65, model.ToneBad, model.ToneStrong),
		},
		model.TraceLine{
			Text: fmt.Sprintf("Live signals — Cashflow volatility index: %d", p.Volatility),
			Tone: toneIf(p.Volatility > 22, model.ToneBad, model.ToneStrong),
		},
		model.TraceLine{
			Text: fmt.Sprintf("Live signals — DSCR estimate: %s", p.DSCR.StringFixed(2)),
			Tone: toneIf(p.DSCR.LessThan(dscrFloor), model.ToneBad, model.ToneGood),
		},
		model.TraceLine{Text: "Press Enter to run full decision.", Tone: model.ToneStrong},
	)
	return p
}

func toneIf(cond bool, yes, no model.Tone) model.Tone {
	if cond {
		return yes
	}
	return no
}
