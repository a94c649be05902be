package decision

import (
	"credable/internal/model"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreview_TooShort(t *testing.T) {
	for _, in := range []string{"", "ab", "  ab  ", "日本"} {
		p := Preview(in)
		assert.False(t, p.Ready, in)
		require.NotEmpty(t, p.Lines)
		assert.Equal(t, "Type 3+ characters to surface live signals…", p.Lines[len(p.Lines)-1].Text)
	}
}

func TestPreview_ACME(t *testing.T) {
	p := Preview("ACME Traders")
	require.True(t, p.Ready)
	assert.Equal(t, -4, p.RevenueTrend)
	assert.Equal(t, 58, p.Concentration)
	assert.Equal(t, 25, p.Volatility)
	assert.Equal(t, "0.93", p.DSCR.StringFixed(2))

	texts := make([]string, len(p.Lines))
	tones := make([]model.Tone, len(p.Lines))
	for i, l := range p.Lines {
		texts[i] = l.Text
		tones[i] = l.Tone
	}
	assert.Equal(t, []string{
		"AI status: active",
		"Waiting for business input…",
		`Interpreting: "ACME Traders"`,
		"Live signals — Revenue trend: -4%",
		"Live signals — Counterparty concentration: 58%",
		"Live signals — Cashflow volatility index: 25",
		"Live signals — DSCR estimate: 0.93",
		"Press Enter to run full decision.",
	}, texts)
	assert.Equal(t, []model.Tone{
		model.ToneGood, model.TonePlain, model.ToneStrong,
		model.ToneBad, model.ToneStrong, model.ToneBad, model.ToneBad,
		model.ToneStrong,
	}, tones)
}

func TestTrace_FollowsMode(t *testing.T) {
	tests := []struct {
		name    string
		verdict []string
	}{
		{"ACME Traders", []string{"Decision: APPROVE"}},
		{"Initech", []string{"Decision: CONDITIONAL APPROVAL", "Conditions: Escrow + invoice assignment"}},
		{"Vandelay Industries", []string{"Decision: DECLINE", "Reason: Related-party risk + cashflow volatility"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := Trace(Evaluate(tt.name))
			assert.Equal(t, "Starting analysis: "+tt.name, lines[0].Text)

			var verdict []string
			for _, l := range lines {
				if l.OffsetMS == offsetVerdict && l.Text != "Generating AI recommended sanction structures…" {
					verdict = append(verdict, l.Text)
				}
			}
			assert.Equal(t, tt.verdict, verdict)

			last := lines[len(lines)-1]
			assert.Equal(t, offsetReady, last.OffsetMS)
			for i := 1; i < len(lines); i++ {
				assert.GreaterOrEqual(t, lines[i].OffsetMS, lines[i-1].OffsetMS, "offsets must not go backwards")
			}
		})
	}
}

func TestPreview_CountsUTF16Units(t *testing.T) {
	// an emoji is two code units, as in the browser
	assert.False(t, Preview("😀").Ready)

	p := Preview("😀a")
	require.True(t, p.Ready)
	assert.Equal(t, 1, p.RevenueTrend)
	assert.Equal(t, 36, p.Concentration)
}

func TestPreview_ZeroTrendIsSerialized(t *testing.T) {
	p := Preview("abj")
	require.True(t, p.Ready)
	require.Equal(t, 0, p.RevenueTrend)

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"revenueTrend":0`)
}
