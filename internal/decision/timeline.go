package decision

import "credable/internal/model"

// monthLabels is the fixed trailing window shown on the brief
var monthLabels = [6]string{"AUG", "SEP", "OCT", "NOV", "DEC", "JAN"}

const (
	monthStride  = 9973
	monthModulus = 100000
)

// Signal bounds
const (
	MinInflowTrend   = -18
	MaxInflowTrend   = 18
	MinConcentration = 30
	MaxConcentration = 90
	MinVolatility    = 8
	MaxVolatility    = 35
)

// BuildTimeline derives the six month signals for a seed
func BuildTimeline(seed Seed) []model.MonthSignal {
	timeline := make([]model.MonthSignal, len(monthLabels))
	for i, label := range monthLabels {
		ms := (int64(seed) + int64(i)*monthStride) % monthModulus
		timeline[i] = monthSignal(label, ms)
	}
	return timeline
}

func monthSignal(label string, ms int64) model.MonthSignal {
	m := model.MonthSignal{
		Label:         label,
		InflowTrend:   clamp(int(ms%29)-14, MinInflowTrend, MaxInflowTrend),
		Concentration: clamp(35+int(ms%55), MinConcentration, MaxConcentration),
		Volatility:    clamp(10+int(ms%25), MinVolatility, MaxVolatility),
	}
	if ms%3 == 0 {
		m.GSTDelayDays = int(ms % 11)
	}
	m.Status, m.Sentiment = Classify(m)
	return m
}

// Classify rates a month. Bad thresholds are checked first, so a month that
// trips both a bad and a warn threshold is bad.
func Classify(m model.MonthSignal) (model.SignalStatus, model.Sentiment) {
	switch {
	case m.GSTDelayDays >= 7,
		m.Concentration >= 70,
		m.Volatility >= 26,
		m.InflowTrend <= -10:
		return model.StatusBad, model.SentimentCautionary
	case m.GSTDelayDays > 0,
		m.Concentration >= 60,
		m.Volatility >= 22,
		m.InflowTrend < 0:
		return model.StatusWarn, model.SentimentNeutral
	}
	return model.StatusGood, model.SentimentSupportive
}

// Takeaway messages
const (
	TakeawayRecovery = "AI observed temporary inflow stress in Oct–Dec offset by recovery in January."
	TakeawayPositive = "AI observed consistent positive cashflow momentum across all observed months."
	TakeawayPressure = "Signals indicate sustained cashflow pressure requiring enhanced monitoring."
	TakeawayMixed    = "Risk is driven by mixed signals with moderate volatility in recent months."
)

// Takeaway summarizes the inflow pattern of a timeline. It reads only the
// timeline, never the mode, so it can disagree with the brief.
func Takeaway(timeline []model.MonthSignal) string {
	negative := 0
	for _, m := range timeline {
		if m.InflowTrend < 0 {
			negative++
		}
	}

	recentPositive := 0
	recent := timeline
	if len(recent) > 2 {
		recent = recent[len(recent)-2:]
	}
	for _, m := range recent {
		if m.InflowTrend > 0 {
			recentPositive++
		}
	}

	switch {
	case negative >= 2 && recentPositive > 0:
		return TakeawayRecovery
	case negative == 0:
		return TakeawayPositive
	case negative >= 3:
		return TakeawayPressure
	}
	return TakeawayMixed
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
