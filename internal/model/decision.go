package model

import "github.com/shopspring/decimal"

// DecisionMode selects one of the three canned decision archetypes
type DecisionMode int

const (
	ModeFavorable DecisionMode = iota
	ModeConditional
	ModeAdverse
)

// ModeCount is the number of decision archetypes
const ModeCount = 3

func (m DecisionMode) String() string {
	switch m {
	case ModeFavorable:
		return "favorable"
	case ModeConditional:
		return "conditional"
	case ModeAdverse:
		return "adverse"
	}
	return "unknown"
}

// MarshalText encodes the mode by name
func (m DecisionMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

type SignalStatus string

const (
	StatusGood SignalStatus = "good"
	StatusWarn SignalStatus = "warn"
	StatusBad  SignalStatus = "bad"
)

type Sentiment string

const (
	SentimentSupportive Sentiment = "supportive"
	SentimentCautionary Sentiment = "cautionary"
	SentimentNeutral    Sentiment = "neutral"
)

// MonthSignal is one synthetic month of financial-behavior metrics
type MonthSignal struct {
	Label         string       `json:"label"`
	Status        SignalStatus `json:"status"`
	InflowTrend   int          `json:"inflowTrend"`   // percent, -18..18
	GSTDelayDays  int          `json:"gstDelayDays"`  // >= 0
	Concentration int          `json:"concentration"` // percent, 30..90
	Volatility    int          `json:"volatility"`    // index, 8..35
	Sentiment     Sentiment    `json:"sentiment"`
}

// DecisionBrief is the narrative bundle shown at the top of a result
type DecisionBrief struct {
	BorrowerName     string   `json:"borrowerName"`
	DataSources      []string `json:"dataSources"`
	Decision         string   `json:"decision"`    // Approved, Conditional, Declined
	RiskPosture      string   `json:"riskPosture"` // Low, Moderate, High
	RiskQualifier    string   `json:"riskQualifier"`
	PrimaryStrengths []string `json:"primaryStrengths"`
	PrimaryRisks     []string `json:"primaryRisks"`
	AIConfidence     string   `json:"aiConfidence"` // Low, Medium, High
	ConfidenceNote   string   `json:"confidenceNote"`
}

// FinancingOption is one recommended sanction structure
type FinancingOption struct {
	Tag         string          `json:"tag"`
	Title       string          `json:"title"`
	Limit       string          `json:"limit"`
	LimitAmount decimal.Decimal `json:"limitAmount"` // rupees
	Tenor       string          `json:"tenor"`
	Pricing     string          `json:"pricing"`
	Controls    string          `json:"controls"`
	Reasoning   string          `json:"reasoning"`
}

// EvidenceRow is a single label/value pair in an evidence table
type EvidenceRow struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// EvidenceSummary groups bullet points and raw data for one evidence category
type EvidenceSummary struct {
	Title         string        `json:"title"`
	SummaryPoints []string      `json:"summaryPoints"`
	TableData     []EvidenceRow `json:"tableData"`
}

// ResultStrip is the compact verdict shown before the full brief is opened
type ResultStrip struct {
	Decision   string `json:"decision"`
	RiskScore  string `json:"riskScore"`
	Conditions string `json:"conditions"`
}

// Decision is the complete synthetic credit assessment for one company name
type Decision struct {
	Company  string            `json:"company"`
	Seed     int64             `json:"seed"`
	Mode     DecisionMode      `json:"mode"`
	Timeline []MonthSignal     `json:"timeline"`
	Brief    DecisionBrief     `json:"brief"`
	Options  []FinancingOption `json:"options"`
	Evidence []EvidenceSummary `json:"evidence"`
	Takeaway string            `json:"takeaway"`
	Result   ResultStrip       `json:"result"`
}

// Tone is the console styling class of a trace line
type Tone string

const (
	TonePlain  Tone = ""
	ToneGood   Tone = "good"
	ToneBad    Tone = "bad"
	ToneStrong Tone = "strong"
)

// TraceLine is one console line of a staged analysis run
type TraceLine struct {
	Text     string `json:"text"`
	Tone     Tone   `json:"tone,omitempty"`
	OffsetMS int    `json:"offsetMs"` // delay from run start
}

// SignalPreview is the live signal readout shown while a name is being typed
type SignalPreview struct {
	Input         string          `json:"input"`
	Ready         bool            `json:"ready"` // false until 3+ characters
	RevenueTrend  int             `json:"revenueTrend"`
	Concentration int             `json:"concentration"`
	Volatility    int             `json:"volatility"`
	DSCR          decimal.Decimal `json:"dscr"`
	Lines         []TraceLine     `json:"lines"`
}
