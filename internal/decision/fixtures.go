package decision

import (
	"credable/internal/model"

	"github.com/shopspring/decimal"
)

// fixture is the hand-authored content for one decision archetype. The table
// below has exactly one entry per mode, indexed by the mode itself.
type fixture struct {
	brief    model.DecisionBrief // BorrowerName filled per run
	options  []model.FinancingOption
	evidence []model.EvidenceSummary
	result   model.ResultStrip
	verdict  []model.TraceLine // console lines announcing the decision
}

var dataSources = []string{"Banking (6 months)", "GST Returns", "Bureau Score"}

var fixtures = [modeCount]fixture{
	model.ModeFavorable: {
		brief: model.DecisionBrief{
			DataSources:   dataSources,
			Decision:      "Approved",
			RiskPosture:   "Low",
			RiskQualifier: "Stable operating metrics",
			PrimaryStrengths: []string{
				"Consistent inflows aligned with business scale",
				"Strong GST compliance track record",
			},
			PrimaryRisks: []string{
				"Moderate buyer concentration (within threshold)",
			},
			AIConfidence:   "High",
			ConfidenceNote: "Consistent with 87% of comparable approved cases",
		},
		options: []model.FinancingOption{
			{
				Tag:         "Best Fit",
				Title:       "Working Capital OD",
				Limit:       "₹50L",
				LimitAmount: lakh(50),
				Tenor:       "12 months",
				Pricing:     "MCLR + 2.25%",
				Controls:    "Standard covenants",
				Reasoning:   reasonBestFit,
			},
			{
				Tag:         "Lower Risk",
				Title:       "OD + Escrow",
				Limit:       "₹60L",
				LimitAmount: lakh(60),
				Tenor:       "12 months",
				Pricing:     "MCLR + 2.00%",
				Controls:    "Escrow on top 3 buyers",
				Reasoning:   reasonLowerRisk,
			},
			{
				Tag:         "Faster Drawdowns",
				Title:       "Invoice Finance Line",
				Limit:       "₹40L",
				LimitAmount: lakh(40),
				Tenor:       "90–120 days",
				Pricing:     "1.2% per 30 days",
				Controls:    "Invoice assignment + anchor validation",
				Reasoning:   reasonFaster,
			},
		},
		evidence: []model.EvidenceSummary{
			{
				Title: titleBanking,
				SummaryPoints: []string{
					"Active circulation aligned with business scale",
					"EMI servicing disciplined",
					"Liquidity buffers adequate in all months",
					"No overdraft breaches detected",
				},
				TableData: []model.EvidenceRow{
					{Label: "Avg Monthly Inflow", Value: "₹1.2Cr"},
					{Label: "Avg Monthly Outflow", Value: "₹1.05Cr"},
					{Label: "EMI Bounce Rate", Value: "0%"},
					{Label: "OD Utilisation", Value: "45%"},
					{Label: "Min Balance Maintained", Value: "Yes"},
				},
			},
			{
				Title: titleGST,
				SummaryPoints: []string{
					"All returns filed on time",
					"Input-output ratio within expected range",
					"No discrepancies with banking turnover",
				},
				TableData: []model.EvidenceRow{
					{Label: "GST Turnover (6M)", Value: "₹6.8Cr"},
					{Label: "Bank Turnover (6M)", Value: "₹7.2Cr"},
					{Label: "Variance", Value: "5.5%"},
					{Label: "On-time Filings", Value: "6/6"},
				},
			},
			{
				Title: titleBureau,
				SummaryPoints: []string{
					"No delinquencies in last 24 months",
					"Credit utilisation healthy",
					"No adverse remarks",
				},
				TableData: []model.EvidenceRow{
					{Label: "CIBIL Score", Value: "782"},
					{Label: "Active Loans", Value: "2"},
					{Label: "Max DPD (12M)", Value: "0"},
					{Label: "Total Exposure", Value: "₹1.2Cr"},
				},
			},
			{
				Title: titleFinancials,
				SummaryPoints: []string{
					"Revenue growth 12% YoY",
					"EBITDA margin healthy at 14%",
					"Net worth adequate for exposure",
				},
				TableData: []model.EvidenceRow{
					{Label: "Revenue (FY)", Value: "₹28Cr"},
					{Label: "EBITDA Margin", Value: "14%"},
					{Label: "DSCR", Value: "1.8x"},
					{Label: "Current Ratio", Value: "1.6"},
				},
			},
		},
		result: model.ResultStrip{
			Decision:   "APPROVE",
			RiskScore:  "742 (Low)",
			Conditions: "Standard covenants",
		},
		verdict: []model.TraceLine{
			{Text: "Decision: APPROVE", Tone: model.ToneGood},
		},
	},

	model.ModeConditional: {
		brief: model.DecisionBrief{
			DataSources:   dataSources,
			Decision:      "Conditional",
			RiskPosture:   "Moderate",
			RiskQualifier: "Concentration exposure identified",
			PrimaryStrengths: []string{
				"Established trading history with anchors",
				"EMI servicing discipline maintained",
			},
			PrimaryRisks: []string{
				"Top 3 buyers represent 68% of receivables",
				"DSCR approaching policy floor",
			},
			AIConfidence:   "Medium",
			ConfidenceNote: "Consistent with 72% of conditionally approved cases",
		},
		options: []model.FinancingOption{
			{
				Tag:         "Best Fit",
				Title:       "OD with Controls",
				Limit:       "₹45L",
				LimitAmount: lakh(45),
				Tenor:       "12 months",
				Pricing:     "MCLR + 2.75%",
				Controls:    "Escrow + invoice assignment",
				Reasoning:   reasonBestFit,
			},
			{
				Tag:         "Lower Risk",
				Title:       "Invoice Finance (Anchor-led)",
				Limit:       "₹55L",
				LimitAmount: lakh(55),
				Tenor:       "90 days",
				Pricing:     "1.35% per 30 days",
				Controls:    "Anchor confirmation + concentration cap",
				Reasoning:   reasonLowerRisk,
			},
			{
				Tag:         "Faster Drawdowns",
				Title:       "Term Loan Lite",
				Limit:       "₹30L",
				LimitAmount: lakh(30),
				Tenor:       "24 months",
				Pricing:     "MCLR + 3.10%",
				Controls:    "DSCR covenant + quarterly review",
				Reasoning:   reasonFaster,
			},
		},
		evidence: []model.EvidenceSummary{
			{
				Title: titleBanking,
				SummaryPoints: []string{
					"Active circulation aligned with business scale",
					"EMI servicing disciplined",
					"Liquidity buffers thin in stress months",
					"OD utilisation signals working capital strain",
				},
				TableData: []model.EvidenceRow{
					{Label: "Avg Monthly Inflow", Value: "₹85L"},
					{Label: "Avg Monthly Outflow", Value: "₹78L"},
					{Label: "EMI Bounce Rate", Value: "8%"},
					{Label: "OD Utilisation", Value: "72%"},
					{Label: "Min Balance Maintained", Value: "Mostly"},
				},
			},
			{
				Title: titleGST,
				SummaryPoints: []string{
					"Minor filing delays in 2 months",
					"Input credit accumulation observed",
					"Turnover variance within 10% tolerance",
				},
				TableData: []model.EvidenceRow{
					{Label: "GST Turnover (6M)", Value: "₹4.9Cr"},
					{Label: "Bank Turnover (6M)", Value: "₹5.1Cr"},
					{Label: "Variance", Value: "3.9%"},
					{Label: "On-time Filings", Value: "4/6"},
				},
			},
			{
				Title: titleBureau,
				SummaryPoints: []string{
					"One 30-day past due in last 12 months",
					"Credit utilisation elevated",
					"Director DPD history clear",
				},
				TableData: []model.EvidenceRow{
					{Label: "CIBIL Score", Value: "698"},
					{Label: "Active Loans", Value: "4"},
					{Label: "Max DPD (12M)", Value: "30"},
					{Label: "Total Exposure", Value: "₹2.8Cr"},
				},
			},
			{
				Title: titleFinancials,
				SummaryPoints: []string{
					"Revenue flat YoY",
					"EBITDA margin compressed to 8%",
					"Working capital cycle elongated",
				},
				TableData: []model.EvidenceRow{
					{Label: "Revenue (FY)", Value: "₹16Cr"},
					{Label: "EBITDA Margin", Value: "8%"},
					{Label: "DSCR", Value: "1.15x"},
					{Label: "Current Ratio", Value: "1.1"},
				},
			},
		},
		result: model.ResultStrip{
			Decision:   "CONDITIONAL APPROVAL",
			RiskScore:  "712 (Moderate-Low)",
			Conditions: "Escrow + Invoice Assignment",
		},
		verdict: []model.TraceLine{
			{Text: "Decision: CONDITIONAL APPROVAL", Tone: model.ToneStrong},
			{Text: "Conditions: Escrow + invoice assignment", Tone: model.ToneStrong},
		},
	},

	model.ModeAdverse: {
		brief: model.DecisionBrief{
			DataSources:   dataSources,
			Decision:      "Declined",
			RiskPosture:   "High",
			RiskQualifier: "Multiple policy breaches detected",
			PrimaryStrengths: []string{
				"Active business operations confirmed",
			},
			PrimaryRisks: []string{
				"Related-party transfer patterns flagged",
				"Cashflow volatility exceeds policy threshold",
			},
			AIConfidence:   "High",
			ConfidenceNote: "Risk profile matches 91% of declined applications",
		},
		options: []model.FinancingOption{
			{
				Tag:         "Best Fit",
				Title:       "Small OD + Hard Controls",
				Limit:       "₹15L",
				LimitAmount: lakh(15),
				Tenor:       "6 months",
				Pricing:     "MCLR + 4.25%",
				Controls:    "100% escrow + weekly monitoring",
				Reasoning:   reasonBestFit,
			},
			{
				Tag:         "Lower Risk",
				Title:       "Secured Against FD",
				Limit:       "₹25L",
				LimitAmount: lakh(25),
				Tenor:       "12 months",
				Pricing:     "FD rate + 2.0%",
				Controls:    "Lien on FD + auto-sweep",
				Reasoning:   reasonLowerRisk,
			},
			{
				Tag:         "Faster Drawdowns",
				Title:       "LC/BG Only",
				Limit:       "₹20L",
				LimitAmount: lakh(20),
				Tenor:       "Per transaction",
				Pricing:     "As per schedule",
				Controls:    "Collateral + margin + approvals",
				Reasoning:   reasonFaster,
			},
		},
		evidence: []model.EvidenceSummary{
			{
				Title: titleBanking,
				SummaryPoints: []string{
					"Irregular inflow patterns detected",
					"EMI servicing shows occasional delays",
					"Liquidity buffers critically low",
					"Related-party transfers flagged",
				},
				TableData: []model.EvidenceRow{
					{Label: "Avg Monthly Inflow", Value: "₹45L"},
					{Label: "Avg Monthly Outflow", Value: "₹52L"},
					{Label: "EMI Bounce Rate", Value: "23%"},
					{Label: "OD Utilisation", Value: "94%"},
					{Label: "Min Balance Maintained", Value: "No"},
				},
			},
			{
				Title: titleGST,
				SummaryPoints: []string{
					"Filing delays in 4 of 6 months",
					"Significant input-output mismatch",
					"Turnover gap exceeds policy threshold",
				},
				TableData: []model.EvidenceRow{
					{Label: "GST Turnover (6M)", Value: "₹2.1Cr"},
					{Label: "Bank Turnover (6M)", Value: "₹2.7Cr"},
					{Label: "Variance", Value: "22%"},
					{Label: "On-time Filings", Value: "2/6"},
				},
			},
			{
				Title: titleBureau,
				SummaryPoints: []string{
					"Multiple 60+ DPD instances",
					"Credit utilisation at limit",
					"Director guarantees under stress",
				},
				TableData: []model.EvidenceRow{
					{Label: "CIBIL Score", Value: "612"},
					{Label: "Active Loans", Value: "6"},
					{Label: "Max DPD (12M)", Value: "90"},
					{Label: "Total Exposure", Value: "₹4.5Cr"},
				},
			},
			{
				Title: titleFinancials,
				SummaryPoints: []string{
					"Revenue decline 18% YoY",
					"EBITDA margin negative",
					"Net worth erosion detected",
				},
				TableData: []model.EvidenceRow{
					{Label: "Revenue (FY)", Value: "₹8Cr"},
					{Label: "EBITDA Margin", Value: "-2%"},
					{Label: "DSCR", Value: "0.7x"},
					{Label: "Current Ratio", Value: "0.8"},
				},
			},
		},
		result: model.ResultStrip{
			Decision:   "DECLINE",
			RiskScore:  "608 (Elevated)",
			Conditions: "Related-party + volatility flags",
		},
		verdict: []model.TraceLine{
			{Text: "Decision: DECLINE", Tone: model.ToneBad},
			{Text: "Reason: Related-party risk + cashflow volatility", Tone: model.ToneBad},
		},
	},
}

const (
	reasonBestFit   = "Matches observed cashflow stability and historical approvals."
	reasonLowerRisk = "Escrow mitigates buyer concentration exposure."
	reasonFaster    = "Optimized for short-cycle liquidity with higher monitoring."

	titleBanking    = "Banking Behaviour"
	titleGST        = "GST Compliance"
	titleBureau     = "Bureau Profile"
	titleFinancials = "Financial Statements"
)

var lakhUnit = decimal.NewFromInt(100_000)

func lakh(n int64) decimal.Decimal {
	return decimal.NewFromInt(n).Mul(lakhUnit)
}

// fixtureFor returns a copy of the fixture for m, safe for callers to modify.
func fixtureFor(m Mode) fixture {
	f := fixtures[m]
	out := fixture{
		brief:    f.brief,
		options:  append([]model.FinancingOption(nil), f.options...),
		evidence: make([]model.EvidenceSummary, len(f.evidence)),
		result:   f.result,
		verdict:  append([]model.TraceLine(nil), f.verdict...),
	}
	out.brief.DataSources = append([]string(nil), f.brief.DataSources...)
	out.brief.PrimaryStrengths = append([]string(nil), f.brief.PrimaryStrengths...)
	out.brief.PrimaryRisks = append([]string(nil), f.brief.PrimaryRisks...)
	for i, e := range f.evidence {
		out.evidence[i] = model.EvidenceSummary{
			Title:         e.Title,
			SummaryPoints: append([]string(nil), e.SummaryPoints...),
			TableData:     append([]model.EvidenceRow(nil), e.TableData...),
		}
	}
	return out
}
