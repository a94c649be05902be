package decision

import (
	"credable/internal/model"
	"strings"
)

// DefaultCompany stands in when the submitted name is blank
const DefaultCompany = "Sample Manufacturing Pvt Ltd"

// ResolveName trims name and substitutes DefaultCompany for blank input
func ResolveName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultCompany
	}
	return name
}

// Evaluate builds the complete synthetic assessment for a company name.
// It is total over all strings and has no side effects.
func Evaluate(name string) model.Decision {
	company := ResolveName(name)
	seed := Hash(company)
	mode := seed.Mode()
	timeline := BuildTimeline(seed)
	f := fixtureFor(mode)

	brief := f.brief
	brief.BorrowerName = company

	return model.Decision{
		Company:  company,
		Seed:     int64(seed),
		Mode:     mode,
		Timeline: timeline,
		Brief:    brief,
		Options:  f.options,
		Evidence: f.evidence,
		Takeaway: Takeaway(timeline),
		Result:   f.result,
	}
}
