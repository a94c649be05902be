package decision

import "credable/internal/model"

// Mode is the decision archetype a seed selects
type Mode = model.DecisionMode

const modeCount = model.ModeCount
