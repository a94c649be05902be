package service

import (
	"credable/internal/brain"
	"credable/internal/model"
)

// BrainService serves the AI brain geometry and guided tour. Both are fixed,
// so they are computed once at startup.
type BrainService struct {
	layout model.BrainLayout
	tour   []model.TourKeyframe
}

// NewBrainService builds the layout and simulates the tour
func NewBrainService() *BrainService {
	l := brain.NewLayout()
	return &BrainService{
		layout: l.Model(),
		tour:   brain.TourScript(l),
	}
}

// Layout returns the network geometry
func (s *BrainService) Layout() model.BrainLayout {
	return s.layout
}

// Tour returns the camera keyframes of the guided tour
func (s *BrainService) Tour() []model.TourKeyframe {
	return s.tour
}
