package brain

import (
	"credable/internal/model"
	"time"
)

const frameInterval = time.Second / 60

// TourScript runs the guided tour on a fresh controller and records where the
// camera lands at each step.
func TourScript(layout *Layout) []model.TourKeyframe {
	c := NewController(layout)
	frames := make([]model.TourKeyframe, 0, len(layout.Layers))

	for step := range layout.Layers {
		c.Enqueue(Intent{Kind: IntentTourNext})
		s := c.Step(frameInterval)
		for s.Animating {
			s = c.Step(frameInterval)
		}
		frames = append(frames, model.TourKeyframe{
			Step:      step + 1,
			Layer:     layout.Layers[s.TourStep].Name,
			Camera:    s.Camera,
			LookAt:    s.LookAt,
			ElapsedMS: s.Elapsed.Milliseconds(),
		})
	}
	return frames
}
