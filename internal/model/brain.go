package model

// Vec3 is a point in scene space
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns the component-wise sum
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Lerp interpolates between v and o by t in [0,1]
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	return Vec3{
		X: v.X + (o.X-v.X)*t,
		Y: v.Y + (o.Y-v.Y)*t,
		Z: v.Z + (o.Z-v.Z)*t,
	}
}

// BrainLayer describes one ring of the AI brain visualization
type BrainLayer struct {
	Index       int     `json:"index"`
	Name        string  `json:"name"`
	NodeCount   int     `json:"nodeCount"`
	Color       string  `json:"color"` // hex, e.g. "#4a9eff"
	Z           float64 `json:"z"`
	Description string  `json:"description"`
}

// BrainNode is a single sphere of the network
type BrainNode struct {
	Layer    int  `json:"layer"`
	Index    int  `json:"index"`
	Position Vec3 `json:"position"`
}

// BrainLayout is the full network as served to the renderer
type BrainLayout struct {
	Layers      []BrainLayer  `json:"layers"`
	Nodes       [][]BrainNode `json:"nodes"` // per layer
	Connections int           `json:"connections"`
}

// TourKeyframe is the camera pose at the end of one guided-tour step
type TourKeyframe struct {
	Step      int    `json:"step"`
	Layer     string `json:"layer"`
	Camera    Vec3   `json:"camera"`
	LookAt    Vec3   `json:"lookAt"`
	ElapsedMS int64  `json:"elapsedMs"`
}
