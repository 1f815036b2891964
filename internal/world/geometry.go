package world

// Platform is a fixed horizontal surface a player can stand on or land
// on from above. Platforms are loaded once at startup from configuration
// and never change for the lifetime of the process.
type Platform struct {
	ID      string `json:"id" yaml:"id"`
	XStart  float64 `json:"x_start" yaml:"x_start"`
	XEnd    float64 `json:"x_end" yaml:"x_end"`
	YTop    float64 `json:"y_top" yaml:"y_top"`
	Height  float64 `json:"height" yaml:"height"`
	Color   string  `json:"color" yaml:"color"`
}

// Contains reports whether x falls within the platform's horizontal span.
func (p Platform) Contains(x float64) bool {
	return x >= p.XStart && x <= p.XEnd
}

// Wall is a fixed vertical surface a player can slide against. Walls are
// loaded once at startup from configuration and never change.
type Wall struct {
	ID       string  `json:"id" yaml:"id"`
	X        float64 `json:"x" yaml:"x"`
	YBottom  float64 `json:"y_bottom" yaml:"y_bottom"`
	YTop     float64 `json:"y_top" yaml:"y_top"`
	Width    float64 `json:"width" yaml:"width"`
	Color    string  `json:"color" yaml:"color"`
}

// Spans reports whether y falls within the wall's vertical extent.
func (w Wall) Spans(y float64) bool {
	return y >= w.YBottom && y <= w.YTop
}

// Geometry is the frozen level layout: the ground plane plus any number
// of platforms and walls. It is immutable for the lifetime of the
// process once loaded.
type Geometry struct {
	GroundY      float64
	PlayerWidth  float64
	PlayerHeight float64
	GroundColor  string
	Platforms    []Platform
	Walls        []Wall
}

// PlatformByID returns the platform with the given id, or false if none
// matches.
func (g Geometry) PlatformByID(id string) (Platform, bool) {
	for _, p := range g.Platforms {
		if p.ID == id {
			return p, true
		}
	}
	return Platform{}, false
}
