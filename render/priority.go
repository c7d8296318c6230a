package render

// RenderPriority orders renderers within a frame; lower draws first and higher draws on top
type RenderPriority int

const (
	PriorityBackground RenderPriority = 0
	PriorityHUD        RenderPriority = 100 // Panel tree
	PriorityOverlay    RenderPriority = 200 // Notices over the HUD
	PriorityDebug      RenderPriority = 300 // Metrics line
)
