package render

import "github.com/gdamore/tcell/v2"

// Palette
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbRoad       = tcell.NewRGBColor(36, 38, 52)    // Slightly lifted asphalt
	RgbRoadEdge   = tcell.NewRGBColor(180, 180, 180) // Brighter gray
	RgbLaneLine   = tcell.NewRGBColor(90, 92, 110)

	RgbPlayer           = tcell.NewRGBColor(255, 165, 0) // Orange
	RgbPlayerInvincible = tcell.NewRGBColor(0, 200, 200) // Vibrant Cyan
	RgbPlayerDead       = tcell.NewRGBColor(255, 0, 0)

	RgbObstacleEasy = tcell.NewRGBColor(100, 150, 255) // Normal Blue
	RgbObstacleHard = tcell.NewRGBColor(255, 80, 80)   // Normal Red
	RgbItem         = tcell.NewRGBColor(255, 255, 0)   // Bright Yellow

	RgbHUD       = tcell.NewRGBColor(255, 255, 255)
	RgbHUDDim    = tcell.NewRGBColor(130, 130, 140)
	RgbLives     = tcell.NewRGBColor(255, 80, 80)
	RgbOverlayBg = tcell.NewRGBColor(60, 40, 0) // Very dark orange
	RgbOverlayFg = tcell.NewRGBColor(255, 255, 255)
)

var (
	styleBackground = tcell.StyleDefault.Background(RgbBackground)
	styleRoad       = tcell.StyleDefault.Background(RgbRoad)
	styleOverlay    = tcell.StyleDefault.Background(RgbOverlayBg).Foreground(RgbOverlayFg).Bold(true)
)
