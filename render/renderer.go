package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/lane-runner/game"
	"github.com/lixenwraith/lane-runner/parameter"
)

// Frame is everything drawn in one pass
type Frame struct {
	Snap    game.Snapshot
	SoundOn bool
	RateUs  bool // Show the rate prompt on the game over card
}

// Renderer draws snapshots onto a tcell screen
type Renderer struct {
	screen    tcell.Screen
	laneWidth float64
}

// NewRenderer creates a renderer; laneWidth is the world distance between lane centers
func NewRenderer(screen tcell.Screen, laneWidth float64) *Renderer {
	return &Renderer{screen: screen, laneWidth: laneWidth}
}

// View returns the layout for the current screen size
func (r *Renderer) View() View {
	w, h := r.screen.Size()
	return View{Width: w, Height: h, LaneWidth: r.laneWidth}
}

// Draw renders one frame and shows it
func (r *Renderer) Draw(f Frame) {
	v := r.View()
	r.screen.Fill(' ', styleBackground)

	r.drawRoad(v, f.Snap.Player.PositionY)
	r.drawObstacles(v, f.Snap)
	r.drawPlayer(v, f.Snap.Player)
	r.drawHUD(v, f)
	r.drawText(0, v.Height-1, tcell.StyleDefault.Background(RgbBackground).Foreground(RgbHUDDim), parameter.HintText)
	r.drawOverlay(v, f)

	r.screen.Show()
}

func (r *Renderer) drawRoad(v View, playerY float64) {
	left, right := v.RoadLeft(), v.RoadRight()
	edge := styleRoad.Foreground(RgbRoadEdge)
	line := styleRoad.Foreground(RgbLaneLine)

	// Dashes scroll with distance travelled
	phase := int(math.Floor(playerY * parameter.RowsPerUnit))

	for row := parameter.TopMargin; row < v.Height-parameter.BottomMargin; row++ {
		for col := left + 1; col < right; col++ {
			r.screen.SetContent(col, row, ' ', nil, styleRoad)
		}
		r.screen.SetContent(left, row, parameter.RoadEdgeGlyph, nil, edge)
		r.screen.SetContent(right, row, parameter.RoadEdgeGlyph, nil, edge)

		if (row+phase)%2 != 0 {
			continue
		}
		for lane := parameter.LaneMin; lane < parameter.LaneMax; lane++ {
			col := v.LaneCenter(lane) + parameter.LaneColumns/2 + 1
			r.screen.SetContent(col, row, parameter.LaneLineGlyph, nil, line)
		}
	}
}

func (r *Renderer) drawObstacles(v View, snap game.Snapshot) {
	half := (parameter.LaneColumns - 2) / 2
	for _, ob := range snap.Obstacles {
		row := v.Row(ob.Y, snap.Player.PositionY)
		if !v.InField(row) {
			continue
		}
		color := RgbObstacleEasy
		if ob.Tier == game.TierHard {
			color = RgbObstacleHard
		}
		style := styleRoad.Foreground(color)
		for _, lane := range ob.Blocked {
			c := v.Column(float64(lane)*v.LaneWidth + ob.OffsetX)
			for col := c - half; col <= c+half; col++ {
				r.screen.SetContent(col, row, parameter.ObstacleGlyph, nil, style)
			}
		}
		if ob.HasItem {
			r.screen.SetContent(v.Column(float64(ob.ItemLane)*v.LaneWidth+ob.OffsetX), row, parameter.ItemGlyph, nil, styleRoad.Foreground(RgbItem).Bold(true))
		}
	}
}

func (r *Renderer) drawPlayer(v View, p game.PlayerState) {
	if !p.Visible {
		return
	}
	glyph := parameter.PlayerGlyph
	switch {
	case p.Tilt > 5:
		glyph = '◥'
	case p.Tilt < -5:
		glyph = '◤'
	}

	color := RgbPlayer
	switch {
	case p.IsDead:
		color = RgbPlayerDead
		glyph = '✖'
	case p.IsInvincible:
		color = RgbPlayerInvincible
	}
	r.screen.SetContent(v.Column(p.CurrentOffsetX), v.PlayerRow(), glyph, nil, styleRoad.Foreground(color).Bold(true))
}

func (r *Renderer) drawHUD(v View, f Frame) {
	base := tcell.StyleDefault.Background(RgbBackground)
	s := f.Snap

	x := r.drawText(1, 0, base.Foreground(RgbHUD).Bold(true), fmt.Sprintf("SCORE %d", s.Score))
	x = r.drawText(x+2, 0, base.Foreground(RgbHUDDim), fmt.Sprintf("BEST %d", s.Best))
	x = r.drawText(x+2, 0, base.Foreground(RgbLives), strings.Repeat(parameter.LifeStr, max(s.Player.LivesRemaining, 0)))
	x = r.drawText(x+2, 0, base.Foreground(RgbHUDDim), fmt.Sprintf("SPD %.1f", s.Player.CurrentSpeed))
	if f.SoundOn {
		r.drawText(x+2, 0, base.Foreground(RgbHUDDim), parameter.AudioStr)
	}
}

func (r *Renderer) drawOverlay(v View, f Frame) {
	s := f.Snap
	var lines []string
	switch {
	case s.GameOver:
		lines = []string{"GAME OVER", fmt.Sprintf("score %d  best %d", s.Score, s.Best), "n: new run"}
		if f.RateUs {
			lines = append(lines, "enjoying it? u: rate us")
		}
	case s.AwaitingRevive:
		lines = []string{"REVIVE?", fmt.Sprintf("%d", s.ReviveRemaining), "r: revive"}
	case s.Paused:
		lines = []string{"PAUSED", "p: resume"}
	default:
		return
	}

	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	width += 4
	top := v.Height/2 - len(lines)/2 - 1
	left := (v.Width - width) / 2

	for row := top; row < top+len(lines)+2; row++ {
		for col := left; col < left+width; col++ {
			r.screen.SetContent(col, row, ' ', nil, styleOverlay)
		}
	}
	for i, l := range lines {
		n := len([]rune(l))
		r.drawText(left+(width-n)/2, top+1+i, styleOverlay, l)
	}
}

// drawText writes s from (x, y) and returns the column after the last rune
func (r *Renderer) drawText(x, y int, style tcell.Style, s string) int {
	for _, ch := range s {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}
