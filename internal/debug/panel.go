package debug

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

const indent = 10

// panel lays text out top to bottom inside the sidebar.
type panel struct {
	x, y       int
	lineHeight int
	fontHeight int
	font       rl.Font
}

func (d *DebugOverlay) newPanel(x, y int) *panel {
	return &panel{x: x, y: y, lineHeight: d.lineHeight, fontHeight: d.fontHeight, font: d.font}
}

func (p *panel) text(s string, x int, col rl.Color) {
	if p.font.BaseSize > 0 {
		rl.DrawTextEx(p.font, s, rl.NewVector2(float32(x), float32(p.y)), float32(p.fontHeight), 1, col)
	} else {
		rl.DrawText(s, int32(x), int32(p.y), int32(p.fontHeight), col)
	}
}

// lines draws headers flush left, blank lines as half gaps and everything
// else indented.
func (p *panel) lines(lines []Line) {
	for _, l := range lines {
		switch {
		case l.Text == "":
			p.y += p.lineHeight / 2
			continue
		case l.Header:
			p.text(l.Text, p.x, rl.White)
		default:
			p.text(l.Text, p.x+indent, rl.LightGray)
		}
		p.y += p.lineHeight
	}
}

// toggle draws a checkbox row and reports whether it was clicked.
func (p *panel) toggle(label string, on bool, mx, my int, clicked bool) bool {
	box := int(float64(p.fontHeight) * 0.8)
	bx, by := p.x+5, p.y+2

	hit := clicked && mx >= bx && mx <= bx+box+100 && my >= by && my <= by+box

	rl.DrawRectangleLines(int32(bx), int32(by), int32(box), int32(box), rl.NewColor(150, 150, 150, 255))
	if on {
		rl.DrawRectangle(int32(bx+2), int32(by+2), int32(box-4), int32(box-4), rl.NewColor(100, 255, 100, 255))
	}
	p.text(label, bx+box+5, rl.White)
	p.y += p.lineHeight
	return hit
}
