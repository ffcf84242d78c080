package ui

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/fogleman/gg"

	"github.com/appengine-ltd/fishing-friday/internal/catalog"
)

var tierRGBA = map[string]color.RGBA{
	"white":         {R: 220, G: 225, B: 230, A: 240},
	"cyan":          {R: 60, G: 210, B: 220, A: 240},
	"yellow":        {R: 230, G: 190, B: 40, A: 240},
	"magenta":       {R: 210, G: 70, B: 200, A: 240},
	"bright_yellow": {R: 255, G: 240, B: 90, A: 245},
}

// renderCatchANSI draws a small fish portrait in the tier colour as
// half-block ANSI art. Tougher fish are drawn longer.
func renderCatchANSI(c catalog.Creature, tierColor string, widthChars, heightRows int) string {
	if widthChars < 12 || heightRows < 4 {
		return catchASCIIArt(c)
	}

	widthChars = clampInt(widthChars, 12, 60)
	heightRows = clampInt(heightRows, 4, 24)

	w := widthChars
	h := heightRows * 2
	dc := gg.NewContext(w, h)

	// Transparent background so the terminal colour shows through.
	dc.SetRGBA(0, 0, 0, 0)
	dc.Clear()

	primary, ok := tierRGBA[tierColor]
	if !ok {
		primary = tierRGBA["white"]
	}
	shade := color.RGBA{R: primary.R / 2, G: primary.G / 2, B: primary.B / 2, A: 230}

	sizeNorm := clampFloat(float64(c.Difficulty)/60.0, 0.0, 1.0)
	bodyLen := lerp(0.45, 0.70, sizeNorm) * float64(w)
	bodyH := lerp(0.30, 0.42, sizeNorm) * float64(h)
	cx := float64(w) * 0.45
	cy := float64(h) * 0.5

	// Tail.
	tailX := cx + bodyLen*0.5
	dc.SetColor(shade)
	dc.MoveTo(tailX-1, cy)
	dc.LineTo(math.Min(tailX+bodyLen*0.3, float64(w)-1), cy-bodyH*0.6)
	dc.LineTo(math.Min(tailX+bodyLen*0.3, float64(w)-1), cy+bodyH*0.6)
	dc.ClosePath()
	dc.Fill()

	// Body with a belly highlight.
	bodyGrad := gg.NewLinearGradient(cx, cy-bodyH*0.5, cx, cy+bodyH*0.5)
	bodyGrad.AddColorStop(0.0, shade)
	bodyGrad.AddColorStop(0.6, primary)
	bodyGrad.AddColorStop(1.0, color.RGBA{R: 240, G: 240, B: 235, A: 235})
	dc.SetFillStyle(bodyGrad)
	dc.DrawEllipse(cx, cy, bodyLen*0.5, bodyH*0.5)
	dc.Fill()

	// Dorsal fin.
	dc.SetColor(shade)
	dc.MoveTo(cx-bodyLen*0.1, cy-bodyH*0.45)
	dc.LineTo(cx+bodyLen*0.05, cy-bodyH*0.85)
	dc.LineTo(cx+bodyLen*0.2, cy-bodyH*0.4)
	dc.ClosePath()
	dc.Fill()

	// Eye.
	dc.SetRGBA(0.05, 0.05, 0.1, 1)
	dc.DrawCircle(cx-bodyLen*0.32, cy-bodyH*0.08, math.Max(1, bodyH*0.08))
	dc.Fill()

	return rgbaImageToANSIHalfBlocks(dc.Image())
}

func catchASCIIArt(c catalog.Creature) string {
	return fmt.Sprintf("<°)))>< %s\n", c.Name)
}

func rgbaImageToANSIHalfBlocks(img image.Image) string {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= 0 || height <= 0 {
		return ""
	}

	var out strings.Builder
	for y := 0; y < height; y += 2 {
		for x := 0; x < width; x++ {
			tr, tg, tb, ta := rgba8(img.At(bounds.Min.X+x, bounds.Min.Y+y))
			br, bg, bb, ba := uint8(0), uint8(0), uint8(0), uint8(0)
			if y+1 < height {
				br, bg, bb, ba = rgba8(img.At(bounds.Min.X+x, bounds.Min.Y+y+1))
			}

			if ta < 8 && ba < 8 {
				out.WriteByte(' ')
				continue
			}

			out.WriteString(fmt.Sprintf("\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀", tr, tg, tb, br, bg, bb))
		}
		out.WriteString("\x1b[0m\n")
	}
	return out.String()
}

func rgba8(c color.Color) (r, g, b, a uint8) {
	r16, g16, b16, a16 := c.RGBA()
	return uint8(r16 >> 8), uint8(g16 >> 8), uint8(b16 >> 8), uint8(a16 >> 8)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clampFloat(v, minV, maxV float64) float64 {
	return math.Min(maxV, math.Max(minV, v))
}

func clampInt(v, minV, maxV int) int {
	return min(maxV, max(minV, v))
}
