package engine

import "math"

// CheckCollision reports whether a and b occupy the same cell
// Entities carrying any of ignoreTags never collide
func CheckCollision(a, b *Entity, ignoreTags ...string) bool {
	if a == nil || b == nil {
		return false
	}
	for _, tag := range ignoreTags {
		if a.Tag == tag || b.Tag == tag {
			return false
		}
	}
	return a.X == b.X && a.Y == b.Y
}

// DrawText adds one static entity per rune of text, left to right from x,y
func DrawText(e *Engine, x, y int, text string) []*Entity {
	var out []*Entity
	i := 0
	for _, r := range text {
		obj := NewEntity(x+i, y, r)
		e.AddObject(obj)
		out = append(out, obj)
		i++
	}
	return out
}

// DrawProgressBar adds width entities at x,y: '#' for the filled share, '-' for the rest
// percent is clamped to [0,1], the filled count is rounded
func DrawProgressBar(e *Engine, x, y, width int, percent float64) []*Entity {
	if width <= 0 {
		return nil
	}
	percent = math.Max(0, math.Min(1, percent))
	filled := int(math.Round(float64(width) * percent))

	out := make([]*Entity, 0, width)
	for i := 0; i < width; i++ {
		glyph := '-'
		if i < filled {
			glyph = '#'
		}
		obj := NewEntity(x+i, y, glyph)
		e.AddObject(obj)
		out = append(out, obj)
	}
	return out
}

// SetProgress re-fills an existing bar in place
func SetProgress(bar []*Entity, percent float64) {
	percent = math.Max(0, math.Min(1, percent))
	filled := int(math.Round(float64(len(bar)) * percent))
	for i, obj := range bar {
		glyph := '-'
		if i < filled {
			glyph = '#'
		}
		obj.setGlyph(glyph)
	}
}

// SetText rewrites a row created by DrawText, padding with spaces and truncating to its width
func SetText(row []*Entity, text string) {
	runes := []rune(text)
	for i, obj := range row {
		glyph := ' '
		if i < len(runes) {
			glyph = runes[i]
		}
		obj.setGlyph(glyph)
	}
}
