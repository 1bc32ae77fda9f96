package engine

import (
	"testing"
)

func TestCheckCollision(t *testing.T) {
	player := NewEntity(3, 4, '@').WithTag("player")
	star := NewEntity(3, 4, '*').WithTag("star")
	wall := NewEntity(3, 4, '#').WithTag("wall")
	away := NewEntity(5, 4, '*').WithTag("star")

	tests := []struct {
		name   string
		a, b   *Entity
		ignore []string
		want   bool
	}{
		{"same cell", player, star, nil, true},
		{"different cell", player, away, nil, false},
		{"ignored tag on a", player, star, []string{"player"}, false},
		{"ignored tag on b", player, wall, []string{"wall"}, false},
		{"unrelated ignore", player, star, []string{"wall"}, true},
		{"nil entity", player, nil, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckCollision(tt.a, tt.b, tt.ignore...); got != tt.want {
				t.Errorf("CheckCollision() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDrawText(t *testing.T) {
	e, _ := newTestEngine(20, 5)
	objs := DrawText(e, 2, 1, "héllo")

	if len(objs) != 5 || len(e.Objects()) != 5 {
		t.Fatalf("entities = %d/%d, want 5", len(objs), len(e.Objects()))
	}
	for i, want := range []rune("héllo") {
		if objs[i].X != 2+i || objs[i].Y != 1 || objs[i].Glyph() != want {
			t.Errorf("entity %d = (%d,%d,%q), want (%d,1,%q)", i, objs[i].X, objs[i].Y, objs[i].Glyph(), 2+i, want)
		}
	}
}

func barString(objs []*Entity) string {
	out := make([]rune, len(objs))
	for i, o := range objs {
		out[i] = o.Glyph()
	}
	return string(out)
}

func TestDrawProgressBar(t *testing.T) {
	tests := []struct {
		width   int
		percent float64
		want    string
	}{
		{10, 0.6, "######----"},
		{10, 0.25, "###-------"},
		{4, 0, "----"},
		{4, 1, "####"},
		{4, 1.5, "####"},
		{4, -0.5, "----"},
		{0, 0.5, ""},
	}

	for _, tt := range tests {
		e, _ := newTestEngine(20, 1)
		got := barString(DrawProgressBar(e, 0, 0, tt.width, tt.percent))
		if got != tt.want {
			t.Errorf("DrawProgressBar(%d, %v) = %q, want %q", tt.width, tt.percent, got, tt.want)
		}
	}
}

func TestSetProgress(t *testing.T) {
	e, _ := newTestEngine(20, 1)
	bar := DrawProgressBar(e, 0, 0, 5, 0)

	SetProgress(bar, 0.4)
	if got := barString(bar); got != "##---" {
		t.Errorf("bar = %q, want ##---", got)
	}
	if len(e.Objects()) != 5 {
		t.Errorf("entities = %d, want 5", len(e.Objects()))
	}
}

func TestSetText(t *testing.T) {
	e, _ := newTestEngine(20, 1)
	row := DrawText(e, 0, 0, "      ")

	SetText(row, "abc")
	if got := barString(row); got != "abc   " {
		t.Errorf("row = %q, want %q", got, "abc   ")
	}

	SetText(row, "truncated text")
	if got := barString(row); got != "trunca" {
		t.Errorf("row = %q, want %q", got, "trunca")
	}
}
