package draw

// Mask is a small monochrome bitmap stretched over a sprite's box.
type Mask struct {
	w, h int
	bits []bool
}

// NewMask builds a mask from rows of equal width where 'X' marks a set bit.
func NewMask(rows ...string) Mask {
	m := Mask{h: len(rows)}
	if m.h > 0 {
		m.w = len(rows[0])
	}
	m.bits = make([]bool, m.w*m.h)
	for y, row := range rows {
		for x := 0; x < len(row) && x < m.w; x++ {
			m.bits[y*m.w+x] = row[x] == 'X'
		}
	}
	return m
}

// Size returns the mask dimensions.
func (m *Mask) Size() (w, h int) { return m.w, m.h }

// At reports whether the bit at (x, y) is set. Out of range is unset.
func (m *Mask) At(x, y int) bool {
	if x < 0 || x >= m.w || y < 0 || y >= m.h {
		return false
	}
	return m.bits[y*m.w+x]
}

// Sprite masks, top row first.
var (
	MaskAlienTop = NewMask(
		"...XX...",
		"..XXXX..",
		".XXXXXX.",
		"XX.XX.XX",
		"XXXXXXXX",
		"..X..X..",
		".X.XX.X.",
		"X.X..X.X",
	)
	MaskAlienMid = NewMask(
		"..X.....X..",
		"...X...X...",
		"..XXXXXXX..",
		".XX.XXX.XX.",
		"XXXXXXXXXXX",
		"X.XXXXXXX.X",
		"X.X.....X.X",
		"...XX.XX...",
	)
	MaskAlienBottom = NewMask(
		"....XXXX....",
		".XXXXXXXXXX.",
		"XXXXXXXXXXXX",
		"XXX..XX..XXX",
		"XXXXXXXXXXXX",
		"...XX..XX...",
		"..XX.XX.XX..",
		"XX........XX",
	)
	MaskShip = NewMask(
		".....X.....",
		"....XXX....",
		".XXXXXXXXX.",
		"XXXXXXXXXXX",
		"XXXXXXXXXXX",
	)
	MaskUFO = NewMask(
		".....XXXXXX.....",
		"...XXXXXXXXXX...",
		"..XXXXXXXXXXXX..",
		".XX.XX.XX.XX.XX.",
		"XXXXXXXXXXXXXXXX",
		"..XXX..XX..XXX..",
		"...X........X...",
	)
	MaskSplat = NewMask(
		"X..X..X",
		".X.X.X.",
		"..XXX..",
		"XXX.XXX",
		"..XXX..",
		".X.X.X.",
		"X..X..X",
	)
)
