package draw

import (
	"io"
	"math"
	"strconv"
	"strings"
)

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Color is a palette entry for canvas pixels. ColorNone is an empty pixel.
type Color uint8

const (
	ColorNone Color = iota
	ColorWhite
	ColorGreen
	ColorCyan
	ColorMagenta
	ColorRed
	ColorYellow
)

// ColorReset restores the terminal's default attributes.
const ColorReset = "\033[0m"

var colorCodes = [...]string{
	ColorNone:    ColorReset,
	ColorWhite:   "\033[97m",
	ColorGreen:   "\033[92m",
	ColorCyan:    "\033[96m",
	ColorMagenta: "\033[95m",
	ColorRed:     "\033[91m",
	ColorYellow:  "\033[93m",
}

// Code returns the ANSI foreground sequence for the color.
func (c Color) Code() string {
	if int(c) < len(colorCodes) {
		return colorCodes[c]
	}
	return ColorReset
}

// cell is what one terminal cell shows.
type cell struct {
	ch    rune
	color Color
}

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// Drawing uses field coordinates with y pointing up; the canvas scales them to
// terminal pixels and flips them so the field's top edge is the first row.
//
// Render only writes cells that changed since the previous Render.
type Canvas struct {
	cols    int     // Terminal columns
	rows    int     // Terminal rows
	subRows int     // rows * 2
	pixels  []Color // Flat slice: [y * cols + x], y counted from the top

	prev  []cell // What the terminal currently shows, per cell
	dirty []bool // Cells overwritten by text since the last Render

	fieldW, fieldH float64
	scaleX, scaleY float64

	// Offset for centering the render area when terminal is larger than max resolution.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	forceRedraw bool
	out         strings.Builder // Reused render output
	numBuf      [20]byte        // Scratch buffer for allocation-free integer formatting
}

// NewCanvas creates a canvas of cols x rows terminal cells showing a field of
// fieldW x fieldH units.
func NewCanvas(cols, rows int, fieldW, fieldH float64) *Canvas {
	c := &Canvas{fieldW: fieldW, fieldH: fieldH}
	c.Resize(cols, rows)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping the field size.
// A size change forces the next Render to redraw every cell.
func (c *Canvas) Resize(cols, rows int) {
	cols = max(cols, 0)
	rows = max(rows, 0)

	if cols != c.cols || rows != c.rows || c.pixels == nil {
		c.cols = cols
		c.rows = rows
		c.subRows = rows * 2
		c.pixels = make([]Color, c.subRows*cols)
		c.prev = make([]cell, rows*cols)
		c.dirty = make([]bool, rows*cols)
		c.forceRedraw = true
	}

	c.scaleX = float64(cols) / c.fieldW
	c.scaleY = float64(c.subRows) / c.fieldH
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.forceRedraw = true
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int { return c.offsetCol }

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int { return c.offsetRow }

// Cols returns the canvas width in terminal columns.
func (c *Canvas) Cols() int { return c.cols }

// Rows returns the canvas height in terminal rows.
func (c *Canvas) Rows() int { return c.rows }

// Clear resets all pixels. The terminal is untouched until the next Render.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// ForceRedraw makes the next Render write every cell, e.g. after the
// terminal was cleared.
func (c *Canvas) ForceRedraw() {
	c.forceRedraw = true
}

// MarkTextDirty records that text was written over length cells starting at
// the 1-based canvas position (col, row), so the next Render repaints them.
func (c *Canvas) MarkTextDirty(col, row, length int) {
	if row < 1 || row > c.rows {
		return
	}
	start := max(col-1, 0)
	end := min(col-1+length, c.cols)
	for x := start; x < end; x++ {
		c.dirty[(row-1)*c.cols+x] = true
	}
}

// setPixel sets a pixel at terminal pixel coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, color Color) {
	if x >= 0 && x < c.cols && y >= 0 && y < c.subRows {
		c.pixels[y*c.cols+x] = color
	}
}

// pixelRect converts a field box to an inclusive pixel rectangle. Boxes too
// small to cover a pixel still cover one.
func (c *Canvas) pixelRect(x, y, halfW, halfH float64) (x0, y0, x1, y1 int) {
	x0 = int(math.Floor((x - halfW) * c.scaleX))
	x1 = int(math.Ceil((x+halfW)*c.scaleX)) - 1
	y0 = int(math.Floor((c.fieldH - (y + halfH)) * c.scaleY))
	y1 = int(math.Ceil((c.fieldH-(y-halfH))*c.scaleY)) - 1
	x1 = max(x1, x0)
	y1 = max(y1, y0)
	return x0, y0, x1, y1
}

// FillRect fills the field box centred at (x, y).
func (c *Canvas) FillRect(x, y, halfW, halfH float64, color Color) {
	x0, y0, x1, y1 := c.pixelRect(x, y, halfW, halfH)
	for py := y0; py <= y1; py++ {
		for px := x0; px <= x1; px++ {
			c.setPixel(px, py, color)
		}
	}
}

// FillMask stretches m over the field box centred at (x, y) and sets the
// pixels whose sample point falls on a set mask bit.
func (c *Canvas) FillMask(m *Mask, x, y, halfW, halfH float64, color Color) {
	x0, y0, x1, y1 := c.pixelRect(x, y, halfW, halfH)
	w := x1 - x0 + 1
	h := y1 - y0 + 1
	for py := y0; py <= y1; py++ {
		my := ((py-y0)*2 + 1) * m.h / (2 * h) // Sample at pixel centre
		for px := x0; px <= x1; px++ {
			mx := ((px-x0)*2 + 1) * m.w / (2 * w)
			if m.At(mx, my) {
				c.setPixel(px, py, color)
			}
		}
	}
}

// FieldToCell converts field coordinates to a 1-based canvas position (col, row).
// This is useful for placing text overlays next to canvas-drawn objects.
func (c *Canvas) FieldToCell(x, y float64) (col, row int) {
	px := int(math.Floor(x * c.scaleX))
	py := int(math.Floor((c.fieldH - y) * c.scaleY))
	return px + 1, py/2 + 1
}

// cellAt combines the two pixels of a terminal cell into a half-block.
// The upper pixel's color wins when both are set.
func (c *Canvas) cellAt(col, row int) cell {
	top := c.pixels[row*2*c.cols+col]
	bottom := c.pixels[(row*2+1)*c.cols+col]
	switch {
	case top != ColorNone && bottom != ColorNone:
		return cell{BlockFull, top}
	case top != ColorNone:
		return cell{BlockUpperHalf, top}
	case bottom != ColorNone:
		return cell{BlockLowerHalf, bottom}
	default:
		return cell{' ', ColorNone}
	}
}

// Render writes the cells that changed since the last Render to w.
func (c *Canvas) Render(w io.Writer) error {
	c.out.Reset()
	curColor := ColorNone
	nextCol, nextRow := -1, -1 // Where the terminal cursor sits after the last write

	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			i := row*c.cols + col
			next := c.cellAt(col, row)
			if !c.forceRedraw && !c.dirty[i] && c.prev[i] == next {
				continue
			}
			c.prev[i] = next
			c.dirty[i] = false

			if col != nextCol || row != nextRow {
				c.moveCursor(col+1+c.offsetCol, row+1+c.offsetRow)
			}
			if next.color != curColor {
				c.out.WriteString(next.color.Code())
				curColor = next.color
			}
			c.out.WriteRune(next.ch)
			nextCol, nextRow = col+1, row
		}
	}
	if curColor != ColorNone {
		c.out.WriteString(ColorReset)
	}
	c.forceRedraw = false

	if c.out.Len() == 0 {
		return nil
	}
	_, err := io.WriteString(w, c.out.String())
	return err
}

func (c *Canvas) moveCursor(col, row int) {
	c.out.WriteString("\033[")
	c.out.Write(strconv.AppendInt(c.numBuf[:0], int64(row), 10))
	c.out.WriteByte(';')
	c.out.Write(strconv.AppendInt(c.numBuf[:0], int64(col), 10))
	c.out.WriteByte('H')
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution. Horizontal bars need a row offset,
// vertical bars a column offset, corners both.
func (c *Canvas) RenderBorder(w io.Writer) error {
	hasSides := c.offsetCol >= 1
	hasBars := c.offsetRow >= 1
	if !hasSides && !hasBars {
		return nil
	}

	left := c.offsetCol
	right := c.offsetCol + c.cols + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.rows + 1
	bar := strings.Repeat("─", c.cols)

	c.out.Reset()
	if hasBars {
		if hasSides {
			c.moveCursor(left, top)
			c.out.WriteString("┌" + bar + "┐")
			c.moveCursor(left, bottom)
			c.out.WriteString("└" + bar + "┘")
		} else {
			c.moveCursor(left+1, top)
			c.out.WriteString(bar)
			c.moveCursor(left+1, bottom)
			c.out.WriteString(bar)
		}
	}
	if hasSides {
		for row := c.offsetRow + 1; row <= c.offsetRow+c.rows; row++ {
			c.moveCursor(left, row)
			c.out.WriteString("│")
			c.moveCursor(right, row)
			c.out.WriteString("│")
		}
	}

	_, err := io.WriteString(w, c.out.String())
	return err
}
