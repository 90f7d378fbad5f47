package game

// Canvas dimensions and the blank fill value are part of the client
// contract: 200x150, 4 channels per pixel, opaque white.
const (
	CanvasWidth  = 200
	CanvasHeight = 150
	canvasDepth  = 4
	blankValue   = 255
)

// Canvas is the authoritative drawing buffer for the active round.
type Canvas struct {
	Width  int
	Height int
	Pixels []int
}

func NewCanvas() *Canvas {
	c := &Canvas{Width: CanvasWidth, Height: CanvasHeight}
	c.Reset()
	return c
}

// Reset fills the buffer with the documented blank default.
func (c *Canvas) Reset() {
	c.Pixels = make([]int, c.Width*c.Height*canvasDepth)
	for i := range c.Pixels {
		c.Pixels[i] = blankValue
	}
}

// IsBlank reports whether the buffer equals the blank default.
func (c *Canvas) IsBlank() bool {
	for _, v := range c.Pixels {
		if v != blankValue {
			return false
		}
	}
	return true
}

// Apply replaces the buffer with a drawer-issued update. Dimensions must
// match the canvas exactly and every channel value must fit in a byte;
// anything else fails with ErrInvalidDraw and leaves the buffer untouched.
func (c *Canvas) Apply(width, height int, pixels []int) error {
	if width != c.Width || height != c.Height {
		return ErrInvalidDraw
	}
	if len(pixels) != width*height*canvasDepth {
		return ErrInvalidDraw
	}
	for _, v := range pixels {
		if v < 0 || v > 255 {
			return ErrInvalidDraw
		}
	}
	copy(c.Pixels, pixels)
	return nil
}
