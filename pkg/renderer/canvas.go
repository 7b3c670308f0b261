package renderer

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ErrPixelOutOfRange is returned when a pixel coordinate falls outside the canvas
var ErrPixelOutOfRange = errors.New("pixel out of range")

// ppmLineLimit is the maximum length of a line of PPM pixel data
const ppmLineLimit = 70

// Canvas is a width x height grid of colors stored row-major.
// Concurrent writes to distinct pixels are safe.
type Canvas struct {
	width, height int
	pixels        []core.Color
}

// NewCanvas creates a black canvas
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		width:  width,
		height: height,
		pixels: make([]core.Color, width*height),
	}
}

// Width returns the canvas width in pixels
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in pixels
func (c *Canvas) Height() int { return c.height }

// Bounds returns the canvas rectangle
func (c *Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.width, c.height)
}

func (c *Canvas) index(x, y int) (int, error) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return 0, fmt.Errorf("%w: (%d, %d) on %dx%d canvas", ErrPixelOutOfRange, x, y, c.width, c.height)
	}
	return y*c.width + x, nil
}

// WritePixel sets the color at (x, y)
func (c *Canvas) WritePixel(x, y int, color core.Color) error {
	i, err := c.index(x, y)
	if err != nil {
		return err
	}
	c.pixels[i] = color
	return nil
}

// PixelAt returns the color at (x, y)
func (c *Canvas) PixelAt(x, y int) (core.Color, error) {
	i, err := c.index(x, y)
	if err != nil {
		return core.Black, err
	}
	return c.pixels[i], nil
}

// Fill sets every pixel to color
func (c *Canvas) Fill(color core.Color) {
	for i := range c.pixels {
		c.pixels[i] = color
	}
}

// Image converts the canvas to an 8-bit RGBA image
func (c *Canvas) Image() *image.RGBA {
	img := image.NewRGBA(c.Bounds())
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			img.SetRGBA(x, y, c.pixels[y*c.width+x].RGBA())
		}
	}
	return img
}

// WritePNG encodes the canvas as a PNG image
func (c *Canvas) WritePNG(w io.Writer) error {
	if err := png.Encode(w, c.Image()); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// WritePPM writes the canvas as a plain (P3) PPM file. Components are clamped
// to 0-255, each row starts on a new line and no line exceeds 70 characters.
func (c *Canvas) WritePPM(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P3\n%d %d\n255\n", c.width, c.height)

	for y := 0; y < c.height; y++ {
		lineLen := 0
		for x := 0; x < c.width; x++ {
			r, g, b := c.pixels[y*c.width+x].Bytes()
			for _, component := range [3]uint8{r, g, b} {
				token := strconv.Itoa(int(component))
				if lineLen > 0 && lineLen+1+len(token) > ppmLineLimit {
					bw.WriteByte('\n')
					lineLen = 0
				}
				if lineLen > 0 {
					bw.WriteByte(' ')
					lineLen++
				}
				bw.WriteString(token)
				lineLen += len(token)
			}
		}
		bw.WriteByte('\n')
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write PPM: %w", err)
	}
	return nil
}
