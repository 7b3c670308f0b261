package renderer

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Camera maps pixels on a canvas one unit in front of the eye to primary rays
type Camera struct {
	HSize       int     // canvas width in pixels
	VSize       int     // canvas height in pixels
	FieldOfView float64 // radians

	transform  core.Transform
	halfWidth  float64
	halfHeight float64
	pixelSize  float64
}

// NewCamera creates a camera looking down -z from the origin
func NewCamera(hsize, vsize int, fieldOfView float64) *Camera {
	c := &Camera{
		HSize:       hsize,
		VSize:       vsize,
		FieldOfView: fieldOfView,
		transform:   core.IdentityTransform(),
	}
	c.computePixelSize()
	return c
}

func (c *Camera) computePixelSize() {
	halfView := math.Tan(c.FieldOfView / 2)
	aspect := float64(c.HSize) / float64(c.VSize)

	if aspect >= 1 {
		c.halfWidth = halfView
		c.halfHeight = halfView / aspect
	} else {
		c.halfWidth = halfView * aspect
		c.halfHeight = halfView
	}
	c.pixelSize = c.halfWidth * 2 / float64(c.HSize)
}

// PixelSize returns the world-space size of one pixel on the canvas plane
func (c *Camera) PixelSize() float64 {
	return c.pixelSize
}

// Transform returns the view transform
func (c *Camera) Transform() core.Transform {
	return c.transform
}

// SetTransform sets the view transform, typically core.ViewTransform
func (c *Camera) SetTransform(t core.Transform) {
	c.transform = t
}

// RayForPixel returns the ray from the eye through the center of pixel (px, py)
func (c *Camera) RayForPixel(px, py int) core.Ray {
	xOffset := (float64(px) + 0.5) * c.pixelSize
	yOffset := (float64(py) + 0.5) * c.pixelSize

	// the camera looks toward -z, so +x is to the left
	worldX := c.halfWidth - xOffset
	worldY := c.halfHeight - yOffset

	inv := c.transform.Inverse()
	pixel := inv.MulPoint(core.NewPoint(worldX, worldY, -1))
	origin := inv.MulPoint(core.Origin)
	direction := pixel.Subtract(origin).Normalize()

	return core.NewRay(origin, direction)
}
