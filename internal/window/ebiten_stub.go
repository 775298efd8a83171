//go:build !cgo

package window

import "errors"

// RunEbiten reports that the ebiten backend needs a cgo build.
func RunEbiten(c *Controller) error {
	return errors.New("ebiten backend requires cgo")
}
