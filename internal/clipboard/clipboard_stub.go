//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package clipboard

import "image"

func WriteImage(image.Image) error { return ErrUnsupported }

func ReadImage() (image.Image, error) { return nil, ErrUnsupported }

func WriteText(string) error { return ErrUnsupported }

func ReadText() (string, error) { return "", ErrUnsupported }

func writeDrawing([]byte) error { return ErrUnsupported }

func readDrawing() ([]byte, error) { return nil, ErrUnsupported }
