package utils

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"image"
)

// GenerateImageHash returns a hex SHA-256 over the image's pixel data.
// Two renders hash equal exactly when every pixel matches.
func GenerateImageHash(img image.Image) (string, error) {
	hasher := sha256.New()
	bounds := img.Bounds()
	var px [8]byte
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			binary.BigEndian.PutUint16(px[0:], uint16(r))
			binary.BigEndian.PutUint16(px[2:], uint16(g))
			binary.BigEndian.PutUint16(px[4:], uint16(b))
			binary.BigEndian.PutUint16(px[6:], uint16(a))
			hasher.Write(px[:])
		}
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// nearWhitePixel is 0.95 of the 16-bit channel scale. Pixels with every
// color channel above it count as background, matching the visibility
// threshold used when inspecting page drawings.
const nearWhitePixel = 62258

// InkBounds returns the bounding box of all pixels darker than near-white
// in at least one channel. The zero rectangle means a blank image.
func InkBounds(img image.Image) image.Rectangle {
	bounds := img.Bounds()
	var ink image.Rectangle
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if r > nearWhitePixel && g > nearWhitePixel && b > nearWhitePixel {
				continue
			}
			px := image.Rect(x, y, x+1, y+1)
			if ink.Empty() {
				ink = px
			} else {
				ink = ink.Union(px)
			}
		}
	}

	return ink
}
