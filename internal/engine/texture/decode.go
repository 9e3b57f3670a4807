package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
)

// LoadFile decodes a PNG or TGA file into a texture.
func LoadFile(path string) (*Texture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading texture %s: %w", path, err)
	}

	var img image.Image
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		img, err = png.Decode(bytes.NewReader(data))
	case ".tga":
		img, err = DecodeTGA(data)
	default:
		return nil, fmt.Errorf("unsupported texture format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("decoding texture %s: %w", path, err)
	}

	return FromImage(img), nil
}

// Resize returns a bilinearly resampled copy of the texture.
func (t *Texture) Resize(width, height int) *Texture {
	src := t.ToImage()
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	out := FromImage(dst)
	out.Address = t.Address
	return out
}

// DecodeTGA decodes a TGA image. Supports uncompressed true-color (type 2)
// and RLE compressed (type 10) files, the formats grass control maps are
// commonly authored in.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < 18 {
		return nil, fmt.Errorf("TGA data too short")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("color-mapped TGA not supported")
	}
	if imageType != 2 && imageType != 10 {
		return nil, fmt.Errorf("unsupported TGA type %d (only uncompressed/RLE true-color supported)", imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("unsupported TGA bit depth %d (only 24/32 supported)", bpp)
	}

	offset := 18 + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("TGA data truncated")
	}
	pixelData := data[offset:]

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	bytesPerPixel := bpp / 8

	// Bit 5 of the descriptor means top-to-bottom row order.
	topToBottom := (descriptor & 0x20) != 0

	if imageType == 2 {
		expectedSize := width * height * bytesPerPixel
		if len(pixelData) < expectedSize {
			return nil, fmt.Errorf("TGA pixel data truncated")
		}

		for y := 0; y < height; y++ {
			destY := y
			if !topToBottom {
				destY = height - 1 - y
			}
			for x := 0; x < width; x++ {
				i := (y*width + x) * bytesPerPixel
				img.SetRGBA(x, destY, tgaPixel(pixelData[i:], bytesPerPixel))
			}
		}
		return img, nil
	}

	if err := decodeTGARLE(img, pixelData, width, height, bytesPerPixel, topToBottom); err != nil {
		return nil, err
	}
	return img, nil
}

// tgaPixel reads one BGR(A) pixel.
func tgaPixel(data []byte, bytesPerPixel int) color.RGBA {
	c := color.RGBA{B: data[0], G: data[1], R: data[2], A: 255}
	if bytesPerPixel == 4 {
		c.A = data[3]
	}
	return c
}

// decodeTGARLE decodes RLE-compressed TGA pixel data into an image.
func decodeTGARLE(img *image.RGBA, pixelData []byte, width, height, bytesPerPixel int, topToBottom bool) error {
	pixelCount := width * height
	pixelIdx := 0
	dataIdx := 0

	put := func(c color.RGBA) {
		x := pixelIdx % width
		y := pixelIdx / width
		destY := y
		if !topToBottom {
			destY = height - 1 - y
		}
		img.SetRGBA(x, destY, c)
		pixelIdx++
	}

	for pixelIdx < pixelCount && dataIdx < len(pixelData) {
		packet := pixelData[dataIdx]
		dataIdx++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			// RLE packet: repeat a single pixel.
			if dataIdx+bytesPerPixel > len(pixelData) {
				break
			}
			c := tgaPixel(pixelData[dataIdx:], bytesPerPixel)
			dataIdx += bytesPerPixel
			for i := 0; i < count && pixelIdx < pixelCount; i++ {
				put(c)
			}
		} else {
			// Raw packet: read count literal pixels.
			for i := 0; i < count && pixelIdx < pixelCount; i++ {
				if dataIdx+bytesPerPixel > len(pixelData) {
					return nil
				}
				put(tgaPixel(pixelData[dataIdx:], bytesPerPixel))
				dataIdx += bytesPerPixel
			}
		}
	}

	return nil
}
