// Package thumbnail строит превью фотографий.
package thumbnail

import (
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
)

const (
	DefaultWidth   = 300
	DefaultHeight  = 300
	DefaultQuality = 80
)

// Generator вписывает изображение в рамку width x height без увеличения
// и кодирует результат в JPEG
type Generator struct {
	width   int
	height  int
	quality int
}

func New() *Generator {
	return &Generator{width: DefaultWidth, height: DefaultHeight, quality: DefaultQuality}
}

// Ext - расширение файлов, которые пишет Generate
func (g *Generator) Ext() string {
	return ".jpg"
}

func (g *Generator) Generate(dst io.Writer, src io.Reader) error {
	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}

	// Fit не увеличивает изображения, которые уже помещаются в рамку
	thumb := imaging.Fit(img, g.width, g.height, imaging.Lanczos)

	if err := imaging.Encode(dst, flatten(thumb), imaging.JPEG, imaging.JPEGQuality(g.quality)); err != nil {
		return fmt.Errorf("encode thumbnail: %w", err)
	}
	return nil
}

// flatten кладет изображение на белый фон: в JPEG нет альфа-канала
func flatten(img image.Image) image.Image {
	b := img.Bounds()
	bg := imaging.New(b.Dx(), b.Dy(), image.White)
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
}
