package imageprocessor

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxImageBytes - предел декодированного размера аватара
const MaxImageBytes = 2 * 1024 * 1024

var (
	ErrInvalidFormat = errors.New("invalid image format")
	ErrTooLarge      = errors.New("image too large")
)

// supported: подтип из data URL -> MIME, который должен дать сниффинг
var supported = map[string]string{
	"png":  "image/png",
	"jpeg": "image/jpeg",
	"jpg":  "image/jpeg",
	"gif":  "image/gif",
	"webp": "image/webp",
}

// ImageInfo - результат проверки data URL
type ImageInfo struct {
	MIME   string
	Size   int
	Width  int
	Height int
}

// DecodedSize считает размер по длине base64 без декодирования: len*3/4 - padding
func DecodedSize(payload string) int {
	padding := 0
	if strings.HasSuffix(payload, "==") {
		padding = 2
	} else if strings.HasSuffix(payload, "=") {
		padding = 1
	}
	return len(payload)*3/4 - padding
}

// ValidateDataURL проверяет строку вида data:image/<png|jpeg|gif|webp>;base64,<payload>.
// Размер проверяется до декодирования, тип - по содержимому, а не только по заголовку.
func ValidateDataURL(dataURL string) (*ImageInfo, error) {
	rest, ok := strings.CutPrefix(dataURL, "data:image/")
	if !ok {
		return nil, ErrInvalidFormat
	}
	subtype, payload, ok := strings.Cut(rest, ";base64,")
	if !ok || payload == "" {
		return nil, ErrInvalidFormat
	}

	expected, ok := supported[strings.ToLower(subtype)]
	if !ok {
		return nil, ErrInvalidFormat
	}

	size := DecodedSize(payload)
	if size > MaxImageBytes {
		return nil, ErrTooLarge
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrInvalidFormat
	}

	mtype := mimetype.Detect(raw)
	if !mtype.Is(expected) {
		return nil, ErrInvalidFormat
	}

	info := &ImageInfo{MIME: expected, Size: len(raw)}

	// webp стандартная библиотека не декодирует, для него размеры не заполняем
	if expected != "image/webp" {
		cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
		if err != nil {
			return nil, ErrInvalidFormat
		}
		info.Width, info.Height = cfg.Width, cfg.Height
	}

	return info, nil
}
