// Package form reads image uploads from multipart forms.
package form

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"

	"github.com/disintegration/imaging"
)

const (
	magicNumberSeek = 512
	jpegQuality     = 85
)

type imageType struct {
	suffix string
	format imaging.Format
}

// allowedImageTypes lists the MIME types we accept. Every entry must be
// decodable so dimensions can be recorded.
var allowedImageTypes = map[string]imageType{
	"image/jpeg": {suffix: ".jpg", format: imaging.JPEG},
	"image/png":  {suffix: ".png", format: imaging.PNG},
	"image/gif":  {suffix: ".gif", format: imaging.GIF},
}

var (
	ErrUnsupportedMimeType = errors.New("unsupported mime type")
	ErrNoImageUploaded     = errors.New("image not uploaded")
	ErrImageTooLarge       = errors.New("image too large")
)

type File struct {
	Size     int64
	Data     []byte
	Suffix   string
	MimeType string
	Width    int
	Height   int
}

func ReadFile(file io.ReadCloser) (*File, error) {
	data, err := io.ReadAll(file)
	defer func() { _ = file.Close() }()
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrNoImageUploaded
	}

	contentType := http.DetectContentType(data[:min(len(data), magicNumberSeek)])
	kind, ok := allowedImageTypes[contentType]
	if !ok {
		return nil, fmt.Errorf("mime type %q: %w", contentType, ErrUnsupportedMimeType)
	}

	return &File{
		Size:     int64(len(data)),
		MimeType: contentType,
		Suffix:   kind.suffix,
		Data:     data,
	}, nil
}

// ReadImage reads an upload, records its dimensions and downscales it to at
// most maxWidth pixels wide. A maxWidth of zero keeps the original size.
func ReadImage(file io.ReadCloser, maxWidth int) (*File, error) {
	f, err := ReadFile(file)
	if err != nil {
		return nil, err
	}

	img, err := imaging.Decode(bytes.NewReader(f.Data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	if maxWidth <= 0 || img.Bounds().Dx() <= maxWidth {
		f.Width, f.Height = img.Bounds().Dx(), img.Bounds().Dy()
		return f, nil
	}

	return Downscale(f, img, maxWidth)
}

// Downscale resizes img to width, keeping the aspect ratio, and re-encodes
// it in the format of f.
func Downscale(f *File, img image.Image, width int) (*File, error) {
	resized := imaging.Resize(img, width, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, allowedImageTypes[f.MimeType].format,
		imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}

	return &File{
		Size:     int64(buf.Len()),
		Data:     buf.Bytes(),
		Suffix:   f.Suffix,
		MimeType: f.MimeType,
		Width:    resized.Bounds().Dx(),
		Height:   resized.Bounds().Dy(),
	}, nil
}

// FormImage reads the image in field of a multipart request.
func FormImage(r *http.Request, field string, maxBytes int64, maxWidth int) (*File, error) {
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		return nil, fmt.Errorf("parsing multipart form: %w", err)
	}
	upload, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, ErrNoImageUploaded
	} else if err != nil {
		return nil, fmt.Errorf("reading form file: %w", err)
	}
	if header.Size > maxBytes {
		_ = upload.Close()
		return nil, ErrImageTooLarge
	}
	return ReadImage(upload, maxWidth)
}
