package images

import "bytes"

// Format describes a sniffed image format.
type Format struct {
	Extension   string
	ContentType string
}

// Magic-number signatures. URL extensions lie often enough that only the
// bytes are trusted.
var (
	pngMagic  = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}
	jpegMagic = []byte{0xFF, 0xD8, 0xFF}
	gif87a    = []byte("GIF87a")
	gif89a    = []byte("GIF89a")
	riffMagic = []byte("RIFF")
	webpTag   = []byte("WEBP")
)

// SniffFormat identifies the true image format from magic bytes. Returns
// false for anything that is not PNG, JPEG, GIF or WEBP.
func SniffFormat(data []byte) (Format, bool) {
	switch {
	case bytes.HasPrefix(data, pngMagic):
		return Format{Extension: "png", ContentType: "image/png"}, true
	case bytes.HasPrefix(data, jpegMagic):
		return Format{Extension: "jpg", ContentType: "image/jpeg"}, true
	case bytes.HasPrefix(data, gif87a) || bytes.HasPrefix(data, gif89a):
		return Format{Extension: "gif", ContentType: "image/gif"}, true
	case len(data) >= 12 && bytes.HasPrefix(data, riffMagic) && bytes.Equal(data[8:12], webpTag):
		return Format{Extension: "webp", ContentType: "image/webp"}, true
	default:
		return Format{}, false
	}
}
