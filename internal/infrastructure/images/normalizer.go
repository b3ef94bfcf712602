package images

import (
	"bytes"

	"github.com/disintegration/imaging"

	"github.com/juliezimmer/task-manager-api/internal/application/ports"
)

// DefaultAvatarSize is the square edge every stored avatar is resized to.
const DefaultAvatarSize = 250

// Normalizer implements ports.AvatarNormalizer: decode whatever image
// format arrived, crop-fill to a square and re-encode as PNG.
type Normalizer struct {
	size int
}

func NewNormalizer(size int) *Normalizer {
	if size <= 0 {
		size = DefaultAvatarSize
	}
	return &Normalizer{size: size}
}

func (n *Normalizer) Normalize(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, err
	}
	img = imaging.Fill(img, n.size, n.size, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var _ ports.AvatarNormalizer = (*Normalizer)(nil)
