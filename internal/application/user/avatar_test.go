package user

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domerrors "github.com/juliezimmer/task-manager-api/internal/domain/errors"
	"github.com/juliezimmer/task-manager-api/internal/infrastructure/images"
	"github.com/juliezimmer/task-manager-api/internal/infrastructure/persistence/memory"
)

// spyNormalizer records whether it was ever reached.
type spyNormalizer struct {
	called bool
	out    []byte
	err    error
}

func (s *spyNormalizer) Normalize(data []byte) ([]byte, error) {
	s.called = true
	return s.out, s.err
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestSetAvatarRejectsExtensionBeforeDecoding(t *testing.T) {
	repo := memory.NewUserRepository()
	spy := &spyNormalizer{}
	uc := NewSetAvatar(repo, spy)
	signUp := newSignUp(repo, &spyEnqueuer{}, 10)

	created, err := signUp.Execute(context.Background(), SignUpInput{Name: "Julie", Email: "julie@example.com", Password: "red12345"})
	require.NoError(t, err)

	err = uc.Execute(context.Background(), created.User.ID, "photo.gif", []byte("gif bytes"))
	_, ok := domerrors.AsValidation(err)
	require.True(t, ok)
	assert.False(t, spy.called, "disallowed extensions never reach the decoder")
}

func TestSetAvatarRejectsUndecodableData(t *testing.T) {
	repo := memory.NewUserRepository()
	spy := &spyNormalizer{err: errors.New("decode failed")}
	uc := NewSetAvatar(repo, spy)
	signUp := newSignUp(repo, &spyEnqueuer{}, 10)

	created, err := signUp.Execute(context.Background(), SignUpInput{Name: "Julie", Email: "julie@example.com", Password: "red12345"})
	require.NoError(t, err)

	err = uc.Execute(context.Background(), created.User.ID, "photo.png", []byte("not an image"))
	_, ok := domerrors.AsValidation(err)
	require.True(t, ok)
}

func TestAvatarLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()
	signUp := newSignUp(repo, &spyEnqueuer{}, 10)
	set := NewSetAvatar(repo, images.NewNormalizer(250))
	get := NewGetAvatar(repo)
	clear := NewClearAvatar(repo)

	created, err := signUp.Execute(ctx, SignUpInput{Name: "Julie", Email: "julie@example.com", Password: "red12345"})
	require.NoError(t, err)

	_, err = get.Execute(ctx, created.User.ID)
	require.ErrorIs(t, err, domerrors.ErrNotFound, "no avatar set yet")

	require.NoError(t, set.Execute(ctx, created.User.ID, "photo.png", pngBytes(t, 500, 400)))

	stored, err := get.Execute(ctx, created.User.ID)
	require.NoError(t, err)
	img, format, err := image.Decode(bytes.NewReader(stored))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 250, img.Bounds().Dx())
	assert.Equal(t, 250, img.Bounds().Dy())

	require.NoError(t, clear.Execute(ctx, created.User.ID))
	_, err = get.Execute(ctx, created.User.ID)
	require.ErrorIs(t, err, domerrors.ErrNotFound)
}
