package ports

// AvatarNormalizer re-encodes an uploaded image into the canonical
// avatar format (fixed-size PNG). A decode failure means the upload is
// not an image the service accepts.
type AvatarNormalizer interface {
	Normalize(data []byte) ([]byte, error)
}
