package utils

const (
	ErrorColor        = 0xFF0000
	EmbedDefaultColor = 0x2B2D31
)

func Ptr[T any](v T) *T {
	return &v
}
