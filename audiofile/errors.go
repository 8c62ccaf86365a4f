package audiofile

import "errors"

var (
	ErrUnsupportedFormat   = errors.New("audiofile: unsupported format")
	ErrInvalidWAV          = errors.New("audiofile: invalid WAV file")
	ErrUnsupportedBitDepth = errors.New("audiofile: unsupported bit depth")
	ErrInvalidChannels     = errors.New("audiofile: invalid channel layout")
	ErrEmptyAudio          = errors.New("audiofile: no audio samples")
)
