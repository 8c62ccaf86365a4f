// Package audiofile loads audio files as mono signals and writes signals as
// PCM WAV files.
//
// WAV decoding and encoding use go-audio, MP3 uses go-mp3 and Ogg Vorbis
// uses oggvorbis. Multi-channel sources are downmixed by averaging the
// channels of each frame.
package audiofile
