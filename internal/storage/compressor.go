package storage

import (
	"bytes"
	"errors"
	"fmt"
	"github.com/klauspost/compress/zstd"
	"smokeless/internal/storage/interfaces"
)

// ErrNotCompressed is returned by Decompress for input without a zstd frame
// header, such as a store file edited by hand.
var ErrNotCompressed = errors.New("not a zstd frame")

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// ZstdCompressor wraps the store file. Store files are small, so one
// encoder and one single-threaded decoder are shared by all writes.
type ZstdCompressor struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func (z *ZstdCompressor) Compress(val []byte) ([]byte, error) {
	return z.encoder.EncodeAll(val, nil), nil
}

func (z *ZstdCompressor) Decompress(val []byte) ([]byte, error) {
	if len(val) == 0 {
		return nil, nil
	}
	if !bytes.HasPrefix(val, zstdMagic) {
		return nil, ErrNotCompressed
	}
	out, err := z.decoder.DecodeAll(val, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}
	return out, nil
}

func NewZstdCompressor() (interfaces.CompressorInterface, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression), zstd.WithEncoderCRC(true))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	return &ZstdCompressor{encoder: encoder, decoder: decoder}, nil
}
