package audio

import (
	"encoding/binary"
	"io"
	"time"

	"github.com/gopxl/beep"
)

const bufferDuration = 100 * time.Millisecond

// PCMReader encodes a beep stream as interleaved signed 16-bit
// little-endian stereo, the format ebiten's audio players read.
type PCMReader struct {
	streamer beep.Streamer
	buf      [][2]float64
}

func NewPCMReader(s beep.Streamer) *PCMReader {
	return &PCMReader{streamer: s}
}

func (r *PCMReader) Read(p []byte) (int, error) {
	frames := len(p) / 4
	if frames == 0 {
		return 0, nil
	}

	if cap(r.buf) < frames {
		r.buf = make([][2]float64, frames)
	}
	buf := r.buf[:frames]

	n, ok := r.streamer.Stream(buf)
	if n == 0 && !ok {
		if err := r.streamer.Err(); err != nil {
			return 0, err
		}
		return 0, io.EOF
	}

	for i := range n {
		for ch := range 2 {
			binary.LittleEndian.PutUint16(p[i*4+ch*2:], uint16(toInt16(buf[i][ch])))
		}
	}
	return n * 4, nil
}

func toInt16(v float64) int16 {
	v = min(max(v, -1), 1)
	return int16(v * 32767)
}
