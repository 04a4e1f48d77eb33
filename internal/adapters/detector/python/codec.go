package python

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

const maxMessageSize = 64 << 20

// ready is the first message a worker writes, once its model is loaded.
type ready struct {
	Ready bool   `msgpack:"ready"`
	Model string `msgpack:"model"`
}

type request struct {
	FrameData []byte         `msgpack:"frame_data"`
	Width     int            `msgpack:"width"`
	Height    int            `msgpack:"height"`
	Meta      map[string]any `msgpack:"meta"`
}

type response struct {
	Detections []detection        `msgpack:"detections"`
	Error      string             `msgpack:"error"`
	Timing     map[string]float64 `msgpack:"timing"`
}

type detection struct {
	ClassID    int       `msgpack:"class_id"`
	Confidence float64   `msgpack:"confidence"`
	BBox       []float64 `msgpack:"bbox"`
	Label      string    `msgpack:"label"`
}

// writeMessage frames v as a 4-byte big-endian length followed by msgpack.
func writeMessage(w io.Writer, v any) error {
	payload, err := msgpack.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal msgpack message: %w", err)
	}

	lengthPrefix := make([]byte, 4)
	binary.BigEndian.PutUint32(lengthPrefix, uint32(len(payload)))

	if _, err := w.Write(lengthPrefix); err != nil {
		return fmt.Errorf("write length prefix: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("write msgpack payload: %w", err)
	}

	return nil
}

func readMessage(r io.Reader, v any) error {
	lengthBuf := make([]byte, 4)
	if _, err := io.ReadFull(r, lengthBuf); err != nil {
		return fmt.Errorf("read length prefix: %w", err)
	}

	length := binary.BigEndian.Uint32(lengthBuf)
	if length > maxMessageSize {
		return fmt.Errorf("message of %d bytes exceeds limit", length)
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return fmt.Errorf("read msgpack payload: %w", err)
	}

	if err := msgpack.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("unmarshal msgpack message: %w", err)
	}

	return nil
}
