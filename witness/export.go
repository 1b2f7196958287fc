package witness

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/ericlevine/zxwitness/bitutil"
	"github.com/ericlevine/zxwitness/internal/log"
)

// ErrMalformedRecord is returned when a serialized capture is inconsistent.
var ErrMalformedRecord = errors.New("witness: malformed record")

// Luminances is a row-major luminance buffer that encodes to JSON as a list
// of integers rather than base64.
type Luminances []uint8

// MarshalJSON encodes l as an array of numbers.
func (l Luminances) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	out := make([]byte, 0, 4*len(l)+2)
	out = append(out, '[')
	for i, v := range l {
		if i > 0 {
			out = append(out, ',')
		}
		out = strconv.AppendUint(out, uint64(v), 10)
	}
	return append(out, ']'), nil
}

// UnmarshalJSON decodes an array of numbers in [0, 255].
func (l *Luminances) UnmarshalJSON(data []byte) error {
	var values []int
	if err := json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("%w: image: %v", ErrMalformedRecord, err)
	}
	out := make(Luminances, len(values))
	for i, v := range values {
		if v < 0 || v > 255 {
			return fmt.Errorf("%w: image[%d] = %d is not a luminance value", ErrMalformedRecord, i, v)
		}
		out[i] = uint8(v)
	}
	*l = out
	return nil
}

// Record is the export shape of a Capture. Image holds one luminance value and
// BinarizedImage one boolean (true = black) per pixel, both row-major.
type Record struct {
	Width          int        `json:"width"`
	Height         int        `json:"height"`
	Image          Luminances `json:"image"`
	BinarizedImage []bool     `json:"binarized_image"`
}

// Record returns the export record for c.
func (c *Capture) Record() Record {
	return Record{
		Width:          c.width,
		Height:         c.height,
		Image:          c.Image(),
		BinarizedImage: c.binary.Bools(),
	}
}

// MarshalJSON encodes c as its export record.
func (c *Capture) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Record())
}

// UnmarshalJSON decodes an export record, validating its sizes.
func (c *Capture) UnmarshalJSON(data []byte) error {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		if errors.Is(err, ErrMalformedRecord) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	decoded, err := FromRecord(r)
	if err != nil {
		return err
	}
	*c = *decoded
	return nil
}

// FromRecord rebuilds a Capture from an export record. Unlike New it reports
// inconsistent input as ErrMalformedRecord, since records come from outside
// the process.
func FromRecord(r Record) (*Capture, error) {
	if r.Width < 1 || r.Height < 1 || r.Width > math.MaxInt/r.Height {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrMalformedRecord, r.Width, r.Height)
	}
	n := r.Width * r.Height
	if len(r.Image) != n {
		return nil, fmt.Errorf("%w: image has %d values, want %d", ErrMalformedRecord, len(r.Image), n)
	}
	if len(r.BinarizedImage) != n {
		return nil, fmt.Errorf("%w: binarized_image has %d values, want %d", ErrMalformedRecord, len(r.BinarizedImage), n)
	}
	return New(r.Width, r.Height, r.Image, bitutil.ParseBools(r.BinarizedImage, r.Width, r.Height)), nil
}

// SaveError reports a failure to write or read a capture file.
type SaveError struct {
	Op   string
	Path string
	Err  error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("witness: %s %q: %v", e.Op, e.Path, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }

// Save writes c to path as indented JSON. Failures are returned as *SaveError.
func (c *Capture) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return &SaveError{Op: "encode", Path: path, Err: err}
	}
	f, err := os.Create(path)
	if err != nil {
		return &SaveError{Op: "create", Path: path, Err: err}
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return &SaveError{Op: "write", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &SaveError{Op: "close", Path: path, Err: err}
	}
	log.Debug("witness saved", "path", path, "width", c.width, "height", c.height, "bytes", len(data))
	return nil
}

// Load reads a capture previously written by Save.
func Load(path string) (*Capture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &SaveError{Op: "read", Path: path, Err: err}
	}
	c := new(Capture)
	if err := json.Unmarshal(data, c); err != nil {
		return nil, &SaveError{Op: "decode", Path: path, Err: err}
	}
	return c, nil
}
