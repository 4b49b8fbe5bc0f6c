package serial

import "io"

// Device is a device that can be attached to the Controller.
type Device interface {
	Receive(bool)
	Send() bool
}

// nullDevice is an implementation of Device that
// simply returns true on Send and does nothing on
// Receive. This is most commonly used for when no
// device is attached to the Controller.
type nullDevice struct{}

// Receive does nothing.
func (n nullDevice) Receive(bool) {}

// Send always returns true.
func (n nullDevice) Send() bool { return true }

// Writer is a Device that writes every byte it receives to an
// io.Writer. Test ROMs use it to report their results.
type Writer struct {
	w     io.Writer
	data  uint8
	count uint8
	err   error
}

// NewWriter returns a Writer writing to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Receive shifts in a bit, most significant first.
func (d *Writer) Receive(bit bool) {
	d.data <<= 1
	if bit {
		d.data |= 1
	}
	if d.count++; d.count == 8 {
		if d.err == nil {
			_, d.err = d.w.Write([]byte{d.data})
		}
		d.data, d.count = 0, 0
	}
}

// Err returns the first error returned by the underlying io.Writer.
// Bytes received after the error are discarded.
func (d *Writer) Err() error {
	return d.err
}

// Send always returns true, as nothing is sent back.
func (d *Writer) Send() bool { return true }
