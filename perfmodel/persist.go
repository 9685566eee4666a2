package perfmodel

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/Prophetizo/vectorwave/vwerr"
)

// magic identifies a perfmodel blob; version allows the layout to change
// without silently misreading an older file. Framed the way the teacher's
// jpeg2000 encoder frames codestream markers: a fixed-width big-endian
// header followed by fixed-width records.
var magic = [4]byte{'V', 'W', 'P', 'M'}

const formatVersion uint32 = 1

// Save serializes the model's coefficients and platform factor to w.
func Save(w io.Writer, m *Model) error {
	const op = "perfmodel.Save"
	if err := binary.Write(w, binary.BigEndian, magic); err != nil {
		return vwerr.Wrap(err, vwerr.StateError, op, "write magic failed")
	}
	if err := binary.Write(w, binary.BigEndian, formatVersion); err != nil {
		return vwerr.Wrap(err, vwerr.StateError, op, "write version failed")
	}
	if err := binary.Write(w, binary.BigEndian, m.PlatformFactor); err != nil {
		return vwerr.Wrap(err, vwerr.StateError, op, "write platform factor failed")
	}
	for _, b := range m.buckets {
		rec := bucketRecord{
			A: b.coeffs.a, B: b.coeffs.b, C: b.coeffs.c,
			MeasurementCount: int64(b.measurementCnt),
			LastCalibration:  b.lastCalibration,
		}
		if err := binary.Write(w, binary.BigEndian, rec); err != nil {
			return vwerr.Wrap(err, vwerr.StateError, op, "write bucket record failed")
		}
	}
	return nil
}

// Load deserializes a model previously written by Save.
func Load(r io.Reader) (*Model, error) {
	const op = "perfmodel.Load"
	var gotMagic [4]byte
	if err := binary.Read(r, binary.BigEndian, &gotMagic); err != nil {
		return nil, vwerr.Wrap(err, vwerr.StateError, op, "read magic failed")
	}
	if !bytes.Equal(gotMagic[:], magic[:]) {
		return nil, vwerr.New(vwerr.StateError, op, "bad magic header")
	}
	var version uint32
	if err := binary.Read(r, binary.BigEndian, &version); err != nil {
		return nil, vwerr.Wrap(err, vwerr.StateError, op, "read version failed")
	}
	if version != formatVersion {
		return nil, vwerr.New(vwerr.StateError, op, "unsupported perfmodel format version")
	}

	m := New()
	if err := binary.Read(r, binary.BigEndian, &m.PlatformFactor); err != nil {
		return nil, vwerr.Wrap(err, vwerr.StateError, op, "read platform factor failed")
	}
	for i := range m.buckets {
		var rec bucketRecord
		if err := binary.Read(r, binary.BigEndian, &rec); err != nil {
			return nil, vwerr.Wrap(err, vwerr.StateError, op, "read bucket record failed")
		}
		m.buckets[i].coeffs = coeffs{a: rec.A, b: rec.B, c: rec.C}
		m.buckets[i].measurementCnt = int(rec.MeasurementCount)
		m.buckets[i].lastCalibration = rec.LastCalibration
		m.buckets[i].calibrated = rec.MeasurementCount > 0
	}
	return m, nil
}

// bucketRecord is the fixed-width on-disk representation of one bucket's
// persisted state. recentErrs is intentionally not persisted: it is a
// rolling diagnostic window, cheaply rebuilt from the next
// recentErrorWindow observations.
type bucketRecord struct {
	A, B, C          float64
	MeasurementCount int64
	LastCalibration  int64
}
