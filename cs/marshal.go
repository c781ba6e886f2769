package cs

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/sync/errgroup"
)

const headerLen = 2 * 8

type header struct {
	// length in bytes of each section
	namesLen       uint64
	constraintsLen uint64
}

func (h *header) toBytes() []byte {
	buf := make([]byte, 0, headerLen)
	buf = binary.LittleEndian.AppendUint64(buf, h.namesLen)
	buf = binary.LittleEndian.AppendUint64(buf, h.constraintsLen)
	return buf
}

func (h *header) fromBytes(buf []byte) {
	h.namesLen = binary.LittleEndian.Uint64(buf[:8])
	h.constraintsLen = binary.LittleEndian.Uint64(buf[8:16])
}

type shapeNames struct {
	Inputs []string `cbor:"inputs"`
	Aux    []string `cbor:"aux"`
}

// ToBytes serializes the shape into two length-prefixed sections, names and
// constraints, encoded concurrently.
func (cs *ShapeCS[F]) ToBytes() ([]byte, error) {
	var names, constraints []byte
	var g errgroup.Group
	g.Go(func() error {
		var err error
		names, err = cs.namesToBytes()
		return err
	})
	g.Go(func() error {
		var err error
		constraints, err = cs.constraintsToBytes()
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	h := header{
		namesLen:       uint64(len(names)),
		constraintsLen: uint64(len(constraints)),
	}

	buf := h.toBytes()
	buf = append(buf, names...)
	buf = append(buf, constraints...)
	return buf, nil
}

// FromBytes deserializes the shape, returning the number of bytes read.
func (cs *ShapeCS[F]) FromBytes(data []byte) (int, error) {
	if len(data) < headerLen {
		return 0, errors.New("invalid data length")
	}

	h := new(header)
	h.fromBytes(data)

	if uint64(len(data)) < headerLen+h.namesLen+h.constraintsLen {
		return 0, errors.New("invalid data length")
	}

	var g errgroup.Group
	g.Go(func() error {
		return cs.namesFromBytes(data[headerLen : headerLen+h.namesLen])
	})
	g.Go(func() error {
		return cs.constraintsFromBytes(data[headerLen+h.namesLen : headerLen+h.namesLen+h.constraintsLen])
	})
	if err := g.Wait(); err != nil {
		return 0, err
	}

	return headerLen + int(h.namesLen) + int(h.constraintsLen), nil
}

// WriteTo implements io.WriterTo.
func (cs *ShapeCS[F]) WriteTo(w io.Writer) (int64, error) {
	data, err := cs.ToBytes()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// ReadFrom implements io.ReaderFrom.
func (cs *ShapeCS[F]) ReadFrom(r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return int64(len(data)), err
	}
	n, err := cs.FromBytes(data)
	return int64(n), err
}

// Digest returns the BLAKE2b-256 hash of the serialized shape, for
// regression comparison of synthesized circuits.
func (cs *ShapeCS[F]) Digest() ([32]byte, error) {
	data, err := cs.ToBytes()
	if err != nil {
		return [32]byte{}, err
	}
	return blake2b.Sum256(data), nil
}

func (cs *ShapeCS[F]) namesToBytes() ([]byte, error) {
	return encodeSection(shapeNames{Inputs: cs.inputs, Aux: cs.aux})
}

func (cs *ShapeCS[F]) namesFromBytes(data []byte) error {
	var names shapeNames
	if err := decodeSection(data, &names); err != nil {
		return err
	}
	cs.inputs = names.Inputs
	cs.aux = names.Aux
	return nil
}

func (cs *ShapeCS[F]) constraintsToBytes() ([]byte, error) {
	return encodeSection(cs.constraints)
}

func (cs *ShapeCS[F]) constraintsFromBytes(data []byte) error {
	var constraints []shapeConstraint[F]
	if err := decodeSection(data, &constraints); err != nil {
		return err
	}
	cs.constraints = constraints
	return nil
}

func encodeSection(v interface{}) ([]byte, error) {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return nil, err
	}
	buf := new(bytes.Buffer)
	if err := enc.NewEncoder(buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeSection(data []byte, v interface{}) error {
	dm, err := cbor.DecOptions{
		MaxArrayElements: 2147483647,
		MaxMapPairs:      2147483647,
	}.DecMode()
	if err != nil {
		return err
	}
	return dm.NewDecoder(bytes.NewReader(data)).Decode(v)
}
