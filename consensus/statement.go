package consensus

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// statementWireVersion is the current Statement wire version.
const statementWireVersion uint32 = 1

// Statement is an immutable, signed snapshot of one party's issued and
// available transaction-number sets at a point in time.
// Build a Statement from live parts with BuildStatement, or recover one
// from its wire form with ParseStatement; both round-trip losslessly
// through Serialize/ParseStatement.
type Statement struct {
	version   uint32
	notary    string
	party     string
	issued    NumberSet
	available NumberSet
}

// BuildStatement constructs a Statement from a notary id, party id, and
// the issued/available sets it should commit to. The two sets may
// differ only by numbers currently spent-but-outstanding.
func BuildStatement(notary, party string, issued, available NumberSet) *Statement {
	return &Statement{
		version:   statementWireVersion,
		notary:    notary,
		party:     party,
		issued:    issued.Clone(),
		available: available.Clone(),
	}
}

// Notary returns the notary id the statement is scoped to.
func (s *Statement) Notary() string { return s.notary }

// Party returns the party id the statement was signed by.
func (s *Statement) Party() string { return s.party }

// Issued returns a copy of the statement's issued set.
func (s *Statement) Issued() NumberSet { return s.issued.Clone() }

// Available returns a copy of the statement's available set.
func (s *Statement) Available() NumberSet { return s.available.Clone() }

// Remove strips n from both sets. Used only during builder assembly, to
// take out a number the sender is about to consume (e.g. a cancel's own
// opening number) before the statement is signed.
func (s *Statement) Remove(n TransactionNumber) {
	delete(s.issued, n)
	delete(s.available, n)
}

// Serialize encodes the statement in its single stable wire form: a
// version tag followed by party id, notary id, and the issued and
// available sets each as a length-prefixed ascending list of
// fixed-width uint64s. Field order and encoding are fixed so that
// ParseStatement(Serialize(s)) always reproduces s exactly.
func (s *Statement) Serialize() []byte {
	var buf bytes.Buffer

	writeUint32(&buf, s.version)
	writeString(&buf, s.party)
	writeString(&buf, s.notary)
	writeNumberSlice(&buf, s.issued.Slice())
	writeNumberSlice(&buf, s.available.Slice())

	return buf.Bytes()
}

// ParseStatement decodes a Statement from its wire form, failing with
// ErrMalformedStatement on any structural error.
func ParseStatement(data []byte) (*Statement, error) {
	r := bufio.NewReader(bytes.NewReader(data))

	version, err := readUint32(r)
	if err != nil {
		return nil, fmt.Errorf("%w: version: %v", ErrMalformedStatement, err)
	}

	party, err := readString(r)
	if err != nil {
		return nil, fmt.Errorf("%w: party id: %v", ErrMalformedStatement, err)
	}

	notary, err := readString(r)
	if err != nil {
		return nil, fmt.Errorf("%w: notary id: %v", ErrMalformedStatement, err)
	}

	issued, err := readNumberSet(r)
	if err != nil {
		return nil, fmt.Errorf("%w: issued set: %v", ErrMalformedStatement, err)
	}

	available, err := readNumberSet(r)
	if err != nil {
		return nil, fmt.Errorf("%w: available set: %v", ErrMalformedStatement, err)
	}

	if extra, _ := r.Peek(1); len(extra) != 0 {
		return nil, fmt.Errorf("%w: trailing bytes after available set", ErrMalformedStatement)
	}

	return &Statement{
		version:   version,
		party:     party,
		notary:    notary,
		issued:    issued,
		available: available,
	}, nil
}

func writeUint32(w io.Writer, v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	w.Write(b[:])
}

func readUint32(r io.Reader) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b[:]), nil
}

func writeUint64(w io.Writer, v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	w.Write(b[:])
}

func readUint64(r io.Reader) (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b[:]), nil
}

func writeString(w io.Writer, s string) {
	writeUint32(w, uint32(len(s)))
	io.WriteString(w, s)
}

func readString(r io.Reader) (string, error) {
	n, err := readUint32(r)
	if err != nil {
		return "", err
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", err
	}
	return string(b), nil
}

func writeNumberSlice(w io.Writer, nums []TransactionNumber) {
	writeUint32(w, uint32(len(nums)))
	for _, n := range nums {
		writeUint64(w, uint64(n))
	}
}

func readNumberSet(r io.Reader) (NumberSet, error) {
	count, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	set := make(NumberSet, count)
	for i := uint32(0); i < count; i++ {
		v, err := readUint64(r)
		if err != nil {
			return nil, err
		}
		set[TransactionNumber(v)] = struct{}{}
	}
	return set, nil
}
