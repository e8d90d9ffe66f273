package receipt

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

// ErrMalformedReceipt signals a structural parse failure of a
// serialized Receipt.
var ErrMalformedReceipt = fmt.Errorf("receipt: malformed receipt")

// Serialize encodes r in a fixed field order, the same bit-stable
// approach consensus.Statement and consensus.Context use: a generic
// encoder can't promise the exact ordering a content-addressed hash
// depends on.
func (r *Receipt) Serialize() []byte {
	var buf bytes.Buffer

	writeUint32(&buf, uint32(r.Kind))
	writeUint64(&buf, uint64(r.TransactionNum))
	writeUint64(&buf, r.ReferenceNum)
	writeUint64(&buf, uint64(r.Origin.Number))
	writeUint32(&buf, uint32(r.Origin.Kind))
	writeUint64(&buf, uint64(r.Amount))
	writeString(&buf, r.DisplayAmount)
	writeUint64(&buf, uint64(r.ClosingNum))
	writeString(&buf, r.ReferenceToDisplay)
	writeBytes(&buf, r.Attachment)
	writeString(&buf, r.Note)
	writeUint64(&buf, uint64(r.DateSigned))
	writeBytes(&buf, r.Hash)
	writeBool(&buf, r.Abbreviated)
	writeBool(&buf, r.Deleted)
	writeUint64(&buf, uint64(r.numberOfOrigin))

	return buf.Bytes()
}

// ParseReceipt decodes a Receipt from its wire form.
func ParseReceipt(data []byte) (*Receipt, error) {
	r := bufio.NewReader(bytes.NewReader(data))

	kind, err := readUint32(r)
	if err != nil {
		return nil, fmt.Errorf("%w: kind: %v", ErrMalformedReceipt, err)
	}
	txnNum, err := readUint64(r)
	if err != nil {
		return nil, fmt.Errorf("%w: transaction number: %v", ErrMalformedReceipt, err)
	}
	refNum, err := readUint64(r)
	if err != nil {
		return nil, fmt.Errorf("%w: reference number: %v", ErrMalformedReceipt, err)
	}
	originNum, err := readUint64(r)
	if err != nil {
		return nil, fmt.Errorf("%w: origin number: %v", ErrMalformedReceipt, err)
	}
	originKind, err := readUint32(r)
	if err != nil {
		return nil, fmt.Errorf("%w: origin kind: %v", ErrMalformedReceipt, err)
	}
	amount, err := readUint64(r)
	if err != nil {
		return nil, fmt.Errorf("%w: amount: %v", ErrMalformedReceipt, err)
	}
	displayAmount, err := readString(r)
	if err != nil {
		return nil, fmt.Errorf("%w: display amount: %v", ErrMalformedReceipt, err)
	}
	closingNum, err := readUint64(r)
	if err != nil {
		return nil, fmt.Errorf("%w: closing number: %v", ErrMalformedReceipt, err)
	}
	refToDisplay, err := readString(r)
	if err != nil {
		return nil, fmt.Errorf("%w: reference to display: %v", ErrMalformedReceipt, err)
	}
	attachment, err := readBytes(r)
	if err != nil {
		return nil, fmt.Errorf("%w: attachment: %v", ErrMalformedReceipt, err)
	}
	note, err := readString(r)
	if err != nil {
		return nil, fmt.Errorf("%w: note: %v", ErrMalformedReceipt, err)
	}
	dateSigned, err := readUint64(r)
	if err != nil {
		return nil, fmt.Errorf("%w: date signed: %v", ErrMalformedReceipt, err)
	}
	hash, err := readBytes(r)
	if err != nil {
		return nil, fmt.Errorf("%w: hash: %v", ErrMalformedReceipt, err)
	}
	abbreviated, err := readBool(r)
	if err != nil {
		return nil, fmt.Errorf("%w: abbreviated flag: %v", ErrMalformedReceipt, err)
	}
	deleted, err := readBool(r)
	if err != nil {
		return nil, fmt.Errorf("%w: deleted flag: %v", ErrMalformedReceipt, err)
	}
	numberOfOrigin, err := readUint64(r)
	if err != nil {
		return nil, fmt.Errorf("%w: cached number of origin: %v", ErrMalformedReceipt, err)
	}

	if extra, _ := r.Peek(1); len(extra) != 0 {
		return nil, fmt.Errorf("%w: trailing bytes", ErrMalformedReceipt)
	}

	return &Receipt{
		Kind:           Kind(kind),
		TransactionNum: TransactionNumber(txnNum),
		ReferenceNum:   refNum,
		Origin: Origin{
			Number: TransactionNumber(originNum),
			Kind:   OriginKind(originKind),
		},
		Amount:             int64(amount),
		DisplayAmount:      displayAmount,
		ClosingNum:         TransactionNumber(closingNum),
		ReferenceToDisplay: refToDisplay,
		Attachment:         attachment,
		Note:               note,
		DateSigned:         int64(dateSigned),
		Hash:               hash,
		Abbreviated:        abbreviated,
		Deleted:            deleted,
		numberOfOrigin:     TransactionNumber(numberOfOrigin),
	}, nil
}

func writeUint32(w io.Writer, v uint32) {
	var b [4]byte
	b[0] = byte(v >> 24)
	b[1] = byte(v >> 16)
	b[2] = byte(v >> 8)
	b[3] = byte(v)
	w.Write(b[:])
}

func readUint32(r io.Reader) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), nil
}

func writeUint64(w io.Writer, v uint64) {
	var b [8]byte
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> uint(56-8*i))
	}
	w.Write(b[:])
}

func readUint64(r io.Reader) (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	var v uint64
	for i := 0; i < 8; i++ {
		v = v<<8 | uint64(b[i])
	}
	return v, nil
}

func writeString(w io.Writer, s string) {
	writeBytes(w, []byte(s))
}

func readString(r io.Reader) (string, error) {
	b, err := readBytes(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func writeBytes(w io.Writer, b []byte) {
	writeUint32(w, uint32(len(b)))
	w.Write(b)
}

func readBytes(r io.Reader) ([]byte, error) {
	n, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return b, nil
}

func writeBool(w io.Writer, b bool) {
	if b {
		w.Write([]byte{1})
	} else {
		w.Write([]byte{0})
	}
}

func readBool(r io.Reader) (bool, error) {
	var b [1]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return false, err
	}
	return b[0] != 0, nil
}
