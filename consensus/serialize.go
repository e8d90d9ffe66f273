package consensus

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/wigggles/otxconsensus/consensus/wire"
)

// contextWireVersion is bumped to 2 the moment a ServerContext gains
// the admin/tentative/highest extension fields. A Context
// built fresh in this package is always serialized at the current
// version; ParseContext accepts older versions for ClientContext
// blobs, since the extension only ever applied to ServerContext.
const contextWireVersion uint32 = 2

// roleTag is the wire tag distinguishing a ClientContext from a
// ServerContext.
type roleTag uint8

const (
	roleTagClient roleTag = 0
	roleTagServer roleTag = 1
)

// ErrMalformedContext signals a structural parse failure of a
// serialized Context.
var ErrMalformedContext = fmt.Errorf("malformed context")

// Serialize encodes c in its bit-stable wire form: the
// common fields, followed by the extension for whichever variant c is.
// ParseContext(c.Serialize()) reproduces c's observable state exactly,
// with one exception: the ClientContext extension carries no highest
// watermark, so a parsed ClientContext (like a pre-v2 ServerContext)
// restarts it at the largest issued number, which is lower than the
// original when that number has since been closed.
func (c *Context) Serialize() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()

	var buf bytes.Buffer

	writeUint32(&buf, contextWireVersion)
	writeString(&buf, c.localID)
	writeString(&buf, c.remoteID)
	writeString(&buf, c.notaryID)
	writeNumberSlice(&buf, c.numbers.Issued().Slice())
	writeNumberSlice(&buf, c.numbers.Available().Slice())
	writeUint64Slice(&buf, requestNumbersToUint64(c.acknowledgedReplies))
	writeUint64(&buf, uint64(c.requestNumber))
	writeBytes(&buf, c.localNymboxHash)
	writeBytes(&buf, c.remoteNymboxHash)

	switch c.role {
	case RoleClient:
		buf.WriteByte(byte(roleTagClient))
		writeNumberSlice(&buf, c.client.openCronItems.Slice())
	case RoleServer:
		buf.WriteByte(byte(roleTagServer))
		writeString(&buf, c.notaryID) // server_id mirrors notary_id in this implementation
		writeUint64(&buf, uint64(c.numbers.Highest()))
		writeNumberSlice(&buf, c.numbers.Tentative().Slice())
		writeUint64(&buf, c.server.revision)
		writeString(&buf, c.server.adminPassword)
		writeBool(&buf, c.server.adminAttempted)
		writeBool(&buf, c.server.adminSuccess)
	}

	return buf.Bytes()
}

// ParseContext decodes a Context from its wire form, failing with
// ErrMalformedContext on any structural error. The connection field on
// a parsed ServerContext is left nil; callers must attach one with
// SetConnection-equivalent plumbing before issuing any network call.
func ParseContext(data []byte) (*Context, error) {
	r := bufio.NewReader(bytes.NewReader(data))

	version, err := readUint32(r)
	if err != nil {
		return nil, fmt.Errorf("%w: version: %v", ErrMalformedContext, err)
	}

	localID, err := readString(r)
	if err != nil {
		return nil, fmt.Errorf("%w: local id: %v", ErrMalformedContext, err)
	}
	remoteID, err := readString(r)
	if err != nil {
		return nil, fmt.Errorf("%w: remote id: %v", ErrMalformedContext, err)
	}
	notaryID, err := readString(r)
	if err != nil {
		return nil, fmt.Errorf("%w: notary id: %v", ErrMalformedContext, err)
	}
	issued, err := readNumberSet(r)
	if err != nil {
		return nil, fmt.Errorf("%w: issued set: %v", ErrMalformedContext, err)
	}
	available, err := readNumberSet(r)
	if err != nil {
		return nil, fmt.Errorf("%w: available set: %v", ErrMalformedContext, err)
	}
	ackNumbers, err := readUint64Slice(r)
	if err != nil {
		return nil, fmt.Errorf("%w: acknowledged replies: %v", ErrMalformedContext, err)
	}
	requestNumber, err := readUint64(r)
	if err != nil {
		return nil, fmt.Errorf("%w: request number: %v", ErrMalformedContext, err)
	}
	localHash, err := readBytes(r)
	if err != nil {
		return nil, fmt.Errorf("%w: local nymbox hash: %v", ErrMalformedContext, err)
	}
	remoteHash, err := readBytes(r)
	if err != nil {
		return nil, fmt.Errorf("%w: remote nymbox hash: %v", ErrMalformedContext, err)
	}

	tagByte, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("%w: variant tag: %v", ErrMalformedContext, err)
	}

	acknowledged := make(map[RequestNumber]struct{}, len(ackNumbers))
	for _, n := range ackNumbers {
		acknowledged[RequestNumber(n)] = struct{}{}
	}

	c := &Context{
		localID:             localID,
		remoteID:            remoteID,
		notaryID:            notaryID,
		numbers:             NewNumberRegistry(),
		acknowledgedReplies: acknowledged,
		requestNumber:       RequestNumber(requestNumber),
		localNymboxHash:     localHash,
		remoteNymboxHash:    remoteHash,
	}
	c.numbers.issued = issued
	c.numbers.available = available
	for n := range issued {
		if n > c.numbers.highest {
			c.numbers.highest = n
		}
	}

	switch roleTag(tagByte) {
	case roleTagClient:
		openCronItems, err := readNumberSet(r)
		if err != nil {
			return nil, fmt.Errorf("%w: open cron items: %v", ErrMalformedContext, err)
		}
		c.role = RoleClient
		c.client = &clientExtra{openCronItems: openCronItems}

	case roleTagServer:
		if version < 2 {
			// Pre-v2 blobs never had the ServerContext extension at
			// all; fill in the defaults a freshly constructed
			// ServerContext would start from.
			defaults := wire.UpgradeServerExtension(notaryID)
			c.role = RoleServer
			c.server = &serverExtra{
				revision:      defaults.Revision,
				adminPassword: defaults.AdminPassword,
			}
			break
		}

		if _, err := readString(r); err != nil { // server_id, unused beyond notary_id
			return nil, fmt.Errorf("%w: server id: %v", ErrMalformedContext, err)
		}
		highest, err := readUint64(r)
		if err != nil {
			return nil, fmt.Errorf("%w: highest transaction number: %v", ErrMalformedContext, err)
		}
		tentative, err := readNumberSet(r)
		if err != nil {
			return nil, fmt.Errorf("%w: tentative transaction numbers: %v", ErrMalformedContext, err)
		}
		revision, err := readUint64(r)
		if err != nil {
			return nil, fmt.Errorf("%w: revision: %v", ErrMalformedContext, err)
		}
		adminPassword, err := readString(r)
		if err != nil {
			return nil, fmt.Errorf("%w: admin password: %v", ErrMalformedContext, err)
		}
		adminAttempted, err := readBool(r)
		if err != nil {
			return nil, fmt.Errorf("%w: admin attempted: %v", ErrMalformedContext, err)
		}
		adminSuccess, err := readBool(r)
		if err != nil {
			return nil, fmt.Errorf("%w: admin success: %v", ErrMalformedContext, err)
		}

		c.numbers.tentative = tentative
		c.numbers.highest = TransactionNumber(highest)
		c.role = RoleServer
		c.server = &serverExtra{
			revision:       revision,
			adminPassword:  adminPassword,
			adminAttempted: adminAttempted,
			adminSuccess:   adminSuccess,
		}

	default:
		return nil, fmt.Errorf("%w: unknown variant tag %d", ErrMalformedContext, tagByte)
	}

	if extra, _ := r.Peek(1); len(extra) != 0 {
		return nil, fmt.Errorf("%w: trailing bytes after context", ErrMalformedContext)
	}

	return c, nil
}

func requestNumbersToUint64(s map[RequestNumber]struct{}) []uint64 {
	out := make([]uint64, 0, len(s))
	for n := range s {
		out = append(out, uint64(n))
	}
	sortUint64(out)
	return out
}

func sortUint64(nums []uint64) {
	for i := 1; i < len(nums); i++ {
		for j := i; j > 0 && nums[j-1] > nums[j]; j-- {
			nums[j-1], nums[j] = nums[j], nums[j-1]
		}
	}
}

func writeUint64Slice(w io.Writer, nums []uint64) {
	writeUint32(w, uint32(len(nums)))
	for _, n := range nums {
		writeUint64(w, n)
	}
}

func readUint64Slice(r io.Reader) ([]uint64, error) {
	count, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	out := make([]uint64, count)
	for i := uint32(0); i < count; i++ {
		v, err := readUint64(r)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
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
