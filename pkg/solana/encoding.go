package solana

import (
	"bytes"
	"crypto/ed25519"
	"io"

	"github.com/pkg/errors"

	"github.com/put-labs/nft-client/pkg/solana/shortvec"
)

// versionPrefix is set on the first byte of versioned messages. Legacy
// messages start with the signature count, which never reaches it.
const versionPrefix = 0x80

func (t Transaction) Marshal() []byte {
	b := bytes.NewBuffer(nil)

	_, _ = shortvec.EncodeLen(b, len(t.Signatures))
	for _, s := range t.Signatures {
		_, _ = b.Write(s[:])
	}
	_, _ = b.Write(t.Message.Marshal())

	return b.Bytes()
}

func (t *Transaction) Unmarshal(b []byte) error {
	r := newWireReader(b)

	t.Signatures = make([]Signature, r.length("signature count"))
	for i := range t.Signatures {
		r.fill(t.Signatures[i][:], "signature")
	}
	if r.err != nil {
		return r.err
	}

	return t.Message.Unmarshal(r.buf.Bytes())
}

func (m Message) Marshal() []byte {
	b := bytes.NewBuffer(nil)

	_, _ = b.Write([]byte{m.Header.NumSignatures, m.Header.NumReadonlySigned, m.Header.NumReadOnly})

	_, _ = shortvec.EncodeLen(b, len(m.Accounts))
	for _, a := range m.Accounts {
		_, _ = b.Write(a)
	}
	_, _ = b.Write(m.RecentBlockhash[:])

	_, _ = shortvec.EncodeLen(b, len(m.Instructions))
	for _, i := range m.Instructions {
		_ = b.WriteByte(i.ProgramIndex)
		writeVec(b, i.Accounts)
		writeVec(b, i.Data)
	}

	return b.Bytes()
}

// Unmarshal decodes a legacy message. Versioned messages are rejected.
func (m *Message) Unmarshal(b []byte) error {
	if len(b) == 0 {
		return errors.New("empty message")
	}
	if b[0]&versionPrefix != 0 {
		return errors.New("versioned messages not supported")
	}

	r := newWireReader(b)

	m.Header.NumSignatures = r.byte("num signatures")
	m.Header.NumReadonlySigned = r.byte("num readonly signatures")
	m.Header.NumReadOnly = r.byte("num readonly")

	m.Accounts = make([]ed25519.PublicKey, r.length("account count"))
	for i := range m.Accounts {
		m.Accounts[i] = r.bytes(ed25519.PublicKeySize, "account")
	}
	r.fill(m.RecentBlockhash[:], "recent blockhash")

	m.Instructions = make([]CompiledInstruction, r.length("instruction count"))
	for i := range m.Instructions {
		c := &m.Instructions[i]
		c.ProgramIndex = r.byte("instruction program index")
		c.Accounts = r.bytes(r.length("instruction account count"), "instruction accounts")
		c.Data = r.bytes(r.length("instruction data length"), "instruction data")
	}
	if r.err != nil {
		return r.err
	}

	return m.checkIndexes()
}

func (m *Message) checkIndexes() error {
	for i, c := range m.Instructions {
		if int(c.ProgramIndex) >= len(m.Accounts) {
			return errors.Errorf("program index out of range: %d:%d", i, c.ProgramIndex)
		}
		for _, index := range c.Accounts {
			if int(index) >= len(m.Accounts) {
				return errors.Errorf("account index out of range: %d:%d", i, index)
			}
		}
	}
	return nil
}

func writeVec(b *bytes.Buffer, data []byte) {
	_, _ = shortvec.EncodeLen(b, len(data))
	_, _ = b.Write(data)
}

// wireReader reads wire encoded fields, keeping the first error. Reads after
// an error return zero values.
type wireReader struct {
	buf *bytes.Buffer
	err error
}

func newWireReader(b []byte) *wireReader {
	return &wireReader{buf: bytes.NewBuffer(b)}
}

func (r *wireReader) fail(err error, field string) {
	if r.err == nil {
		r.err = errors.Wrapf(err, "failed to read %s", field)
	}
}

func (r *wireReader) byte(field string) byte {
	if r.err != nil {
		return 0
	}
	v, err := r.buf.ReadByte()
	if err != nil {
		r.fail(err, field)
	}
	return v
}

func (r *wireReader) length(field string) int {
	if r.err != nil {
		return 0
	}
	n, err := shortvec.DecodeLen(r.buf)
	if err != nil {
		r.fail(err, field)
		return 0
	}
	return n
}

func (r *wireReader) fill(dst []byte, field string) {
	if r.err != nil {
		return
	}
	if _, err := io.ReadFull(r.buf, dst); err != nil {
		r.fail(err, field)
	}
}

func (r *wireReader) bytes(n int, field string) []byte {
	if r.err != nil {
		return nil
	}
	// Reject lengths the remaining input cannot hold before allocating.
	if n > r.buf.Len() {
		r.fail(io.ErrUnexpectedEOF, field)
		return nil
	}
	b := make([]byte, n)
	r.fill(b, field)
	return b
}
