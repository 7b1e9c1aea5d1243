package solana

import (
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/smartcontractkit/themis/internal/utils/safecast"
)

var (
	ErrUnexpectedAccountType = errors.New("unexpected account type")
	ErrInvalidOptionTag      = errors.New("invalid option tag")
	ErrInvalidEnumVariant    = errors.New("invalid enum variant")
	ErrLengthOutOfRange      = errors.New("length prefix exceeds remaining data")
)

// The helpers below implement the borsh primitives the governance program uses: u32 length
// prefixes for strings and vectors, a strict 0/1 tag for Option and bool.

func readPublicKey(dec *bin.Decoder) (solana.PublicKey, error) {
	raw, err := dec.ReadNBytes(solana.PublicKeyLength)
	if err != nil {
		return solana.PublicKey{}, err
	}

	return solana.PublicKeyFromBytes(raw), nil
}

func writePublicKey(enc *bin.Encoder, key solana.PublicKey) error {
	return enc.WriteBytes(key[:], false)
}

func readFlag(dec *bin.Decoder) (bool, error) {
	tag, err := dec.ReadUint8()
	if err != nil {
		return false, err
	}
	switch tag {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("%w: %d", ErrInvalidOptionTag, tag)
	}
}

func writeFlag(enc *bin.Encoder, set bool) error {
	if set {
		return enc.WriteUint8(1)
	}

	return enc.WriteUint8(0)
}

func readLength(dec *bin.Decoder, minElemSize int) (int, error) {
	n, err := dec.ReadUint32(bin.LE)
	if err != nil {
		return 0, err
	}
	if uint64(n)*uint64(minElemSize) > uint64(dec.Remaining()) {
		return 0, fmt.Errorf("%w: %d", ErrLengthOutOfRange, n)
	}

	return int(n), nil
}

// writeLength writes a u32 vector length prefix.
func writeLength(enc *bin.Encoder, n int) error {
	length, err := safecast.IntToUint32(n)
	if err != nil {
		return err
	}

	return enc.WriteUint32(length, bin.LE)
}

func readString(dec *bin.Decoder) (string, error) {
	raw, err := readByteVec(dec)
	if err != nil {
		return "", err
	}

	return string(raw), nil
}

func writeString(enc *bin.Encoder, s string) error {
	return writeByteVec(enc, []byte(s))
}

func readByteVec(dec *bin.Decoder) ([]byte, error) {
	n, err := readLength(dec, 1)
	if err != nil {
		return nil, err
	}

	return dec.ReadNBytes(n)
}

func writeByteVec(enc *bin.Encoder, b []byte) error {
	if err := writeLength(enc, len(b)); err != nil {
		return err
	}

	return enc.WriteBytes(b, false)
}

func readOptionalPublicKey(dec *bin.Decoder) (*solana.PublicKey, error) {
	present, err := readFlag(dec)
	if err != nil || !present {
		return nil, err
	}
	key, err := readPublicKey(dec)
	if err != nil {
		return nil, err
	}

	return &key, nil
}

func writeOptionalPublicKey(enc *bin.Encoder, key *solana.PublicKey) error {
	if err := writeFlag(enc, key != nil); err != nil || key == nil {
		return err
	}

	return writePublicKey(enc, *key)
}

func readAccountType(dec *bin.Decoder, want ...GovernanceAccountType) (GovernanceAccountType, error) {
	tag, err := dec.ReadUint8()
	if err != nil {
		return 0, err
	}
	got := GovernanceAccountType(tag)
	for _, w := range want {
		if got == w {
			return got, nil
		}
	}

	return got, fmt.Errorf("%w: got %s, want %s", ErrUnexpectedAccountType, got, want[0])
}
