package crypto_test

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/hex"
	"regexp"
	"strings"
	"testing"

	"github.com/cosmos/btcutil/bech32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tyler-smith/go-bip39"

	"bakkey/internal/crypto"
	"bakkey/internal/domain"
)

const (
	vectorPhrase    = "stay local melt rude evoke pause input kite area sphere mango quote"
	vectorEntropy   = "d4f06a2ade74e142dd2bd90b5a2e1cd8"
	vectorIdentity  = "AGE-SECRET-KEY-1QQQQQQQQQQQQQQQQQQQQQQQQQR20Q632ME6WZSKA90VSKK3WRNVQ4F3X6C"
	vectorRecipient = "age1f8ygkw8sqtucpj78lq4mund4gjsaq3zpfc9rmm4sngkhmccmgfpsuj7vzw"

	zeroIdentity  = "AGE-SECRET-KEY-1QQQQQQQQQQQQQQQQQQQQQQQQQQQQQQQQQQQQQQQQQQQQQQQQQQQQ8H00W3"
	zeroRecipient = "age19ljhmg68e43yx9fgm2k9lwefquc0la5y4lzvlshdjzv47kxt8d6qr9vf4p"

	seqPhrase    = "abandon amount liar amount expire adjust cage candy arch gather drum bullet absurd math era live bid rhythm alien crouch range attend journey unaware"
	seqIdentity  = "AGE-SECRET-KEY-1QQQSYQCYQ5RQWZQFPG9SCRGWPUGPZYSNZS23V9CCRYDPK8QARC0SWRYDWG"
	seqRecipient = "age13aqvttdk3ujkyjh9kg2w5an6dmy5mq5a84a4uxk3hfhnugfc9p0sy5p2wh"
)

var identityPattern = regexp.MustCompile(`^AGE-SECRET-KEY-[A-Z0-9]+$`)

func words(s string) domain.Mnemonic { return domain.Mnemonic(strings.Fields(s)) }

func sequence(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}

func TestKnownVector(t *testing.T) {
	ctx := context.Background()

	entropy, err := crypto.MnemonicToEntropy(words(vectorPhrase))
	require.NoError(t, err)
	assert.Equal(t, vectorEntropy, hex.EncodeToString(entropy))

	identity, err := crypto.IdentityFromBytes(entropy)
	require.NoError(t, err)
	assert.Equal(t, vectorIdentity, identity.String())
	assert.Regexp(t, identityPattern, identity.String())

	recipient, err := crypto.EntropyToAgeRecipient(ctx, crypto.AgeDeriver{}, entropy)
	require.NoError(t, err)
	assert.Equal(t, vectorRecipient, recipient.String())

	m, err := crypto.EntropyToMnemonic(entropy)
	require.NoError(t, err)
	assert.Equal(t, vectorPhrase, m.String())
}

func TestZeroAndSequenceVectors(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name      string
		entropy   []byte
		phrase    string
		identity  string
		recipient string
	}{
		{
			name:      "zero 16 bytes",
			entropy:   make([]byte, 16),
			phrase:    strings.Repeat("abandon ", 11) + "about",
			identity:  zeroIdentity,
			recipient: zeroRecipient,
		},
		{
			name:      "sequence 32 bytes",
			entropy:   sequence(32),
			phrase:    seqPhrase,
			identity:  seqIdentity,
			recipient: seqRecipient,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, err := crypto.EntropyToMnemonic(tc.entropy)
			require.NoError(t, err)
			assert.Equal(t, tc.phrase, m.String())

			back, err := crypto.MnemonicToEntropy(m)
			require.NoError(t, err)
			assert.Equal(t, tc.entropy, []byte(back))

			id, err := crypto.IdentityFromBytes(tc.entropy)
			require.NoError(t, err)
			assert.Equal(t, tc.identity, id.String())

			r, err := crypto.AgeDeriver{}.DeriveRecipient(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, tc.recipient, r.String())
		})
	}
}

func TestMnemonicRoundTripMatchesDirectPath(t *testing.T) {
	ctx := context.Background()
	for i := 0; i < 200; i++ {
		e := make([]byte, 16)
		_, err := crand.Read(e)
		require.NoError(t, err)

		m, err := crypto.EntropyToMnemonic(e)
		require.NoError(t, err)
		require.Len(t, m, 12)

		decoded, err := crypto.MnemonicToEntropy(m)
		require.NoError(t, err)
		require.Equal(t, e, []byte(decoded))

		viaWords, err := crypto.EntropyToAgeRecipient(ctx, crypto.AgeDeriver{}, decoded)
		require.NoError(t, err)
		direct, err := crypto.EntropyToAgeRecipient(ctx, crypto.AgeDeriver{}, e)
		require.NoError(t, err)
		require.Equal(t, direct, viaWords)
	}
}

func TestMnemonicToEntropyMatchesBIP39(t *testing.T) {
	for _, n := range []int{16, 32} {
		e := make([]byte, n)
		_, err := crand.Read(e)
		require.NoError(t, err)

		phrase, err := bip39.NewMnemonic(e)
		require.NoError(t, err)
		want, err := bip39.EntropyFromMnemonic(phrase)
		require.NoError(t, err)

		got, err := crypto.MnemonicToEntropy(words(phrase))
		require.NoError(t, err)
		assert.Equal(t, want, []byte(got))
	}
}

func TestMnemonicToEntropyErrors(t *testing.T) {
	t.Run("word count", func(t *testing.T) {
		for _, n := range []int{0, 11, 13, 15, 18, 23, 25} {
			_, err := crypto.MnemonicToEntropy(words(strings.Repeat("abandon ", n)))
			assert.ErrorIs(t, err, crypto.ErrInvalidWordCount, "n=%d", n)
		}
	})

	t.Run("unknown word", func(t *testing.T) {
		m := words(vectorPhrase)
		m[4] = "evok"
		_, err := crypto.MnemonicToEntropy(m)
		require.ErrorIs(t, err, crypto.ErrInvalidWord)

		var wordErr *crypto.InvalidWordError
		require.ErrorAs(t, err, &wordErr)
		assert.Equal(t, "evok", wordErr.Word)
	})

	t.Run("case sensitive", func(t *testing.T) {
		m := words(vectorPhrase)
		m[0] = "Stay"
		_, err := crypto.MnemonicToEntropy(m)
		assert.ErrorIs(t, err, crypto.ErrInvalidWord)
	})
}

// The decoder ignores the checksum: twelve "abandon" is not a valid BIP39
// phrase but still decodes, to the all-zero entropy.
func TestMnemonicToEntropySkipsChecksum(t *testing.T) {
	m := words(strings.Repeat("abandon ", 12))
	require.False(t, bip39.IsMnemonicValid(m.String()))

	e, err := crypto.MnemonicToEntropy(m)
	require.NoError(t, err)
	assert.Equal(t, make([]byte, 16), []byte(e))

	r, err := crypto.EntropyToAgeRecipient(context.Background(), crypto.AgeDeriver{}, e)
	require.NoError(t, err)
	assert.Equal(t, zeroRecipient, r.String())

	assert.ErrorIs(t, crypto.CheckMnemonic(m), crypto.ErrChecksumMismatch)
	assert.NoError(t, crypto.CheckMnemonic(words(vectorPhrase)))
	assert.ErrorIs(t, crypto.CheckMnemonic(words("abandon")), crypto.ErrInvalidWordCount)
}

func TestParseMnemonic(t *testing.T) {
	got := crypto.ParseMnemonic("  Stay LOCAL\tmelt \n rude evoke pause input kite area sphere mango quote  ")
	assert.Equal(t, words(vectorPhrase), got)
	assert.Empty(t, crypto.ParseMnemonic("   "))
}

func TestIdentityFromBytesPadding(t *testing.T) {
	for _, e := range [][]byte{make([]byte, 16), sequence(16), []byte(mustHex(t, vectorEntropy))} {
		padded := append(make([]byte, 16), e...)

		short, err := crypto.IdentityFromBytes(e)
		require.NoError(t, err)
		long, err := crypto.IdentityFromBytes(padded)
		require.NoError(t, err)
		assert.Equal(t, short, long)
		assert.Regexp(t, identityPattern, short.String())
	}
}

func TestIdentityFromBytesRejectsOtherLengths(t *testing.T) {
	for _, n := range []int{0, 1, 15, 17, 31, 33, 64} {
		_, err := crypto.IdentityFromBytes(make([]byte, n))
		assert.ErrorIs(t, err, crypto.ErrInvalidEntropyLength, "n=%d", n)
	}
}

func TestIdentityFromBytesDoesNotMutateInput(t *testing.T) {
	e := sequence(32)
	_, err := crypto.IdentityFromBytes(e)
	require.NoError(t, err)
	assert.Equal(t, sequence(32), e)
}

func TestConvertBits(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		for n := 0; n <= 40; n++ {
			data := make([]byte, n)
			_, err := crand.Read(data)
			require.NoError(t, err)

			five, err := crypto.ConvertBits(data, 8, 5, true)
			require.NoError(t, err)
			assert.Len(t, five, (n*8+4)/5)

			back, err := crypto.ConvertBits(five, 5, 8, false)
			require.NoError(t, err)
			assert.Equal(t, data, back)
		}
	})

	t.Run("matches bech32 package", func(t *testing.T) {
		data := sequence(32)
		want, err := bech32.ConvertBits(data, 8, 5, true)
		require.NoError(t, err)
		got, err := crypto.ConvertBits(data, 8, 5, true)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("value too wide", func(t *testing.T) {
		_, err := crypto.ConvertBits([]byte{1, 32}, 5, 8, true)
		assert.ErrorIs(t, err, crypto.ErrInvalidInputValue)
	})

	t.Run("bad widths", func(t *testing.T) {
		_, err := crypto.ConvertBits([]byte{1}, 0, 5, true)
		assert.ErrorIs(t, err, crypto.ErrInvalidInputValue)
		_, err = crypto.ConvertBits([]byte{1}, 8, 9, true)
		assert.ErrorIs(t, err, crypto.ErrInvalidInputValue)
	})

	t.Run("non-zero padding", func(t *testing.T) {
		// Two 5-bit groups carry 10 bits: one byte plus two trailing bits.
		_, err := crypto.ConvertBits([]byte{0, 1}, 5, 8, false)
		assert.ErrorIs(t, err, crypto.ErrInvalidPadding)
	})

	t.Run("oversized remainder", func(t *testing.T) {
		// A lone 5-bit group cannot hold a whole byte.
		_, err := crypto.ConvertBits([]byte{0}, 5, 8, false)
		assert.ErrorIs(t, err, crypto.ErrInvalidPadding)
	})
}

func TestValidateAgeRecipient(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{vectorRecipient, true},
		{"age1" + strings.Repeat("x", 56), true},
		{"age2" + vectorRecipient[4:], false},
		{vectorRecipient[:59], false},
		{"", false},
		{"AGE1" + vectorRecipient[4:], false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, crypto.ValidateAgeRecipient(tc.in), tc.in)
	}
}

func TestRecipientPublicKey(t *testing.T) {
	pub, err := crypto.RecipientPublicKey(vectorRecipient)
	require.NoError(t, err)
	require.Len(t, pub, 32)

	five, err := crypto.ConvertBits(pub, 8, 5, true)
	require.NoError(t, err)
	again, err := bech32.Encode("age", five)
	require.NoError(t, err)
	assert.Equal(t, vectorRecipient, again)

	_, err = crypto.RecipientPublicKey(domain.AgeRecipient(strings.ToLower(vectorIdentity)))
	assert.ErrorIs(t, err, crypto.ErrInvalidRecipient)

	broken := vectorRecipient[:len(vectorRecipient)-1] + "q"
	_, err = crypto.RecipientPublicKey(domain.AgeRecipient(broken))
	assert.ErrorIs(t, err, crypto.ErrInvalidRecipient)

	fp, err := crypto.RecipientFingerprint(vectorRecipient)
	require.NoError(t, err)
	assert.Len(t, fp.String(), 20)
}

func TestDeriveRecipientHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := crypto.AgeDeriver{}.DeriveRecipient(ctx, vectorIdentity)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDeriveRecipientPropagatesParseErrors(t *testing.T) {
	_, err := crypto.AgeDeriver{}.DeriveRecipient(context.Background(), "AGE-SECRET-KEY-1NOPE")
	assert.Error(t, err)
}

func TestEncryptDecrypt(t *testing.T) {
	msg := []byte(vectorPhrase)
	for _, armored := range []bool{false, true} {
		ct, err := crypto.Encrypt([]domain.AgeRecipient{vectorRecipient, zeroRecipient}, msg, armored)
		require.NoError(t, err)
		assert.Equal(t, armored, bytes.HasPrefix(ct, []byte("-----BEGIN AGE ENCRYPTED FILE-----")))

		for _, id := range []domain.AgeIdentity{vectorIdentity, zeroIdentity} {
			pt, err := crypto.Decrypt(id, ct)
			require.NoError(t, err)
			assert.Equal(t, msg, pt)
		}

		_, err = crypto.Decrypt(seqIdentity, ct)
		assert.Error(t, err)
	}

	_, err := crypto.Encrypt(nil, msg, false)
	assert.ErrorIs(t, err, crypto.ErrInvalidRecipient)
	_, err = crypto.Encrypt([]domain.AgeRecipient{"age1nope"}, msg, false)
	assert.ErrorIs(t, err, crypto.ErrInvalidRecipient)
}

func TestB64(t *testing.T) {
	b, err := crypto.UnB64(" " + crypto.B64([]byte("hello")) + "\n")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), b)
}

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}
