package element

import (
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/keystorm/keystorm/internal/coreerr"
)

// Codec decodes raw bytes read from a resource's origin into text, per
// the reformulations bundle referenced in spec §3. A resource installs
// one at load time; DefaultCodec implements the "replacement strategy"
// (surrogate-escape equivalent) spec §7 requires for decode-failure
// recovery: invalid byte sequences are replaced with U+FFFD rather
// than aborting the load, and the caller is told whether a repair
// occurred.
type Codec interface {
	Decode(data []byte) (text string, repaired bool, err error)
}

// defaultCodec decodes UTF-8 via golang.org/x/text/encoding/unicode,
// which already performs replacement-on-error; this package exists to
// give that policy a name at the reformulations boundary and to
// produce a *coreerr.Error (KindDecodeFailure) for the caller to log
// when repair was needed.
type defaultCodec struct {
	decoder *encoding.Decoder
}

// DefaultCodec returns the codec used when a resource's reformulations
// do not specify one.
func DefaultCodec() Codec {
	return &defaultCodec{decoder: unicode.UTF8.NewDecoder()}
}

func (c *defaultCodec) Decode(data []byte) (string, bool, error) {
	if utf8.Valid(data) {
		return string(data), false, nil
	}

	out, _, err := transform.Bytes(c.decoder, data)
	if err != nil {
		// The stdlib unicode.UTF8 decoder does not itself error on
		// malformed input (it substitutes U+FFFD), but a defensive
		// caller still wants a typed failure to log and recover from.
		return string(out), true, coreerr.DecodeFailure("element.Decode", err)
	}
	return string(out), true, nil
}
