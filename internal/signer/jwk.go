package signer

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rsa"
	"encoding/base64"
	"math/big"

	"github.com/linksbom/linksbom/internal/model"
)

// jwkFromPublicKey builds a model.JWK descriptor for pub, covering the key
// types this package signs with. Unknown key types yield ErrUnsupportedKeyType.
func jwkFromPublicKey(pub crypto.PublicKey) (*model.JWK, error) {
	switch k := pub.(type) {
	case *rsa.PublicKey:
		return &model.JWK{
			Kty: "RSA",
			N:   base64URLEncode(k.N.Bytes()),
			E:   base64URLEncode(big.NewInt(int64(k.E)).Bytes()),
		}, nil
	case *ecdsa.PublicKey:
		crv, err := curveName(k.Curve)
		if err != nil {
			return nil, err
		}
		size := (k.Curve.Params().BitSize + 7) / 8
		return &model.JWK{
			Kty: "EC",
			Crv: crv,
			X:   base64URLEncode(padCoordinate(k.X, size)),
			Y:   base64URLEncode(padCoordinate(k.Y, size)),
		}, nil
	case ed25519.PublicKey:
		return &model.JWK{
			Kty: "OKP",
			Crv: "Ed25519",
			X:   base64URLEncode(k),
		}, nil
	default:
		return nil, ErrUnsupportedKeyType
	}
}

func curveName(curve elliptic.Curve) (string, error) {
	switch curve {
	case elliptic.P256():
		return "P-256", nil
	case elliptic.P384():
		return "P-384", nil
	case elliptic.P521():
		return "P-521", nil
	default:
		return "", ErrUnsupportedKeyType
	}
}

// padCoordinate left-pads an EC coordinate to size bytes, matching the
// fixed-width encoding the JWK spec requires for x/y.
func padCoordinate(v *big.Int, size int) []byte {
	raw := v.Bytes()
	if len(raw) >= size {
		return raw
	}
	out := make([]byte, size)
	copy(out[size-len(raw):], raw)
	return out
}

func base64URLEncode(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}
