package jwt

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/corejwt/corejwt/jws"
)

func generateRSAPEMPair(t *testing.T) (privatePEM, publicPEM []byte) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	privatePEM = pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})

	pubBytes, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	publicPEM = pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: pubBytes,
	})

	return privatePEM, publicPEM
}

func TestEncodeDecodeRoundTripRS256(t *testing.T) {
	privatePEM, publicPEM := generateRSAPEMPair(t)

	tok := New()
	defer tok.Close()

	require.NoError(t, tok.SetAlg(jws.ALG_RS256, privatePEM))
	require.NoError(t, tok.AddGrant("sub", "user0"))

	compact, err := tok.EncodeString()
	require.NoError(t, err)

	decoded, err := Decode(compact, publicPEM)
	require.NoError(t, err)
	defer decoded.Close()

	sub, ok := decoded.GetGrant("sub")
	require.True(t, ok)
	require.Equal(t, "user0", sub)
}

func TestDecodeRS256RejectsWrongPublicKey(t *testing.T) {
	privatePEM, _ := generateRSAPEMPair(t)
	_, wrongPublicPEM := generateRSAPEMPair(t)

	tok := New()
	defer tok.Close()
	require.NoError(t, tok.SetAlg(jws.ALG_RS256, privatePEM))
	require.NoError(t, tok.AddGrant("sub", "user0"))

	compact, err := tok.EncodeString()
	require.NoError(t, err)

	_, err = Decode(compact, wrongPublicPEM)
	require.ErrorIs(t, err, ErrInvalid)
}

func TestDecodeRS256RejectsTruncatedSignature(t *testing.T) {
	privatePEM, publicPEM := generateRSAPEMPair(t)

	tok := New()
	defer tok.Close()
	require.NoError(t, tok.SetAlg(jws.ALG_RS256, privatePEM))
	require.NoError(t, tok.AddGrant("sub", "user0"))

	compact, err := tok.EncodeString()
	require.NoError(t, err)

	truncated := compact[:len(compact)-1]

	_, err = Decode(truncated, publicPEM)
	require.ErrorIs(t, err, ErrInvalid)
}
