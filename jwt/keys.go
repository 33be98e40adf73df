package jwt

import (
	"crypto/ecdsa"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/corejwt/corejwt/jws"
)

// signerFor builds the jws.Signer for alg from the key material a token
// carries: the raw shared secret for HS*, or a PEM-encoded private key for
// RS*/ES*.
func signerFor(alg jws.SignatureAlgorithm, key []byte) (jws.Signer, error) {
	switch alg {
	case jws.ALG_NONE:
		return jws.None(), nil
	case jws.ALG_HS256, jws.ALG_HS384, jws.ALG_HS512:
		return jws.HSSignerVerifier(alg, key)
	case jws.ALG_RS256, jws.ALG_RS384, jws.ALG_RS512:
		priv, err := parseRSAPrivateKeyPEM(key)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalid, err)
		}
		switch alg {
		case jws.ALG_RS384:
			return jws.RS384Signer(priv), nil
		case jws.ALG_RS512:
			return jws.RS512Signer(priv), nil
		default:
			return jws.RS256Signer(priv), nil
		}
	case jws.ALG_ES256, jws.ALG_ES384, jws.ALG_ES512:
		priv, err := parseECPrivateKeyPEM(key)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalid, err)
		}
		switch alg {
		case jws.ALG_ES384:
			return jws.ES384Signer(priv)
		case jws.ALG_ES512:
			return jws.ES512Signer(priv)
		default:
			return jws.ES256Signer(priv)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported algorithm %s", ErrInvalid, alg)
	}
}

// verifierFor builds the jws.Verifier for alg from the key material given
// to Decode: the raw shared secret for HS*, or a PEM-encoded public key
// for RS*/ES*.
func verifierFor(alg jws.SignatureAlgorithm, key []byte) (jws.Verifier, error) {
	switch alg {
	case jws.ALG_HS256, jws.ALG_HS384, jws.ALG_HS512:
		return jws.HSSignerVerifier(alg, key)
	case jws.ALG_RS256, jws.ALG_RS384, jws.ALG_RS512:
		pub, err := parseRSAPublicKeyPEM(key)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalid, err)
		}
		return jws.RSVerifier(alg, pub)
	case jws.ALG_ES256, jws.ALG_ES384, jws.ALG_ES512:
		pub, err := parseECPublicKeyPEM(key)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalid, err)
		}
		switch alg {
		case jws.ALG_ES384:
			return jws.ES384Verifier(pub)
		case jws.ALG_ES512:
			return jws.ES512Verifier(pub)
		default:
			return jws.ES256Verifier(pub)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported algorithm %s", ErrInvalid, alg)
	}
}

func parseRSAPrivateKeyPEM(data []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, errors.New("no PEM block found in RSA private key")
	}

	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}

	k, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, err
	}
	key, ok := k.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.New("PEM key is not an RSA private key")
	}
	return key, nil
}

func parseRSAPublicKeyPEM(data []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, errors.New("no PEM block found in RSA public key")
	}

	if key, err := x509.ParsePKCS1PublicKey(block.Bytes); err == nil {
		return key, nil
	}

	k, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, err
	}
	key, ok := k.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("PEM key is not an RSA public key")
	}
	return key, nil
}

func parseECPrivateKeyPEM(data []byte) (*ecdsa.PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, errors.New("no PEM block found in EC private key")
	}
	return x509.ParseECPrivateKey(block.Bytes)
}

func parseECPublicKeyPEM(data []byte) (*ecdsa.PublicKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, errors.New("no PEM block found in EC public key")
	}

	k, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, err
	}
	key, ok := k.(*ecdsa.PublicKey)
	if !ok {
		return nil, errors.New("PEM key is not an EC public key")
	}
	return key, nil
}
