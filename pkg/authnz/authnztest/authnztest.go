package authnztest

import (
	"crypto/rand"
	"crypto/rsa"
	"time"

	"gopkg.in/square/go-jose.v2"
	"gopkg.in/square/go-jose.v2/jwt"
)

const keyID = "wibble"

// Keys returns a fresh RS256 private key and the public key that verifies it.
func Keys() (jose.JSONWebKey, jose.JSONWebKey, error) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return jose.JSONWebKey{}, jose.JSONWebKey{}, err
	}

	priv := jose.JSONWebKey{Key: key, KeyID: keyID, Algorithm: "RS256", Use: "sig"}
	pub := jose.JSONWebKey{Key: key.Public(), KeyID: keyID, Algorithm: "RS256", Use: "sig"}

	return priv, pub, nil
}

// Token signs an id token for user with the given claim holding the user.
func Token(priv jose.JSONWebKey, user, iss, aud, claim string, expiry time.Time) (string, error) {
	sig, err := jose.NewSigner(
		jose.SigningKey{
			Algorithm: jose.RS256,
			Key:       priv,
		},
		(&jose.SignerOptions{}).WithType("JWT"),
	)
	if err != nil {
		return "", err
	}

	cl := jwt.Claims{
		Issuer:    iss,
		Expiry:    jwt.NewNumericDate(expiry),
		NotBefore: jwt.NewNumericDate(time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC)),
		Audience:  jwt.Audience{aud},
	}

	builder := jwt.Signed(sig).Claims(cl)
	if claim == "sub" {
		builder = builder.Claims(map[string]interface{}{"sub": user})
	} else {
		builder = builder.Claims(map[string]interface{}{"sub": "someone-else", claim: user})
	}

	return builder.CompactSerialize()
}

func SetupKeysAndToken(user, iss, aud, claim string) ([]jose.JSONWebKey, string, error) {
	priv, pub, err := Keys()
	if err != nil {
		return nil, "", err
	}

	raw, err := Token(priv, user, iss, aud, claim, time.Now().Add(time.Hour*1))
	if err != nil {
		return nil, "", err
	}

	return []jose.JSONWebKey{priv, pub}, raw, nil
}
