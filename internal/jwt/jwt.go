package jwt

import (
	"crypto/rsa"
	"fmt"
	"os"
	"strconv"
	"time"

	jwtgo "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vilass86/cardgame/internal/config"
)

// Issuer issues the JWT
const Issuer = "io.pixelcards.cardgame"

// Audience is the intended JWT audience
const Audience = "cardgame.pixelcards.io"

// lifetime is how long a signed token stays valid
const lifetime = time.Hour * 24 * 30

var publicKey *rsa.PublicKey
var privateKey *rsa.PrivateKey

// LoadKeys reads the signing key pair named by the configuration.
// Call it once at startup, before any Sign or ValidUserID call
func LoadKeys() {
	cfg := config.Instance().JWT
	privateKey = loadPrivateKey(cfg.PrivateKey)
	publicKey = loadPublicKey(cfg.PublicKey)
}

// Sign issues a token tied to the user ID
func Sign(userID int64) (string, error) {
	if privateKey == nil {
		panic("LoadKeys() not called")
	}

	now := time.Now()
	token := jwtgo.NewWithClaims(jwtgo.SigningMethodRS256, jwtgo.RegisteredClaims{
		Audience:  jwtgo.ClaimStrings{Audience},
		ExpiresAt: jwtgo.NewNumericDate(now.Add(lifetime)),
		ID:        uuid.New().String(),
		IssuedAt:  jwtgo.NewNumericDate(now),
		Issuer:    Issuer,
		Subject:   strconv.FormatInt(userID, 10),
	})

	return token.SignedString(privateKey)
}

// ValidUserID will validate a signed JWT and return the user ID it was signed for
func ValidUserID(signedString string) (int64, error) {
	if publicKey == nil {
		panic("LoadKeys() not called")
	}

	token, err := jwtgo.ParseWithClaims(signedString, &jwtgo.RegisteredClaims{},
		func(token *jwtgo.Token) (interface{}, error) {
			return publicKey, nil
		},
		jwtgo.WithValidMethods([]string{jwtgo.SigningMethodRS256.Alg()}),
		jwtgo.WithAudience(Audience),
		jwtgo.WithIssuer(Issuer),
	)

	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(*jwtgo.RegisteredClaims)
	if !ok {
		return 0, fmt.Errorf("expected jwt.RegisteredClaims, got %T", token.Claims)
	}

	return strconv.ParseInt(claims.Subject, 10, 64)
}

func loadPublicKey(path string) *rsa.PublicKey {
	key, err := jwtgo.ParseRSAPublicKeyFromPEM(mustReadFile(path))
	if err != nil {
		logrus.WithError(err).WithField("path", path).Fatal("could not parse RSA public key")
	}

	return key
}

func loadPrivateKey(path string) *rsa.PrivateKey {
	key, err := jwtgo.ParseRSAPrivateKeyFromPEM(mustReadFile(path))
	if err != nil {
		logrus.WithError(err).WithField("path", path).Fatal("could not parse RSA private key")
	}

	return key
}

func mustReadFile(path string) []byte {
	b, err := os.ReadFile(path)
	if err != nil {
		logrus.WithError(err).WithField("path", path).Fatal("could not read key file")
	}

	return b
}
