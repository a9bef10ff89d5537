package mux

import (
	"time"

	grecaptcha "github.com/ezzarghili/recaptcha-go"
	"github.com/sirupsen/logrus"

	"github.com/vilass86/cardgame/internal/config"
)

type recaptcha interface {
	// Verify checks that the token came from a real interaction
	Verify(token string) error
}

func newRecaptcha() recaptcha {
	secret := config.Instance().RecaptchaSecret
	if secret == "" {
		logrus.Warn("recaptcha verification is disabled")
		return noopRecaptcha{}
	}

	captcha, err := grecaptcha.NewReCAPTCHA(secret, grecaptcha.V3, 10*time.Second)
	if err != nil {
		logrus.WithError(err).Fatal("could not load recaptcha")
	}

	return &captcha
}

// noopRecaptcha accepts every token. It's used when no secret is configured.
type noopRecaptcha struct{}

func (noopRecaptcha) Verify(string) error {
	return nil
}
