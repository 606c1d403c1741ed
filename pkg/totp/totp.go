package totp

import (
	"encoding/base64"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	period     = 30
	skew       = 2 // time steps accepted either side of now
	secretSize = 32
	qrSize     = 256
)

// Secret is a freshly generated TOTP secret plus the otpauth:// URI that
// authenticator apps consume.
type Secret struct {
	Base32          string
	ProvisioningURI string
}

// GenerateSecret creates a random secret labeled with the account email so
// authenticator apps can tell accounts apart.
func GenerateSecret(issuer, accountEmail string) (Secret, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: accountEmail,
		SecretSize:  secretSize,
	})
	if err != nil {
		return Secret{}, err
	}

	return Secret{
		Base32:          key.Secret(),
		ProvisioningURI: key.URL(),
	}, nil
}

// QRCodeDataURI renders a provisioning URI as a PNG data URI suitable for an
// <img> tag.
func QRCodeDataURI(provisioningURI string) (string, error) {
	png, err := qrcode.Encode(provisioningURI, qrcode.Medium, qrSize)
	if err != nil {
		return "", err
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// VerifyCode checks code against secret, tolerating up to two 30-second time
// steps of clock drift in either direction.
func VerifyCode(code, secret string) bool {
	return verifyAt(code, secret, time.Now())
}

func verifyAt(code, secret string, at time.Time) bool {
	valid, err := totp.ValidateCustom(code, secret, at.UTC(), totp.ValidateOpts{
		Period:    period,
		Skew:      skew,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	return err == nil && valid
}
