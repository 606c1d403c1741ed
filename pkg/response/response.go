package response

import "github.com/labstack/echo/v4"

// Envelope is the wire shape every endpoint returns: {success, data} on
// success, {success:false, message} on failure.
type Envelope struct {
	Success           bool   `json:"success"`
	RequiresTwoFactor bool   `json:"requiresTwoFactor,omitempty"`
	Message           string `json:"message,omitempty"`
	Data              any    `json:"data,omitempty"`
}

func Success(c echo.Context, status int, data any) error {
	return c.JSON(status, Envelope{Success: true, Data: data})
}

func SuccessMessage(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, Envelope{Success: true, Message: message, Data: data})
}

// TwoFactorChallenge is the login branch taken when the account has 2FA
// enabled: no tokens, only the user id the client must echo back.
func TwoFactorChallenge(c echo.Context, status int, data any) error {
	return c.JSON(status, Envelope{Success: true, RequiresTwoFactor: true, Data: data})
}

func Error(c echo.Context, status int, message string) error {
	return c.JSON(status, Envelope{Success: false, Message: message})
}
