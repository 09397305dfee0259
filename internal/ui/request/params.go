package request

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// LoginParameters are the parameters of the login function. Empty strings
// are accepted; missing fields are not.
type LoginParameters struct {
	Login    *string `json:"login" validate:"required"`
	Password *string `json:"password" validate:"required"`
}

// OpenURLParameters are the parameters of the open_url function.
type OpenURLParameters struct {
	URL *string `json:"url" validate:"required"`
}

var validate = validator.New()

func decodeParameters(raw json.RawMessage, dst interface{}) error {
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return fmt.Errorf("%w: missing parameters", ErrInvalidParameters)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParameters, err)
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParameters, err)
	}
	return nil
}

// LoginArguments builds the play arguments for a login: the password flag,
// the login, the literal "server", then the configured extras.
func LoginArguments(login, password string, extras []string) []string {
	args := make([]string, 0, 3+len(extras))
	args = append(args, "-t:"+password, login, "server")
	return append(args, extras...)
}
