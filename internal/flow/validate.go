package flow

import "github.com/svj/nbeconnect/internal/model"

// validateInput checks the required fields. Only an absent or empty value
// counts as missing; whitespace is a value. Both failures share the base
// key and when serial and password are both missing the password error wins.
func validateInput(input map[string]string) map[string]string {
	errs := map[string]string{}
	if input[model.KeySerial] == "" {
		errs[ErrorKeyBase] = ErrMissingSerial
	}
	if input[model.KeyPassword] == "" {
		errs[ErrorKeyBase] = ErrMissingPassword
	}
	return errs
}
