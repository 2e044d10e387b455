package backend

import "errors"

// Identity error codes, matching the auth provider codes the login and
// registration pages translate for the user.
const (
	CodeInvalidCredentials = "auth/invalid-login-credentials"
	CodeInvalidEmail       = "auth/invalid-email"
	CodeEmailInUse         = "auth/email-already-in-use"
	CodeWeakPassword       = "auth/weak-password"
)

// Error is a coded backend failure.
type Error struct {
	Code string
}

func (e *Error) Error() string { return e.Code }

func coded(code string) *Error { return &Error{Code: code} }

// GenericMessage is shown for any failure without a mapped code.
const GenericMessage = "Houve um erro inesperado, tente mais tarde."

var messages = map[string]string{
	CodeInvalidCredentials: "Usuário/Senha incorreta",
	CodeInvalidEmail:       "Favor informar um email válido.",
	CodeEmailInUse:         "Este e-mail já esta sendo utilizado",
	CodeWeakPassword:       "A senha deve ter no mínimo 6 caracteres",
}

// MessageFor maps a failure to its user-facing message, falling back to
// GenericMessage for unmapped codes and non-coded errors.
func MessageFor(err error) string {
	var be *Error
	if errors.As(err, &be) {
		if m, ok := messages[be.Code]; ok {
			return m
		}
	}
	return GenericMessage
}
