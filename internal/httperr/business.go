package httperr

import "errors"

// Kind classifica erros de negócio pela forma como o chamador deve reagir.
type Kind string

const (
	// KindInvalid: entrada malformada ou fora da política; não repetir sem mudar a entrada.
	KindInvalid Kind = "invalid_request"
	// KindConflict: o horário foi ocupado por outra reserva; buscar disponibilidade de novo.
	KindConflict Kind = "conflict"
	// KindTenantMismatch: referência a dado de outro tenant. Erro de autorização, nunca corrigido.
	KindTenantMismatch Kind = "tenant_mismatch"
	// KindNotFound: profissional, serviço ou agendamento inexistente.
	KindNotFound Kind = "not_found"
)

type BusinessError struct {
	Kind Kind
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

// ErrBusiness mantém a assinatura antiga; erros sem tipo explícito são inválidos.
func ErrBusiness(code string) error {
	return BusinessError{Kind: KindInvalid, Code: code}
}

func Invalid(code string) error {
	return BusinessError{Kind: KindInvalid, Code: code}
}

func Conflict(code string) error {
	return BusinessError{Kind: KindConflict, Code: code}
}

func TenantMismatch(code string) error {
	return BusinessError{Kind: KindTenantMismatch, Code: code}
}

func NotFound(code string) error {
	return BusinessError{Kind: KindNotFound, Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// KindOf devolve o tipo do erro de negócio, ou "" quando err não é de negócio.
func KindOf(err error) Kind {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind
	}
	return ""
}

func IsConflict(err error) bool {
	return KindOf(err) == KindConflict
}

func IsTenantMismatch(err error) bool {
	return KindOf(err) == KindTenantMismatch
}
