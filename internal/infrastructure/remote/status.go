package remote

import (
	"errors"
	"fmt"

	"github.com/jhoicas/corporate-meals/internal/domain"
)

// statusCode código HTTP de una respuesta rechazada sin traducción a un sentinel de dominio.
type statusCode int

func (s statusCode) Error() string { return fmt.Sprintf("HTTP %d", int(s)) }

// rejectedWith informa si err es un rechazo HTTP con alguno de los códigos dados.
func rejectedWith(err error, codes ...int) bool {
	var re *domain.RemoteError
	if !errors.As(err, &re) || !re.Rejected {
		return false
	}
	var sc statusCode
	if !errors.As(re.Err, &sc) {
		return false
	}
	for _, code := range codes {
		if int(sc) == code {
			return true
		}
	}
	return false
}
