package entity

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

// TipoSeguro categoría de seguro (Vida, Automóvil, SOAT...) con sus porcentajes.
type TipoSeguro struct {
	ID                 string
	Nombre             string
	Descripcion        string
	ComisionPorcentaje decimal.Decimal // ej. 10.00
	PorcentajeIVA      decimal.Decimal // ej. 19.00
}

// EsSOAT indica si el nombre contiene "soat" sin distinguir mayúsculas.
// Un Caser guarda estado, por eso se crea uno por llamada.
func EsSOAT(nombreTipo string) bool {
	return strings.Contains(cases.Fold().String(nombreTipo), "soat")
}
