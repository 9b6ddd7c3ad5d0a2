package cartera

import "time"

// Fecha normaliza t a la fecha civil (medianoche UTC), descartando la hora.
func Fecha(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SumarMeses desplaza la fecha n meses calendario conservando el día del mes;
// si el mes destino es más corto se usa su último día (31 ene + 1 mes = 28/29 feb).
func SumarMeses(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	primero := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	if ultimo := primero.AddDate(0, 1, -1).Day(); d > ultimo {
		d = ultimo
	}
	return time.Date(primero.Year(), primero.Month(), d, 0, 0, 0, 0, time.UTC)
}

// DiasEntre devuelve los días calendario de desde a hasta (negativo si hasta es anterior).
func DiasEntre(desde, hasta time.Time) int {
	return int(Fecha(hasta).Sub(Fecha(desde)).Hours() / 24)
}
