package cartera

import (
	"github.com/shopspring/decimal"

	"github.com/assecol/seguros-api/internal/domain/entity"
)

// ProrrateoCancelacion calcula la devolución al cliente y la comisión que el corredor
// retorna cuando se cancela una póliza de CONTADO antes de su fin.
//
// Devuelve (nil, nil) si no aplica: modo distinto de CONTADO o sin fecha de cancelación.
// Si la vigencia es de 0 días o negativa devuelve (0, 0).
// Los días activos se limitan a [0, días totales]: cancelar después del fin no genera
// devoluciones negativas.
func ProrrateoCancelacion(p *entity.Poliza) (devolucion, comisionDevuelta *decimal.Decimal) {
	if p.ModoPago != entity.ModoPagoContado || p.FechaCancelacion == nil {
		return nil, nil
	}
	diasTotales := DiasEntre(p.FechaInicio, p.FechaFin)
	if diasTotales <= 0 {
		cero := decimal.Zero
		return &cero, &cero
	}
	diasActivos := DiasEntre(p.FechaInicio, *p.FechaCancelacion)
	if diasActivos < 0 {
		diasActivos = 0
	}
	if diasActivos > diasTotales {
		diasActivos = diasTotales
	}

	total := decimal.NewFromInt(int64(diasTotales))
	activos := decimal.NewFromInt(int64(diasActivos))
	prima := p.ValorPrimaSinIVA
	comision := p.ValorComision()

	primaConsumida := prima.Div(total).Mul(activos)
	comisionGanada := comision.Div(total).Mul(activos)

	d := prima.Sub(primaConsumida).RoundBank(2)
	c := comision.Sub(comisionGanada).RoundBank(2)
	return &d, &c
}
