package cartera

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/assecol/seguros-api/internal/domain"
	"github.com/assecol/seguros-api/internal/domain/entity"
)

// GenerarPlanDeCuotas construye las cuotas de una póliza MENSUAL (servicio de dominio).
// Cuota i (1..plazo): vence en fecha_inicio + i meses, monto = prima sin IVA / plazo.
// El residuo de la división no se redistribuye entre cuotas.
func GenerarPlanDeCuotas(p *entity.Poliza) ([]*entity.Cuota, error) {
	if p.ModoPago != entity.ModoPagoMensual {
		return nil, fmt.Errorf("plan de cuotas para modo %s: %w", p.ModoPago, domain.ErrInvalidInput)
	}
	if p.PlazoMeses <= 0 {
		return nil, fmt.Errorf("plazo en meses debe ser positivo: %w", domain.ErrInvalidInput)
	}
	monto := MontoMoneda(p.ValorPrimaSinIVA.Div(decimal.NewFromInt(int64(p.PlazoMeses))))
	cuotas := make([]*entity.Cuota, 0, p.PlazoMeses)
	for i := 1; i <= p.PlazoMeses; i++ {
		cuotas = append(cuotas, &entity.Cuota{
			PolizaID:         p.ID,
			NumeroCuota:      i,
			FechaVencimiento: SumarMeses(p.FechaInicio, i),
			MontoCuota:       monto,
			Estado:           entity.EstadoCuotaPendiente,
		})
	}
	return cuotas, nil
}

// ComisionRegistrable devuelve la comisión a registrar en el Pago de una póliza de
// contado/crédito, a precisión de moneda.
func ComisionRegistrable(p *entity.Poliza) decimal.Decimal {
	return MontoMoneda(p.ValorComision())
}
