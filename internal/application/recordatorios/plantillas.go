package recordatorios

import (
	"fmt"
	"html"

	"github.com/assecol/seguros-api/internal/application/dto"
	"github.com/assecol/seguros-api/internal/domain/repository"
)

func plantillaCliente(item repository.PolizaPorVencer) string {
	p := item.Poliza
	return fmt.Sprintf(`
		<html>
		<body>
			<h2>Tu póliza está por vencer</h2>
			<p>Hola %s,</p>
			<p>Te recordamos que tu póliza de <b>%s</b> número <b>%s</b> vence el <b>%s</b>.</p>
			<p>Comunícate con tu asesor para renovarla a tiempo y mantener tu protección.</p>
			<br>
			<p>Cordialmente,<br>Tu equipo de seguros</p>
		</body>
		</html>
		`,
		html.EscapeString(item.ClienteNombre),
		html.EscapeString(p.TipoSeguroNombre),
		html.EscapeString(p.NumeroPoliza),
		p.FechaFin.Format(dto.FormatoFecha),
	)
}

func plantillaAdmin(item repository.PolizaPorVencer) string {
	p := item.Poliza
	return fmt.Sprintf(`
		<html>
		<body>
			<h2>Póliza próxima a vencer</h2>
			<ul>
				<li>Cliente: %s (%s)</li>
				<li>Póliza: %s</li>
				<li>Tipo: %s</li>
				<li>Vence: %s</li>
				<li>Modo de pago: %s</li>
			</ul>
		</body>
		</html>
		`,
		html.EscapeString(item.ClienteNombre),
		html.EscapeString(item.ClienteEmail),
		html.EscapeString(p.NumeroPoliza),
		html.EscapeString(p.TipoSeguroNombre),
		p.FechaFin.Format(dto.FormatoFecha),
		p.ModoPago,
	)
}
