// Package memoria implementa los puertos de persistencia en memoria. Las transacciones trabajan
// sobre una copia del estado que se confirma completa o se descarta, con savepoints anidados.
// Permite inyectar fallas por operación para ejercitar los caminos de error.
package memoria

import (
	"context"
	"sync"

	"github.com/assecol/seguros-api/internal/application/ports"
	"github.com/assecol/seguros-api/internal/domain/entity"
	"github.com/assecol/seguros-api/internal/domain/repository"
)

// Operaciones en las que se puede inyectar una falla con FallarEn.
const (
	OpPolizaCreate          = "polizas.Create"
	OpPolizaUpdate          = "polizas.Update"
	OpPolizaEstadoCartera   = "polizas.ActualizarEstadoCartera"
	OpCuotasCreateBatch     = "cuotas.CreateBatch"
	OpCuotasMarcarEnMora    = "cuotas.MarcarVencidasEnMora"
	OpPagoCreate            = "pagos.Create"
	OpPagoUpdateMonto       = "pagos.UpdateMonto"
	OpVehiculoRecordatorio  = "vehiculos.ActualizarRecordatorioSOAT"
	OpPolizasActivasMensual = "polizas.ListActivasMensuales"
	OpSiniestroAdjunto      = "siniestros.AgregarAdjunto"
)

var _ ports.TxRunner = (*Store)(nil)

type estado struct {
	polizas   map[string]entity.Poliza
	cuotas    map[string]entity.Cuota
	pagos     map[string]entity.Pago
	vehiculos map[string]entity.Vehiculo
	tipos     map[string]entity.TipoSeguro
	users     map[string]entity.User
	companias map[string]entity.CompaniaAseguradora

	tiposSiniestro map[string]entity.TipoSiniestro
	subtipos       map[string]entity.SubtipoSiniestro
	siniestros     map[string]entity.Siniestro
	// subtipos afectados por siniestro, en el orden en que se registraron
	afectados map[string][]string
	adjuntos  map[string]entity.AdjuntoSiniestro
}

func nuevoEstado() *estado {
	return &estado{
		polizas:   map[string]entity.Poliza{},
		cuotas:    map[string]entity.Cuota{},
		pagos:     map[string]entity.Pago{},
		vehiculos: map[string]entity.Vehiculo{},
		tipos:     map[string]entity.TipoSeguro{},
		users:     map[string]entity.User{},
		companias: map[string]entity.CompaniaAseguradora{},

		tiposSiniestro: map[string]entity.TipoSiniestro{},
		subtipos:       map[string]entity.SubtipoSiniestro{},
		siniestros:     map[string]entity.Siniestro{},
		afectados:      map[string][]string{},
		adjuntos:       map[string]entity.AdjuntoSiniestro{},
	}
}

func (e *estado) clonar() *estado {
	c := nuevoEstado()
	for k, v := range e.polizas {
		c.polizas[k] = v
	}
	for k, v := range e.cuotas {
		c.cuotas[k] = v
	}
	for k, v := range e.pagos {
		c.pagos[k] = v
	}
	for k, v := range e.vehiculos {
		c.vehiculos[k] = v
	}
	for k, v := range e.tipos {
		c.tipos[k] = v
	}
	for k, v := range e.users {
		c.users[k] = v
	}
	for k, v := range e.companias {
		c.companias[k] = v
	}
	for k, v := range e.tiposSiniestro {
		c.tiposSiniestro[k] = v
	}
	for k, v := range e.subtipos {
		c.subtipos[k] = v
	}
	for k, v := range e.siniestros {
		c.siniestros[k] = v
	}
	for k, v := range e.afectados {
		c.afectados[k] = append([]string(nil), v...)
	}
	for k, v := range e.adjuntos {
		c.adjuntos[k] = v
	}
	return c
}

// acceso da a un repositorio el estado sobre el que opera: el confirmado (con lock) o el de una tx.
type acceso func(fn func(e *estado) error) error

// Store base de datos en memoria. Las transacciones se serializan.
type Store struct {
	mu    sync.Mutex
	datos *estado

	fallasMu sync.Mutex
	fallas   map[string]error
	llamadas map[string]int
}

// New crea un store vacío.
func New() *Store {
	return &Store{datos: nuevoEstado(), fallas: map[string]error{}, llamadas: map[string]int{}}
}

// FallarEn hace que la operación op retorne err hasta que se llame LimpiarFallas.
func (s *Store) FallarEn(op string, err error) {
	s.fallasMu.Lock()
	defer s.fallasMu.Unlock()
	s.fallas[op] = err
}

// LimpiarFallas elimina las fallas inyectadas.
func (s *Store) LimpiarFallas() {
	s.fallasMu.Lock()
	defer s.fallasMu.Unlock()
	s.fallas = map[string]error{}
}

// Llamadas cuántas veces se invocó op (se cuenten o no como escritura efectiva).
func (s *Store) Llamadas(op string) int {
	s.fallasMu.Lock()
	defer s.fallasMu.Unlock()
	return s.llamadas[op]
}

func (s *Store) falla(op string) error {
	s.fallasMu.Lock()
	defer s.fallasMu.Unlock()
	s.llamadas[op]++
	return s.fallas[op]
}

func (s *Store) confirmado(fn func(e *estado) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.datos)
}

func enTx(e *estado) acceso {
	return func(fn func(e *estado) error) error { return fn(e) }
}

func (s *Store) repos(a acceso) ports.Repos {
	return ports.Repos{
		Polizas:     &PolizaRepo{s: s, a: a},
		Cuotas:      &CuotaRepo{s: s, a: a},
		Pagos:       &PagoRepo{s: s, a: a},
		Vehiculos:   &VehiculoRepo{s: s, a: a},
		TiposSeguro: &TipoSeguroRepo{s: s, a: a},
		Companias:   &CompaniaRepo{a: a},
		Siniestros:  &SiniestroRepo{s: s, a: a},
	}
}

// Repos repositorios fuera de transacción (cada operación se confirma de inmediato).
func (s *Store) Repos() ports.Repos { return s.repos(s.confirmado) }

// Polizas repositorio de pólizas fuera de transacción.
func (s *Store) Polizas() repository.PolizaRepository { return &PolizaRepo{s: s, a: s.confirmado} }

// Cuotas repositorio de cuotas fuera de transacción.
func (s *Store) Cuotas() repository.CuotaRepository { return &CuotaRepo{s: s, a: s.confirmado} }

// Pagos repositorio de pagos fuera de transacción.
func (s *Store) Pagos() repository.PagoRepository { return &PagoRepo{s: s, a: s.confirmado} }

// Vehiculos repositorio de vehículos fuera de transacción.
func (s *Store) Vehiculos() repository.VehiculoRepository {
	return &VehiculoRepo{s: s, a: s.confirmado}
}

// TiposSeguro repositorio de tipos de seguro fuera de transacción.
func (s *Store) TiposSeguro() repository.TipoSeguroRepository {
	return &TipoSeguroRepo{s: s, a: s.confirmado}
}

// Companias repositorio de aseguradoras fuera de transacción.
func (s *Store) Companias() repository.CompaniaRepository { return &CompaniaRepo{a: s.confirmado} }

// TiposSiniestro catálogo de tipos y subtipos de siniestro.
func (s *Store) TiposSiniestro() repository.TipoSiniestroRepository {
	return &TipoSiniestroRepo{a: s.confirmado}
}

// Siniestros repositorio de siniestros fuera de transacción.
func (s *Store) Siniestros() repository.SiniestroRepository {
	return &SiniestroRepo{s: s, a: s.confirmado}
}

// Users repositorio de usuarios.
func (s *Store) Users() repository.UserRepository { return &UserRepo{s: s, a: s.confirmado} }

// Reportes consultas agregadas.
func (s *Store) Reportes() repository.ReporteRepository { return &ReporteRepo{a: s.confirmado} }

// Run ejecuta fn sobre una copia del estado; la copia reemplaza al estado confirmado solo si fn
// no retorna error.
func (s *Store) Run(ctx context.Context, fn func(repos ports.Repos, savepoint ports.Savepoint) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.datos.clonar()
	if err := fn(s.repos(enTx(tx)), s.savepoint(tx)); err != nil {
		return err
	}
	s.datos = tx
	return nil
}

func (s *Store) savepoint(tx *estado) ports.Savepoint {
	return func(ctx context.Context, fn func(repos ports.Repos) error) error {
		sp := tx.clonar()
		if err := fn(s.repos(enTx(sp))); err != nil {
			return err
		}
		*tx = *sp
		return nil
	}
}
