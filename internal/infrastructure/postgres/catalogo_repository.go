package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/assecol/seguros-api/internal/domain"
	"github.com/assecol/seguros-api/internal/domain/entity"
	"github.com/assecol/seguros-api/internal/domain/repository"
)

var (
	_ repository.VehiculoRepository   = (*VehiculoRepo)(nil)
	_ repository.TipoSeguroRepository = (*TipoSeguroRepo)(nil)
	_ repository.CompaniaRepository   = (*CompaniaRepo)(nil)
)

const vehiculoSelect = `
	SELECT id, cliente_id, placa, marca, modelo, ano, soat_vencimiento_recordatorio
	FROM vehiculos`

func scanVehiculo(row pgx.Row, v *entity.Vehiculo) error {
	return row.Scan(&v.ID, &v.ClienteID, &v.Placa, &v.Marca, &v.Modelo, &v.Ano, &v.SOATVencimientoRecordatorio)
}

// VehiculoRepo implementación del puerto VehiculoRepository sobre PostgreSQL.
type VehiculoRepo struct {
	q Querier
}

// NewVehiculoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVehiculoRepository(q Querier) *VehiculoRepo {
	return &VehiculoRepo{q: q}
}

// Create persiste un vehículo. Placa repetida → domain.ErrDuplicate.
func (r *VehiculoRepo) Create(ctx context.Context, v *entity.Vehiculo) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO vehiculos (id, cliente_id, placa, marca, modelo, ano, soat_vencimiento_recordatorio)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		v.ID, v.ClienteID, v.Placa, v.Marca, v.Modelo, v.Ano, v.SOATVencimientoRecordatorio,
	)
	if err != nil {
		return envolver("insert vehiculo", err)
	}
	return nil
}

// GetByID obtiene un vehículo por ID.
func (r *VehiculoRepo) GetByID(ctx context.Context, id string) (*entity.Vehiculo, error) {
	var v entity.Vehiculo
	if err := scanVehiculo(r.q.QueryRow(ctx, vehiculoSelect+` WHERE id = $1`, id), &v); err != nil {
		if sinFilas(err) {
			return nil, nil
		}
		return nil, envolver("get vehiculo", err)
	}
	return &v, nil
}

// ListByCliente vehículos del cliente por placa.
func (r *VehiculoRepo) ListByCliente(ctx context.Context, clienteID string) ([]*entity.Vehiculo, error) {
	return r.listar(ctx, "list vehiculos",
		vehiculoSelect+` WHERE cliente_id::text = $1 ORDER BY placa`, clienteID)
}

// ListSOATPorVencer vehículos con recordatorio SOAT en [desde, hasta], por fecha y placa.
func (r *VehiculoRepo) ListSOATPorVencer(ctx context.Context, desde, hasta time.Time) ([]*entity.Vehiculo, error) {
	return r.listar(ctx, "list soat por vencer", vehiculoSelect+`
		WHERE soat_vencimiento_recordatorio BETWEEN $1 AND $2
		ORDER BY soat_vencimiento_recordatorio, placa`, desde, hasta)
}

func (r *VehiculoRepo) listar(ctx context.Context, op, query string, args ...any) ([]*entity.Vehiculo, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, envolver(op, err)
	}
	defer rows.Close()
	var list []*entity.Vehiculo
	for rows.Next() {
		var v entity.Vehiculo
		if err := scanVehiculo(rows, &v); err != nil {
			return nil, envolver("scan vehiculo", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// ActualizarRecordatorioSOAT fija la fecha del recordatorio SOAT.
func (r *VehiculoRepo) ActualizarRecordatorioSOAT(ctx context.Context, id string, fecha time.Time) error {
	cmd, err := r.q.Exec(ctx, `UPDATE vehiculos SET soat_vencimiento_recordatorio = $2 WHERE id = $1`, id, fecha)
	if err != nil {
		return envolver("update recordatorio soat", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// TipoSeguroRepo implementación del puerto TipoSeguroRepository sobre PostgreSQL.
type TipoSeguroRepo struct {
	q Querier
}

// NewTipoSeguroRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTipoSeguroRepository(q Querier) *TipoSeguroRepo {
	return &TipoSeguroRepo{q: q}
}

// Create persiste un tipo de seguro. Nombre repetido → domain.ErrDuplicate.
func (r *TipoSeguroRepo) Create(ctx context.Context, t *entity.TipoSeguro) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO tipos_seguro (id, nombre, descripcion, comision_porcentaje, porcentaje_iva)
		VALUES ($1, $2, $3, $4, $5)`,
		t.ID, t.Nombre, t.Descripcion, t.ComisionPorcentaje, t.PorcentajeIVA,
	)
	if err != nil {
		return envolver("insert tipo seguro", err)
	}
	return nil
}

// GetByID obtiene un tipo de seguro por ID.
func (r *TipoSeguroRepo) GetByID(ctx context.Context, id string) (*entity.TipoSeguro, error) {
	var t entity.TipoSeguro
	err := r.q.QueryRow(ctx, `
		SELECT id, nombre, descripcion, comision_porcentaje, porcentaje_iva
		FROM tipos_seguro WHERE id = $1`, id,
	).Scan(&t.ID, &t.Nombre, &t.Descripcion, &t.ComisionPorcentaje, &t.PorcentajeIVA)
	if err != nil {
		if sinFilas(err) {
			return nil, nil
		}
		return nil, envolver("get tipo seguro", err)
	}
	return &t, nil
}

// List todos los tipos por nombre.
func (r *TipoSeguroRepo) List(ctx context.Context) ([]*entity.TipoSeguro, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, nombre, descripcion, comision_porcentaje, porcentaje_iva
		FROM tipos_seguro ORDER BY nombre`)
	if err != nil {
		return nil, envolver("list tipos seguro", err)
	}
	defer rows.Close()
	var list []*entity.TipoSeguro
	for rows.Next() {
		var t entity.TipoSeguro
		if err := rows.Scan(&t.ID, &t.Nombre, &t.Descripcion, &t.ComisionPorcentaje, &t.PorcentajeIVA); err != nil {
			return nil, envolver("scan tipo seguro", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// CompaniaRepo implementación del puerto CompaniaRepository sobre PostgreSQL.
type CompaniaRepo struct {
	q Querier
}

// NewCompaniaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCompaniaRepository(q Querier) *CompaniaRepo {
	return &CompaniaRepo{q: q}
}

// Create persiste una aseguradora. Nombre repetido → domain.ErrDuplicate.
func (r *CompaniaRepo) Create(ctx context.Context, c *entity.CompaniaAseguradora) error {
	if _, err := r.q.Exec(ctx,
		`INSERT INTO companias_aseguradoras (id, nombre) VALUES ($1, $2)`, c.ID, c.Nombre,
	); err != nil {
		return envolver("insert compania", err)
	}
	return nil
}

// GetByID obtiene una aseguradora por ID.
func (r *CompaniaRepo) GetByID(ctx context.Context, id string) (*entity.CompaniaAseguradora, error) {
	var c entity.CompaniaAseguradora
	err := r.q.QueryRow(ctx, `SELECT id, nombre FROM companias_aseguradoras WHERE id = $1`, id).
		Scan(&c.ID, &c.Nombre)
	if err != nil {
		if sinFilas(err) {
			return nil, nil
		}
		return nil, envolver("get compania", err)
	}
	return &c, nil
}

// List aseguradoras por nombre.
func (r *CompaniaRepo) List(ctx context.Context) ([]*entity.CompaniaAseguradora, error) {
	rows, err := r.q.Query(ctx, `SELECT id, nombre FROM companias_aseguradoras ORDER BY nombre`)
	if err != nil {
		return nil, envolver("list companias", err)
	}
	defer rows.Close()
	var list []*entity.CompaniaAseguradora
	for rows.Next() {
		var c entity.CompaniaAseguradora
		if err := rows.Scan(&c.ID, &c.Nombre); err != nil {
			return nil, envolver("scan compania", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
