package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/assecol/seguros-api/internal/domain"
	"github.com/assecol/seguros-api/internal/domain/entity"
	"github.com/assecol/seguros-api/internal/domain/repository"
)

var (
	_ repository.TipoSiniestroRepository = (*TipoSiniestroRepo)(nil)
	_ repository.SiniestroRepository     = (*SiniestroRepo)(nil)
)

// TipoSiniestroRepo catálogo de tipos y subtipos de siniestro sobre PostgreSQL.
type TipoSiniestroRepo struct {
	q Querier
}

// NewTipoSiniestroRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTipoSiniestroRepository(q Querier) *TipoSiniestroRepo {
	return &TipoSiniestroRepo{q: q}
}

// CreateTipo persiste un tipo. Nombre repetido → domain.ErrDuplicate.
func (r *TipoSiniestroRepo) CreateTipo(ctx context.Context, t *entity.TipoSiniestro) error {
	if _, err := r.q.Exec(ctx, `INSERT INTO tipos_siniestro (id, nombre) VALUES ($1, $2)`, t.ID, t.Nombre); err != nil {
		return envolver("insert tipo siniestro", err)
	}
	return nil
}

// CreateSubtipo persiste un subtipo. Tipo inexistente → domain.ErrInvalidInput.
func (r *TipoSiniestroRepo) CreateSubtipo(ctx context.Context, s *entity.SubtipoSiniestro) error {
	if _, err := r.q.Exec(ctx,
		`INSERT INTO subtipos_siniestro (id, tipo_id, nombre) VALUES ($1, $2, $3)`, s.ID, s.TipoID, s.Nombre,
	); err != nil {
		return envolver("insert subtipo siniestro", err)
	}
	return nil
}

const subtipoSelect = `
	SELECT s.id, s.tipo_id, t.nombre, s.nombre
	FROM subtipos_siniestro s
	JOIN tipos_siniestro t ON t.id = s.tipo_id`

func scanSubtipo(row pgx.Row, s *entity.SubtipoSiniestro) error {
	return row.Scan(&s.ID, &s.TipoID, &s.TipoNombre, &s.Nombre)
}

// GetSubtipo obtiene un subtipo por ID con el nombre de su tipo.
func (r *TipoSiniestroRepo) GetSubtipo(ctx context.Context, id string) (*entity.SubtipoSiniestro, error) {
	var s entity.SubtipoSiniestro
	if err := scanSubtipo(r.q.QueryRow(ctx, subtipoSelect+` WHERE s.id = $1`, id), &s); err != nil {
		if sinFilas(err) {
			return nil, nil
		}
		return nil, envolver("get subtipo siniestro", err)
	}
	return &s, nil
}

// List tipos por nombre con sus subtipos por nombre.
func (r *TipoSiniestroRepo) List(ctx context.Context) ([]*entity.TipoSiniestro, error) {
	rows, err := r.q.Query(ctx, `SELECT id, nombre FROM tipos_siniestro ORDER BY nombre`)
	if err != nil {
		return nil, envolver("list tipos siniestro", err)
	}
	var list []*entity.TipoSiniestro
	porID := map[string]*entity.TipoSiniestro{}
	for rows.Next() {
		var t entity.TipoSiniestro
		if err := rows.Scan(&t.ID, &t.Nombre); err != nil {
			rows.Close()
			return nil, envolver("scan tipo siniestro", err)
		}
		list = append(list, &t)
		porID[t.ID] = &t
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, envolver("list tipos siniestro", err)
	}

	subs, err := r.q.Query(ctx, subtipoSelect+` ORDER BY s.nombre`)
	if err != nil {
		return nil, envolver("list subtipos siniestro", err)
	}
	defer subs.Close()
	for subs.Next() {
		var s entity.SubtipoSiniestro
		if err := scanSubtipo(subs, &s); err != nil {
			return nil, envolver("scan subtipo siniestro", err)
		}
		if t, ok := porID[s.TipoID]; ok {
			t.Subtipos = append(t.Subtipos, &s)
		}
	}
	return list, subs.Err()
}

// SiniestroRepo implementación del puerto SiniestroRepository sobre PostgreSQL.
type SiniestroRepo struct {
	q Querier
}

// NewSiniestroRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSiniestroRepository(q Querier) *SiniestroRepo {
	return &SiniestroRepo{q: q}
}

const siniestroSelect = `
	SELECT s.id, s.poliza_id, p.numero_poliza, p.cliente_id, s.numero_siniestro, s.fecha_siniestro,
		s.descripcion, s.estado, s.created_at, s.updated_at
	FROM siniestros s
	JOIN polizas p ON p.id = s.poliza_id`

func scanSiniestro(row pgx.Row, s *entity.Siniestro) error {
	return row.Scan(&s.ID, &s.PolizaID, &s.NumeroPoliza, &s.ClienteID, &s.NumeroSiniestro, &s.FechaSiniestro,
		&s.Descripcion, &s.Estado, &s.CreatedAt, &s.UpdatedAt)
}

// Create inserta el siniestro y sus subtipos en un batch. Llamar dentro de una transacción para que
// el siniestro no quede sin subtipos si falla un vínculo.
func (r *SiniestroRepo) Create(ctx context.Context, s *entity.Siniestro) error {
	b := &pgx.Batch{}
	b.Queue(`
		INSERT INTO siniestros (id, poliza_id, numero_siniestro, fecha_siniestro, descripcion, estado, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		s.ID, s.PolizaID, s.NumeroSiniestro, s.FechaSiniestro, s.Descripcion, s.Estado, s.CreatedAt, s.UpdatedAt,
	)
	for i, st := range s.Subtipos {
		b.Queue(`INSERT INTO siniestro_subtipos (siniestro_id, subtipo_id, orden) VALUES ($1, $2, $3)`,
			s.ID, st.ID, i+1)
	}
	br := r.q.SendBatch(ctx, b)
	for i := 0; i < b.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return envolver("insert siniestro", err)
		}
	}
	if err := br.Close(); err != nil {
		return envolver("insert siniestro", err)
	}
	return nil
}

// GetByID obtiene un siniestro con sus subtipos afectados.
func (r *SiniestroRepo) GetByID(ctx context.Context, id string) (*entity.Siniestro, error) {
	var s entity.Siniestro
	if err := scanSiniestro(r.q.QueryRow(ctx, siniestroSelect+` WHERE s.id = $1`, id), &s); err != nil {
		if sinFilas(err) {
			return nil, nil
		}
		return nil, envolver("get siniestro", err)
	}
	if err := r.cargarSubtipos(ctx, []*entity.Siniestro{&s}); err != nil {
		return nil, err
	}
	return &s, nil
}

// List siniestros que cumplen el filtro, fecha del siniestro más reciente primero.
func (r *SiniestroRepo) List(ctx context.Context, f repository.FiltroSiniestros) ([]*entity.Siniestro, error) {
	rows, err := r.q.Query(ctx, siniestroSelect+`
		WHERE ($1 = '' OR s.poliza_id::text = $1)
			AND ($2 = '' OR p.cliente_id::text = $2)
			AND ($3 = '' OR s.estado = $3)
		ORDER BY s.fecha_siniestro DESC, s.numero_siniestro`,
		f.PolizaID, f.ClienteID, f.Estado,
	)
	if err != nil {
		return nil, envolver("list siniestros", err)
	}
	var list []*entity.Siniestro
	for rows.Next() {
		var s entity.Siniestro
		if err := scanSiniestro(rows, &s); err != nil {
			rows.Close()
			return nil, envolver("scan siniestro", err)
		}
		list = append(list, &s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, envolver("list siniestros", err)
	}
	if err := r.cargarSubtipos(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *SiniestroRepo) cargarSubtipos(ctx context.Context, siniestros []*entity.Siniestro) error {
	if len(siniestros) == 0 {
		return nil
	}
	ids := make([]string, len(siniestros))
	porID := make(map[string]*entity.Siniestro, len(siniestros))
	for i, s := range siniestros {
		ids[i] = s.ID
		porID[s.ID] = s
	}
	rows, err := r.q.Query(ctx, `
		SELECT ss.siniestro_id, st.id, st.tipo_id, t.nombre, st.nombre
		FROM siniestro_subtipos ss
		JOIN subtipos_siniestro st ON st.id = ss.subtipo_id
		JOIN tipos_siniestro t ON t.id = st.tipo_id
		WHERE ss.siniestro_id::text = ANY($1)
		ORDER BY ss.siniestro_id, ss.orden`, ids)
	if err != nil {
		return envolver("list subtipos afectados", err)
	}
	defer rows.Close()
	for rows.Next() {
		var siniestroID string
		var st entity.SubtipoSiniestro
		if err := rows.Scan(&siniestroID, &st.ID, &st.TipoID, &st.TipoNombre, &st.Nombre); err != nil {
			return envolver("scan subtipo afectado", err)
		}
		if s, ok := porID[siniestroID]; ok {
			s.Subtipos = append(s.Subtipos, &st)
		}
	}
	return rows.Err()
}

// ActualizarEstado escribe solo estado y updated_at.
func (r *SiniestroRepo) ActualizarEstado(ctx context.Context, id, estado string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE siniestros SET estado = $2, updated_at = now() WHERE id = $1`, id, estado)
	if err != nil {
		return envolver("update estado siniestro", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AgregarAdjunto registra un documento o foto ya subido al almacenamiento.
func (r *SiniestroRepo) AgregarAdjunto(ctx context.Context, a *entity.AdjuntoSiniestro) error {
	if _, err := r.q.Exec(ctx, `
		INSERT INTO siniestro_adjuntos (id, siniestro_id, clase, objeto_key, nombre_archivo, content_type, descripcion, fecha_subida)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.SiniestroID, a.Clase, a.Key, a.NombreArchivo, a.ContentType, a.Descripcion, a.FechaSubida,
	); err != nil {
		return envolver("insert adjunto siniestro", err)
	}
	return nil
}

// ListAdjuntos adjuntos del siniestro por fecha de subida.
func (r *SiniestroRepo) ListAdjuntos(ctx context.Context, siniestroID string) ([]*entity.AdjuntoSiniestro, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, siniestro_id, clase, objeto_key, nombre_archivo, content_type, descripcion, fecha_subida
		FROM siniestro_adjuntos
		WHERE siniestro_id::text = $1
		ORDER BY fecha_subida, nombre_archivo`, siniestroID)
	if err != nil {
		return nil, envolver("list adjuntos siniestro", err)
	}
	defer rows.Close()
	var list []*entity.AdjuntoSiniestro
	for rows.Next() {
		var a entity.AdjuntoSiniestro
		if err := rows.Scan(&a.ID, &a.SiniestroID, &a.Clase, &a.Key, &a.NombreArchivo, &a.ContentType,
			&a.Descripcion, &a.FechaSubida); err != nil {
			return nil, envolver("scan adjunto siniestro", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
