package memoria

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/assecol/seguros-api/internal/domain"
	"github.com/assecol/seguros-api/internal/domain/entity"
	"github.com/assecol/seguros-api/internal/domain/repository"
)

var (
	_ repository.TipoSiniestroRepository = (*TipoSiniestroRepo)(nil)
	_ repository.SiniestroRepository     = (*SiniestroRepo)(nil)
)

// TipoSiniestroRepo catálogo de siniestros en memoria.
type TipoSiniestroRepo struct {
	a acceso
}

// CreateTipo inserta el tipo. Nombre repetido → domain.ErrDuplicate.
func (r *TipoSiniestroRepo) CreateTipo(_ context.Context, t *entity.TipoSiniestro) error {
	return r.a(func(e *estado) error {
		for _, x := range e.tiposSiniestro {
			if x.Nombre == t.Nombre {
				return domain.ErrDuplicate
			}
		}
		if t.ID == "" {
			t.ID = uuid.New().String()
		}
		fila := *t
		fila.Subtipos = nil
		e.tiposSiniestro[t.ID] = fila
		return nil
	})
}

// CreateSubtipo inserta el subtipo. Tipo inexistente → domain.ErrInvalidInput.
func (r *TipoSiniestroRepo) CreateSubtipo(_ context.Context, s *entity.SubtipoSiniestro) error {
	return r.a(func(e *estado) error {
		t, ok := e.tiposSiniestro[s.TipoID]
		if !ok {
			return domain.ErrInvalidInput
		}
		for _, x := range e.subtipos {
			if x.TipoID == s.TipoID && x.Nombre == s.Nombre {
				return domain.ErrDuplicate
			}
		}
		if s.ID == "" {
			s.ID = uuid.New().String()
		}
		s.TipoNombre = t.Nombre
		e.subtipos[s.ID] = *s
		return nil
	})
}

// GetSubtipo nil si no existe.
func (r *TipoSiniestroRepo) GetSubtipo(_ context.Context, id string) (*entity.SubtipoSiniestro, error) {
	var out *entity.SubtipoSiniestro
	err := r.a(func(e *estado) error {
		if s, ok := e.subtipos[id]; ok {
			out = e.conNombreTipo(s)
		}
		return nil
	})
	return out, err
}

// List tipos por nombre con sus subtipos por nombre.
func (r *TipoSiniestroRepo) List(_ context.Context) ([]*entity.TipoSiniestro, error) {
	var out []*entity.TipoSiniestro
	err := r.a(func(e *estado) error {
		for _, t := range e.tiposSiniestro {
			t := t
			for _, s := range e.subtipos {
				if s.TipoID == t.ID {
					t.Subtipos = append(t.Subtipos, e.conNombreTipo(s))
				}
			}
			sort.Slice(t.Subtipos, func(i, j int) bool { return t.Subtipos[i].Nombre < t.Subtipos[j].Nombre })
			out = append(out, &t)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, err
}

func (e *estado) conNombreTipo(s entity.SubtipoSiniestro) *entity.SubtipoSiniestro {
	if t, ok := e.tiposSiniestro[s.TipoID]; ok {
		s.TipoNombre = t.Nombre
	}
	return &s
}

// SiniestroRepo siniestros y adjuntos en memoria.
type SiniestroRepo struct {
	s *Store
	a acceso
}

// Create inserta el siniestro y sus subtipos afectados. Póliza o subtipo inexistente →
// domain.ErrInvalidInput, como las llaves foráneas de Postgres.
func (r *SiniestroRepo) Create(_ context.Context, s *entity.Siniestro) error {
	return r.a(func(e *estado) error {
		if _, ok := e.polizas[s.PolizaID]; !ok {
			return domain.ErrInvalidInput
		}
		ids := make([]string, 0, len(s.Subtipos))
		for _, st := range s.Subtipos {
			if _, ok := e.subtipos[st.ID]; !ok {
				return domain.ErrInvalidInput
			}
			ids = append(ids, st.ID)
		}
		if s.ID == "" {
			s.ID = uuid.New().String()
		}
		fila := *s
		fila.Subtipos = nil
		e.siniestros[s.ID] = fila
		e.afectados[s.ID] = ids
		return nil
	})
}

// GetByID nil si no existe.
func (r *SiniestroRepo) GetByID(_ context.Context, id string) (*entity.Siniestro, error) {
	var out *entity.Siniestro
	err := r.a(func(e *estado) error {
		if s, ok := e.siniestros[id]; ok {
			out = e.completarSiniestro(s)
		}
		return nil
	})
	return out, err
}

// List siniestros que cumplen el filtro, fecha del siniestro más reciente primero.
func (r *SiniestroRepo) List(_ context.Context, f repository.FiltroSiniestros) ([]*entity.Siniestro, error) {
	var out []*entity.Siniestro
	err := r.a(func(e *estado) error {
		for _, s := range e.siniestros {
			if f.PolizaID != "" && s.PolizaID != f.PolizaID {
				continue
			}
			if f.Estado != "" && s.Estado != f.Estado {
				continue
			}
			c := e.completarSiniestro(s)
			if f.ClienteID != "" && c.ClienteID != f.ClienteID {
				continue
			}
			out = append(out, c)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].FechaSiniestro.Equal(out[j].FechaSiniestro) {
			return out[i].FechaSiniestro.After(out[j].FechaSiniestro)
		}
		return out[i].NumeroSiniestro < out[j].NumeroSiniestro
	})
	return out, err
}

// ActualizarEstado escribe solo el estado.
func (r *SiniestroRepo) ActualizarEstado(_ context.Context, id, estadoSiniestro string) error {
	return r.a(func(e *estado) error {
		s, ok := e.siniestros[id]
		if !ok {
			return domain.ErrNotFound
		}
		s.Estado = estadoSiniestro
		s.UpdatedAt = time.Now()
		e.siniestros[id] = s
		return nil
	})
}

// AgregarAdjunto registra un documento o foto del siniestro.
func (r *SiniestroRepo) AgregarAdjunto(_ context.Context, a *entity.AdjuntoSiniestro) error {
	if err := r.s.falla(OpSiniestroAdjunto); err != nil {
		return err
	}
	return r.a(func(e *estado) error {
		if _, ok := e.siniestros[a.SiniestroID]; !ok {
			return domain.ErrNotFound
		}
		if a.ID == "" {
			a.ID = uuid.New().String()
		}
		e.adjuntos[a.ID] = *a
		return nil
	})
}

// ListAdjuntos adjuntos del siniestro por fecha de subida.
func (r *SiniestroRepo) ListAdjuntos(_ context.Context, siniestroID string) ([]*entity.AdjuntoSiniestro, error) {
	var out []*entity.AdjuntoSiniestro
	err := r.a(func(e *estado) error {
		for _, a := range e.adjuntos {
			if a.SiniestroID == siniestroID {
				a := a
				out = append(out, &a)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].FechaSubida.Equal(out[j].FechaSubida) {
			return out[i].FechaSubida.Before(out[j].FechaSubida)
		}
		return out[i].NombreArchivo < out[j].NombreArchivo
	})
	return out, err
}

// completarSiniestro agrega los datos de la póliza y los subtipos afectados, como los JOIN de
// Postgres.
func (e *estado) completarSiniestro(s entity.Siniestro) *entity.Siniestro {
	if p, ok := e.polizas[s.PolizaID]; ok {
		s.NumeroPoliza = p.NumeroPoliza
		s.ClienteID = p.ClienteID
	}
	s.Subtipos = nil
	for _, id := range e.afectados[s.ID] {
		if st, ok := e.subtipos[id]; ok {
			s.Subtipos = append(s.Subtipos, e.conNombreTipo(st))
		}
	}
	return &s
}
