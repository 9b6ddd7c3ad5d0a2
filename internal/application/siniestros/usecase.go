// Package siniestros registra las reclamaciones sobre pólizas, su flujo de estados y los
// documentos y fotos que las soportan.
package siniestros

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/assecol/seguros-api/internal/application/dto"
	"github.com/assecol/seguros-api/internal/application/ports"
	"github.com/assecol/seguros-api/internal/domain"
	"github.com/assecol/seguros-api/internal/domain/entity"
	"github.com/assecol/seguros-api/internal/domain/repository"
	"github.com/assecol/seguros-api/pkg/logger"
)

// ArchivoStore almacenamiento de los adjuntos (objeto binario + llave).
type ArchivoStore interface {
	Guardar(ctx context.Context, key, contentType string, r io.Reader, size int64) (string, error)
}

// SiniestroUseCase casos de uso de siniestros y su catálogo de tipos.
type SiniestroUseCase struct {
	tx         ports.TxRunner
	siniestros repository.SiniestroRepository
	tipos      repository.TipoSiniestroRepository
	archivos   ArchivoStore // nil si no hay almacenamiento configurado
	log        *logger.Logger
}

// NewSiniestroUseCase construye el caso de uso. archivos puede ser nil.
func NewSiniestroUseCase(tx ports.TxRunner, siniestros repository.SiniestroRepository, tipos repository.TipoSiniestroRepository, archivos ArchivoStore, log *logger.Logger) *SiniestroUseCase {
	return &SiniestroUseCase{tx: tx, siniestros: siniestros, tipos: tipos, archivos: archivos, log: log.Component("siniestros")}
}

// CrearTipo registra un tipo de siniestro. Nombre repetido → domain.ErrDuplicate.
func (uc *SiniestroUseCase) CrearTipo(ctx context.Context, in dto.CreateTipoSiniestroRequest) (*dto.TipoSiniestroResponse, error) {
	nombre := strings.TrimSpace(in.Nombre)
	if nombre == "" {
		return nil, domain.ErrInvalidInput
	}
	t := &entity.TipoSiniestro{ID: uuid.New().String(), Nombre: nombre}
	if err := uc.tipos.CreateTipo(ctx, t); err != nil {
		return nil, err
	}
	return toTipoResponse(t), nil
}

// CrearSubtipo agrega un subtipo al tipo. Tipo inexistente → domain.ErrInvalidInput.
func (uc *SiniestroUseCase) CrearSubtipo(ctx context.Context, tipoID string, in dto.CreateSubtipoSiniestroRequest) (*dto.SubtipoSiniestroResponse, error) {
	nombre := strings.TrimSpace(in.Nombre)
	if nombre == "" || tipoID == "" {
		return nil, domain.ErrInvalidInput
	}
	s := &entity.SubtipoSiniestro{ID: uuid.New().String(), TipoID: tipoID, Nombre: nombre}
	if err := uc.tipos.CreateSubtipo(ctx, s); err != nil {
		return nil, err
	}
	out := toSubtipoResponse(s)
	return &out, nil
}

// ListarTipos catálogo completo, tipos y subtipos por nombre.
func (uc *SiniestroUseCase) ListarTipos(ctx context.Context) ([]dto.TipoSiniestroResponse, error) {
	list, err := uc.tipos.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TipoSiniestroResponse, 0, len(list))
	for _, t := range list {
		out = append(out, *toTipoResponse(t))
	}
	return out, nil
}

// Crear registra el siniestro en estado NUEVO. Exige póliza existente y al menos un subtipo;
// los subtipos repetidos se guardan una sola vez.
func (uc *SiniestroUseCase) Crear(ctx context.Context, in dto.CreateSiniestroRequest) (*dto.SiniestroResponse, error) {
	numero := strings.TrimSpace(in.NumeroSiniestro)
	descripcion := strings.TrimSpace(in.Descripcion)
	if in.PolizaID == "" || numero == "" || descripcion == "" {
		return nil, domain.ErrInvalidInput
	}
	fecha, err := time.Parse(dto.FormatoFecha, strings.TrimSpace(in.FechaSiniestro))
	if err != nil {
		return nil, fmt.Errorf("fecha %q: %w", in.FechaSiniestro, domain.ErrInvalidInput)
	}
	subtipos, err := uc.resolverSubtipos(ctx, in.SubtipoIDs)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	s := &entity.Siniestro{
		ID:              uuid.New().String(),
		PolizaID:        in.PolizaID,
		NumeroSiniestro: numero,
		FechaSiniestro:  fecha,
		Descripcion:     descripcion,
		Estado:          entity.EstadoSiniestroNuevo,
		Subtipos:        subtipos,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	err = uc.tx.Run(ctx, func(repos ports.Repos, _ ports.Savepoint) error {
		p, err := repos.Polizas.GetByID(ctx, in.PolizaID)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("póliza %s: %w", in.PolizaID, domain.ErrInvalidInput)
		}
		s.NumeroPoliza = p.NumeroPoliza
		s.ClienteID = p.ClienteID
		return repos.Siniestros.Create(ctx, s)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("siniestro_id", s.ID).Str("numero_poliza", s.NumeroPoliza).Msg("siniestro registrado")
	return ToSiniestroResponse(s, nil), nil
}

func (uc *SiniestroUseCase) resolverSubtipos(ctx context.Context, ids []string) ([]*entity.SubtipoSiniestro, error) {
	vistos := map[string]bool{}
	var out []*entity.SubtipoSiniestro
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || vistos[id] {
			continue
		}
		vistos[id] = true
		st, err := uc.tipos.GetSubtipo(ctx, id)
		if err != nil {
			return nil, err
		}
		if st == nil {
			return nil, fmt.Errorf("subtipo %s: %w", id, domain.ErrInvalidInput)
		}
		out = append(out, st)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("se requiere al menos un subtipo: %w", domain.ErrInvalidInput)
	}
	return out, nil
}

// CambiarEstado mueve el siniestro según el flujo:
// NUEVO → EN_PROCESO | PENDIENTE_DOCUMENTOS; EN_PROCESO ⇄ PENDIENTE_DOCUMENTOS;
// EN_PROCESO | PENDIENTE_DOCUMENTOS → CERRADO_A_FAVOR | CERRADO_EN_CONTRA.
// Pedir el estado actual no cambia nada. Un siniestro cerrado no admite cambios.
func (uc *SiniestroUseCase) CambiarEstado(ctx context.Context, id string, in dto.CambiarEstadoSiniestroRequest) (*dto.SiniestroResponse, error) {
	destino := strings.ToUpper(strings.TrimSpace(in.Estado))
	if !entity.EstadoSiniestroValido(destino) {
		return nil, fmt.Errorf("estado %q: %w", in.Estado, domain.ErrInvalidInput)
	}
	var s *entity.Siniestro
	var anterior string
	err := uc.tx.Run(ctx, func(repos ports.Repos, _ ports.Savepoint) error {
		var err error
		s, err = repos.Siniestros.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrNotFound
		}
		anterior = s.Estado
		if s.Estado == destino {
			return nil
		}
		if s.Cerrado() {
			return domain.ErrSiniestroCerrado
		}
		if !s.PuedePasarA(destino) {
			return fmt.Errorf("%s → %s: %w", s.Estado, destino, domain.ErrTransicionInvalida)
		}
		if err := repos.Siniestros.ActualizarEstado(ctx, s.ID, destino); err != nil {
			return err
		}
		s.Estado = destino
		s.UpdatedAt = time.Now()
		return nil
	})
	if err != nil {
		return nil, err
	}
	if anterior != s.Estado {
		uc.log.Info().Str("siniestro_id", s.ID).Str("desde", anterior).Str("hacia", s.Estado).Msg("estado de siniestro actualizado")
	}
	return ToSiniestroResponse(s, nil), nil
}

// AdjuntarArchivo sube un documento o foto del siniestro y lo registra. Las fotos deben ser
// imágenes. Un siniestro cerrado no recibe adjuntos.
func (uc *SiniestroUseCase) AdjuntarArchivo(ctx context.Context, id, clase, nombre, contentType, descripcion string, data []byte) (*dto.AdjuntoSiniestroResponse, error) {
	if uc.archivos == nil {
		return nil, fmt.Errorf("almacenamiento de adjuntos: %w", domain.ErrNoDisponible)
	}
	if clase != entity.AdjuntoDocumento && clase != entity.AdjuntoFoto {
		return nil, fmt.Errorf("clase de adjunto %q: %w", clase, domain.ErrInvalidInput)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("archivo vacío: %w", domain.ErrInvalidInput)
	}
	if clase == entity.AdjuntoFoto && !entity.EsImagen(contentType) {
		return nil, fmt.Errorf("la foto debe ser una imagen (%s): %w", contentType, domain.ErrInvalidInput)
	}
	s, err := uc.siniestros.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if s.Cerrado() {
		return nil, domain.ErrSiniestroCerrado
	}

	a := &entity.AdjuntoSiniestro{
		ID:            uuid.New().String(),
		SiniestroID:   s.ID,
		Clase:         clase,
		NombreArchivo: limpiarNombre(nombre),
		ContentType:   contentType,
		Descripcion:   strings.TrimSpace(descripcion),
		FechaSubida:   time.Now(),
	}
	key := fmt.Sprintf("siniestros/%s/%s/%s-%s", s.ID, entity.CarpetaAdjunto(clase), a.ID, a.NombreArchivo)
	a.Key, err = uc.archivos.Guardar(ctx, key, contentType, bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("guardar adjunto: %w", err)
	}
	if err := uc.siniestros.AgregarAdjunto(ctx, a); err != nil {
		uc.log.Warn().Str("siniestro_id", s.ID).Str("key", a.Key).Err(err).Msg("objeto subido sin registro de adjunto")
		return nil, err
	}
	out := toAdjuntoResponse(a)
	return &out, nil
}

// Obtener devuelve el siniestro con sus subtipos y adjuntos.
func (uc *SiniestroUseCase) Obtener(ctx context.Context, id string) (*dto.SiniestroResponse, error) {
	s, err := uc.siniestros.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	adjuntos, err := uc.siniestros.ListAdjuntos(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	return ToSiniestroResponse(s, adjuntos), nil
}

// Listar siniestros que cumplen el filtro, fecha del siniestro más reciente primero.
func (uc *SiniestroUseCase) Listar(ctx context.Context, in dto.ListarSiniestrosRequest) ([]*dto.SiniestroResponse, error) {
	if in.Estado != "" && !entity.EstadoSiniestroValido(in.Estado) {
		return nil, fmt.Errorf("estado %q: %w", in.Estado, domain.ErrInvalidInput)
	}
	list, err := uc.siniestros.List(ctx, repository.FiltroSiniestros{
		PolizaID:  in.PolizaID,
		ClienteID: in.ClienteID,
		Estado:    in.Estado,
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SiniestroResponse, 0, len(list))
	for _, s := range list {
		out = append(out, ToSiniestroResponse(s, nil))
	}
	return out, nil
}

func limpiarNombre(nombre string) string {
	base := path.Base(strings.ReplaceAll(nombre, "\\", "/"))
	base = strings.Map(func(r rune) rune {
		if r == ' ' || r == '/' {
			return '_'
		}
		return r
	}, base)
	if base == "." || base == "" || base == "/" {
		return "archivo"
	}
	return base
}

// ToSiniestroResponse mapea la entidad a su salida.
func ToSiniestroResponse(s *entity.Siniestro, adjuntos []*entity.AdjuntoSiniestro) *dto.SiniestroResponse {
	out := &dto.SiniestroResponse{
		ID:              s.ID,
		PolizaID:        s.PolizaID,
		NumeroPoliza:    s.NumeroPoliza,
		ClienteID:       s.ClienteID,
		NumeroSiniestro: s.NumeroSiniestro,
		FechaSiniestro:  s.FechaSiniestro.Format(dto.FormatoFecha),
		Descripcion:     s.Descripcion,
		Estado:          s.Estado,
		Subtipos:        make([]dto.SubtipoSiniestroResponse, 0, len(s.Subtipos)),
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
	for _, st := range s.Subtipos {
		out.Subtipos = append(out.Subtipos, toSubtipoResponse(st))
	}
	for _, a := range adjuntos {
		out.Adjuntos = append(out.Adjuntos, toAdjuntoResponse(a))
	}
	return out
}

func toTipoResponse(t *entity.TipoSiniestro) *dto.TipoSiniestroResponse {
	out := &dto.TipoSiniestroResponse{
		ID:       t.ID,
		Nombre:   t.Nombre,
		Subtipos: make([]dto.SubtipoSiniestroResponse, 0, len(t.Subtipos)),
	}
	for _, s := range t.Subtipos {
		out.Subtipos = append(out.Subtipos, toSubtipoResponse(s))
	}
	return out
}

func toSubtipoResponse(s *entity.SubtipoSiniestro) dto.SubtipoSiniestroResponse {
	return dto.SubtipoSiniestroResponse{ID: s.ID, TipoID: s.TipoID, Tipo: s.TipoNombre, Nombre: s.Nombre}
}

func toAdjuntoResponse(a *entity.AdjuntoSiniestro) dto.AdjuntoSiniestroResponse {
	return dto.AdjuntoSiniestroResponse{
		ID:            a.ID,
		Clase:         a.Clase,
		Key:           a.Key,
		NombreArchivo: a.NombreArchivo,
		ContentType:   a.ContentType,
		Descripcion:   a.Descripcion,
		FechaSubida:   a.FechaSubida,
	}
}
