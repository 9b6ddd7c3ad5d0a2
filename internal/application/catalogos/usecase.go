package catalogos

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/assecol/seguros-api/internal/application/dto"
	"github.com/assecol/seguros-api/internal/domain"
	"github.com/assecol/seguros-api/internal/domain/entity"
	"github.com/assecol/seguros-api/internal/domain/repository"
)

var cien = decimal.NewFromInt(100)

// CatalogoUseCase tipos de seguro, aseguradoras y vehículos de clientes.
type CatalogoUseCase struct {
	tipos     repository.TipoSeguroRepository
	vehiculos repository.VehiculoRepository
	companias repository.CompaniaRepository
}

// NewCatalogoUseCase construye el caso de uso.
func NewCatalogoUseCase(tipos repository.TipoSeguroRepository, vehiculos repository.VehiculoRepository, companias repository.CompaniaRepository) *CatalogoUseCase {
	return &CatalogoUseCase{tipos: tipos, vehiculos: vehiculos, companias: companias}
}

// CrearTipoSeguro porcentajes en [0, 100].
func (uc *CatalogoUseCase) CrearTipoSeguro(ctx context.Context, in dto.CreateTipoSeguroRequest) (*dto.TipoSeguroResponse, error) {
	nombre := strings.TrimSpace(in.Nombre)
	if nombre == "" {
		return nil, domain.ErrInvalidInput
	}
	for _, pct := range []decimal.Decimal{in.ComisionPorcentaje, in.PorcentajeIVA} {
		if pct.IsNegative() || pct.GreaterThan(cien) {
			return nil, fmt.Errorf("porcentaje fuera de rango: %w", domain.ErrInvalidInput)
		}
	}
	t := &entity.TipoSeguro{
		ID:                 uuid.New().String(),
		Nombre:             nombre,
		Descripcion:        in.Descripcion,
		ComisionPorcentaje: in.ComisionPorcentaje,
		PorcentajeIVA:      in.PorcentajeIVA,
	}
	if err := uc.tipos.Create(ctx, t); err != nil {
		return nil, err
	}
	return toTipoSeguroResponse(t), nil
}

// ListarTiposSeguro todos los tipos ordenados por nombre.
func (uc *CatalogoUseCase) ListarTiposSeguro(ctx context.Context) ([]dto.TipoSeguroResponse, error) {
	list, err := uc.tipos.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TipoSeguroResponse, 0, len(list))
	for _, t := range list {
		out = append(out, *toTipoSeguroResponse(t))
	}
	return out, nil
}

// CrearCompania registra una aseguradora. Nombre repetido → domain.ErrDuplicate.
func (uc *CatalogoUseCase) CrearCompania(ctx context.Context, in dto.CreateCompaniaRequest) (*dto.CompaniaResponse, error) {
	nombre := strings.TrimSpace(in.Nombre)
	if nombre == "" {
		return nil, domain.ErrInvalidInput
	}
	c := &entity.CompaniaAseguradora{ID: uuid.New().String(), Nombre: nombre}
	if err := uc.companias.Create(ctx, c); err != nil {
		return nil, err
	}
	return &dto.CompaniaResponse{ID: c.ID, Nombre: c.Nombre}, nil
}

// ListarCompanias aseguradoras ordenadas por nombre.
func (uc *CatalogoUseCase) ListarCompanias(ctx context.Context) ([]dto.CompaniaResponse, error) {
	list, err := uc.companias.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CompaniaResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.CompaniaResponse{ID: c.ID, Nombre: c.Nombre})
	}
	return out, nil
}

// CrearVehiculo la placa se normaliza a mayúsculas sin espacios.
func (uc *CatalogoUseCase) CrearVehiculo(ctx context.Context, in dto.CreateVehiculoRequest) (*dto.VehiculoResponse, error) {
	placa := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(in.Placa), " ", ""))
	if placa == "" || in.ClienteID == "" {
		return nil, domain.ErrInvalidInput
	}
	v := &entity.Vehiculo{
		ID:        uuid.New().String(),
		ClienteID: in.ClienteID,
		Placa:     placa,
		Marca:     in.Marca,
		Modelo:    in.Modelo,
		Ano:       in.Ano,
	}
	if err := uc.vehiculos.Create(ctx, v); err != nil {
		return nil, err
	}
	return toVehiculoResponse(v), nil
}

// ListarVehiculos vehículos de un cliente.
func (uc *CatalogoUseCase) ListarVehiculos(ctx context.Context, clienteID string) ([]dto.VehiculoResponse, error) {
	list, err := uc.vehiculos.ListByCliente(ctx, clienteID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VehiculoResponse, 0, len(list))
	for _, v := range list {
		out = append(out, *toVehiculoResponse(v))
	}
	return out, nil
}

func toTipoSeguroResponse(t *entity.TipoSeguro) *dto.TipoSeguroResponse {
	return &dto.TipoSeguroResponse{
		ID:                 t.ID,
		Nombre:             t.Nombre,
		Descripcion:        t.Descripcion,
		ComisionPorcentaje: t.ComisionPorcentaje,
		PorcentajeIVA:      t.PorcentajeIVA,
	}
}

func toVehiculoResponse(v *entity.Vehiculo) *dto.VehiculoResponse {
	out := &dto.VehiculoResponse{
		ID:        v.ID,
		ClienteID: v.ClienteID,
		Placa:     v.Placa,
		Marca:     v.Marca,
		Modelo:    v.Modelo,
		Ano:       v.Ano,
	}
	if v.SOATVencimientoRecordatorio != nil {
		f := v.SOATVencimientoRecordatorio.Format(dto.FormatoFecha)
		out.SOATVencimientoRecordatorio = &f
	}
	return out
}
