package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/Seguros-api/internal/application/dto"
	"github.com/jhoicas/Seguros-api/internal/domain/entity"
	"github.com/jhoicas/Seguros-api/internal/domain/insurance"
)

// ProductUseCase casos de uso CRUD para el catálogo de productos de seguro.
type ProductUseCase struct {
	d Deps
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(d Deps) *ProductUseCase {
	return &ProductUseCase{d: d.withDefaults()}
}

// Create crea un producto. Activo por defecto.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	typ, err := insurance.ParseProductType(in.Type)
	if err != nil {
		return nil, err
	}
	if err := insurance.ValidateProduct(name, in.Premium, in.Coverage); err != nil {
		return nil, err
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	now := uc.d.Clock.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        name,
		Type:        typ,
		Premium:     in.Premium,
		Coverage:    in.Coverage,
		Description: in.Description,
		Active:      active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.d.Products.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.d.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, notFound("producto")
	}
	return toProductResponse(product), nil
}

// List lista productos con paginación; onlyActive filtra los inactivos.
func (uc *ProductUseCase) List(ctx context.Context, onlyActive bool, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.d.Products.List(ctx, onlyActive, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Update actualiza parcialmente un producto, revalidando prima, cobertura y ramo.
// Cambiar la cobertura no afecta reclamaciones ya radicadas.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.d.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, notFound("producto")
	}
	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Type != nil {
		typ, err := insurance.ParseProductType(*in.Type)
		if err != nil {
			return nil, err
		}
		product.Type = typ
	}
	if in.Premium != nil {
		product.Premium = *in.Premium
	}
	if in.Coverage != nil {
		product.Coverage = *in.Coverage
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	if err := insurance.ValidateProduct(product.Name, product.Premium, product.Coverage); err != nil {
		return nil, err
	}
	product.UpdatedAt = uc.d.Clock.Now()
	if err := uc.d.Products.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto si ninguna póliza activa lo referencia.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.d.Products.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return notFound("producto")
	}
	active, err := uc.d.Policies.CountActiveByProduct(ctx, id)
	if err != nil {
		return fmt.Errorf("contar pólizas activas del producto: %w", err)
	}
	if err := insurance.CheckProductDeletion(active); err != nil {
		uc.d.Metrics.DeletionBlocked("product")
		uc.d.Log.Warn().Str("product_id", id).Int("active_policies", active).Msg("borrado de producto bloqueado")
		return err
	}
	return uc.d.Products.Delete(ctx, id)
}
