package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Seguros-api/internal/application/dto"
	"github.com/jhoicas/Seguros-api/internal/application/usecase"
)

// PolicyHandler maneja emisión, estado y renovación de pólizas.
type PolicyHandler struct {
	uc *usecase.PolicyUseCase
}

// NewPolicyHandler construye el handler.
func NewPolicyHandler(uc *usecase.PolicyUseCase) *PolicyHandler {
	return &PolicyHandler{uc: uc}
}

// Create godoc
// @Summary      Emitir póliza
// @Tags         policies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePolicyRequest  true  "Cliente, producto y vigencia"
// @Success      201   {object}  dto.PolicyResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/policies [post]
func (h *PolicyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePolicyRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.Context(), in, GetUserID(c))
	return created(c, out, err)
}

// GetByID godoc
// @Summary      Obtener póliza (status = estado efectivo)
// @Tags         policies
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la póliza"
// @Success      200  {object}  dto.PolicyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/policies/{id} [get]
func (h *PolicyHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar pólizas
// @Tags         policies
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.PolicyListResponse
// @Router       /api/policies [get]
func (h *PolicyHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de la póliza
// @Tags         policies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la póliza"
// @Param        body  body  dto.UpdatePolicyStatusRequest  true  "Estado destino y notas"
// @Success      200   {object}  dto.PolicyResponse
// @Router       /api/policies/{id}/status [patch]
func (h *PolicyHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdatePolicyStatusRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.UpdateStatus(c.Context(), c.Params("id"), in, GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Renew godoc
// @Summary      Renovar póliza
// @Tags         policies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la póliza"
// @Param        body  body  dto.RenewPolicyRequest  false  "Meses o nueva fecha fin"
// @Success      200   {object}  dto.PolicyResponse
// @Router       /api/policies/{id}/renew [post]
func (h *PolicyHandler) Renew(c *fiber.Ctx) error {
	var in dto.RenewPolicyRequest
	if len(c.Body()) > 0 {
		if err := bindJSON(c, &in); err != nil {
			return writeError(c, err)
		}
	}
	out, err := h.uc.Renew(c.Context(), c.Params("id"), in, GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Bitácora de estados de la póliza
// @Tags         policies
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la póliza"
// @Success      200  {array}  dto.StatusChangeResponse
// @Router       /api/policies/{id}/history [get]
func (h *PolicyHandler) History(c *fiber.Ctx) error {
	out, err := h.uc.History(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar póliza
// @Tags         policies
// @Security     Bearer
// @Param        id   path  string  true  "ID de la póliza"
// @Success      204
// @Router       /api/policies/{id} [delete]
func (h *PolicyHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
