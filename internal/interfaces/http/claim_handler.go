package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Seguros-api/internal/application/dto"
	"github.com/jhoicas/Seguros-api/internal/application/report"
	"github.com/jhoicas/Seguros-api/internal/application/usecase"
)

// ClaimHandler maneja radicación, decisión y reporte de reclamaciones.
type ClaimHandler struct {
	uc     *usecase.ClaimUseCase
	report *report.ClaimReportUseCase
}

// NewClaimHandler construye el handler. report puede ser nil (sin endpoint PDF).
func NewClaimHandler(uc *usecase.ClaimUseCase, report *report.ClaimReportUseCase) *ClaimHandler {
	return &ClaimHandler{uc: uc, report: report}
}

// Create godoc
// @Summary      Radicar reclamación
// @Tags         claims
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateClaimRequest  true  "Cliente, producto, monto y descripción"
// @Success      201   {object}  dto.ClaimResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      412   {object}  dto.ErrorResponse
// @Router       /api/claims [post]
func (h *ClaimHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateClaimRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.Context(), in, GetUserID(c))
	return created(c, out, err)
}

// GetByID godoc
// @Summary      Obtener reclamación
// @Tags         claims
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la reclamación"
// @Success      200  {object}  dto.ClaimResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/claims/{id} [get]
func (h *ClaimHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar reclamaciones
// @Tags         claims
// @Security     Bearer
// @Produce      json
// @Param        status     query  string  false  "pending | approved | rejected"
// @Param        client_id  query  string  false  "Filtro por cliente"
// @Param        limit      query  int     false  "Límite"  default(20)
// @Param        offset     query  int     false  "Offset"  default(0)
// @Success      200        {object}  dto.ClaimListResponse
// @Router       /api/claims [get]
func (h *ClaimHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), c.Query("status"), c.Query("client_id"), pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Decidir reclamación
// @Tags         claims
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la reclamación"
// @Param        body  body  dto.UpdateClaimStatusRequest  true  "Estado destino, notas, procesador"
// @Success      200   {object}  dto.ClaimResponse
// @Router       /api/claims/{id}/status [patch]
func (h *ClaimHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateClaimStatusRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.UpdateStatus(c.Context(), c.Params("id"), in, GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar monto, descripción o notas
// @Tags         claims
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la reclamación"
// @Param        body  body  dto.UpdateClaimRequest  true  "Campos a editar"
// @Success      200   {object}  dto.ClaimResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/claims/{id} [put]
func (h *ClaimHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateClaimRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.UpdateFields(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar reclamación pendiente
// @Tags         claims
// @Security     Bearer
// @Param        id   path  string  true  "ID de la reclamación"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/claims/{id} [delete]
func (h *ClaimHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// History godoc
// @Summary      Bitácora de estados de la reclamación
// @Tags         claims
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la reclamación"
// @Success      200  {array}  dto.StatusChangeResponse
// @Router       /api/claims/{id}/history [get]
func (h *ClaimHandler) History(c *fiber.Ctx) error {
	out, err := h.uc.History(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Descargar PDF de la reclamación
// @Tags         claims
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la reclamación"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/claims/{id}/report [get]
func (h *ClaimHandler) Report(c *fiber.Ctx) error {
	pdf, filename, err := h.report.DownloadClaimPDF(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}
