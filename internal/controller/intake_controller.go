package controller

import (
	"io"
	"mime/multipart"

	"po-intake-be/internal/dto"
	"po-intake-be/internal/pkg/serverutils"
	"po-intake-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IIntakeController interface {
	RegisterRoutes(r fiber.Router)
	Start(ctx *fiber.Ctx) error
	SelectKind(ctx *fiber.Ctx) error
	ValidateSpreadsheet(ctx *fiber.Ctx) error
	ValidateDocument(ctx *fiber.Ctx) error
	ConfirmSignatures(ctx *fiber.Ctx) error
	RejectSignatures(ctx *fiber.Ctx) error
	ResetSpreadsheet(ctx *fiber.Ctx) error
	ResetDocument(ctx *fiber.Ctx) error
	AttachMaterial(ctx *fiber.Ctx) error
	Submit(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
}

type intakeController struct {
	intakeService service.IIntakeService
}

func NewIntakeController(intakeService service.IIntakeService) IIntakeController {
	return &intakeController{
		intakeService: intakeService,
	}
}

func (c *intakeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/intake/v1/submissions")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Start)
	h.Get(":id", c.Show)
	h.Post(":id/kind", c.SelectKind)
	h.Post(":id/spreadsheet", c.ValidateSpreadsheet)
	h.Delete(":id/spreadsheet", c.ResetSpreadsheet)
	h.Post(":id/document", c.ValidateDocument)
	h.Delete(":id/document", c.ResetDocument)
	h.Post(":id/confirm-signatures", c.ConfirmSignatures)
	h.Post(":id/reject-signatures", c.RejectSignatures)
	h.Post(":id/materials", c.AttachMaterial)
	h.Post(":id/submit", c.Submit)
}

// readUpload pulls one multipart file into memory. The validators and the
// blob client both want the full byte slice anyway.
func readUpload(fh *multipart.FileHeader) (string, []byte, error) {
	f, err := fh.Open()
	if err != nil {
		return "", nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", nil, err
	}
	return fh.Filename, data, nil
}

func submissionId(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid submission id")
	}
	return id, nil
}

func (c *intakeController) Start(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)

	var req dto.StartSubmissionRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return err
		}
		if err := serverutils.ValidateRequest(req); err != nil {
			return err
		}
	}

	res, err := c.intakeService.Start(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success start submission", res))
}

func (c *intakeController) Show(ctx *fiber.Ctx) error {
	id, err := submissionId(ctx)
	if err != nil {
		return err
	}

	res, err := c.intakeService.Get(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show submission", res))
}

func (c *intakeController) SelectKind(ctx *fiber.Ctx) error {
	id, err := submissionId(ctx)
	if err != nil {
		return err
	}

	var req dto.SelectKindRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.intakeService.SelectKind(ctx.Context(), id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success select submitter kind", res))
}

func (c *intakeController) ValidateSpreadsheet(ctx *fiber.Ctx) error {
	id, err := submissionId(ctx)
	if err != nil {
		return err
	}

	fh, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "file is required")
	}
	filename, data, err := readUpload(fh)
	if err != nil {
		return err
	}

	res, err := c.intakeService.ValidateSpreadsheet(ctx.Context(), id, filename, data)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Spreadsheet processed", res))
}

func (c *intakeController) ValidateDocument(ctx *fiber.Ctx) error {
	id, err := submissionId(ctx)
	if err != nil {
		return err
	}

	fh, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "file is required")
	}
	filename, data, err := readUpload(fh)
	if err != nil {
		return err
	}

	res, err := c.intakeService.ValidateDocument(ctx.Context(), id, filename, data)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Document processed", res))
}

func (c *intakeController) ConfirmSignatures(ctx *fiber.Ctx) error {
	id, err := submissionId(ctx)
	if err != nil {
		return err
	}

	res, err := c.intakeService.ConfirmSignatures(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Signatures confirmed", res))
}

func (c *intakeController) RejectSignatures(ctx *fiber.Ctx) error {
	id, err := submissionId(ctx)
	if err != nil {
		return err
	}

	res, err := c.intakeService.RejectSignatures(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Signatures rejected, document cleared", res))
}

func (c *intakeController) ResetSpreadsheet(ctx *fiber.Ctx) error {
	id, err := submissionId(ctx)
	if err != nil {
		return err
	}

	res, err := c.intakeService.ResetSpreadsheet(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Spreadsheet reset", res))
}

func (c *intakeController) ResetDocument(ctx *fiber.Ctx) error {
	id, err := submissionId(ctx)
	if err != nil {
		return err
	}

	res, err := c.intakeService.ResetDocument(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Document reset", res))
}

func (c *intakeController) AttachMaterial(ctx *fiber.Ctx) error {
	id, err := submissionId(ctx)
	if err != nil {
		return err
	}

	fh, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "file is required")
	}
	filename, data, err := readUpload(fh)
	if err != nil {
		return err
	}

	res, err := c.intakeService.AttachMaterial(ctx.Context(), id, filename, data)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Material attached", res))
}

func (c *intakeController) Submit(ctx *fiber.Ctx) error {
	id, err := submissionId(ctx)
	if err != nil {
		return err
	}

	res, err := c.intakeService.Submit(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Submission completed", res))
}
