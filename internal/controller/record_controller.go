package controller

import (
	"po-intake-be/internal/dto"
	"po-intake-be/internal/pkg/serverutils"
	"po-intake-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IRecordController interface {
	RegisterRoutes(r fiber.Router)
	Register(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
}

type recordController struct {
	recordService service.IRecordService
}

func NewRecordController(recordService service.IRecordService) IRecordController {
	return &recordController{
		recordService: recordService,
	}
}

// RegisterRoutes keeps the legacy path: external consumers already post to
// /load-documents and list by their own user id.
func (c *recordController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/load-documents")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Register)
	h.Get("", c.List)
	h.Get(":id", c.Show)
}

func (c *recordController) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterRecordRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.recordService.Register(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success register document", res))
}

// List filters by folder when idfolder is given, otherwise by user. Legacy
// clients pass iduser explicitly; the token's user is the fallback.
func (c *recordController) List(ctx *fiber.Ctx) error {
	if idFolder := ctx.Query("idfolder"); idFolder != "" {
		folderId, err := uuid.Parse(idFolder)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid folder id")
		}

		res, err := c.recordService.GetByFolder(ctx.Context(), folderId)
		if err != nil {
			return err
		}
		return ctx.JSON(serverutils.SuccessResponse("Success list documents", res))
	}

	userId := ctx.Query("iduser")
	if userId == "" {
		userId = ctx.Locals("user_id").(string)
	}

	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 0)

	res, err := c.recordService.GetByUser(ctx.Context(), userId, page, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list documents", res))
}

func (c *recordController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid record id")
	}

	res, err := c.recordService.Get(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show document", res))
}
