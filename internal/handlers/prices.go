package handlers

import (
	"bytes"
	"errors"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/nandovidal/platewise/internal/database"
	"github.com/nandovidal/platewise/internal/middleware"
	"github.com/nandovidal/platewise/internal/models"
)

// ListIngredientPrices returns the community quotes for an ingredient at
// active supermarkets, minus the user's exclusions
func (h *Handler) ListIngredientPrices(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	ingredientID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid ingredient id")
	}

	if _, err := h.db.GetIngredientByID(c.Context(), ingredientID); err != nil {
		if errors.Is(err, database.ErrIngredientNotFound) {
			return Error(c, fiber.StatusNotFound, "ingredient not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to get ingredient")
	}

	prices, err := h.db.ListPricesForIngredient(c.Context(), ingredientID, userID)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to list prices")
	}

	return Success(c, prices)
}

// UpsertPrice records the user's quote for an ingredient at a
// supermarket, replacing any previous one
func (h *Handler) UpsertPrice(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var req models.UpsertPriceRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	if req.PricePerUnit <= 0 {
		return Error(c, fiber.StatusBadRequest, "price_per_unit must be positive")
	}
	if !req.Unit.Valid() {
		return Error(c, fiber.StatusBadRequest, "unit must be kg, L or unit")
	}

	price, err := h.db.UpsertPrice(c.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrIngredientNotFound):
			return Error(c, fiber.StatusBadRequest, "ingredient not found")
		case errors.Is(err, database.ErrSupermarketNotFound):
			return Error(c, fiber.StatusBadRequest, "supermarket not found")
		default:
			return Error(c, fiber.StatusInternalServerError, "failed to save price")
		}
	}

	return Success(c, price)
}

// DeletePrice removes one of the user's own quotes
func (h *Handler) DeletePrice(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid price id")
	}

	if err := h.db.DeletePrice(c.Context(), id, userID); err != nil {
		switch {
		case errors.Is(err, database.ErrPriceNotFound):
			return Error(c, fiber.StatusNotFound, "price not found")
		case errors.Is(err, database.ErrNotPriceOwner):
			return Error(c, fiber.StatusForbidden, "not the price owner")
		default:
			return Error(c, fiber.StatusInternalServerError, "failed to delete price")
		}
	}

	return Success(c, fiber.Map{"message": "price deleted"})
}

// ScanPriceTag runs OCR over a shelf price-tag photo and returns the
// parsed candidate quote for the client to confirm
func (h *Handler) ScanPriceTag(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	if h.ocr == nil {
		return Error(c, fiber.StatusServiceUnavailable, "price-tag scanning is not configured")
	}

	file, err := c.FormFile("image")
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "image file is required")
	}

	contentType := file.Header.Get("Content-Type")
	if !isValidImageType(contentType) {
		return Error(c, fiber.StatusBadRequest, "invalid image type. Supported: JPEG, PNG, WebP")
	}
	if file.Size > 10*1024*1024 {
		return Error(c, fiber.StatusBadRequest, "file too large. Maximum size is 10MB")
	}

	src, err := file.Open()
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to read file")
	}
	defer src.Close()

	imageBytes, err := io.ReadAll(src)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to read file")
	}

	// Keep the photo when storage is available; scanning still works
	// without it
	var imageKey string
	if h.storage != nil {
		key := objectKey("pricetags", userID, file.Filename)
		if _, err := h.storage.Upload(c.Context(), key, bytes.NewReader(imageBytes), file.Size, contentType); err == nil {
			imageKey = key
		}
	}

	ocrResult, err := h.ocr.ProcessImage(imageBytes)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "OCR processing failed")
	}

	scanned := h.parser.Parse(ocrResult.Text)
	scanned.ImageKey = imageKey

	if scanned.PricePerUnit == 0 {
		return Error(c, fiber.StatusUnprocessableEntity, "no price found on the tag")
	}

	return Success(c, scanned)
}
