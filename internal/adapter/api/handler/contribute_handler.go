package handler

import (
	"mime/multipart"
	"strings"

	"github.com/labstack/echo/v4"

	"tripspot/internal/adapter/api/middleware"
	"tripspot/internal/usecase"
	"tripspot/pkg/errors"
	"tripspot/pkg/logger"
	"tripspot/pkg/response"
)

// maxFormMemory bounds the part of a multipart form held in memory; larger
// uploads spill to temporary files.
const maxFormMemory = 32 << 20

type ContributeHandler struct {
	contributeUseCase *usecase.ContributeUseCase
}

func NewContributeHandler(contributeUseCase *usecase.ContributeUseCase) *ContributeHandler {
	return &ContributeHandler{
		contributeUseCase: contributeUseCase,
	}
}

// Contribute accepts a multipart form with the place fields and up to five
// files under "images".
func (h *ContributeHandler) Contribute(c echo.Context) error {
	if err := c.Request().ParseMultipartForm(maxFormMemory); err != nil {
		return response.Error(c, errors.BadRequest("Invalid multipart form", err))
	}
	form := c.Request().MultipartForm
	defer form.RemoveAll()

	input := usecase.ContributeInput{
		Name:        formValue(form, "name"),
		Description: formValue(form, "description"),
		Region:      formValue(form, "region"),
		District:    formValue(form, "district"),
		RegionType:  formValue(form, "regionType"),
		Seasons:     formValues(form, "seasons"),
		Budget:      formValue(form, "budget"),
		Keywords:    formValues(form, "keywords"),
	}

	for _, header := range form.File["images"] {
		file, err := header.Open()
		if err != nil {
			logger.Error("Failed to open uploaded file %s: %v", header.Filename, err)
			return response.Error(c, errors.BadRequest("Missing or invalid file", err))
		}
		defer file.Close()

		input.Images = append(input.Images, usecase.ImageUpload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Reader:      file,
		})
	}

	placeID, err := h.contributeUseCase.Contribute(c.Request().Context(), middleware.UID(c), input)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, map[string]string{
		"id": placeID,
	})
}

func formValue(form *multipart.Form, key string) string {
	if values := form.Value[key]; len(values) > 0 {
		return strings.TrimSpace(values[0])
	}
	return ""
}

// formValues accepts both repeated fields and a single comma separated value.
func formValues(form *multipart.Form, key string) []string {
	var out []string
	for _, v := range form.Value[key] {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
