package http

import (
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	var raw uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &raw, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return kernel.UUID{}, fmt.Errorf("invalid format for parameter %s: %w", name, err)
	}
	return kernel.UUIDFromBytes(raw[:])
}

type listParams struct {
	Status *string
	Limit  *int
	Offset *int
}

func bindListParams(c echo.Context) (listParams, error) {
	var params listParams
	if err := runtime.BindQueryParameter("form", true, false, "status", c.QueryParams(), &params.Status); err != nil {
		return params, fmt.Errorf("invalid format for parameter status: %w", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", c.QueryParams(), &params.Limit); err != nil {
		return params, fmt.Errorf("invalid format for parameter limit: %w", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "offset", c.QueryParams(), &params.Offset); err != nil {
		return params, fmt.Errorf("invalid format for parameter offset: %w", err)
	}
	return params, nil
}

func (p listParams) status() string {
	if p.Status == nil {
		return ""
	}
	return *p.Status
}

func (p listParams) limit() int {
	if p.Limit == nil {
		return 0
	}
	return *p.Limit
}

func (p listParams) offset() int {
	if p.Offset == nil {
		return 0
	}
	return *p.Offset
}
