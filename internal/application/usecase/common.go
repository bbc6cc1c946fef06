package usecase

import (
	"errors"

	"github.com/temucosoft/retail-api/internal/application/dto"
	"github.com/temucosoft/retail-api/internal/application/validate"
	"github.com/temucosoft/retail-api/internal/domain"
	"github.com/temucosoft/retail-api/internal/domain/repository"
)

func pageResponse(p repository.Page, total int) dto.PageResponse {
	return dto.PageResponse{Page: p.Number, PageSize: p.Size, Total: total}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

// duplicateAs traduce un ErrDuplicate del repositorio (carrera entre la verificación previa
// y el insert) en un error del campo indicado.
func duplicateAs(err error, field string) error {
	if errors.Is(err, domain.ErrDuplicate) {
		return domain.NewFieldError(field, validate.MsgDuplicate)
	}
	return err
}
