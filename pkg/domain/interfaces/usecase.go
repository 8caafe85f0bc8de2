package interfaces

//go:generate moq -out ../mock/usecase.go -pkg mock . UseCase

import (
	"context"

	"github.com/m-mizutani/gdstation/pkg/domain/model"
)

type UseCase interface {
	HandleFinding(ctx context.Context, finding model.Finding) (*model.Report, error)
}
