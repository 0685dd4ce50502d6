package services

import (
	"context"

	"github.com/fintrackhq/fintrack-backend/internal/models"
	repo "github.com/fintrackhq/fintrack-backend/internal/repository"
)

// GlossaryService is the read-only anatomy glossary. Bookmarks and search
// live outside this service.
type GlossaryService struct {
	glossary repo.Glossary
}

func NewGlossaryService(g repo.Glossary) *GlossaryService { return &GlossaryService{glossary: g} }

func (s *GlossaryService) List(ctx context.Context, bodySystem string) ([]models.GlossaryTerm, error) {
	return s.glossary.List(ctx, bodySystem)
}

func (s *GlossaryService) Get(ctx context.Context, id string) (models.GlossaryTerm, error) {
	t, err := s.glossary.GetByID(ctx, id)
	return t, translateDB(err)
}
