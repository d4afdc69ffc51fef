package repository

import (
	"github.com/quoteflow/quote-service/internal/domain/apikey"
	"github.com/quoteflow/quote-service/internal/domain/client"
	"github.com/quoteflow/quote-service/internal/domain/profile"
	"github.com/quoteflow/quote-service/internal/domain/quote"
	"github.com/quoteflow/quote-service/internal/domain/quotenote"
	"github.com/quoteflow/quote-service/internal/domain/team"
	"github.com/quoteflow/quote-service/internal/domain/template"
	"github.com/quoteflow/quote-service/internal/logger"
	"github.com/quoteflow/quote-service/internal/postgres"
	postgresRepo "github.com/quoteflow/quote-service/internal/repository/postgres"
)

func NewQuoteRepository(db *postgres.DB, logger *logger.Logger) quote.Repository {
	return postgresRepo.NewQuoteRepository(db, logger)
}

func NewClientRepository(db *postgres.DB, logger *logger.Logger) client.Repository {
	return postgresRepo.NewClientRepository(db, logger)
}

func NewProfileRepository(db *postgres.DB, logger *logger.Logger) profile.Repository {
	return postgresRepo.NewProfileRepository(db, logger)
}

func NewTemplateRepository(db *postgres.DB, logger *logger.Logger) template.Repository {
	return postgresRepo.NewTemplateRepository(db, logger)
}

func NewQuoteNoteRepository(db *postgres.DB, logger *logger.Logger) quotenote.Repository {
	return postgresRepo.NewQuoteNoteRepository(db, logger)
}

func NewAPIKeyRepository(db *postgres.DB, logger *logger.Logger) apikey.Repository {
	return postgresRepo.NewAPIKeyRepository(db, logger)
}

func NewTeamRepository(db *postgres.DB, logger *logger.Logger) team.Repository {
	return postgresRepo.NewTeamRepository(db, logger)
}
