package handlers

import (
	"media-scan/internal/database"
	"media-scan/internal/scanner"
	"media-scan/internal/signing"
)

type Handlers struct {
	db     *database.Database
	engine *scanner.Engine
	signer *signing.Service
}

func New(db *database.Database, engine *scanner.Engine, signer *signing.Service) *Handlers {
	return &Handlers{
		db:     db,
		engine: engine,
		signer: signer,
	}
}
