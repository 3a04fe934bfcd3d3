package domain

import (
	"errors"
	"time"
)

// MetadataFileName is the single source of truth for a project's existence.
// A project directory without this file is treated as not found by listing.
const MetadataFileName = "project_metadata.json"

// Metadata describes a stored project. It is written once at creation time
// and is intentionally storage-agnostic, shared across store and HTTP layers.
type Metadata struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	TechStack         string    `json:"tech_stack"`
	CreatedAt         time.Time `json:"created_at"`
	Files             []string  `json:"files"`
	SetupInstructions string    `json:"setup_instructions"`
	Status            string    `json:"status"`
}

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrOwnerRequired   = errors.New("owner is required")
	ErrInvalidPath     = errors.New("file path escapes project directory")
)
