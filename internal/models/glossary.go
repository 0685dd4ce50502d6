package models

import "time"

type GlossaryTerm struct {
	ID         string    `json:"id"`
	Term       string    `json:"term"`
	Definition string    `json:"definition"`
	BodySystem string    `json:"body_system"`
	CreatedAt  time.Time `json:"created_at"`
}
