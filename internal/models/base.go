package models

import "github.com/google/uuid"

// ensureID atribui um UUID novo quando o registro ainda não tem id.
func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
