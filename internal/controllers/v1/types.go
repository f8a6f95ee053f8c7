package v1

import (
	sl_uuid "github.com/shareledger/backend/internal/uuid"
)

type URIID struct {
	ID sl_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}
