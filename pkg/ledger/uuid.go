package ledger

import (
	"foodgram-backend/domain"

	"github.com/google/uuid"
)

func parseUUID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.UUID{}, domain.ErrParseUUID
	}
	return parsed, nil
}
