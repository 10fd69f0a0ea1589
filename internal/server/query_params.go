package server

import (
	"errors"
	"strings"

	invoicedomain "github.com/invoiceflow/invoiceflow/internal/invoice/domain"
)

func parseOptionalState(value string) (*invoicedomain.State, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	state := invoicedomain.State(trimmed)
	if !state.Valid() {
		return nil, errors.New("invalid_state")
	}
	return &state, nil
}
