package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"anonrelay_server/models"
)

// LinkService issues shareable connect links and resolves their start
// parameters back into target handles.
type LinkService struct {
	Transport Transport
}

// IssueLink builds the shareable link for a participant from the transport's
// public identifier.
func (ls *LinkService) IssueLink(ctx context.Context, self models.Handle) (string, error) {
	ident, err := ls.Transport.SelfIdentifier(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to resolve public identifier: %w", err)
	}
	return fmt.Sprintf("https://%s/?start=%d", ident, self), nil
}

// ResolveLink parses a start parameter into a target handle. An absent or
// malformed parameter is the everyday "/start with no argument" case, so it
// reports false rather than an error.
func (ls *LinkService) ResolveLink(raw string) (models.Handle, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	h, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || h < 0 {
		return 0, false
	}
	return models.Handle(h), true
}
