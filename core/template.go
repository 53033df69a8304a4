package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/huangsam/gi/internal/contract"
	"github.com/huangsam/gi/schema"
)

// remoteErrorMarker prefixes the error line the catalog embeds in a body
// for names it does not know.
const remoteErrorMarker = "#!! ERROR:"

// ValidateTemplateName checks that name is safe to use as a remote resource
// and as a cache key.
func ValidateTemplateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", contract.ErrInvalidTemplateName)
	}
	if name == "." || name == ".." {
		return fmt.Errorf("%w: %q", contract.ErrInvalidTemplateName, name)
	}
	if strings.EqualFold(name, schema.ListKey) {
		return fmt.Errorf("%w: %q is reserved for the catalog", contract.ErrInvalidTemplateName, name)
	}
	for _, c := range name {
		if c == '/' || c == '\\' || unicode.IsSpace(c) || unicode.IsControl(c) {
			return fmt.Errorf("%w: %q", contract.ErrInvalidTemplateName, name)
		}
	}
	return nil
}

// checkTemplate rejects bodies that are empty or carry the remote error marker.
func checkTemplate(body string) error {
	if strings.TrimSpace(body) == "" {
		return errors.New("template body is empty")
	}
	if strings.Contains(body, remoteErrorMarker) {
		return errors.New("template body carries a remote error")
	}
	return nil
}

// GetTemplateContent returns the body of the named template verbatim.
// Template records stay fresh for contract.TemplateWindow.
func (r *Resolver) GetTemplateContent(ctx context.Context, name string) (string, error) {
	if err := ValidateTemplateName(name); err != nil {
		return "", err
	}
	return resolve(ctx, r, name, contract.TemplateWindow, checkTemplate, func(ctx context.Context) (string, error) {
		body, err := r.fetcher.Fetch(ctx, name)
		if err != nil {
			return "", err
		}
		content := string(body)
		if err := checkTemplate(content); err != nil {
			return "", fmt.Errorf("%w: %w: %w", contract.ErrFetchFailed, contract.ErrMalformedResponse, err)
		}
		return content, nil
	})
}
