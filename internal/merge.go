package internal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/huangsam/gi/internal/contract"
	"github.com/huangsam/gi/schema"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// MergeResult describes a completed write of a template into the target file.
type MergeResult struct {
	Template string             `json:"template"`
	Action   schema.MergeAction `json:"action"`
	Path     string             `json:"path"`
}

// Merger adds a template to the .gitignore of the located target directory.
type Merger struct {
	resolver   contract.TemplateResolver
	chooser    contract.Chooser
	locator    contract.TargetLocator
	notifier   contract.Notifier
	listWindow time.Duration
	fs         afero.Fs
	logger     *zap.Logger
}

// NewMerger creates a Merger writing to the OS filesystem.
// listWindow is the freshness window used when the catalog has to be shown.
func NewMerger(
	resolver contract.TemplateResolver,
	chooser contract.Chooser,
	locator contract.TargetLocator,
	notifier contract.Notifier,
	listWindow time.Duration,
	logger *zap.Logger,
) *Merger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Merger{
		resolver:   resolver,
		chooser:    chooser,
		locator:    locator,
		notifier:   notifier,
		listWindow: listWindow,
		fs:         afero.NewOsFs(),
		logger:     logger,
	}
}

// Add resolves the template called name, or lets the user pick one from the
// catalog when name is empty, then appends it to or overwrites the target file.
// The target directory is located before anything is fetched.
func (m *Merger) Add(ctx context.Context, name string) (MergeResult, error) {
	dir, err := m.locator.Locate(ctx)
	if err != nil {
		m.logger.Debug("target lookup failed", zap.Error(err))
		m.notifier.Notify("No workspace folder found")
		return MergeResult{}, err
	}

	if name == "" {
		name, err = m.selectTemplate(ctx)
		if err != nil {
			return MergeResult{}, err
		}
	}

	content, err := m.resolver.GetTemplateContent(ctx, name)
	if err != nil {
		m.notifier.Notify("An error occurred while adding the template")
		return MergeResult{}, err
	}

	label, ok := m.chooser.PresentChoices(ctx, schema.MergeChoices)
	if !ok {
		m.notifier.Notify("No action selected")
		return MergeResult{}, fmt.Errorf("merge action: %w", contract.ErrNoSelection)
	}
	action := schema.MergeAction(label)

	path := filepath.Join(dir, schema.Filename)
	if err := m.write(path, action, content); err != nil {
		verb := actionVerb(action)
		m.logger.Error("write failed", zap.String("path", path), zap.Error(err))
		m.notifier.Notify(fmt.Sprintf("Failed to %s %s", verb, schema.Filename))
		return MergeResult{}, fmt.Errorf("failed to %s %s: %w", verb, path, err)
	}

	m.notifier.Notify(fmt.Sprintf("%s %s successfully", contract.Capitalize(actionVerb(action)), schema.Filename))
	return MergeResult{Template: name, Action: action, Path: path}, nil
}

// selectTemplate presents the catalog and returns the chosen name.
func (m *Merger) selectTemplate(ctx context.Context) (string, error) {
	names, err := m.resolver.GetTemplateNames(ctx, m.listWindow)
	if err != nil {
		m.notifier.Notify("An error occurred while adding the template")
		return "", err
	}
	name, ok := m.chooser.PresentChoices(ctx, NameChoices(names))
	if !ok {
		m.notifier.Notify("Action canceled")
		return "", fmt.Errorf("template: %w", contract.ErrNoSelection)
	}
	return name, nil
}

// write stores content at path according to action.
func (m *Merger) write(path string, action schema.MergeAction, content string) error {
	switch action {
	case schema.AppendAction:
		f, err := m.fs.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		if _, err := f.WriteString(content); err != nil {
			_ = f.Close()
			return err
		}
		return f.Close()
	case schema.OverwriteAction:
		return afero.WriteFile(m.fs, path, []byte(content), 0o644)
	default:
		return fmt.Errorf("unknown action %q", action)
	}
}

// actionVerb is the lower-case phrase used in status messages for action.
func actionVerb(action schema.MergeAction) string {
	if action == schema.AppendAction {
		return "append to"
	}
	return strings.ToLower(string(action))
}
