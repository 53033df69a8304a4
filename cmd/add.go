package cmd

import (
	"errors"
	"os"

	"github.com/huangsam/gi/internal"
	"github.com/huangsam/gi/internal/contract"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// addCmd writes a template into the project .gitignore.
var addCmd = &cobra.Command{
	Use:   "add [template]",
	Short: "Append or overwrite .gitignore with a template.",
	Long: `Fetch a .gitignore template and write it to the .gitignore of your project.

The target directory is --dir when given, otherwise the root of the Git
repository containing the current directory.

Without a template name, the catalog is shown and you pick one. Without
--action, you are asked whether to append or overwrite. Both prompts need
an interactive terminal.

Templates are cached for 7 days. The catalog is cached for --time-reset days.

Examples:
  # Pick a template and an action interactively
  gi add

  # Append the Go template to the repository .gitignore
  gi add go --action append

  # Overwrite with a combined template in another directory
  gi add go,node --action overwrite --dir ../service`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		resolver, err := newResolver()
		if err != nil {
			contract.LogFatal("Cannot reach template catalog", err)
		}

		var prompt contract.Chooser
		if internal.IsInteractive(os.Stdin) {
			prompt = internal.NewPromptChooser(os.Stdin, os.Stderr, cfg.UseColors)
		}
		chooser := internal.StaticChooser{Label: string(cfg.Action), Next: prompt}
		locator := internal.NewDirLocator(cfg.TargetDir, contract.NewLocalGitClient())
		merger := internal.NewMerger(resolver, chooser, locator, newNotifier(), cfg.ListWindow, logger)

		var name string
		if len(args) == 1 {
			name = args[0]
		}
		result, err := merger.Add(rootCtx, name)
		if errors.Is(err, contract.ErrNoSelection) {
			return
		}
		if err != nil {
			contract.LogFatal("Cannot add template", err)
		}
		logger.Info("template added",
			zap.String("template", result.Template),
			zap.String("action", string(result.Action)),
			zap.String("path", result.Path))
	},
}
