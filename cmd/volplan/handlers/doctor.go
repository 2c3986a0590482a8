package handlers

import (
	"context"
	"fmt"
	"io"

	"github.com/imamik/volplan/internal/ui/report"
)

// Doctor checks the host tools and prints the results. It fails when a
// required tool is missing.
func Doctor(_ context.Context, configPath string, out io.Writer) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	results := checkAllPrereqs(cfg.LVM.Binary)
	fmt.Fprint(out, report.New(isInteractive(out)).Doctor(results))
	return results.Error()
}
