package core

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/huangsam/gitactivity/internal/contract"
)

// progressOut receives verbose progress lines.
var progressOut io.Writer = os.Stdout

// logProgress prints a progress line when --verbose is set and the context allows it.
func logProgress(ctx context.Context, cfg *contract.Config, format string, args ...any) {
	if !cfg.Verbose || shouldSuppressProgress(ctx) {
		return
	}
	_, _ = fmt.Fprintf(progressOut, format+"\n", args...)
}
