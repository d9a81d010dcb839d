// main is the entry point for the gitactivity CLI.
package main

import (
	"fmt"
	"os"

	"github.com/huangsam/gitactivity/cmd"
	"github.com/huangsam/gitactivity/internal/iocache"
)

func main() {
	os.Exit(run())
}

// run executes the root command and maps any failure to exit code 1.
// It is separate from main so deferred cleanup runs before the process exits.
func run() int {
	cmd.SetCacheManager(iocache.Manager)
	defer iocache.CloseCaching()

	if err := cmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "❌", err)
		_, _ = fmt.Fprintln(os.Stderr, "Run 'gitactivity --help' for usage.")
		return 1
	}
	return 0
}
