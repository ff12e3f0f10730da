// Command udsnap snaps brand palettes toward the CUD reference catalogue.
package main

import (
	"github.com/cudkit/udsnap/cmd"
	"github.com/cudkit/udsnap/internal/contract"
	"github.com/cudkit/udsnap/internal/iocache"
	"github.com/joho/godotenv"
)

func main() {
	// Connection strings often live in a local .env file
	_ = godotenv.Load()

	cmd.SetCacheManager(iocache.Manager)
	defer iocache.CloseStores()

	err := cmd.Execute()
	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Failed to stop profiling", stopErr)
	}
	if err != nil {
		iocache.CloseStores()
		contract.LogFatal("Command failed", err)
	}
}
