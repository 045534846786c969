package main

import (
	"os"
	"runtime"

	"cursor-escape/internal/utils"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

func init() {
	// raylib must stay on the main OS thread.
	runtime.LockOSThread()
}

func main() {
	err := newRootCmd().Execute()
	utils.SyncLogger()
	if err != nil {
		utils.Error("%v", err)
		os.Exit(1)
	}
}
