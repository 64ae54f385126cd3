package main

import (
	"os"

	"github.com/chat-linux-gguf/chatmenu/internal/log"
)

var Version = "dev"

func init() {
	rootCmd.AddCommand(versionCmd, runScriptCmd, installCmd, validateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
