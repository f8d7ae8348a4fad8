package main

import (
	"flag"
	"fmt"
	"os"
	"todo-service/server"

	_ "github.com/mattn/go-sqlite3"
)

func main() {
	commandFlag := flag.String("command", "start", "Command to run modules")
	configFlag := flag.String("config", "", "Path to an optional TOML config file")
	flag.Parse()

	if *commandFlag == "" {
		fmt.Println("Usage: go run main.go --command <command-name> [--config <path>]")
		os.Exit(1)
	}

	switch *commandFlag {
	case "start":
		server.StartServer(*configFlag)
	case "init-db":
		server.InitDB(*configFlag)
	default:
		fmt.Println("Unknown command:", *commandFlag)
		os.Exit(1)
	}
}
