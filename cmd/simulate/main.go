package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/codingconcepts/env"
	"github.com/joho/godotenv"
)

type Config struct {
	ServerUrl         string `env:"SIMULATE_SERVER_URL" default:"http://localhost:5010"`
	TwitchClientId    string `env:"TWITCH_CLIENT_ID"`
	TwitchRedirectUri string `env:"TWITCH_REDIRECT_URI" default:"http://localhost:5010/api/auth/twitch"`
}

type Command struct {
	name     string
	initFunc func(cmd *flag.FlagSet)
	runFunc  func(config *Config) error
}

var commands = []Command{
	{"callback", initCallbackCommand, runCallbackCommand},
	{"receive", initReceiveCommand, runReceiveCommand},
	{"authorize", initAuthorizeCommand, runAuthorizeCommand},
}

func main() {
	// Parse config from environment variables
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Fatalf("error loading .env file: %v", err)
	}
	config := Config{}
	if err := env.Set(&config); err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	// Parse the subcommand that we want to run, or print usage if no match
	command := findCommand(os.Args)
	if command == nil {
		commandNames := make([]string, 0, len(commands))
		for i := range commands {
			commandNames = append(commandNames, commands[i].name)
		}
		log.Fatalf("Usage: simulate [%s]", strings.Join(commandNames, "|"))
	}

	// Initialize command-line flags for the chosen subcommand
	flagSet := flag.NewFlagSet(command.name, flag.ExitOnError)
	command.initFunc(flagSet)
	if err := flagSet.Parse(os.Args[2:]); err != nil {
		log.Fatalf("Parse error: %v", err)
	}

	if err := command.runFunc(&config); err != nil {
		log.Fatalf("%s failed: %v", command.name, err)
	}
}

func findCommand(args []string) *Command {
	if len(args) < 2 {
		return nil
	}
	for i := range commands {
		if commands[i].name == args[1] {
			return &commands[i]
		}
	}
	return nil
}
