package main

import (
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/lysyi3m/stellarpulse/app/cfg"
)

func main() {
	parser := cfg.NewParser()
	parser.Name = "stellarpulse"

	addCommand(parser, "collect", "Run one ingestion pass", "Fetch all enabled sources, store new items, match subscriptions, write the daily report and print the digest.", &CollectCommand{})
	addCommand(parser, "serve", "Run the HTTP server and the collect scheduler", "Serve the chat, items, subscription, feed and report endpoints while collecting on an interval.", &ServeCommand{})
	addCommand(parser, "chat", "Answer one chat message", "Print the reply to a chat message such as /latest, /hot, /search <q> or a number from the last list. Prints SKIP when the message is not a command.", &ChatCommand{})
	addCommand(parser, "subscribe", "Manage keyword subscriptions", "Add, list and remove keyword subscriptions and show recent alerts. Keywords support * and ? wildcards.", &SubscribeCommand{})

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return
		}
		os.Exit(1)
	}
}

func addCommand(parser *flags.Parser, name, short, long string, data interface{}) {
	if _, err := parser.AddCommand(name, short, long, data); err != nil {
		panic(err)
	}
}
