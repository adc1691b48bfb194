package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"quiz-registry/internal/cli"
)

func main() {
	token := flag.String("token", "", "caller identity token (needed for mutating commands)")
	server := flag.String("server", "http://127.0.0.1:8080", "registry service base URL")
	timeout := flag.Duration("timeout", 5*time.Second, "HTTP timeout")
	flag.Parse()

	err := cli.Run(context.Background(), os.Stdin, os.Stdout, cli.Config{
		Token:       *token,
		ServerURL:   *server,
		HTTPTimeout: *timeout,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
