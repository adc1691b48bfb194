package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"quiz-registry/internal/registryclient"
)

const (
	defaultServer      = "http://127.0.0.1:8080"
	defaultHTTPTimeout = 5 * time.Second
)

type Config struct {
	Token       string
	ServerURL   string
	HTTPTimeout time.Duration
}

// Run drives an interactive session against a registry service. The token
// names the caller for mutating commands; read-only commands work without
// one.
func Run(ctx context.Context, in io.Reader, out io.Writer, cfg Config) error {
	serverURL := strings.TrimSpace(cfg.ServerURL)
	if serverURL == "" {
		serverURL = defaultServer
	}
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}

	client := registryclient.New(serverURL, cfg.Token, &http.Client{Timeout: timeout})
	reader := bufio.NewReader(in)

	fmt.Fprintf(out, "quiz-registry\nserver=%s\n\n", serverURL)
	printHelp(out)

	for {
		fmt.Fprint(out, "\n> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(out)
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		args := strings.Fields(line)
		command := strings.ToLower(args[0])

		switch command {
		case "help":
			printHelp(out)
		case "exit":
			return nil
		case "list":
			if err := runList(ctx, out, client); err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
			}
		case "show":
			if len(args) != 2 {
				fmt.Fprintln(out, "usage: show <question_id>")
				continue
			}
			if err := runShow(ctx, out, client, args[1]); err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
			}
		case "check":
			if len(args) < 3 {
				fmt.Fprintln(out, "usage: check <question_id> <answer>")
				continue
			}
			answer := strings.Join(args[2:], " ")
			if err := runCheck(ctx, out, client, args[1], answer); err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
			}
		case "add":
			if err := runAdd(ctx, reader, out, client); err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
			}
		case "register":
			power, err := client.Register(ctx)
			if err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
				continue
			}
			fmt.Fprintf(out, "registered, power=%s\n", power)
		case "grant":
			if len(args) != 2 {
				fmt.Fprintln(out, "usage: grant <identity>")
				continue
			}
			if err := client.GrantEducator(ctx, args[1]); err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
				continue
			}
			fmt.Fprintf(out, "granted educator to %s\n", args[1])
		case "power":
			power, err := client.Power(ctx)
			if err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
				continue
			}
			fmt.Fprintf(out, "power=%s\n", power)
		default:
			fmt.Fprintf(out, "unknown command %q, try help\n", command)
		}
	}
}

func runList(ctx context.Context, out io.Writer, client *registryclient.Client) error {
	questions, err := client.ListQuestions(ctx)
	if err != nil {
		return err
	}
	if len(questions) == 0 {
		fmt.Fprintln(out, "no questions yet")
		return nil
	}

	for _, question := range questions {
		fmt.Fprintf(out, "%d. %s\n", question.QuestionID, question.Text)
	}
	return nil
}

func runShow(ctx context.Context, out io.Writer, client *registryclient.Client, rawID string) error {
	questionID, err := parseQuestionID(rawID)
	if err != nil {
		return err
	}

	question, err := client.GetQuestion(ctx, questionID)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%d. %s\n", question.QuestionID, question.Text)
	return nil
}

func runCheck(ctx context.Context, out io.Writer, client *registryclient.Client, rawID, answer string) error {
	questionID, err := parseQuestionID(rawID)
	if err != nil {
		return err
	}

	correct, err := client.CheckAnswer(ctx, questionID, answer)
	if err != nil {
		return err
	}
	if correct {
		fmt.Fprintln(out, "Correct!")
	} else {
		fmt.Fprintln(out, "Wrong.")
	}
	return nil
}

func runAdd(ctx context.Context, reader *bufio.Reader, out io.Writer, client *registryclient.Client) error {
	text, err := promptLine(reader, out, "Question: ")
	if err != nil {
		return err
	}
	if text == "" {
		return errors.New("question text is required")
	}

	answer, err := promptLine(reader, out, "Answer: ")
	if err != nil {
		return err
	}

	questionID, err := client.AddQuestion(ctx, text, answer)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "added question %d\n", questionID)
	return nil
}

func promptLine(reader *bufio.Reader, out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func parseQuestionID(raw string) (uint64, error) {
	questionID, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, errors.New("question id must be a non-negative integer")
	}
	return questionID, nil
}

func printHelp(out io.Writer) {
	fmt.Fprintln(out, "commands:")
	fmt.Fprintln(out, "  list                     list all questions")
	fmt.Fprintln(out, "  show <question_id>       show one question")
	fmt.Fprintln(out, "  check <question_id> <answer>   verify an answer (free)")
	fmt.Fprintln(out, "  add                      add a question (educators)")
	fmt.Fprintln(out, "  register                 register the caller as a user")
	fmt.Fprintln(out, "  grant <identity>         grant educator power (educators)")
	fmt.Fprintln(out, "  power                    show the caller's power level")
	fmt.Fprintln(out, "  help                     show this help")
	fmt.Fprintln(out, "  exit                     quit")
}
