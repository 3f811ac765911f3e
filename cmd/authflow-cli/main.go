// Command authflow-cli walks the login or forgot-password flow against a
// live server from the terminal, mirroring what a mobile client would do
// screen by screen.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	authflow "github.com/chattr-app/authflow"
)

func main() {
	var (
		baseURL = flag.String("base-url", "", "auth API base URL (required)")
		mode    = flag.String("mode", "login", "flow to run: login | reset")
		region  = flag.String("region", "US", "default region for phone classification")
		audit   = flag.Bool("audit", false, "print audit events as JSON on stderr")
		timeout = flag.Duration("timeout", 15*time.Second, "per-request timeout")
	)
	flag.Parse()

	if *baseURL == "" {
		fmt.Fprintln(os.Stderr, "base-url is required")
		os.Exit(2)
	}

	builder := authflow.New().
		WithBaseURL(*baseURL).
		WithDefaultRegion(*region).
		WithTimeout(*timeout)
	if *audit {
		builder = builder.WithAuditSink(authflow.NewJSONWriterSink(os.Stderr))
	}

	engine, err := builder.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "build engine: %v\n", err)
		os.Exit(1)
	}
	defer engine.Close()

	ctx := context.Background()
	in := bufio.NewScanner(os.Stdin)

	switch *mode {
	case "login":
		runLogin(ctx, engine, in)
	case "reset":
		runReset(ctx, engine, in)
	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", *mode)
		os.Exit(2)
	}
}

func runLogin(ctx context.Context, engine *authflow.Engine, in *bufio.Scanner) {
	flow := engine.NewLoginFlow()

	for !flow.Done() && !flow.Cancelled() {
		switch flow.Step() {
		case authflow.LoginStepIdentify:
			flow.SetIdentifier(prompt(in, "email / phone / username"))
			fmt.Printf("  classified as: %s\n", flow.Kind())
			if !flow.NextEnabled() {
				fmt.Println("  not a recognizable identifier, try again")
				continue
			}
		case authflow.LoginStepPassword:
			flow.SetPassword(prompt(in, "password"))
			if !flow.NextEnabled() {
				fmt.Println("  password too short, try again")
				continue
			}
		}

		if err := flow.Next(ctx); err != nil {
			fmt.Printf("  %v\n", err)
		}
	}

	if flow.Done() {
		s := flow.Session()
		fmt.Printf("logged in as @%s (%s)\n", s.User.Username, s.User.ID)
	}
}

func runReset(ctx context.Context, engine *authflow.Engine, in *bufio.Scanner) {
	flow := engine.NewPasswordResetFlow()

	for !flow.Done() {
		switch flow.Step() {
		case authflow.ResetStepFindAccount:
			flow.SetIdentifier(prompt(in, "email / phone / username"))
			if !flow.NextEnabled() {
				fmt.Println("  not a recognizable identifier, try again")
				continue
			}
		case authflow.ResetStepVerifyCode:
			flow.SetCode(prompt(in, "verification code"))
			if !flow.NextEnabled() {
				continue
			}
		case authflow.ResetStepNewPassword:
			flow.SetNewPassword(prompt(in, "new password"))
			flow.SetConfirmation(prompt(in, "confirm new password"))
			if !flow.NextEnabled() {
				fmt.Println("  passwords must match and be at least 8 characters")
				continue
			}
		}

		if err := flow.Next(ctx); err != nil {
			fmt.Printf("  %v\n", err)
		}
	}

	fmt.Println("password reset complete, sign in with the new password")
}

func prompt(in *bufio.Scanner, label string) string {
	fmt.Printf("%s> ", label)
	if !in.Scan() {
		os.Exit(0)
	}
	return strings.TrimSpace(in.Text())
}
