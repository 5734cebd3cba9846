package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/vignesh678/stock-glass-visualizer/internal/client"
)

var accountCommands = []subcommands.Command{
	&authCmd{name: "signup", synopsis: "create an account and sign in"},
	&authCmd{name: "signin", synopsis: "sign in to the backend"},
	&signoutCmd{},
	&whoamiCmd{},
}

// authCmd implements both signup and signin. The token is kept in the local
// store for later commands.
type authCmd struct {
	name     string
	synopsis string
	password string
}

func (c *authCmd) Name() string     { return c.name }
func (c *authCmd) Synopsis() string { return c.synopsis }
func (c *authCmd) Usage() string {
	return c.name + ` [-password <password>] <email>

  The password defaults to $STOCKGLASS_PASSWORD.
`
}

func (c *authCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.password, "password", os.Getenv("STOCKGLASS_PASSWORD"), "Account password.")
}

func (c *authCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 || c.password == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	a, err := openApp(ctx)
	if err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	var session *client.Session
	if c.name == "signup" {
		session, err = a.api.SignUp(ctx, f.Arg(0), c.password)
	} else {
		session, err = a.api.SignIn(ctx, f.Arg(0), c.password)
	}
	if err != nil {
		fail("%s failed: %s", c.name, describe(err))
		return subcommands.ExitFailure
	}
	if err := a.saveToken(ctx, session.Token); err != nil {
		fail("failed to save session: %v", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Signed in as %s\n", session.User.Email)
	return subcommands.ExitSuccess
}

type signoutCmd struct{}

func (*signoutCmd) Name() string     { return "signout" }
func (*signoutCmd) Synopsis() string { return "forget the saved session" }
func (*signoutCmd) Usage() string {
	return `signout
`
}
func (*signoutCmd) SetFlags(*flag.FlagSet) {}

func (*signoutCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	if err := a.saveToken(ctx, ""); err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}
	fmt.Println("Signed out")
	return subcommands.ExitSuccess
}

type whoamiCmd struct{}

func (*whoamiCmd) Name() string     { return "whoami" }
func (*whoamiCmd) Synopsis() string { return "show the signed-in user" }
func (*whoamiCmd) Usage() string {
	return `whoami
`
}
func (*whoamiCmd) SetFlags(*flag.FlagSet) {}

func (*whoamiCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	user, err := a.api.CurrentUser(ctx)
	if err != nil {
		fail("%s", describe(err))
		return subcommands.ExitFailure
	}
	fmt.Printf("%s (%s)\n", user.Email, user.ID)
	return subcommands.ExitSuccess
}
