// Command cli runs operator tasks against the invest database.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/amirasaad/invest/infra"
	infra_repository "github.com/amirasaad/invest/infra/repository"
	"github.com/amirasaad/invest/pkg/config"
	"github.com/amirasaad/invest/pkg/domain"
	usersvc "github.com/amirasaad/invest/pkg/service/user"
	"github.com/fatih/color"
	"golang.org/x/term"
)

const usage = `Usage: cli <command> [arguments]
Commands:
  create-admin <email> <first_name> <last_name>   create an ADMIN account (prompts for password)
  promote <email>                                 grant ADMIN to an existing account
  demote <email>                                  revert an account to USER
  pending                                         show queues waiting for review`

var (
	okColor   = color.New(color.FgGreen, color.Bold)
	errColor  = color.New(color.FgRed, color.Bold)
	headColor = color.New(color.FgCyan, color.Bold)
)

type cli struct {
	users    *usersvc.UserService
	out      io.Writer
	password func() (string, error)
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(2)
	}
	cfg, err := config.Load(".env")
	if err != nil {
		_, _ = errColor.Fprintln(os.Stderr, "Failed to load configuration:", err)
		os.Exit(1)
	}
	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		_, _ = errColor.Fprintln(os.Stderr, "Failed to connect to database:", err)
		os.Exit(1)
	}
	if err := infra.Migrate(db); err != nil {
		_, _ = errColor.Fprintln(os.Stderr, "Failed to migrate database:", err)
		os.Exit(1)
	}

	c := &cli{
		users:    usersvc.NewUserService(infra_repository.NewUoW(db), slog.Default()),
		out:      os.Stdout,
		password: promptPassword,
	}
	if err := c.run(context.Background(), os.Args[1:]); err != nil {
		_, _ = errColor.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func (c *cli) run(ctx context.Context, args []string) error {
	switch args[0] {
	case "create-admin":
		if len(args) < 4 {
			return errors.New("usage: create-admin <email> <first_name> <last_name>")
		}
		pw, err := c.password()
		if err != nil {
			return err
		}
		u, err := c.users.CreateAdmin(ctx, args[2], args[3], args[1], pw)
		if err != nil {
			return err
		}
		_, _ = okColor.Fprintf(c.out, "Admin created: %s (%s)\n", u.Email, u.ID)
	case "promote", "demote":
		if len(args) < 2 {
			return fmt.Errorf("usage: %s <email>", args[0])
		}
		role := domain.RoleAdmin
		if args[0] == "demote" {
			role = domain.RoleUser
		}
		u, err := c.users.SetRole(ctx, args[1], role)
		if err != nil {
			return err
		}
		_, _ = okColor.Fprintf(c.out, "%s is now %s\n", u.Email, u.Role)
	case "pending":
		st, err := c.users.Stats(ctx)
		if err != nil {
			return err
		}
		_, _ = headColor.Fprintln(c.out, "Review queues")
		_, _ = fmt.Fprintf(c.out, "  deposits:      %d\n", st.PendingDeposits)
		_, _ = fmt.Fprintf(c.out, "  applications:  %d\n", st.PendingApplications)
		_, _ = fmt.Fprintf(c.out, "  withdrawals:   %d\n", st.PendingWithdrawals)
		_, _ = fmt.Fprintf(c.out, "  transfers:     %d\n", st.PendingTransfers)
		_, _ = fmt.Fprintf(c.out, "  users:         %d\n", st.Users)
		_, _ = fmt.Fprintf(c.out, "  outstanding ROI: %s\n", st.OutstandingROI.StringFixed(2))
	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
	return nil
}

// promptPassword reads without echo on a terminal and falls back to a
// plain line for piped input.
func promptPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		return strings.TrimSpace(line), nil
	}
	fmt.Print("Password: ")
	pw, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(pw), nil
}
