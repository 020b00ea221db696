package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Blogs(ctx context.Context, args []string) error
	Blog(ctx context.Context, args []string) error
	MyBlogs(ctx context.Context, args []string) error
	Comments(ctx context.Context, args []string) error
	Comment(ctx context.Context, args []string) error
	Uncomment(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Edit(ctx context.Context, args []string) error
	Profile(ctx context.Context, args []string) error
	New(ctx context.Context) error
}

const (
	helpGuest = "Available commands: register, login, blogs [page] [limit] [search], blog <id>, comments <id>, profile <id>, exit"
	helpUser  = "Available commands: new, blogs [page] [limit] [search], myblogs [page] [limit], blog <id>, edit <id>, delete <id>, " +
		"comments <id>, comment <blogId>, uncomment <commentId>, profile [id], whoami, logout, exit"
)

// runREPL starts a simple read-eval-print loop for the blog CLI.
//
// It reads a line from reader, parses the first token as the command and
// passes the remaining tokens to the handler. Unknown commands are reported
// back to the user. The loop exits on EOF or when the user types "exit" or
// "quit".
//
// Any errors returned by command handlers are ignored here; handlers print
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("gb %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpUser)
			} else {
				printlnFn(helpGuest)
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "l", "blogs":
			_ = a.Blogs(ctx, args)

		case "blog", "show":
			_ = a.Blog(ctx, args)

		case "myblogs", "dashboard":
			_ = a.MyBlogs(ctx, args)

		case "comments":
			_ = a.Comments(ctx, args)

		case "comment":
			_ = a.Comment(ctx, args)

		case "uncomment":
			_ = a.Uncomment(ctx, args)

		case "delete":
			_ = a.Delete(ctx, args)

		case "edit":
			_ = a.Edit(ctx, args)

		case "profile":
			_ = a.Profile(ctx, args)

		case "new":
			_ = a.New(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}
