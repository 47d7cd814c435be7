package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	snap := a.session.Get()
	if snap.User == nil {
		return ""
	}
	return fmt.Sprintf("(%s)", snap.User.Email)
}

// Root runs the command loop.
func (a *App) Root(ctx context.Context) {

	fmt.Println("Welcome to taskboard (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("tb %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Println("Available commands: projects, newproject, open <task-id>, comment <task-id>, done <task-id>, delete <task-id>, settings, logout, exit")
			} else {
				fmt.Println("Available commands: register, login, exit")
			}

		case "register":
			a.register(ctx)
		case "login":
			a.login(ctx)
		case "logout":
			a.logout(ctx)
		case "projects":
			a.listProjects(ctx)
		case "newproject":
			a.newProject(ctx)
		case "open":
			if len(args) == 0 {
				fmt.Println("Usage: open <task-id>")
				continue
			}
			a.openTask(ctx, args[0])
		case "comment":
			if len(args) == 0 {
				fmt.Println("Usage: comment <task-id>")
				continue
			}
			a.commentTask(ctx, args[0])
		case "done":
			if len(args) == 0 {
				fmt.Println("Usage: done <task-id>")
				continue
			}
			a.completeTask(ctx, args[0])
		case "delete":
			if len(args) == 0 {
				fmt.Println("Usage: delete <task-id>")
				continue
			}
			a.deleteTask(ctx, args[0])
		case "settings":
			a.settings(ctx)
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}

// logout clears the session; the OnClear hooks purge the cache and the
// saved state.
func (a *App) logout(ctx context.Context) {
	if !a.isLoggedIn() {
		fmt.Println("Not logged in")
		return
	}
	a.session.ClearAuth()
	fmt.Println("Logged out")
}
