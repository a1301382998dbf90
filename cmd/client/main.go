// Package main implements an interactive shell client for the notehub API.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/mkraev/notehub/internal/client"
)

var (
	version   string
	buildDate string
)

// repl runs the interactive shell loop, accepting commands to manage notes.
func repl(api *client.Client, session *client.Session) {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("notehub> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "help":
			fmt.Println("Available commands: help, register <email> <password>, login <email> <password>,")
			fmt.Println("  add <title> <content...>, list, get <id>, edit <id> <title> <content...>,")
			fmt.Println("  delete <id>, share <id> <userId>, search <query...>, exit")
		case "register":
			if len(args) < 3 {
				fmt.Println("Usage: register <email> <password>")
				continue
			}
			id, err := api.Register(args[1], args[2])
			if err != nil {
				fmt.Println("register failed:", err)
				continue
			}
			fmt.Println("Registered account", id)
		case "login":
			if len(args) < 3 {
				fmt.Println("Usage: login <email> <password>")
				continue
			}
			if err := api.Login(args[1], args[2]); err != nil {
				fmt.Println("login failed:", err)
				continue
			}
			session.Token = api.Token
			_ = session.Save()
			fmt.Println("Logged in")
		case "add":
			if len(args) < 3 {
				fmt.Println("Usage: add <title> <content...>")
				continue
			}
			note, err := api.CreateNote(args[1], strings.Join(args[2:], " "))
			if err != nil {
				fmt.Println("add failed:", err)
				continue
			}
			fmt.Println("Created note", note.ID)
		case "list":
			notes, err := api.ListNotes()
			if err != nil {
				fmt.Println("list failed:", err)
				continue
			}
			for _, n := range notes {
				fmt.Printf("ID: %s\nTitle: %s\nOwner: %s\n---\n", n.ID, n.Title, n.Owner)
			}
		case "get":
			if len(args) < 2 {
				fmt.Println("Usage: get <id>")
				continue
			}
			note, err := api.GetNote(args[1])
			if err != nil {
				fmt.Println("get failed:", err)
				continue
			}
			b, _ := json.MarshalIndent(note, "", "  ")
			fmt.Println(string(b))
		case "edit":
			if len(args) < 4 {
				fmt.Println("Usage: edit <id> <title> <content...>")
				continue
			}
			title := args[2]
			content := strings.Join(args[3:], " ")
			if _, err := api.UpdateNote(args[1], &title, &content); err != nil {
				fmt.Println("edit failed:", err)
				continue
			}
			fmt.Println("Note updated")
		case "delete":
			if len(args) < 2 {
				fmt.Println("Usage: delete <id>")
				continue
			}
			if err := api.DeleteNote(args[1]); err != nil {
				fmt.Println("delete failed:", err)
				continue
			}
			fmt.Println("Note deleted")
		case "share":
			if len(args) < 3 {
				fmt.Println("Usage: share <id> <userId>")
				continue
			}
			if _, err := api.ShareNote(args[1], args[2]); err != nil {
				fmt.Println("share failed:", err)
				continue
			}
			fmt.Println("Note shared")
		case "search":
			if len(args) < 2 {
				fmt.Println("Usage: search <query...>")
				continue
			}
			notes, err := api.Search(strings.Join(args[1:], " "))
			if err != nil {
				fmt.Println("search failed:", err)
				continue
			}
			for _, n := range notes {
				fmt.Printf("ID: %s\nTitle: %s\n---\n", n.ID, n.Title)
			}
		case "exit":
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

// main parses command-line flags and starts the shell.
func main() {
	var (
		baseURL     string
		sessionFile string
		showVer     bool
	)

	flag.StringVar(&baseURL, "url", "http://localhost:8080", "server base URL")
	flag.StringVar(&sessionFile, "session", "session.json", "path to session file")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("notehub Client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	session, err := client.LoadSession(sessionFile)
	if err != nil {
		log.Fatalf("failed to load session: %v", err)
	}

	api := client.New(baseURL, nil)
	api.Token = session.Token

	repl(api, session)
}
