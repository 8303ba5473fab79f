package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/coachmeplay/cmp/internal/api"
	"github.com/coachmeplay/cmp/internal/bus"
	"github.com/coachmeplay/cmp/internal/cart"
	"github.com/coachmeplay/cmp/internal/config"
	"github.com/coachmeplay/cmp/internal/profile"
	"github.com/coachmeplay/cmp/internal/store"

	"go.uber.org/zap"
)

func main() {
	profileFlag := flag.String("profile", "", "profile name (overrides config default)")
	jsonFlag := flag.Bool("json", false, "output in JSON format")
	flag.Parse()

	profileName := profile.Resolve(*profileFlag)
	if err := profile.ValidateName(profileName); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	cfg := config.LoadWithEnv(profile.ConfigPath())
	client := api.New(cfg.APIURL)

	credsPath := profile.CredentialsPath(profileName)
	creds, err := profile.LoadCredentials(credsPath)
	if err == nil {
		client.SetCredentials(creds.Token, creds.UserID)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	switch args[0] {
	case "login":
		cmdLogin(ctx, client, profileName, credsPath, args[1:])
	case "register":
		cmdRegister(ctx, client, args[1:])
	case "logout":
		cmdLogout(credsPath)
	case "whoami":
		cmdWhoami(ctx, client, *jsonFlag)
	case "conversations":
		cmdConversations(ctx, client, *jsonFlag)
	case "messages":
		cmdMessages(ctx, client, args[1:], *jsonFlag)
	case "send":
		cmdSend(ctx, client, args[1:])
	case "notifications":
		cmdNotifications(ctx, client, args[1:], *jsonFlag)
	case "feedback":
		cmdFeedback(ctx, client, args[1:], *jsonFlag)
	case "directory":
		cmdDirectory(ctx, client, creds, *jsonFlag)
	case "cart":
		cmdCart(profileName, args[1:], *jsonFlag)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", args[0])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: cmpctl [--profile <name>] [--json] <command>")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "commands:")
	fmt.Fprintln(os.Stderr, "  login <email>                     Log in and store the token")
	fmt.Fprintln(os.Stderr, "  register <type> <email> <name>    Create an account (type: athlete|coach)")
	fmt.Fprintln(os.Stderr, "  logout                            Remove stored credentials")
	fmt.Fprintln(os.Stderr, "  whoami                            Show the authenticated user")
	fmt.Fprintln(os.Stderr, "  conversations                     List conversations")
	fmt.Fprintln(os.Stderr, "  messages <peer-id>                Show the thread with a user")
	fmt.Fprintln(os.Stderr, "  send <peer-id> <text>             Send a message")
	fmt.Fprintln(os.Stderr, "  notifications [count|read <id>|read-all]")
	fmt.Fprintln(os.Stderr, "  feedback <id>                     Show a feedback detail")
	fmt.Fprintln(os.Stderr, "  directory                         List coaches (athletes for coaches)")
	fmt.Fprintln(os.Stderr, "  cart <add|remove|list|count|clear>")
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

func readPassword(prompt string) string {
	fmt.Fprint(os.Stderr, prompt)
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		fatal(err)
	}
	return string(pw)
}

func cmdLogin(ctx context.Context, c *api.Client, profileName, credsPath string, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: cmpctl login <email>")
		os.Exit(1)
	}
	password := readPassword("Password: ")

	res, err := c.Login(ctx, args[0], password)
	if err != nil {
		fatal(err)
	}

	if err := profile.EnsureDir(profileName); err != nil {
		fatal(err)
	}
	err = profile.SaveCredentials(credsPath, &profile.Credentials{
		Token:    res.Token,
		UserID:   res.UserID,
		UserType: res.UserType,
		FullName: res.FullName,
	})
	if err != nil {
		fatal(err)
	}
	fmt.Printf("Logged in as %s (%s)\n", res.FullName, res.UserType)
}

func cmdRegister(ctx context.Context, c *api.Client, args []string) {
	if len(args) < 3 {
		fmt.Fprintln(os.Stderr, "usage: cmpctl register <athlete|coach> <email> <full name>")
		os.Exit(1)
	}
	userType := args[0]
	if userType != "athlete" && userType != "coach" {
		fmt.Fprintln(os.Stderr, "user type must be athlete or coach")
		os.Exit(1)
	}
	password := readPassword("Password: ")

	err := c.Register(ctx, &api.RegisterRequest{
		Email:    args[1],
		Password: password,
		UserType: userType,
		FullName: strings.Join(args[2:], " "),
	})
	if err != nil {
		fatal(err)
	}
	fmt.Println("Account created. Use cmpctl login to sign in.")
}

func cmdLogout(credsPath string) {
	if err := profile.ClearCredentials(credsPath); err != nil {
		fatal(err)
	}
	fmt.Println("Logged out.")
}

func cmdWhoami(ctx context.Context, c *api.Client, jsonOut bool) {
	user, err := c.Me(ctx)
	if err != nil {
		fatal(err)
	}
	if jsonOut {
		outputJSON(user)
		return
	}
	fmt.Printf("User:  %s <%s>\n", user.FullName, user.Email)
	fmt.Printf("Role:  %s\n", user.Role)
	fmt.Printf("ID:    %d\n", user.UserID)
}

func cmdConversations(ctx context.Context, c *api.Client, jsonOut bool) {
	convs, err := c.Conversations(ctx)
	if err != nil {
		fatal(err)
	}
	if jsonOut {
		outputJSON(convs)
		return
	}
	if len(convs) == 0 {
		fmt.Println("No conversations.")
		return
	}
	for _, conv := range convs {
		unread := ""
		if conv.UnreadCount > 0 {
			unread = fmt.Sprintf(" (%d unread)", conv.UnreadCount)
		}
		fmt.Printf("%-6d %-25s %s%s\n", conv.OtherUserID, conv.FullName, conv.LastMessage, unread)
	}
}

func cmdMessages(ctx context.Context, c *api.Client, args []string, jsonOut bool) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: cmpctl messages <peer-id>")
		os.Exit(1)
	}
	peerID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fatal(fmt.Errorf("invalid peer id %q", args[0]))
	}

	msgs, err := c.Messages(ctx, peerID)
	if err != nil {
		fatal(err)
	}
	if jsonOut {
		outputJSON(msgs)
		return
	}
	for _, m := range msgs {
		sender := m.SenderName
		if m.SenderID == c.UserID() {
			sender = "You"
		}
		fmt.Printf("[%s] %s: %s\n", m.SentAt, sender, m.Text)
	}
}

func cmdSend(ctx context.Context, c *api.Client, args []string) {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: cmpctl send <peer-id> <text>")
		os.Exit(1)
	}
	peerID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fatal(fmt.Errorf("invalid peer id %q", args[0]))
	}
	text := strings.TrimSpace(strings.Join(args[1:], " "))
	if text == "" {
		fmt.Fprintln(os.Stderr, "refusing to send an empty message")
		os.Exit(1)
	}

	if err := c.SendMessage(ctx, peerID, text); err != nil {
		fatal(err)
	}
	fmt.Println("Sent.")
}

func cmdNotifications(ctx context.Context, c *api.Client, args []string, jsonOut bool) {
	sub := "list"
	if len(args) > 0 {
		sub = args[0]
	}

	switch sub {
	case "list":
		items, err := c.Notifications(ctx)
		if err != nil {
			fatal(err)
		}
		if jsonOut {
			outputJSON(items)
			return
		}
		if len(items) == 0 {
			fmt.Println("No notifications.")
			return
		}
		for _, n := range items {
			marker := " "
			if !n.IsRead {
				marker = "*"
			}
			fmt.Printf("%s %-6d %-20s %s\n", marker, n.NotificationID, n.Type, n.Message)
		}
	case "count":
		n, err := c.UnreadCount(ctx)
		if err != nil {
			fatal(err)
		}
		if jsonOut {
			outputJSON(map[string]int{"unread_count": n})
			return
		}
		fmt.Println(n)
	case "read":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "usage: cmpctl notifications read <id>")
			os.Exit(1)
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			fatal(fmt.Errorf("invalid notification id %q", args[1]))
		}
		if err := c.MarkRead(ctx, id); err != nil {
			fatal(err)
		}
		fmt.Println("Marked read.")
	case "read-all":
		if err := c.MarkAllRead(ctx); err != nil {
			fatal(err)
		}
		fmt.Println("Marked all read.")
	default:
		fmt.Fprintf(os.Stderr, "unknown notifications subcommand: %s\n", sub)
		os.Exit(1)
	}
}

func cmdFeedback(ctx context.Context, c *api.Client, args []string, jsonOut bool) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: cmpctl feedback <id>")
		os.Exit(1)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fatal(fmt.Errorf("invalid feedback id %q", args[0]))
	}

	fb, err := c.FeedbackDetail(ctx, id)
	if err != nil {
		fatal(err)
	}
	if jsonOut {
		outputJSON(fb)
		return
	}
	fmt.Printf("Coach:  %s\n", fb.CoachName)
	fmt.Printf("Rating: %d/5\n", fb.PerformanceRating)
	fmt.Printf("Date:   %s\n", fb.CreatedAt)
	fmt.Printf("\n%s\n", fb.FeedbackText)
}

func cmdDirectory(ctx context.Context, c *api.Client, creds *profile.Credentials, jsonOut bool) {
	userType := "athlete"
	if creds != nil {
		userType = creds.UserType
	}

	users, err := c.Directory(ctx, userType)
	if err != nil {
		fatal(err)
	}
	if jsonOut {
		outputJSON(users)
		return
	}
	for _, u := range users {
		fmt.Printf("%-6d %-25s %s\n", u.UserID, u.FullName, u.Email)
	}
}

func cmdCart(profileName string, args []string, jsonOut bool) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: cmpctl cart <add|remove|list|count|clear>")
		os.Exit(1)
	}

	if err := profile.EnsureDir(profileName); err != nil {
		fatal(err)
	}
	db, err := store.Open(profile.CartDBPath(profileName))
	if err != nil {
		fatal(err)
	}
	defer db.Close()
	if _, err := db.Migrate(); err != nil {
		fatal(err)
	}

	crt := cart.New(db, bus.New(), zap.NewNop())

	switch args[0] {
	case "add":
		if len(args) < 4 {
			fmt.Fprintln(os.Stderr, "usage: cmpctl cart add <id> <price> <name>")
			os.Exit(1)
		}
		price, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			fatal(fmt.Errorf("invalid price %q", args[2]))
		}
		if err := crt.Add(args[1], strings.Join(args[3:], " "), price); err != nil {
			fatal(err)
		}
		fmt.Println("Added.")
	case "remove":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "usage: cmpctl cart remove <id>")
			os.Exit(1)
		}
		if err := crt.Remove(args[1]); err != nil {
			fatal(err)
		}
		fmt.Println("Removed.")
	case "list":
		items, err := crt.Items()
		if err != nil {
			fatal(err)
		}
		if jsonOut {
			outputJSON(items)
			return
		}
		if len(items) == 0 {
			fmt.Println("Cart is empty.")
			return
		}
		total := 0.0
		for _, it := range items {
			fmt.Printf("%-10s %-30s x%d  %8.2f\n", it.ID, it.Name, it.Quantity, it.Price)
			total += it.Price * float64(it.Quantity)
		}
		fmt.Printf("%43s %8.2f\n", "total", total)
	case "count":
		n, err := crt.Count()
		if err != nil {
			fatal(err)
		}
		if jsonOut {
			outputJSON(map[string]int{"count": n})
			return
		}
		fmt.Println(n)
	case "clear":
		if err := crt.Clear(); err != nil {
			fatal(err)
		}
		fmt.Println("Cart cleared.")
	default:
		fmt.Fprintf(os.Stderr, "unknown cart subcommand: %s\n", args[0])
		os.Exit(1)
	}
}

func outputJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "json encode error: %v\n", err)
	}
}
