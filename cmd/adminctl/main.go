// Command adminctl is the admin console: it logs in, holds the bearer token
// in process memory only, and drives the donation API. The token is never
// written to disk.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/eagd-org/donation-server/pkg/client"
)

const usage = `usage: adminctl [flags] <command> [id]

commands:
  list            list donations (honors -status, -page, -limit, -sortby, -order)
  get <id>        show one donation
  update <id>     update a donation (honors -status, -notes)
  delete <id>     delete a donation
  stats           show the status-count summary
  verify          verify the session token
`

func main() {
	var (
		serverFlag   string
		usernameFlag string
		passwordFlag string

		statusFlag string
		pageFlag   int
		limitFlag  int
		sortByFlag string
		orderFlag  string
		notesFlag  string
	)

	flag.StringVar(&serverFlag, "server", "http://localhost:8080", "donation API base URL")
	flag.StringVar(&usernameFlag, "username", "", "admin username (or ADMIN_USERNAME)")
	flag.StringVar(&passwordFlag, "password", "", "admin password (or ADMIN_PASSWORD)")
	flag.StringVar(&statusFlag, "status", "", "status filter for list, or new status for update")
	flag.IntVar(&pageFlag, "page", 1, "page number for list")
	flag.IntVar(&limitFlag, "limit", 10, "page size for list")
	flag.StringVar(&sortByFlag, "sortby", "created_at", "sort field for list")
	flag.StringVar(&orderFlag, "order", "desc", "sort order for list (asc, desc)")
	flag.StringVar(&notesFlag, "notes", "", "admin notes for update")
	flag.Parse()

	command := flag.Arg(0)
	if command == "" {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	username := firstNonEmpty(usernameFlag, os.Getenv("ADMIN_USERNAME"))
	password := firstNonEmpty(passwordFlag, os.Getenv("ADMIN_PASSWORD"))
	if username == "" || password == "" {
		exitWithError(errors.New("admin credentials required: -username/-password or ADMIN_USERNAME/ADMIN_PASSWORD"))
	}

	api := client.New(client.Config{BaseURL: serverFlag, Locale: "en"})
	// Token lives only inside this process; wipe it on the way out.
	defer api.Logout()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	admin, err := api.Login(ctx, username, password)
	if err != nil {
		exitWithError(fmt.Errorf("login failed: %w", err))
	}
	fmt.Fprintf(os.Stderr, "logged in as %s (%s)\n", admin.Username, admin.Role)

	switch command {
	case "list":
		page, err := api.ListDonations(ctx, client.ListOptions{
			Status:    statusFlag,
			Page:      pageFlag,
			Limit:     limitFlag,
			SortBy:    sortByFlag,
			SortOrder: orderFlag,
		})
		if err != nil {
			exitWithError(err)
		}
		printJSON(page)

	case "get":
		donation, err := api.GetDonation(ctx, requireID())
		if err != nil {
			exitWithError(err)
		}
		printJSON(donation)

	case "update":
		update := client.DonationUpdate{}
		if statusFlag != "" {
			update.Status = &statusFlag
		}
		if notesFlag != "" {
			update.AdminNotes = &notesFlag
		}
		donation, err := api.UpdateDonation(ctx, requireID(), update)
		if err != nil {
			exitWithError(err)
		}
		printJSON(donation)

	case "delete":
		if err := api.DeleteDonation(ctx, requireID()); err != nil {
			exitWithError(err)
		}
		fmt.Println("deleted")

	case "stats":
		stats, err := api.Stats(ctx)
		if err != nil {
			exitWithError(err)
		}
		printJSON(stats)

	case "verify":
		identity, err := api.Verify(ctx)
		if err != nil {
			exitWithError(err)
		}
		printJSON(identity)

	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func requireID() string {
	id := strings.TrimSpace(flag.Arg(1))
	if id == "" {
		exitWithError(errors.New("a donation id is required"))
	}
	return id
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
