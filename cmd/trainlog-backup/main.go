package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/claude/trainlog/internal/backup"
	"github.com/claude/trainlog/internal/models"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("server", "", "trainlog server URL (e.g. https://trainlog.tail1234.ts.net)")
	apiKey := flag.String("api-key", "", "API key for restore (or TRAINLOG_API_KEY env)")
	out := flag.String("out", "", "write the exported snapshot to this file (default trainlog-backup-<date>.json)")
	restore := flag.String("restore", "", "restore the given snapshot file to the server instead of exporting")
	yes := flag.Bool("yes", false, "skip the confirmation prompt on restore")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("trainlog-backup", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *serverURL == "" {
		fmt.Fprintf(os.Stderr, "Usage: trainlog-backup -server <URL> [-out FILE] [-restore FILE [-yes]]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}
	*serverURL = strings.TrimRight(*serverURL, "/")

	key := *apiKey
	if key == "" {
		key = os.Getenv("TRAINLOG_API_KEY")
	}

	client := backup.NewClient(*serverURL, key)

	if *restore != "" {
		runRestore(client, *restore, *yes, log)
		return
	}
	runExport(client, *out, log)
}

func runExport(client *backup.Client, out string, log *slog.Logger) {
	data, err := client.Export()
	if err != nil {
		log.Error("export failed", "error", err)
		os.Exit(1)
	}

	// Sanity-check before writing so a server error page never lands on disk
	// as a backup.
	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		log.Error("server returned an invalid snapshot", "error", err)
		os.Exit(1)
	}

	if out == "" {
		out = fmt.Sprintf("trainlog-backup-%s.json", time.Now().Format("2006-01-02"))
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		log.Error("writing snapshot file", "path", out, "error", err)
		os.Exit(1)
	}
	log.Info("export complete", "path", out,
		"exercises", len(snap.Exercises), "sessions", len(snap.Sessions))
}

func runRestore(client *backup.Client, path string, yes bool, log *slog.Logger) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Error("reading snapshot file", "path", path, "error", err)
		os.Exit(1)
	}

	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		log.Error("snapshot file is not valid", "path", path, "error", err)
		os.Exit(1)
	}

	if !yes {
		fmt.Printf("Restore will REPLACE all server data with %d exercises and %d sessions from %s.\n",
			len(snap.Exercises), len(snap.Sessions), path)
		fmt.Print("Continue? [y/N] ")
		answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			fmt.Println("Aborted.")
			return
		}
	}

	result, err := client.Restore(data)
	if err != nil {
		log.Error("restore failed", "error", err)
		os.Exit(1)
	}
	log.Info("restore complete", "sessions_imported", result.SessionsImported)
}
