package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the 2048 SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session with the variant menu and its
own games. All users share the same leaderboard. Saved games belong to
the client's public key, or to the user name when no key is offered.

Host key handling:
  - If --host-key is provided (or server.host_key_path is set), uses that key file
  - Otherwise, auto-generates a key at ~/.t2048/host_key

Examples:
  t2048 serve                           # Listen on :23234
  t2048 serve --ssh :2222               # Listen on port 2222
  t2048 serve --host-key ./my_host_key  # Use specific host key
  t2048 serve --idle-timeout 10m

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from config, :23234)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting (default from config, 30m)")
}

func runServe(_ *cobra.Command, _ []string) {
	server := appConfig.Server
	if flagSSHAddr != "" {
		server.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		server.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		server.IdleTimeout = flagIdleTimeout
	}

	cfg := tui.SSHServerConfig{
		Address:     server.Address,
		HostKeyPath: server.HostKeyPath,
		DBPath:      appConfig.Leaderboard.DBPath,
		Capacity:    appConfig.Leaderboard.Capacity,
		IdleTimeout: server.IdleTimeout,
		Game:        appConfig.Runtime(0, 0, flagSeed),
		Logger:      newLogger(os.Stderr, "t2048-ssh"),
	}

	srv, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting 2048 SSH server on %s\n", srv.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := srv.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
