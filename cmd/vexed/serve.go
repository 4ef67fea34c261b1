package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/vexed/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Vexed SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with the level picker.
Progress is stored per-server (all users share the same database).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, uses server.host_key_path from the config under ~/.vexed
    and generates the key on first start

Examples:
  vexed serve                           # Listen on the configured address
  vexed serve --ssh :2222               # Listen on port 2222
  vexed serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port), overrides the config")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes, overrides the config")
}

func runServe(_ *cobra.Command, _ []string) error {
	sshCfg := tui.SSHServerConfigFrom(cfg.Server)
	sshCfg.TickRate = flagFPS
	if flagSSHAddr != "" {
		sshCfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		sshCfg.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		sshCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}

	if _, err := packArg(nil); err != nil {
		return err
	}
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	server, err := tui.NewSSHServer(sshCfg, tui.Deps{
		Store:  store,
		Config: cfg,
		PackID: flagPack,
		Logger: logger,
		Theme:  tui.DefaultTheme(),
	})
	if err != nil {
		return err
	}

	fmt.Printf("Starting Vexed SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")
	return server.ListenAndServe()
}
