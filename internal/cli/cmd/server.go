package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"palauncher/internal/cli/ui"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Manage the PlanarAlly server process",
}

var startMode string

var serverStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the server",
	Run: func(cmd *cobra.Command, args []string) {
		handleStart(startMode)
	},
}

var serverStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the server",
	Run: func(cmd *cobra.Command, args []string) {
		handleStop()
	},
}

var serverRestartCmd = &cobra.Command{
	Use:   "restart",
	Short: "Restart the server in quick mode",
	Run: func(cmd *cobra.Command, args []string) {
		handleRestart()
	},
}

var serverLogsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Follow the live server log",
	Run: func(cmd *cobra.Command, args []string) {
		ui.RunLogs(Client)
	},
}

var exitCmd = &cobra.Command{
	Use:   "exit",
	Short: "Stop the server and shut the daemon down",
	Run: func(cmd *cobra.Command, args []string) {
		handleExit()
	},
}

func init() {
	serverStartCmd.Flags().StringVar(&startMode, "mode", "full", "Launch mode: full or quick")

	serverCmd.AddCommand(serverStartCmd, serverStopCmd, serverRestartCmd, serverLogsCmd)
	RootCmd.AddCommand(serverCmd, exitCmd)
}

func handleStart(mode string) {
	if err := Client.StartServer(mode); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
	fmt.Println("Server starting. Follow progress with: palauncher-cli server logs")
}

func handleStop() {
	if err := Client.StopServer(); err != nil {
		log.Fatalf("Error stopping server: %v", err)
	}
	fmt.Println("Server stopped.")
}

func handleRestart() {
	if err := Client.RestartServer(); err != nil {
		log.Fatalf("Error restarting server: %v", err)
	}
	fmt.Println("Server restarting.")
}

func handleExit() {
	if err := Client.Exit(); err != nil {
		log.Fatalf("Error shutting down daemon: %v", err)
	}
	fmt.Println("Daemon shutting down.")
}
