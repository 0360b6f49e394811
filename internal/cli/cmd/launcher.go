package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var installForce bool

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Download and install the app (no-op if already installed)",
	Run: func(cmd *cobra.Command, args []string) {
		handleInstall(installForce)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show installation status",
	Run: func(cmd *cobra.Command, args []string) {
		handleStatus()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show installed app version",
	Run: func(cmd *cobra.Command, args []string) {
		handleVersion()
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the installed app (user data included)",
	Run: func(cmd *cobra.Command, args []string) {
		handleReset()
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show update history",
	Run: func(cmd *cobra.Command, args []string) {
		handleHistory()
	},
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Check for launcher updates",
	Run: func(cmd *cobra.Command, args []string) {
		handleCheckUpdates()
	},
}

var ipCmd = &cobra.Command{
	Use:   "ip",
	Short: "Show the daemon's LAN IP",
	Run: func(cmd *cobra.Command, args []string) {
		handleLocalIP()
	},
}

var openCmd = &cobra.Command{
	Use:   "open [url]",
	Short: "Open a URL in the browser on the daemon's machine",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handleOpen(args[0])
	},
}

func init() {
	installCmd.Flags().BoolVar(&installForce, "force", false, "Reinstall even when an installation exists")

	RootCmd.AddCommand(installCmd, statusCmd, versionCmd, resetCmd, historyCmd, updateCmd, ipCmd, openCmd)
}

func handleInstall(force bool) {
	path, err := Client.Install(force)
	if err != nil {
		log.Fatalf("Error installing: %v", err)
	}
	fmt.Println("Installed at:", path)
}

func handleStatus() {
	status, err := Client.GetStatus()
	if err != nil {
		log.Fatalf("Error getting status: %v", err)
	}

	fmt.Println("\n--- LAUNCHER STATUS ---")
	if status.Ready {
		fmt.Println("Ready:     yes")
		fmt.Printf("Path:      %s\n", status.Path)
	} else {
		fmt.Println("Ready:     no")
		fmt.Printf("Reason:    %s\n", status.Path)
	}
	fmt.Printf("Zip URL:   %s\n", status.ZipURL)
}

func handleVersion() {
	info, err := Client.GetVersionInfo()
	if err != nil {
		log.Fatalf("Error getting version: %v", err)
	}

	fmt.Println("\n--- APP VERSION ---")
	if info.Commit == nil {
		fmt.Println("Commit: unknown")
	} else {
		fmt.Printf("Commit: %s\n", *info.Commit)
	}
	if info.Date == nil {
		fmt.Println("Date:   unknown")
	} else {
		fmt.Printf("Date:   %s\n", *info.Date)
	}
}

func handleReset() {
	if err := Client.Reset(); err != nil {
		log.Fatalf("Error resetting: %v", err)
	}
	fmt.Println("Installed app deleted.")
}

func handleHistory() {
	records, err := Client.GetUpdateHistory()
	if err != nil {
		log.Fatalf("Error getting history: %v", err)
	}

	fmt.Println("\n--- UPDATE HISTORY ---")
	if len(records) == 0 {
		fmt.Println("No updates recorded.")
		return
	}
	for _, rec := range records {
		commit := rec.Commit
		if commit == "" {
			commit = "-"
		}
		fmt.Printf("%s  %-10s  %s  %s\n", rec.CreatedAt.Format("2006-01-02 15:04"), rec.Result, commit, rec.ZipURL)
	}
}

func handleCheckUpdates() {
	info, err := Client.CheckLauncherUpdate()
	if err != nil {
		log.Fatalf("Error checking updates: %v", err)
	}

	fmt.Println("\n--- UPDATE CHECK ---")
	fmt.Printf("Current version: %s\n", info.CurrentVersion)
	fmt.Printf("Latest version:  %s\n", info.LatestVersion)

	if info.UpdateAvailable {
		fmt.Println("\nUpdate available!")
		fmt.Printf("Download it here: %s\n", info.ReleaseURL)
	} else {
		fmt.Println("\nYou are up to date.")
	}
}

func handleLocalIP() {
	ip, err := Client.GetLocalIP()
	if err != nil {
		log.Fatalf("Error getting IP: %v", err)
	}
	fmt.Println(ip)
}

func handleOpen(url string) {
	if err := Client.OpenURL(url); err != nil {
		log.Fatalf("Error opening URL: %v", err)
	}
}
