package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/projectnest/nestctl/internal/ui"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE:  runWhoami,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the stored token",
	RunE:  runLogout,
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(logoutCmd)
}

func runWhoami(cmd *cobra.Command, args []string) error {
	a, err := ensureApp()
	if err != nil {
		return err
	}

	sess := a.session.Current()
	if !sess.Authenticated() {
		fmt.Println("Not logged in.")
		return nil
	}

	fmt.Printf("%s (%s)\nrole: %s\n", sess.Name, sess.UserID, ui.RoleBadge(sess.Role))
	if sess.ImageURL != "" {
		fmt.Printf("avatar: %s\n", sess.ImageURL)
	}
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	a, err := ensureApp()
	if err != nil {
		return err
	}

	target := a.session.Logout()
	fmt.Println(ui.Successf("logged out"))
	printRedirect(target)
	return nil
}
