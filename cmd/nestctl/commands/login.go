package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/projectnest/nestctl/internal/session"
	"github.com/projectnest/nestctl/internal/ui"
)

var (
	loginUser     string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against the ProjectNest backend",
	Long: `Authenticate with your user id (student or staff number) and password.
On success the issued token is stored locally and reused until logout.`,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVarP(&loginUser, "user", "u", "", "user id (login credential)")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "password (prompted when omitted)")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	a, err := ensureApp()
	if err != nil {
		return err
	}

	user := loginUser
	if user == "" {
		user = promptLine("User id: ")
	}
	password := loginPassword
	if password == "" {
		password = promptLine("Password: ")
	}

	target, err := a.session.Login(cmd.Context(), user, password)
	if err != nil {
		fmt.Println(ui.Errorf("login failed: %v", err))
		return err
	}

	sess := a.session.Current()
	fmt.Println(ui.Successf("logged in as %s (%s)", sess.Name, sess.Role))
	printRedirect(target)
	return nil
}

func promptLine(label string) string {
	fmt.Print(label)
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Scan()
	return strings.TrimSpace(scanner.Text())
}

func printRedirect(target session.RedirectTarget) {
	switch target {
	case session.RedirectAdmin:
		fmt.Println(`You have admin access, try "nestctl users list".`)
	case session.RedirectDashboard:
		fmt.Println(`Try "nestctl projects mine" to see your projects.`)
	case session.RedirectLogin:
		fmt.Println(`Run "nestctl login" to sign in again.`)
	}
}
