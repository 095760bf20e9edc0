package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/projectnest/nestctl/internal/models"
	"github.com/projectnest/nestctl/internal/ui"
)

var (
	registerUser     string
	registerName     string
	registerEmail    string
	registerPassword string
	registerRole     string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and sign in",
	Long: `Create a ProjectNest account and immediately sign in with the same
credentials. Registration is only complete once the session is
established.`,
	RunE: runRegister,
}

func init() {
	registerCmd.Flags().StringVarP(&registerUser, "user", "u", "", "user id (student or staff number)")
	registerCmd.Flags().StringVarP(&registerName, "name", "n", "", "display name")
	registerCmd.Flags().StringVarP(&registerEmail, "email", "e", "", "email address")
	registerCmd.Flags().StringVarP(&registerPassword, "password", "p", "", "password (prompted when omitted)")
	registerCmd.Flags().StringVarP(&registerRole, "role", "r", string(models.RoleStudent), "role: student, professor or admin")
	rootCmd.AddCommand(registerCmd)
}

func runRegister(cmd *cobra.Command, args []string) error {
	a, err := ensureApp()
	if err != nil {
		return err
	}

	password := registerPassword
	if password == "" {
		password = promptLine("Password: ")
	}

	target, err := a.session.Register(cmd.Context(), models.CreateUserRequest{
		UserID:   registerUser,
		Name:     registerName,
		Email:    registerEmail,
		Password: password,
		Role:     models.Role(registerRole),
	})
	if err != nil {
		fmt.Println(ui.Errorf("registration failed: %v", err))
		return err
	}

	sess := a.session.Current()
	fmt.Println(ui.Successf("welcome, %s (%s)", sess.Name, sess.Role))
	printRedirect(target)
	return nil
}
