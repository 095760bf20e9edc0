package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/projectnest/nestctl/internal/export"
	"github.com/projectnest/nestctl/internal/list"
	"github.com/projectnest/nestctl/internal/models"
	"github.com/projectnest/nestctl/internal/pagination"
	"github.com/projectnest/nestctl/internal/ui"
)

var (
	usersRole    string
	usersKeyword string
	usersSort    string
	usersPage    int
	usersExport  string
	usersOut     string
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage user accounts (admin)",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts with filtering and pagination",
	RunE:  runUsersList,
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <user_id>",
	Short: "Delete an account",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersDelete,
}

var (
	userUpdateName  string
	userUpdateEmail string
	userUpdateRole  string
	userUpdateImage string
)

var usersUpdateCmd = &cobra.Command{
	Use:   "update <user_id>",
	Short: "Update an account",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersUpdate,
}

func init() {
	usersListCmd.Flags().StringVar(&usersRole, "role", models.FilterAll, "filter by role (student, professor, admin or all)")
	usersListCmd.Flags().StringVar(&usersKeyword, "keyword", "", "search by name or email")
	usersListCmd.Flags().StringVar(&usersSort, "sort", "", "sort field (user_id, name, create_at, ...)")
	usersListCmd.Flags().IntVar(&usersPage, "page", 1, "page to show")
	usersListCmd.Flags().StringVar(&usersExport, "export", "", "export format: csv or pdf")
	usersListCmd.Flags().StringVar(&usersOut, "out", "users-export", "export file name without extension")

	usersUpdateCmd.Flags().StringVar(&userUpdateName, "name", "", "new display name")
	usersUpdateCmd.Flags().StringVar(&userUpdateEmail, "email", "", "new email address")
	usersUpdateCmd.Flags().StringVar(&userUpdateRole, "role", "", "new role (student, professor or admin)")
	usersUpdateCmd.Flags().StringVar(&userUpdateImage, "image", "", "new avatar URL")

	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersUpdateCmd)
	usersCmd.AddCommand(usersDeleteCmd)
	rootCmd.AddCommand(usersCmd)
}

func runUsersList(cmd *cobra.Command, args []string) error {
	a, err := ensureApp()
	if err != nil {
		return err
	}
	if err := a.requireAuth(models.RoleAdmin); err != nil {
		return err
	}

	coord := list.New[models.User](a.api.ListUsers, a.cfg.Lists.PageSize,
		list.WithLogger[models.User](a.logger),
		list.WithCriteria[models.User](map[string]string{
			models.CriterionRole:    usersRole,
			models.CriterionKeyword: usersKeyword,
			models.CriterionSortBy:  usersSort,
		}),
	)

	if err := loadPage(cmd.Context(), coord, usersPage); err != nil {
		fmt.Println(ui.Errorf("could not fetch users: %v", err))
		return err
	}

	if usersExport != "" {
		return writeExport(export.UsersDataset(coord.Items()), usersExport, usersOut, "users")
	}

	fmt.Print(ui.UserTable(coord.Items()))
	printListFooter(coord.Total(), coord.Page(), a.cfg.Lists.PageSize)
	return nil
}

func runUsersUpdate(cmd *cobra.Command, args []string) error {
	a, err := ensureApp()
	if err != nil {
		return err
	}
	if err := a.requireAuth(models.RoleAdmin); err != nil {
		return err
	}

	req := models.UpdateUserRequest{
		Name:     userUpdateName,
		Email:    userUpdateEmail,
		Role:     models.Role(userUpdateRole),
		ImageURL: userUpdateImage,
	}
	if err := a.api.UpdateUser(cmd.Context(), args[0], req); err != nil {
		fmt.Println(ui.Errorf("update failed: %v", err))
		return err
	}

	// Confirmed state only: re-read the account instead of echoing the
	// request back.
	user, err := a.api.GetUser(cmd.Context(), args[0])
	if err != nil {
		fmt.Println(ui.Errorf("could not fetch updated account: %v", err))
		return err
	}
	fmt.Println(ui.Successf("updated user %s", user.UserID))
	fmt.Print(ui.UserTable([]models.User{*user}))
	return nil
}

func runUsersDelete(cmd *cobra.Command, args []string) error {
	a, err := ensureApp()
	if err != nil {
		return err
	}
	if err := a.requireAuth(models.RoleAdmin); err != nil {
		return err
	}

	if err := a.api.DeleteUser(cmd.Context(), args[0]); err != nil {
		fmt.Println(ui.Errorf("delete failed: %v", err))
		return err
	}
	fmt.Println(ui.Successf("deleted user %s", args[0]))

	// Confirmed state only: refetch instead of patching locally.
	coord := list.New[models.User](a.api.ListUsers, a.cfg.Lists.PageSize)
	if err := coord.Refetch(cmd.Context()); err != nil {
		fmt.Println(ui.Errorf("could not refresh users: %v", err))
		return nil
	}
	fmt.Print(ui.UserTable(coord.Items()))
	printListFooter(coord.Total(), coord.Page(), a.cfg.Lists.PageSize)
	return nil
}

// pager is the slice of the list coordinator the shared helpers need.
type pager interface {
	Refetch(ctx context.Context) error
	SetPage(ctx context.Context, page int) error
}

// loadPage fetches the requested page, going through the same page-change
// path interactive use does so bounds checking stays in one place.
func loadPage(ctx context.Context, coord pager, page int) error {
	if page > 1 {
		return coord.SetPage(ctx, page)
	}
	return coord.Refetch(ctx)
}

func printListFooter(total, page, pageSize int) {
	if strip := ui.PageStrip(total, page, pageSize); strip != "" {
		fmt.Println()
		fmt.Println(strip)
		fmt.Printf("page %d of %d, %d total\n", page, pagination.TotalPages(total, pageSize), total)
	}
}

func writeExport(data export.Dataset, format, out, kind string) error {
	var payload []byte
	var err error
	var path string

	switch format {
	case "csv":
		payload, err = export.CSV(data)
		path = out + ".csv"
	case "pdf":
		payload, err = export.PDF(data, kind)
		path = out + ".pdf"
	default:
		return fmt.Errorf("unknown export format %q (want csv or pdf)", format)
	}
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return err
	}
	fmt.Println(ui.Successf("wrote %s", path))
	return nil
}
