package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/projectnest/nestctl/internal/list"
	"github.com/projectnest/nestctl/internal/models"
	"github.com/projectnest/nestctl/internal/ui"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the admin overview: totals and recent activity",
	RunE:  runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	a, err := ensureApp()
	if err != nil {
		return err
	}
	if err := a.requireAuth(models.RoleAdmin); err != nil {
		return err
	}

	ctx := cmd.Context()

	userCount, err := a.api.TotalUsers(ctx)
	if err != nil {
		fmt.Println(ui.Errorf("could not fetch user total: %v", err))
		return err
	}
	active, err := a.api.TotalProjects(ctx, models.StatusPending)
	if err != nil {
		fmt.Println(ui.Errorf("could not fetch project totals: %v", err))
		return err
	}
	completed, err := a.api.TotalProjects(ctx, models.StatusDone)
	if err != nil {
		fmt.Println(ui.Errorf("could not fetch project totals: %v", err))
		return err
	}

	fmt.Printf("Total users:        %d\n", userCount)
	fmt.Printf("Active projects:    %d\n", active)
	fmt.Printf("Completed projects: %d\n\n", completed)

	// Recent activity, newest first, one page of each.
	projects := list.New[models.Project](a.api.ListProjects, a.cfg.Lists.PageSize,
		list.WithLogger[models.Project](a.logger),
		list.WithCriteria[models.Project](map[string]string{
			models.CriterionSortBy: "create_at",
		}),
	)
	if err := projects.Refetch(ctx); err != nil {
		fmt.Println(ui.Errorf("could not fetch recent projects: %v", err))
		return err
	}
	fmt.Println("Recent projects:")
	fmt.Print(ui.ProjectTable(projects.Items()))

	users := list.New[models.User](a.api.ListUsers, a.cfg.Lists.PageSize,
		list.WithLogger[models.User](a.logger),
		list.WithCriteria[models.User](map[string]string{
			models.CriterionSortBy: "create_at",
		}),
	)
	if err := users.Refetch(ctx); err != nil {
		fmt.Println(ui.Errorf("could not fetch recent users: %v", err))
		return err
	}
	fmt.Println("Recent users:")
	fmt.Print(ui.UserTable(users.Items()))
	return nil
}
