package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/projectnest/nestctl/internal/export"
	"github.com/projectnest/nestctl/internal/list"
	"github.com/projectnest/nestctl/internal/models"
	"github.com/projectnest/nestctl/internal/ui"
)

var (
	projectsStatus  string
	projectsKeyword string
	projectsSort    string
	projectsPage    int
	projectsExport  string
	projectsOut     string

	projectTitle       string
	projectDescription string
	projectStatusFlag  string
	projectPublic      bool

	reportOut string
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Browse and manage projects",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects with filtering and pagination",
	RunE:  runProjectsList,
}

var projectsShowCmd = &cobra.Command{
	Use:   "show <project_id>",
	Short: "Show one project with its progress and comments",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsShow,
}

var projectsMineCmd = &cobra.Command{
	Use:   "mine",
	Short: "List the projects you participate in",
	RunE:  runProjectsMine,
}

var projectsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a project (admin)",
	RunE:  runProjectsCreate,
}

var (
	projectUpdateTitle       string
	projectUpdateDescription string
	projectUpdateStatus      string
	projectUpdatePublic      bool
)

var projectsUpdateCmd = &cobra.Command{
	Use:   "update <project_id>",
	Short: "Update a project (admin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsUpdate,
}

var projectsDeleteCmd = &cobra.Command{
	Use:   "delete <project_id>",
	Short: "Delete a project (admin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsDelete,
}

var projectsTrackCmd = &cobra.Command{
	Use:   "track <project_id>",
	Short: "Follow a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsTrack,
}

var projectsUntrackCmd = &cobra.Command{
	Use:   "untrack <project_id>",
	Short: "Stop following a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsUntrack,
}

var projectsTrackedCmd = &cobra.Command{
	Use:   "tracked",
	Short: "List the projects you follow",
	RunE:  runProjectsTracked,
}

var projectsReportCmd = &cobra.Command{
	Use:   "report <project_id>",
	Short: "Export a project progress report as PDF",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsReport,
}

func init() {
	projectsListCmd.Flags().StringVar(&projectsStatus, "status", models.FilterAll, "filter by status (done, pending or all)")
	projectsListCmd.Flags().StringVar(&projectsKeyword, "keyword", "", "search by title or description")
	projectsListCmd.Flags().StringVar(&projectsSort, "sort", "", "sort field (project_id, title, create_at, ...)")
	projectsListCmd.Flags().IntVar(&projectsPage, "page", 1, "page to show")
	projectsListCmd.Flags().StringVar(&projectsExport, "export", "", "export format: csv or pdf")
	projectsListCmd.Flags().StringVar(&projectsOut, "out", "projects-export", "export file name without extension")

	projectsCreateCmd.Flags().StringVar(&projectTitle, "title", "", "project title")
	projectsCreateCmd.Flags().StringVar(&projectDescription, "description", "", "project description")
	projectsCreateCmd.Flags().StringVar(&projectStatusFlag, "status", string(models.StatusPending), "initial status (done or pending)")
	projectsCreateCmd.Flags().BoolVar(&projectPublic, "public", false, "make the project publicly visible")

	projectsUpdateCmd.Flags().StringVar(&projectUpdateTitle, "title", "", "new title")
	projectsUpdateCmd.Flags().StringVar(&projectUpdateDescription, "description", "", "new description")
	projectsUpdateCmd.Flags().StringVar(&projectUpdateStatus, "status", "", "new status (done or pending)")
	projectsUpdateCmd.Flags().BoolVar(&projectUpdatePublic, "public", false, "make the project publicly visible")

	projectsReportCmd.Flags().StringVar(&reportOut, "out", "", "report file name (defaults to report-<id>.pdf)")

	projectsCmd.AddCommand(projectsListCmd, projectsShowCmd, projectsMineCmd,
		projectsCreateCmd, projectsUpdateCmd, projectsDeleteCmd,
		projectsTrackCmd, projectsUntrackCmd, projectsTrackedCmd,
		projectsReportCmd)
	rootCmd.AddCommand(projectsCmd)
}

func runProjectsList(cmd *cobra.Command, args []string) error {
	a, err := ensureApp()
	if err != nil {
		return err
	}
	if err := a.requireAuth(); err != nil {
		return err
	}

	coord := list.New[models.Project](a.api.ListProjects, a.cfg.Lists.PageSize,
		list.WithLogger[models.Project](a.logger),
		list.WithCriteria[models.Project](map[string]string{
			models.CriterionStatus:  projectsStatus,
			models.CriterionKeyword: projectsKeyword,
			models.CriterionSortBy:  projectsSort,
		}),
	)

	if err := loadPage(cmd.Context(), coord, projectsPage); err != nil {
		fmt.Println(ui.Errorf("could not fetch projects: %v", err))
		return err
	}

	if projectsExport != "" {
		return writeExport(export.ProjectsDataset(coord.Items()), projectsExport, projectsOut, "projects")
	}

	fmt.Print(ui.ProjectTable(coord.Items()))
	printListFooter(coord.Total(), coord.Page(), a.cfg.Lists.PageSize)
	return nil
}

func runProjectsShow(cmd *cobra.Command, args []string) error {
	a, err := ensureApp()
	if err != nil {
		return err
	}
	if err := a.requireAuth(); err != nil {
		return err
	}

	projectID, err := parseProjectID(args[0])
	if err != nil {
		return err
	}

	project, err := a.api.GetProject(cmd.Context(), projectID)
	if err != nil {
		fmt.Println(ui.Errorf("could not fetch project %d: %v", projectID, err))
		return err
	}

	fmt.Printf("#%d %s [%s]\n", project.ProjectID, project.Title, ui.StatusBadge(project.Status))
	if project.Description != "" {
		fmt.Println(project.Description)
	}
	fmt.Printf("public: %t  members: %d\n\n", project.IsPublic, project.UserCount)

	updates, err := a.api.ListProgress(cmd.Context(), projectID)
	if err != nil {
		fmt.Println(ui.Errorf("could not fetch progress: %v", err))
		return err
	}

	comments := make(map[int][]models.Comment, len(updates))
	for _, p := range updates {
		thread, err := a.api.ListComments(cmd.Context(), p.ProgressID)
		if err != nil {
			// Threads degrade individually, the update itself still renders.
			a.logger.Warn("could not fetch comment thread", zap.Int("progress_id", p.ProgressID), zap.Error(err))
			continue
		}
		comments[p.ProgressID] = thread
	}

	fmt.Print(ui.ProgressList(updates, comments))
	return nil
}

func runProjectsMine(cmd *cobra.Command, args []string) error {
	a, err := ensureApp()
	if err != nil {
		return err
	}
	if err := a.requireAuth(); err != nil {
		return err
	}

	projects, err := a.api.MyProjects(cmd.Context(), a.session.Current().UserID)
	if err != nil {
		fmt.Println(ui.Errorf("could not fetch your projects: %v", err))
		return err
	}
	fmt.Print(ui.ProjectTable(projects))
	return nil
}

func runProjectsCreate(cmd *cobra.Command, args []string) error {
	a, err := ensureApp()
	if err != nil {
		return err
	}
	if err := a.requireAuth(models.RoleAdmin); err != nil {
		return err
	}

	req := models.CreateProjectRequest{
		Title:       projectTitle,
		Description: projectDescription,
		Status:      models.ProjectStatus(projectStatusFlag),
		IsPublic:    projectPublic,
	}
	if err := a.api.CreateProject(cmd.Context(), req); err != nil {
		fmt.Println(ui.Errorf("create failed: %v", err))
		return err
	}
	fmt.Println(ui.Successf("created project %q", projectTitle))
	return nil
}

func runProjectsUpdate(cmd *cobra.Command, args []string) error {
	a, err := ensureApp()
	if err != nil {
		return err
	}
	if err := a.requireAuth(models.RoleAdmin); err != nil {
		return err
	}

	projectID, err := parseProjectID(args[0])
	if err != nil {
		return err
	}

	req := models.UpdateProjectRequest{
		Title:       projectUpdateTitle,
		Description: projectUpdateDescription,
		Status:      models.ProjectStatus(projectUpdateStatus),
	}
	if cmd.Flags().Changed("public") {
		req.IsPublic = &projectUpdatePublic
	}
	if err := a.api.UpdateProject(cmd.Context(), projectID, req); err != nil {
		fmt.Println(ui.Errorf("update failed: %v", err))
		return err
	}

	// Confirmed state only: re-read the project instead of echoing the
	// request back.
	project, err := a.api.GetProject(cmd.Context(), projectID)
	if err != nil {
		fmt.Println(ui.Errorf("could not fetch updated project: %v", err))
		return err
	}
	fmt.Println(ui.Successf("updated project %d", project.ProjectID))
	fmt.Print(ui.ProjectTable([]models.Project{*project}))
	return nil
}

func runProjectsDelete(cmd *cobra.Command, args []string) error {
	a, err := ensureApp()
	if err != nil {
		return err
	}
	if err := a.requireAuth(models.RoleAdmin); err != nil {
		return err
	}

	projectID, err := parseProjectID(args[0])
	if err != nil {
		return err
	}
	if err := a.api.DeleteProject(cmd.Context(), projectID); err != nil {
		fmt.Println(ui.Errorf("delete failed: %v", err))
		return err
	}
	fmt.Println(ui.Successf("deleted project %d", projectID))

	// Confirmed state only: refetch instead of patching locally.
	coord := list.New[models.Project](a.api.ListProjects, a.cfg.Lists.PageSize)
	if err := coord.Refetch(cmd.Context()); err != nil {
		fmt.Println(ui.Errorf("could not refresh projects: %v", err))
		return nil
	}
	fmt.Print(ui.ProjectTable(coord.Items()))
	printListFooter(coord.Total(), coord.Page(), a.cfg.Lists.PageSize)
	return nil
}

func runProjectsTrack(cmd *cobra.Command, args []string) error {
	a, err := ensureApp()
	if err != nil {
		return err
	}
	if err := a.requireAuth(); err != nil {
		return err
	}

	projectID, err := parseProjectID(args[0])
	if err != nil {
		return err
	}
	if err := a.api.TrackProject(cmd.Context(), projectID); err != nil {
		fmt.Println(ui.Errorf("track failed: %v", err))
		return err
	}
	fmt.Println(ui.Successf("now following project %d", projectID))
	return nil
}

func runProjectsUntrack(cmd *cobra.Command, args []string) error {
	a, err := ensureApp()
	if err != nil {
		return err
	}
	if err := a.requireAuth(); err != nil {
		return err
	}

	projectID, err := parseProjectID(args[0])
	if err != nil {
		return err
	}
	if err := a.api.UntrackProject(cmd.Context(), projectID); err != nil {
		fmt.Println(ui.Errorf("untrack failed: %v", err))
		return err
	}
	fmt.Println(ui.Successf("stopped following project %d", projectID))
	return nil
}

func runProjectsTracked(cmd *cobra.Command, args []string) error {
	a, err := ensureApp()
	if err != nil {
		return err
	}
	if err := a.requireAuth(); err != nil {
		return err
	}

	projects, err := a.api.TrackedProjects(cmd.Context())
	if err != nil {
		fmt.Println(ui.Errorf("could not fetch tracked projects: %v", err))
		return err
	}
	fmt.Print(ui.ProjectTable(projects))
	return nil
}

func runProjectsReport(cmd *cobra.Command, args []string) error {
	a, err := ensureApp()
	if err != nil {
		return err
	}
	if err := a.requireAuth(); err != nil {
		return err
	}

	projectID, err := parseProjectID(args[0])
	if err != nil {
		return err
	}

	project, err := a.api.GetProject(cmd.Context(), projectID)
	if err != nil {
		fmt.Println(ui.Errorf("could not fetch project %d: %v", projectID, err))
		return err
	}
	updates, err := a.api.ListProgress(cmd.Context(), projectID)
	if err != nil {
		fmt.Println(ui.Errorf("could not fetch progress: %v", err))
		return err
	}

	payload, err := export.ProgressReport(*project, updates)
	if err != nil {
		return err
	}

	path := reportOut
	if path == "" {
		path = fmt.Sprintf("report-%d.pdf", projectID)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return err
	}
	fmt.Println(ui.Successf("wrote %s", path))
	return nil
}

func parseProjectID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid project id %q", arg)
	}
	return id, nil
}
