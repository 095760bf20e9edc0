package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/projectnest/nestctl/internal/models"
	"github.com/projectnest/nestctl/internal/ui"
)

var (
	progressProject int
	progressDue     string
	progressNote    string

	progressEditID   int
	progressEditDue  string
	progressEditNote string
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Post and browse project progress updates",
}

var progressAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Post a progress update on a project",
	RunE:  runProgressAdd,
}

var progressEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit one of your progress updates",
	RunE:  runProgressEdit,
}

var progressDeleteCmd = &cobra.Command{
	Use:   "delete <progress_id>",
	Short: "Delete a progress update",
	Args:  cobra.ExactArgs(1),
	RunE:  runProgressDelete,
}

var progressMineCmd = &cobra.Command{
	Use:   "mine",
	Short: "List progress updates across your projects",
	RunE:  runProgressMine,
}

var commentCmd = &cobra.Command{
	Use:   "comment <progress_id> <content>",
	Short: "Comment on a progress update",
	Args:  cobra.ExactArgs(2),
	RunE:  runCommentAdd,
}

func init() {
	progressAddCmd.Flags().IntVar(&progressProject, "project", 0, "project id")
	progressAddCmd.Flags().StringVar(&progressDue, "due", "", "estimated completion time")
	progressAddCmd.Flags().StringVar(&progressNote, "note", "", "what was done")

	progressEditCmd.Flags().IntVar(&progressEditID, "id", 0, "progress id")
	progressEditCmd.Flags().StringVar(&progressEditDue, "due", "", "new estimated completion time")
	progressEditCmd.Flags().StringVar(&progressEditNote, "note", "", "new note")

	progressCmd.AddCommand(progressAddCmd, progressEditCmd, progressDeleteCmd, progressMineCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(commentCmd)
}

func runProgressAdd(cmd *cobra.Command, args []string) error {
	a, err := ensureApp()
	if err != nil {
		return err
	}
	if err := a.requireAuth(); err != nil {
		return err
	}

	req := models.CreateProgressRequest{
		ProjectID:     progressProject,
		EstimatedTime: progressDue,
		ProgressNote:  progressNote,
	}
	if err := a.api.CreateProgress(cmd.Context(), req); err != nil {
		fmt.Println(ui.Errorf("could not post progress: %v", err))
		return err
	}
	fmt.Println(ui.Successf("posted progress on project %d", progressProject))
	return nil
}

func runProgressEdit(cmd *cobra.Command, args []string) error {
	a, err := ensureApp()
	if err != nil {
		return err
	}
	if err := a.requireAuth(); err != nil {
		return err
	}

	req := models.UpdateProgressRequest{
		ProgressID:    progressEditID,
		EstimatedTime: progressEditDue,
		ProgressNote:  progressEditNote,
	}
	if err := a.api.UpdateProgress(cmd.Context(), req); err != nil {
		fmt.Println(ui.Errorf("could not edit progress: %v", err))
		return err
	}
	fmt.Println(ui.Successf("updated progress %d", progressEditID))
	return nil
}

func runProgressDelete(cmd *cobra.Command, args []string) error {
	a, err := ensureApp()
	if err != nil {
		return err
	}
	if err := a.requireAuth(); err != nil {
		return err
	}

	progressID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid progress id %q", args[0])
	}
	if err := a.api.DeleteProgress(cmd.Context(), progressID); err != nil {
		fmt.Println(ui.Errorf("delete failed: %v", err))
		return err
	}
	fmt.Println(ui.Successf("deleted progress %d", progressID))
	return nil
}

func runProgressMine(cmd *cobra.Command, args []string) error {
	a, err := ensureApp()
	if err != nil {
		return err
	}
	if err := a.requireAuth(); err != nil {
		return err
	}

	updates, err := a.api.MyProgress(cmd.Context())
	if err != nil {
		fmt.Println(ui.Errorf("could not fetch your progress: %v", err))
		return err
	}
	fmt.Print(ui.ProgressList(updates, nil))
	return nil
}

func runCommentAdd(cmd *cobra.Command, args []string) error {
	a, err := ensureApp()
	if err != nil {
		return err
	}
	if err := a.requireAuth(); err != nil {
		return err
	}

	progressID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid progress id %q", args[0])
	}
	req := models.CreateCommentRequest{ProgressID: progressID, Content: args[1]}
	if err := a.api.CreateComment(cmd.Context(), req); err != nil {
		fmt.Println(ui.Errorf("could not post comment: %v", err))
		return err
	}
	fmt.Println(ui.Successf("commented on progress %d", progressID))
	return nil
}
