// Package ui renders listings, badges and the pagination strip for the
// terminal. It holds no list or session state of its own.
package ui

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/projectnest/nestctl/internal/models"
)

var (
	adminBadge     = color.New(color.FgRed, color.Bold)
	professorBadge = color.New(color.FgMagenta)
	studentBadge   = color.New(color.FgCyan)
	doneBadge      = color.New(color.FgGreen)
	pendingBadge   = color.New(color.FgYellow)

	errorText   = color.New(color.FgRed, color.Bold)
	successText = color.New(color.FgGreen)
)

// SetColorEnabled toggles colored output globally.
func SetColorEnabled(enabled bool) {
	color.NoColor = !enabled
}

// RoleBadge renders a colored role label.
func RoleBadge(role models.Role) string {
	switch role {
	case models.RoleAdmin:
		return adminBadge.Sprint("admin")
	case models.RoleProfessor:
		return professorBadge.Sprint("professor")
	case models.RoleStudent:
		return studentBadge.Sprint("student")
	}
	return string(role)
}

// StatusBadge renders a colored project status label.
func StatusBadge(status models.ProjectStatus) string {
	switch status {
	case models.StatusDone:
		return doneBadge.Sprint("done")
	case models.StatusPending:
		return pendingBadge.Sprint("pending")
	}
	return string(status)
}

// Errorf formats a failure notification.
func Errorf(format string, args ...interface{}) string {
	return errorText.Sprintf("✗ "+format, args...)
}

// Successf formats a success notification.
func Successf(format string, args ...interface{}) string {
	return successText.Sprintf("✓ "+format, args...)
}

// UserTable renders a user listing.
func UserTable(users []models.User) string {
	if len(users) == 0 {
		return "No users found.\n"
	}
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tUPDATED")
	for _, u := range users {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", u.UserID, u.Name, u.Email, RoleBadge(u.Role), u.UpdateAt)
	}
	w.Flush()
	return sb.String()
}

// ProjectTable renders a project listing.
func ProjectTable(projects []models.Project) string {
	if len(projects) == 0 {
		return "No projects found.\n"
	}
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tPUBLIC\tMEMBERS\tUPDATED")
	for _, p := range projects {
		fmt.Fprintf(w, "%d\t%s\t%s\t%t\t%d\t%s\n",
			p.ProjectID, p.Title, StatusBadge(p.Status), p.IsPublic, p.UserCount, p.UpdateAt)
	}
	w.Flush()
	return sb.String()
}

// ProgressList renders progress updates with their comment threads.
func ProgressList(updates []models.ProjectProgress, comments map[int][]models.Comment) string {
	if len(updates) == 0 {
		return "No progress updates yet.\n"
	}
	var sb strings.Builder
	for _, p := range updates {
		fmt.Fprintf(&sb, "#%d [%s] due %s\n  %s\n", p.ProgressID, StatusBadge(p.Status), p.EstimatedTime, p.ProgressNote)
		for _, cm := range comments[p.ProgressID] {
			fmt.Fprintf(&sb, "    %s: %s\n", cm.UserID, cm.Content)
		}
	}
	return sb.String()
}
