// Package export renders listings and project reports into portable
// formats for sharing outside the terminal.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/projectnest/nestctl/internal/models"
)

// Dataset defines tabular export content.
type Dataset struct {
	Headers []string
	Rows    [][]string
}

// CSV renders the dataset as CSV bytes.
func CSV(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("csv requires at least one header")
	}
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(data.Headers); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}
	for _, row := range data.Rows {
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// UsersDataset flattens a user listing for export.
func UsersDataset(users []models.User) Dataset {
	data := Dataset{Headers: []string{"user_id", "name", "email", "role", "created", "updated"}}
	for _, u := range users {
		data.Rows = append(data.Rows, []string{u.UserID, u.Name, u.Email, string(u.Role), u.CreateAt, u.UpdateAt})
	}
	return data
}

// ProjectsDataset flattens a project listing for export.
func ProjectsDataset(projects []models.Project) Dataset {
	data := Dataset{Headers: []string{"project_id", "title", "status", "public", "members", "created", "updated"}}
	for _, p := range projects {
		data.Rows = append(data.Rows, []string{
			strconv.Itoa(p.ProjectID),
			p.Title,
			string(p.Status),
			strconv.FormatBool(p.IsPublic),
			strconv.Itoa(p.UserCount),
			p.CreateAt,
			p.UpdateAt,
		})
	}
	return data
}

// ProgressDataset flattens a project's progress updates for export.
func ProgressDataset(updates []models.ProjectProgress) Dataset {
	data := Dataset{Headers: []string{"progress_id", "status", "estimated_time", "note", "posted"}}
	for _, p := range updates {
		data.Rows = append(data.Rows, []string{
			strconv.Itoa(p.ProgressID),
			string(p.Status),
			p.EstimatedTime,
			p.ProgressNote,
			p.CreateAt,
		})
	}
	return data
}
