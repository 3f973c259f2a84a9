package email

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/todoloop/remind-api/internal/domain"
)

// bodyTemplate is the HTML body for both reminder types. The palette and copy
// follow the in-app email design: red header for overdue, blue for upcoming.
const bodyTemplate = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; color: #333">
  <div style="background: {{if .Overdue}}#FEE2E2{{else}}#E0F2FE{{end}}; padding: 20px; border-radius: 8px; margin-bottom: 20px">
    <h1 style="color: {{if .Overdue}}#DC2626{{else}}#0369A1{{end}}; font-size: 24px; margin: 0 0 16px 0">
      {{if .Overdue}}Overdue Tasks{{else}}Task Reminders{{end}}
    </h1>
    <p style="font-size: 16px; line-height: 1.5">
      Hello {{.FirstName}},<br />
      {{if .Overdue}}You have the following overdue tasks that need your attention:{{else}}Here are your upcoming tasks that are due soon:{{end}}
    </p>
  </div>
  {{if .Tasks}}
  <ul style="list-style: none; padding: 0; margin: 0">
    {{range .Tasks}}
    <li style="padding: 12px; border-bottom: 1px solid #eee">
      <div style="font-weight: bold; margin-bottom: 4px">{{.Title}}</div>
      {{if .Due}}<div style="font-size: 14px; color: {{if $.Overdue}}#DC2626{{else}}#6B7280{{end}}">Due: {{.Due}}</div>{{end}}
      {{if .Priority}}<div style="font-size: 12px; color: #fff; background-color: {{.PriorityColor}}; padding: 2px 8px; border-radius: 12px; display: inline-block; margin-top: 4px">{{.Priority}}</div>{{end}}
    </li>
    {{end}}
  </ul>
  {{else}}
  <p style="text-align: center; color: #6B7280">No {{if .Overdue}}overdue{{else}}upcoming{{end}} tasks at the moment.</p>
  {{end}}
  <div style="margin-top: 24px; padding: 16px; background-color: #F9FAFB; border-radius: 8px; font-size: 14px; color: #6B7280; text-align: center">
    <p>Visit your <a href="https://todoloop.app/dashboard" style="color: #0369A1; text-decoration: none">dashboard</a> to manage your tasks.</p>
    <p style="margin-top: 8px; font-size: 12px">You&#39;re receiving this email because you have tasks in your To-Do List app.</p>
  </div>
</div>`

var bodyTmpl = template.Must(template.New("reminder").Parse(bodyTemplate))

type taskView struct {
	Title         string
	Due           string
	Priority      string
	PriorityColor string
}

type bodyData struct {
	FirstName string
	Overdue   bool
	Tasks     []taskView
}

// RenderBody produces the HTML body for a reminder notification from the
// recipient's first name, the tasks to list, and the reminder type.
func RenderBody(firstName string, tasks []*domain.Task, typ domain.ReminderType) (string, error) {
	data := bodyData{
		FirstName: firstName,
		Overdue:   typ == domain.ReminderOverdue,
	}

	for _, task := range tasks {
		view := taskView{Title: task.Title}
		if task.DueDate != nil {
			view.Due = task.DueDate.Format("Monday, January 2, 2006")
		}
		if task.Priority != "" {
			view.Priority = capitalize(string(task.Priority))
			view.PriorityColor = priorityColor(task.Priority)
		}
		data.Tasks = append(data.Tasks, view)
	}

	var b strings.Builder
	if err := bodyTmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to render reminder body: %w", err)
	}

	return b.String(), nil
}

// SweepSubject returns the subject line for a bucket notification sent during
// a sweep, with singular/plural phrasing based on the task count.
func SweepSubject(typ domain.ReminderType, count int) string {
	plural := ""
	if count != 1 {
		plural = "s"
	}
	if typ == domain.ReminderOverdue {
		return fmt.Sprintf("You have %d overdue task%s", count, plural)
	}
	return fmt.Sprintf("Reminder: You have %d task%s due soon", count, plural)
}

// TargetedSubject returns the subject line for a single-task reminder.
func TargetedSubject(typ domain.ReminderType) string {
	if typ == domain.ReminderOverdue {
		return "Task Overdue: Action Required"
	}
	return "Task Reminder"
}

// FirstName extracts the leading name from a full display name.
func FirstName(fullName string) string {
	name, _, _ := strings.Cut(fullName, " ")
	return name
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func priorityColor(p domain.Priority) string {
	switch p {
	case domain.PriorityHigh:
		return "#DC2626"
	case domain.PriorityMedium:
		return "#F59E0B"
	default:
		return "#10B981"
	}
}
