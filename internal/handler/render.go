package handler

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/klauspost/lctime"

	"github.com/forgo/gather/internal/model"
	"github.com/forgo/gather/internal/service"
)

// dateFormat is strftime syntax, rendered in the configured locale
const dateFormat = "%d %b %Y, %H:%M"

// Renderer writes command output as aligned text. Dates are shown in the
// viewer's zone and locale.
type Renderer struct {
	out    io.Writer
	loc    *time.Location
	locale string
}

// NewRenderer creates a renderer writing to out
func NewRenderer(out io.Writer, loc *time.Location, locale string) *Renderer {
	if loc == nil {
		loc = time.Local
	}
	return &Renderer{out: out, loc: loc, locale: locale}
}

// Time formats t for display, "-" for the zero time
func (r *Renderer) Time(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	t = t.In(r.loc)
	if r.locale != "" {
		if s, err := lctime.StrftimeLoc(r.locale, dateFormat, t); err == nil {
			return s
		}
	}
	return t.Format("02 Jan 2006, 15:04")
}

// Printf writes formatted text
func (r *Renderer) Printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

// Table writes rows aligned under header
func (r *Renderer) Table(header []string, rows [][]string) error {
	w := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return w.Flush()
}

// Notice writes a warning line, used for degraded loads
func (r *Renderer) Notice(msg string) {
	fmt.Fprintf(r.out, "! %s\n", msg)
}

func capacity(e *model.Entity) string {
	if e.MaxParticipants <= 0 {
		return strconv.Itoa(e.CurrentParticipants())
	}
	return fmt.Sprintf("%d/%d", e.CurrentParticipants(), e.MaxParticipants)
}

func ageLabel(n int) string {
	if n <= 0 {
		return "-"
	}
	return strconv.Itoa(n) + "+"
}

// List renders the list panel
func (r *Renderer) List(entities []model.Entity, control func(model.Ref) model.JoinControl) error {
	if len(entities) == 0 {
		r.Printf("Nothing found.\n")
		return nil
	}
	rows := make([][]string, 0, len(entities))
	for i := range entities {
		e := &entities[i]
		rows = append(rows, []string{
			e.ID.String(),
			e.Name,
			orDash(e.Location.City),
			r.Time(e.StartTime),
			capacity(e),
			ageLabel(e.AgeRestriction),
			control(e.Ref()).Label,
		})
	}
	return r.Table([]string{"ID", "NAME", "CITY", "STARTS", "PEOPLE", "AGE", ""}, rows)
}

// Map renders the map panel as a table of markers
func (r *Renderer) Map(entities []model.Entity) error {
	rows := make([][]string, 0, len(entities))
	for i := range entities {
		e := &entities[i]
		if !e.Location.HasCoordinates() {
			continue
		}
		rows = append(rows, []string{
			e.ID.String(),
			model.CoordinatesLabel(e.Location.Latitude, e.Location.Longitude),
			e.Name,
		})
	}
	if len(rows) == 0 {
		r.Printf("No places to show on the map.\n")
		return nil
	}
	return r.Table([]string{"ID", "MARKER", "NAME"}, rows)
}

// Detail renders the detail panel
func (r *Renderer) Detail(d service.Detail) error {
	e := &d.Entity
	r.Printf("%s\n", e.Name)
	if e.Description != "" {
		r.Printf("%s\n", e.Description)
	}
	r.Printf("\n")

	access := "open"
	if e.Access.IsPrivate() {
		access = "by application"
	}
	rows := [][]string{
		{"When", r.Time(e.StartTime) + " - " + r.Time(e.EndTime)},
		{"Where", orDash(strings.Join(nonEmpty(e.Location.City, e.Location.Address), ", "))},
		{"People", capacity(e)},
		{"Age", ageLabel(e.AgeRestriction)},
		{"Access", access},
	}
	if e.Price > 0 {
		rows = append(rows, []string{"Price", strconv.FormatFloat(e.Price, 'f', -1, 64)})
	}
	if e.Requirements != "" {
		rows = append(rows, []string{"Requirements", e.Requirements})
	}
	w := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	for _, row := range rows {
		fmt.Fprintf(w, "%s:\t%s\n", row[0], row[1])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	r.Printf("\n[%s]\n", joinButton(d.Control))
	if len(e.Participants) == 0 {
		return nil
	}
	r.Printf("\n")
	prows := make([][]string, 0, len(e.Participants))
	for _, p := range e.Participants {
		prows = append(prows, []string{p.DisplayName(), orDash(string(p.Role)), orDash(p.Status)})
	}
	return r.Table([]string{"PARTICIPANT", "ROLE", "STATUS"}, prows)
}

func joinButton(c model.JoinControl) string {
	if c.Disabled {
		return c.Label + " (disabled)"
	}
	return c.Label
}

// Places renders address suggestions
func (r *Renderer) Places(places []model.Place) error {
	if len(places) == 0 {
		r.Printf("No matching addresses.\n")
		return nil
	}
	rows := make([][]string, 0, len(places))
	for i, p := range places {
		rows = append(rows, []string{strconv.Itoa(i + 1), p.Address, model.CoordinatesLabel(p.Latitude, p.Longitude)})
	}
	return r.Table([]string{"#", "ADDRESS", "COORDINATES"}, rows)
}

// Profile renders the signed-in user's profile
func (r *Renderer) Profile(p *model.UserProfile) error {
	rating := "-"
	if p.Rating != nil {
		rating = strconv.FormatFloat(*p.Rating, 'f', 1, 64)
	}
	interests := make([]string, len(p.InterestIDs))
	for i, id := range p.InterestIDs {
		interests[i] = id.String()
	}
	w := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	for _, row := range [][]string{
		{"User", p.UserID.String()},
		{"Username", orDash(p.Username)},
		{"Age", orDash(ageString(p.Age))},
		{"City", orDash(p.City)},
		{"Bio", orDash(p.Bio)},
		{"Interests", orDash(strings.Join(interests, ", "))},
		{"Language", orDash(p.Preferences.Language)},
		{"Rating", rating},
		{"Member since", r.Time(p.Created())},
	} {
		fmt.Fprintf(w, "%s:\t%s\n", row[0], row[1])
	}
	return w.Flush()
}

func ageString(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
