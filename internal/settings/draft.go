package settings

import (
	"fmt"
	"strings"

	"github.com/huangsam/gradebook/schema"
)

// GeneralEdit is the general section as a user enters it, weights in percent.
type GeneralEdit struct {
	PassThreshold       int
	MissingValueDefault int
	WrittenWeightPct    int
	ProjectWeightPct    int
}

// CriterionEdit is one criterion as a user enters it, weight in percent.
type CriterionEdit struct {
	Name      string
	WeightPct int
}

// GeneralEditOf converts stored general settings back to percent form.
func GeneralEditOf(g schema.GeneralSettings) GeneralEdit {
	return GeneralEdit{
		PassThreshold:       g.PassThreshold,
		MissingValueDefault: g.MissingValueDefault,
		WrittenWeightPct:    toPct(g.WrittenWeight),
		ProjectWeightPct:    toPct(g.ProjectWeight),
	}
}

// CommitOptions controls how a draft is committed.
type CommitOptions struct {
	Path                  string // settings file to save to, empty skips saving
	AcceptWeightDeviation bool   // commit even if criterion sums leave the band
}

// Draft is a private deep copy of the live settings. Edits apply to the draft
// only, and each edit either applies fully or not at all.
type Draft struct {
	settings *schema.Settings
}

// NewDraft starts an edit session from the live settings.
func NewDraft(live *schema.Settings) *Draft {
	return &Draft{settings: live.Clone()}
}

// Settings returns the draft document for inspection.
func (d *Draft) Settings() *schema.Settings {
	return d.settings
}

// SetGeneral replaces the general section.
func (d *Draft) SetGeneral(e GeneralEdit) error {
	if e.PassThreshold < 0 || e.PassThreshold > 100 {
		return schema.NewValidationError("pass_threshold", "must be between 0 and 100 (received %d)", e.PassThreshold)
	}
	if e.WrittenWeightPct < 0 || e.WrittenWeightPct > 100 {
		return schema.NewValidationError("written_weight", "must be between 0 and 100 (received %d)", e.WrittenWeightPct)
	}
	if e.ProjectWeightPct < 0 || e.ProjectWeightPct > 100 {
		return schema.NewValidationError("project_weight", "must be between 0 and 100 (received %d)", e.ProjectWeightPct)
	}
	if e.WrittenWeightPct+e.ProjectWeightPct > 100 {
		return schema.NewValidationError("general", "written and project weights together cannot exceed 100 (received %d)",
			e.WrittenWeightPct+e.ProjectWeightPct)
	}
	d.settings.General = schema.GeneralSettings{
		PassThreshold:       e.PassThreshold,
		MissingValueDefault: e.MissingValueDefault,
		WrittenWeight:       fromPct(e.WrittenWeightPct),
		ProjectWeight:       fromPct(e.ProjectWeightPct),
	}
	return nil
}

// SetUI replaces the ui section.
func (d *Draft) SetUI(ui schema.UISettings) error {
	ui.WindowSize = strings.TrimSpace(ui.WindowSize)
	if err := validateUI(ui); err != nil {
		return err
	}
	d.settings.UI = ui
	return nil
}

// AddCourse adds a course with no criteria.
func (d *Draft) AddCourse(name string) error {
	name = strings.TrimSpace(name)
	if err := validateCourseName(name); err != nil {
		return err
	}
	if _, ok := d.settings.Courses[name]; ok {
		return schema.NewValidationError("courses", "course %q already exists", name)
	}
	d.settings.Courses[name] = []schema.Criterion{}
	return nil
}

// RenameCourse moves a course's criteria to a new name.
func (d *Draft) RenameCourse(from, to string) error {
	to = strings.TrimSpace(to)
	criteria, ok := d.settings.Courses[from]
	if !ok {
		return schema.NewValidationError("courses", "course %q does not exist", from)
	}
	if err := validateCourseName(to); err != nil {
		return err
	}
	if to == from {
		return nil
	}
	if _, ok := d.settings.Courses[to]; ok {
		return schema.NewValidationError("courses", "course %q already exists", to)
	}
	delete(d.settings.Courses, from)
	d.settings.Courses[to] = criteria
	return nil
}

// RemoveCourse deletes a course and its criteria.
func (d *Draft) RemoveCourse(name string) error {
	if _, ok := d.settings.Courses[name]; !ok {
		return schema.NewValidationError("courses", "course %q does not exist", name)
	}
	delete(d.settings.Courses, name)
	return nil
}

// SetCriteria replaces a course's criterion list.
func (d *Draft) SetCriteria(course string, edits []CriterionEdit) error {
	if _, ok := d.settings.Courses[course]; !ok {
		return schema.NewValidationError("courses", "course %q does not exist", course)
	}
	criteria := make([]schema.Criterion, 0, len(edits))
	for _, e := range edits {
		name := strings.TrimSpace(e.Name)
		if e.WeightPct < 0 || e.WeightPct > 100 {
			return schema.NewValidationError("courses."+course, "criterion %q weight must be between 0 and 100 (received %d)", name, e.WeightPct)
		}
		criteria = append(criteria, schema.Criterion{Name: name, Weight: fromPct(e.WeightPct)})
	}
	if err := validateCriteria(course, criteria); err != nil {
		return err
	}
	d.settings.Courses[course] = criteria
	return nil
}

// Commit validates the draft as one transaction and, on success, saves it and
// swaps it into live. Deviations from the weight band are returned even when
// they were accepted. On any error live is untouched.
func Commit(live *schema.Settings, d *Draft, opts CommitOptions) ([]WeightDeviation, error) {
	if err := Validate(d.settings); err != nil {
		return nil, err
	}
	deviations := CheckCriterionWeights(d.settings)
	if len(deviations) > 0 && !opts.AcceptWeightDeviation {
		return deviations, fmt.Errorf("%w: %s", schema.ErrWeightDeviation, describeDeviations(deviations))
	}
	if opts.Path != "" && !Save(opts.Path, d.settings) {
		return deviations, fmt.Errorf("%w: %s", schema.ErrSaveFailed, opts.Path)
	}
	*live = *d.settings.Clone()
	return deviations, nil
}

func describeDeviations(deviations []WeightDeviation) string {
	parts := make([]string, len(deviations))
	for i, dev := range deviations {
		parts[i] = fmt.Sprintf("%s sums to %.1f%%", dev.Course, dev.SumPct)
	}
	return strings.Join(parts, ", ")
}

func fromPct(pct int) float64 {
	return float64(pct) / 100
}

func toPct(fraction float64) int {
	return int(fraction*100 + 0.5)
}
