package settings

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/huangsam/gradebook/schema"
)

// Criterion weight sums must land strictly inside this band, in percent.
const (
	WeightBandLow  = 99.9
	WeightBandHigh = 100.1
)

// weightEpsilon absorbs float error when comparing fractional weights.
const weightEpsilon = 1e-9

var windowSizePattern = regexp.MustCompile(`^\d+x\d+$`)

// WeightDeviation is a course whose criterion weights fall outside the band.
type WeightDeviation struct {
	Course string  `json:"course"`
	SumPct float64 `json:"sum_pct"`
}

// Validate checks a whole settings document and returns the first violation
// as a *schema.ValidationError.
func Validate(s *schema.Settings) error {
	if err := validateGeneral(s.General); err != nil {
		return err
	}
	if err := validateUI(s.UI); err != nil {
		return err
	}
	for _, name := range s.CourseNames() {
		if err := validateCourseName(name); err != nil {
			return err
		}
		if err := validateCriteria(name, s.Courses[name]); err != nil {
			return err
		}
	}
	seen := make(map[string]string, len(s.Courses))
	for _, name := range s.CourseNames() {
		key := strings.TrimSpace(name)
		if other, ok := seen[key]; ok {
			return schema.NewValidationError("courses", "course names %q and %q collide", other, name)
		}
		seen[key] = name
	}
	return nil
}

func validateGeneral(g schema.GeneralSettings) error {
	if g.PassThreshold < 0 || g.PassThreshold > 100 {
		return schema.NewValidationError("general.pass_threshold", "must be between 0 and 100 (received %d)", g.PassThreshold)
	}
	if !isFraction(g.WrittenWeight) {
		return schema.NewValidationError("general.written_weight", "must be between 0%% and 100%% (received %g)", g.WrittenWeight)
	}
	if !isFraction(g.ProjectWeight) {
		return schema.NewValidationError("general.project_weight", "must be between 0%% and 100%% (received %g)", g.ProjectWeight)
	}
	if g.WrittenWeight+g.ProjectWeight > 1+weightEpsilon {
		return schema.NewValidationError("general", "written and project weights together cannot exceed 100%% (received %g%%)",
			(g.WrittenWeight+g.ProjectWeight)*100)
	}
	return nil
}

func validateUI(ui schema.UISettings) error {
	if !windowSizePattern.MatchString(ui.WindowSize) {
		return schema.NewValidationError("ui.window_size", "must look like WIDTHxHEIGHT (received %q)", ui.WindowSize)
	}
	if strings.TrimSpace(ui.Title) == "" {
		return schema.NewValidationError("ui.title", "cannot be empty")
	}
	return nil
}

func validateCourseName(name string) error {
	if strings.TrimSpace(name) == "" {
		return schema.NewValidationError("courses", "course name cannot be empty")
	}
	return nil
}

func validateCriteria(course string, criteria []schema.Criterion) error {
	field := "courses." + course
	seen := make(map[string]bool, len(criteria))
	for i, c := range criteria {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return schema.NewValidationError(field, "criterion %d has an empty name", i+1)
		}
		if name != c.Name {
			return schema.NewValidationError(field, "criterion %q has surrounding whitespace", c.Name)
		}
		if schema.IsReservedColumn(name) {
			return schema.NewValidationError(field, "criterion name %q is reserved", name)
		}
		if seen[name] {
			return schema.NewValidationError(field, "criterion %q is defined twice", name)
		}
		seen[name] = true
		if !isFraction(c.Weight) {
			return schema.NewValidationError(field, "criterion %q weight must be between 0%% and 100%% (received %g)", name, c.Weight)
		}
	}
	return nil
}

func isFraction(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 1
}

// InWeightBand reports whether a criterion weight sum, as a fraction, is inside the band.
func InWeightBand(sum float64) bool {
	pct := sum * 100
	return pct > WeightBandLow && pct < WeightBandHigh
}

// CheckCriterionWeights lists courses whose criterion weights leave the band.
// Courses without criteria are not listed.
func CheckCriterionWeights(s *schema.Settings) []WeightDeviation {
	var deviations []WeightDeviation
	for _, name := range s.CourseNames() {
		criteria := s.Courses[name]
		if len(criteria) == 0 {
			continue
		}
		sum := schema.CriterionWeightSum(criteria)
		if !InWeightBand(sum) {
			deviations = append(deviations, WeightDeviation{Course: name, SumPct: sum * 100})
		}
	}
	return deviations
}

// ParsePercent parses a whole-number percentage entered by a user. Blank means 0.
func ParsePercent(field, text string) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(text)
	if err != nil {
		return 0, schema.NewValidationError(field, "must be a whole number (received %q)", text)
	}
	if v < 0 || v > 100 {
		return 0, schema.NewValidationError(field, "must be between 0 and 100 (received %d)", v)
	}
	return v, nil
}
