package schema

import "sort"

// Settings is the whole configuration document persisted between runs.
type Settings struct {
	General GeneralSettings        `json:"general" yaml:"general"`
	UI      UISettings             `json:"ui" yaml:"ui"`
	Courses map[string][]Criterion `json:"courses" yaml:"courses"`
}

// GeneralSettings holds the grading policy shared by every course.
type GeneralSettings struct {
	PassThreshold       int     `json:"pass_threshold" yaml:"pass_threshold"`               // 0-100
	MissingValueDefault int     `json:"missing_value_default" yaml:"missing_value_default"` // any sign
	WrittenWeight       float64 `json:"written_weight" yaml:"written_weight"`               // fraction
	ProjectWeight       float64 `json:"project_weight" yaml:"project_weight"`               // fraction
}

// UISettings holds cosmetic preferences for a presentation layer.
type UISettings struct {
	Theme      string `json:"theme" yaml:"theme"`
	WindowSize string `json:"window_size" yaml:"window_size"`
	Title      string `json:"title" yaml:"title"`
}

// Criterion is a named, weighted part of a course's performance score.
type Criterion struct {
	Name   string  `json:"name" yaml:"name"`
	Weight float64 `json:"weight" yaml:"weight"` // fraction
}

// Default values for a fresh settings document.
const (
	DefaultPassThreshold       = 50
	DefaultMissingValueDefault = 0
	DefaultWrittenWeight       = 0.6
	DefaultProjectWeight       = 0.2
	DefaultTheme               = "clam"
	DefaultWindowSize          = "1200x700"
	DefaultTitle               = "Performance Evaluation System"
)

// DefaultSettings returns a fresh copy of the built-in settings.
func DefaultSettings() *Settings {
	return &Settings{
		General: GeneralSettings{
			PassThreshold:       DefaultPassThreshold,
			MissingValueDefault: DefaultMissingValueDefault,
			WrittenWeight:       DefaultWrittenWeight,
			ProjectWeight:       DefaultProjectWeight,
		},
		UI: UISettings{
			Theme:      DefaultTheme,
			WindowSize: DefaultWindowSize,
			Title:      DefaultTitle,
		},
		Courses: map[string][]Criterion{},
	}
}

// PerformanceWeight is the share of the average left to the criteria.
func (g GeneralSettings) PerformanceWeight() float64 {
	return 1 - g.WrittenWeight - g.ProjectWeight
}

// Clone returns a deep copy of the settings.
func (s *Settings) Clone() *Settings {
	clone := *s
	clone.Courses = make(map[string][]Criterion, len(s.Courses))
	for name, criteria := range s.Courses {
		copied := make([]Criterion, len(criteria))
		copy(copied, criteria)
		clone.Courses[name] = copied
	}
	return &clone
}

// CourseNames returns course names in sorted order.
func (s *Settings) CourseNames() []string {
	names := make([]string, 0, len(s.Courses))
	for name := range s.Courses {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CriterionWeightSum returns the sum of a course's criterion weights.
func CriterionWeightSum(criteria []Criterion) float64 {
	var sum float64
	for _, c := range criteria {
		sum += c.Weight
	}
	return sum
}
