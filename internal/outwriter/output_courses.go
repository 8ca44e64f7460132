package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/huangsam/gradebook/internal/contract"
	"github.com/huangsam/gradebook/internal/settings"
	"github.com/huangsam/gradebook/internal/sheet"
	"github.com/huangsam/gradebook/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// coursesSheetName names the sheet of a course listing workbook.
const coursesSheetName = "Courses"

// PrintCourses outputs the course listing, dispatching based on the output format configured.
func PrintCourses(s *schema.Settings, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCoursesJSON(w, s)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCoursesCSV(w, s)
		}, "Wrote CSV")
	case schema.XLSXOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCoursesWorkbook(w, s)
		}, "Wrote workbook")
	case schema.ParquetOut:
		return fmt.Errorf("course listing cannot be written as %s", cfg.Output)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCoursesTable(w, s, cfg.UseColors)
		}, "Wrote table")
	}
}

// writeCoursesTable prints one row per criterion and a total row per course.
func writeCoursesTable(w io.Writer, s *schema.Settings, useColors bool) error {
	g := s.General
	if _, err := fmt.Fprintf(w, "Pass threshold: %d. Weights: written %s, project %s, performance %s\n",
		g.PassThreshold, formatPercent(g.WrittenWeight), formatPercent(g.ProjectWeight), formatPercent(g.PerformanceWeight())); err != nil {
		return err
	}

	tbl := tablewriter.NewWriter(w)
	tbl.Header([]string{"Course", "Criterion", "Weight", "Band"})
	tbl.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	var data [][]string
	for _, name := range s.CourseNames() {
		criteria := s.Courses[name]
		if len(criteria) == 0 {
			data = append(data, []string{name, "(none)", "", ""})
			continue
		}
		for _, c := range criteria {
			data = append(data, []string{name, c.Name, formatPercent(c.Weight), ""})
		}
		sum := schema.CriterionWeightSum(criteria)
		data = append(data, []string{name, "total", formatPercent(sum), contract.GetBandLabel(settings.InWeightBand(sum), useColors)})
	}

	if err := tbl.Bulk(data); err != nil {
		return err
	}
	if err := tbl.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d courses\n", len(s.Courses))
	return err
}

// writeCoursesCSV writes one record per criterion.
func writeCoursesCSV(w io.Writer, s *schema.Settings) error {
	header := []string{"course", "criterion", "weight"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, name := range s.CourseNames() {
			for _, c := range s.Courses[name] {
				rec := []string{name, c.Name, fmt.Sprintf("%g", c.Weight)}
				if err := cw.Write(rec); err != nil {
					return fmt.Errorf("failed to write CSV record: %w", err)
				}
			}
		}
		return nil
	})
}

// CourseSummary is one course in the JSON course listing.
type CourseSummary struct {
	Name      string             `json:"name"`
	Criteria  []schema.Criterion `json:"criteria"`
	WeightSum float64            `json:"weight_sum"`
	InBand    bool               `json:"in_band"`
}

// CoursesDocument is the JSON shape of the course listing, shared with the MCP tools.
type CoursesDocument struct {
	General schema.GeneralSettings `json:"general"`
	Courses []CourseSummary        `json:"courses"`
}

// NewCoursesDocument summarizes every course in name order. Courses without
// criteria count as in band.
func NewCoursesDocument(s *schema.Settings) CoursesDocument {
	courses := make([]CourseSummary, 0, len(s.Courses))
	for _, name := range s.CourseNames() {
		criteria := s.Courses[name]
		sum := schema.CriterionWeightSum(criteria)
		courses = append(courses, CourseSummary{
			Name:      name,
			Criteria:  criteria,
			WeightSum: sum,
			InBand:    len(criteria) == 0 || settings.InWeightBand(sum),
		})
	}
	return CoursesDocument{General: s.General, Courses: courses}
}

// writeCoursesJSON writes the general settings and the courses in JSON format.
func writeCoursesJSON(w io.Writer, s *schema.Settings) error {
	return writeJSON(w, NewCoursesDocument(s))
}

// writeCoursesWorkbook writes one row per criterion to a single sheet.
func writeCoursesWorkbook(w io.Writer, s *schema.Settings) error {
	var rows [][]any
	for _, name := range s.CourseNames() {
		for _, c := range s.Courses[name] {
			rows = append(rows, []any{name, c.Name, c.Weight})
		}
	}
	return sheet.WriteWorkbook(w, coursesSheetName, []string{"course", "criterion", "weight"}, rows)
}
