// Package parquet provides data structures and functions for exporting graded
// rosters to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"

	"github.com/huangsam/gradebook/schema"
	"github.com/parquet-go/parquet-go"
)

// StudentRecord is one roster row. Missing values are stored as nulls.
type StudentRecord struct {
	// Label is the roster label, usually the sheet name
	Label string `parquet:"label,snappy"`

	// Course is the course the row was graded for, empty when ungraded
	Course string `parquet:"course,snappy"`

	// RowIndex is the position of the row in the source sheet
	RowIndex int32 `parquet:"row_index,snappy"`

	StudentID *int64  `parquet:"student_id,optional,snappy"`
	FullName  *string `parquet:"full_name,optional,snappy"`

	Written1            *float64 `parquet:"written_1,optional,snappy"`
	Written2            *float64 `parquet:"written_2,optional,snappy"`
	Performance1        *float64 `parquet:"performance_1,optional,snappy"`
	Performance2        *float64 `parquet:"performance_2,optional,snappy"`
	ParticipationWeight *float64 `parquet:"participation_weight,optional,snappy"`
	Project             *float64 `parquet:"project,optional,snappy"`

	// PerformanceScore, Average and Result are null until the row is graded
	PerformanceScore *float64 `parquet:"performance_score,optional,snappy"`
	Average          *float64 `parquet:"average,optional,snappy"`
	Result           *string  `parquet:"result,optional,snappy"`

	// Criteria holds the per-criterion scores of the graded course
	Criteria []CriterionScore `parquet:"criteria"`
}

// CriterionScore is one criterion column of a row.
type CriterionScore struct {
	Name  string   `parquet:"name,snappy"`
	Score *float64 `parquet:"score,optional,snappy"`
}

// WriteStudentsParquet writes a slice of StudentRecord structs to a Parquet file.
func WriteStudentsParquet(data []StudentRecord, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the StudentRecord struct tags
	writer := parquet.NewGenericWriter[StudentRecord](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ConvertTable flattens a roster into Parquet records. Every column that is
// not a canonical or derived column is written as a criterion.
func ConvertTable(table *schema.Table, course string) []StudentRecord {
	var criteria []string
	for _, col := range table.Columns {
		if isCriterionColumn(col) {
			criteria = append(criteria, col)
		}
	}

	result := make([]StudentRecord, len(table.Rows))
	for i, r := range table.Rows {
		rec := StudentRecord{
			Label:               table.Label,
			Course:              course,
			RowIndex:            int32(r.Index),
			FullName:            textPtr(r, schema.ColFullName),
			Written1:            valuePtr(r, schema.ColWritten1),
			Written2:            valuePtr(r, schema.ColWritten2),
			Performance1:        valuePtr(r, schema.ColPerformance1),
			Performance2:        valuePtr(r, schema.ColPerformance2),
			ParticipationWeight: valuePtr(r, schema.ColParticipationWeight),
			Project:             valuePtr(r, schema.ColProject),
			PerformanceScore:    valuePtr(r, schema.ColPerformanceScore),
			Average:             valuePtr(r, schema.ColAverage),
			Result:              textPtr(r, schema.ColResult),
		}
		if v, ok := r.Value(schema.ColStudentID); ok {
			id := int64(v)
			rec.StudentID = &id
		}
		for _, name := range criteria {
			rec.Criteria = append(rec.Criteria, CriterionScore{Name: name, Score: valuePtr(r, name)})
		}
		result[i] = rec
	}
	return result
}

func isCriterionColumn(col string) bool {
	return !schema.IsReservedColumn(col)
}

func valuePtr(r *schema.Row, col string) *float64 {
	v, ok := r.Value(col)
	if !ok {
		return nil
	}
	return &v
}

func textPtr(r *schema.Row, col string) *string {
	s, ok := r.Text[col]
	if !ok || s == "" {
		return nil
	}
	return &s
}
