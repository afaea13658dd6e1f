package service

import (
	"math"

	"github.com/akademix/records-api/internal/dto"
	"github.com/akademix/records-api/internal/models"
)

// UnknownGroup is the sentinel bucket for rows whose grouping field is
// absent, so every row stays attributable to exactly one group.
const UnknownGroup = "unknown"

// round2 rounds to two decimals, half to even.
func round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}

// groupAccumulator is an ordered map from group key to its accumulator.
// Insertion order follows first encounter in the source sequence, which
// keeps the final group ordering deterministic.
type groupAccumulator struct {
	order   []string
	buckets map[string]*groupBucket
}

type groupBucket struct {
	count    int
	sub      map[string]int
	scoreSum float64
	scored   int
}

func newGroupAccumulator() *groupAccumulator {
	return &groupAccumulator{buckets: make(map[string]*groupBucket)}
}

func (a *groupAccumulator) bucket(key string) *groupBucket {
	if key == "" {
		key = UnknownGroup
	}
	b, ok := a.buckets[key]
	if !ok {
		b = &groupBucket{sub: make(map[string]int)}
		a.buckets[key] = b
		a.order = append(a.order, key)
	}
	return b
}

func (a *groupAccumulator) observe(key string, subKey string, score *float64) {
	b := a.bucket(key)
	b.count++
	if subKey != "" {
		b.sub[subKey]++
	}
	if score != nil {
		b.scoreSum += *score
		b.scored++
	}
}

// stats flattens the accumulator into encounter-ordered group statistics.
// The sub-count map lands in Statuses or Letters depending on the report.
func (a *groupAccumulator) stats(asLetters bool) []dto.GroupStat {
	result := make([]dto.GroupStat, 0, len(a.order))
	for _, key := range a.order {
		b := a.buckets[key]
		stat := dto.GroupStat{Key: key, Count: b.count}
		if b.scored > 0 {
			stat.AverageScore = round2(b.scoreSum / float64(b.scored))
		}
		if asLetters {
			stat.Letters = b.sub
		} else {
			stat.Statuses = b.sub
		}
		result = append(result, stat)
	}
	return result
}

func emptyDistribution() map[string]int {
	dist := make(map[string]int, len(models.GradeLetters))
	for _, letter := range models.GradeLetters {
		dist[letter] = 0
	}
	return dist
}

func normalizeStatus(raw string) string {
	switch models.EnrollmentStatus(raw) {
	case models.EnrollmentStatusPending, models.EnrollmentStatusApproved, models.EnrollmentStatusRejected:
		return raw
	default:
		return UnknownGroup
	}
}

func deref(ptr *string) string {
	if ptr == nil {
		return ""
	}
	return *ptr
}

// AggregateEnrollments folds enrollment rows into the global summary and
// the course/department group statistics in a single pass.
func AggregateEnrollments(rows []models.EnrollmentRow) (dto.EnrollmentSummary, []dto.GroupStat, []dto.GroupStat) {
	summary := dto.EnrollmentSummary{Total: len(rows)}
	byCourse := newGroupAccumulator()
	byDepartment := newGroupAccumulator()

	for _, row := range rows {
		status := normalizeStatus(row.Status)
		switch models.EnrollmentStatus(status) {
		case models.EnrollmentStatusPending:
			summary.Pending++
		case models.EnrollmentStatusApproved:
			summary.Approved++
		case models.EnrollmentStatusRejected:
			summary.Rejected++
		default:
			summary.Unknown++
		}
		byCourse.observe(deref(row.CourseName), status, row.Score)
		byDepartment.observe(deref(row.StudentDepartment), status, row.Score)
	}

	if summary.Total > 0 {
		summary.ApprovalRate = round2(float64(summary.Approved) / float64(summary.Total))
	}
	return summary, byCourse.stats(false), byDepartment.stats(false)
}

// AggregateGrades folds grade rows into the global summary (with the fixed
// five-bucket distribution) and the course/department group statistics.
// Rows without a score stay in the totals but never feed an average.
func AggregateGrades(rows []models.GradeRow) (dto.GradeSummary, []dto.GroupStat, []dto.GroupStat) {
	summary := dto.GradeSummary{Total: len(rows), Distribution: emptyDistribution()}
	byCourse := newGroupAccumulator()
	byDepartment := newGroupAccumulator()

	var sum, min, max float64
	for _, row := range rows {
		if row.Score != nil {
			score := *row.Score
			if summary.Scored == 0 || score < min {
				min = score
			}
			if summary.Scored == 0 || score > max {
				max = score
			}
			sum += score
			summary.Scored++
		}
		letter := ""
		if row.Letter != nil {
			if _, known := summary.Distribution[*row.Letter]; known {
				summary.Distribution[*row.Letter]++
				letter = *row.Letter
			}
		}
		byCourse.observe(deref(row.CourseName), letter, row.Score)
		byDepartment.observe(deref(row.StudentDepartment), letter, row.Score)
	}

	if summary.Scored > 0 {
		summary.AverageScore = round2(sum / float64(summary.Scored))
		summary.MinScore = min
		summary.MaxScore = max
	}
	return summary, byCourse.stats(true), byDepartment.stats(true)
}

// teacherAccumulator folds one teacher's course/enrollment/grade rows.
// Distinct counting uses small per-teacher sets; memory tracks distinct
// courses and students, not raw row count.
type teacherAccumulator struct {
	first    models.TeacherRow
	courses  map[string]struct{}
	students map[string]struct{}
	depts    map[string]struct{}
	scoreSum float64
	scored   int
}

// AggregateTeachers builds the derived workload view per teacher plus the
// department roll-ups. Teacher order follows the source sequence; roll-up
// order follows first teacher encounter per department.
func AggregateTeachers(rows []models.TeacherRow) ([]dto.TeacherWorkload, []dto.DepartmentRollup) {
	order := make([]string, 0)
	accs := make(map[string]*teacherAccumulator)

	for _, row := range rows {
		acc, ok := accs[row.TeacherID]
		if !ok {
			acc = &teacherAccumulator{
				first:    row,
				courses:  make(map[string]struct{}),
				students: make(map[string]struct{}),
				depts:    make(map[string]struct{}),
			}
			accs[row.TeacherID] = acc
			order = append(order, row.TeacherID)
		}
		if row.CourseID != nil {
			acc.courses[*row.CourseID] = struct{}{}
		}
		if row.StudentID != nil {
			acc.students[*row.StudentID] = struct{}{}
			if row.StudentDepartment != nil {
				acc.depts[*row.StudentDepartment] = struct{}{}
			}
		}
		if row.Score != nil {
			acc.scoreSum += *row.Score
			acc.scored++
		}
	}

	teachers := make([]dto.TeacherWorkload, 0, len(order))
	deptOrder := make([]string, 0)
	rollups := make(map[string]*dto.DepartmentRollup)
	type deptAverages struct {
		workloadSum float64
		workloads   int
		gradeSum    float64
		graded      int
	}
	averages := make(map[string]*deptAverages)

	for _, id := range order {
		acc := accs[id]
		view := dto.TeacherWorkload{
			TeacherID:          id,
			Name:               acc.first.TeacherName,
			Department:         deref(acc.first.Department),
			Title:              acc.first.Title,
			Workload:           acc.first.Workload,
			CourseCount:        len(acc.courses),
			StudentCount:       len(acc.students),
			StudentDepartments: len(acc.depts),
		}
		if view.Department == "" {
			view.Department = UnknownGroup
		}
		if acc.scored > 0 {
			view.AverageGrade = round2(acc.scoreSum / float64(acc.scored))
		}
		teachers = append(teachers, view)

		rollup, ok := rollups[view.Department]
		if !ok {
			rollup = &dto.DepartmentRollup{Department: view.Department}
			rollups[view.Department] = rollup
			averages[view.Department] = &deptAverages{}
			deptOrder = append(deptOrder, view.Department)
		}
		avg := averages[view.Department]
		rollup.TeacherCount++
		rollup.CourseCount += view.CourseCount
		rollup.StudentCount += view.StudentCount
		if view.Workload != nil {
			avg.workloadSum += *view.Workload
			avg.workloads++
		}
		if acc.scored > 0 {
			avg.gradeSum += view.AverageGrade
			avg.graded++
		}
	}

	result := make([]dto.DepartmentRollup, 0, len(deptOrder))
	for _, dept := range deptOrder {
		rollup := rollups[dept]
		avg := averages[dept]
		if avg.workloads > 0 {
			rollup.AverageWorkload = round2(avg.workloadSum / float64(avg.workloads))
		}
		if avg.graded > 0 {
			rollup.AverageGrade = round2(avg.gradeSum / float64(avg.graded))
		}
		result = append(result, *rollup)
	}
	return teachers, result
}
