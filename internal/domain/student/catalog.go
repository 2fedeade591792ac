package student

// Category represents the academic track a student is enrolled under
type Category string

const (
	CategorySchool        Category = "School"
	CategoryJuniorCollege Category = "Junior College"
	CategoryDiploma       Category = "Diploma"
	CategoryEntranceExams Category = "Entrance Exams"
)

// CourseAll is the neutral course selection used when a category changes
const CourseAll = "All"

// IsValid checks if the category is one of the known tracks
func (c Category) IsValid() bool {
	switch c {
	case CategorySchool, CategoryJuniorCollege, CategoryDiploma, CategoryEntranceExams:
		return true
	}
	return false
}

// String returns the string representation of Category
func (c Category) String() string {
	return string(c)
}

// Categories returns all known categories in display order
func Categories() []Category {
	return []Category{
		CategorySchool,
		CategoryJuniorCollege,
		CategoryDiploma,
		CategoryEntranceExams,
	}
}

var (
	schoolCourses        = []string{"SSC", "CBSE", "ICSE", "Others"}
	juniorCollegeCourses = []string{"Science", "Commerce", "Arts"}
	diplomaCourses       = []string{"Computer Science", "Mechanical", "Electrical", "Civil", "Other"}
	entranceExamCourses  = []string{"NEET", "JEE", "MHTCET", "Boards"}
)

// CoursesFor returns the fixed course set of a category.
// Unknown categories have no courses.
func CoursesFor(c Category) []string {
	switch c {
	case CategorySchool:
		return append([]string(nil), schoolCourses...)
	case CategoryJuniorCollege:
		return append([]string(nil), juniorCollegeCourses...)
	case CategoryDiploma:
		return append([]string(nil), diplomaCourses...)
	case CategoryEntranceExams:
		return append([]string(nil), entranceExamCourses...)
	}
	return nil
}

// IsValidCourse reports whether the course belongs to the category's set
func IsValidCourse(c Category, course string) bool {
	for _, known := range CoursesFor(c) {
		if known == course {
			return true
		}
	}
	return false
}

// YearOptionsFor returns the selectable years of study for a category.
// Entrance Exams has no year axis and returns an empty set.
func YearOptionsFor(c Category) []int {
	switch c {
	case CategorySchool:
		return []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	case CategoryJuniorCollege:
		return []int{11, 12}
	case CategoryDiploma:
		return []int{1, 2, 3}
	}
	return nil
}

// IsValidYear reports whether a year is selectable for the category.
// Zero means "not set" and is always accepted.
func IsValidYear(c Category, year int) bool {
	if year == 0 {
		return true
	}
	options := YearOptionsFor(c)
	if len(options) == 0 {
		return false
	}
	for _, y := range options {
		if y == year {
			return true
		}
	}
	return false
}

// CategoryChange is the filter-state transition triggered by selecting a
// new category: the course options switch to the category's set and the
// dependent course/year selections reset.
type CategoryChange struct {
	CourseOptions []string `json:"course_options"`
	YearOptions   []int    `json:"year_options"`
	ResetCourse   string   `json:"reset_course"`
	ResetYear     int      `json:"reset_year"`
}

// OnCategoryChange computes the cascading reset for a category selection
func OnCategoryChange(c Category) CategoryChange {
	return CategoryChange{
		CourseOptions: CoursesFor(c),
		YearOptions:   YearOptionsFor(c),
		ResetCourse:   CourseAll,
		ResetYear:     0,
	}
}
